package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSeries writes two days of hourly data: the first day at night power
// only, the second producing 1200 W from 08:00 to 16:00.
func writeSeries(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("timestamp,bifacial_w,monofacial_w,effective_irradiance_wm2,rear_irradiance_wm2\n")
	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 48; h++ {
		ts := start.Add(time.Duration(h) * time.Hour)
		bif, mono, front, rear := -5.0, -5.0, 0.0, 0.0
		if h >= 32 && h < 40 {
			bif, mono, front, rear = 1200, 1000, 800, 80
		}
		fmt.Fprintf(&b, "%s,%g,%g,%g,%g\n", ts.Format(time.RFC3339), bif, mono, front, rear)
	}
	path := filepath.Join(dir, "run.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAggregate_PrintsTableAndExports(t *testing.T) {
	dir := t.TempDir()
	series := writeSeries(t, dir)
	exportPath := filepath.Join(dir, "out", "summary.csv")

	out, err := runCLI(t, "aggregate", "--series", series, "--nameplate", "2000", "--period", "day", "--pr-method", "plain", "--out", exportPath)
	require.NoError(t, err)

	assert.Contains(t, out, "2023-03-01")
	assert.Contains(t, out, "2023-03-02")
	// day 2: 9.6 kWh, 4.8 kWh/kWp, gain 100*(9.6-8)/9.6, PR 4.8/6.4
	assert.Contains(t, out, "9.600")
	assert.Contains(t, out, "4.80")
	assert.Contains(t, out, "16.67")
	assert.Contains(t, out, "0.750")
	assert.Contains(t, out, "Wrote 2 periods")

	raw, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "total,energy,9.600000,kWh")
	assert.Contains(t, string(raw), "meta,pr_method,plain,")
}

func TestAggregate_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	series := writeSeries(t, dir)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
array:
  name: test
  module_stc_w: 250
  modules_per_string: 4
  strings: 2
aggregation:
  period: month
  energy_unit: Wh
`), 0o644))

	out, err := runCLI(t, "aggregate", "--series", series, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "energy[Wh]")
	assert.Contains(t, out, "2023-03")
	assert.Contains(t, out, "9600.000")
	assert.Contains(t, out, "pr=rear_corrected")
}

func TestAggregate_JSONUsesIntervalFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.json")
	body := `{"samples": [{"timestamp": "2023-03-01T10:00:00Z", "bifacial_w": 500}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, err := runCLI(t, "aggregate", "--series", path, "--nameplate", "1000", "--period", "day", "--interval", "15m")
	require.NoError(t, err)
	// 500 W for 15 minutes
	assert.Contains(t, out, "0.125")
	assert.Contains(t, out, "interval=15m0s")
}

func TestAggregate_Errors(t *testing.T) {
	dir := t.TempDir()
	series := writeSeries(t, dir)

	_, err := runCLI(t, "aggregate", "--series", series)
	assert.Error(t, err, "nameplate is required")

	_, err = runCLI(t, "aggregate", "--series", filepath.Join(dir, "missing.csv"), "--nameplate", "1000")
	assert.Error(t, err)

	_, err = runCLI(t, "aggregate", "--nameplate", "1000")
	assert.Error(t, err)
}

func TestPlot_WritesCharts(t *testing.T) {
	dir := t.TempDir()
	series := writeSeries(t, dir)
	outDir := filepath.Join(dir, "charts")

	out, err := runCLI(t, "plot", "--series", series, "--nameplate", "2000", "--period", "day", "--out-dir", outDir, "--format", "svg")
	require.NoError(t, err)

	for _, k := range []string{"energy", "yield", "gain", "pr"} {
		_, err := os.Stat(filepath.Join(outDir, k+".svg"))
		assert.NoError(t, err, k)
	}
	assert.Equal(t, 4, strings.Count(out, "Wrote "))

	_, err = runCLI(t, "plot", "--series", series, "--nameplate", "2000", "--kind", "pie")
	assert.Error(t, err)
}

func TestArrays_ListsPresets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lr6.yaml"), []byte(`array:
  name: LR6-72BP 8x4
  module_stc_w: 350
  modules_per_string: 8
  strings: 4
  bifaciality: 0.75
`), 0o644))

	out, err := runCLI(t, "arrays", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "lr6")
	assert.Contains(t, out, "LR6-72BP 8x4")
	assert.Contains(t, out, "11200")
	assert.Contains(t, out, "0.75")
}
