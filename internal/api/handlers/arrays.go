package handlers

import (
	"net/http"
	"path/filepath"

	"pv-yield/internal/api/models"
	"pv-yield/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ArrayHandler lists the array presets found in a directory
type ArrayHandler struct {
	arrayDir string
	log      logrus.FieldLogger
}

// NewArrayHandler creates a new array handler
func NewArrayHandler(dir string, log logrus.FieldLogger) *ArrayHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log.WithField("dir", dir).Info("using array preset directory")
	return &ArrayHandler{arrayDir: dir, log: log}
}

func (h *ArrayHandler) Dir() string { return h.arrayDir }

// ListArrays handles GET /api/v1/arrays
func (h *ArrayHandler) ListArrays(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"arrays": ListPresets(h.arrayDir, h.log)})
}

// ListPresets reads the presets in dir. A missing directory gives an empty list.
func ListPresets(dir string, log logrus.FieldLogger) []models.ArrayInfo {
	arrays := []models.ArrayInfo{}

	presets, err := config.ListArrayFiles(dir, func(path string, err error) {
		log.WithError(err).WithField("file", path).Warn("skipping invalid array preset")
	})
	if err != nil {
		log.WithError(err).WithField("dir", dir).Warn("cannot read array preset directory")
		return arrays
	}

	for _, p := range presets {
		arrays = append(arrays, models.ArrayInfo{
			ID:   p.ID,
			Name: p.Array.Name,
			File: p.File,
			Specs: models.ArraySpecs{
				ModuleSTCW:       p.Array.ModuleSTCW,
				ModulesPerString: p.Array.ModulesPerString,
				Strings:          p.Array.Strings,
				Bifaciality:      p.Array.BifacialityValue(),
				NameplateW:       p.Array.ToModelParams().Nameplate(),
			},
		})
	}
	return arrays
}
