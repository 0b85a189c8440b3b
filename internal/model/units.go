package model

import (
	"fmt"
	"strings"
)

// EnergyUnit is the display/export unit for energies stored in Wh.
type EnergyUnit string

const (
	UnitWh  EnergyUnit = "Wh"
	UnitKWh EnergyUnit = "kWh"
	UnitMWh EnergyUnit = "MWh"
)

// Scale returns how many Wh make one unit.
func (u EnergyUnit) Scale() float64 {
	switch u {
	case UnitKWh:
		return 1e3
	case UnitMWh:
		return 1e6
	default:
		return 1
	}
}

// FromWh converts an energy in Wh into this unit.
func (u EnergyUnit) FromWh(wh float64) float64 {
	return wh / u.Scale()
}

func ParseEnergyUnit(s string) (EnergyUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kwh":
		return UnitKWh, nil
	case "wh":
		return UnitWh, nil
	case "mwh":
		return UnitMWh, nil
	default:
		return "", fmt.Errorf("unsupported energy unit %q", s)
	}
}
