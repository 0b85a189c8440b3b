package model

import "errors"

// ArrayParams describes the DC array whose output is being aggregated.
// Units:
// - ModuleSTCW: W at standard test conditions
// - Bifaciality: 0..1 (informational, the upstream simulation applies it)
// - NameplateW: W, overrides the module-based nameplate when > 0
type ArrayParams struct {
	Name             string
	ModuleSTCW       float64
	ModulesPerString int
	Strings          int
	Bifaciality      float64
	NameplateW       float64
}

// Nameplate returns the rated DC power of the array in W.
func (p ArrayParams) Nameplate() float64 {
	if p.NameplateW > 0 {
		return p.NameplateW
	}
	return p.ModuleSTCW * float64(p.ModulesPerString) * float64(p.Strings)
}

func (p ArrayParams) Validate() error {
	if p.NameplateW < 0 {
		return errors.New("NameplateW must be >= 0")
	}
	if p.NameplateW == 0 {
		if p.ModuleSTCW <= 0 {
			return errors.New("ModuleSTCW must be > 0")
		}
		if p.ModulesPerString <= 0 {
			return errors.New("ModulesPerString must be > 0")
		}
		if p.Strings <= 0 {
			return errors.New("Strings must be > 0")
		}
	}
	if p.Bifaciality < 0 || p.Bifaciality > 1 {
		return errors.New("Bifaciality must be in [0, 1]")
	}
	return nil
}
