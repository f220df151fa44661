package headloss

import (
	"fmt"
	"math"
)

// Material describes the pipe wall. Only RoughnessFt enters the friction model.
type Material struct {
	Name        string  `json:"name"`
	RoughnessFt float64 `json:"roughness_ft"`
}

// CommercialSteelSch40 is clean commercial steel, schedule 40 (Crane TP-410, A-24).
var CommercialSteelSch40 = Material{
	Name:        "commercial steel sch40",
	RoughnessFt: 0.00015,
}

// FrictionFactor returns the Darcy friction factor for fully turbulent flow
// in a pipe of the given inner diameter (inches). The Reynolds number is not
// an input: callers must ensure Re > 10,000 themselves.
func (m Material) FrictionFactor(diameterIn float64) (float64, error) {
	if err := checkDiameter(diameterIn); err != nil {
		return 0, err
	}
	rr := (m.RoughnessFt / (diameterIn / 12)) / 3.7
	if math.IsNaN(rr) || rr <= 0 || rr >= 1 {
		return 0, fmt.Errorf("%w: relative roughness %v for %v in %s", ErrDomain, rr, diameterIn, m.Name)
	}
	l := math.Log10(rr)
	return 0.25 / (l * l), nil
}
