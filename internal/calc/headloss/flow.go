package headloss

import (
	"fmt"
	"math"
)

// GPMToCFS converts US gallons per minute to ft³/s (Crane TP-410, B-9).
const GPMToCFS = 0.002228

// ToCubicFeetPerSecond converts a volumetric flow from GPM to ft³/s.
func ToCubicFeetPerSecond(flowGpm float64) (float64, error) {
	if math.IsNaN(flowGpm) || math.IsInf(flowGpm, 0) || flowGpm < 0 {
		return 0, fmt.Errorf("%w: flow %v gpm must not be negative", ErrInvalidFlow, flowGpm)
	}
	return flowGpm * GPMToCFS, nil
}

// AverageVelocity returns the mean fluid velocity in ft/s.
func AverageVelocity(flowGpm, diameterIn float64) (float64, error) {
	area, err := Area(diameterIn)
	if err != nil {
		return 0, err
	}
	q, err := forwardFlow(flowGpm)
	if err != nil {
		return 0, err
	}
	return q / area, nil
}

func forwardFlow(flowGpm float64) (float64, error) {
	q, err := ToCubicFeetPerSecond(flowGpm)
	if err != nil {
		return 0, err
	}
	if q <= 0 {
		return 0, fmt.Errorf("%w: flow %v gpm must be positive", ErrInvalidFlow, flowGpm)
	}
	return q, nil
}
