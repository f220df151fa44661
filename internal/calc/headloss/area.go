package headloss

import (
	"fmt"
	"math"
)

// Area returns the cross-sectional area in ft² of a pipe with the given
// inner diameter in inches. Nominal size is taken as the inner diameter.
func Area(diameterIn float64) (float64, error) {
	if err := checkDiameter(diameterIn); err != nil {
		return 0, err
	}
	return math.Pi * math.Pow(diameterIn/2, 2) / 144, nil
}

func checkDiameter(diameterIn float64) error {
	if math.IsNaN(diameterIn) || math.IsInf(diameterIn, 0) || diameterIn <= 0 {
		return fmt.Errorf("%w: diameter %v in must be positive", ErrInvalidDimension, diameterIn)
	}
	return nil
}
