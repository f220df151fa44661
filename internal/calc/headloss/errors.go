package headloss

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned for a non-positive diameter or a negative length.
	ErrInvalidDimension = errors.New("headloss: invalid dimension")

	// ErrInvalidFlow is returned when forward flow is required but the rate is not positive.
	ErrInvalidFlow = errors.New("headloss: invalid flow")

	// ErrDomain is returned when the relative roughness term leaves (0,1).
	ErrDomain = errors.New("headloss: friction factor out of domain")

	// ErrInvalidCount is returned for a negative fitting count.
	ErrInvalidCount = errors.New("headloss: invalid fitting count")
)

// UnsupportedFitting is a non-fatal notice for a manifest entry whose type
// has no K multiplier. It is reported in results, never returned as the error.
type UnsupportedFitting struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (u UnsupportedFitting) Error() string {
	return fmt.Sprintf("fitting of unknown type: %s", u.Name)
}
