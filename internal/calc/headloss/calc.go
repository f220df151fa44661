package headloss

import (
	"fmt"
	"math"
)

// Gravity is the gravitational constant in ft/s².
const Gravity = 32.174

// Calculator carries the fixed inputs of the model. The zero value is not
// usable; start from New.
type Calculator struct {
	Material Material `json:"material"`
	Gravity  float64  `json:"gravity"`
}

func New() Calculator {
	return Calculator{Material: CommercialSteelSch40, Gravity: Gravity}
}

type StraightResult struct {
	AreaFt2        float64 `json:"area_ft2"`
	FlowCFS        float64 `json:"flow_cfs"`
	VelocityFtS    float64 `json:"velocity_ft_s"`
	FrictionFactor float64 `json:"friction_factor"`
	HeadLossFt     float64 `json:"head_loss_ft"`
}

type FittingsResult struct {
	KTotal      float64              `json:"k_total"`
	VelocityFtS float64              `json:"velocity_ft_s"`
	HeadLossFt  float64              `json:"head_loss_ft"`
	Notices     []UnsupportedFitting `json:"notices,omitempty"`
}

// StraightPipe applies Darcy's formula to lengthFt of straight pipe.
// Valid for Re > 4000; the Reynolds number is not checked.
func (c Calculator) StraightPipe(flowGpm, diameterIn, lengthFt float64) (StraightResult, error) {
	if math.IsNaN(lengthFt) || math.IsInf(lengthFt, 0) || lengthFt < 0 {
		return StraightResult{}, fmt.Errorf("%w: length %v ft must not be negative", ErrInvalidDimension, lengthFt)
	}
	area, err := Area(diameterIn)
	if err != nil {
		return StraightResult{}, err
	}
	q, err := forwardFlow(flowGpm)
	if err != nil {
		return StraightResult{}, err
	}
	vel := q / area
	f, err := c.Material.FrictionFactor(diameterIn)
	if err != nil {
		return StraightResult{}, err
	}

	head := f * (lengthFt / (diameterIn / 12)) * c.velocityHead(vel)

	return StraightResult{
		AreaFt2:        area,
		FlowCFS:        q,
		VelocityFtS:    vel,
		FrictionFactor: f,
		HeadLossFt:     head,
	}, nil
}

// Fittings sums the resistance of every supported fitting in manifest.
// Unsupported entries are skipped and listed in Notices.
func (c Calculator) Fittings(manifest Manifest, diameterIn, flowGpm float64) (FittingsResult, error) {
	vel, err := AverageVelocity(flowGpm, diameterIn)
	if err != nil {
		return FittingsResult{}, err
	}
	f, err := c.Material.FrictionFactor(diameterIn)
	if err != nil {
		return FittingsResult{}, err
	}

	res := FittingsResult{VelocityFtS: vel}
	for _, name := range manifest.names() {
		count := manifest[name]
		if count < 0 {
			return FittingsResult{}, fmt.Errorf("%w: %q has count %d", ErrInvalidCount, name, count)
		}
		fit := ParseFitting(name)
		k, ok := fit.Type.KMultiplier()
		if !ok {
			res.Notices = append(res.Notices, UnsupportedFitting{Name: name, Count: count})
			continue
		}
		res.KTotal += k * f * float64(count)
	}
	res.HeadLossFt = res.KTotal * c.velocityHead(vel)
	return res, nil
}

func (c Calculator) velocityHead(vel float64) float64 {
	return vel * vel / (2 * c.Gravity)
}
