package headloss

// Segment is one run of pipe of constant diameter with its fittings.
type Segment struct {
	Name       string   `json:"name" yaml:"name"`
	FlowGPM    float64  `json:"flow_gpm" yaml:"flow_gpm"`
	DiameterIn float64  `json:"diameter_in" yaml:"diameter_in"`
	LengthFt   float64  `json:"length_ft" yaml:"length_ft"`
	Fittings   Manifest `json:"fittings" yaml:"fittings"`
}

type SegmentResult struct {
	Name        string         `json:"name"`
	Input       Segment        `json:"input"`
	Straight    StraightResult `json:"straight"`
	Fittings    FittingsResult `json:"fittings"`
	TotalHeadFt float64        `json:"total_head_ft"`
}

// Segment returns straight-pipe plus fittings head loss. Elevation change is not included.
func (c Calculator) Segment(s Segment) (SegmentResult, error) {
	straight, err := c.StraightPipe(s.FlowGPM, s.DiameterIn, s.LengthFt)
	if err != nil {
		return SegmentResult{}, err
	}
	fittings, err := c.Fittings(s.Fittings, s.DiameterIn, s.FlowGPM)
	if err != nil {
		return SegmentResult{}, err
	}
	return SegmentResult{
		Name:        s.Name,
		Input:       s,
		Straight:    straight,
		Fittings:    fittings,
		TotalHeadFt: straight.HeadLossFt + fittings.HeadLossFt,
	}, nil
}
