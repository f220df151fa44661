package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"Pumpcalc/internal/calc/headloss"
)

type Input struct {
	Name     string             `json:"name" yaml:"name"`
	Segments []headloss.Segment `json:"segments" yaml:"segments"`
}

type Result struct {
	Name        string                   `json:"name"`
	Segments    []headloss.SegmentResult `json:"segments"`
	TotalHeadFt float64                  `json:"total_head_ft"`
	Notes       string                   `json:"notes"`
}

// Notices returns every unsupported fitting reported by any segment, labelled by segment.
func (r Result) Notices() []Notice {
	var out []Notice
	for i, s := range r.Segments {
		for _, n := range s.Fittings.Notices {
			out = append(out, Notice{Segment: i, SegmentName: s.Name, UnsupportedFitting: n})
		}
	}
	return out
}

type Notice struct {
	Segment     int    `json:"segment"`
	SegmentName string `json:"segment_name"`
	headloss.UnsupportedFitting
}

// Calculate evaluates each segment on its own goroutine. Results keep input
// order; the first failing segment (by index) fails the whole pipeline.
func Calculate(calc headloss.Calculator, in Input) (Result, error) {
	if len(in.Segments) == 0 {
		return Result{}, errors.New("no segments")
	}

	results := make([]headloss.SegmentResult, len(in.Segments))
	errs := make([]error, len(in.Segments))

	var wg sync.WaitGroup
	for i, seg := range in.Segments {
		wg.Add(1)
		go func(i int, seg headloss.Segment) {
			defer wg.Done()
			results[i], errs[i] = calc.Segment(seg)
		}(i, seg)
	}
	wg.Wait()

	out := Result{
		Name:     in.Name,
		Segments: results,
		Notes:    "Friction losses only; elevation change not included. Assumes Re > 4000.",
	}
	for i, err := range errs {
		if err != nil {
			return Result{}, fmt.Errorf("segment %d (%s): %w", i+1, in.Segments[i].Name, err)
		}
		out.TotalHeadFt += results[i].TotalHeadFt
	}
	return out, nil
}
