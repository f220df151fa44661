package main

import (
	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/calc/pipeline"

	"github.com/spf13/cobra"
)

type pipeFlags struct {
	flow     float64
	dia      float64
	length   float64
	fittings map[string]int
}

func (p *pipeFlags) bind(cmd *cobra.Command, withLength, withFittings bool) {
	cmd.Flags().Float64Var(&p.flow, "flow", 0, "volumetric flow (gpm)")
	cmd.Flags().Float64Var(&p.dia, "dia", 0, "inner pipe diameter (in)")
	cmd.MarkFlagRequired("flow")
	cmd.MarkFlagRequired("dia")
	if withLength {
		cmd.Flags().Float64Var(&p.length, "length", 0, "straight pipe length (ft)")
		cmd.MarkFlagRequired("length")
	}
	if withFittings {
		cmd.Flags().StringToIntVar(&p.fittings, "fitting", nil, `fitting counts, e.g. --fitting "Gate Valve=1,Ball Valve=4"`)
	}
}

func newStraightCmd(a *app) *cobra.Command {
	var p pipeFlags
	cmd := &cobra.Command{
		Use:   "straight",
		Short: "Head loss and velocity in straight pipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.calc.StraightPipe(p.flow, p.dia, p.length)
			if err != nil {
				return err
			}
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			printStraight(cmd.OutOrStdout(), p.dia, p.length, res)
			return nil
		},
	}
	p.bind(cmd, true, false)
	return cmd
}

func newFittingsCmd(a *app) *cobra.Command {
	var p pipeFlags
	cmd := &cobra.Command{
		Use:   "fittings",
		Short: "Head loss through valves and fittings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.calc.Fittings(headloss.Manifest(p.fittings), p.dia, p.flow)
			if err != nil {
				return err
			}
			a.warn(-1, "", res.Notices)
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			printFittings(cmd.OutOrStdout(), res)
			return nil
		},
	}
	p.bind(cmd, false, true)
	return cmd
}

func newSegmentCmd(a *app) *cobra.Command {
	var p pipeFlags
	var name string
	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Straight pipe plus fittings for one segment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPipeline(cmd, pipeline.Input{Segments: []headloss.Segment{{
				Name:       name,
				FlowGPM:    p.flow,
				DiameterIn: p.dia,
				LengthFt:   p.length,
				Fittings:   headloss.Manifest(p.fittings),
			}}})
		},
	}
	cmd.Flags().StringVar(&name, "name", "segment", "segment name")
	p.bind(cmd, true, true)
	return cmd
}

// exampleLine is the worked example: 400 gpm through 100 ft of 6 in pipe.
func exampleLine() pipeline.Input {
	return pipeline.Input{
		Name: "example",
		Segments: []headloss.Segment{{
			Name:       "6 in line",
			FlowGPM:    400,
			DiameterIn: 6,
			LengthFt:   100,
			Fittings: headloss.Manifest{
				"Gate Valve":      1,
				"Globe Valve":     1,
				"Ball Valve":      4,
				"90 Deg Elbow LR": 8,
				"Sprocket":        1,
			},
		}},
	}
}

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Run the built-in 400 gpm, 6 in, 100 ft example",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPipeline(cmd, exampleLine())
		},
	}
}

func (a *app) runPipeline(cmd *cobra.Command, in pipeline.Input) error {
	res, err := pipeline.Calculate(a.calc, in)
	if err != nil {
		return err
	}
	for i, s := range res.Segments {
		a.warn(i, s.Name, s.Fittings.Notices)
	}
	if a.asJSON {
		return printJSON(cmd.OutOrStdout(), res)
	}
	printPipeline(cmd.OutOrStdout(), res)
	return nil
}

func (a *app) warn(segment int, name string, notices []headloss.UnsupportedFitting) {
	for _, n := range notices {
		if segment >= 0 {
			a.log.Warnw("unsupported fitting skipped", "segment", segment+1, "segment_name", name, "fitting", n.Name, "count", n.Count)
			continue
		}
		a.log.Warnw("unsupported fitting skipped", "fitting", n.Name, "count", n.Count)
	}
}
