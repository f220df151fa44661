package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/calc/pipeline"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStraight(w io.Writer, dia, length float64, res headloss.StraightResult) {
	fmt.Fprintf(w, "Head loss for a pipe %g inches in diameter and %g feet long is %.2f feet\n", dia, length, res.HeadLossFt)
	fmt.Fprintf(w, "Average velocity for this section is %.2f ft/s\n", res.VelocityFtS)
	fmt.Fprintf(w, "Friction factor %.4f\n", res.FrictionFactor)
}

func printFittings(w io.Writer, res headloss.FittingsResult) {
	fmt.Fprintf(w, "Head loss from fittings is %.2f feet (K = %.3f)\n", res.HeadLossFt, res.KTotal)
	for _, n := range res.Notices {
		fmt.Fprintf(w, "Skipped fitting of unknown type: %s\n", n.Name)
	}
}

func printPipeline(w io.Writer, res pipeline.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "segment\tflow gpm\tdia in\tlength ft\tvel ft/s\tf\tpipe ft\tfittings ft\ttotal ft\t")
	for _, s := range res.Segments {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.4f\t%.2f\t%.2f\t%.2f\t\n",
			s.Name, s.Input.FlowGPM, s.Input.DiameterIn, s.Input.LengthFt,
			s.Straight.VelocityFtS, s.Straight.FrictionFactor,
			s.Straight.HeadLossFt, s.Fittings.HeadLossFt, s.TotalHeadFt)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nTotal head loss: %.2f feet\n", res.TotalHeadFt)
	for _, n := range res.Notices() {
		fmt.Fprintf(w, "Skipped fitting of unknown type in %s: %s\n", n.SegmentName, n.Name)
	}
}
