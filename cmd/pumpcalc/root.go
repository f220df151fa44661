package main

import (
	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/logger"

	"github.com/spf13/cobra"
)

type app struct {
	calc     headloss.Calculator
	log      *logger.Logger
	logLevel string
	asJSON   bool
}

func newRootCmd() *cobra.Command {
	a := &app{calc: headloss.New()}

	root := &cobra.Command{
		Use:   "pumpcalc",
		Short: "Head loss for pump sizing",
		Long: `Calculates friction head loss for incompressible flow through
clean commercial steel schedule 40 pipe and its fittings.

Valid for Re > 4000. The Reynolds number is not checked; make sure the
flow is turbulent before relying on the result. Elevation change is not
included.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logger.New(a.logLevel)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", logger.WarnLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		newStraightCmd(a),
		newFittingsCmd(a),
		newSegmentCmd(a),
		newExampleCmd(a),
		newRunCmd(a),
		newImportCmd(a),
		newReportCmd(a),
	)
	return root
}
