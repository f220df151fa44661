package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Pumpcalc/internal/calc/importer"
	"Pumpcalc/internal/calc/pipeline"
	"Pumpcalc/internal/calc/report"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loadJob reads a pipeline from a YAML job file or an .xlsx workbook.
func (a *app) loadJob(path string) (pipeline.Input, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		wb, err := importer.ReadFile(path)
		if err != nil {
			return pipeline.Input{}, err
		}
		for _, s := range wb.Skipped {
			a.log.Warnw("row skipped", "sheet", s.Sheet, "row", s.Row, "reason", s.Reason)
		}
		return wb.Input, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return pipeline.Input{}, err
	}
	defer f.Close()

	var in pipeline.Input
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return pipeline.Input{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if in.Name == "" {
		in.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return in, nil
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <job.yaml>",
		Short: "Calculate every segment of a pipeline job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.loadJob(args[0])
			if err != nil {
				return err
			}
			return a.runPipeline(cmd, in)
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <book.xlsx>",
		Short: "Calculate a pipeline described in a spreadsheet",
		Long: `The first sheet lists segments (name, flow_gpm, diameter_in, length_ft)
below a header row. An optional "Fittings" sheet lists segment, fitting, count.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := importer.ReadFile(args[0])
			if err != nil {
				return err
			}
			for _, s := range wb.Skipped {
				a.log.Warnw("row skipped", "sheet", s.Sheet, "row", s.Row, "reason", s.Reason)
			}
			return a.runPipeline(cmd, wb.Input)
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	var meta report.Meta
	var out string
	cmd := &cobra.Command{
		Use:   "report <job.yaml|book.xlsx>",
		Short: "Write a PDF head loss report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.loadJob(args[0])
			if err != nil {
				return err
			}
			res, err := pipeline.Calculate(a.calc, in)
			if err != nil {
				return err
			}
			for i, s := range res.Segments {
				a.warn(i, s.Name, s.Fittings.Notices)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := report.Write(f, meta, res); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (total head loss %.2f ft)\n", out, res.TotalHeadFt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "headloss-report.pdf", "PDF file to write")
	cmd.Flags().StringVar(&meta.Project, "project", "", "project name")
	cmd.Flags().StringVar(&meta.Author, "author", "", "report author")
	cmd.Flags().StringVar(&meta.Title, "title", "", "report title")
	cmd.Flags().StringVar(&meta.Notes, "notes", "", "free text appended to the report")
	return cmd
}
