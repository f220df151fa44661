package report

import (
	"fmt"
	"io"
	"time"

	"Pumpcalc/internal/calc/pipeline"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

var columns = []struct {
	head  string
	width float64
}{
	{"Segment", 34},
	{"Flow gpm", 20},
	{"Dia in", 16},
	{"Len ft", 18},
	{"Vel ft/s", 20},
	{"f", 18},
	{"Pipe ft", 20},
	{"Fittings ft", 22},
	{"Total ft", 20},
}

// Write renders res as an A4 PDF. Figures are rounded to two decimals,
// the friction factor to four.
func Write(w io.Writer, meta Meta, res pipeline.Result) error {
	if meta.Title == "" {
		meta.Title = "Pump Head Loss Report"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(6)
	if res.Name != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Pipeline: %s", res.Name))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	for _, c := range columns {
		pdf.CellFormat(c.width, 7, c.head, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, s := range res.Segments {
		cells := []string{
			s.Name,
			fmt.Sprintf("%.2f", s.Input.FlowGPM),
			fmt.Sprintf("%.2f", s.Input.DiameterIn),
			fmt.Sprintf("%.2f", s.Input.LengthFt),
			fmt.Sprintf("%.2f", s.Straight.VelocityFtS),
			fmt.Sprintf("%.4f", s.Straight.FrictionFactor),
			fmt.Sprintf("%.2f", s.Straight.HeadLossFt),
			fmt.Sprintf("%.2f", s.Fittings.HeadLossFt),
			fmt.Sprintf("%.2f", s.TotalHeadFt),
		}
		for i, c := range columns {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(c.width, 6, cells[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Total head loss: %.2f ft", res.TotalHeadFt))
	pdf.Ln(8)

	if notices := res.Notices(); len(notices) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, "Skipped fittings")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		for _, n := range notices {
			pdf.Cell(0, 5, fmt.Sprintf("%s: %s x%d (no resistance coefficient)", n.SegmentName, n.Name, n.Count))
			pdf.Ln(5)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, res.Notes, "", "L", false)
	if meta.Notes != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 5, meta.Notes, "", "L", false)
	}

	return pdf.Output(w)
}
