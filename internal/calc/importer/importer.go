package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/calc/pipeline"

	"github.com/xuri/excelize/v2"
)

// FittingsSheet is the optional sheet listing fittings per segment.
const FittingsSheet = "Fittings"

type Skipped struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type Workbook struct {
	Input   pipeline.Input `json:"input"`
	Skipped []Skipped      `json:"skipped,omitempty"`
}

// Read parses a workbook. The first sheet holds segments:
// name, flow_gpm, diameter_in, length_ft. Row 1 is a header.
func Read(r io.Reader) (Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Workbook{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func ReadFile(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Workbook{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(f *excelize.File) (Workbook, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Workbook{}, err
	}
	if len(rows) < 2 {
		return Workbook{}, fmt.Errorf("sheet %q has no segment rows", sheet)
	}

	var wb Workbook
	wb.Input.Name = sheet
	byName := map[string]int{}
	for i := 1; i < len(rows); i++ {
		seg, err := parseSegmentRow(rows[i])
		if err != nil {
			wb.Skipped = append(wb.Skipped, Skipped{Sheet: sheet, Row: i + 1, Reason: err.Error()})
			continue
		}
		if seg.Name == "" {
			seg.Name = fmt.Sprintf("row %d", i+1)
		}
		if _, dup := byName[seg.Name]; dup {
			wb.Skipped = append(wb.Skipped, Skipped{Sheet: sheet, Row: i + 1, Reason: fmt.Sprintf("duplicate segment name %q", seg.Name)})
			continue
		}
		byName[seg.Name] = len(wb.Input.Segments)
		wb.Input.Segments = append(wb.Input.Segments, seg)
	}

	if idx, err := f.GetSheetIndex(FittingsSheet); err == nil && idx >= 0 {
		rows, err := f.GetRows(FittingsSheet)
		if err != nil {
			return Workbook{}, err
		}
		for i := 1; i < len(rows); i++ {
			segName, fitting, count, err := parseFittingRow(rows[i])
			if err != nil {
				wb.Skipped = append(wb.Skipped, Skipped{Sheet: FittingsSheet, Row: i + 1, Reason: err.Error()})
				continue
			}
			pos, ok := byName[segName]
			if !ok {
				wb.Skipped = append(wb.Skipped, Skipped{Sheet: FittingsSheet, Row: i + 1, Reason: fmt.Sprintf("unknown segment %q", segName)})
				continue
			}
			seg := &wb.Input.Segments[pos]
			if seg.Fittings == nil {
				seg.Fittings = headloss.Manifest{}
			}
			seg.Fittings[fitting] += count
		}
	}

	if len(wb.Input.Segments) == 0 {
		return wb, fmt.Errorf("sheet %q has no valid segment rows", sheet)
	}
	return wb, nil
}

func parseSegmentRow(row []string) (headloss.Segment, error) {
	if len(row) < 4 {
		return headloss.Segment{}, fmt.Errorf("expected 4 columns, got %d", len(row))
	}
	flow, err := toFloat(row[1])
	if err != nil {
		return headloss.Segment{}, fmt.Errorf("flow_gpm: %w", err)
	}
	dia, err := toFloat(row[2])
	if err != nil {
		return headloss.Segment{}, fmt.Errorf("diameter_in: %w", err)
	}
	length, err := toFloat(row[3])
	if err != nil {
		return headloss.Segment{}, fmt.Errorf("length_ft: %w", err)
	}
	return headloss.Segment{
		Name:       strings.TrimSpace(row[0]),
		FlowGPM:    flow,
		DiameterIn: dia,
		LengthFt:   length,
	}, nil
}

func parseFittingRow(row []string) (string, string, int, error) {
	if len(row) < 3 {
		return "", "", 0, fmt.Errorf("expected 3 columns, got %d", len(row))
	}
	count, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return "", "", 0, fmt.Errorf("count: %w", err)
	}
	if count < 0 {
		return "", "", 0, fmt.Errorf("count %d must not be negative", count)
	}
	fitting := strings.TrimSpace(row[1])
	if fitting == "" {
		return "", "", 0, fmt.Errorf("empty fitting name")
	}
	return strings.TrimSpace(row[0]), fitting, count, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
