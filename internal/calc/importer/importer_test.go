package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, segments, fittings [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"name", "flow_gpm", "diameter_in", "length_ft"}))
	for i, row := range segments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	if fittings != nil {
		_, err := f.NewSheet(FittingsSheet)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(FittingsSheet, "A1", &[]interface{}{"segment", "fitting", "count"}))
		for i, row := range fittings {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(FittingsSheet, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead(t *testing.T) {
	buf := workbook(t,
		[][]interface{}{
			{"suction", 400, 8, 20},
			{"discharge", 400, 6, 100},
			{"broken", "lots", 6, 100},
		},
		[][]interface{}{
			{"discharge", "Gate Valve", 1},
			{"discharge", "Ball Valve", 2},
			{"discharge", "Ball Valve", 2},
			{"discharge", "Sprocket", 1},
			{"nowhere", "Gate Valve", 1},
		},
	)

	wb, err := Read(buf)
	require.NoError(t, err)
	require.Len(t, wb.Input.Segments, 2)

	discharge := wb.Input.Segments[1]
	assert.Equal(t, "discharge", discharge.Name)
	assert.Equal(t, 400.0, discharge.FlowGPM)
	assert.Equal(t, 6.0, discharge.DiameterIn)
	assert.Equal(t, 100.0, discharge.LengthFt)
	assert.Equal(t, headloss.Manifest{"Gate Valve": 1, "Ball Valve": 4, "Sprocket": 1}, discharge.Fittings)
	assert.Nil(t, wb.Input.Segments[0].Fittings)

	require.Len(t, wb.Skipped, 2)
	assert.Equal(t, 4, wb.Skipped[0].Row)
	assert.Equal(t, FittingsSheet, wb.Skipped[1].Sheet)
}

func TestReadWithoutFittingsSheet(t *testing.T) {
	wb, err := Read(workbook(t, [][]interface{}{{"only", 250, 4, 60}}, nil))
	require.NoError(t, err)
	require.Len(t, wb.Input.Segments, 1)
	assert.Empty(t, wb.Skipped)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(workbook(t, nil, nil))
	assert.Error(t, err)

	_, err = Read(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestHandlerPipeline(t *testing.T) {
	buf := workbook(t,
		[][]interface{}{{"discharge", 400, 6, 100}},
		[][]interface{}{{"discharge", "Globe Valve", 1}},
	)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "line.xlsx")
	require.NoError(t, err)
	_, err = part.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h := &Handler{Calculator: headloss.New(), Log: logger.Nop()}
	h.Pipeline(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res ImportResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 1, res.Count)
	assert.Greater(t, res.Result.TotalHeadFt, res.Result.Segments[0].Straight.HeadLossFt)
}

func TestHandlerPipelineRequiresFile(t *testing.T) {
	h := &Handler{Calculator: headloss.New()}
	rec := httptest.NewRecorder()
	h.Pipeline(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadSkipsDuplicateSegmentName(t *testing.T) {
	buf := workbook(t,
		[][]interface{}{
			{"line", 400, 6, 100},
			{"line", 200, 4, 50},
		},
		[][]interface{}{{"line", "Globe Valve", 1}},
	)

	wb, err := Read(buf)
	require.NoError(t, err)
	require.Len(t, wb.Input.Segments, 1)
	assert.Equal(t, 6.0, wb.Input.Segments[0].DiameterIn)
	assert.Equal(t, headloss.Manifest{"Globe Valve": 1}, wb.Input.Segments[0].Fittings)

	require.Len(t, wb.Skipped, 1)
	assert.Equal(t, 3, wb.Skipped[0].Row)
	assert.Contains(t, wb.Skipped[0].Reason, "duplicate segment name")
}

func TestReadSkipsNegativeFittingCount(t *testing.T) {
	buf := workbook(t,
		[][]interface{}{{"line", 400, 6, 100}},
		[][]interface{}{
			{"line", "Gate Valve", -2},
			{"line", "Ball Valve", 1},
		},
	)

	wb, err := Read(buf)
	require.NoError(t, err)
	assert.Equal(t, headloss.Manifest{"Ball Valve": 1}, wb.Input.Segments[0].Fittings)

	require.Len(t, wb.Skipped, 1)
	assert.Equal(t, FittingsSheet, wb.Skipped[0].Sheet)
	assert.Equal(t, 2, wb.Skipped[0].Row)
}
