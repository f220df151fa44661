package pipeline

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() Input {
	return Input{
		Name: "transfer line",
		Segments: []headloss.Segment{
			{Name: "suction", FlowGPM: 400, DiameterIn: 8, LengthFt: 20, Fittings: headloss.Manifest{"Gate Valve": 1}},
			{Name: "discharge", FlowGPM: 400, DiameterIn: 6, LengthFt: 100, Fittings: headloss.Manifest{
				"Gate Valve": 1, "Globe Valve": 1, "Ball Valve": 4, "90 Deg Elbow LR": 8, "Sprocket": 1,
			}},
		},
	}
}

func TestCalculate(t *testing.T) {
	calc := headloss.New()
	in := sampleInput()

	res, err := Calculate(calc, in)
	require.NoError(t, err)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, "suction", res.Segments[0].Name)
	assert.Equal(t, "discharge", res.Segments[1].Name)

	var sum float64
	for i, seg := range in.Segments {
		want, err := calc.Segment(seg)
		require.NoError(t, err)
		assert.Equal(t, want, res.Segments[i])
		sum += want.TotalHeadFt
	}
	assert.InDelta(t, sum, res.TotalHeadFt, 1e-12)

	notices := res.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, 1, notices[0].Segment)
	assert.Equal(t, "Sprocket", notices[0].Name)
}

func TestCalculateFailsOnBadSegment(t *testing.T) {
	in := sampleInput()
	in.Segments[1].DiameterIn = 0

	_, err := Calculate(headloss.New(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, headloss.ErrInvalidDimension)
	assert.Contains(t, err.Error(), "segment 2 (discharge)")
}

func TestCalculateEmpty(t *testing.T) {
	_, err := Calculate(headloss.New(), Input{})
	assert.Error(t, err)
}

func TestHandlerCalc(t *testing.T) {
	h := &Handler{Calculator: headloss.New(), Log: logger.Nop()}
	body, err := json.Marshal(sampleInput())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "transfer line", res.Name)
	assert.Greater(t, res.TotalHeadFt, 0.0)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"segments":[]}`))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
