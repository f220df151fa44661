package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"Pumpcalc/internal/calc/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestStraightCommand(t *testing.T) {
	out, err := execute(t, "straight", "--flow", "400", "--dia", "6", "--length", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "is 0.96 feet")
	assert.Contains(t, out, "velocity for this section is 4.54")
}

func TestStraightCommandRejectsZeroDiameter(t *testing.T) {
	_, err := execute(t, "straight", "--flow", "400", "--dia", "0", "--length", "100")
	assert.Error(t, err)
}

func TestFittingsCommand(t *testing.T) {
	out, err := execute(t, "fittings", "--flow", "400", "--dia", "6",
		"--fitting", "Gate Valve=1,Globe Valve=1,Ball Valve=4,90 Deg Elbow LR=8,Sprocket=1")
	require.NoError(t, err)
	assert.Contains(t, out, "Head loss from fittings is 2.26 feet")
	assert.Contains(t, out, "Sprocket")
}

func TestExampleCommandJSON(t *testing.T) {
	out, err := execute(t, "example", "--json")
	require.NoError(t, err)

	var res pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Segments, 1)
	assert.InDelta(t, 3.2136, res.TotalHeadFt, 1e-4)
	assert.Len(t, res.Segments[0].Fittings.Notices, 1)
}

func TestRunAndReportCommands(t *testing.T) {
	dir := t.TempDir()
	job := filepath.Join(dir, "line.yaml")
	require.NoError(t, os.WriteFile(job, []byte(`
segments:
  - name: suction
    flow_gpm: 400
    diameter_in: 8
    length_ft: 20
    fittings:
      Gate Valve: 1
  - name: discharge
    flow_gpm: 400
    diameter_in: 6
    length_ft: 100
    fittings:
      Globe Valve: 1
      Ball Valve: 4
`), 0o644))

	out, err := execute(t, "run", job)
	require.NoError(t, err)
	assert.Contains(t, out, "discharge")
	assert.Contains(t, out, "Total head loss:")

	pdf := filepath.Join(dir, "out.pdf")
	out, err = execute(t, "report", job, "-o", pdf, "--project", "Plant")
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")
	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRunRejectsUnknownKeys(t *testing.T) {
	job := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(job, []byte("segmnts: []\n"), 0o644))
	_, err := execute(t, "run", job)
	assert.Error(t, err)
}
