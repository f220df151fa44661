package report

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/calc/pipeline"
	"Pumpcalc/internal/logger"
)

type Input struct {
	Meta
	Pipeline pipeline.Input `json:"pipeline"`
}

type Handler struct {
	Calculator headloss.Calculator
	Log        *logger.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := pipeline.Calculate(h.Calculator, input.Pipeline)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pipeline.LogNotices(h.Log, res)

	var buf bytes.Buffer
	if err := Write(&buf, input.Meta, res); err != nil {
		if h.Log != nil {
			h.Log.Errorw("report generation failed", "err", err)
		}
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"headloss-report.pdf\"")
	w.Write(buf.Bytes())
}
