package importer

import (
	"encoding/json"
	"net/http"

	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/calc/pipeline"
	"Pumpcalc/internal/logger"
)

const MaxUploadSize = 10 << 20

type Handler struct {
	Calculator headloss.Calculator
	Log        *logger.Logger
}

type ImportResult struct {
	Count   int             `json:"count"`
	Result  pipeline.Result `json:"result"`
	Skipped []Skipped       `json:"skipped,omitempty"`
}

func (h *Handler) Pipeline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	wb, err := Read(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := pipeline.Calculate(h.Calculator, wb.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pipeline.LogNotices(h.Log, res)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Count: len(res.Segments), Result: res, Skipped: wb.Skipped})
}
