package pipeline

import (
	"encoding/json"
	"net/http"

	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/logger"
)

type Handler struct {
	Calculator headloss.Calculator
	Log        *logger.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(h.Calculator, input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	LogNotices(h.Log, res)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// LogNotices writes one warning per unsupported fitting.
func LogNotices(log *logger.Logger, res Result) {
	if log == nil {
		return
	}
	for _, n := range res.Notices() {
		log.Warnw("unsupported fitting skipped",
			"segment", n.Segment+1,
			"segment_name", n.SegmentName,
			"fitting", n.Name,
			"count", n.Count,
		)
	}
}
