package headloss

import (
	"encoding/json"
	"net/http"

	"Pumpcalc/internal/logger"
)

type Handler struct {
	Calc Calculator
	Log  *logger.Logger
}

type StraightInput struct {
	FlowGPM    float64 `json:"flow_gpm"`
	DiameterIn float64 `json:"diameter_in"`
	LengthFt   float64 `json:"length_ft"`
}

type FittingsInput struct {
	FlowGPM    float64  `json:"flow_gpm"`
	DiameterIn float64  `json:"diameter_in"`
	Fittings   Manifest `json:"fittings"`
}

func (h *Handler) Straight(w http.ResponseWriter, r *http.Request) {
	var input StraightInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Calc.StraightPipe(input.FlowGPM, input.DiameterIn, input.LengthFt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Fittings(w http.ResponseWriter, r *http.Request) {
	var input FittingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Calc.Fittings(input.Fittings, input.DiameterIn, input.FlowGPM)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.warn(res.Notices)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Segment(w http.ResponseWriter, r *http.Request) {
	var input Segment
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Calc.Segment(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.warn(res.Fittings.Notices)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) warn(notices []UnsupportedFitting) {
	if h.Log == nil {
		return
	}
	for _, n := range notices {
		h.Log.Warnw("unsupported fitting skipped", "fitting", n.Name, "count", n.Count)
	}
}
