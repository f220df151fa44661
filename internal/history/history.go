package history

import (
	"encoding/json"
	"net/http"
	"strconv"

	"Pumpcalc/internal/auth"
	"Pumpcalc/internal/calc/headloss"
	"Pumpcalc/internal/calc/pipeline"
	"Pumpcalc/internal/logger"
	"Pumpcalc/internal/repo"
)

// Handler saves pipeline results for the logged-in user. Results are
// recomputed server side so stored figures always come from the calculator.
type Handler struct {
	Repo       repo.Repository
	Calculator headloss.Calculator
	Log        *logger.Logger
}

type SaveResponse struct {
	ID     int             `json:"id"`
	Result pipeline.Result `json:"result"`
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input pipeline.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := pipeline.Calculate(h.Calculator, input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}

	id, err := h.Repo.SaveCalculation(r.Context(), userID, res.Name, res.TotalHeadFt, payload)
	if err != nil {
		if h.Log != nil {
			h.Log.Errorw("save calculation failed", "user_id", userID, "err", err)
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SaveResponse{ID: id, Result: res})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	list, err := h.Repo.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		if h.Log != nil {
			h.Log.Errorw("list calculations failed", "user_id", userID, "err", err)
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
