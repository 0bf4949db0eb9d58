package insight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// StageNameFunc resolves a life stage id to its display name.
type StageNameFunc func(ctx context.Context, id int64) (string, error)

type Handler struct {
	svc       Service
	stageName StageNameFunc
	validate  *validator.Validate
}

func NewHandler(svc Service, stageName StageNameFunc) *Handler {
	return &Handler{
		svc:       svc,
		stageName: stageName,
		validate:  validator.New(),
	}
}

type ResultsRequest struct {
	SymptomIDs  []int64 `json:"symptom_ids" validate:"required,min=1,dive,gt=0"`
	LifeStageID *int64  `json:"life_stage_id" validate:"omitempty,gt=0"`
}

// HandleResults produces the full results bundle for one quiz submission.
func (h *Handler) HandleResults(w http.ResponseWriter, r *http.Request) {
	var req ResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	var stageName string
	if req.LifeStageID != nil {
		name, err := h.stageName(r.Context(), *req.LifeStageID)
		if err != nil {
			http.Error(w, "Unknown life stage", http.StatusBadRequest)
			return
		}
		stageName = name
	}

	bundle, err := h.svc.Assemble(r.Context(), req.SymptomIDs, req.LifeStageID, stageName)
	if err != nil {
		if errors.Is(err, ErrEmptySymptomSet) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to assemble results: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bundle)
}

// HandleIntro serves the cached quiz intro line.
func (h *Handler) HandleIntro(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"intro": h.svc.QuizIntro(r.Context()),
	})
}

// HandleTopSymptoms serves the top reported symptoms per life stage.
func (h *Handler) HandleTopSymptoms(w http.ResponseWriter, r *http.Request) {
	perStage := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		perStage = n
	}

	rows, err := h.svc.TopSymptomsByStage(r.Context(), perStage)
	if err != nil {
		http.Error(w, "Failed to load analytics: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"top_symptoms": rows})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/results", h.HandleResults)
	r.Get("/intro", h.HandleIntro)
	r.Get("/analytics/top-symptoms", h.HandleTopSymptoms)
}
