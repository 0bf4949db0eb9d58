package survey

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Handler struct {
	repo     Repository
	seeder   *Seeder
	logger   zerolog.Logger
	validate *validator.Validate
}

func NewHandler(repo Repository, seeder *Seeder, logger zerolog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		seeder:   seeder,
		logger:   logger,
		validate: validator.New(),
	}
}

// HandleQuizStructure serves the categories and symptoms the quiz renders.
func (h *Handler) HandleQuizStructure(w http.ResponseWriter, r *http.Request) {
	cats, err := h.repo.QuizStructure(r.Context())
	if err != nil {
		http.Error(w, "Failed to load quiz structure: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"categories": cats})
}

func (h *Handler) HandleLifeStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.repo.LifeStages(r.Context())
	if err != nil {
		http.Error(w, "Failed to load life stages: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"life_stages": stages})
}

type CreateResponseRequest struct {
	LifeStageID *int64                 `json:"life_stage_id" validate:"omitempty,gt=0"`
	Symptoms    []SymptomReportRequest `json:"symptoms" validate:"required,min=1,dive"`
}

type SymptomReportRequest struct {
	SymptomID int64 `json:"symptom_id" validate:"gt=0"`
	Severity  int   `json:"severity" validate:"gte=0,lte=3"`
}

// HandleCreateResponse records one anonymous quiz submission.
func (h *Handler) HandleCreateResponse(w http.ResponseWriter, r *http.Request) {
	var req CreateResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	seen := make(map[int64]bool, len(req.Symptoms))
	reports := make([]SymptomReport, 0, len(req.Symptoms))
	for _, s := range req.Symptoms {
		if seen[s.SymptomID] {
			http.Error(w, "Duplicate symptom in submission", http.StatusBadRequest)
			return
		}
		seen[s.SymptomID] = true
		reports = append(reports, SymptomReport{SymptomID: s.SymptomID, Severity: s.Severity})
	}

	resp, err := h.repo.CreateResponse(r.Context(), req.LifeStageID, reports)
	if err != nil {
		http.Error(w, "Failed to record response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"response_id": resp.ID.String()})
}

type SeedRequest struct {
	Responses int `json:"responses" validate:"gte=0,lte=100000"`
}

// HandleSeed seeds the taxonomy and, if requested, synthetic responses.
// Taxonomy seeding is idempotent; responses append.
func (h *Handler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	var req SeedRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Seeding can outlive an impatient client; detach from the request.
	ctx := context.WithoutCancel(r.Context())

	if err := h.seeder.SeedTaxonomy(ctx); err != nil {
		http.Error(w, "Seeding failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if req.Responses > 0 {
		if err := h.seeder.SeedResponses(ctx, req.Responses); err != nil {
			http.Error(w, "Seeding failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	counts, err := h.repo.Counts(r.Context())
	if err != nil {
		http.Error(w, "Failed to load counts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/quiz", h.HandleQuizStructure)
	r.Get("/life-stages", h.HandleLifeStages)
	r.Post("/responses", h.HandleCreateResponse)
}

func RegisterAdminRoutes(r chi.Router, h *Handler) {
	r.Post("/seed", h.HandleSeed)
}
