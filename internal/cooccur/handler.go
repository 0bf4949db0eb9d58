package cooccur

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	recomputer *Recomputer
}

func NewHandler(recomputer *Recomputer) *Handler {
	return &Handler{recomputer: recomputer}
}

// HandleRecompute triggers a full cache rebuild. Intended to be called
// after an ingestion or seeding batch, not on every read.
func (h *Handler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	if err := h.recomputer.Recompute(r.Context()); err != nil {
		http.Error(w, "Recompute failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/cooccurrence/recompute", h.HandleRecompute)
}
