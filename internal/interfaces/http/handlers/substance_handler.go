package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/EatTrue/internal/application/scanning"
	"github.com/turtacn/EatTrue/internal/domain/substance"
)

// SubstanceHandler serves the read-only catalog.
type SubstanceHandler struct {
	svc scanning.Service
}

// NewSubstanceHandler creates a SubstanceHandler.
func NewSubstanceHandler(svc scanning.Service) *SubstanceHandler {
	return &SubstanceHandler{svc: svc}
}

// SubstanceSummary is the list view of a catalog record.
type SubstanceSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ENumber       string  `json:"e_number,omitempty"`
	SeverityScore float64 `json:"severity_score"`
}

// SubstanceDetail adds the display form of the ADI to the full record.
type SubstanceDetail struct {
	substance.Record
	FormattedADI string `json:"formatted_adi"`
}

// List handles GET /api/v1/substances.
func (h *SubstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	records := h.svc.ListSubstances(r.Context())
	out := make([]SubstanceSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, SubstanceSummary{
			ID:            rec.ID,
			Name:          rec.Name,
			ENumber:       rec.ENumber,
			SeverityScore: rec.SeverityScore,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"substances": out,
		"total":      len(out),
	})
}

// Get handles GET /api/v1/substances/{substanceID}.
func (h *SubstanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetSubstance(r.Context(), chi.URLParam(r, "substanceID"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SubstanceDetail{Record: *rec, FormattedADI: rec.FormattedADI()})
}

//Personal.AI order the ending
