package patient

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/symptexlab/symptex-api/internal/model/patient"
	"github.com/symptexlab/symptex-api/pkg/utils"
)

// Handler exposes the patient files.
type Handler struct {
	patients patient.Store
}

// New creates the patient handler.
func New(patients patient.Store) *Handler {
	return &Handler{patients: patients}
}

// RegisterRoutes mounts the patient routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/patients", h.handleList)
	r.Get("/patients/{patientID}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.patients.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	profile, ok := h.patients.FindByID(patientID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "patient not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, profile)
}
