package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	simmodel "github.com/symptexlab/symptex-api/internal/model/sim"
	"github.com/symptexlab/symptex-api/internal/service/sim"
	"github.com/symptexlab/symptex-api/pkg/utils"
)

// Service is the part of the simulation core the chat endpoints need.
type Service interface {
	Chat(ctx context.Context, req sim.ChatRequest, emit sim.EmitFunc) error
	Reset(ctx context.Context, sessionID string) error
}

// Handler serves the streaming chat endpoint and session reset.
type Handler struct {
	svc Service
	log *zap.Logger
}

// New creates the chat handler.
func New(svc Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/reset/{sessionID}", h.handleReset)
}

type chatPayload struct {
	Message       string `json:"message"`
	Model         string `json:"model"`
	Condition     string `json:"condition"`
	Talkativeness string `json:"talkativeness"`
	PatientID     string `json:"patientId"`
	SessionID     string `json:"sessionId"`
}

// handleChat streams the patient reply as plain text. Headers leave with the
// first fragment, so failures before that still map onto proper status codes;
// after the first byte the stream itself carries any error text.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := payload.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	req := sim.ChatRequest{
		SessionID: sessionID,
		PatientID: payload.PatientID,
		Message:   payload.Message,
		Config: simmodel.Config{
			Model:         payload.Model,
			Condition:     simmodel.Condition(payload.Condition),
			Talkativeness: simmodel.Talkativeness(payload.Talkativeness),
		},
	}

	started := false
	emit := func(fragment string) error {
		if !started {
			utils.SetupStreamHeaders(w)
			w.Header().Set("X-Session-Id", sessionID)
			started = true
		}
		return utils.WriteStreamChunk(w, flusher, fragment)
	}

	err := h.svc.Chat(r.Context(), req, emit)
	if err == nil {
		if !started {
			// Empty reply stream; still answer with the session id.
			emit("")
		}
		return
	}

	if started || r.Context().Err() != nil {
		h.log.Warn("chat stream ended early",
			zap.String("session", sessionID),
			zap.Error(err))
		return
	}

	var vErr *simmodel.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, sim.ErrPatientNotFound):
		utils.RespondError(w, http.StatusNotFound, "patient not found")
	default:
		h.log.Error("chat request failed",
			zap.String("session", sessionID),
			zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "chat failed")
	}
}

// handleReset deletes the session. Unknown ids succeed as well.
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.svc.Reset(r.Context(), sessionID); err != nil {
		h.log.Error("reset failed", zap.String("session", sessionID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "reset failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
