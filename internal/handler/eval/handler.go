package eval

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/symptexlab/symptex-api/internal/model/chat"
	"github.com/symptexlab/symptex-api/internal/service/sim"
	"github.com/symptexlab/symptex-api/pkg/utils"
)

// Service is the evaluation entry point of the simulation core.
type Service interface {
	Evaluate(ctx context.Context, transcript []chat.Turn, emit sim.EmitFunc) error
}

// Handler serves rubric evaluation of submitted transcripts.
type Handler struct {
	svc Service
	log *zap.Logger
}

// New creates the evaluation handler.
func New(svc Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the evaluation route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/eval", h.handleEvaluate)
}

type evalPayload struct {
	Messages []struct {
		Role string `json:"role"`
		Text string `json:"text"`
	} `json:"messages"`
}

// handleEvaluate streams the feedback as plain text. The transcript comes
// entirely from the request; no session state is involved.
func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	var payload evalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	transcript := make([]chat.Turn, 0, len(payload.Messages))
	for _, m := range payload.Messages {
		transcript = append(transcript, chat.Turn{Role: chat.Role(m.Role), Text: m.Text})
	}

	started := false
	emit := func(fragment string) error {
		if !started {
			utils.SetupStreamHeaders(w)
			started = true
		}
		return utils.WriteStreamChunk(w, flusher, fragment)
	}

	if err := h.svc.Evaluate(r.Context(), transcript, emit); err != nil {
		if started || r.Context().Err() != nil {
			h.log.Warn("evaluation stream ended early", zap.Error(err))
			return
		}
		h.log.Error("evaluation failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "evaluation failed")
	}
}
