package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	simmodel "github.com/symptexlab/symptex-api/internal/model/sim"
	"github.com/symptexlab/symptex-api/internal/service/sim"
)

// Service is the part of the simulation core the websocket transport needs.
type Service interface {
	Chat(ctx context.Context, req sim.ChatRequest, emit sim.EmitFunc) error
}

// Handler provides chat over a websocket: one request frame in, the reply
// streamed back as fragment frames, an end frame after the last fragment.
// A connection carries any number of turns.
type Handler struct {
	svc      Service
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(svc Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		svc: svc,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Message       string `json:"message"`
	Model         string `json:"model"`
	Condition     string `json:"condition"`
	Talkativeness string `json:"talkativeness"`
	PatientID     string `json:"patientId"`
	SessionID     string `json:"sessionId"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Content   string `json:"content,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		h.serveTurn(r.Context(), conn, inbound)
	}
}

func (h *Handler) serveTurn(ctx context.Context, conn *websocket.Conn, inbound inboundMessage) {
	sessionID := inbound.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	req := sim.ChatRequest{
		SessionID: sessionID,
		PatientID: inbound.PatientID,
		Message:   inbound.Message,
		Config: simmodel.Config{
			Model:         inbound.Model,
			Condition:     simmodel.Condition(inbound.Condition),
			Talkativeness: simmodel.Talkativeness(inbound.Talkativeness),
		},
	}

	emit := func(fragment string) error {
		return h.send(conn, outgoingMessage{
			Type:      "fragment",
			SessionID: sessionID,
			Content:   fragment,
		})
	}

	if err := h.svc.Chat(ctx, req, emit); err != nil {
		var vErr *simmodel.ValidationError
		message := "chat failed"
		switch {
		case errors.As(err, &vErr):
			message = vErr.Error()
		case errors.Is(err, sim.ErrPatientNotFound):
			message = "patient not found"
		default:
			h.log.Error("websocket chat failed",
				zap.String("session", sessionID),
				zap.Error(err))
		}
		h.send(conn, outgoingMessage{
			Type:      "error",
			SessionID: sessionID,
			Error:     message,
		})
		return
	}

	h.send(conn, outgoingMessage{
		Type:      "end",
		SessionID: sessionID,
	})
}

func (h *Handler) send(conn *websocket.Conn, msg outgoingMessage) error {
	msg.Timestamp = time.Now().UnixMilli()

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
