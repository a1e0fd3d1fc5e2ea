package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/symptexlab/symptex-api/internal/model/chat"
	"github.com/symptexlab/symptex-api/internal/model/patient"
	simmodel "github.com/symptexlab/symptex-api/internal/model/sim"
	"github.com/symptexlab/symptex-api/internal/service/ai"
	chatservice "github.com/symptexlab/symptex-api/internal/service/chat"
)

// ErrPatientNotFound signals that the referenced patient file does not
// exist. It terminates a chat request before any message is appended.
var ErrPatientNotFound = errors.New("patient not found")

// apologyMessage replaces further model output when the backend fails. It is
// emitted as stream content, never as a transport error: once streaming has
// begun the stream itself is the success path.
const apologyMessage = "Entschuldigung, es ist ein Fehler aufgetreten."

// EmitFunc receives one UTF-8 text fragment. Returning an error stops the
// pipeline; the fragment's delivery is then no longer assumed.
type EmitFunc func(fragment string) error

// ChatRequest carries one clinician turn against a simulated patient.
type ChatRequest struct {
	SessionID string
	PatientID string
	Message   string
	Config    simmodel.Config
}

// Service orchestrates response generation and transcript evaluation. It is
// the only writer of sessions and messages; the store is injected, never
// reached through ambient state.
type Service struct {
	store    chatservice.Store
	patients patient.Store
	ai       *ai.Service
	log      *zap.Logger
}

// NewService wires the pipelines to their collaborators.
func NewService(store chatservice.Store, patients patient.Store, aiSvc *ai.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, patients: patients, ai: aiSvc, log: log}
}

// Chat runs the generation pipeline: validate, resolve the patient file and
// session, persist the user turn, then stream the reply fragment by fragment
// through emit. The full reply is committed as a single patient message only
// after the stream has drained completely; a failed or abandoned stream
// commits nothing, so the user turn may remain without a reply.
func (s *Service) Chat(ctx context.Context, req ChatRequest, emit EmitFunc) error {
	if strings.TrimSpace(req.Message) == "" {
		return &simmodel.ValidationError{Field: "message", Value: req.Message}
	}
	if err := simmodel.Validate(req.Config); err != nil {
		return err
	}

	profile, ok := s.patients.FindByID(req.PatientID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, req.PatientID)
	}

	session, err := s.store.ResolveOrCreate(ctx, req.SessionID, profile.ID)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}

	history, err := s.store.History(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if _, err := s.store.Append(ctx, session.ID, chat.RoleUser, req.Message); err != nil {
		return fmt.Errorf("append user message: %w", err)
	}

	systemPrompt, examples := ai.Compose(req.Config.Condition, req.Config.Talkativeness, patient.Render(profile))

	stream, err := s.ai.Stream(ctx, req.Config.Model, systemPrompt, examples, historyMessages(history), req.Message)
	if err != nil {
		s.log.Error("backend stream failed to start",
			zap.String("session", session.ID),
			zap.String("model", req.Config.Model),
			zap.Error(err))
		return emit(apologyMessage)
	}
	defer stream.Close()

	var reply strings.Builder
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			if ctx.Err() != nil {
				// Caller is gone; abandon the turn without committing.
				return ctx.Err()
			}
			s.log.Error("backend stream failed mid-reply",
				zap.String("session", session.ID),
				zap.Int("received", reply.Len()),
				zap.Error(recvErr))
			return emit(apologyMessage)
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}

		reply.WriteString(chunk.Content)
		if err := emit(chunk.Content); err != nil {
			return fmt.Errorf("forward fragment: %w", err)
		}
	}

	// Single commit point: only a fully drained stream is persisted.
	if _, err := s.store.Append(ctx, session.ID, chat.RolePatient, reply.String()); err != nil {
		return fmt.Errorf("commit patient message: %w", err)
	}

	s.log.Info("chat turn completed",
		zap.String("session", session.ID),
		zap.String("patient", profile.ID),
		zap.Int("replyLength", reply.Len()))
	return nil
}

// Reset deletes the session and its history. Unknown ids succeed.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	return s.store.Reset(ctx, sessionID)
}

// Evaluate runs the rubric over an externally supplied transcript and
// streams the feedback through emit. It is stateless: no session or message
// is read or written, whatever the transcript claims.
func (s *Service) Evaluate(ctx context.Context, transcript []chat.Turn, emit EmitFunc) error {
	stream, err := s.ai.EvaluateStream(ctx, transcriptMessages(transcript))
	if err != nil {
		s.log.Error("evaluation stream failed to start", zap.Error(err))
		return emit(apologyMessage)
	}
	defer stream.Close()

	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			return nil
		}
		if recvErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Error("evaluation stream failed mid-reply", zap.Error(recvErr))
			return emit(apologyMessage)
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}

		if err := emit(chunk.Content); err != nil {
			return fmt.Errorf("forward fragment: %w", err)
		}
	}
}

// historyMessages maps persisted turns onto backend roles, oldest first.
func historyMessages(history []chat.Message) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(history))
	for _, message := range history {
		switch message.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(message.Content))
		case chat.RolePatient:
			messages = append(messages, schema.AssistantMessage(message.Content, nil))
		}
	}
	return messages
}

// transcriptMessages maps transcript turns onto backend roles. Turns with an
// unknown role are skipped rather than rejected; the transcript is caller
// data, not validated state.
func transcriptMessages(transcript []chat.Turn) []*schema.Message {
	if len(transcript) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(transcript))
	for _, turn := range transcript {
		switch turn.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Text))
		case chat.RolePatient:
			messages = append(messages, schema.AssistantMessage(turn.Text, nil))
		}
	}
	return messages
}
