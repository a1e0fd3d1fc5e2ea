package chat

import (
	"context"
	"errors"

	"github.com/symptexlab/symptex-api/internal/model/chat"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRole     = errors.New("invalid message role")
)

// Store owns conversation identity and ordered message history. It is the
// only shared mutable state in the core; implementations must keep
// ResolveOrCreate safe under concurrent first-time creation of the same id.
type Store interface {
	// ResolveOrCreate returns the existing session or creates it atomically.
	// Two racing calls for the same unseen id yield the same single session.
	ResolveOrCreate(ctx context.Context, sessionID, patientID string) (chat.Session, error)

	// Append adds a message with a timestamp strictly later than every prior
	// message of the session.
	Append(ctx context.Context, sessionID string, role chat.Role, content string) (chat.Message, error)

	// History returns all messages of the session in timestamp order. A
	// session without messages yields an empty slice.
	History(ctx context.Context, sessionID string) ([]chat.Message, error)

	// Reset deletes the session and all its messages. Resetting an unknown
	// id is a no-op, not an error.
	Reset(ctx context.Context, sessionID string) error
}
