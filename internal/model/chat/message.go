package chat

import "time"

// Role identifies who produced a message. The set is closed: the clinician
// in training writes as "user", the simulated patient answers as "patient".
type Role string

const (
	RoleUser    Role = "user"
	RolePatient Role = "patient"
)

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	return r == RoleUser || r == RolePatient
}

// Message is a single persisted conversation turn. Within a session messages
// are totally ordered by CreatedAt.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Turn is one entry of an externally supplied transcript submitted for
// evaluation. Turns are never persisted and never checked against a Session.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
