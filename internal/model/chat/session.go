package chat

import "time"

// Session is one ongoing anamnesis conversation between a clinician and the
// simulated patient. The id is supplied by the caller and immutable.
type Session struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	CreatedAt time.Time `json:"createdAt"`
}
