package patient

import "time"

// Anamnesis is one categorized history entry of a patient file. A profile
// carries at most one answer per category.
type Anamnesis struct {
	Category string `json:"category"`
	Answer   string `json:"answer"`
}

// Profile is the structured patient file backing a simulated patient.
// Scalar fields are pointers where the source record may leave them empty;
// rendering substitutes explicit placeholders instead of omitting them.
type Profile struct {
	ID             string      `json:"id"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	BirthDate      *time.Time  `json:"birthDate,omitempty"`
	HeightCM       *int        `json:"heightCm,omitempty"`
	WeightKG       *float64    `json:"weightKg,omitempty"`
	GenderIdentity string      `json:"genderIdentity,omitempty"`
	GenderMedical  string      `json:"genderMedical,omitempty"`
	EthnicOrigin   string      `json:"ethnicOrigin,omitempty"`
	Anamneses      []Anamnesis `json:"anamneses"`
}
