package sim

import "fmt"

// Condition is the behavioral variant the simulated patient adopts.
type Condition string

const (
	ConditionDefault         Condition = "default"
	ConditionAlzheimer       Condition = "alzheimer"
	ConditionHearingImpaired Condition = "schwerhörig"
	ConditionAvoidant        Condition = "verdrängung"
)

// Talkativeness controls how verbose the generated replies are.
type Talkativeness string

const (
	TalkativenessTerse     Talkativeness = "kurz angebunden"
	TalkativenessBalanced  Talkativeness = "ausgewogen"
	TalkativenessExpansive Talkativeness = "ausschweifend"
)

// models lists the backend models the upstream gateway serves. Selection is
// exact-match; there is no normalization or aliasing.
var models = []string{
	"gemma-3-27b-it",
	"llama-3.3-70b-instruct",
	"llama-3.1-sauerkrautlm-70b-instruct",
	"qwq-32b",
	"mistral-large-instruct",
	"qwen3-235b-a22b",
}

var conditions = []Condition{
	ConditionDefault,
	ConditionAlzheimer,
	ConditionHearingImpaired,
	ConditionAvoidant,
}

var talkativenessLevels = []Talkativeness{
	TalkativenessTerse,
	TalkativenessBalanced,
	TalkativenessExpansive,
}

// Models returns the closed set of backend model identifiers.
func Models() []string {
	return append([]string(nil), models...)
}

// Conditions returns the closed set of patient conditions.
func Conditions() []Condition {
	return append([]Condition(nil), conditions...)
}

// TalkativenessLevels returns the closed set of talkativeness registers.
func TalkativenessLevels() []Talkativeness {
	return append([]Talkativeness(nil), talkativenessLevels...)
}

// Config selects the backend model and the behavioral register for one
// generation request. A Config is either fully valid or rejected; there is
// no partial state.
type Config struct {
	Model         string        `json:"model"`
	Condition     Condition     `json:"condition"`
	Talkativeness Talkativeness `json:"talkativeness"`
}

// ValidationError names the first field of a request that failed validation.
// It carries the offending value so handlers can echo it back to the caller.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// Validate checks the configuration against the closed sets in the fixed
// order model, condition, talkativeness and reports the first mismatch.
// It performs no side effects and must run before any session or model work.
func Validate(cfg Config) error {
	if !containsString(models, cfg.Model) {
		return &ValidationError{Field: "model", Value: cfg.Model}
	}
	if !containsCondition(conditions, cfg.Condition) {
		return &ValidationError{Field: "condition", Value: string(cfg.Condition)}
	}
	if !containsTalkativeness(talkativenessLevels, cfg.Talkativeness) {
		return &ValidationError{Field: "talkativeness", Value: string(cfg.Talkativeness)}
	}
	return nil
}

func containsString(set []string, v string) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}

func containsCondition(set []Condition, v Condition) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}

func containsTalkativeness(set []Talkativeness, v Talkativeness) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}
