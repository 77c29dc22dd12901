package models

// Registration wizard steps, in order.
const (
	StepAccount = iota + 1
	StepDietary
	StepAllergens
	StepSustainability
)

// RegistrationDraft is the accumulated wizard state. Data holds every field
// entered so far as one flat object; step updates merge into it shallowly so
// a later step never clobbers a sibling step's fields. The whole draft is
// persisted on every change and deleted only on successful submission.
type RegistrationDraft struct {
	CurrentStep int                    `json:"currentStep"`
	Submitted   bool                   `json:"submitted"`
	Data        map[string]interface{} `json:"data"`
}

// NewRegistrationDraft starts a draft at the account step.
func NewRegistrationDraft() *RegistrationDraft {
	return &RegistrationDraft{
		CurrentStep: StepAccount,
		Data:        map[string]interface{}{},
	}
}

// StringField reads a string-valued draft field, "" when absent or not a string.
func (d *RegistrationDraft) StringField(key string) string {
	if d == nil || d.Data == nil {
		return ""
	}
	s, _ := d.Data[key].(string)
	return s
}

// StringsField reads a list-valued draft field, tolerating the []interface{}
// shape a JSON round-trip produces.
func (d *RegistrationDraft) StringsField(key string) []string {
	if d == nil || d.Data == nil {
		return nil
	}
	switch v := d.Data[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
