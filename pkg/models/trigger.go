package models

// TriggerSourceID is the sentinel a configured-input reference uses to read a
// job-level workflow input instead of another node's output. References may
// also carry the trigger node's own id; both resolve to workflow input values.
const TriggerSourceID = "trigger"

// TriggerMethod is one of the ways a trigger node can start a run.
type TriggerMethod string

const (
	TriggerMethodManual   TriggerMethod = "manual"
	TriggerMethodWebhook  TriggerMethod = "webhook"
	TriggerMethodSchedule TriggerMethod = "schedule"
)

// FieldKind is the declared type of a workflow input or resource field.
type FieldKind string

const (
	FieldKindString  FieldKind = "string"
	FieldKindNumber  FieldKind = "number"
	FieldKindBoolean FieldKind = "boolean"
	FieldKindArray   FieldKind = "array"
	FieldKindObject  FieldKind = "object"
	FieldKindFile    FieldKind = "file"
)

// WorkflowInput declares a job-level parameter on a trigger node. Values are
// supplied at run time and any downstream node may reference them by name.
// Names form an unordered set, unique within the trigger.
type WorkflowInput struct {
	Name        string    `json:"name"     validate:"required"`
	Type        FieldKind `json:"type"     validate:"required"`
	Required    bool      `json:"required"`
	Description string    `json:"description,omitempty"`
	Default     any       `json:"default,omitempty"`
}

// TriggerData holds trigger node configuration: which methods are enabled, an
// optional schedule, and the declared workflow inputs.
type TriggerData struct {
	Methods  []TriggerMethod `json:"methods"`
	Schedule *ScheduleSpec   `json:"schedule,omitempty"`
	Inputs   []WorkflowInput `json:"inputs,omitempty"`
}

// HasMethod reports whether the given trigger method is enabled.
func (t *TriggerData) HasMethod(method TriggerMethod) bool {
	if t == nil {
		return false
	}

	for _, m := range t.Methods {
		if m == method {
			return true
		}
	}

	return false
}

// Input returns the declared workflow input with the given name.
func (t *TriggerData) Input(name string) (WorkflowInput, bool) {
	if t == nil {
		return WorkflowInput{}, false
	}

	for _, in := range t.Inputs {
		if in.Name == name {
			return in, true
		}
	}

	return WorkflowInput{}, false
}

// Clone returns a deep copy of the trigger data.
func (t *TriggerData) Clone() *TriggerData {
	if t == nil {
		return nil
	}

	clone := &TriggerData{
		Methods: append([]TriggerMethod(nil), t.Methods...),
		Inputs:  append([]WorkflowInput(nil), t.Inputs...),
	}

	if t.Schedule != nil {
		schedule := *t.Schedule
		clone.Schedule = &schedule
	}

	return clone
}

// normalizeInputs drops declarations with blank names and keeps the first
// declaration when a name repeats, preserving order otherwise.
func (t *TriggerData) normalizeInputs() {
	if t == nil || len(t.Inputs) == 0 {
		return
	}

	seen := make(map[string]bool, len(t.Inputs))
	kept := t.Inputs[:0]

	for _, in := range t.Inputs {
		if in.Name == "" || seen[in.Name] {
			continue
		}

		seen[in.Name] = true

		kept = append(kept, in)
	}

	t.Inputs = kept
}
