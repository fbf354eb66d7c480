package models

// InputField describes one named field of a resource's request payload.
type InputField struct {
	Name        string    `json:"name"     validate:"required"`
	Type        FieldKind `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description,omitempty"`
	Default     any       `json:"default,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
}

// PromptParam is a prompt template parameter declared by a resource. The input
// resolver translates these into string fields alongside the schema fields.
type PromptParam struct {
	Name        string `json:"name" validate:"required"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default,omitempty"`
}

// InputSchema is the declared input surface of a catalog resource, split by
// where each field travels on the wire.
type InputSchema struct {
	Body         []InputField  `json:"body,omitempty"`
	Query        []InputField  `json:"query,omitempty"`
	Header       []InputField  `json:"header,omitempty"`
	PromptParams []PromptParam `json:"prompt_params,omitempty"`
}

// ResourceRef is the immutable catalog identity a resource node carries. Price
// is a smallest-unit integer; divide by cost.MicroUnit for the decimal amount.
type ResourceRef struct {
	ID          string      `json:"id"    validate:"required"`
	Name        string      `json:"name"  validate:"required"`
	PriceMicro  int64       `json:"price_micro"`
	Schema      InputSchema `json:"schema"`
	Avatar      string      `json:"avatar,omitempty"`
	Description string      `json:"description,omitempty"`
}

// InputKind selects how a configured input sources its value.
type InputKind string

const (
	// InputKindStatic holds a literal value entered in the editor.
	InputKindStatic InputKind = "static"
	// InputKindReference reads another node's output, or a workflow input when
	// SourceNodeID is the trigger id or the TriggerSourceID sentinel.
	InputKindReference InputKind = "reference"
)

// ConfiguredInput is the chosen source for one field of a resource's request
// payload. Choosing static over reference (or vice versa) replaces the entry
// wholesale; there is no partial merge between the two shapes.
type ConfiguredInput struct {
	Kind         InputKind `json:"kind"`
	Value        any       `json:"value,omitempty"`
	SourceNodeID string    `json:"source_node_id,omitempty"`
	SourceField  string    `json:"source_field,omitempty"`
}

// IsSet reports whether the entry carries a usable value: a non-empty static
// literal or a reference naming a source node.
func (c ConfiguredInput) IsSet() bool {
	switch c.Kind {
	case InputKindStatic:
		return c.Value != nil && c.Value != ""
	case InputKindReference:
		return c.SourceNodeID != ""
	default:
		return false
	}
}

// ResourceData holds a resource node's catalog reference and the map of
// configured inputs, keyed by schema field name. A field absent from the map
// is unset.
type ResourceData struct {
	Ref              ResourceRef                `json:"ref"`
	ConfiguredInputs map[string]ConfiguredInput `json:"configured_inputs,omitempty"`
}

// SetInput replaces the configured entry for a field.
func (r *ResourceData) SetInput(field string, input ConfiguredInput) {
	if r.ConfiguredInputs == nil {
		r.ConfiguredInputs = make(map[string]ConfiguredInput)
	}

	r.ConfiguredInputs[field] = input
}

// ClearInputs drops every configured input. Used on paste, where references
// into the old graph would dangle.
func (r *ResourceData) ClearInputs() {
	r.ConfiguredInputs = nil
}

// Clone returns a deep copy of the resource data.
func (r *ResourceData) Clone() *ResourceData {
	if r == nil {
		return nil
	}

	clone := &ResourceData{Ref: r.Ref}

	clone.Ref.Schema.Body = append([]InputField(nil), r.Ref.Schema.Body...)
	clone.Ref.Schema.Query = append([]InputField(nil), r.Ref.Schema.Query...)
	clone.Ref.Schema.Header = append([]InputField(nil), r.Ref.Schema.Header...)
	clone.Ref.Schema.PromptParams = append([]PromptParam(nil), r.Ref.Schema.PromptParams...)

	if r.ConfiguredInputs != nil {
		clone.ConfiguredInputs = make(map[string]ConfiguredInput, len(r.ConfiguredInputs))
		for field, input := range r.ConfiguredInputs {
			clone.ConfiguredInputs[field] = input
		}
	}

	return clone
}
