package models

// TransformKind selects how a transform node reshapes data.
type TransformKind string

const (
	TransformKindExtract  TransformKind = "extract"  // Pull a value out by field path
	TransformKindTemplate TransformKind = "template" // Render a string template
	TransformKindCode     TransformKind = "code"     // Run a user-supplied code body
	TransformKindCombine  TransformKind = "combine"  // Merge fields from several nodes
)

// CombineEntry maps one field of a combine transform's output to a value read
// from another node.
type CombineEntry struct {
	FieldName    string `json:"field_name"     validate:"required"`
	SourceNodeID string `json:"source_node_id" validate:"required"`
	SourcePath   string `json:"source_path,omitempty"`
}

// TransformData holds a transform node's kind and its kind-specific
// configuration. Only the fields matching Kind are meaningful.
type TransformData struct {
	Kind      TransformKind  `json:"kind" validate:"required"`
	FieldPath string         `json:"field_path,omitempty"`
	Template  string         `json:"template,omitempty"`
	Code      string         `json:"code,omitempty"`
	Entries   []CombineEntry `json:"entries,omitempty"`
}

// Clone returns a deep copy of the transform data.
func (t *TransformData) Clone() *TransformData {
	if t == nil {
		return nil
	}

	return &TransformData{
		Kind:      t.Kind,
		FieldPath: t.FieldPath,
		Template:  t.Template,
		Code:      t.Code,
		Entries:   append([]CombineEntry(nil), t.Entries...),
	}
}
