package models

// Edge connects two nodes by id, directed source to target. Multiple edges may
// target the same node and a node may fan out to several targets. The model
// itself does not forbid cycles; traversal stays safe through the resolver's
// visited set and reference cycles are rejected at validation time.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// Touches reports whether the edge has the given node id on either end.
func (e *Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}
