package graph

import (
	"errors"
	"fmt"

	"github.com/paygrid/paygrid/pkg/models"
)

// ErrNotDuplicable is returned when copying a trigger or output node, which
// are structurally singular per their role.
var ErrNotDuplicable = errors.New("node type cannot be copied")

// Position is a canvas coordinate supplied by the rendering layer.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Clipboard holds at most one copied node record. Copy captures the node's
// type and data only; pasted nodes get fresh ids and empty configured inputs,
// since references into the old graph would dangle on the clone.
type Clipboard struct {
	captured *models.Node
	pointer  *Position
	viewport Position
}

// NewClipboard creates an empty clipboard centered on the given viewport.
func NewClipboard(viewportCenter Position) *Clipboard {
	return &Clipboard{viewport: viewportCenter}
}

// TrackPointer records the last known pointer location, used as the paste
// position.
func (c *Clipboard) TrackPointer(p Position) {
	c.pointer = &p
}

// HasEntry reports whether the clipboard holds a copied node.
func (c *Clipboard) HasEntry() bool {
	return c.captured != nil
}

// Copy captures a deep clone of the node's type and data. Trigger and output
// nodes are rejected.
func (c *Clipboard) Copy(node *models.Node) error {
	if !node.IsDuplicable() {
		return fmt.Errorf("%w: %s", ErrNotDuplicable, node.Type)
	}

	c.captured = node.Clone()

	return nil
}

// Paste instantiates a fresh node from the captured record: a new unique id,
// deep-cloned data, and a fully cleared configured-inputs map. The captured
// record itself is never mutated, so repeated pastes are independent,
// freshly-keyed nodes.
func (c *Clipboard) Paste() (*models.Node, error) {
	if c.captured == nil {
		return nil, errors.New("clipboard is empty")
	}

	node := c.captured.Clone()
	node.ID = models.NewNodeID(node.Type)

	if node.Resource != nil {
		node.Resource.ClearInputs()
	}

	at := c.viewport
	if c.pointer != nil {
		at = *c.pointer
	}

	node.PositionX = at.X
	node.PositionY = at.Y

	return node, nil
}
