package paint

import (
	"errors"
	"fmt"
	"strings"
)

// Tool is a pointer driven drawing tool.
type Tool int

const (
	// Pencil paints the cell under the pointer, again on every drag step.
	Pencil Tool = iota
	// Line joins two clicked cells.
	Line
	// Bezier draws a quadratic curve through a start, a control and an end click.
	Bezier
	// Bucket flood fills the region under the pointer.
	Bucket
)

// ErrUnknownTool is returned for tool or action names that do not exist.
var ErrUnknownTool = errors.New("unknown tool")

var toolNames = map[Tool]string{
	Pencil: "pencil",
	Line:   "line",
	Bezier: "bezier",
	Bucket: "bucket",
}

func (t Tool) String() string {
	if n, ok := toolNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Tools lists every tool in selection order.
func Tools() []Tool { return []Tool{Pencil, Line, Bezier, Bucket} }

// ParseTool resolves a tool name. "curve" and "fill" are accepted as aliases.
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pencil", "pen":
		return Pencil, nil
	case "line":
		return Line, nil
	case "bezier", "curve":
		return Bezier, nil
	case "bucket", "fill":
		return Bucket, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Meta actions run once and never start a gesture.
const (
	ActionUndo      = "undo"
	ActionRedo      = "redo"
	ActionClear     = "clear"
	ActionClearWith = "clear-with"
)

// Actions lists the meta action names accepted by Session.Action.
func Actions() []string { return []string{ActionUndo, ActionRedo, ActionClear, ActionClearWith} }
