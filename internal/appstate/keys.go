package appstate

import (
	"golang.org/x/mobile/event/key"
)

// Commands bound to keys. Tool and meta action commands reuse the names
// understood by paint.ParseTool and Session.Action.
const (
	cmdCommitLine  = "commit-line"
	cmdCommitCurve = "commit-curve"
	cmdCancel      = "cancel"
	cmdNextColor   = "next-color"
	cmdPrevColor   = "prev-color"
	cmdSave        = "save"
	cmdExport      = "export"
	cmdCopy        = "copy"
	cmdCopyImage   = "copy-image"
	cmdPaste       = "paste"
	cmdToggleSize  = "toggle-size"
	cmdGrid        = "grid"
	cmdQuit        = "quit"
)

// KeyShortcut describes a key binding for the help text.
type KeyShortcut struct {
	Key     string
	Command string
}

var keyboardShortcuts = []KeyShortcut{
	{"p", "pencil"}, {"l", "line"}, {"b", "bezier"}, {"f", "bucket"},
	{"u / Ctrl+Z", "undo"}, {"r / Ctrl+Y", "redo"}, {"c", "clear"}, {"w", "clear-with"},
	{"Enter", cmdCommitLine}, {"Shift+Enter", cmdCommitCurve}, {"Esc", cmdCancel},
	{"] / [", "next / previous colour"}, {"g", cmdGrid}, {"z", cmdToggleSize},
	{"Ctrl+S", cmdSave}, {"Ctrl+E", cmdExport},
	{"Ctrl+C", cmdCopy}, {"Ctrl+Shift+C", cmdCopyImage}, {"Ctrl+V", cmdPaste}, {"q", cmdQuit},
}

// KeyboardShortcuts lists the editor key bindings.
func KeyboardShortcuts() []KeyShortcut {
	return append([]KeyShortcut(nil), keyboardShortcuts...)
}

// keyCommand maps a key press to a command name, or "" when unbound.
func keyCommand(e key.Event) string {
	if e.Direction != key.DirPress && e.Direction != key.DirNone {
		return ""
	}
	ctrl := e.Modifiers&key.ModControl != 0
	shift := e.Modifiers&key.ModShift != 0
	switch e.Code {
	case key.CodeEscape:
		return cmdCancel
	case key.CodeReturnEnter:
		if shift {
			return cmdCommitCurve
		}
		return cmdCommitLine
	}
	if ctrl {
		switch e.Code {
		case key.CodeZ:
			return "undo"
		case key.CodeY:
			return "redo"
		case key.CodeS:
			return cmdSave
		case key.CodeE:
			return cmdExport
		case key.CodeC:
			if shift {
				return cmdCopyImage
			}
			return cmdCopy
		case key.CodeV:
			return cmdPaste
		}
		return ""
	}
	switch e.Rune {
	case 'p':
		return "pencil"
	case 'l':
		return "line"
	case 'b':
		return "bezier"
	case 'f':
		return "bucket"
	case 'u':
		return "undo"
	case 'r':
		return "redo"
	case 'c':
		return "clear"
	case 'w':
		return "clear-with"
	case ']':
		return cmdNextColor
	case '[':
		return cmdPrevColor
	case 'g':
		return cmdGrid
	case 'z':
		return cmdToggleSize
	case 'q':
		return cmdQuit
	}
	return ""
}
