package tui

import "time"

type tickMsg time.Time

type autoOpenedMsg struct {
	ok bool
}

// fileOp names a file operation started from the editor.
type fileOp int

const (
	opSave fileOp = iota
	opSaveAs
	opOpen
	opExport
)

func (op fileOp) String() string {
	switch op {
	case opSave:
		return "save"
	case opSaveAs:
		return "save as"
	case opOpen:
		return "open"
	case opExport:
		return "export"
	default:
		return "unknown"
	}
}

type fileOpMsg struct {
	op   fileOp
	path string
	err  error
}
