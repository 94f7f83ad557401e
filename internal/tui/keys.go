package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every binding of the editor screen.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	NextField key.Binding
	PrevField key.Binding

	// Selection
	Select    key.Binding
	SelectAdd key.Binding

	// Editing
	Edit     key.Binding
	Append   key.Binding
	InsertAt key.Binding
	Delete   key.Binding
	DeleteAt key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Plus     key.Binding
	Minus    key.Binding

	// Files
	Save     key.Binding
	SaveAs   key.Binding
	Open     key.Binding
	Export   key.Binding
	AutoOpen key.Binding

	// Prompts
	Confirm key.Binding
	Cancel  key.Binding

	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab", "prev field"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	SelectAdd: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "add to selection"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "i"),
		key.WithHelp("e", "edit field"),
	),
	Append: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add below"),
	),
	InsertAt: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "insert above"),
	),
	Delete: key.NewBinding(
		key.WithKeys("D", "delete"),
		key.WithHelp("D", "delete selected"),
	),
	DeleteAt: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete row"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "ctrl+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "ctrl+down"),
		key.WithHelp("J", "move down"),
	),
	Plus: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "+1s"),
	),
	Minus: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "-1s"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	SaveAs: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "save as"),
	),
	Open: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "open"),
	),
	Export: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "export"),
	),
	AutoOpen: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open first .txt"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp is the binding list shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.NextField, k.Edit, k.Select, k.SelectAdd,
		k.Append, k.DeleteAt, k.Delete, k.MoveUp, k.MoveDown,
		k.Plus, k.Minus, k.Save, k.SaveAs, k.Open, k.Export, k.Quit,
	}
}
