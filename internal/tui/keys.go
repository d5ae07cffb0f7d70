package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the task list view
type KeyMap struct {
	PrevCategory   key.Binding
	NextCategory   key.Binding
	Up             key.Binding
	Down           key.Binding
	Add            key.Binding
	Edit           key.Binding
	Toggle         key.Binding
	Move           key.Binding
	Delete         key.Binding
	Clear          key.Binding
	Search         key.Binding
	ClearSearch    key.Binding
	NewCategory    key.Binding
	RenameCategory key.Binding
	DeleteCategory key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevCategory:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev category")),
		NextCategory:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next category")),
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:           key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:         key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Move:           key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Delete:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Clear:          key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
		Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		NewCategory:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new category")),
		RenameCategory: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename category")),
		DeleteCategory: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete category")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevCategory, k.NextCategory},
		{k.Add, k.Edit, k.Toggle, k.Move, k.Delete, k.Clear},
		{k.Search, k.ClearSearch, k.NewCategory, k.RenameCategory, k.DeleteCategory},
		{k.Help, k.Quit},
	}
}
