package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the deck.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit       key.Binding
	Interrupt  key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Tab1       key.Binding
	Tab2       key.Binding
	Tab3       key.Binding
	Submit     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Help       key.Binding
}

// ShortHelp returns the compact set of keybindings shown by default in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextTab, k.Submit, k.Quit}
}

// FullHelp returns the expanded keybinding groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.Submit, k.Help, k.Quit, k.Interrupt},
	}
}

// keys holds the default key bindings. Plain rune bindings (q, ?, 1-3) are
// ignored on the terminal tab, where every rune goes to the command input.
var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Interrupt:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit anywhere")),
	NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Tab1:       key.NewBinding(key.WithKeys("1", "f1"), key.WithHelp("1/f1", "system")),
	Tab2:       key.NewBinding(key.WithKeys("2", "f2"), key.WithHelp("2/f2", "terminal")),
	Tab3:       key.NewBinding(key.WithKeys("3", "f3"), key.WithHelp("3/f3", "processes")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run command")),
	ScrollUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "scroll up")),
	ScrollDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/dn", "scroll down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
