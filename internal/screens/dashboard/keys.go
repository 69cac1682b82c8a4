package dashboard

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/sumclock/internal/ui/layout"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Inc     key.Binding
	Dec     key.Binding
	Start   key.Binding
	Stop    key.Binding
	History key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑↓", "Focus"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("tab", "Focus"),
		),
		Inc: key.NewBinding(
			key.WithKeys("+", "=", "right", "l"),
			key.WithHelp("+/-", "Step"),
		),
		Dec: key.NewBinding(
			key.WithKeys("-", "_", "left", "h"),
			key.WithHelp("-", "Step"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("S", "Restart timer"),
		),
		Stop: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("P", "Stop timer"),
		),
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("⇧H", "History"),
		),
	}
}

// hints lists the footer hints. Up/Inc carry the combined help for their
// pairs.
func (k keyMap) hints() []layout.KeyHint {
	var hints []layout.KeyHint
	for _, b := range []key.Binding{k.Up, k.Inc, k.Start, k.Stop, k.History} {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}
