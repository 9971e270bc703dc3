package engine

import "github.com/charmbracelet/bubbles/key"

// Command runs against a view and reports whether it handled the key.
type Command func(v *View) bool

// KeyBinding maps keys to a command. Key names follow Bubble Tea's
// tea.KeyMsg.String form, e.g. "ctrl+space", "shift+tab", "f9".
type KeyBinding struct {
	Key key.Binding
	Run Command
}

// Bind builds a binding for keys.
func Bind(run Command, keys ...string) KeyBinding {
	return KeyBinding{Key: key.NewBinding(key.WithKeys(keys...)), Run: run}
}

// BindHelp builds a binding with help text.
func BindHelp(run Command, help, desc string, keys ...string) KeyBinding {
	return KeyBinding{
		Key: key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc)),
		Run: run,
	}
}

// Keymap contributes bindings. Keymaps from later fragments, or wrapped in a
// higher Prec, take precedence;
// within one keymap the first matching binding whose command handles the key
// wins.
func Keymap(bindings ...KeyBinding) Extension {
	return Keymaps.Of(append([]KeyBinding(nil), bindings...))
}

type keyName string

func (k keyName) String() string { return string(k) }

func (b KeyBinding) matches(k string) bool {
	return b.Run != nil && key.Matches(keyName(k), b.Key)
}

// Bindings returns every enabled binding of s in precedence order.
func Bindings(s *State) []KeyBinding {
	maps := Keymaps.Get(s)
	var out []KeyBinding
	for i := len(maps) - 1; i >= 0; i-- {
		for _, b := range maps[i] {
			if b.Key.Enabled() {
				out = append(out, b)
			}
		}
	}
	return out
}
