package theme

import (
	"net/url"

	"github.com/iw2rmb/inkwell/engine"
)

// Option selects a theme: a name ("light", "dark") or a custom fragment.
// Options are comparable. The zero Option is light.
type Option struct {
	name   string
	custom engine.Extension
}

var (
	Light = Named("light")
	Dark  = Named("dark")
)

// Named selects a built-in theme by name. Unknown names render as light.
func Named(name string) Option { return Option{name: name} }

// Custom selects a caller-supplied theme fragment.
func Custom(ext engine.Extension) Option { return Option{custom: ext} }

// Name returns the theme name, or "custom".
func (o Option) Name() string {
	if o.custom != nil {
		return "custom"
	}
	if o.name == "" {
		return "light"
	}
	return o.name
}

// Extension returns the fragment for o.
func (o Option) Extension() engine.Extension {
	if o.custom != nil {
		return o.custom
	}
	if o.name == "dark" {
		return GithubDark
	}
	return GithubLight
}

// ParseName maps user input to an Option: exactly "dark" selects dark,
// anything else light.
func ParseName(s string) Option {
	if s == "dark" {
		return Dark
	}
	return Light
}

// FromQuery reads the "theme" query parameter.
func FromQuery(q url.Values) Option {
	return ParseName(q.Get("theme"))
}
