package editor

import (
	"log/slog"

	"github.com/iw2rmb/inkwell/binding"
)

// Config configures the Model. Unlike Props it is read once, by New.
type Config struct {
	// ContainerID names the render target. A random id is used when empty.
	ContainerID string

	Logger   *slog.Logger
	Observer binding.Observer

	// KeyMap holds the clipboard bindings handled before the view's keymaps.
	KeyMap       KeyMap
	Clipboard    Clipboard
	ScrollPolicy ScrollPolicy
}
