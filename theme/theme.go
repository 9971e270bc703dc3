// Package theme builds editor themes from color settings and tag styles.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/engine"
)

// Settings customizes the editor chrome. Colors are hex strings; empty
// fields leave the base style alone.
type Settings struct {
	Background             string
	Foreground             string
	Caret                  string
	Selection              string
	SelectionMatch         string
	LineHighlight          string
	GutterBackground       string
	ActiveGutterBackground string
	GutterForeground       string
	GutterBorder           string
}

// TagStyle styles highlighter tags.
type TagStyle struct {
	Tags       []string
	Color      string
	Background string
	Bold       bool
	Italic     bool
}

// Options configures CreateTheme.
type Options struct {
	Dark     bool
	Settings Settings
	Styles   []TagStyle
}

// Style keys set by CreateTheme on top of the engine's.
const (
	StyleSelectionMatch = "selectionMatch"
)

// CreateTheme builds a theme fragment.
func CreateTheme(o Options) engine.Extension {
	s := o.Settings
	styles := map[string]lipgloss.Style{
		engine.StyleEditor: lipgloss.NewStyle().
			Background(color(s.Background)).
			Foreground(color(s.Foreground)),
	}
	gutters := lipgloss.NewStyle()
	if s.GutterBackground != "" {
		gutters = gutters.Background(color(s.GutterBackground))
	}
	if s.GutterForeground != "" {
		gutters = gutters.Foreground(color(s.GutterForeground))
	}
	styles[engine.StyleGutters] = gutters
	if s.ActiveGutterBackground != "" {
		styles[engine.StyleActiveLineGutter] = lipgloss.NewStyle().Background(color(s.ActiveGutterBackground))
	}
	if s.GutterBorder != "" {
		styles[engine.StyleGutterBorder] = lipgloss.NewStyle().Foreground(color(s.GutterBorder))
	}
	if s.Caret != "" {
		styles[engine.StyleCursor] = lipgloss.NewStyle().Background(color(s.Caret)).Foreground(color(s.Background)).Reverse(false)
	}
	if s.LineHighlight != "" {
		line := lipgloss.NewStyle().Background(color(s.LineHighlight))
		styles[engine.StyleActiveLine] = line
		styles[engine.StyleActiveLineGutter] = line
	}
	if s.Selection != "" {
		styles[engine.StyleSelection] = lipgloss.NewStyle().Background(color(s.Selection)).Reverse(false)
	}
	if s.SelectionMatch != "" {
		styles[engine.StyleTagPrefix+StyleSelectionMatch] = lipgloss.NewStyle().Background(color(s.SelectionMatch))
	}
	for _, ts := range o.Styles {
		st := lipgloss.NewStyle()
		if ts.Color != "" {
			st = st.Foreground(color(ts.Color))
		}
		if ts.Background != "" {
			st = st.Background(color(ts.Background))
		}
		if ts.Bold {
			st = st.Bold(true)
		}
		if ts.Italic {
			st = st.Italic(true)
		}
		for _, tag := range ts.Tags {
			styles[engine.StyleTagPrefix+tag] = st
		}
	}
	return engine.ThemeExtension(&engine.Theme{Dark: o.Dark, Styles: styles})
}

func color(hex string) lipgloss.Color {
	return lipgloss.Color(NormalizeColor(hex))
}

// NormalizeColor expands short hex colors, adds a missing '#', and drops an
// alpha channel. Non-hex values pass through.
func NormalizeColor(c string) string {
	c = strings.TrimSpace(c)
	h := strings.TrimPrefix(c, "#")
	if !isHex(h) {
		return c
	}
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h[:3] {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 8:
		h = h[:6]
	case 6:
	default:
		return c
	}
	return "#" + strings.ToLower(h)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
