package engine

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme keys.
const (
	StyleEditor           = "editor"
	StyleContent          = "content"
	StyleGutters          = "gutters"
	StyleGutterBorder     = "gutterBorder"
	StyleActiveLine       = "activeLine"
	StyleActiveLineGutter = "activeLineGutter"
	StyleCursor           = "cursor"
	StyleSelection        = "selection"
	StylePlaceholder      = "placeholder"
	StylePanel            = "panel"
	StyleFoldPlaceholder  = "foldPlaceholder"
	// StyleTagPrefix prefixes highlighter tags, e.g. "tok-keyword".
	StyleTagPrefix = "tok-"
)

// Theme maps theme keys to styles.
type Theme struct {
	Dark   bool
	Styles map[string]lipgloss.Style

	renderer *lipgloss.Renderer
}

// WithRenderer returns a copy of t whose styles, including the empty style
// returned for unknown keys, render through r.
func (t Theme) WithRenderer(r *lipgloss.Renderer) Theme {
	out := Theme{Dark: t.Dark, Styles: make(map[string]lipgloss.Style, len(t.Styles)), renderer: r}
	for k, st := range t.Styles {
		out.Styles[k] = st.Renderer(r)
	}
	return out
}

type themeInput struct {
	theme *Theme
	base  bool
}

// ThemeExtension contributes a theme. Later themes override earlier ones key
// by key.
func ThemeExtension(t *Theme) Extension { return Themes.Of(themeInput{theme: t}) }

// BaseTheme contributes a theme that any ThemeExtension overrides regardless
// of order.
func BaseTheme(t *Theme) Extension { return Themes.Of(themeInput{theme: t, base: true}) }

func combineThemes(values []themeInput) Theme {
	out := Theme{Styles: make(map[string]lipgloss.Style)}
	merge := func(t *Theme) {
		if t == nil {
			return
		}
		out.Dark = t.Dark
		for k, st := range t.Styles {
			if prev, ok := out.Styles[k]; ok {
				st = st.Inherit(prev)
			}
			out.Styles[k] = st
		}
	}
	merge(defaultTheme)
	for _, v := range values {
		if v.base {
			merge(v.theme)
		}
	}
	for _, v := range values {
		if !v.base {
			merge(v.theme)
		}
	}
	return out
}

// Style returns the style for key, or an empty style.
func (t Theme) Style(key string) lipgloss.Style {
	if st, ok := t.Styles[key]; ok {
		return st
	}
	if t.renderer != nil {
		return t.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

var defaultTheme = &Theme{Styles: map[string]lipgloss.Style{
	StyleCursor:          lipgloss.NewStyle().Reverse(true),
	StyleSelection:       lipgloss.NewStyle().Reverse(true),
	StylePlaceholder:     lipgloss.NewStyle().Faint(true),
	StyleGutters:         lipgloss.NewStyle().Faint(true),
	StyleFoldPlaceholder: lipgloss.NewStyle().Faint(true),
}}

// Sizing constrains the rendered size in cells. Zero fields are unset.
type Sizing struct {
	Height    int
	MinHeight int
	MaxHeight int
	Width     int
	MinWidth  int
	MaxWidth  int
}

// SizeTheme contributes sizing constraints. Later set fields win.
func SizeTheme(s Sizing) Extension { return Sizes.Of(s) }

func combineSizing(values []Sizing) Sizing {
	var out Sizing
	pick := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	for _, v := range values {
		pick(&out.Height, v.Height)
		pick(&out.MinHeight, v.MinHeight)
		pick(&out.MaxHeight, v.MaxHeight)
		pick(&out.Width, v.Width)
		pick(&out.MinWidth, v.MinWidth)
		pick(&out.MaxWidth, v.MaxWidth)
	}
	return out
}

// Resolve returns the size for an available area. A zero result dimension
// means unconstrained.
func (s Sizing) Resolve(availWidth, availHeight int) (width, height int) {
	return constrain(availWidth, s.Width, s.MinWidth, s.MaxWidth),
		constrain(availHeight, s.Height, s.MinHeight, s.MaxHeight)
}

func constrain(avail, fixed, lo, hi int) int {
	v := avail
	if fixed > 0 {
		v = fixed
	}
	if lo > 0 && v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}
