package binding

import (
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/stats"
	"github.com/iw2rmb/inkwell/theme"
)

// Props is the declarative editor configuration for one render.
type Props struct {
	// Value is the controlled document text.
	Value string
	// Selection is the initial selection; it is only read at mount.
	Selection *engine.Selection

	OnChange       func(value string, u engine.Update)
	OnUpdate       func(u engine.Update)
	OnStatistics   func(s stats.Statistics)
	OnCreateEditor func(v *engine.View, s *engine.State)

	// Extensions are appended after the built-in fragments.
	Extensions []engine.Extension
	AutoFocus  bool
	Theme      theme.Option

	// Sizes in terminal cells; zero is unconstrained.
	Height    int
	MinHeight int
	MaxHeight int
	Width     int
	MinWidth  int
	MaxWidth  int

	// Editable defaults to true.
	Editable    *bool
	ReadOnly    bool
	Placeholder string
	// IndentWithTab defaults to true.
	IndentWithTab *bool
}

// Bool returns a pointer to v, for the optional flags of Props.
func Bool(v bool) *bool { return &v }

func (p Props) editable() bool { return p.Editable == nil || *p.Editable }

func (p Props) indentWithTab() bool { return p.IndentWithTab == nil || *p.IndentWithTab }

func (p Props) sizing() engine.Sizing {
	return engine.Sizing{
		Height:    p.Height,
		MinHeight: p.MinHeight,
		MaxHeight: p.MaxHeight,
		Width:     p.Width,
		MinWidth:  p.MinWidth,
		MaxWidth:  p.MaxWidth,
	}
}

// facets is the part of Props that requires reconfiguration when it changes.
type facets struct {
	theme         theme.Option
	sizing        engine.Sizing
	placeholder   string
	editable      bool
	readOnly      bool
	indentWithTab bool
	hasOnUpdate   bool
	extensions    []engine.Extension
}

func facetsOf(p Props) facets {
	return facets{
		theme:         p.Theme,
		sizing:        p.sizing(),
		placeholder:   p.Placeholder,
		editable:      p.editable(),
		readOnly:      p.ReadOnly,
		indentWithTab: p.indentWithTab(),
		hasOnUpdate:   p.OnUpdate != nil,
		extensions:    append([]engine.Extension(nil), p.Extensions...),
	}
}

func (f facets) equal(o facets) bool {
	return f.theme == o.theme &&
		f.sizing == o.sizing &&
		f.placeholder == o.placeholder &&
		f.editable == o.editable &&
		f.readOnly == o.readOnly &&
		f.indentWithTab == o.indentWithTab &&
		f.hasOnUpdate == o.hasOnUpdate &&
		engine.SameExtensions(f.extensions, o.extensions)
}
