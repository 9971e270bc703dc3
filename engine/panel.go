package engine

import "github.com/iw2rmb/inkwell/buffer"

// Panel is a block rendered above or below the content.
type Panel interface {
	// Render returns the panel body for width cells. Empty output hides the
	// panel.
	Render(width int) string
	Top() bool
	Update(u Update)
}

// PanelSpec creates a panel for a view. Panels are kept across updates while
// the same spec stays configured.
type PanelSpec struct {
	Create func(v *View) Panel
}

// ShowPanel contributes a panel.
func ShowPanel(spec *PanelSpec) Extension { return Panels.Of(spec) }

type panelDestroyer interface {
	Destroy()
}

type panelInstance struct {
	spec  *PanelSpec
	panel Panel
}

// Gutter is a column left of the content.
type Gutter struct {
	Name string
	// Marker returns the marker for line, or "" for none.
	Marker func(v *View, line buffer.Line) string
	// MinWidth returns the minimum column width in cells.
	MinWidth func(s *State) int
	// Click handles a click on line's marker cell.
	Click func(v *View, line buffer.Line) bool
	// Style is the theme key for markers; defaults to StyleGutters.
	Style string
}

// AddGutter contributes a gutter. Gutters render in fragment order.
func AddGutter(g *Gutter) Extension { return Gutters.Of(g) }
