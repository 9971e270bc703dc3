package engine

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// Tooltip is a block drawn over the content next to a document position.
type Tooltip struct {
	Pos int
	// Above places the tooltip above the line when it fits there.
	Above bool
	Body  string
}

// Tooltips contributes tooltip providers. A provider returns nil when it has
// nothing to show.
var Tooltips = DefineFacet("tooltips", All[func(s *State) *Tooltip]())

// ShowTooltip contributes a tooltip provider.
func ShowTooltip(fn func(s *State) *Tooltip) Extension { return Tooltips.Of(fn) }

// CoordsAt returns the cell of off in the last rendered output. ok is false
// when the line is scrolled out or hidden.
func (v *View) CoordsAt(off int) (x, y int, ok bool) {
	line := v.state.LineAt(off)
	for ri, n := range v.layout.rows {
		if n != line.Number {
			continue
		}
		col := off - line.From
		return v.layout.gutterW + cellsBefore(line.Text, col, max(v.state.TabSize(), 1)), v.layout.top + ri, true
	}
	return 0, 0, false
}

func cellsBefore(text string, col, tabSize int) int {
	cells := 0
	i := 0
	for _, r := range text {
		if i >= col {
			break
		}
		w := runewidth.RuneWidth(r)
		if r == '\t' {
			w = tabSize - cells%tabSize
		}
		cells += w
		i++
	}
	return cells
}

func (v *View) drawTooltips(base string, width int) string {
	providers := Tooltips.Get(v.state)
	if len(providers) == 0 {
		return base
	}
	total := lipgloss.Height(base)
	if width <= 0 {
		width = lipgloss.Width(base)
	}
	for _, fn := range providers {
		tip := fn(v.state)
		if tip == nil || tip.Body == "" {
			continue
		}
		x, y, ok := v.CoordsAt(tip.Pos)
		if !ok {
			continue
		}
		h := lipgloss.Height(tip.Body)
		w := lipgloss.Width(tip.Body)
		below := y + 1
		above := y - h
		switch {
		case tip.Above && above >= 0:
			y = above
		case below+h <= total:
			y = below
		case above >= 0:
			y = above
		default:
			// Not enough room either way; clip to the rows below.
			y = below
			rows := strings.Split(tip.Body, "\n")
			if keep := total - below; keep > 0 && keep < len(rows) {
				tip.Body = strings.Join(rows[:keep], "\n")
			} else if keep <= 0 {
				continue
			}
		}
		if x+w > width {
			x = max(width-w, 0)
		}
		base = padBlock(base, x+w)
		base = overlay.Composite(tip.Body, base, overlay.Left, overlay.Top, x, y)
	}
	return base
}

// padBlock right-pads every line of s to at least width cells.
func padBlock(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if w := lipgloss.Width(l); w < width {
			lines[i] = l + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}
