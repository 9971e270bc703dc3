package engine

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type layout struct {
	top     int
	rows    []int
	gutters []gutterColumn
	gutterW int
}

type gutterColumn struct {
	gutter *Gutter
	width  int
}

// Theme returns the resolved theme of the current state, bound to the view's
// renderer.
func (v *View) Theme() Theme {
	th := Themes.Get(v.state)
	if v.rend != nil {
		th = th.WithRenderer(v.rend)
	}
	return th
}

func (v *View) render() {
	if v.destroyed {
		return
	}
	v.parent.setContent(v, v.draw())
}

func (v *View) draw() string {
	s := v.state
	th := v.Theme()
	aw, ah := v.parent.Size()
	width, height := Sizes.Get(s).Resolve(aw, ah)

	var top, bottom []string
	for _, p := range v.panels {
		body := p.panel.Render(width)
		if body == "" {
			continue
		}
		body = th.Style(StylePanel).Render(body)
		if p.panel.Top() {
			top = append(top, body)
		} else {
			bottom = append(bottom, body)
		}
	}
	topBlock := strings.Join(top, "\n")
	bottomBlock := strings.Join(bottom, "\n")

	contentH := 0
	if height > 0 {
		contentH = max(height-blockHeight(topBlock)-blockHeight(bottomBlock), 1)
	}

	rows := visibleLines(s)
	v.clampScroll(rows, contentH)
	shown := rows[v.scrollTop:]
	if contentH > 0 && len(shown) > contentH {
		shown = shown[:contentH]
	}

	gs := Gutters.Get(s)
	cols := make([]gutterColumn, len(gs))
	markers := make([][]string, len(gs))
	gutterW := 0
	for gi, g := range gs {
		w := 0
		if g.MinWidth != nil {
			w = g.MinWidth(s)
		}
		markers[gi] = make([]string, len(shown))
		for ri, n := range shown {
			line, _ := s.Line(n)
			if g.Marker != nil {
				markers[gi][ri] = g.Marker(v, line)
			}
			w = max(w, runewidth.StringWidth(markers[gi][ri]))
		}
		cols[gi] = gutterColumn{gutter: g, width: w}
		gutterW += w + 1
	}

	_, border := th.Styles[StyleGutterBorder]
	border = border && len(cols) > 0
	if border {
		gutterW++
	}

	contentW := 0
	if width > 0 {
		contentW = max(width-gutterW, 1)
	}

	active := activeLines(s)
	folded := foldStarts(s)
	activeGutter := ActiveLineGutter.Get(s)

	lines := make([]string, 0, max(len(shown), contentH))
	layoutRows := make([]int, 0, cap(lines))
	for ri, n := range shown {
		var b strings.Builder
		for gi, col := range cols {
			st := th.Style(StyleGutters)
			if col.gutter.Style != "" {
				st = th.Style(col.gutter.Style).Inherit(st)
			}
			if activeGutter && active[n] {
				st = th.Style(StyleActiveLineGutter).Inherit(st)
			}
			b.WriteString(st.Render(padLeft(markers[gi][ri], col.width) + " "))
		}
		if border {
			b.WriteString(th.Style(StyleGutterBorder).Render("│"))
		}
		b.WriteString(v.drawLine(n, contentW, th, active[n], folded[n]))
		lines = append(lines, b.String())
		layoutRows = append(layoutRows, n)
	}
	for len(lines) < contentH {
		lines = append(lines, strings.Repeat(" ", gutterW))
		layoutRows = append(layoutRows, 0)
	}
	v.layout = layout{top: blockHeight(topBlock), rows: layoutRows, gutters: cols, gutterW: gutterW}

	var parts []string
	for _, p := range []string{topBlock, strings.Join(lines, "\n"), bottomBlock} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return th.Style(StyleEditor).Render(v.drawTooltips(strings.Join(parts, "\n"), width))
}

type cellStyle struct {
	tag    string
	sel    bool
	cursor bool
}

func (v *View) drawLine(n, width int, th Theme, active, folded bool) string {
	s := v.state
	line, _ := s.Line(n)
	ranges := s.Selection().Ranges()

	base := th.Style(StyleContent)
	if active && ActiveLine.Get(s) {
		base = th.Style(StyleActiveLine).Inherit(base)
	}
	styleFor := func(c cellStyle) lipgloss.Style {
		st := base
		if c.tag != "" {
			st = th.Style(StyleTagPrefix + c.tag).Inherit(st)
		}
		if c.sel {
			st = th.Style(StyleSelection).Inherit(st)
		}
		if c.cursor {
			st = th.Style(StyleCursor).Inherit(st)
		}
		return st
	}

	var b strings.Builder
	col := 0

	if s.Len() == 0 {
		if v.focused {
			b.WriteString(styleFor(cellStyle{cursor: true}).Render(" "))
			col++
		}
		if ph := Placeholder.Get(s); ph != "" {
			if width > 0 {
				ph = runewidth.Truncate(ph, max(width-col, 0), "")
			}
			b.WriteString(th.Style(StylePlaceholder).Inherit(base).Render(ph))
			col += runewidth.StringWidth(ph)
		}
		return v.fillLine(&b, base, col, width, active)
	}

	runes := []rune(line.Text)
	tags := make([]string, len(runes))
	for _, h := range Highlighters.Get(s) {
		for _, sp := range h(s, line) {
			for i := max(sp.From, 0); i < min(sp.To, len(runes)); i++ {
				tags[i] = sp.Tag
			}
		}
	}

	tabSize := max(s.TabSize(), 1)
	var run strings.Builder
	var cur cellStyle
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(styleFor(cur).Render(run.String()))
			run.Reset()
		}
	}
	for i, r := range runes {
		off := line.From + i
		text := string(r)
		w := runewidth.RuneWidth(r)
		if r == '\t' {
			w = tabSize - col%tabSize
			text = strings.Repeat(" ", w)
		}
		if width > 0 && col+w > width {
			break
		}
		c := cellStyle{tag: tags[i], sel: inSelection(ranges, off), cursor: v.focused && isHead(ranges, off)}
		if c != cur {
			flush()
			cur = c
		}
		run.WriteString(text)
		col += w
	}
	flush()

	if v.focused && isHead(ranges, line.To) && (width == 0 || col < width) {
		b.WriteString(styleFor(cellStyle{cursor: true}).Render(" "))
		col++
	}
	if folded {
		mark := " … "
		if width == 0 || col+runewidth.StringWidth(mark) <= width {
			b.WriteString(th.Style(StyleFoldPlaceholder).Inherit(base).Render(mark))
			col += runewidth.StringWidth(mark)
		}
	}
	return v.fillLine(&b, base, col, width, active)
}

func (v *View) fillLine(b *strings.Builder, base lipgloss.Style, col, width int, active bool) string {
	if active && ActiveLine.Get(v.state) && width > col {
		b.WriteString(base.Render(strings.Repeat(" ", width-col)))
	}
	return b.String()
}

func (v *View) clampScroll(rows []int, height int) {
	if v.scrollTop > len(rows)-1 {
		v.scrollTop = max(len(rows)-1, 0)
	}
	if height <= 0 {
		v.scrollTop = 0
		return
	}
	if !v.follow {
		return
	}
	v.follow = false
	head := v.state.LineAt(v.state.Selection().Main().Head).Number
	idx := 0
	for i, n := range rows {
		if n <= head {
			idx = i
		}
	}
	if idx < v.scrollTop {
		v.scrollTop = idx
	}
	if idx >= v.scrollTop+height {
		v.scrollTop = idx - height + 1
	}
}

// HandleClick handles a click at cell (x, y) of the rendered output. Clicks
// on a gutter go to that gutter; clicks on content move the cursor.
func (v *View) HandleClick(x, y int) bool {
	if v.destroyed {
		return false
	}
	line, ok := v.LineAtRow(y)
	if !ok {
		return false
	}
	if x < v.layout.gutterW {
		edge := 0
		for _, col := range v.layout.gutters {
			edge += col.width + 1
			if x < edge {
				if col.gutter.Click != nil {
					return col.gutter.Click(v, line)
				}
				return false
			}
		}
		return false
	}
	pos, _ := v.PosAt(x, y)
	if err := v.SetCursor(pos, "select.pointer"); err != nil {
		return false
	}
	if Editable.Get(v.state) {
		v.Focus()
	}
	return true
}

// PosAt returns the document offset under cell (x, y). Cells left of the
// text map to the line start; rows outside the document report false.
func (v *View) PosAt(x, y int) (int, bool) {
	line, ok := v.LineAtRow(y)
	if !ok {
		return 0, false
	}
	return line.From + columnAt(line.Text, max(x-v.layout.gutterW, 0), max(v.state.TabSize(), 1)), true
}

func columnAt(text string, x, tabSize int) int {
	cells := 0
	i := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if r == '\t' {
			w = tabSize - cells%tabSize
		}
		if cells+w > x {
			return i
		}
		cells += w
		i++
	}
	return i
}

func visibleLines(s *State) []int {
	hidden := HiddenLines(s)
	rows := make([]int, 0, s.Lines())
	for n := 1; n <= s.Lines(); n++ {
		skip := false
		for _, h := range hidden {
			if h.Contains(n) {
				skip = true
				break
			}
		}
		if !skip {
			rows = append(rows, n)
		}
	}
	return rows
}

func foldStarts(s *State) map[int]bool {
	out := make(map[int]bool)
	for _, h := range HiddenLines(s) {
		if h.From > 1 {
			out[h.From-1] = true
		}
	}
	return out
}

func activeLines(s *State) map[int]bool {
	out := make(map[int]bool)
	for _, r := range s.Selection().Ranges() {
		out[s.LineAt(r.Head).Number] = true
	}
	return out
}

func inSelection(ranges []SelectionRange, off int) bool {
	for _, r := range ranges {
		if !r.Empty() && off >= r.From() && off < r.To() {
			return true
		}
	}
	return false
}

func isHead(ranges []SelectionRange, off int) bool {
	for _, r := range ranges {
		if r.Head == off {
			return true
		}
	}
	return false
}

func padLeft(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func blockHeight(s string) int {
	if s == "" {
		return 0
	}
	return lipgloss.Height(s)
}
