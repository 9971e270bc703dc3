package preview

import (
	"github.com/iw2rmb/inkwell/stats"
)

type wireRange struct {
	Anchor int `json:"anchor"`
	Head   int `json:"head"`
}

type wireStats struct {
	Length       int         `json:"length"`
	Lines        int         `json:"lines"`
	Line         int         `json:"line"`
	WordCount    int         `json:"wordCount"`
	ReadOnly     bool        `json:"readOnly"`
	TabSize      int         `json:"tabSize"`
	SelectedText bool        `json:"selectedText"`
	Selection    []wireRange `json:"selection"`
	Selections   []string    `json:"selections"`
}

func toWire(st stats.Statistics) wireStats {
	w := wireStats{
		Length:       st.Length,
		Lines:        st.LineCount,
		Line:         st.Line.Number,
		WordCount:    st.WordCount,
		ReadOnly:     st.ReadOnly,
		TabSize:      st.TabSize,
		SelectedText: st.SelectedText,
		Selection:    make([]wireRange, len(st.Ranges)),
		Selections:   st.Selections,
	}
	for i, r := range st.Ranges {
		w.Selection[i] = wireRange{Anchor: r.Anchor, Head: r.Head}
	}
	return w
}

// frame is pushed to websocket clients.
type frame struct {
	Session string     `json:"session"`
	Theme   string     `json:"theme"`
	View    string     `json:"view"`
	Stats   *wireStats `json:"stats,omitempty"`
	Error   string     `json:"error,omitempty"`
}
