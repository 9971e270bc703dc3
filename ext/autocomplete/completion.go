package autocomplete

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/inkwell/engine"
)

// Completion is one suggestion.
type Completion struct {
	Label  string
	Detail string
	// Apply replaces the completed text; Label is used when empty.
	Apply string
}

func (c Completion) text() string {
	if c.Apply != "" {
		return c.Apply
	}
	return c.Label
}

// Result is a source's answer for one request.
type Result struct {
	// From is where the completed text starts. It ends at the cursor.
	From    int
	Options []Completion
	// Filter narrows Options to those containing the text typed since From.
	Filter bool
}

// Context describes a completion request.
type Context struct {
	State *engine.State
	Pos   int
	// Explicit is set for requests started by StartCompletion rather than by
	// typing.
	Explicit bool
}

// Match is text found before the cursor.
type Match struct {
	From int
	To   int
	Text string
}

// MatchBefore matches re against the text between the start of the cursor's
// line and the cursor. The match must end at the cursor. It anchors re on
// every call; sources that match repeatedly anchor once with AnchorEnd and
// call MatchEnd.
func (c Context) MatchBefore(re *regexp.Regexp) (Match, bool) {
	return c.MatchEnd(AnchorEnd(re))
}

// AnchorEnd returns re anchored to the end of the input.
func AnchorEnd(re *regexp.Regexp) *regexp.Regexp {
	return regexp.MustCompile(`(?:` + re.String() + `)$`)
}

// MatchEnd is MatchBefore for a regexp already anchored with AnchorEnd.
func (c Context) MatchEnd(anchored *regexp.Regexp) (Match, bool) {
	line := c.State.LineAt(c.Pos)
	before := c.State.Slice(line.From, c.Pos)
	loc := anchored.FindStringIndex(before)
	if loc == nil {
		return Match{}, false
	}
	from := line.From + utf8.RuneCountInString(before[:loc[0]])
	return Match{From: from, To: c.Pos, Text: before[loc[0]:]}, true
}

// Source produces completions. It runs off the event loop and must honour
// ctx; a superseded request has its context cancelled. A nil result means no
// suggestions.
type Source func(ctx context.Context, c Context) (*Result, error)

// Sources lets languages contribute completion sources. Config.Override
// takes their place when set.
var Sources = engine.DefineFacet("autocomplete.sources", engine.All[Source]())

var wordBefore = AnchorEnd(regexp.MustCompile(`\w+`))

// WordSource completes the word before the cursor from a fixed list.
func WordSource(words ...string) Source {
	options := make([]Completion, len(words))
	for i, w := range words {
		options[i] = Completion{Label: w}
	}
	return func(_ context.Context, c Context) (*Result, error) {
		m, ok := c.MatchEnd(wordBefore)
		if !ok && !c.Explicit {
			return nil, nil
		}
		if !ok {
			m = Match{From: c.Pos, To: c.Pos}
		}
		return &Result{From: m.From, Options: options, Filter: true}, nil
	}
}

var lineBefore = AnchorEnd(regexp.MustCompile(`.*`))

// QuerySource hands the trimmed text before the cursor to fetch and offers
// its answer unfiltered. Blank lines produce no request.
func QuerySource(fetch func(ctx context.Context, query string) ([]Completion, error)) Source {
	return func(ctx context.Context, c Context) (*Result, error) {
		m, ok := c.MatchEnd(lineBefore)
		if !ok || m.From == m.To || strings.TrimSpace(m.Text) == "" {
			return nil, nil
		}
		options, err := fetch(ctx, strings.TrimSpace(m.Text))
		if err != nil {
			return nil, err
		}
		return &Result{From: m.From, Options: options}, nil
	}
}
