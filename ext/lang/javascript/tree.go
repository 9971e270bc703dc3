package javascript

import (
	"context"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	jsgrammar "github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/iw2rmb/inkwell/engine"
)

// language returns the grammar for d. The JavaScript grammar parses JSX.
func language(d Dialect) *sitter.Language {
	switch {
	case d.TypeScript && d.JSX:
		return tsx.GetLanguage()
	case d.TypeScript:
		return typescript.GetLanguage()
	default:
		return jsgrammar.GetLanguage()
	}
}

// token is a tagged node in rune offsets.
type token struct {
	from, to int
	tag      string
}

const (
	operators = "+-*/%=<>!&|^~?:"
	brackets  = "()[]{}"
)

var literalKeywords = wordSet(`true false null undefined this super`)

var stringNodes = wordSet(`string template_string regex hash_bang_line`)

var foldNodes = wordSet(`statement_block class_body object array arguments formal_parameters
	object_pattern array_pattern switch_body jsx_element object_type interface_body enum_body
	named_imports export_clause`)

var jsxElements = wordSet(`jsx_opening_element jsx_closing_element jsx_self_closing_element`)

type walker struct {
	d      Dialect
	runeAt []int
	toks   []token
	folds  map[int]int
}

// parseTree parses src with the grammar of d and returns its tagged tokens in
// document order, plus the last line of the widest multi-line bracketed node
// starting on each line.
func parseTree(src string, d Dialect) ([]token, map[int]int) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(language(d))
	tree, err := p.ParseCtx(context.Background(), nil, []byte(src))
	if err != nil {
		return nil, nil
	}
	w := &walker{d: d, runeAt: byteToRune(src), folds: map[int]int{}}
	w.walk(tree.RootNode(), "", "")
	return w.toks, w.folds
}

// byteToRune maps every byte offset of src, and len(src), to a rune offset.
func byteToRune(src string) []int {
	out := make([]int, len(src)+1)
	r := 0
	for i := 0; i < len(src); {
		_, size := utf8.DecodeRuneInString(src[i:])
		for k := 0; k < size; k++ {
			out[i+k] = r
		}
		i += size
		r++
	}
	out[len(src)] = r
	return out
}

func (w *walker) offset(b uint32) int {
	return w.runeAt[min(int(b), len(w.runeAt)-1)]
}

func (w *walker) walk(n *sitter.Node, parent, field string) {
	typ := n.Type()
	if n.IsNamed() && foldNodes[typ] {
		start, end := int(n.StartPoint().Row)+1, int(n.EndPoint().Row)+1
		if end > start && end > w.folds[start] {
			w.folds[start] = end
		}
	}
	if tag := w.classify(n, typ, parent, field); tag != "" {
		if from, to := w.offset(n.StartByte()), w.offset(n.EndByte()); to > from {
			w.toks = append(w.toks, token{from: from, to: to, tag: tag})
		}
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		w.walk(n.Child(i), typ, n.FieldNameForChild(i))
	}
}

func (w *walker) classify(n *sitter.Node, typ, parent, field string) string {
	if n.IsMissing() {
		return ""
	}
	if !n.IsNamed() {
		switch {
		case keywords[typ], w.d.TypeScript && tsKeywords[typ]:
			return TagKeyword
		case len(typ) == 1 && strings.Contains(brackets, typ):
			return TagBracket
		case typ != "" && strings.Trim(typ, operators) == "":
			return TagOperator
		}
		return ""
	}
	switch {
	case typ == "comment":
		return TagComment
	case stringNodes[typ]:
		return TagString
	case typ == "number":
		return TagNumber
	case literalKeywords[typ]:
		return TagKeyword
	case typ == "property_identifier", typ == "shorthand_property_identifier":
		return TagPropertyName
	case typ == "predefined_type":
		return TagTypeName
	case typ == "type_identifier":
		if field == "name" && (parent == "class_declaration" || parent == "interface_declaration") {
			return TagClassName
		}
		return TagTypeName
	case typ != "identifier":
		return ""
	case jsxElements[parent]:
		return TagTagName
	case parent == "call_expression" && field == "function":
		return TagVariableName
	case parent == "new_expression" && field == "constructor",
		(parent == "class_declaration" || parent == "class") && field == "name",
		parent == "class_heritage":
		return TagClassName
	}
	return ""
}

// lineSpans splits tokens into per-line spans with line-relative columns.
// Tokens crossing a line break, like block comments, appear on every line
// they cover.
func lineSpans(src []rune, toks []token) [][]engine.Span {
	starts := []int{0}
	for i, r := range src {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	out := make([][]engine.Span, len(starts))
	line := 0
	for _, t := range toks {
		for line+1 < len(starts) && starts[line+1] <= t.from {
			line++
		}
		for l := line; l < len(starts) && starts[l] < max(t.to, t.from+1); l++ {
			end := len(src)
			if l+1 < len(starts) {
				end = starts[l+1] - 1
			}
			from := max(t.from, starts[l])
			to := min(t.to, end)
			if to > from {
				out[l] = append(out[l], engine.Span{From: from - starts[l], To: to - starts[l], Tag: t.tag})
			}
		}
	}
	return out
}
