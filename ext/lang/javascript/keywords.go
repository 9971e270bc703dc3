package javascript

import (
	"sort"
	"strings"
)

// Highlight tags, matching the tag names theme.CreateTheme styles.
const (
	TagKeyword      = "keyword"
	TagTypeName     = "typeName"
	TagClassName    = "className"
	TagPropertyName = "propertyName"
	TagVariableName = "variableName"
	TagTagName      = "name"
	TagString       = "string"
	TagNumber       = "number"
	TagComment      = "comment"
	TagOperator     = "operator"
	TagBracket      = "bracket"
)

func wordSet(words string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.Fields(words) {
		out[w] = true
	}
	return out
}

var (
	keywords = wordSet(`async await break case catch class const continue debugger default delete do
		else export extends false finally for from function if import in instanceof let new null of
		return static super switch this throw true try typeof undefined var void while with yield`)
	tsKeywords = wordSet(`abstract as declare enum implements interface keyof namespace private
		protected public readonly satisfies type`)
	tsTypes = wordSet(`any bigint boolean never number object string symbol unknown`)
)

// Keywords returns the sorted keyword list for d.
func Keywords(d Dialect) []string {
	out := make([]string, 0, len(keywords)+len(tsKeywords)+len(tsTypes))
	add := func(m map[string]bool) {
		for w := range m {
			out = append(out, w)
		}
	}
	add(keywords)
	if d.TypeScript {
		add(tsKeywords)
		add(tsTypes)
	}
	sort.Strings(out)
	return out
}
