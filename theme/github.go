package theme

var (
	// GithubLight is the GitHub light palette.
	GithubLight = CreateTheme(Options{
		Settings: Settings{
			Background:             "#fff",
			Foreground:             "#24292e",
			Selection:              "#bbdfff",
			SelectionMatch:         "#ffdd66",
			GutterBackground:       "#fff",
			GutterForeground:       "#556666",
			ActiveGutterBackground: "#e2f2ff",
		},
		Styles: []TagStyle{
			{Tags: []string{"comment", "bracket"}, Color: "#6a737d"},
			{Tags: []string{"className", "propertyName"}, Color: "#6f42c1"},
			{Tags: []string{"variableName", "attributeName", "number", "operator"}, Color: "#005cc5"},
			{Tags: []string{"keyword", "typeName", "typeOperator"}, Color: "#d73a49"},
			{Tags: []string{"string", "meta", "regexp"}, Color: "#032f62"},
			{Tags: []string{"name", "quote"}, Color: "#22863a"},
			{Tags: []string{"heading"}, Color: "#24292e", Bold: true},
			{Tags: []string{"emphasis"}, Color: "#24292e", Italic: true},
			{Tags: []string{"deleted"}, Color: "#b31d28", Background: "ffeef0"},
		},
	})

	// GithubDark is the GitHub dark palette.
	GithubDark = CreateTheme(Options{
		Dark: true,
		Settings: Settings{
			Background:     "#0d1117",
			Foreground:     "#c9d1d9",
			Caret:          "#c9d1d9",
			Selection:      "#003d73",
			SelectionMatch: "#003d73",
			LineHighlight:  "#36334280",
		},
		Styles: []TagStyle{
			{Tags: []string{"comment", "bracket"}, Color: "#8b949e"},
			{Tags: []string{"className", "propertyName"}, Color: "#d2a8ff"},
			{Tags: []string{"variableName", "attributeName", "number", "operator"}, Color: "#79c0ff"},
			{Tags: []string{"keyword", "typeName", "typeOperator"}, Color: "#ff7b72"},
			{Tags: []string{"string", "meta", "regexp"}, Color: "#a5d6ff"},
			{Tags: []string{"name", "quote"}, Color: "#7ee787"},
			{Tags: []string{"heading"}, Color: "#d2a8ff", Bold: true},
			{Tags: []string{"emphasis"}, Color: "#d2a8ff", Italic: true},
			{Tags: []string{"deleted"}, Color: "#ffdcd7", Background: "ffeef0"},
		},
	})
)
