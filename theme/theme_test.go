package theme

import (
	"net/url"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/engine"
)

func themeOf(t *testing.T, ext engine.Extension) engine.Theme {
	t.Helper()
	s, err := engine.NewState(engine.StateConfig{Extensions: []engine.Extension{ext}})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return engine.Themes.Get(s)
}

func TestNormalizeColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "#fff", want: "#ffffff"},
		{in: "ffeef0", want: "#ffeef0"},
		{in: "#36334280", want: "#363342"},
		{in: "#0D1117", want: "#0d1117"},
		{in: "12", want: "12"},
		{in: "red", want: "red"},
	}
	for _, tc := range cases {
		if got := NormalizeColor(tc.in); got != tc.want {
			t.Fatalf("NormalizeColor(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromQuery(t *testing.T) {
	cases := []struct {
		query string
		want  Option
	}{
		{query: "theme=dark", want: Dark},
		{query: "theme=DARK", want: Light},
		{query: "theme=Dark", want: Light},
		{query: "theme=%20dark", want: Light},
		{query: "theme=light", want: Light},
		{query: "theme=purple", want: Light},
		{query: "", want: Light},
	}
	for _, tc := range cases {
		q, _ := url.ParseQuery(tc.query)
		if got := FromQuery(q); got != tc.want {
			t.Fatalf("FromQuery(%q): got %v, want %v", tc.query, got.Name(), tc.want.Name())
		}
	}
}

func TestParseName(t *testing.T) {
	cases := []struct {
		name string
		want Option
	}{
		{name: "dark", want: Dark},
		{name: "Dark", want: Light},
		{name: "dark ", want: Light},
		{name: "light", want: Light},
		{name: "", want: Light},
	}
	for _, tc := range cases {
		if got := ParseName(tc.name); got != tc.want {
			t.Fatalf("ParseName(%q): got %v, want %v", tc.name, got.Name(), tc.want.Name())
		}
	}
}

func TestOption_Extension(t *testing.T) {
	if Dark.Extension() != GithubDark {
		t.Fatalf("dark should select GithubDark")
	}
	if Named("purple").Extension() != GithubLight || (Option{}).Extension() != GithubLight {
		t.Fatalf("unknown and zero options should select GithubLight")
	}
	custom := CreateTheme(Options{Settings: Settings{Background: "#000"}})
	if Custom(custom).Extension() != custom || Custom(custom).Name() != "custom" {
		t.Fatalf("custom option should return its fragment")
	}
	if Custom(nil).Extension() != GithubLight {
		t.Fatalf("nil custom should fall back to light")
	}
}

func TestCreateTheme_Styles(t *testing.T) {
	dark := themeOf(t, GithubDark)
	if !dark.Dark {
		t.Fatalf("GithubDark should be dark")
	}
	if got := dark.Style(engine.StyleEditor).GetBackground(); got != lipglossColor("#0d1117") {
		t.Fatalf("editor background: got %v", got)
	}
	if got := dark.Style(engine.StyleTagPrefix + "keyword").GetForeground(); got != lipglossColor("#ff7b72") {
		t.Fatalf("keyword color: got %v", got)
	}
	if got := dark.Style(engine.StyleActiveLine).GetBackground(); got != lipglossColor("#363342") {
		t.Fatalf("active line: got %v", got)
	}

	light := themeOf(t, GithubLight)
	if light.Dark {
		t.Fatalf("GithubLight should be light")
	}
	if got := light.Style(engine.StyleGutters).GetForeground(); got != lipglossColor("#556666") {
		t.Fatalf("gutter foreground: got %v", got)
	}
	if !light.Style(engine.StyleTagPrefix + "heading").GetBold() {
		t.Fatalf("heading should be bold")
	}
}

func TestCreateTheme_LaterThemeOverrides(t *testing.T) {
	s, err := engine.NewState(engine.StateConfig{Extensions: []engine.Extension{GithubDark, GithubLight}})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	th := engine.Themes.Get(s)
	if th.Dark {
		t.Fatalf("last theme should win")
	}
	if got := th.Style(engine.StyleEditor).GetBackground(); got != lipglossColor("#ffffff") {
		t.Fatalf("editor background: got %v", got)
	}
}

func lipglossColor(hex string) lipgloss.TerminalColor { return lipgloss.Color(hex) }
