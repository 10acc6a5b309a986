package styles

// ThemeTokens defines the semantic color roles for the picker UI.
type ThemeTokens struct {
	Text      string
	TextMuted string
	Accent    string
	Focus     string
	Success   string
	Warning   string
	Error     string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}
