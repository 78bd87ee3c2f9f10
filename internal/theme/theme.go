// Package theme defines the terminal color themes used by cflow output.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used by terminal rendering.
type Theme struct {
	Name      string
	Border    lipgloss.Color // table borders
	TextDim   lipgloss.Color // hints, separators
	TextMuted lipgloss.Color // labels, metadata
	Text      lipgloss.Color
	Accent    lipgloss.Color // headers, titles

	Positive lipgloss.Color // money in, healthy balances
	Negative lipgloss.Color // money out, overdrafts
	Warning  lipgloss.Color // diagnostics

	// Series colors, one per running balance.
	Bank        lipgloss.Color
	CCStatement lipgloss.Color
	CCTotal     lipgloss.Color
	Net         lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:        "flexoki-dark",
	Border:      lipgloss.Color("#403E3C"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#878580"),
	Text:        lipgloss.Color("#FFFCF0"),
	Accent:      lipgloss.Color("#3AA99F"),
	Positive:    lipgloss.Color("#879A39"),
	Negative:    lipgloss.Color("#D14D41"),
	Warning:     lipgloss.Color("#DA702C"),
	Bank:        lipgloss.Color("#879A39"),
	CCStatement: lipgloss.Color("#D14D41"),
	CCTotal:     lipgloss.Color("#E8705F"),
	Net:         lipgloss.Color("#4385BE"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:        "catppuccin-mocha",
	Border:      lipgloss.Color("#585B70"),
	TextDim:     lipgloss.Color("#6C7086"),
	TextMuted:   lipgloss.Color("#A6ADC8"),
	Text:        lipgloss.Color("#CDD6F4"),
	Accent:      lipgloss.Color("#89B4FA"),
	Positive:    lipgloss.Color("#A6E3A1"),
	Negative:    lipgloss.Color("#F38BA8"),
	Warning:     lipgloss.Color("#FAB387"),
	Bank:        lipgloss.Color("#A6E3A1"),
	CCStatement: lipgloss.Color("#F38BA8"),
	CCTotal:     lipgloss.Color("#EBA0AC"),
	Net:         lipgloss.Color("#89B4FA"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:        "terminal",
	Border:      lipgloss.Color("8"),
	TextDim:     lipgloss.Color("8"),
	TextMuted:   lipgloss.Color("7"),
	Text:        lipgloss.Color("15"),
	Accent:      lipgloss.Color("6"),
	Positive:    lipgloss.Color("2"),
	Negative:    lipgloss.Color("1"),
	Warning:     lipgloss.Color("3"),
	Bank:        lipgloss.Color("2"),
	CCStatement: lipgloss.Color("1"),
	CCTotal:     lipgloss.Color("9"),
	Net:         lipgloss.Color("4"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, Terminal}

// Names lists the names of All, in order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
