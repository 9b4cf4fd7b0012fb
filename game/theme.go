package game

type Theme int

const (
	THEME_LIGHT Theme = iota
	THEME_DARK
)

func (t Theme) Name() string {
	if t == THEME_DARK {
		return "dark"
	}
	return "light"
}

// ThemeFromReport maps a DARK argument: 1 is dark, anything else light.
func ThemeFromReport(value int) Theme {
	if value == 1 {
		return THEME_DARK
	}
	return THEME_LIGHT
}
