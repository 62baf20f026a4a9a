package models

import (
	"fmt"
	"strings"
)

// Theme names one of the colour schemes the user can switch between.
type Theme string

const (
	ThemeClassic Theme = "Classic"
	ThemeLight   Theme = "Light"
	ThemeDark    Theme = "Dark"
)

// Themes lists the available themes in menu order.
var Themes = []Theme{ThemeClassic, ThemeLight, ThemeDark}

// ParseTheme resolves a theme name case-insensitively.
func ParseTheme(s string) (Theme, error) {
	for _, t := range Themes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q: must be one of Classic, Light, Dark", s)
}

// Next returns the theme that follows t in menu order, wrapping around.
func (t Theme) Next() Theme {
	for i, candidate := range Themes {
		if candidate == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}

// Settings is the process-wide preferences record.
type Settings struct {
	Theme Theme `json:"theme"`
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeClassic}
}

// Normalize replaces an unknown theme with the default one.
func (s Settings) Normalize() Settings {
	if t, err := ParseTheme(string(s.Theme)); err == nil {
		s.Theme = t
		return s
	}
	return DefaultSettings()
}
