package rules

import (
	"errors"
	"fmt"
)

// ErrUnknownColor is returned for a color name outside the supported set.
var ErrUnknownColor = errors.New("unknown color")

// Color is one of the sixteen named highlight colors. The zero value means
// "no color".
type Color int

const (
	ColorNone Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorCyan
	ColorBlue
	ColorPurple
	ColorGray
	ColorLightRed
	ColorLightOrange
	ColorLightYellow
	ColorLightGreen
	ColorLightCyan
	ColorLightBlue
	ColorLightPurple
	ColorLightGray
)

var colorNames = map[Color]string{
	ColorRed:         "red",
	ColorOrange:      "orange",
	ColorYellow:      "yellow",
	ColorGreen:       "green",
	ColorCyan:        "cyan",
	ColorBlue:        "blue",
	ColorPurple:      "purple",
	ColorGray:        "gray",
	ColorLightRed:    "light_red",
	ColorLightOrange: "light_orange",
	ColorLightYellow: "light_yellow",
	ColorLightGreen:  "light_green",
	ColorLightCyan:   "light_cyan",
	ColorLightBlue:   "light_blue",
	ColorLightPurple: "light_purple",
	ColorLightGray:   "light_gray",
}

var colorsByName = func() map[string]Color {
	m := make(map[string]Color, len(colorNames))
	for c, name := range colorNames {
		m[name] = c
	}
	return m
}()

// ParseColor maps a configuration color name to its Color.
func ParseColor(name string) (Color, error) {
	c, ok := colorsByName[name]
	if !ok {
		return ColorNone, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "none"
}

// Valid reports whether c is ColorNone or one of the named colors.
func (c Color) Valid() bool {
	return c == ColorNone || colorNames[c] != ""
}
