package grid

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/wcampbell0x2a/compact-calendar-cli/internal/rules"
)

// Highlight palette, ayu-dark hues plus a lighter variant of each.
var palette = map[rules.Color]string{
	rules.ColorRed:         "#F07178",
	rules.ColorOrange:      "#FF8F40",
	rules.ColorYellow:      "#FFB454",
	rules.ColorGreen:       "#AAD94C",
	rules.ColorCyan:        "#95E6CB",
	rules.ColorBlue:        "#59C2FF",
	rules.ColorPurple:      "#D2A6FF",
	rules.ColorGray:        "#565B66",
	rules.ColorLightRed:    "#F7AEB2",
	rules.ColorLightOrange: "#FFB27A",
	rules.ColorLightYellow: "#FFD08F",
	rules.ColorLightGreen:  "#C9E88C",
	rules.ColorLightCyan:   "#C2F0DF",
	rules.ColorLightBlue:   "#94D7FF",
	rules.ColorLightPurple: "#E4C9FF",
	rules.ColorLightGray:   "#8A9199",
}

const textOnHighlight = "0" // ANSI black

// Styles builds the lipgloss styles for day cells and notes. All styles come
// from one explicit renderer so the caller controls the color profile and the
// output stays deterministic.
type Styles struct {
	r *lipgloss.Renderer
}

func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{r: r}
}

// Day returns the style for one day cell.
func (s *Styles) Day(a rules.DayAnnotation) lipgloss.Style {
	st := s.r.NewStyle()
	if a.HasColor {
		hex := palette[a.Color]
		if a.Dimmed {
			hex = darken(hex, 0.7)
		}
		st = st.Background(lipgloss.Color(hex)).Foreground(lipgloss.Color(textOnHighlight))
	} else if a.Dimmed {
		st = st.Faint(true)
	}
	if a.Struck {
		st = st.Strikethrough(true)
	}
	if a.Today {
		st = st.Underline(true)
	}
	return st
}

// Note returns the style for an annotation-column entry.
func (s *Styles) Note(n rules.Note) lipgloss.Style {
	st := s.r.NewStyle()
	if n.Color != rules.ColorNone {
		st = st.Background(lipgloss.Color(palette[n.Color])).Foreground(lipgloss.Color(textOnHighlight))
	}
	return st
}

// darken scales an RRGGBB hex color towards black by factor f in (0,1].
func darken(hex string, f float64) string {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return hex
	}
	return fmt.Sprintf("#%02X%02X%02X",
		int(float64(r)*f), int(float64(g)*f), int(float64(b)*f))
}
