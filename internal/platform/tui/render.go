package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// centerText centers text within the given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// axisBar renders v in [-1, 1] as a bar of the given width with the
// center marked. Values outside the range are drawn at the edge.
func axisBar(v float32, width int) string {
	if width < 3 {
		width = 3
	}
	half := width / 2
	pos := half + int(v*float32(half))
	if pos < 0 {
		pos = 0
	}
	if pos >= width {
		pos = width - 1
	}

	var sb strings.Builder
	sb.Grow(width + 2)
	sb.WriteByte('[')
	for i := 0; i < width; i++ {
		switch {
		case i == pos:
			sb.WriteByte('#')
		case i == half:
			sb.WriteByte('|')
		default:
			sb.WriteByte('-')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// labeled renders a "label: value" line with the label dimmed.
func labeled(label string, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label+":")) + " " + value
}
