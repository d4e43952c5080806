package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubesolver/internal/cube"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// stickerStyles colours the canonical sticker letters. Other runes render
// unstyled.
var stickerStyles = map[rune]lipgloss.Style{
	rune(cube.White):  sticker("15", "0"),
	rune(cube.Yellow): sticker("11", "0"),
	rune(cube.Green):  sticker("2", "0"),
	rune(cube.Blue):   sticker("4", "15"),
	rune(cube.Red):    sticker("1", "15"),
	rune(cube.Orange): sticker("208", "0"),
}

func sticker(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg))
}

// renderNet draws the unfolded cube with coloured stickers.
func renderNet(c *cube.Cube) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(c.String(), "\n"), "\n") {
		for _, r := range line {
			if r == ' ' {
				b.WriteString("  ")
				continue
			}
			if st, ok := stickerStyles[r]; ok {
				b.WriteString(st.Render(string(r) + " "))
			} else {
				b.WriteString(string(r) + " ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// wrapMoves joins notations into lines of at most width characters.
func wrapMoves(notations []string, width int) []string {
	var lines []string
	var line string
	for _, n := range notations {
		switch {
		case line == "":
			line = n
		case len(line)+len(n)+1 > width:
			lines = append(lines, line)
			line = n
		default:
			line += " " + n
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
