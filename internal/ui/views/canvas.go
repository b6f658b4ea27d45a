package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ladzin/modula/internal/layout"
	"github.com/ladzin/modula/internal/model"
	"github.com/ladzin/modula/internal/ui/theme"
)

// renderCanvas draws positioned nodes onto a character grid, scaling
// the layout coordinate space down to the terminal. Node boxes are a
// single line: [Title]. Manual nodes get a pin marker so the user can
// see which ones automatic layout will skip.
func renderCanvas(nodes []model.FlowNode, selectedID string, width, height int) string {
	if len(nodes) == 0 || width < 10 || height < 3 {
		return theme.Current.Styles.Label.Render("  (empty)")
	}

	min, max := layout.Bounds(nodes)
	spanX := max.X - min.X
	spanY := max.Y - min.Y
	if spanX < 1 {
		spanX = 1
	}
	if spanY < 1 {
		spanY = 1
	}

	grid := make([][]rune, height)
	colors := make([][]*lipgloss.Style, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
		colors[y] = make([]*lipgloss.Style, width)
	}

	for _, n := range nodes {
		cx := int((n.Position.X - min.X) / spanX * float64(width-24))
		cy := int((n.Position.Y - min.Y) / spanY * float64(height-1))
		if cy < 0 || cy >= height {
			continue
		}
		label := n.Label
		if len(label) > 18 {
			label = label[:17] + "…"
		}
		box := "[" + label + "]"
		if n.Manual {
			box = "[" + label + " ⚲]"
		}
		if n.ID == selectedID {
			box = ">" + box
		}
		style := nodeStyle(n, n.ID == selectedID)
		for i, r := range []rune(box) {
			x := cx + i
			if x < 0 || x >= width {
				break
			}
			grid[cy][x] = r
			colors[cy][x] = style
		}
	}

	var b strings.Builder
	for y := range grid {
		x := 0
		for x < width {
			style := colors[y][x]
			run := x
			for run < width && colors[y][run] == style {
				run++
			}
			seg := string(grid[y][x:run])
			if style != nil {
				b.WriteString(style.Render(seg))
			} else {
				b.WriteString(seg)
			}
			x = run
		}
		b.WriteString("\n")
	}
	return b.String()
}

func nodeStyle(n model.FlowNode, selected bool) *lipgloss.Style {
	t := theme.Current.Theme
	var s lipgloss.Style
	switch {
	case selected:
		s = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	case n.Manual:
		s = lipgloss.NewStyle().Foreground(t.Warning)
	default:
		s = lipgloss.NewStyle().Foreground(t.Foreground)
	}
	return &s
}
