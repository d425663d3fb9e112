package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	lineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	pointStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle = lipgloss.NewStyle().Faint(true)
)

const (
	lineGlyph  = '·'
	pointGlyph = '×'
)

// RenderTerminal draws the chart onto a width x height cell grid and
// returns it as styled text with axes and tick labels. Observations
// are drawn over the expected line where they collide.
func RenderTerminal(c *Chart, width, height int) string {
	if width < 20 {
		width = 20
	}
	if height < 6 {
		height = 6
	}

	xmin, xmax, ymin, ymax := c.bounds()

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	toCol := func(x float64) int {
		return int(math.Round((x - xmin) / (xmax - xmin) * float64(width-1)))
	}
	toRow := func(y float64) int {
		return height - 1 - int(math.Round((y-ymin)/(ymax-ymin)*float64(height-1)))
	}
	set := func(x, y float64, glyph rune) {
		col, row := toCol(x), toRow(y)
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = glyph
		}
	}

	for _, p := range c.Line {
		set(p.X, p.Y, lineGlyph)
	}
	for _, p := range c.Points {
		set(p.X, p.Y, pointGlyph)
	}

	yTick := func(row int) string {
		switch row {
		case 0:
			return fmt.Sprintf("%.2f", ymax)
		case height - 1:
			return fmt.Sprintf("%.2f", ymin)
		case (height - 1) / 2:
			return fmt.Sprintf("%.2f", ymin+(ymax-ymin)/2)
		}
		return ""
	}

	gutter := 0
	for row := 0; row < height; row++ {
		if n := len(yTick(row)); n > gutter {
			gutter = n
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteByte('\n')
	b.WriteString(labelStyle.Render(c.YLabel))
	b.WriteByte('\n')

	for row := 0; row < height; row++ {
		fmt.Fprintf(&b, "%*s ", gutter, yTick(row))
		b.WriteString(axisStyle.Render("│"))
		for _, r := range grid[row] {
			switch r {
			case lineGlyph:
				b.WriteString(lineStyle.Render(string(r)))
			case pointGlyph:
				b.WriteString(pointStyle.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat(" ", gutter+1))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", width)))
	b.WriteByte('\n')

	left := fmt.Sprintf("%.0f", xmin)
	right := fmt.Sprintf("%.0f", xmax)
	pad := width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(strings.Repeat(" ", gutter+2))
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(right)
	b.WriteByte('\n')

	centered := (gutter + 2 + width - len(c.XLabel)) / 2
	if centered < 0 {
		centered = 0
	}
	b.WriteString(strings.Repeat(" ", centered))
	b.WriteString(labelStyle.Render(c.XLabel))
	b.WriteByte('\n')

	return b.String()
}
