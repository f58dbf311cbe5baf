package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a fixed-size grid of styled terminal cells.
type canvas struct {
	w, h   int
	runes  []rune
	style  []int
	styles []lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		w:      max(0, w),
		h:      max(0, h),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	c.runes = make([]rune, c.w*c.h)
	c.style = make([]int, c.w*c.h)
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

// addStyle registers s and returns its index. Index 0 is unstyled.
func (c *canvas) addStyle(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

func (c *canvas) set(x, y int, r rune, style int) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y*c.w+x] = r
	c.style[y*c.w+x] = style
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.runes[y*c.w+x]
}

// box draws a rounded box with inclusive corners (x0,y0) and (x1,y1),
// clearing its interior with fill.
func (c *canvas) box(x0, y0, x1, y1 int, border, fill int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r, s := ' ', fill
			switch {
			case y == y0 && x == x0:
				r, s = '╭', border
			case y == y0 && x == x1:
				r, s = '╮', border
			case y == y1 && x == x0:
				r, s = '╰', border
			case y == y1 && x == x1:
				r, s = '╯', border
			case y == y0 || y == y1:
				r, s = '─', border
			case x == x0 || x == x1:
				r, s = '│', border
			}
			c.set(x, y, r, s)
		}
	}
}

// text writes s starting at (x,y), clipped to n cells.
func (c *canvas) text(x, y int, s string, n, style int) {
	i := 0
	for _, r := range s {
		if i >= n {
			return
		}
		c.set(x+i, y, r, style)
		i++
	}
}

// String renders the grid, grouping runs of equally styled cells.
func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.runes[y*c.w : (y+1)*c.w]
		st := c.style[y*c.w : (y+1)*c.w]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && st[end] == st[start] {
				end++
			}
			run := string(row[start:end])
			if st[start] == 0 {
				b.WriteString(run)
			} else {
				b.WriteString(c.styles[st[start]].Render(run))
			}
			start = end
		}
	}
	return b.String()
}
