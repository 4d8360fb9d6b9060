package viz

import "strings"

// Braille cells pack 2x4 dots per character, offset from U+2800.
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot canvas. Width and Height are in characters;
// the drawable area is (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

// Set lights the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row*c.Width+col] |= dotBits[y%4][x%2]
}

// DrawLine draws with Bresenham stepping in dot coordinates.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Mark lights a 3x3 dot blob centered on (x, y).
func (c *Canvas) Mark(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
