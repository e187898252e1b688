package viz

import (
	"strings"

	"github.com/san-kum/basin/internal/phase"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	overlay       map[[2]int]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		overlay: make(map[[2]int]rune),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set marks a sub-pixel. The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Mark places a literal rune at a character cell, drawn over the braille
// layer. Used for attractor markers.
func (c *Canvas) Mark(col, row int, r rune) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.overlay[[2]int{col, row}] = r
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for row := range c.Grid {
		for col := range c.Grid[row] {
			if r, ok := c.overlay[[2]int{col, row}]; ok {
				sb.WriteRune(r)
				continue
			}
			sb.WriteRune(c.Grid[row][col])
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

// bounds computes the plot window covering the trajectory and the attractors.
func bounds(points []phase.Point, attractors []phase.Point) (minX, maxX, minY, maxY float64) {
	minX, maxX = points[0][0], points[0][0]
	minY, maxY = points[0][1], points[0][1]
	grow := func(p phase.Point) {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	for _, p := range points {
		grow(p)
	}
	for _, a := range attractors {
		grow(a)
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	return
}

// TrajectoryPlot renders the first two phase-space dimensions of a curve with
// the field's attractors marked A0..An. Higher dimensions are projected away.
func TrajectoryPlot(points []phase.Point, attractors []phase.Point, w, h int) string {
	if len(points) == 0 || len(points[0]) < 2 {
		return ""
	}

	c := NewCanvas(w, h)
	minX, maxX, minY, maxY := bounds(points, attractors)

	px := func(v float64) int { return int((v - minX) / (maxX - minX) * float64(w*2-1)) }
	py := func(v float64) int { return int((maxY - v) / (maxY - minY) * float64(h*4-1)) }

	for _, p := range points {
		c.Set(px(p[0]), py(p[1]))
	}

	for i, a := range attractors {
		col := px(a[0]) / 2
		row := py(a[1]) / 4
		c.Mark(col, row, '*')
		c.Mark(col+1, row, rune('0'+i%10))
	}

	return c.String()
}
