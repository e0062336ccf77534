package core

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is a single character slot of the screen buffer.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer the sandbox draws world state into.
// It decouples scenario drawing from the terminal: scenarios write glyphs,
// the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded because every
// frame is redrawn from world state.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, or a blank cell when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Wide runes advance by their display width; the slot they cover is blanked.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.Set(col, y, r, c)
		for i := 1; i < w; i++ {
			s.Set(col+i, y, 0, c)
		}
		col += w
	}
}

// String converts the screen buffer to plain text, rows joined with newlines.
// Placeholder cells behind wide runes are skipped.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			if r := s.cells[y][x].Rune; r != 0 {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		if c.Rune != 0 {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

// Viewport maps world coordinates onto screen cells. Terminal cells are
// roughly twice as tall as wide, so a cell covers UnitsPerCol horizontally
// and UnitsPerRow vertically.
type Viewport struct {
	Origin      Vec     // World point drawn at screen (0, Top)
	UnitsPerCol float64 // World units per column
	UnitsPerRow float64 // World units per row
	Top         int     // Rows reserved above the world area (HUD)
}

// FitViewport returns a viewport that shows the whole bounds on a screen of
// the given size, keeping a 1:2 column-to-row aspect.
func FitViewport(bounds AABB, screenW, screenH, hudRows int) Viewport {
	rows := screenH - hudRows
	if rows < 1 {
		rows = 1
	}
	if screenW < 1 {
		screenW = 1
	}
	perCol := bounds.Width() / float64(screenW)
	perRow := bounds.Height() / float64(rows)
	perCol = math.Max(perCol, perRow/2)
	if perCol <= 0 {
		perCol = 1
	}
	return Viewport{
		Origin:      bounds.Min,
		UnitsPerCol: perCol,
		UnitsPerRow: perCol * 2,
		Top:         hudRows,
	}
}

// Project converts a world point to screen column and row.
func (v Viewport) Project(p Vec) (col, row int) {
	col = int(math.Floor((p.X - v.Origin.X) / v.UnitsPerCol))
	row = v.Top + int(math.Floor((p.Y-v.Origin.Y)/v.UnitsPerRow))
	return col, row
}

// FillBox paints every cell whose center falls inside the world box.
func (s *Screen) FillBox(v Viewport, b AABB, r rune, c Color) {
	c0, r0 := v.Project(b.Min)
	c1, r1 := v.Project(b.Max)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			center := Vec{
				X: v.Origin.X + (float64(col)+0.5)*v.UnitsPerCol,
				Y: v.Origin.Y + (float64(row-v.Top)+0.5)*v.UnitsPerRow,
			}
			if center.X >= b.Min.X && center.X < b.Max.X && center.Y >= b.Min.Y && center.Y < b.Max.Y {
				s.Set(col, row, r, c)
			}
		}
	}
}

// Plot paints the cell that contains the world point.
func (s *Screen) Plot(v Viewport, p Vec, r rune, c Color) {
	col, row := v.Project(p)
	if row < v.Top {
		return
	}
	s.Set(col, row, r, c)
}

// Line paints the cells along the world segment a-b.
func (s *Screen) Line(v Viewport, a, b Vec, r rune, c Color) {
	c0, r0 := v.Project(a)
	c1, r1 := v.Project(b)
	steps := max(abs(c1-c0), abs(r1-r0))
	if steps == 0 {
		s.Plot(v, a, r, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.Plot(v, a.Add(b.Sub(a).Scale(t)), r, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
