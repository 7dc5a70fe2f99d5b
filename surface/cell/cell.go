// Package cell is a render.Surface backed by a grid of terminal cells.
// One logical pixel is one cell at pixel ratio 1.
package cell

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yitech/candlesleek/render"
)

const (
	vertical   = '│'
	horizontal = '─'
	cross      = '┼'
	diagonal   = '·'

	// continuation marks the second column of a double-width rune.
	continuation = rune(0)
)

type cell struct {
	ch   rune
	fg   render.Color
	bg   render.Color
	bold bool
}

// Surface is a terminal drawing surface. Call String to get the styled
// frame for a bubbletea View.
type Surface struct {
	cols, rows int
	ratio      float64
	cells      []cell
}

// New returns an empty surface; Reset sizes it.
func New() *Surface {
	return &Surface{ratio: 1}
}

// Size returns the grid dimensions in cells.
func (s *Surface) Size() (cols, rows int) {
	return s.cols, s.rows
}

func (s *Surface) Reset(width, height, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	s.ratio = pixelRatio
	s.cols = max(0, int(math.Round(width*pixelRatio)))
	s.rows = max(0, int(math.Round(height*pixelRatio)))
	s.cells = make([]cell, s.cols*s.rows)
	for i := range s.cells {
		s.cells[i].ch = ' '
	}
}

func (s *Surface) FillRect(x, y, w, h float64, c render.Color) {
	c0, c1 := s.span(x, w)
	r0, r1 := s.span(y, h)
	for r := r0; r < r1; r++ {
		for col := c0; col < c1; col++ {
			if p := s.at(col, r); p != nil {
				*p = cell{ch: ' ', bg: c}
			}
		}
	}
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, st render.Stroke) {
	ax, ay := s.device(x0), s.device(y0)
	bx, by := s.device(x1), s.device(y1)

	ch := diagonal
	switch {
	case ax == bx:
		ch = vertical
	case ay == by:
		ch = horizontal
	}

	steps := max(abs(bx-ax), abs(by-ay))
	for k := 0; k <= steps; k++ {
		if !dashOn(st.Dash, float64(k)/s.ratio) {
			continue
		}
		col, row := ax, ay
		if steps > 0 {
			col = ax + int(math.Round(float64((bx-ax)*k)/float64(steps)))
			row = ay + int(math.Round(float64((by-ay)*k)/float64(steps)))
		}
		p := s.at(col, row)
		if p == nil {
			continue
		}
		p.ch = merge(p.ch, ch)
		p.fg = st.Color
		p.bold = false
	}
}

func (s *Surface) FillText(text string, x, y float64, f render.Font, align render.Align, c render.Color) {
	w := runewidth.StringWidth(text)
	col := s.device(x)
	switch align {
	case render.AlignCenter:
		col -= w / 2
	case render.AlignRight:
		col -= w
	}
	row := s.device(y)

	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if p := s.at(col, row); p != nil {
			p.ch, p.fg, p.bold = r, c, f.Bold
		}
		for i := 1; i < rw; i++ {
			if p := s.at(col+i, row); p != nil {
				p.ch, p.fg, p.bold = continuation, c, f.Bold
			}
		}
		col += rw
	}
}

// Rune returns the character at a cell, or 0 outside the grid.
func (s *Surface) Rune(col, row int) rune {
	if p := s.at(col, row); p != nil {
		return p.ch
	}
	return 0
}

// Colors returns the foreground and background of a cell.
func (s *Surface) Colors(col, row int) (fg, bg render.Color) {
	if p := s.at(col, row); p != nil {
		return p.fg, p.bg
	}
	return "", ""
}

// Plain returns the grid's characters without styling, one line per row.
func (s *Surface) Plain() string {
	var b strings.Builder
	for r := 0; r < s.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, c := range s.row(r) {
			if c.ch != continuation {
				b.WriteRune(c.ch)
			}
		}
	}
	return b.String()
}

// String renders the grid with lipgloss, batching runs of equal style.
func (s *Surface) String() string {
	var b strings.Builder
	for r := 0; r < s.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		row := s.row(r)
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && sameStyle(row[start], row[end]) {
				end++
			}
			var run strings.Builder
			for _, c := range row[start:end] {
				if c.ch != continuation {
					run.WriteRune(c.ch)
				}
			}
			b.WriteString(style(row[start]).Render(run.String()))
			start = end
		}
	}
	return b.String()
}

// ── internal ─────────────────────────────────────────────────────────────────

func (s *Surface) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

func (s *Surface) row(r int) []cell {
	return s.cells[r*s.cols : (r+1)*s.cols]
}

// device maps a logical coordinate to the cell containing it.
func (s *Surface) device(v float64) int {
	return int(math.Floor(v * s.ratio))
}

// span maps [v, v+length) to a half-open cell range at least one cell wide.
func (s *Surface) span(v, length float64) (int, int) {
	a := int(math.Round(v * s.ratio))
	b := int(math.Round((v + length) * s.ratio))
	if b <= a {
		b = a + 1
	}
	return a, b
}

// dashOn reports whether distance d along a line falls in an "on" segment.
func dashOn(dash []float64, d float64) bool {
	var period float64
	for _, v := range dash {
		period += v
	}
	if period <= 0 {
		return true
	}
	d = math.Mod(d, period)
	on := true
	for _, v := range dash {
		if d < v {
			return on
		}
		d -= v
		on = !on
	}
	return on
}

func merge(existing, next rune) rune {
	if (existing == vertical && next == horizontal) || (existing == horizontal && next == vertical) || existing == cross {
		return cross
	}
	return next
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

func style(c cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c.fg != "" {
		st = st.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != "" {
		st = st.Background(lipgloss.Color(c.bg))
	}
	if c.bold {
		st = st.Bold(true)
	}
	return st
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
