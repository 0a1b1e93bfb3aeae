package termhost

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// cellSurface is a raster whose pixels are grouped into terminal cells of
// cellW x cellH. A cell takes a fill when its center lies inside the circle.
type cellSurface struct {
	cellW, cellH int
	w, h         int
	cols, rows   int
	bg           colorful.Color
	cells        []colorful.Color
}

func newCellSurface(cellW, cellH int, bg colorful.Color) *cellSurface {
	return &cellSurface{cellW: cellW, cellH: cellH, bg: bg}
}

func (s *cellSurface) Size() (int, int) { return s.w, s.h }

func (s *cellSurface) SetSize(w, h int) {
	s.w, s.h = w, h
	s.cols, s.rows = w/s.cellW, h/s.cellH
	s.cells = make([]colorful.Color, s.cols*s.rows)
	s.Clear()
}

func (s *cellSurface) Clear() {
	for i := range s.cells {
		s.cells[i] = s.bg
	}
}

func (s *cellSurface) FillCircle(x, y, r float64, c color.Color) {
	fill, alpha := splitAlpha(c)
	if alpha == 0 || !(r > 0) {
		return
	}
	cw, ch := float64(s.cellW), float64(s.cellH)
	c0 := max(0, int(math.Floor((x-r)/cw)))
	c1 := min(s.cols-1, int(math.Floor((x+r)/cw)))
	r0 := max(0, int(math.Floor((y-r)/ch)))
	r1 := min(s.rows-1, int(math.Floor((y+r)/ch)))
	rr := r * r

	for row := r0; row <= r1; row++ {
		cy := (float64(row) + 0.5) * ch
		for col := c0; col <= c1; col++ {
			cx := (float64(col) + 0.5) * cw
			if (cx-x)*(cx-x)+(cy-y)*(cy-y) > rr {
				continue
			}
			i := row*s.cols + col
			s.cells[i] = s.cells[i].BlendRgb(fill, alpha)
		}
	}
}

// at returns the color of cell (col, row).
func (s *cellSurface) at(col, row int) colorful.Color {
	return s.cells[row*s.cols+col]
}

// splitAlpha separates a color into its opaque RGB and its alpha in [0, 1].
func splitAlpha(c color.Color) (colorful.Color, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	rgb := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	return rgb, float64(n.A) / 255
}
