package mapview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"airmap/airports"
	"airmap/state"
)

var (
	basemapStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	airportStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	hubStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("161")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	connectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("48")).Bold(true)
	dimmedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	resultStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	refStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)
	circleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("201"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	tierStyles = map[airports.Tier]lipgloss.Style{
		airports.TierShort:  lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		airports.TierMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		airports.TierLong:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	}
)

// Glyphs used on the map.
const (
	GlyphBasemap   = '.'
	GlyphAirport   = '•'
	GlyphHub       = '●'
	GlyphSelected  = '◉'
	GlyphDimmed    = '·'
	GlyphRoute     = '∙'
	GlyphResult    = '◎'
	GlyphReference = '✚'
	GlyphCircle    = 'o'
)

// TierStyle returns the line style for a route tier.
func TierStyle(t airports.Tier) lipgloss.Style { return tierStyles[t] }

// gridCache keeps the basemap layer between frames; it is shared across
// model copies and rebuilt whenever the view changes.
type gridCache struct {
	valid bool
	w, h  int
	cells [][]cell
}

type cell struct {
	r     rune
	style *lipgloss.Style
}

func newGrid(w, h int) [][]cell {
	grid := make([][]cell, h)
	for i := range grid {
		grid[i] = make([]cell, w)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}
	return grid
}

func copyGrid(source [][]cell) [][]cell {
	dest := make([][]cell, len(source))
	for i := range source {
		dest[i] = make([]cell, len(source[i]))
		copy(dest[i], source[i])
	}
	return dest
}

func (m Model) basemapGrid(w, h int) [][]cell {
	if m.cache != nil && m.cache.valid && m.cache.w == w && m.cache.h == h {
		return copyGrid(m.cache.cells)
	}

	grid := newGrid(w, h)
	for _, polygon := range m.mapPolygons {
		if !boxOverlaps(polygon.BBox(), m.viewBounds) {
			continue
		}

		step := 3
		for i := 0; i < len(polygon.Points); i += step {
			point := polygon.Points[i]
			if x, y, ok := m.project(point.X, point.Y); ok {
				grid[y][x] = cell{r: GlyphBasemap, style: &basemapStyle}
			}
		}
	}

	if m.cache != nil {
		m.cache.valid = true
		m.cache.w, m.cache.h = w, h
		m.cache.cells = copyGrid(grid)
	}
	return grid
}

func (m Model) plot(grid [][]cell, lon, lat float64, r rune, style *lipgloss.Style) {
	if x, y, ok := m.project(lon, lat); ok {
		grid[y][x] = cell{r: r, style: style}
	}
}

// drawLine rasterises a segment with Bresenham after clipping it to the
// view. Only empty, basemap or route cells are overwritten so markers stay
// visible.
func (m Model) drawLine(grid [][]cell, a, b orb.Point, r rune, style *lipgloss.Style) {
	h := len(grid)
	if h == 0 {
		return
	}
	w := len(grid[0])

	fx0, fy0 := m.projectF(a.Lon(), a.Lat())
	fx1, fy1 := m.projectF(b.Lon(), b.Lat())
	fx0, fy0, fx1, fy1, ok := clipSegment(fx0, fy0, fx1, fy1, float64(w), float64(h))
	if !ok {
		return
	}

	x0, y0 := clamp(int(math.Floor(fx0)), 0, w-1), clamp(int(math.Floor(fy0)), 0, h-1)
	x1, y1 := clamp(int(math.Floor(fx1)), 0, w-1), clamp(int(math.Floor(fy1)), 0, h-1)

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		if c := grid[y0][x0]; c.r == ' ' || c.r == GlyphBasemap || c.r == GlyphRoute || c.r == GlyphCircle {
			grid[y0][x0] = cell{r: r, style: style}
		}
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

// clipSegment clips a segment to the box [0,w]x[0,h] (Liang-Barsky).
func clipSegment(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0

	edges := [4][2]float64{
		{-dx, x0},
		{dx, w - x0},
		{-dy, y0},
		{dy, h - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func markerGlyph(mk Marker) (rune, *lipgloss.Style) {
	switch mk.State {
	case state.MarkerSelected:
		return GlyphSelected, &selectedStyle
	case state.MarkerConnected:
		return GlyphHub, &connectedStyle
	case state.MarkerDimmed:
		return GlyphDimmed, &dimmedStyle
	}
	if mk.Hub {
		return GlyphHub, &hubStyle
	}
	return GlyphAirport, &airportStyle
}

// renderViewport draws every layer, bottom to top: basemap, radius circle,
// routes, airports, query results, reference marker, cursor.
func (m Model) renderViewport(w, h int) string {
	grid := m.basemapGrid(w, h)

	for i := 1; i < len(m.circle); i++ {
		m.drawLine(grid, m.circle[i-1], m.circle[i], GlyphCircle, &circleStyle)
	}

	if m.showRoutes {
		for i, r := range m.routes {
			style := TierStyle(airports.TierFor(r.DistanceKm))
			if i == m.highlight {
				continue
			}
			for j := 1; j < len(r.Path); j++ {
				m.drawLine(grid, r.Path[j-1], r.Path[j], GlyphRoute, &style)
			}
		}
		// the highlighted route goes on top of the others
		if m.highlight >= 0 && m.highlight < len(m.routes) {
			r := m.routes[m.highlight]
			for j := 1; j < len(r.Path); j++ {
				m.drawLine(grid, r.Path[j-1], r.Path[j], GlyphRoute, &highlightStyle)
			}
		}
	}

	if m.showAirports {
		// dimmed markers first so lit ones win shared cells
		for _, mk := range m.markers {
			if mk.State == state.MarkerDimmed {
				r, style := markerGlyph(mk)
				m.plot(grid, mk.Lon, mk.Lat, r, style)
			}
		}
		for _, mk := range m.markers {
			if mk.State != state.MarkerDimmed {
				r, style := markerGlyph(mk)
				m.plot(grid, mk.Lon, mk.Lat, r, style)
			}
		}
	}

	for _, mk := range m.results {
		m.plot(grid, mk.Lon, mk.Lat, GlyphResult, &resultStyle)
	}

	if m.hasRef {
		m.plot(grid, m.ref.Lon(), m.ref.Lat(), GlyphReference, &refStyle)
	}

	if m.cursorY >= 0 && m.cursorY < h && m.cursorX >= 0 && m.cursorX < w {
		c := grid[m.cursorY][m.cursorX]
		c.style = &cursorStyle
		grid[m.cursorY][m.cursorX] = c
	}

	var b strings.Builder
	for y, row := range grid {
		for _, c := range row {
			if c.style == nil {
				b.WriteRune(c.r)
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		if y < len(grid)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
