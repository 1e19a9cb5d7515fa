// internal/rendering/layout/geometry.go
package layout

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point lies inside the rectangle. The top and
// left edges are inclusive, the bottom and right exclusive, so adjacent
// rectangles never both claim a boundary point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ExpandedBy grows the rectangle outward by the edge sizes.
func (r Rect) ExpandedBy(e Edges) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// Edges holds per-side sizes in pixels.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns the combined left and right sizes.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns the combined top and bottom sizes.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// Dimensions is the box model of one layout box. Content is authoritative;
// the padding, border, and margin boxes are derived outward from it.
type Dimensions struct {
	Content Rect

	Padding Edges
	Border  Edges
	Margin  Edges
}

// PaddingBox returns the rectangle enclosing content plus padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the rectangle enclosing content, padding, and borders.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the rectangle enclosing the full box model.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}
