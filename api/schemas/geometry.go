package schemas

// RectDTO is one rectangle of the box model in viewport coordinates.
type RectDTO struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoxGeometry describes the rendered geometry of one element. X, Y, Width,
// and Height are the border box; the four nested rectangles carry the full
// box model. Selector is a compact description of the element (tag, id,
// classes), not necessarily the selector it was queried by.
type BoxGeometry struct {
	Selector string  `json:"selector,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`

	Content RectDTO `json:"content"`
	Padding RectDTO `json:"padding"`
	Border  RectDTO `json:"border"`
	Margin  RectDTO `json:"margin"`
}
