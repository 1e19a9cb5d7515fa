// internal/rendering/css/media.go
package css

import (
	"strconv"
	"strings"
)

// Viewport is the visible area that media queries, styling, and layout
// resolve against.
type Viewport struct {
	Width            float64
	Height           float64
	DevicePixelRatio float64
}

// DefaultViewport is a common desktop window.
func DefaultViewport() Viewport {
	return Viewport{Width: 1920, Height: 1080, DevicePixelRatio: 2}
}

// Condition is one (feature: value) test inside a media query. Feature is
// stored without its min-/max- prefix; the prefix sets IsMin or IsMax.
type Condition struct {
	Feature string
	Value   string
	IsMin   bool
	IsMax   bool
}

// MediaQuery guards a rule list behind a media type and conditions.
type MediaQuery struct {
	MediaType  string
	Negated    bool
	Conditions []Condition
	Rules      []Rule
}

// Matches evaluates the query against a screen viewport. Unknown features
// and unparseable values are conservatively false.
func (m *MediaQuery) Matches(vp Viewport) bool {
	ok := mediaTypeMatches(m.MediaType)
	for _, c := range m.Conditions {
		if !ok {
			break
		}
		ok = c.matches(vp)
	}
	if m.Negated {
		return !ok
	}
	return ok
}

func mediaTypeMatches(mediaType string) bool {
	switch mediaType {
	case "", "all", "screen":
		return true
	}
	return false
}

func (c Condition) matches(vp Viewport) bool {
	var actual float64
	switch c.Feature {
	case "width":
		actual = vp.Width
	case "height":
		actual = vp.Height
	default:
		return false
	}

	want, ok := parsePxValue(c.Value)
	if !ok {
		return false
	}
	switch {
	case c.IsMin:
		return actual >= want
	case c.IsMax:
		return actual <= want
	default:
		return actual == want
	}
}

// parsePxValue accepts "600px" or a bare number; other units fail.
func parsePxValue(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
