// internal/rendering/layout/computed.go
package layout

import (
	"math"

	"github.com/xkilldash9x/ordinal/internal/rendering/css"
	"github.com/xkilldash9x/ordinal/internal/rendering/style"
)

// EdgeLengths holds the four sides of a box property as unresolved lengths.
// Percentages resolve against the containing block during layout, so they
// cannot be collapsed to pixels at style time.
type EdgeLengths struct {
	Top, Right, Bottom, Left style.Length
}

// ComputedStyle is the typed projection of a styled node's property map:
// everything layout reads, resolved once per box instead of re-parsed at
// every use. Font size and line height arrive already in pixels from the
// style engine; border widths resolve here because they take no
// percentages.
type ComputedStyle struct {
	Display   style.DisplayType
	Position  style.PositionType
	Float     style.FloatType
	Clear     style.ClearType
	BoxSizing style.BoxSizingType
	OverflowX style.OverflowType
	OverflowY style.OverflowType

	Width     style.Length
	Height    style.Length
	MinWidth  style.Length
	MinHeight style.Length
	MaxWidth  style.Length
	MaxHeight style.Length

	Margin      EdgeLengths
	Padding     EdgeLengths
	BorderWidth Edges

	// Offset carries top/right/bottom/left for positioned boxes.
	Offset EdgeLengths

	FontSize   float64
	FontWeight int
	FontFamily string
	LineHeight float64

	Color      style.Color
	Background style.Color

	ZIndex  int
	Visible bool
	Opacity float64
}

// IsPositioned reports whether the box is a positioning ancestor for
// absolute descendants.
func (cs *ComputedStyle) IsPositioned() bool {
	return cs.Position != style.PositionStatic
}

// IsOutOfFlow reports whether normal flow skips the box.
func (cs *ComputedStyle) IsOutOfFlow() bool {
	return cs.Position == style.PositionAbsolute || cs.Position == style.PositionFixed
}

// IsFloated reports whether the box is float: left or right.
func (cs *ComputedStyle) IsFloated() bool {
	return cs.Float != style.FloatNone
}

func computeStyle(sn *style.StyledNode, rootFont float64, vp css.Viewport) ComputedStyle {
	cs := ComputedStyle{
		Display:   sn.Display(),
		Position:  sn.Position(),
		Float:     sn.Float(),
		Clear:     sn.Clear(),
		BoxSizing: sn.BoxSizing(),
		OverflowX: sn.OverflowX(),
		OverflowY: sn.OverflowY(),

		Width:     style.ParseLength(sn.Lookup("width", "auto")),
		Height:    style.ParseLength(sn.Lookup("height", "auto")),
		MinWidth:  style.ParseLength(sn.Lookup("min-width", "")),
		MinHeight: style.ParseLength(sn.Lookup("min-height", "")),
		MaxWidth:  style.ParseLength(sn.Lookup("max-width", "")),
		MaxHeight: style.ParseLength(sn.Lookup("max-height", "")),

		Margin:  edgeLengths(sn, "margin"),
		Padding: edgeLengths(sn, "padding"),

		Offset: EdgeLengths{
			Top:    style.ParseLength(sn.Lookup("top", "auto")),
			Right:  style.ParseLength(sn.Lookup("right", "auto")),
			Bottom: style.ParseLength(sn.Lookup("bottom", "auto")),
			Left:   style.ParseLength(sn.Lookup("left", "auto")),
		},

		FontSize:   style.GetFontSize(sn),
		FontWeight: style.ParseFontWeight(sn.Lookup("font-weight", "")),
		FontFamily: sn.Lookup("font-family", "sans-serif"),
		LineHeight: style.GetLineHeight(sn),

		ZIndex:  sn.ZIndex(),
		Visible: sn.Visible(),
		Opacity: sn.Opacity(),
	}

	cs.BorderWidth = borderEdges(sn, cs.FontSize, rootFont, vp)

	if c, ok := style.ParseColor(sn.Lookup("color", "")); ok {
		cs.Color = c
	} else {
		cs.Color = style.Color{A: 255}
	}
	bgValue := sn.Lookup("background-color", sn.Lookup("background", ""))
	if c, ok := style.ParseColor(bgValue); ok {
		cs.Background = c
	}

	return cs
}

func edgeLengths(sn *style.StyledNode, prefix string) EdgeLengths {
	return EdgeLengths{
		Top:    style.ParseLength(sn.Lookup(prefix+"-top", "0")),
		Right:  style.ParseLength(sn.Lookup(prefix+"-right", "0")),
		Bottom: style.ParseLength(sn.Lookup(prefix+"-bottom", "0")),
		Left:   style.ParseLength(sn.Lookup(prefix+"-left", "0")),
	}
}

// borderEdges resolves border widths to pixels. A side whose style is none
// or hidden contributes nothing regardless of its declared width; the
// keyword widths follow the usual 1/3/5 mapping.
func borderEdges(sn *style.StyledNode, fontSize, rootFont float64, vp css.Viewport) Edges {
	side := func(name string) float64 {
		borderStyle := sn.Lookup("border-"+name+"-style", "none")
		if borderStyle == "none" || borderStyle == "hidden" {
			return 0
		}
		switch w := sn.Lookup("border-"+name+"-width", "medium"); w {
		case "thin":
			return 1
		case "medium":
			return 3
		case "thick":
			return 5
		default:
			px := style.ParseLength(w).ToPx(0, fontSize, rootFont, vp.Width, vp.Height)
			return math.Max(0, px)
		}
	}
	return Edges{
		Top:    side("top"),
		Right:  side("right"),
		Bottom: side("bottom"),
		Left:   side("left"),
	}
}

// anonymousStyle builds the style of a generated box, inheriting only the
// font metrics and text color its inline content needs.
func anonymousStyle(parent *ComputedStyle) ComputedStyle {
	cs := ComputedStyle{
		Display: style.DisplayBlock,
		Width:   style.Length{Unit: style.UnitAuto},
		Height:  style.Length{Unit: style.UnitAuto},

		FontSize:   style.BaseFontSize,
		LineHeight: style.BaseFontSize * style.DefaultLineHeight,
		FontWeight: 400,
		Color:      style.Color{A: 255},

		Visible: true,
		Opacity: 1,
	}
	if parent != nil {
		cs.FontSize = parent.FontSize
		cs.LineHeight = parent.LineHeight
		cs.FontWeight = parent.FontWeight
		cs.FontFamily = parent.FontFamily
		cs.Color = parent.Color
	}
	return cs
}
