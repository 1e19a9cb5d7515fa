// internal/rendering/style/display.go
package style

import "github.com/xkilldash9x/ordinal/internal/rendering/dom"

type DisplayType int

const (
	DisplayInline DisplayType = iota
	DisplayBlock
	DisplayInlineBlock
	DisplayListItem
	DisplayTable
	DisplayTableRow
	DisplayTableCell
	DisplayNone
)

// Display resolves the node's display type from its computed style, falling
// back to the tag default table. Text nodes are always inline; the document
// root is a block.
func (sn *StyledNode) Display() DisplayType {
	if sn.Node == nil || sn.Node.Type == dom.TextNode {
		return DisplayInline
	}
	if sn.Node.Type == dom.DocumentNode {
		return DisplayBlock
	}
	switch sn.Lookup("display", "") {
	case "block":
		return DisplayBlock
	case "inline":
		return DisplayInline
	case "inline-block":
		return DisplayInlineBlock
	case "list-item":
		return DisplayListItem
	case "table":
		return DisplayTable
	case "table-row":
		return DisplayTableRow
	case "table-cell":
		return DisplayTableCell
	case "none":
		return DisplayNone
	}
	return defaultDisplay(sn.Node)
}

func defaultDisplay(n *dom.Node) DisplayType {
	if n.Type != dom.ElementNode {
		return DisplayInline
	}
	switch n.Tag {
	case "html", "body", "div", "p", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "form", "header", "footer", "section", "article",
		"nav", "main", "aside", "blockquote", "pre", "hr", "address",
		"figure", "figcaption", "fieldset", "dl", "dt", "dd":
		return DisplayBlock
	case "li":
		return DisplayListItem
	case "table":
		return DisplayTable
	case "tr":
		return DisplayTableRow
	case "td", "th":
		return DisplayTableCell
	case "img", "input", "button", "textarea", "select":
		return DisplayInlineBlock
	default:
		return DisplayInline
	}
}

type PositionType int

const (
	PositionStatic PositionType = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

func (sn *StyledNode) Position() PositionType {
	switch sn.Lookup("position", "static") {
	case "relative":
		return PositionRelative
	case "absolute":
		return PositionAbsolute
	case "fixed":
		return PositionFixed
	case "sticky":
		return PositionSticky
	default:
		return PositionStatic
	}
}

type FloatType int

const (
	FloatNone FloatType = iota
	FloatLeft
	FloatRight
)

func (sn *StyledNode) Float() FloatType {
	switch sn.Lookup("float", "none") {
	case "left":
		return FloatLeft
	case "right":
		return FloatRight
	default:
		return FloatNone
	}
}

type ClearType int

const (
	ClearNone ClearType = iota
	ClearLeft
	ClearRight
	ClearBoth
)

func (sn *StyledNode) Clear() ClearType {
	switch sn.Lookup("clear", "none") {
	case "left":
		return ClearLeft
	case "right":
		return ClearRight
	case "both":
		return ClearBoth
	default:
		return ClearNone
	}
}

type BoxSizingType int

const (
	ContentBox BoxSizingType = iota
	BorderBox
)

func (sn *StyledNode) BoxSizing() BoxSizingType {
	if sn.Lookup("box-sizing", "content-box") == "border-box" {
		return BorderBox
	}
	return ContentBox
}

type OverflowType int

const (
	OverflowVisible OverflowType = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

func parseOverflow(value string) OverflowType {
	switch value {
	case "hidden":
		return OverflowHidden
	case "scroll":
		return OverflowScroll
	case "auto":
		return OverflowAuto
	default:
		return OverflowVisible
	}
}

// OverflowX and OverflowY fall back to the 'overflow' shorthand when the
// per-axis property is not set.
func (sn *StyledNode) OverflowX() OverflowType {
	return parseOverflow(sn.Lookup("overflow-x", sn.Lookup("overflow", "visible")))
}

func (sn *StyledNode) OverflowY() OverflowType {
	return parseOverflow(sn.Lookup("overflow-y", sn.Lookup("overflow", "visible")))
}

// Visible reports the computed visibility; hidden nodes still occupy
// layout space.
func (sn *StyledNode) Visible() bool {
	return sn.Lookup("visibility", "visible") != "hidden"
}

// ZIndex returns the computed z-index, zero for auto or unset.
func (sn *StyledNode) ZIndex() int {
	if v, ok := leadingNumber(sn.Lookup("z-index", "")); ok {
		return int(v)
	}
	return 0
}

// Opacity returns the computed opacity clamped to [0, 1], defaulting to 1.
func (sn *StyledNode) Opacity() float64 {
	if v, ok := leadingNumber(sn.Lookup("opacity", "")); ok {
		return clamp(v, 0, 1)
	}
	return 1
}
