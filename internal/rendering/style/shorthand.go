// internal/rendering/style/shorthand.go
package style

import (
	"strings"

	"github.com/xkilldash9x/ordinal/internal/rendering/css"
)

var edgeShorthands = map[string][4]string{
	"margin":       {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"padding":      {"padding-top", "padding-right", "padding-bottom", "padding-left"},
	"border-width": {"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"},
}

// expandDeclaration rewrites a shorthand declaration into its longhands,
// each carrying the shorthand's importance. Non-shorthand declarations pass
// through unchanged. Expansion happens before the cascade fold, so a later
// longhand still overrides an earlier shorthand.
func expandDeclaration(d css.Declaration) []css.Declaration {
	if sides, ok := edgeShorthands[d.Property]; ok {
		return expandEdges(d, sides)
	}
	if d.Property == "border" {
		return expandBorder(d)
	}
	return []css.Declaration{d}
}

// expandEdges applies the 1-to-4 value forms: one value for all sides, two
// for vertical/horizontal, three for top/horizontal/bottom, four for
// top/right/bottom/left. Other counts drop the declaration.
func expandEdges(d css.Declaration, sides [4]string) []css.Declaration {
	parts := strings.Fields(d.Value)
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, right, bottom, left = parts[0], parts[1], parts[0], parts[1]
	case 3:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return nil
	}
	return []css.Declaration{
		{Property: sides[0], Value: top, Important: d.Important},
		{Property: sides[1], Value: right, Important: d.Important},
		{Property: sides[2], Value: bottom, Important: d.Important},
		{Property: sides[3], Value: left, Important: d.Important},
	}
}

// expandBorder splits 'border: W S C' into per-side width, style, and color
// longhands. Order among the three values is free; unset components default
// to medium/none and no color declarations.
func expandBorder(d css.Declaration) []css.Declaration {
	width, borderStyle, color := "medium", "none", ""
	for _, part := range strings.Fields(d.Value) {
		switch {
		case isBorderStyle(part):
			borderStyle = part
		case isBorderWidth(part):
			width = part
		case color == "":
			color = part
		}
	}

	out := make([]css.Declaration, 0, 12)
	for _, side := range [4]string{"top", "right", "bottom", "left"} {
		out = append(out,
			css.Declaration{Property: "border-" + side + "-width", Value: width, Important: d.Important},
			css.Declaration{Property: "border-" + side + "-style", Value: borderStyle, Important: d.Important},
		)
		if color != "" {
			out = append(out, css.Declaration{Property: "border-" + side + "-color", Value: color, Important: d.Important})
		}
	}
	return out
}

func isBorderStyle(s string) bool {
	switch s {
	case "solid", "dashed", "dotted", "double", "none", "hidden", "groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

func isBorderWidth(s string) bool {
	switch s {
	case "thin", "medium", "thick":
		return true
	case "":
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || c == '.' || c == '-'
}
