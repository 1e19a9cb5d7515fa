// internal/rendering/style/values.go
package style

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
)

// Unit is the dimension of a CSS length. UnitNone marks an absent or
// unparseable value, UnitAuto the keyword 'auto'.
type Unit int

const (
	UnitNone Unit = iota
	UnitAuto
	UnitPx
	UnitEm
	UnitRem
	UnitPercent
	UnitVw
	UnitVh
)

// Length is a parsed CSS length value awaiting resolution.
type Length struct {
	Value float64
	Unit  Unit
}

func (l Length) IsAuto() bool { return l.Unit == UnitAuto }
func (l Length) IsNone() bool { return l.Unit == UnitNone }

// ToPx resolves the length: percentages against reference, em against
// fontSize, rem against rootFontSize, vw/vh against the viewport. Auto and
// none resolve to zero; callers that distinguish them check first.
func (l Length) ToPx(reference, fontSize, rootFontSize, viewportWidth, viewportHeight float64) float64 {
	switch l.Unit {
	case UnitPx:
		return l.Value
	case UnitEm:
		return l.Value * fontSize
	case UnitRem:
		return l.Value * rootFontSize
	case UnitPercent:
		return reference * l.Value / 100
	case UnitVw:
		return viewportWidth * l.Value / 100
	case UnitVh:
		return viewportHeight * l.Value / 100
	}
	return 0
}

var lengthSuffixes = []struct {
	text string
	unit Unit
}{
	{"%", UnitPercent},
	{"px", UnitPx},
	{"rem", UnitRem}, // before em: every rem value also ends in em
	{"em", UnitEm},
	{"vw", UnitVw},
	{"vh", UnitVh},
}

// ParseLength reads a CSS length. Unitless numbers and numbers with an
// unrecognized unit are treated as pixels; anything without a leading
// number comes back as UnitNone.
func ParseLength(s string) Length {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return Length{Unit: UnitNone}
	case "auto", "normal":
		return Length{Unit: UnitAuto}
	}

	for _, suf := range lengthSuffixes {
		if !strings.HasSuffix(s, suf.text) {
			continue
		}
		num := strings.TrimSpace(strings.TrimSuffix(s, suf.text))
		if v, err := strconv.ParseFloat(num, 64); err == nil {
			return Length{Value: v, Unit: suf.unit}
		}
	}

	if v, ok := leadingNumber(s); ok {
		return Length{Value: v, Unit: UnitPx}
	}
	return Length{Unit: UnitNone}
}

// leadingNumber parses the numeric prefix of s, tolerating trailing text so
// values like "12pt" still yield their magnitude.
func leadingNumber(s string) (float64, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := false
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits = true
		}
	}
	if !digits {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	return v, err == nil
}

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

var namedColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"silver":      {192, 192, 192, 255},
	"gray":        {128, 128, 128, 255},
	"white":       {255, 255, 255, 255},
	"maroon":      {128, 0, 0, 255},
	"red":         {255, 0, 0, 255},
	"purple":      {128, 0, 128, 255},
	"fuchsia":     {255, 0, 255, 255},
	"green":       {0, 128, 0, 255},
	"lime":        {0, 255, 0, 255},
	"olive":       {128, 128, 0, 255},
	"yellow":      {255, 255, 0, 255},
	"navy":        {0, 0, 128, 255},
	"blue":        {0, 0, 255, 255},
	"teal":        {0, 128, 128, 255},
	"aqua":        {0, 255, 255, 255},
	"orange":      {255, 165, 0, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor reads a named color, #rgb/#rgba/#rrggbb/#rrggbbaa hex form, or
// rgb()/rgba() function. The second return is false for anything else.
func ParseColor(value string) (Color, bool) {
	value = strings.ToLower(strings.TrimSpace(value))

	if c, ok := namedColors[value]; ok {
		return c, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value)
	}
	if strings.HasPrefix(value, "rgb") {
		return parseRGBColor(value)
	}
	return Color{A: 255}, false
}

func parseHexColor(hex string) (Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Color{}, false
		}
	}

	var r, g, b uint8
	a := uint8(255)
	switch len(hex) {
	case 4:
		a = hexDigit(hex[3]) * 17
		fallthrough
	case 3:
		r = hexDigit(hex[0]) * 17
		g = hexDigit(hex[1]) * 17
		b = hexDigit(hex[2]) * 17
	case 8:
		a = hexDigit(hex[6])<<4 | hexDigit(hex[7])
		fallthrough
	case 6:
		r = hexDigit(hex[0])<<4 | hexDigit(hex[1])
		g = hexDigit(hex[2])<<4 | hexDigit(hex[3])
		b = hexDigit(hex[4])<<4 | hexDigit(hex[5])
	default:
		return Color{}, false
	}
	return Color{R: r, G: g, B: b, A: a}, true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexDigit(c byte) uint8 {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

var rgbPattern = regexp.MustCompile(`^rgba?\((.*)\)$`)

func parseRGBColor(value string) (Color, bool) {
	m := rgbPattern.FindStringSubmatch(value)
	if m == nil {
		return Color{}, false
	}
	fields := strings.FieldsFunc(m[1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) < 3 || len(fields) > 4 {
		return Color{}, false
	}

	c := Color{
		R: parseColorComponent(fields[0], false),
		G: parseColorComponent(fields[1], false),
		B: parseColorComponent(fields[2], false),
		A: 255,
	}
	if len(fields) == 4 {
		c.A = parseColorComponent(fields[3], true)
	}
	return c, true
}

// parseColorComponent reads one rgb() channel: a percentage, an integer
// 0-255, or for the alpha channel a 0-1 float.
func parseColorComponent(value string, isAlpha bool) uint8 {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return 0
		}
		return uint8(clamp(pct/100*255+0.5, 0, 255))
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if isAlpha {
			return 255
		}
		return 0
	}
	if isAlpha {
		return uint8(clamp(v*255+0.5, 0, 255))
	}
	return uint8(clamp(v+0.5, 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GetFontSize returns the node's resolved font size in pixels. The style
// engine rewrites font-size to px during tree construction, so anything
// else falls back to the base size.
func GetFontSize(sn *StyledNode) float64 {
	if sn == nil {
		return BaseFontSize
	}
	l := ParseLength(sn.Lookup("font-size", ""))
	if l.Unit == UnitPx && l.Value > 0 {
		return l.Value
	}
	return BaseFontSize
}

// GetLineHeight returns the node's resolved line height in pixels, falling
// back to the normal multiplier of its font size.
func GetLineHeight(sn *StyledNode) float64 {
	fontSize := GetFontSize(sn)
	if sn == nil {
		return fontSize * DefaultLineHeight
	}
	l := ParseLength(sn.Lookup("line-height", ""))
	if l.Unit == UnitPx && l.Value > 0 {
		return l.Value
	}
	return fontSize * DefaultLineHeight
}

// GetFontAscent estimates the baseline offset as 0.8 of the font size.
func GetFontAscent(sn *StyledNode) float64 {
	return GetFontSize(sn) * 0.8
}

// MeasureText estimates the unwrapped extent of a text node: advance width
// from MeasureString, height from the line height.
func MeasureText(sn *StyledNode) (width, height float64) {
	if sn == nil || sn.Node == nil || sn.Node.Type != dom.TextNode {
		return 0, 0
	}
	return MeasureString(sn.Node.Data, GetFontSize(sn)), GetLineHeight(sn)
}

// MeasureString estimates the advance width of s at the given font size,
// using an average glyph width of 0.6 of the font size.
func MeasureString(s string, fontSize float64) float64 {
	return float64(len(s)) * fontSize * 0.6
}

// ParseFontWeight maps a font-weight value to its numeric weight,
// defaulting to 400.
func ParseFontWeight(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "normal":
		return 400
	case "bold", "bolder":
		return 700
	case "lighter":
		return 300
	}
	if v, ok := leadingNumber(value); ok && v >= 1 && v <= 1000 {
		return int(v)
	}
	return 400
}
