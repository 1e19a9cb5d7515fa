// internal/rendering/html/entities.go
package html

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// namedEntities is the supported subset of HTML named character references.
// Unknown names pass through literally rather than erroring.
var namedEntities = map[string]string{
	"amp": "&", "lt": "<", "gt": ">", "quot": `"`,
	"apos": "'", "nbsp": " ", "copy": "©",
	"reg": "®", "trade": "™",
	"laquo": "«", "raquo": "»",
	"mdash": "—", "ndash": "–",
	"bull": "•", "hellip": "…",
	"prime": "′", "Prime": "″",
	"lsquo": "‘", "rsquo": "’",
	"ldquo": "“", "rdquo": "”",
	"euro": "€", "pound": "£",
	"yen": "¥", "cent": "¢",
	"times": "×", "divide": "÷",
	"para": "¶", "sect": "§",
	"deg": "°", "micro": "µ",
	"frac12": "½", "frac14": "¼",
	"frac34": "¾", "iexcl": "¡",
	"iquest": "¿", "lArr": "⇐",
	"rArr": "⇒", "larr": "←",
	"rarr": "→", "uarr": "↑",
	"darr": "↓", "hearts": "♥",
	"diams": "♦", "clubs": "♣",
	"spades": "♠",
}

// maxEntityLookahead bounds how far past '&' a ';' may appear for the span
// to be treated as a character reference at all.
const maxEntityLookahead = 12

// DecodeEntities expands named (&amp;), decimal (&#65;), and hexadecimal
// (&#x41;) character references in s. Anything unrecognized, including a
// bare '&', is kept literally.
func DecodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '&' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		semi := strings.IndexByte(s[i+1:], ';')
		if semi < 0 || semi+1 >= maxEntityLookahead {
			sb.WriteByte('&')
			i++
			continue
		}
		name := s[i+1 : i+1+semi]
		if decoded, ok := decodeReference(name); ok {
			sb.WriteString(decoded)
			i += semi + 2
			continue
		}
		sb.WriteByte('&')
		i++
	}
	return sb.String()
}

// decodeReference resolves one reference body (without '&' and ';').
func decodeReference(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if name[0] == '#' {
		digits := name[1:]
		base := 10
		if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
			digits = digits[1:]
			base = 16
		}
		code, err := strconv.ParseUint(digits, base, 32)
		if err != nil || code == 0 || code > utf8.MaxRune {
			return "", false
		}
		return string(rune(code)), true
	}
	if expansion, ok := namedEntities[name]; ok {
		return expansion, true
	}
	return "", false
}
