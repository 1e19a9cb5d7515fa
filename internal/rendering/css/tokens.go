// internal/rendering/css/tokens.go
package css

import (
	"fmt"
	"strings"
)

// TokenType identifies one lexical class of CSS input.
type TokenType int

const (
	TokenIdent TokenType = iota
	TokenString
	TokenNumber
	TokenHash
	TokenDot
	TokenColon
	TokenDoubleColon
	TokenSemicolon
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenLeftParen
	TokenRightParen
	TokenComma
	TokenStar
	TokenGreater
	TokenPlus
	TokenTilde
	TokenAt
	TokenWhitespace
	TokenDelim
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenIdent:
		return "ident"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenHash:
		return "hash"
	case TokenDot:
		return "dot"
	case TokenColon:
		return "colon"
	case TokenDoubleColon:
		return "double-colon"
	case TokenSemicolon:
		return "semicolon"
	case TokenLeftBrace:
		return "left-brace"
	case TokenRightBrace:
		return "right-brace"
	case TokenLeftBracket:
		return "left-bracket"
	case TokenRightBracket:
		return "right-bracket"
	case TokenLeftParen:
		return "left-paren"
	case TokenRightParen:
		return "right-paren"
	case TokenComma:
		return "comma"
	case TokenStar:
		return "star"
	case TokenGreater:
		return "greater"
	case TokenPlus:
		return "plus"
	case TokenTilde:
		return "tilde"
	case TokenAt:
		return "at"
	case TokenWhitespace:
		return "whitespace"
	case TokenDelim:
		return "delim"
	case TokenEOF:
		return "eof"
	}
	return "unknown"
}

// Token is one lexical unit. Start and End are byte offsets into the
// comment-stripped source, so parsers can slice raw text back out, e.g. a
// whole declaration block.
type Token struct {
	Type  TokenType
	Value string
	Start int
	End   int
}

// Tokenize scans a stylesheet into tokens, ending with a TokenEOF. Comments
// are stripped before scanning; lexical problems are returned as strings and
// never stop the scan.
func Tokenize(src string) ([]Token, []string) {
	clean, errs := stripComments(src)
	tokens, scanErrs := scan(clean)
	return tokens, append(errs, scanErrs...)
}

// stripComments blanks every /* */ comment to spaces so byte offsets stay
// aligned with the original source. Quoted strings are honored: a comment
// opener inside a string is content, not a comment.
func stripComments(src string) (string, []string) {
	b := []byte(src)
	var errs []string
	for i := 0; i < len(b); {
		c := b[i]
		if c == '"' || c == '\'' {
			quote := c
			i++
			for i < len(b) && b[i] != quote && b[i] != '\n' {
				if b[i] == '\\' && i+1 < len(b) {
					i++
				}
				i++
			}
			if i < len(b) {
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(b) && b[i+1] == '*' {
			stop := len(b)
			if end := strings.Index(string(b[i+2:]), "*/"); end >= 0 {
				stop = i + 2 + end + 2
			} else {
				errs = append(errs, fmt.Sprintf("offset %d: unterminated comment", i))
			}
			for j := i; j < stop; j++ {
				b[j] = ' '
			}
			i = stop
			continue
		}
		i++
	}
	return string(b), errs
}

func scan(src string) ([]Token, []string) {
	var tokens []Token
	var errs []string

	push := func(t TokenType, start, end int) {
		tokens = append(tokens, Token{Type: t, Value: src[start:end], Start: start, End: end})
	}

	i := 0
	for i < len(src) {
		start := i
		c := src[i]
		switch {
		case isSpace(c):
			for i < len(src) && isSpace(src[i]) {
				i++
			}
			push(TokenWhitespace, start, i)

		case c == '"' || c == '\'':
			value, end, ok := scanString(src, i)
			if !ok {
				errs = append(errs, fmt.Sprintf("offset %d: unterminated string", start))
			}
			tokens = append(tokens, Token{Type: TokenString, Value: value, Start: start, End: end})
			i = end

		case c == '#':
			i++
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			tokens = append(tokens, Token{Type: TokenHash, Value: src[start+1 : i], Start: start, End: i})

		case isDigit(c),
			c == '.' && i+1 < len(src) && isDigit(src[i+1]),
			c == '-' && i+1 < len(src) && (isDigit(src[i+1]) || src[i+1] == '.'):
			i = scanNumber(src, i)
			push(TokenNumber, start, i)

		case isIdentStart(c), c == '-' && i+1 < len(src) && isIdentStart(src[i+1]):
			i++
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			push(TokenIdent, start, i)

		case c == ':':
			if i+1 < len(src) && src[i+1] == ':' {
				i += 2
				push(TokenDoubleColon, start, i)
			} else {
				i++
				push(TokenColon, start, i)
			}

		default:
			var t TokenType
			switch c {
			case '.':
				t = TokenDot
			case ';':
				t = TokenSemicolon
			case '{':
				t = TokenLeftBrace
			case '}':
				t = TokenRightBrace
			case '[':
				t = TokenLeftBracket
			case ']':
				t = TokenRightBracket
			case '(':
				t = TokenLeftParen
			case ')':
				t = TokenRightParen
			case ',':
				t = TokenComma
			case '*':
				t = TokenStar
			case '>':
				t = TokenGreater
			case '+':
				t = TokenPlus
			case '~':
				t = TokenTilde
			case '@':
				t = TokenAt
			default:
				t = TokenDelim
			}
			i++
			push(t, start, i)
		}
	}

	tokens = append(tokens, Token{Type: TokenEOF, Start: len(src), End: len(src)})
	return tokens, errs
}

// scanString consumes a quoted string starting at src[start], returning the
// unquoted value and the offset past the closing quote. A newline or EOF
// before the close marks the string unterminated.
func scanString(src string, start int) (string, int, bool) {
	quote := src[start]
	var sb strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == quote:
			return sb.String(), i + 1, true
		case c == '\n':
			return sb.String(), i, false
		case c == '\\' && i+1 < len(src):
			i++
			sb.WriteByte(src[i])
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), i, false
}

// scanNumber consumes digits, an optional fraction, and a glued unit ('%' or
// letters), so "1.5em" and "50%" come out as single Number tokens.
func scanNumber(src string, start int) int {
	i := start
	if src[i] == '-' {
		i++
	}
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && src[i] == '%' {
		return i + 1
	}
	for i < len(src) && isIdentStart(src[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}
