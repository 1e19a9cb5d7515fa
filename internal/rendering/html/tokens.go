// internal/rendering/html/tokens.go
package html

// TokenType identifies what the tokenizer emitted for one lexical unit.
type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenSelfClosingTag
	TokenText
	TokenComment
	TokenDoctype
	TokenEndOfFile
)

// String returns the token type name used in diagnostics.
func (t TokenType) String() string {
	switch t {
	case TokenStartTag:
		return "StartTag"
	case TokenEndTag:
		return "EndTag"
	case TokenSelfClosingTag:
		return "SelfClosingTag"
	case TokenText:
		return "Text"
	case TokenComment:
		return "Comment"
	case TokenDoctype:
		return "Doctype"
	case TokenEndOfFile:
		return "EndOfFile"
	}
	return "Unknown"
}

// Attribute is one name/value pair on a tag token. Order is the source
// order; duplicate names are dropped by the tokenizer with the first
// occurrence kept.
type Attribute struct {
	Name  string
	Value string
}

// Token is one unit of tokenizer output. Data holds the tag name for tag
// tokens, the text for text tokens, the body for comments, and the
// identifier for doctypes.
type Token struct {
	Type       TokenType
	Data       string
	Attributes []Attribute
}

// Attr returns the value of the named attribute and whether it is present.
func (t Token) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
