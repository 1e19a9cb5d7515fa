// internal/rendering/html/tokenizer.go
package html

import (
	"fmt"
	"strings"
)

// state is the tokenizer's current position in the HTML lexical grammar.
// Every state consumes exactly one input byte per step and either stays,
// transitions, or emits a token; lookahead happens only in
// stateMarkupDeclarationOpen, which must disambiguate comments from
// doctypes.
type state int

const (
	stateData state = iota
	stateTagOpen
	stateEndTagOpen
	stateTagName
	stateBeforeAttributeName
	stateAttributeName
	stateAfterAttributeName
	stateBeforeAttributeValue
	stateAttributeValueDoubleQuoted
	stateAttributeValueSingleQuoted
	stateAttributeValueUnquoted
	stateAfterAttributeValueQuoted
	stateSelfClosingStartTag
	stateMarkupDeclarationOpen
	stateCommentStart
	stateCommentStartDash
	stateComment
	stateCommentEndDash
	stateCommentEnd
	stateBogusComment
	stateDoctype
)

// Tokenizer turns an HTML source string into a stream of tokens. Malformed
// input never stops the stream: every state has a recovery transition and
// the problem is appended to Errors instead.
type Tokenizer struct {
	input string
	pos   int
	state state
	done  bool

	errors []string

	text      strings.Builder
	tagName   strings.Builder
	attrName  strings.Builder
	attrValue strings.Builder
	attrs     []Attribute
	endTag    bool

	comment strings.Builder
	doctype strings.Builder
}

// NewTokenizer returns a tokenizer positioned at the start of input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Errors returns the problems recorded so far, in input order.
func (t *Tokenizer) Errors() []string {
	return t.errors
}

func (t *Tokenizer) errorf(format string, args ...any) {
	t.errors = append(t.errors, fmt.Sprintf("offset %d: ", t.pos)+fmt.Sprintf(format, args...))
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Next returns the next token. After the first TokenEndOfFile every further
// call returns TokenEndOfFile again.
func (t *Tokenizer) Next() Token {
	for {
		if t.pos >= len(t.input) {
			if tok := t.atEOF(); tok != nil {
				return *tok
			}
			return Token{Type: TokenEndOfFile}
		}
		c := t.input[t.pos]
		t.pos++
		if tok := t.step(c); tok != nil {
			return *tok
		}
	}
}

// step feeds one byte into the state machine and returns an emitted token,
// if any.
func (t *Tokenizer) step(c byte) *Token {
	switch t.state {
	case stateData:
		if c == '<' {
			t.state = stateTagOpen
			return t.flushText()
		}
		t.text.WriteByte(c)
		return nil

	case stateTagOpen:
		switch {
		case c == '!':
			t.state = stateMarkupDeclarationOpen
			return nil
		case c == '/':
			t.state = stateEndTagOpen
			return nil
		case isLetter(c):
			t.resetTag(false)
			t.tagName.WriteByte(toLower(c))
			t.state = stateTagName
			return nil
		case c == '?':
			t.errorf("unexpected '?' after '<', treating as bogus comment")
			t.comment.Reset()
			t.comment.WriteByte(c)
			t.state = stateBogusComment
			return nil
		default:
			// Not a tag after all. The '<' becomes plain text.
			t.errorf("unexpected character %q after '<'", c)
			t.text.WriteByte('<')
			if c == '<' {
				t.state = stateTagOpen
			} else {
				t.text.WriteByte(c)
				t.state = stateData
			}
			return nil
		}

	case stateEndTagOpen:
		switch {
		case isLetter(c):
			t.resetTag(true)
			t.tagName.WriteByte(toLower(c))
			t.state = stateTagName
			return nil
		case c == '>':
			t.errorf("missing end tag name")
			t.state = stateData
			return nil
		default:
			t.errorf("invalid character %q in end tag, treating as bogus comment", c)
			t.comment.Reset()
			t.comment.WriteByte(c)
			t.state = stateBogusComment
			return nil
		}

	case stateTagName:
		switch {
		case isWhitespace(c):
			t.state = stateBeforeAttributeName
			return nil
		case c == '/':
			t.state = stateSelfClosingStartTag
			return nil
		case c == '>':
			t.state = stateData
			return t.emitTag(false)
		default:
			t.tagName.WriteByte(toLower(c))
			return nil
		}

	case stateBeforeAttributeName:
		switch {
		case isWhitespace(c):
			return nil
		case c == '/':
			t.state = stateSelfClosingStartTag
			return nil
		case c == '>':
			t.state = stateData
			return t.emitTag(false)
		default:
			if c == '=' {
				t.errorf("unexpected '=' before attribute name")
			}
			t.attrName.WriteByte(toLower(c))
			t.state = stateAttributeName
			return nil
		}

	case stateAttributeName:
		switch {
		case isWhitespace(c):
			t.state = stateAfterAttributeName
			return nil
		case c == '=':
			t.state = stateBeforeAttributeValue
			return nil
		case c == '/':
			t.commitAttribute()
			t.state = stateSelfClosingStartTag
			return nil
		case c == '>':
			t.commitAttribute()
			t.state = stateData
			return t.emitTag(false)
		default:
			t.attrName.WriteByte(toLower(c))
			return nil
		}

	case stateAfterAttributeName:
		switch {
		case isWhitespace(c):
			return nil
		case c == '=':
			t.state = stateBeforeAttributeValue
			return nil
		case c == '/':
			t.commitAttribute()
			t.state = stateSelfClosingStartTag
			return nil
		case c == '>':
			t.commitAttribute()
			t.state = stateData
			return t.emitTag(false)
		default:
			// A bare attribute followed by the next attribute's name.
			t.commitAttribute()
			t.attrName.WriteByte(toLower(c))
			t.state = stateAttributeName
			return nil
		}

	case stateBeforeAttributeValue:
		switch {
		case isWhitespace(c):
			return nil
		case c == '"':
			t.state = stateAttributeValueDoubleQuoted
			return nil
		case c == '\'':
			t.state = stateAttributeValueSingleQuoted
			return nil
		case c == '>':
			t.errorf("attribute %q has '=' but no value", t.attrName.String())
			t.commitAttribute()
			t.state = stateData
			return t.emitTag(false)
		default:
			t.attrValue.WriteByte(c)
			t.state = stateAttributeValueUnquoted
			return nil
		}

	case stateAttributeValueDoubleQuoted:
		if c == '"' {
			t.commitAttribute()
			t.state = stateAfterAttributeValueQuoted
			return nil
		}
		t.attrValue.WriteByte(c)
		return nil

	case stateAttributeValueSingleQuoted:
		if c == '\'' {
			t.commitAttribute()
			t.state = stateAfterAttributeValueQuoted
			return nil
		}
		t.attrValue.WriteByte(c)
		return nil

	case stateAttributeValueUnquoted:
		switch {
		case isWhitespace(c):
			t.commitAttribute()
			t.state = stateBeforeAttributeName
			return nil
		case c == '>':
			t.commitAttribute()
			t.state = stateData
			return t.emitTag(false)
		default:
			t.attrValue.WriteByte(c)
			return nil
		}

	case stateAfterAttributeValueQuoted:
		switch {
		case isWhitespace(c):
			t.state = stateBeforeAttributeName
			return nil
		case c == '/':
			t.state = stateSelfClosingStartTag
			return nil
		case c == '>':
			t.state = stateData
			return t.emitTag(false)
		default:
			t.errorf("missing whitespace after quoted attribute value")
			t.attrName.WriteByte(toLower(c))
			t.state = stateAttributeName
			return nil
		}

	case stateSelfClosingStartTag:
		if c == '>' {
			t.state = stateData
			return t.emitTag(true)
		}
		t.errorf("unexpected character %q in self-closing tag", c)
		t.state = stateBeforeAttributeName
		return t.step(c)

	case stateMarkupDeclarationOpen:
		// c is the first byte after "<!". Comments and doctypes need more
		// than one byte to recognize, so this state peeks ahead.
		rest := t.input[t.pos-1:]
		if c == '-' && strings.HasPrefix(rest, "--") {
			t.pos++ // second '-'
			t.comment.Reset()
			t.state = stateCommentStart
			return nil
		}
		if len(rest) >= 7 && strings.EqualFold(rest[:7], "doctype") {
			t.pos += 6
			t.doctype.Reset()
			t.state = stateDoctype
			return nil
		}
		t.errorf("unknown markup declaration, treating as bogus comment")
		t.comment.Reset()
		t.comment.WriteByte(c)
		t.state = stateBogusComment
		return nil

	case stateCommentStart:
		switch c {
		case '-':
			t.state = stateCommentStartDash
			return nil
		case '>':
			t.errorf("comment closed immediately after '<!--'")
			t.state = stateData
			return t.emitComment()
		default:
			t.comment.WriteByte(c)
			t.state = stateComment
			return nil
		}

	case stateCommentStartDash:
		switch c {
		case '-':
			t.state = stateCommentEnd
			return nil
		case '>':
			t.errorf("comment closed immediately after '<!---'")
			t.state = stateData
			return t.emitComment()
		default:
			t.comment.WriteByte('-')
			t.comment.WriteByte(c)
			t.state = stateComment
			return nil
		}

	case stateComment:
		if c == '-' {
			t.state = stateCommentEndDash
			return nil
		}
		t.comment.WriteByte(c)
		return nil

	case stateCommentEndDash:
		if c == '-' {
			t.state = stateCommentEnd
			return nil
		}
		t.comment.WriteByte('-')
		t.comment.WriteByte(c)
		t.state = stateComment
		return nil

	case stateCommentEnd:
		switch c {
		case '>':
			t.state = stateData
			return t.emitComment()
		case '-':
			t.comment.WriteByte('-')
			return nil
		default:
			t.comment.WriteString("--")
			t.comment.WriteByte(c)
			t.state = stateComment
			return nil
		}

	case stateBogusComment:
		if c == '>' {
			t.state = stateData
			return t.emitComment()
		}
		t.comment.WriteByte(c)
		return nil

	case stateDoctype:
		if c == '>' {
			t.state = stateData
			return t.emitDoctype()
		}
		t.doctype.WriteByte(c)
		return nil
	}
	return nil
}

// atEOF finishes whatever the current state was building. It returns the
// final partial token, or nil once everything has been flushed; the caller
// then emits TokenEndOfFile.
func (t *Tokenizer) atEOF() *Token {
	if t.done {
		return nil
	}
	switch t.state {
	case stateData:
		t.done = true
		return t.flushText()
	case stateTagOpen:
		t.done = true
		t.text.WriteByte('<')
		return t.flushText()
	case stateEndTagOpen:
		t.done = true
		t.text.WriteString("</")
		return t.flushText()
	case stateComment, stateCommentStart, stateCommentStartDash,
		stateCommentEndDash, stateCommentEnd, stateBogusComment:
		t.errorf("unterminated comment at end of input")
		t.done = true
		return t.emitComment()
	case stateDoctype:
		t.errorf("unterminated doctype at end of input")
		t.done = true
		return t.emitDoctype()
	default:
		// Inside a tag: the partial tag is discarded.
		t.errorf("unexpected end of input inside tag <%s>", t.tagName.String())
		t.done = true
		return nil
	}
}

func (t *Tokenizer) resetTag(endTag bool) {
	t.tagName.Reset()
	t.attrName.Reset()
	t.attrValue.Reset()
	t.attrs = nil
	t.endTag = endTag
}

// commitAttribute moves the pending name/value pair into the attribute list.
// Duplicate names keep the first occurrence.
func (t *Tokenizer) commitAttribute() {
	name := t.attrName.String()
	value := t.attrValue.String()
	t.attrName.Reset()
	t.attrValue.Reset()
	if name == "" {
		return
	}
	for _, a := range t.attrs {
		if a.Name == name {
			t.errorf("duplicate attribute %q dropped", name)
			return
		}
	}
	t.attrs = append(t.attrs, Attribute{Name: name, Value: value})
}

func (t *Tokenizer) flushText() *Token {
	if t.text.Len() == 0 {
		return nil
	}
	tok := &Token{Type: TokenText, Data: t.text.String()}
	t.text.Reset()
	return tok
}

func (t *Tokenizer) emitTag(selfClosing bool) *Token {
	t.commitAttribute()
	typ := TokenStartTag
	if t.endTag {
		typ = TokenEndTag
		if len(t.attrs) > 0 {
			t.errorf("attributes on end tag </%s> ignored", t.tagName.String())
			t.attrs = nil
		}
	} else if selfClosing {
		typ = TokenSelfClosingTag
	}
	tok := &Token{Type: typ, Data: t.tagName.String(), Attributes: t.attrs}
	t.resetTag(false)
	return tok
}

func (t *Tokenizer) emitComment() *Token {
	tok := &Token{Type: TokenComment, Data: t.comment.String()}
	t.comment.Reset()
	return tok
}

func (t *Tokenizer) emitDoctype() *Token {
	tok := &Token{Type: TokenDoctype, Data: strings.TrimSpace(t.doctype.String())}
	t.doctype.Reset()
	return tok
}
