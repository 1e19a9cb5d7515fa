// internal/rendering/css/parser.go
package css

import (
	"fmt"
	"strings"
)

// Declaration is one property assignment inside a rule or inline style.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule pairs a selector group with its declarations. Every selector in a
// comma group is kept and shares the declarations. SourceOrder is the rule's
// global position across the whole stylesheet, media-guarded rules included,
// so cascade ties still resolve by document order after flattening.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
	SourceOrder  int
}

// parser walks the token slice. src is the comment-stripped source whose
// offsets line up with the tokens, so declaration blocks and media
// conditions can be sliced back out as raw text.
type parser struct {
	src    string
	tokens []Token
	pos    int
	order  int
	errors []string
}

func (p *parser) cur() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) skipWhitespace() {
	for p.cur().Type == TokenWhitespace {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *parser) run(sheet *Stylesheet) {
	for {
		p.skipWhitespace()
		switch p.cur().Type {
		case TokenEOF:
			return
		case TokenAt:
			p.parseAtRule(sheet)
		case TokenRightBrace:
			p.errorf("offset %d: stray '}' skipped", p.cur().Start)
			p.pos++
		default:
			p.parseRule(&sheet.Rules)
		}
	}
}

// parseRule reads one selector group and its brace-delimited declaration
// block, appending the result to dst. On malformed input it records an error
// and leaves p.pos at the next statement boundary. A right brace that
// terminates an enclosing block is not consumed.
func (p *parser) parseRule(dst *[]Rule) {
	selStart := p.pos
	for {
		switch p.cur().Type {
		case TokenLeftBrace, TokenSemicolon, TokenRightBrace, TokenEOF:
		default:
			p.pos++
			continue
		}
		break
	}

	selTokens := p.tokens[selStart:p.pos]
	src := sourceOf(p.src, selTokens)

	switch p.cur().Type {
	case TokenSemicolon:
		p.errorf("statement %q skipped, expected a '{' block", src)
		p.pos++
		return
	case TokenRightBrace:
		if src != "" {
			p.errorf("selector %q has no declaration block", src)
		}
		return
	case TokenEOF:
		if src != "" {
			p.errorf("selector %q has no declaration block", src)
		}
		return
	}

	openIdx := p.pos
	closeIdx := p.matchingBrace(openIdx)
	if closeIdx < 0 {
		p.errorf("unbalanced braces after selector %q", src)
		p.pos = len(p.tokens) - 1
		return
	}
	raw := p.src[p.tokens[openIdx].End:p.tokens[closeIdx].Start]
	p.pos = closeIdx + 1

	selectors := p.parseSelectorGroup(selTokens)
	decls, declErrs := parseDeclarationList(raw)
	p.errors = append(p.errors, declErrs...)

	if len(selectors) == 0 {
		return
	}
	*dst = append(*dst, Rule{Selectors: selectors, Declarations: decls, SourceOrder: p.order})
	p.order++
}

// matchingBrace returns the token index of the right brace closing the left
// brace at open, or -1 when the input runs out first.
func (p *parser) matchingBrace(open int) int {
	depth := 0
	for i := open; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case TokenLeftBrace:
			depth++
		case TokenRightBrace:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseSelectorGroup splits the selector tokens on top-level commas and
// parses each group member. Members that fail to parse are dropped
// individually; the survivors still form the rule.
func (p *parser) parseSelectorGroup(toks []Token) []Selector {
	var selectors []Selector
	depth := 0
	start := 0

	flush := func(end int) {
		member := toks[start:end]
		if sel, ok := p.parseSelector(member); ok {
			selectors = append(selectors, sel)
		}
	}

	for i, tok := range toks {
		switch tok.Type {
		case TokenLeftBracket, TokenLeftParen:
			depth++
		case TokenRightBracket, TokenRightParen:
			depth--
		case TokenComma:
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(toks))
	return selectors
}

// parseSelector builds the part list for one comma-group member. Compound
// parts accumulate directly; whitespace between compounds becomes a
// descendant combinator unless an explicit '>', '+', or '~' overrides it.
func (p *parser) parseSelector(toks []Token) (Selector, bool) {
	src := sourceOf(p.src, toks)
	var parts []SelectorPart
	pending := byte(0)

	add := func(part SelectorPart) bool {
		if pending != 0 {
			if len(parts) == 0 {
				p.errorf("selector %q starts with a combinator", src)
				return false
			}
			parts = append(parts, SelectorPart{Type: PartCombinator, Combinator: pending})
			pending = 0
		}
		parts = append(parts, part)
		return true
	}

	i := 0
	for i < len(toks) {
		tok := toks[i]
		switch tok.Type {
		case TokenWhitespace:
			if len(parts) > 0 && pending == 0 {
				pending = ' '
			}
			i++

		case TokenGreater:
			pending = '>'
			i++
		case TokenPlus:
			pending = '+'
			i++
		case TokenTilde:
			pending = '~'
			i++

		case TokenIdent:
			if !add(SelectorPart{Type: PartTag, Value: strings.ToLower(tok.Value)}) {
				return Selector{}, false
			}
			i++

		case TokenStar:
			if !add(SelectorPart{Type: PartUniversal}) {
				return Selector{}, false
			}
			i++

		case TokenHash:
			if tok.Value == "" {
				p.errorf("empty id selector in %q", src)
				return Selector{}, false
			}
			if !add(SelectorPart{Type: PartID, Value: tok.Value}) {
				return Selector{}, false
			}
			i++

		case TokenDot:
			if i+1 >= len(toks) || toks[i+1].Type != TokenIdent {
				p.errorf("'.' without a class name in %q", src)
				return Selector{}, false
			}
			if !add(SelectorPart{Type: PartClass, Value: toks[i+1].Value}) {
				return Selector{}, false
			}
			i += 2

		case TokenColon, TokenDoubleColon:
			partType := PartPseudoClass
			if tok.Type == TokenDoubleColon {
				partType = PartPseudoElement
			}
			if i+1 >= len(toks) || toks[i+1].Type != TokenIdent {
				p.errorf("':' without a pseudo name in %q", src)
				return Selector{}, false
			}
			value := strings.ToLower(toks[i+1].Value)
			i += 2
			// Functional pseudo-classes keep their raw argument text.
			if i < len(toks) && toks[i].Type == TokenLeftParen {
				depth := 0
				closeIdx := -1
				for j := i; j < len(toks); j++ {
					switch toks[j].Type {
					case TokenLeftParen:
						depth++
					case TokenRightParen:
						depth--
						if depth == 0 {
							closeIdx = j
						}
					}
					if closeIdx >= 0 {
						break
					}
				}
				if closeIdx < 0 {
					p.errorf("unterminated '(' in %q", src)
					return Selector{}, false
				}
				value += p.src[toks[i].Start:toks[closeIdx].End]
				i = closeIdx + 1
			}
			if !add(SelectorPart{Type: partType, Value: value}) {
				return Selector{}, false
			}

		case TokenLeftBracket:
			part, consumed, ok := p.parseAttribute(toks, i, src)
			if !ok {
				return Selector{}, false
			}
			if !add(part) {
				return Selector{}, false
			}
			i += consumed

		default:
			p.errorf("unexpected %s in selector %q", tok.Type, src)
			return Selector{}, false
		}
	}

	if pending == '>' || pending == '+' || pending == '~' {
		p.errorf("selector %q ends with a combinator", src)
		return Selector{}, false
	}
	if len(parts) == 0 {
		return Selector{}, false
	}
	return Selector{Parts: parts, Specificity: ComputeSpecificity(parts), Source: src}, true
}

// parseAttribute parses an [attr], [attr=v], or [attr<op>=v] step starting
// at the '[' token and returns the part plus the token count consumed.
func (p *parser) parseAttribute(toks []Token, start int, selSrc string) (SelectorPart, int, bool) {
	i := start + 1
	skipWS := func() {
		for i < len(toks) && toks[i].Type == TokenWhitespace {
			i++
		}
	}

	skipWS()
	if i >= len(toks) || toks[i].Type != TokenIdent {
		p.errorf("attribute selector in %q has no attribute name", selSrc)
		return SelectorPart{}, 0, false
	}
	part := SelectorPart{Type: PartAttribute, AttrName: strings.ToLower(toks[i].Value)}
	i++
	skipWS()

	if i < len(toks) && toks[i].Type == TokenRightBracket {
		return part, i - start + 1, true
	}

	op := ""
	if i < len(toks) {
		switch toks[i].Type {
		case TokenDelim:
			switch toks[i].Value {
			case "=":
				op = "="
				i++
			case "^", "$", "|":
				if i+1 < len(toks) && toks[i+1].Type == TokenDelim && toks[i+1].Value == "=" {
					op = toks[i].Value + "="
					i += 2
				}
			}
		case TokenStar, TokenTilde:
			lead := "*"
			if toks[i].Type == TokenTilde {
				lead = "~"
			}
			if i+1 < len(toks) && toks[i+1].Type == TokenDelim && toks[i+1].Value == "=" {
				op = lead + "="
				i += 2
			}
		}
	}
	if op == "" {
		p.errorf("attribute selector in %q has an invalid operator", selSrc)
		return SelectorPart{}, 0, false
	}
	part.AttrOperator = op
	skipWS()

	if i >= len(toks) {
		p.errorf("attribute selector in %q is unterminated", selSrc)
		return SelectorPart{}, 0, false
	}
	switch toks[i].Type {
	case TokenString, TokenIdent, TokenNumber:
		part.AttrValue = toks[i].Value
		i++
	default:
		p.errorf("attribute selector in %q has an invalid value", selSrc)
		return SelectorPart{}, 0, false
	}
	skipWS()

	if i >= len(toks) || toks[i].Type != TokenRightBracket {
		p.errorf("attribute selector in %q is unterminated", selSrc)
		return SelectorPart{}, 0, false
	}
	return part, i - start + 1, true
}

func (p *parser) parseAtRule(sheet *Stylesheet) {
	p.pos++ // '@'
	if p.cur().Type != TokenIdent {
		p.errorf("offset %d: '@' without an at-rule name", p.cur().Start)
		p.pos++
		return
	}
	name := strings.ToLower(p.cur().Value)
	p.pos++
	if name != "media" {
		p.errorf("unknown at-rule @%s skipped", name)
		p.skipAtRule()
		return
	}
	p.parseMedia(sheet)
}

// skipAtRule consumes an unrecognized at-rule: through its block if it has
// one, otherwise past its terminating ';'.
func (p *parser) skipAtRule() {
	for {
		switch p.cur().Type {
		case TokenSemicolon:
			p.pos++
			return
		case TokenLeftBrace:
			if closeIdx := p.matchingBrace(p.pos); closeIdx >= 0 {
				p.pos = closeIdx + 1
			} else {
				p.pos = len(p.tokens) - 1
			}
			return
		case TokenEOF:
			return
		default:
			p.pos++
		}
	}
}

func (p *parser) parseMedia(sheet *Stylesheet) {
	mq := MediaQuery{MediaType: "all"}

prelude:
	for {
		tok := p.cur()
		switch tok.Type {
		case TokenWhitespace:
			p.pos++
		case TokenIdent:
			switch word := strings.ToLower(tok.Value); word {
			case "not":
				mq.Negated = true
			case "and", "only":
			default:
				mq.MediaType = word
			}
			p.pos++
		case TokenLeftParen:
			if cond, ok := p.parseMediaCondition(); ok {
				mq.Conditions = append(mq.Conditions, cond)
			}
		case TokenLeftBrace:
			break prelude
		case TokenEOF:
			p.errorf("@media query without a block")
			return
		default:
			p.errorf("unexpected %s in @media query", tok.Type)
			p.pos++
		}
	}

	closeIdx := p.matchingBrace(p.pos)
	if closeIdx < 0 {
		p.errorf("@media block is unterminated")
		p.pos = len(p.tokens) - 1
		return
	}
	p.pos++ // '{'
	for {
		p.skipWhitespace()
		if p.pos >= closeIdx {
			break
		}
		p.parseRule(&mq.Rules)
	}
	p.pos = closeIdx + 1
	sheet.MediaQueries = append(sheet.MediaQueries, mq)
}

// parseMediaCondition reads one parenthesized (feature: value) pair, taking
// the value as raw text so units survive untouched.
func (p *parser) parseMediaCondition() (Condition, bool) {
	open := p.pos
	depth := 0
	closeIdx := -1
	for i := open; i < len(p.tokens) && closeIdx < 0; i++ {
		switch p.tokens[i].Type {
		case TokenLeftParen:
			depth++
		case TokenRightParen:
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
	}
	if closeIdx < 0 {
		p.errorf("unterminated @media condition")
		p.pos = len(p.tokens) - 1
		return Condition{}, false
	}
	raw := p.src[p.tokens[open].End:p.tokens[closeIdx].Start]
	p.pos = closeIdx + 1

	colon := strings.Index(raw, ":")
	if colon < 0 {
		p.errorf("@media condition %q has no ':'", strings.TrimSpace(raw))
		return Condition{}, false
	}
	feature := strings.ToLower(strings.TrimSpace(raw[:colon]))
	cond := Condition{Value: strings.TrimSpace(raw[colon+1:])}
	switch {
	case strings.HasPrefix(feature, "min-"):
		cond.IsMin = true
		feature = feature[4:]
	case strings.HasPrefix(feature, "max-"):
		cond.IsMax = true
		feature = feature[4:]
	}
	cond.Feature = feature
	return cond, true
}

// parseDeclarationList splits raw block text on ';', then each declaration
// on its first ':'. A trailing case-insensitive !important is stripped into
// the flag. A malformed declaration is dropped with an error; the rest of
// the list survives.
func parseDeclarationList(raw string) ([]Declaration, []string) {
	var decls []Declaration
	var errs []string
	for _, chunk := range strings.Split(raw, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		colon := strings.Index(chunk, ":")
		if colon < 0 {
			errs = append(errs, fmt.Sprintf("declaration %q has no ':'", chunk))
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(chunk[:colon]))
		value := strings.TrimSpace(chunk[colon+1:])
		if prop == "" || value == "" {
			errs = append(errs, fmt.Sprintf("declaration %q is incomplete", chunk))
			continue
		}
		value, important := splitImportant(value)
		if value == "" {
			errs = append(errs, fmt.Sprintf("declaration %q has no value before !important", chunk))
			continue
		}
		decls = append(decls, Declaration{Property: prop, Value: value, Important: important})
	}
	return decls, errs
}

func splitImportant(value string) (string, bool) {
	bang := strings.LastIndexByte(value, '!')
	if bang < 0 {
		return value, false
	}
	if !strings.EqualFold(strings.TrimSpace(value[bang+1:]), "important") {
		return value, false
	}
	return strings.TrimSpace(value[:bang]), true
}

// ParseInlineStyle parses the declaration text of a style attribute.
// Comments are stripped first; malformed declarations are dropped and
// described in the returned strings.
func ParseInlineStyle(s string) ([]Declaration, []string) {
	clean, errs := stripComments(s)
	decls, declErrs := parseDeclarationList(clean)
	return decls, append(errs, declErrs...)
}

func sourceOf(src string, toks []Token) string {
	if len(toks) == 0 {
		return ""
	}
	return strings.TrimSpace(src[toks[0].Start : toks[len(toks)-1].End])
}
