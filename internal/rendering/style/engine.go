// internal/rendering/style/engine.go
package style

import (
	"sort"
	"strconv"

	"github.com/xkilldash9x/ordinal/internal/rendering/css"
	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
)

const (
	// BaseFontSize is the default root font size in pixels.
	BaseFontSize = 16.0
	// DefaultLineHeight is the multiplier used for 'line-height: normal'.
	DefaultLineHeight = 1.2
)

// DefaultUserAgentCSS is the compiled-in user-agent stylesheet. It carries
// the block-level defaults, head hiding, and typographic margins every
// document starts from; author rules override it through origin precedence,
// never by edits here.
const DefaultUserAgentCSS = `
html, body, div, p, h1, h2, h3, h4, h5, h6, ul, ol, li, form, header,
footer, section, article, nav, main, aside, blockquote, pre {
	display: block;
	margin: 0;
	padding: 0;
}

head, style, script, title, meta, link, base { display: none; }

body { margin: 8px; }

h1 { font-size: 2em; margin: 0.67em 0; }
h2 { font-size: 1.5em; margin: 0.83em 0; }
h3 { font-size: 1.17em; margin: 1em 0; }
p { margin: 1em 0; }

ul, ol { padding-left: 40px; margin: 1em 0; }
li { display: list-item; }

table { display: table; }
tr { display: table-row; }
td, th { display: table-cell; }

img, input, button, textarea, select { display: inline-block; }

a { color: #0000ee; cursor: pointer; }
b, strong { font-weight: bold; }
`

// Engine computes styled trees: it owns the user-agent and author
// stylesheets, the viewport media queries resolve against, and the root
// font size rem units resolve against.
type Engine struct {
	userAgent    []*css.Stylesheet
	author       []*css.Stylesheet
	viewport     css.Viewport
	rootFontSize float64
}

// NewEngine creates a styling engine for the given viewport with the
// default user-agent stylesheet installed.
func NewEngine(viewport css.Viewport) *Engine {
	return &Engine{
		userAgent:    []*css.Stylesheet{css.Parse(DefaultUserAgentCSS)},
		viewport:     viewport,
		rootFontSize: BaseFontSize,
	}
}

// AddAuthorSheet appends a document-provided stylesheet. Sheets cascade in
// the order they are added.
func (e *Engine) AddAuthorSheet(sheet *css.Stylesheet) {
	if sheet != nil {
		e.author = append(e.author, sheet)
	}
}

// SetRootFontSize overrides the font size rem units and the root element's
// default font-size resolve against. Non-positive values are ignored.
func (e *Engine) SetRootFontSize(px float64) {
	if px > 0 {
		e.rootFontSize = px
	}
}

// DisableUserAgentStyles drops the compiled-in defaults, leaving only
// author sheets in the cascade.
func (e *Engine) DisableUserAgentStyles() {
	e.userAgent = nil
}

// Viewport returns the viewport the engine resolves media queries against.
func (e *Engine) Viewport() css.Viewport { return e.viewport }

// RootFontSize returns the configured root font size in pixels.
func (e *Engine) RootFontSize() float64 { return e.rootFontSize }

// StyledNode pairs a DOM node with its computed style. Computed maps
// property names to resolved values; Important records which of them were
// won by an !important declaration. The styled tree parallels the DOM and
// is rebuilt from scratch on every BuildTree call.
type StyledNode struct {
	Node      *dom.Node
	Computed  map[string]string
	Important map[string]bool
	Parent    *StyledNode
	Children  []*StyledNode
}

// Lookup returns the computed value for property, or fallback when the
// property is not set.
func (sn *StyledNode) Lookup(property, fallback string) string {
	if v, ok := sn.Computed[property]; ok {
		return v
	}
	return fallback
}

// BuildTree computes styles for n and its descendants, returning the root
// of a fresh styled tree. Comment nodes are skipped; text nodes carry only
// inherited properties.
func (e *Engine) BuildTree(n *dom.Node) *StyledNode {
	return e.buildTree(n, nil)
}

func (e *Engine) buildTree(n *dom.Node, parent *StyledNode) *StyledNode {
	if n == nil || n.Type == dom.CommentNode {
		return nil
	}

	sn := &StyledNode{
		Node:      n,
		Computed:  make(map[string]string),
		Important: make(map[string]bool),
		Parent:    parent,
	}
	if n.Type == dom.ElementNode {
		sn.Computed, sn.Important = e.computeStyles(n)
	}

	if parent != nil {
		e.inheritStyles(sn, parent)
	} else {
		e.applyRootDefaults(sn)
	}
	e.resolveRelativeValues(sn, parent)

	for _, c := range n.Children {
		if child := e.buildTree(c, sn); child != nil {
			sn.Children = append(sn.Children, child)
		}
	}
	return sn
}

// origin ranks where a declaration came from. The zero value is the lowest
// precedence origin.
type origin int

const (
	originUserAgent origin = iota
	originAuthor
	originInline
)

// declContext is one declaration annotated with everything the cascade
// sort needs.
type declContext struct {
	decl        css.Declaration
	specificity css.Specificity
	origin      origin
	order       int
}

// cascadePriority folds origin and importance into one rank. Important
// author and inline declarations outrank every normal one, and important
// user-agent declarations outrank those.
func cascadePriority(dc declContext) int {
	switch dc.origin {
	case originUserAgent:
		if dc.decl.Important {
			return 5
		}
		return 1
	case originAuthor:
		if dc.decl.Important {
			return 4
		}
		return 2
	case originInline:
		if dc.decl.Important {
			return 4
		}
		return 3
	}
	return 0
}

// computeStyles runs the cascade for one element: every matching rule from
// the user-agent and author sheets plus the element's style attribute,
// sorted by (priority, specificity weight, source order) and folded so the
// last writer of each property wins. Shorthands are expanded into longhands
// before the fold so a later longhand beats an earlier shorthand.
func (e *Engine) computeStyles(n *dom.Node) (map[string]string, map[string]bool) {
	var decls []declContext
	order := 0

	add := func(d css.Declaration, spec css.Specificity, org origin) {
		for _, longhand := range expandDeclaration(d) {
			decls = append(decls, declContext{decl: longhand, specificity: spec, origin: org, order: order})
			order++
		}
	}

	collect := func(sheets []*css.Stylesheet, org origin) {
		for _, sheet := range sheets {
			for _, rule := range sheet.RulesFor(e.viewport) {
				spec, matched := bestMatch(n, rule.Selectors)
				if !matched {
					continue
				}
				for _, d := range rule.Declarations {
					add(d, spec, org)
				}
			}
		}
	}

	collect(e.userAgent, originUserAgent)
	collect(e.author, originAuthor)

	if styleAttr, ok := n.Attribute("style"); ok {
		inline, _ := css.ParseInlineStyle(styleAttr)
		for _, d := range inline {
			add(d, css.Specificity{Inline: 1}, originInline)
		}
	}

	sort.SliceStable(decls, func(i, j int) bool {
		a, b := decls[i], decls[j]
		if pa, pb := cascadePriority(a), cascadePriority(b); pa != pb {
			return pa < pb
		}
		if wa, wb := a.specificity.Weight(), b.specificity.Weight(); wa != wb {
			return wa < wb
		}
		return a.order < b.order
	})

	computed := make(map[string]string)
	important := make(map[string]bool)
	for _, dc := range decls {
		computed[dc.decl.Property] = dc.decl.Value
		if dc.decl.Important {
			important[dc.decl.Property] = true
		} else {
			delete(important, dc.decl.Property)
		}
	}
	return computed, important
}

// bestMatch reports whether any selector of the group matches n, returning
// the highest specificity among the matches. Each group member is its own
// selector; the declarations apply once at the strongest matching weight.
func bestMatch(n *dom.Node, selectors []css.Selector) (css.Specificity, bool) {
	var best css.Specificity
	matched := false
	for i := range selectors {
		if !Matches(n, &selectors[i]) {
			continue
		}
		if !matched || best.Less(selectors[i].Specificity) {
			best = selectors[i].Specificity
		}
		matched = true
	}
	return best, matched
}

// inheritedProperties fall back to the parent's computed value when an
// element does not set them.
var inheritedProperties = map[string]bool{
	"color":       true,
	"font-family": true,
	"font-size":   true,
	"font-weight": true,
	"line-height": true,
	"text-align":  true,
	"visibility":  true,
	"cursor":      true,
}

func (e *Engine) inheritStyles(child, parent *StyledNode) {
	// An explicit 'inherit' pulls the parent value for any property.
	for prop, val := range child.Computed {
		if val != "inherit" {
			continue
		}
		if pv, ok := parent.Computed[prop]; ok {
			child.Computed[prop] = pv
		} else {
			delete(child.Computed, prop)
		}
	}

	for prop := range inheritedProperties {
		if _, ok := child.Computed[prop]; ok {
			continue
		}
		if pv, ok := parent.Computed[prop]; ok {
			child.Computed[prop] = pv
		}
	}
}

func (e *Engine) applyRootDefaults(sn *StyledNode) {
	if _, ok := sn.Computed["font-size"]; !ok {
		sn.Computed["font-size"] = formatPx(e.rootFontSize)
	}
}

// resolveRelativeValues rewrites font-size and line-height to absolute
// pixel values so every later consumer reads plain px. Font-relative units
// resolve against the parent's already-resolved font size, rem against the
// root font size.
func (e *Engine) resolveRelativeValues(sn, parent *StyledNode) {
	parentFont := e.rootFontSize
	if parent != nil {
		parentFont = GetFontSize(parent)
	}

	if raw, ok := sn.Computed["font-size"]; ok {
		l := ParseLength(raw)
		resolved := parentFont
		if !l.IsAuto() && !l.IsNone() {
			resolved = l.ToPx(parentFont, parentFont, e.rootFontSize, e.viewport.Width, e.viewport.Height)
		}
		sn.Computed["font-size"] = formatPx(resolved)
	}

	fontSize := GetFontSize(sn)
	if raw, ok := sn.Computed["line-height"]; ok {
		sn.Computed["line-height"] = formatPx(e.resolveLineHeight(raw, fontSize))
	}
}

func (e *Engine) resolveLineHeight(value string, fontSize float64) float64 {
	if value == "normal" {
		return fontSize * DefaultLineHeight
	}
	// A bare number is a multiplier of the element's own font size.
	if v, err := strconv.ParseFloat(value, 64); err == nil {
		return fontSize * v
	}
	l := ParseLength(value)
	if l.IsAuto() || l.IsNone() {
		return fontSize * DefaultLineHeight
	}
	return l.ToPx(fontSize, fontSize, e.rootFontSize, e.viewport.Width, e.viewport.Height)
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
