// internal/rendering/css/stylesheet.go
package css

import "sort"

// Stylesheet is the parse result: top-level rules and media-guarded rules
// kept separate, plus every diagnostic collected on the way. Rules across
// both lists share one global SourceOrder sequence.
type Stylesheet struct {
	Rules        []Rule
	MediaQueries []MediaQuery
	Errors       []string
}

// Parse builds a stylesheet from CSS source. Parsing never fails; malformed
// constructs are skipped with a recorded error and the parser resumes at the
// next statement boundary.
func Parse(src string) *Stylesheet {
	clean, errs := stripComments(src)
	tokens, scanErrs := scan(clean)

	p := &parser{src: clean, tokens: tokens, errors: append(errs, scanErrs...)}
	sheet := &Stylesheet{}
	p.run(sheet)
	sheet.Errors = p.errors
	return sheet
}

// RulesFor flattens the stylesheet for one viewport: top-level rules plus
// the rules of every matching media query, in global source order.
func (s *Stylesheet) RulesFor(vp Viewport) []Rule {
	out := make([]Rule, 0, len(s.Rules))
	out = append(out, s.Rules...)
	for _, mq := range s.MediaQueries {
		if mq.Matches(vp) {
			out = append(out, mq.Rules...)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SourceOrder < out[j].SourceOrder
	})
	return out
}
