// internal/rendering/report.go
package rendering

import (
	"github.com/xkilldash9x/ordinal/api/schemas"
	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
	"github.com/xkilldash9x/ordinal/internal/rendering/layout"
)

// BuildReport flattens a render result into its serializable form: one
// BoxGeometry per rendered element in paint order, plus document counts and
// parse diagnostics. Source labels the report, typically with the input
// file name.
func BuildReport(res *Result, source string) *schemas.RenderReport {
	report := &schemas.RenderReport{
		Source:     source,
		HTMLErrors: res.HTMLErrors,
		CSSErrors:  res.CSSErrors,
	}
	if res.Document != nil {
		report.DocumentTitle = res.Document.Title()
		report.NodeCount = countNodes(res.Document)
	}
	if res.LayoutRoot != nil {
		report.BoxCount = res.LayoutRoot.CountBoxes()
		res.LayoutRoot.WalkBoxes(func(b *layout.LayoutBox) bool {
			// Anonymous wrappers and text fragments carry no element of
			// their own and stay out of the report.
			if b.Node != nil && b.Node.Type == dom.ElementNode {
				report.Boxes = append(report.Boxes, *b.Geometry())
			}
			return true
		})
	}
	return report
}

// countNodes reports the size of a DOM tree, the given node included.
func countNodes(n *dom.Node) int {
	count := 0
	n.WalkDepthFirst(func(*dom.Node) bool {
		count++
		return true
	})
	return count
}
