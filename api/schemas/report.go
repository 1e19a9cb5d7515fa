package schemas

// RenderReport is the machine-readable result of rendering one document:
// parse diagnostics plus the geometry of every laid-out element.
type RenderReport struct {
	Source        string        `json:"source"`
	DocumentTitle string        `json:"document_title,omitempty"`
	NodeCount     int           `json:"node_count"`
	BoxCount      int           `json:"box_count"`
	HTMLErrors    []string      `json:"html_errors,omitempty"`
	CSSErrors     []string      `json:"css_errors,omitempty"`
	Boxes         []BoxGeometry `json:"boxes,omitempty"`
}
