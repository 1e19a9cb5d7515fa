// internal/rendering/render.go

// Package rendering wires the pipeline stages together: markup parsing,
// stylesheet parsing, the cascade, and layout. Every Render call builds its
// trees from scratch and shares nothing, so callers may render documents
// concurrently without coordination.
package rendering

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/ordinal/internal/config"
	"github.com/xkilldash9x/ordinal/internal/rendering/css"
	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
	"github.com/xkilldash9x/ordinal/internal/rendering/html"
	"github.com/xkilldash9x/ordinal/internal/rendering/layout"
	"github.com/xkilldash9x/ordinal/internal/rendering/style"
)

// Options tunes one render pass. The zero value renders against the default
// viewport with user-agent styles enabled.
type Options struct {
	// Viewport is the initial containing block. A degenerate viewport falls
	// back to css.DefaultViewport.
	Viewport css.Viewport
	// RootFontSize is the rem reference in px. Zero keeps the engine default.
	RootFontSize float64
	// DisableUserAgentStyles renders with author rules only.
	DisableUserAgentStyles bool
	// Logger receives per-stage diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// OptionsFromConfig maps the render section of the application config onto
// pipeline options.
func OptionsFromConfig(rc config.RenderConfig) Options {
	return Options{
		Viewport: css.Viewport{
			Width:            rc.ViewportWidth,
			Height:           rc.ViewportHeight,
			DevicePixelRatio: rc.DevicePixelRatio,
		},
		RootFontSize:           rc.RootFontSize,
		DisableUserAgentStyles: !rc.UserAgentStyles,
	}
}

// Result carries every intermediate tree of one render pass, so callers can
// inspect whichever stage they care about.
type Result struct {
	Document   *dom.Node
	Stylesheet *css.Stylesheet
	StyleRoot  *style.StyledNode
	LayoutRoot *layout.LayoutBox
	HTMLErrors []string
	CSSErrors  []string
}

// Render runs the full pipeline over one document: parse the markup, parse
// the author stylesheet, cascade styles over the DOM, and lay out boxes
// against the viewport. Parsing never fails; recoverable problems surface as
// diagnostics on the Result. An error means there was nothing to render at
// all, empty source being the usual case.
func Render(htmlSrc, cssSrc string, opts Options) (*Result, error) {
	if strings.TrimSpace(htmlSrc) == "" {
		return nil, errors.New("document source is empty")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	viewport := opts.Viewport
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = css.DefaultViewport()
	}

	doc, htmlErrs := html.Parse(htmlSrc)
	logger.Debug("parsed markup",
		zap.Int("nodes", countNodes(doc)),
		zap.Int("diagnostics", len(htmlErrs)))

	sheet := css.Parse(cssSrc)
	logger.Debug("parsed stylesheet",
		zap.Int("rules", len(sheet.Rules)),
		zap.Int("media_queries", len(sheet.MediaQueries)),
		zap.Int("diagnostics", len(sheet.Errors)))

	styler := style.NewEngine(viewport)
	if opts.DisableUserAgentStyles {
		styler.DisableUserAgentStyles()
	}
	if opts.RootFontSize > 0 {
		styler.SetRootFontSize(opts.RootFontSize)
	}
	styler.AddAuthorSheet(sheet)
	styleRoot := styler.BuildTree(doc)
	if styleRoot == nil {
		return nil, errors.New("document produced no styled tree")
	}

	layoutEngine := layout.NewEngine(viewport)
	if opts.RootFontSize > 0 {
		layoutEngine.SetRootFontSize(opts.RootFontSize)
	}
	layoutRoot := layoutEngine.Layout(styleRoot)
	if layoutRoot == nil {
		return nil, errors.New("document produced no layout boxes")
	}
	logger.Debug("laid out document",
		zap.Int("boxes", layoutRoot.CountBoxes()),
		zap.Float64("viewport_width", viewport.Width),
		zap.Float64("viewport_height", viewport.Height))

	return &Result{
		Document:   doc,
		Stylesheet: sheet,
		StyleRoot:  styleRoot,
		LayoutRoot: layoutRoot,
		HTMLErrors: htmlErrs,
		CSSErrors:  sheet.Errors,
	}, nil
}
