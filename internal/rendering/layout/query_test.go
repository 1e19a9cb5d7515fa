// internal/rendering/layout/query_test.go
package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/ordinal/internal/rendering/dom"
	"github.com/xkilldash9x/ordinal/internal/rendering/layout"
)

// TestHitTestFindsDeepestBox verifies depth wins: a point inside nested
// boxes reports the innermost one.
func TestHitTestFindsDeepestBox(t *testing.T) {
	html := `
	<div id="outer">
	  <div id="inner"></div>
	</div>
	`
	css := `
	body { margin: 0; }
	#outer { width: 100px; height: 100px; }
	#inner { width: 50px; height: 50px; }
	`
	root := setupLayout(t, html, css, 600, 400)

	// (25, 25) is inside both; the inner box is deeper.
	hit := layout.HitTest(root, 25, 25)
	require.NotNil(t, hit)
	require.NotNil(t, hit.Node)
	assert.Equal(t, "inner", hit.Node.ID(), "deepest box wins")

	// (75, 75) is outside the 50px inner box.
	hit = layout.HitTest(root, 75, 75)
	require.NotNil(t, hit)
	require.NotNil(t, hit.Node)
	assert.Equal(t, "outer", hit.Node.ID(), "falls back to the ancestor")

	// Past the content but inside the viewport-sized root.
	hit = layout.HitTest(root, 599, 399)
	require.NotNil(t, hit)
	require.NotNil(t, hit.Node)
	assert.Equal(t, dom.DocumentNode, hit.Node.Type, "root catches the rest")

	// Outside everything.
	assert.Nil(t, layout.HitTest(root, 700, 50), "miss returns nil")
	assert.Nil(t, layout.HitTest(nil, 0, 0), "nil tree returns nil")
}

// TestHitTestPrefersLaterSibling verifies paint order at equal depth: where
// siblings overlap, the one laid out later is on top.
func TestHitTestPrefersLaterSibling(t *testing.T) {
	html := `
	<div id="first"></div>
	<div id="second"></div>
	`
	css := `
	body { margin: 0; }
	#first { width: 100px; height: 100px; }
	#second { width: 100px; height: 100px; position: relative; top: -50px; }
	`
	root := setupLayout(t, html, css, 600, 400)

	// The relative offset pulls #second up to Y=50; the band from 50 to
	// 100 belongs to both. Later in the tree paints on top.
	hit := layout.HitTest(root, 50, 75)
	require.NotNil(t, hit)
	require.NotNil(t, hit.Node)
	assert.Equal(t, "second", hit.Node.ID(), "later sibling wins the overlap")

	// Above the overlap only #first remains.
	hit = layout.HitTest(root, 50, 25)
	require.NotNil(t, hit)
	require.NotNil(t, hit.Node)
	assert.Equal(t, "first", hit.Node.ID())
}

// TestGeometryForReportsAllFourBoxes verifies the rect nesting for an
// element with every edge set.
func TestGeometryForReportsAllFourBoxes(t *testing.T) {
	html := `<div id="box"></div>`
	css := `
	body { margin: 0; }
	#box {
		width: 100px;
		height: 50px;
		padding: 10px;
		border: 5px solid black;
		margin: 20px;
	}
	`
	root := setupLayout(t, html, css, 600, 400)

	geo, err := layout.GeometryFor(root, "#box")
	require.NoError(t, err)

	// Content sits at 20 (margin) + 5 (border) + 10 (padding) = 35.
	assert.InDelta(t, 35.0, geo.Content.X, 0.1, "content X")
	assert.InDelta(t, 35.0, geo.Content.Y, 0.1, "content Y")
	assert.InDelta(t, 100.0, geo.Content.Width, 0.1, "content width")
	assert.InDelta(t, 50.0, geo.Content.Height, 0.1, "content height")

	// Each outer rect grows by its edge on both sides.
	assert.InDelta(t, 25.0, geo.Padding.X, 0.1, "padding X")
	assert.InDelta(t, 120.0, geo.Padding.Width, 0.1, "padding width")
	assert.InDelta(t, 20.0, geo.Border.X, 0.1, "border X")
	assert.InDelta(t, 130.0, geo.Border.Width, 0.1, "border width")
	assert.InDelta(t, 0.0, geo.Margin.X, 0.1, "margin X")
	assert.InDelta(t, 170.0, geo.Margin.Width, 0.1, "margin width")
	assert.InDelta(t, 120.0, geo.Margin.Height, 0.1, "margin height")

	// The top-level rect mirrors the border box, like
	// getBoundingClientRect.
	assert.InDelta(t, geo.Border.X, geo.X, 0.1, "top-level X is the border box")
	assert.InDelta(t, geo.Border.Width, geo.Width, 0.1, "top-level width is the border box")

	assert.Equal(t, "div#box", geo.Selector, "selector description")
}

// TestGeometryForSelectorForms verifies tag, class, and attribute lookups
// all reach the same element.
func TestGeometryForSelectorForms(t *testing.T) {
	html := `<p id="target" class="hot note" data-k="v">x</p>`
	css := `
	body { margin: 0; }
	#target { width: 50px; height: 10px; margin: 0; }
	`
	root := setupLayout(t, html, css, 600, 400)

	for _, selector := range []string{"#target", "p", ".hot", "[data-k=v]"} {
		geo, err := layout.GeometryFor(root, selector)
		require.NoError(t, err, "selector %q", selector)
		assert.Equal(t, "p#target.hot.note", geo.Selector, "selector %q", selector)
		assert.InDelta(t, 50.0, geo.Width, 0.1, "selector %q width", selector)
	}
}

// TestGeometryForMisses verifies the error paths: nothing matches, or the
// match was never rendered.
func TestGeometryForMisses(t *testing.T) {
	html := `
	<div id="shown"></div>
	<div id="hidden"></div>
	`
	css := `
	#shown { height: 10px; }
	#hidden { display: none; }
	`
	root := setupLayout(t, html, css, 600, 400)

	_, err := layout.GeometryFor(root, "#nope")
	assert.Error(t, err, "unknown selector")

	_, err = layout.GeometryFor(root, "#hidden")
	assert.Error(t, err, "display: none elements have no geometry")

	_, err = layout.GeometryFor(nil, "#shown")
	assert.Error(t, err, "nil tree")
}
