package schemas_test

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/ordinal/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TestStructJSONTags verifies the json tags on the report structs so the
// wire contract cannot drift silently.
func TestStructJSONTags(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name         string
		structRef    interface{}
		expectedTags map[string]string
	}{
		{
			name:      "RectDTO",
			structRef: schemas.RectDTO{},
			expectedTags: map[string]string{
				"X":      "x",
				"Y":      "y",
				"Width":  "width",
				"Height": "height",
			},
		},
		{
			name:      "BoxGeometry",
			structRef: schemas.BoxGeometry{},
			expectedTags: map[string]string{
				"Selector": "selector,omitempty",
				"X":        "x",
				"Y":        "y",
				"Width":    "width",
				"Height":   "height",
				"Content":  "content",
				"Padding":  "padding",
				"Border":   "border",
				"Margin":   "margin",
			},
		},
		{
			name:      "RenderReport",
			structRef: schemas.RenderReport{},
			expectedTags: map[string]string{
				"Source":        "source",
				"DocumentTitle": "document_title,omitempty",
				"NodeCount":     "node_count",
				"BoxCount":      "box_count",
				"HTMLErrors":    "html_errors,omitempty",
				"CSSErrors":     "css_errors,omitempty",
				"Boxes":         "boxes,omitempty",
			},
		},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			typ := reflect.TypeOf(tt.structRef)
			require.Equal(t, reflect.Struct, typ.Kind())

			for i := 0; i < typ.NumField(); i++ {
				field := typ.Field(i)
				expected, ok := tt.expectedTags[field.Name]
				require.True(t, ok, "field %s.%s has no expected tag", typ.Name(), field.Name)
				assert.Equal(t, expected, field.Tag.Get("json"), "field %s.%s", typ.Name(), field.Name)
			}
			assert.Equal(t, len(tt.expectedTags), typ.NumField(), "field count for %s", typ.Name())
		})
	}
}

// TestRenderReportRoundTrip marshals a populated report and decodes it back,
// expecting a lossless trip.
func TestRenderReportRoundTrip(t *testing.T) {
	t.Parallel()

	report := schemas.RenderReport{
		Source:        "page.html",
		DocumentTitle: "Example",
		NodeCount:     42,
		BoxCount:      17,
		HTMLErrors:    []string{"unclosed element <div>"},
		CSSErrors:     []string{"stray '}' skipped"},
		Boxes: []schemas.BoxGeometry{
			{
				Selector: "div#hero.banner",
				X:        8, Y: 8, Width: 304, Height: 104,
				Content: schemas.RectDTO{X: 10, Y: 10, Width: 300, Height: 100},
				Padding: schemas.RectDTO{X: 10, Y: 10, Width: 300, Height: 100},
				Border:  schemas.RectDTO{X: 8, Y: 8, Width: 304, Height: 104},
				Margin:  schemas.RectDTO{X: 0, Y: 0, Width: 320, Height: 120},
			},
		},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded schemas.RenderReport
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(report, decoded); diff != "" {
		t.Fatalf("report changed across marshal/unmarshal (-want +got):\n%s", diff)
	}
}

// TestRenderReportOmitsEmpty checks that optional fields stay off the wire
// when unset.
func TestRenderReportOmitsEmpty(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(schemas.RenderReport{Source: "a.html"})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "html_errors")
	assert.NotContains(t, string(data), "css_errors")
	assert.NotContains(t, string(data), "boxes")
	assert.NotContains(t, string(data), "document_title")
	assert.Contains(t, string(data), `"node_count":0`)
}
