package feed

import (
	"testing"
)

func TestExtractCandidates(t *testing.T) {
	tests := []struct {
		name     string
		doc      interface{}
		expected int
	}{
		{
			name: "top-level list",
			doc: []interface{}{
				map[string]interface{}{"title": "Engineer"},
				map[string]interface{}{"title": "Designer"},
			},
			expected: 2,
		},
		{
			name: "jobs wrapper with job list",
			doc: map[string]interface{}{
				"jobs": map[string]interface{}{
					"job": []interface{}{
						map[string]interface{}{"title": "Engineer"},
						map[string]interface{}{"title": "Designer"},
					},
				},
			},
			expected: 2,
		},
		{
			name: "jobs wrapper with single job object",
			doc: map[string]interface{}{
				"jobs": map[string]interface{}{
					"job": map[string]interface{}{"title": "Engineer"},
				},
			},
			expected: 1,
		},
		{
			name:     "document is itself a record",
			doc:      map[string]interface{}{"title": "Engineer", "company": "Acme"},
			expected: 1,
		},
		{
			name: "nested list under arbitrary key",
			doc: map[string]interface{}{
				"results": []interface{}{
					map[string]interface{}{"title": "Engineer"},
					map[string]interface{}{"title": "Designer"},
					map[string]interface{}{"title": "Writer"},
				},
			},
			expected: 3,
		},
		{
			name: "nested standalone object",
			doc: map[string]interface{}{
				"listing": map[string]interface{}{"position": "Engineer"},
			},
			expected: 1,
		},
		{
			name:     "scalar document",
			doc:      "not a feed",
			expected: 0,
		},
		{
			name:     "empty map",
			doc:      map[string]interface{}{},
			expected: 0,
		},
		{
			name: "list with non-map entries skipped",
			doc: []interface{}{
				map[string]interface{}{"title": "Engineer"},
				"stray string",
				42,
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCandidates(tt.doc)
			if len(got) != tt.expected {
				t.Errorf("expected %d candidates, got %d: %v", tt.expected, len(got), got)
			}
		})
	}
}

func TestExtractCandidates_WrapperWinsOverNested(t *testing.T) {
	// When a jobs wrapper exists, sibling values are not flattened in.
	doc := map[string]interface{}{
		"jobs": map[string]interface{}{
			"job": []interface{}{
				map[string]interface{}{"title": "Engineer"},
			},
		},
		"metadata": map[string]interface{}{"generated": "2026-01-15"},
	}

	got := ExtractCandidates(doc)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0]["title"] != "Engineer" {
		t.Errorf("unexpected candidate: %v", got[0])
	}
}
