package schema

import (
	"reflect"
	"testing"
)

func TestTransform_FieldMapping(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]interface{}
		expected map[string]interface{}
	}{
		{
			name: "aliases map to canonical names",
			raw: map[string]interface{}{
				"company":  "Acme Corp",
				"position": "Engineer",
				"body":     "Build things",
			},
			expected: map[string]interface{}{
				"company_name": "Acme Corp",
				"title":        "Engineer",
				"description":  "Build things",
			},
		},
		{
			name: "canonical names pass through",
			raw: map[string]interface{}{
				"company_name": "Acme Corp",
				"title":        "Engineer",
			},
			expected: map[string]interface{}{
				"company_name": "Acme Corp",
				"title":        "Engineer",
			},
		},
		{
			name: "unknown keys are dropped",
			raw: map[string]interface{}{
				"title":            "Engineer",
				"internal_ranking": 42,
				"scraper_version":  "2.1",
			},
			expected: map[string]interface{}{
				"title": "Engineer",
			},
		},
		{
			name: "explicit null is preserved",
			raw: map[string]interface{}{
				"title":           "Engineer",
				"employment_type": nil,
			},
			expected: map[string]interface{}{
				"title":           "Engineer",
				"employment_type": nil,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(tt.raw, FeedFieldMapping)
			if !reflect.DeepEqual(map[string]interface{}(got), tt.expected) {
				t.Errorf("Transform() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTransform_BoolCoercion(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected bool
	}{
		{"string true", "true", true},
		{"string True mixed case", "True", true},
		{"string 1", "1", true},
		{"string yes", "yes", true},
		{"string false", "false", false},
		{"string no", "no", false},
		{"arbitrary string", "maybe", false},
		{"native bool", true, true},
		{"nonzero int", 1, true},
		{"zero int", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := Transform(map[string]interface{}{"remote": tt.value}, FeedFieldMapping)
			got, ok := job["is_remote"].(bool)
			if !ok {
				t.Fatalf("is_remote is %T, want bool", job["is_remote"])
			}
			if got != tt.expected {
				t.Errorf("coerced %v to %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestTransform_SalaryCoercion(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected interface{}
	}{
		{"digit string", "50000", 50000},
		{"native int", 50000, 50000},
		{"native float", 50000.5, 50000.5},
		{"malformed string left as-is", "50k", "50k"},
		{"empty string left as-is", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := Transform(map[string]interface{}{"salary_min": tt.value}, FeedFieldMapping)
			if !reflect.DeepEqual(job["salary_min"], tt.expected) {
				t.Errorf("coerced %v (%T) to %v (%T), want %v (%T)",
					tt.value, tt.value, job["salary_min"], job["salary_min"], tt.expected, tt.expected)
			}
		})
	}
}

func TestTransform_LocationCoercion(t *testing.T) {
	job := Transform(map[string]interface{}{"location": "  Berlin  "}, FeedFieldMapping)

	list, ok := job["locations"].([]interface{})
	if !ok {
		t.Fatalf("locations is %T, want []interface{}", job["locations"])
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 location, got %d", len(list))
	}
	loc, ok := list[0].(map[string]interface{})
	if !ok || loc["location"] != "Berlin" {
		t.Errorf("expected trimmed location record, got %v", list[0])
	}

	// Lists pass through unchanged.
	original := []interface{}{map[string]interface{}{"location": "Berlin"}}
	job = Transform(map[string]interface{}{"locations": original}, FeedFieldMapping)
	if !reflect.DeepEqual(job["locations"], original) {
		t.Errorf("expected list to pass through, got %v", job["locations"])
	}
}

func TestTransform_ManyToOneAliases(t *testing.T) {
	// Every alias for company_name lands on the same canonical field.
	for _, alias := range []string{"company", "hiring_organization", "employer"} {
		job := Transform(map[string]interface{}{alias: "Acme"}, FeedFieldMapping)
		if job["company_name"] != "Acme" {
			t.Errorf("alias %q did not map to company_name: %v", alias, job)
		}
	}
}
