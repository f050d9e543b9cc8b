package domain

import (
	"testing"
)

func TestRecordFromJob_Locations(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected LocationList
	}{
		{
			name: "location records pass through",
			value: []interface{}{
				map[string]interface{}{"location": "Berlin"},
				map[string]interface{}{"location": "Hamburg"},
			},
			expected: LocationList{
				{"location": "Berlin"},
				{"location": "Hamburg"},
			},
		},
		{
			name:  "bare string list wrapped into records",
			value: []interface{}{"NYC", "LA"},
			expected: LocationList{
				{"location": "NYC"},
				{"location": "LA"},
			},
		},
		{
			name: "mixed list keeps both shapes",
			value: []interface{}{
				map[string]interface{}{"location": "Berlin"},
				"Remote",
			},
			expected: LocationList{
				{"location": "Berlin"},
				{"location": "Remote"},
			},
		},
		{
			name:     "absent locations",
			value:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := Job{"title": "Engineer"}
			if tt.value != nil {
				job["locations"] = tt.value
			}

			rec := RecordFromJob(job)
			if len(rec.Locations) != len(tt.expected) {
				t.Fatalf("expected %d locations, got %d: %v", len(tt.expected), len(rec.Locations), rec.Locations)
			}
			for i, want := range tt.expected {
				if rec.Locations[i]["location"] != want["location"] {
					t.Errorf("location %d = %v, want %v", i, rec.Locations[i], want)
				}
			}
		})
	}
}

func TestRecordFromJob_Fields(t *testing.T) {
	job := Job{
		"external_job_id": "J-1",
		"job_source":      SourceJobFeed,
		"feed_id":         1,
		"job_hash":        "hash",
		"status":          "ACTIVE",
		"company_name":    "Acme",
		"title":           "Engineer",
		"description":     "Build services.",
		"is_remote":       true,
		"salary_min":      50000,
		"salary_max":      90000.5,
		"employment_type": "FULL_TIME",
		// Enrichment output stays off the persisted record.
		"ai_title":            "Engineer (Go)",
		"ai_confidence_score": 0.9,
	}

	rec := RecordFromJob(job)

	if rec.ExternalJobID != "J-1" || rec.JobSource != SourceJobFeed {
		t.Errorf("unexpected identity fields: %+v", rec)
	}
	if rec.FeedID == nil || *rec.FeedID != 1 {
		t.Errorf("unexpected feed id: %v", rec.FeedID)
	}
	if rec.Status != JobStatusActive {
		t.Errorf("unexpected status: %v", rec.Status)
	}
	if !rec.IsRemote || rec.IsMultiLocation {
		t.Errorf("unexpected flags: %+v", rec)
	}
	if rec.SalaryMin == nil || *rec.SalaryMin != 50000 {
		t.Errorf("unexpected salary_min: %v", rec.SalaryMin)
	}
	if rec.SalaryMax == nil || *rec.SalaryMax != 90000.5 {
		t.Errorf("unexpected salary_max: %v", rec.SalaryMax)
	}
	if rec.EmploymentType == nil || *rec.EmploymentType != "FULL_TIME" {
		t.Errorf("unexpected employment type: %v", rec.EmploymentType)
	}
}
