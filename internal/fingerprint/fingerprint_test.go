package fingerprint

import (
	"testing"

	"github.com/openroles/jobfeed/internal/domain"
)

func baseJob() domain.Job {
	return domain.Job{
		"company_name":    "Acme Corp",
		"title":           "Backend Engineer",
		"description":     "Design and build services.",
		"employment_type": "FULL_TIME",
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint(baseJob())
	b := Fingerprint(baseJob())
	if a != b {
		t.Errorf("same job produced different fingerprints: %q vs %q", a, b)
	}
	if a == "" {
		t.Error("empty fingerprint")
	}
}

func TestFingerprint_IgnoresOtherFields(t *testing.T) {
	plain := Fingerprint(baseJob())

	decorated := baseJob()
	decorated["external_job_id"] = "J-9999"
	decorated["locations"] = []interface{}{map[string]interface{}{"location": "Berlin"}}
	decorated["application_url"] = "https://example.com/apply"
	decorated["posted_at"] = "2026-01-15T10:00:00Z"
	decorated["salary_min"] = 90000

	if got := Fingerprint(decorated); got != plain {
		t.Errorf("fields outside the identity set changed the fingerprint: %q vs %q", got, plain)
	}
}

func TestFingerprint_SensitiveToIdentityFields(t *testing.T) {
	plain := Fingerprint(baseJob())

	for _, field := range []string{"company_name", "title", "description", "employment_type"} {
		job := baseJob()
		job[field] = "something else"
		if got := Fingerprint(job); got == plain {
			t.Errorf("changing %s did not change the fingerprint", field)
		}
	}
}

func TestFingerprint_KnownVectors(t *testing.T) {
	// Digests of the canonical serialization (sorted keys, compact
	// separators, \uXXXX escapes for runes above 0x7F), precomputed
	// independently. Any producer of the canonical form must match these
	// byte for byte, or stores written by other systems stop deduplicating.
	tests := []struct {
		name     string
		job      domain.Job
		expected string
	}{
		{
			name: "ascii",
			job: domain.Job{
				"company_name":    "Acme Corp",
				"title":           "Backend Engineer",
				"description":     "Design and build services.",
				"employment_type": "FULL_TIME",
			},
			expected: "of2dT8forNeD5mx8JVj7LXDSD9MGIo1dR4ncyTOX1s4=",
		},
		{
			name: "accented latin",
			job: domain.Job{
				"company_name": "Müller GmbH",
				"title":        "Ingénieur Logiciel",
				"description":  "Zürich based.",
			},
			expected: "MhnN0sJX1W/S9nvExqdSFDOGcZvq73bQUd7/FTWkVOA=",
		},
		{
			name: "astral plane rune",
			job: domain.Job{
				"company_name": "Rocket 🚀 Labs",
				"title":        "Engineer",
			},
			expected: "/nZs6tlnp6xAe1XrsItT97W2a+Ux0UttGL0AZF6/3Sc=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fingerprint(tt.job); got != tt.expected {
				t.Errorf("Fingerprint() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFingerprint_MissingFieldsAsNull(t *testing.T) {
	// Absent and explicitly-null identity fields hash identically.
	partial := domain.Job{
		"company_name": "Acme Corp",
		"title":        "Backend Engineer",
	}
	explicit := domain.Job{
		"company_name":    "Acme Corp",
		"title":           "Backend Engineer",
		"description":     nil,
		"employment_type": nil,
	}
	if Fingerprint(partial) != Fingerprint(explicit) {
		t.Error("absent and null identity fields hashed differently")
	}

	// Non-string values are treated as null, not coerced.
	numeric := domain.Job{
		"company_name": "Acme Corp",
		"title":        "Backend Engineer",
		"description":  12345,
	}
	if Fingerprint(numeric) != Fingerprint(partial) {
		t.Error("non-string identity value not treated as null")
	}
}
