package schema

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/openroles/jobfeed/internal/domain"
)

// datetimeLayouts are the ISO-8601 shapes accepted for datetime fields, tried
// in order after normalizing a trailing literal Z to +00:00.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidDatetime reports whether s is an ISO-8601 parseable datetime string.
// A trailing literal Z is treated as UTC offset +00:00.
func ValidDatetime(s string) bool {
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// Validate checks a canonical job against the target schema.
//
// Phase 1 (completeness) reports every missing required field and returns
// early, skipping type checks entirely. Phase 2 checks null/type/allowed
// values per field, and phase 3 applies the feed_id <-> job_source
// conditional rule. All applicable errors are collected and returned.
func Validate(job domain.Job) (bool, []string) {
	var errs []string

	for _, f := range TargetSchema {
		if f.Required {
			if _, present := job[f.Name]; !present {
				errs = append(errs, fmt.Sprintf("Missing required field: '%s'", f.Name))
			}
		}
	}
	if len(errs) > 0 {
		return false, errs
	}

	for _, f := range TargetSchema {
		value, present := job[f.Name]
		if !present {
			continue
		}

		if value == nil {
			if !f.Nullable {
				errs = append(errs, fmt.Sprintf("Field '%s' cannot be null.", f.Name))
			}
			continue
		}

		if f.Type == TypeDatetime {
			s, ok := value.(string)
			if !ok || !ValidDatetime(s) {
				errs = append(errs, fmt.Sprintf("Field '%s' is not a valid ISO datetime string. Got: %v", f.Name, value))
			}
			continue
		}

		if !matchesType(value, f.Type) {
			errs = append(errs, fmt.Sprintf("Field '%s' has incorrect type. Expected %s, got %T.", f.Name, f.Type, value))
		}

		if len(f.Allowed) > 0 && !allowedValue(value, f.Allowed) {
			errs = append(errs, fmt.Sprintf("Field '%s' has value '%v', but only %v are allowed.", f.Name, value, f.Allowed))
		}
	}

	// Conditional rule: feed-sourced jobs require a feed id, site-sourced
	// jobs must not have one.
	if job.String("job_source") == domain.SourceJobFeed && job["feed_id"] == nil {
		errs = append(errs, "Conditional error: 'feed_id' is required when 'job_source' is 'JOB_FEED'.")
	}
	if job.String("job_source") == domain.SourceCompanyWebsite && job["feed_id"] != nil {
		errs = append(errs, "Conditional error: 'feed_id' must be null when 'job_source' is 'COMPANY_WEBSITE'.")
	}

	return len(errs) == 0, errs
}

func matchesType(value interface{}, t FieldType) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeInt:
		switch n := value.(type) {
		case int, int64:
			return true
		case float64:
			// JSON decoding yields float64 for whole numbers.
			return n == math.Trunc(n)
		}
		return false
	case TypeNumber:
		switch value.(type) {
		case int, int64, float64, float32:
			return true
		}
		return false
	case TypeBool:
		_, ok := value.(bool)
		return ok
	case TypeList:
		switch value.(type) {
		case []interface{}, []map[string]interface{}, domain.LocationList:
			return true
		}
		return false
	default:
		return false
	}
}

func allowedValue(value interface{}, allowed []string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
