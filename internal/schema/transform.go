package schema

import (
	"strings"

	"github.com/openroles/jobfeed/internal/domain"
)

// truthyTokens are the string spellings coerced to true for boolean fields.
var truthyTokens = map[string]bool{"true": true, "1": true, "yes": true}

// Transform maps an arbitrarily-shaped raw feed record into a canonical job
// using the given field mapping. Only keys that map into the target schema
// survive; values are coerced per the target field's type. Malformed values
// pass through unconverted and surface later as validation errors. Transform
// never fails.
func Transform(raw map[string]interface{}, mapping map[string]string) domain.Job {
	out := make(domain.Job)

	for rawKey, rawValue := range raw {
		targetKey, ok := mapping[rawKey]
		if !ok {
			targetKey = rawKey
		}
		if _, ok := Lookup(targetKey); !ok {
			continue
		}

		// Present-but-null values are preserved as explicit nulls.
		if rawValue == nil {
			out[targetKey] = nil
			continue
		}

		switch targetKey {
		case "is_remote", "is_multi_location", "is_international":
			out[targetKey] = coerceBool(rawValue)
		case "salary_min", "salary_max":
			out[targetKey] = coerceSalary(rawValue)
		case "locations":
			out[targetKey] = coerceLocations(rawValue)
		default:
			out[targetKey] = rawValue
		}
	}

	return out
}

func coerceBool(v interface{}) bool {
	if s, ok := v.(string); ok {
		return truthyTokens[strings.ToLower(s)]
	}
	return truthy(v)
}

// truthy applies generic truthiness to non-string values.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	case nil:
		return false
	default:
		return true
	}
}

// coerceSalary parses digit strings into ints and passes numerics through.
// Anything else is left as-is for the validator to reject.
func coerceSalary(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		if n, ok := parseDigits(t); ok {
			return n
		}
		return v
	case int, int64, float64, float32:
		return v
	default:
		return v
	}
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// coerceLocations wraps a bare location string into a single-element list of
// location records; lists pass through unchanged.
func coerceLocations(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return []interface{}{map[string]interface{}{"location": strings.TrimSpace(t)}}
	case []interface{}:
		return t
	default:
		return v
	}
}
