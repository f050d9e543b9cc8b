package service

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

var errNoJSONObject = errors.New("response contains no JSON object")

// ParseProviderJSON extracts a JSON object from provider response text.
// Providers are asked for bare JSON but frequently answer with markdown
// fences or surrounding prose; three strategies are tried in order:
// direct parse, a ```json code fence, then the outermost braces.
func ParseProviderJSON(text string) (map[string]interface{}, error) {
	var direct map[string]interface{}
	if err := json.Unmarshal([]byte(text), &direct); err == nil {
		return direct, nil
	}

	if fenced, ok := extractFence(text); ok {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(fenced), &parsed); err == nil {
			return parsed, nil
		}
	}

	if match := jsonObjectPattern.FindString(text); match != "" {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(match), &parsed); err == nil {
			return parsed, nil
		}
	}

	return nil, errNoJSONObject
}

// extractFence pulls the body of a ```json fenced block.
func extractFence(text string) (string, bool) {
	start := strings.Index(text, "```json")
	if start == -1 {
		return "", false
	}
	body := text[start+len("```json"):]
	end := strings.Index(body, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(body[:end]), true
}
