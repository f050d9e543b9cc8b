package feed

// recordKeys are the fields whose presence marks a map as a job record.
var recordKeys = []string{"title", "company", "company_name", "external_job_id", "id"}

// extractor is one strategy for pulling candidate job objects out of a
// decoded feed document.
type extractor func(doc map[string]interface{}) []map[string]interface{}

// extractors are tried in order; the first strategy yielding candidates wins.
var extractors = []extractor{extractJobsWrapper, extractSelfRecord, extractNestedValues}

// ExtractCandidates flattens a decoded feed document into candidate raw job
// objects. Top-level lists are iterated directly; maps are probed with the
// ordered strategy list: a jobs/job wrapper, the document itself as a single
// record, then each nested value.
func ExtractCandidates(doc interface{}) []map[string]interface{} {
	switch d := doc.(type) {
	case []interface{}:
		return mapsOf(d)
	case map[string]interface{}:
		for _, extract := range extractors {
			if candidates := extract(d); len(candidates) > 0 {
				return candidates
			}
		}
	}
	return nil
}

// extractJobsWrapper handles nested feed shapes like {"jobs": {"job": [...]}}.
func extractJobsWrapper(doc map[string]interface{}) []map[string]interface{} {
	wrapper, ok := doc["jobs"].(map[string]interface{})
	if !ok {
		return nil
	}
	switch inner := wrapper["job"].(type) {
	case []interface{}:
		return mapsOf(inner)
	case map[string]interface{}:
		return []map[string]interface{}{inner}
	}
	return nil
}

// extractSelfRecord treats the document itself as a single job record when it
// carries any job-identifying key.
func extractSelfRecord(doc map[string]interface{}) []map[string]interface{} {
	for _, key := range recordKeys {
		if _, ok := doc[key]; ok {
			return []map[string]interface{}{doc}
		}
	}
	return nil
}

// extractNestedValues flattens each top-level value: lists are expanded,
// standalone nested objects become individual records.
func extractNestedValues(doc map[string]interface{}) []map[string]interface{} {
	var out []map[string]interface{}
	for _, value := range doc {
		switch v := value.(type) {
		case []interface{}:
			out = append(out, mapsOf(v)...)
		case map[string]interface{}:
			out = append(out, v)
		}
	}
	return out
}

func mapsOf(items []interface{}) []map[string]interface{} {
	var out []map[string]interface{}
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}
