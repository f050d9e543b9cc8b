// Package prompts holds the prompt templates sent to the enrichment provider.
package prompts

import (
	"fmt"

	"github.com/openroles/jobfeed/internal/domain"
)

// IndustryClassification renders the prompt asking the provider to classify a
// listing into sector / industry group / industry. The description is
// truncated so a single classification stays well inside the call timeout.
func IndustryClassification(job domain.Job) string {
	return fmt.Sprintf(`Analyze this job listing and return a JSON object with sector, industry_group, industry, and industry_id fields.

Job Title: %s
Company: %s
Description: %s...

Return format: {"sector": "Technology", "industry_group": "Software & IT Services", "industry": "Software", "industry_id": 501}
Return only valid JSON, no other text.`,
		job.String("title"),
		job.String("company_name"),
		Truncate(job.String("description"), 300),
	)
}

// JobAttributes renders the prompt asking the provider for the full
// ai_-prefixed attribute set plus a confidence score.
func JobAttributes(job domain.Job) string {
	industry := job.String("industry")
	if industry == "" {
		industry = "N/A"
	}
	return fmt.Sprintf(`Based on the following job data, generate a structured JSON object containing these fields:
- ai_title: Improved, standardized job title
- ai_description: Clean, professional job description (2-3 sentences)
- ai_job_tasks: Array of 3-5 key job responsibilities
- ai_search_terms: Array of relevant search keywords
- ai_top_tags: Array of 3-5 most important skills/technologies
- ai_job_function_id: Numeric ID representing job function (100-999)
- ai_skills: Array of specific skills required
- ai_confidence_score: Float between 0.0 and 1.0 indicating parsing confidence

Job Data:
- Title: %s
- Company: %s
- Description: %s...
- Industry: %s

Return only valid JSON format, no other text.`,
		job.String("title"),
		job.String("company_name"),
		Truncate(job.String("description"), 1000),
		industry,
	)
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
