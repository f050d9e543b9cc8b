package schema

// FeedFieldMapping maps raw feed field spellings to canonical field names.
// Many raw spellings map to one canonical name; supporting a new feed means
// extending this table, not changing pipeline logic.
var FeedFieldMapping = map[string]string{
	// Company name
	"company":             "company_name",
	"company_name":        "company_name",
	"companyName":         "company_name",
	"hiring_organization": "company_name",
	"hiringOrganization":  "company_name",
	"employer":            "company_name",

	// Description
	"body":             "description",
	"description":      "description",
	"jobDescription":   "description",
	"job_description":  "description",
	"full_description": "description",
	"details":          "description",
	"job_details":      "description",

	// Posting date
	"posted":           "posted_at",
	"date":             "posted_at",
	"posted_at":        "posted_at",
	"datePosted":       "posted_at",
	"date_posted":      "posted_at",
	"publication_date": "posted_at",
	"post_date":        "posted_at",

	// Application URL
	"url":              "application_url",
	"job_url":          "application_url",
	"applyLink":        "application_url",
	"application_link": "application_url",
	"apply_url":        "application_url",
	"link":             "application_url",

	// Job title
	"title":          "title",
	"jobTitle":       "title",
	"job_title":      "title",
	"position_title": "title",
	"position":       "title",
	"role":           "title",

	// Location
	"location":      "locations",
	"jobLocations":  "locations",
	"job_location":  "locations",
	"address":       "locations",
	"work_location": "locations",
	"city_state":    "locations",
	"city":          "locations",
	"state":         "locations",
	"country":       "locations",

	// Employment type
	"job-type":       "employment_type",
	"job_type":       "employment_type",
	"jobType":        "employment_type",
	"type":           "employment_type",
	"position_type":  "employment_type",
	"contract_type":  "employment_type",
	"employmentType": "employment_type",

	// External ID
	"id":              "external_job_id",
	"referencenumber": "external_job_id",
	"ref_id":          "external_job_id",
	"jobID":           "external_job_id",
	"job_id":          "external_job_id",
	"reference_id":    "external_job_id",
	"requisition_id":  "external_job_id",
	"job_reference":   "external_job_id",

	// Remote flag
	"remote":    "is_remote",
	"is_remote": "is_remote",
	"isRemote":  "is_remote",

	// Salary
	"salary_min":       "salary_min",
	"min_salary":       "salary_min",
	"minimum_salary":   "salary_min",
	"salary_from":      "salary_min",
	"salary_max":       "salary_max",
	"max_salary":       "salary_max",
	"maximum_salary":   "salary_max",
	"salary_to":        "salary_max",
	"salary_period":    "salary_period",
	"salary_frequency": "salary_period",
	"pay_period":       "salary_period",
	"currency":         "currency",
	"salary_currency":  "currency",
}
