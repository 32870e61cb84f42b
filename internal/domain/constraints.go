package domain

// Storage constraint names. Both repository implementations report violations
// with the messages below so callers see the same text regardless of backend.
const (
	ConstraintUserEmail            = "users_email_key"
	ConstraintUserOrganization     = "users_organization_id_fkey"
	ConstraintJobOrganization      = "jobs_organization_id_fkey"
	ConstraintCandidateLinkedinID  = "candidates_linkedin_id_key"
	ConstraintApplicationUnique    = "applications_job_candidate_key"
	ConstraintApplicationJob       = "applications_job_id_fkey"
	ConstraintApplicationCandidate = "applications_candidate_id_fkey"
	ConstraintJobSalaryRange       = "jobs_salary_range_check"
	ConstraintApplicationAIScore   = "applications_ai_score_check"
)

var constraintMessages = map[string]string{
	ConstraintUserEmail:            "A user with this email already exists",
	ConstraintUserOrganization:     "Organization does not exist",
	ConstraintJobOrganization:      "Organization does not exist",
	ConstraintCandidateLinkedinID:  "A candidate with this LinkedIn ID already exists",
	ConstraintApplicationUnique:    "Candidate has already applied to this job",
	ConstraintApplicationJob:       "Job does not exist",
	ConstraintApplicationCandidate: "Candidate does not exist",
	ConstraintJobSalaryRange:       "Minimum salary must not exceed maximum salary",
	ConstraintApplicationAIScore:   "AI score must be between 0 and 100",
}

func ConstraintMessage(name string) string {
	if msg, ok := constraintMessages[name]; ok {
		return msg
	}
	return "Constraint violation"
}
