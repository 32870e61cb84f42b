package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-friendly labels
var FieldLabels = map[string]string{
	// Organization fields
	"name":     "Name",
	"domain":   "Domain",
	"plan":     "Plan",
	"industry": "Industry",
	"size":     "Company size",

	// User fields
	"email":             "Email",
	"password":          "Password",
	"full_name":         "Full name",
	"role":              "Role",
	"organization_id":   "Organization",
	"organization_name": "Organization name",

	// Job fields
	"title":            "Title",
	"description":      "Description",
	"requirements":     "Requirements",
	"location":         "Location",
	"job_type":         "Job type",
	"experience_level": "Experience level",
	"salary_min":       "Minimum salary",
	"salary_max":       "Maximum salary",
	"status":           "Status",

	// Candidate fields
	"phone":            "Phone number",
	"linkedin_url":     "LinkedIn URL",
	"linkedin_id":      "LinkedIn ID",
	"resume_url":       "Resume URL",
	"skills":           "Skills",
	"experience_years": "Years of experience",
	"source":           "Source",

	// Application fields
	"job_id":       "Job",
	"candidate_id": "Candidate",
	"ai_score":     "AI score",
	"notes":        "Notes",

	"version": "Version",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: must contain at least %s items", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "email":
		return fmt.Sprintf("%s: invalid email format", label)

	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)

	case "valid_name":
		return fmt.Sprintf("%s: only letters, spaces and common punctuation (. ' - /) are allowed", label)

	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field. Slice elements
// such as skills[0] use the label of their slice.
func getFieldLabel(fieldName string) string {
	base := fieldName
	if i := strings.IndexByte(base, '['); i > 0 {
		base = base[:i]
	}
	if label, ok := FieldLabels[base]; ok {
		if base != fieldName {
			return label + fieldName[len(base):]
		}
		return label
	}
	return strings.ReplaceAll(fieldName, "_", " ")
}
