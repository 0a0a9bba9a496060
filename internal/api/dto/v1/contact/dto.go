package contact

import "time"

// SubmissionRequest represents a contact form submission. The validate tags
// are the single schema definition for the form; fields without one are
// optional.
type SubmissionRequest struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"email"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service" validate:"min=1"`
	Message string `json:"message" validate:"min=10"`
}

// SubmissionResult represents the response after submitting a contact form
type SubmissionResult struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Submission is an accepted request as written to the submission journal
type Submission struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	PhoneE164 string    `json:"phone_e164,omitempty"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
}

// FieldRule describes one form field for clients that render the form
type FieldRule struct {
	Field     string            `json:"field"`
	Required  bool              `json:"required"`
	MinLength int               `json:"min_length,omitempty"`
	Format    string            `json:"format,omitempty"`
	Messages  map[string]string `json:"messages,omitempty"`
}

// Schema is the published description of the contact form
type Schema struct {
	Locale string      `json:"locale"`
	Fields []FieldRule `json:"fields"`
}
