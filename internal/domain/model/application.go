package model

import (
	"strings"
	"time"
)

// ApplicationStatus is the review state of a partner application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is one partner agency's request to join the portal.
// Records are append-only; only the status field changes after insert.
type Application struct {
	ID           string            `json:"id"`
	CompanyName  string            `json:"company_name"`
	ContactEmail string            `json:"contact_email"`
	Message      string            `json:"message"`
	Status       ApplicationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Validate checks the fields a submitter controls.
func (a Application) Validate() error {
	if strings.TrimSpace(a.CompanyName) == "" {
		return &ValidationError{Field: "company_name", Message: "company name is required"}
	}
	if strings.TrimSpace(a.ContactEmail) == "" {
		return &ValidationError{Field: "contact_email", Message: "contact email is required"}
	}
	return nil
}

// ValidationError reports an invalid field on a domain model.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }
