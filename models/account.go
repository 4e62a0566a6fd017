package models

import (
	"strings"
	"time"
)

// Account represents a local user linked to a Freelancer identity. Accounts
// are keyed by the email the identity service reports as the resource
// owner's identifier.
type Account struct {
	ID          int       `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Username    string    `json:"username" db:"username"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Sandbox     bool      `json:"sandbox" db:"sandbox"`
	DateAdded   time.Time `json:"date_added" db:"date_added"`
	LastLogin   time.Time `json:"last_login" db:"last_login"`
}

// Validate validates the account data
func (a *Account) Validate() []string {
	var errors []string

	if a.Email == "" {
		errors = append(errors, "Email is required")
	}

	if a.Email != "" && !isValidEmail(a.Email) {
		errors = append(errors, "Email must be a valid email address")
	}

	if len(a.Email) > 255 {
		errors = append(errors, "Email must be less than 255 characters")
	}

	if len(a.DisplayName) > 100 {
		errors = append(errors, "Display name must be less than 100 characters")
	}

	return errors
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
