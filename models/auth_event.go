package models

import "time"

// Auth event actions recorded in the audit trail
const (
	AuthEventLogin   = "login"
	AuthEventRefresh = "refresh"
	AuthEventLogout  = "logout"
)

// AuthEvent represents a single authentication event for the audit trail
type AuthEvent struct {
	ID        int64     `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	UserEmail string    `json:"user_email" db:"user_email"`
	Action    string    `json:"action" db:"action"`
	UserAgent string    `json:"user_agent" db:"user_agent"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
}
