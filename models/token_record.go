package models

import "time"

// TokenRecord is a stored OAuth token belonging to an account. The adapter
// itself never persists tokens; the application stores them here so a
// session can be restored without a fresh authorization round trip.
type TokenRecord struct {
	ID           int       `json:"id" db:"id"`
	AccountID    int       `json:"account_id" db:"account_id"`
	AccessToken  string    `json:"access_token" db:"access_token"`
	RefreshToken string    `json:"refresh_token" db:"refresh_token"`
	Expires      int64     `json:"expires" db:"expires"`
	Scope        string    `json:"scope" db:"scope"`
	TokenType    string    `json:"token_type" db:"token_type"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Validate validates the token record
func (t *TokenRecord) Validate() []string {
	var errors []string

	if t.AccountID <= 0 {
		errors = append(errors, "Account ID is required")
	}

	if t.AccessToken == "" {
		errors = append(errors, "Access token is required")
	}

	return errors
}

// Expired reports whether the stored token's expiry has passed. Records
// without an expiry never report as expired.
func (t *TokenRecord) Expired() bool {
	return t.Expires > 0 && time.Now().Unix() >= t.Expires
}

// TokenFields renders the record as the field map the provider adapter
// accepts for restoring a token
func (t *TokenRecord) TokenFields() map[string]interface{} {
	fields := map[string]interface{}{
		"access_token": t.AccessToken,
	}
	if t.RefreshToken != "" {
		fields["refresh_token"] = t.RefreshToken
	}
	if t.Expires > 0 {
		fields["expires"] = t.Expires
	}
	if t.Scope != "" {
		fields["scope"] = t.Scope
	}
	if t.TokenType != "" {
		fields["token_type"] = t.TokenType
	}
	return fields
}
