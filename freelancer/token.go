package freelancer

import (
	"encoding/json"
	"time"

	"golang.org/x/oauth2"
)

// Token is an access token issued by the Freelancer identity service. The
// adapter holds at most one Token at a time; durable storage is the caller's
// responsibility.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expires      int64 // unix seconds, zero when the server gave no expiry
	Scope        string
	TokenType    string
}

// Expired reports whether the token's expiry has passed. Tokens without an
// expiry never report as expired. The adapter does not act on this itself;
// the caller decides when to refresh.
func (t *Token) Expired() bool {
	return t.Expires > 0 && time.Now().Unix() >= t.Expires
}

// OAuth2Token bridges to the x/oauth2 token type so callers can plug the
// token into oauth2.NewClient or a TokenSource.
func (t *Token) OAuth2Token() *oauth2.Token {
	ot := &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
	}
	if t.Expires > 0 {
		ot.Expiry = time.Unix(t.Expires, 0)
	}
	return ot
}

// newTokenFromResponse builds a Token from a decoded token-endpoint response.
// The relative expires_in field is converted to an absolute unix timestamp.
func newTokenFromResponse(raw map[string]interface{}) (*Token, error) {
	accessToken, ok := raw["access_token"].(string)
	if !ok || accessToken == "" {
		return nil, newError(ErrConfig, "token response has no access_token")
	}

	token := &Token{AccessToken: accessToken}
	if refresh, ok := raw["refresh_token"].(string); ok {
		token.RefreshToken = refresh
	}
	if scope, ok := raw["scope"].(string); ok {
		token.Scope = scope
	}
	if tokenType, ok := raw["token_type"].(string); ok {
		token.TokenType = tokenType
	}
	if expiresIn, ok := asInt64(raw["expires_in"]); ok {
		token.Expires = time.Now().Unix() + expiresIn
	}
	return token, nil
}

// newTokenFromMap builds a Token from caller-supplied fields, e.g. restored
// from storage. Fields are copied verbatim; expires is treated as absolute.
func newTokenFromMap(fields map[string]interface{}) (*Token, error) {
	accessToken, ok := fields["access_token"].(string)
	if !ok || accessToken == "" {
		return nil, newError(ErrConfig, "token fields must include a non-empty access_token")
	}

	token := &Token{AccessToken: accessToken}

	if v, present := fields["refresh_token"]; present {
		refresh, ok := v.(string)
		if !ok {
			return nil, newError(ErrConfig, "refresh_token must be a string")
		}
		token.RefreshToken = refresh
	}
	if v, present := fields["expires"]; present {
		expires, ok := asInt64(v)
		if !ok {
			return nil, newError(ErrConfig, "expires must be numeric")
		}
		token.Expires = expires
	}
	if v, present := fields["scope"]; present {
		scope, ok := v.(string)
		if !ok {
			return nil, newError(ErrConfig, "scope must be a string")
		}
		token.Scope = scope
	}
	if v, present := fields["token_type"]; present {
		tokenType, ok := v.(string)
		if !ok {
			return nil, newError(ErrConfig, "token_type must be a string")
		}
		token.TokenType = tokenType
	}
	return token, nil
}

// asInt64 converts the numeric types a decoded JSON body or a caller may
// supply for expiry fields
func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
