// Package freelancer implements an OAuth 2.0 provider adapter for the
// Freelancer identity service. The adapter configures a generic OAuth2
// engine with Freelancer's endpoints and dialect: the non-standard prompt
// and advanced_scopes authorization parameters, the legacy
// Freelancer-OAuth-V1 request header, and the vendor's message/error_code
// error shape.
//
// A Provider is not safe for concurrent mutation; callers must serialize
// token operations per instance or use one instance per flow.
package freelancer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// Supported grant types for GetAccessToken
const (
	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
	GrantClientCredentials = "client_credentials"
)

const (
	productionBaseURL = "https://accounts.freelancer.com"
	productionAPIURL  = "https://api.freelancer.com/api"
	sandboxBaseURL    = "https://accounts.freelancer-sandbox.com"
	sandboxAPIURL     = "https://www.freelancer-sandbox.com/api"

	authorizePath     = "/oauth/authorise"
	tokenPath         = "/oauth/token"
	resourceOwnerPath = "/oauth/me"

	// legacy header the API requires alongside the standard Bearer header
	oauthV1Header = "Freelancer-OAuth-V1"
)

// Config holds Freelancer OAuth provider configuration
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Scopes defaults to ["basic"] when nil
	Scopes []string

	// Prompt lists the interactive steps the authorization server is asked
	// to force, defaulting to ["select_account", "consent"] when nil
	Prompt []string

	// AdvancedScopes lists elevated permissions as symbolic names
	// (e.g. "fln:project_create") or numeric strings
	AdvancedScopes []string

	// Sandbox selects the sandbox environment for every endpoint
	Sandbox bool
}

// Provider is the Freelancer identity provider adapter. It holds at most one
// access token at a time; durable token storage is the caller's concern.
type Provider struct {
	sandbox        bool
	baseURL        string
	apiBaseURL     string
	prompt         []string
	advancedScopes []int

	engine Engine
	conf   *oauth2.Config

	token *Token
	raw   map[string]interface{}
}

// New creates a Freelancer provider from the given configuration. Symbolic
// advanced scopes are resolved to numeric codes here; an unknown name fails
// before any network activity.
func New(cfg Config) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, newError(ErrConfig, "client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, newError(ErrConfig, "client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, newError(ErrConfig, "redirect URL is required")
	}

	scopes := cfg.Scopes
	if scopes == nil {
		scopes = []string{"basic"}
	}
	prompt := cfg.Prompt
	if prompt == nil {
		prompt = []string{"select_account", "consent"}
	}

	advancedScopes, err := resolveAdvancedScopes(cfg.AdvancedScopes)
	if err != nil {
		return nil, err
	}

	baseURL, apiBaseURL := productionBaseURL, productionAPIURL
	if cfg.Sandbox {
		baseURL, apiBaseURL = sandboxBaseURL, sandboxAPIURL
	}

	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  baseURL + authorizePath,
			TokenURL: baseURL + tokenPath,
		},
	}

	return &Provider{
		sandbox:        cfg.Sandbox,
		baseURL:        baseURL,
		apiBaseURL:     apiBaseURL,
		prompt:         prompt,
		advancedScopes: advancedScopes,
		engine:         newClientEngine(conf),
		conf:           conf,
	}, nil
}

// AuthCodeURL returns the authorization redirect URL for the given state.
// The prompt and advanced_scopes parameters are always present, space-joined,
// even when empty.
func (p *Provider) AuthCodeURL(state string) string {
	return p.engine.AuthCodeURL(state,
		oauth2.SetAuthURLParam("prompt", strings.Join(p.prompt, " ")),
		oauth2.SetAuthURLParam("advanced_scopes", joinScopeCodes(p.advancedScopes)),
	)
}

// GetAccessToken requests a token for the given grant type. Options carry the
// grant-specific parameters: "code" for authorization_code, "refresh_token"
// for refresh_token. On success the provider holds the new token and the raw
// response; on failure the held token is cleared.
func (p *Provider) GetAccessToken(ctx context.Context, grantType string, options map[string]string) (*Token, error) {
	form, err := p.grantForm(grantType, options)
	if err != nil {
		return nil, err
	}

	raw, err := p.engine.ExchangeToken(ctx, form)
	if err != nil {
		p.clearToken()
		return nil, p.translate(err, "token exchange failed")
	}

	if err := checkResponse(raw); err != nil {
		p.clearToken()
		return nil, err
	}

	token, err := newTokenFromResponse(raw)
	if err != nil {
		p.clearToken()
		return nil, err
	}

	p.token = token
	p.raw = raw
	return token, nil
}

// Exchange trades an authorization code for an access token
func (p *Provider) Exchange(ctx context.Context, code string) (*Token, error) {
	return p.GetAccessToken(ctx, GrantAuthorizationCode, map[string]string{"code": code})
}

// Refresh obtains a new access token from a refresh token
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	return p.GetAccessToken(ctx, GrantRefreshToken, map[string]string{"refresh_token": refreshToken})
}

// SetTokenFromMap replaces the held token with one built from the given
// fields (access_token, refresh_token, expires, scope, token_type), e.g.
// restored from storage. No network call is made; fields are copied verbatim.
func (p *Provider) SetTokenFromMap(fields map[string]interface{}) error {
	token, err := newTokenFromMap(fields)
	if err != nil {
		return err
	}
	p.token = token
	p.raw = nil
	return nil
}

// SetToken replaces the held token directly
func (p *Provider) SetToken(token *Token) {
	p.token = token
	p.raw = nil
}

// Token returns the currently held access token, or nil
func (p *Provider) Token() *Token {
	return p.token
}

// RawResponse returns the raw body of the last successful token exchange
func (p *Provider) RawResponse() map[string]interface{} {
	return p.raw
}

// APIBaseURL returns the base URL for authenticated API calls, matching the
// environment selected at construction
func (p *Provider) APIBaseURL() string {
	return p.apiBaseURL
}

// BaseURL returns the identity service base URL for the selected environment
func (p *Provider) BaseURL() string {
	return p.baseURL
}

// Sandbox reports whether the provider targets the sandbox environment
func (p *Provider) Sandbox() bool {
	return p.sandbox
}

// AuthenticatedRequest builds an HTTP request carrying both the standard
// Bearer header and the legacy Freelancer-OAuth-V1 header the API still
// requires. The request is not sent. Fails when no token is set.
func (p *Provider) AuthenticatedRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	if p.token == nil {
		return nil, newError(ErrNoToken, "no access token set")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, wrapError(ErrConfig, fmt.Sprintf("cannot build %s request for %s", method, url), err)
	}

	req.Header.Set("Authorization", "Bearer "+p.token.AccessToken)
	req.Header.Set(oauthV1Header, p.token.AccessToken)
	return req, nil
}

// ResourceOwner fetches the authenticated user's profile from /oauth/me. The
// email field is the resource owner's identifier.
func (p *Provider) ResourceOwner(ctx context.Context) (*ResourceOwner, error) {
	req, err := p.AuthenticatedRequest(ctx, http.MethodGet, p.baseURL+resourceOwnerPath, nil)
	if err != nil {
		return nil, err
	}

	raw, err := p.engine.FetchJSON(ctx, req)
	if err != nil {
		return nil, p.translate(err, "resource owner fetch failed")
	}

	if err := checkResponse(raw); err != nil {
		return nil, err
	}

	return NewResourceOwner(raw), nil
}

// grantForm builds the token-exchange form for the given grant type
func (p *Provider) grantForm(grantType string, options map[string]string) (url.Values, error) {
	form := url.Values{}
	form.Set("grant_type", grantType)
	form.Set("client_id", p.conf.ClientID)
	form.Set("client_secret", p.conf.ClientSecret)
	form.Set("redirect_uri", p.conf.RedirectURL)

	switch grantType {
	case GrantAuthorizationCode:
		code := options["code"]
		if code == "" {
			return nil, newError(ErrConfig, "authorization_code grant requires a code option")
		}
		form.Set("code", code)
	case GrantRefreshToken:
		refreshToken := options["refresh_token"]
		if refreshToken == "" {
			return nil, newError(ErrConfig, "refresh_token grant requires a refresh_token option")
		}
		form.Set("refresh_token", refreshToken)
	case GrantClientCredentials:
		// no extra parameters
	default:
		return nil, newError(ErrInvalidGrant, fmt.Sprintf("unsupported grant type %q", grantType))
	}

	return form, nil
}

// translate collapses engine and transport failures into the adapter's error
// type; an *Error raised inside the engine passes through unchanged
func (p *Provider) translate(err error, message string) error {
	var adapterErr *Error
	if errors.As(err, &adapterErr) {
		return adapterErr
	}
	return wrapError(ErrUnknown, message, err)
}

// clearToken drops the held token and raw response after a failed exchange
func (p *Provider) clearToken() {
	p.token = nil
	p.raw = nil
}
