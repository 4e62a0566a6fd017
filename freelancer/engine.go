package freelancer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Engine abstracts the generic OAuth2 client machinery the provider delegates
// protocol work to. The default implementation wraps an oauth2.Config and an
// http.Client; tests substitute their own.
type Engine interface {
	// AuthCodeURL builds the authorization redirect URL, including any
	// extra vendor parameters.
	AuthCodeURL(state string, params ...oauth2.AuthCodeOption) string

	// ExchangeToken posts the grant form to the token endpoint and returns
	// the decoded response body. The raw body is needed because the token
	// endpoint reports errors in the vendor's own shape rather than the
	// standard OAuth2 error fields.
	ExchangeToken(ctx context.Context, form url.Values) (map[string]interface{}, error)

	// FetchJSON sends the request and decodes the JSON response body.
	FetchJSON(ctx context.Context, req *http.Request) (map[string]interface{}, error)
}

// clientEngine is the default Engine backed by x/oauth2 and net/http
type clientEngine struct {
	conf *oauth2.Config
	http *http.Client
}

func newClientEngine(conf *oauth2.Config) *clientEngine {
	return &clientEngine{
		conf: conf,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthCodeURL delegates to oauth2.Config, which joins scopes with a space
func (e *clientEngine) AuthCodeURL(state string, params ...oauth2.AuthCodeOption) string {
	return e.conf.AuthCodeURL(state, params...)
}

// ExchangeToken exchanges grant parameters for a raw token response
func (e *clientEngine) ExchangeToken(ctx context.Context, form url.Values) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.conf.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return e.do(req)
}

// FetchJSON sends the request and decodes the response body
func (e *clientEngine) FetchJSON(ctx context.Context, req *http.Request) (map[string]interface{}, error) {
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")

	return e.do(req)
}

func (e *clientEngine) do(req *http.Request) (map[string]interface{}, error) {
	resp, err := e.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status %d with non-JSON body", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return raw, nil
}
