package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/blogem/freelancer-oauth/services"
	"github.com/blogem/freelancer-oauth/userctx"
)

// APIController proxies authenticated calls to the Freelancer API
type APIController struct {
	services    *services.Services
	newProvider ProviderFactory
	client      *http.Client
}

// NewAPIController creates a new API controller
func NewAPIController(services *services.Services, newProvider ProviderFactory) *APIController {
	return &APIController{
		services:    services,
		newProvider: newProvider,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Self handles GET /api/self
// Forwards the signed-in user's stored token to the Freelancer users API and
// streams the response back. Demonstrates the dual-header authenticated
// request the API requires.
func (c *APIController) Self(w http.ResponseWriter, r *http.Request) {
	accountID := userctx.GetAccountID(r.Context())

	provider, err := c.newProvider()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := c.services.Account.RestoreToken(r.Context(), accountID, provider); err != nil {
		http.Error(w, "No stored token: "+err.Error(), http.StatusUnauthorized)
		return
	}

	req, err := provider.AuthenticatedRequest(r.Context(), http.MethodGet, provider.APIBaseURL()+"/users/0.1/self/", nil)
	if err != nil {
		http.Error(w, "Failed to build API request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := c.client.Do(req)
	if err != nil {
		http.Error(w, "API request failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}
