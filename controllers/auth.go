package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/blogem/freelancer-oauth/services"
	"github.com/blogem/freelancer-oauth/userctx"
)

// AuthController handles the OAuth sign-in flow
type AuthController struct {
	services    *services.Services
	newProvider ProviderFactory
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services, newProvider ProviderFactory) *AuthController {
	return &AuthController{
		services:    services,
		newProvider: newProvider,
	}
}

// Login initiates the authentication process
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	provider, err := ac.newProvider()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Generate random state
	state, err := generateRandomState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	sess.Set("state", state)

	// Redirect to the Freelancer authorization page
	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the redirect back from Freelancer
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	// Get session
	sess := session.GetSession(r)

	// Verify state
	storedState := sess.Get("state")
	if storedState == nil {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("state") != storedState.(string) {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	provider, err := ac.newProvider()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Exchange the code for a token
	token, err := provider.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "Failed to exchange authorization code for a token: "+err.Error(), http.StatusUnauthorized)
		return
	}

	// Fetch the resource owner's profile
	owner, err := provider.ResourceOwner(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Upsert the local account and store the token
	account, err := ac.services.Account.SignIn(r.Context(), owner, token, provider.Sandbox())
	if err != nil {
		http.Error(w, "Failed to sign in: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Store the user session
	sess.Set("account_id", account.ID)
	sess.Set("user_email", account.Email)

	// Clear the state from session
	sess.Delete("state")

	// Redirect to the intended destination, or the dashboard
	target := "/"
	if redirect, ok := sess.Get("redirect_after_login").(string); ok && redirect != "" {
		target = redirect
		sess.Delete("redirect_after_login")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Refresh obtains a fresh access token from the stored refresh token
func (ac *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	accountID := userctx.GetAccountID(r.Context())

	provider, err := ac.newProvider()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	record, err := ac.services.Account.RestoreToken(r.Context(), accountID, provider)
	if err != nil {
		http.Error(w, "No stored token: "+err.Error(), http.StatusBadRequest)
		return
	}
	if record.RefreshToken == "" {
		http.Error(w, "Stored token has no refresh token", http.StatusBadRequest)
		return
	}

	token, err := provider.Refresh(r.Context(), record.RefreshToken)
	if err != nil {
		http.Error(w, "Failed to refresh token: "+err.Error(), http.StatusBadGateway)
		return
	}

	if err := ac.services.Account.SaveToken(r.Context(), accountID, token); err != nil {
		http.Error(w, "Failed to store refreshed token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	sess.Delete("account_id")
	sess.Delete("user_email")

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
