package controllers

import (
	"fmt"
	"html"
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/blogem/freelancer-oauth/services"
)

// DashboardController handles the landing and profile pages
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

// Index handles GET /
// Shows the landing page for anonymous visitors and a profile summary for
// signed-in users.
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	accountID, signedIn := sess.Get("account_id").(int)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if !signedIn || accountID == 0 {
		fmt.Fprint(w, `<h1>Freelancer OAuth Demo</h1><p><a href="/login">Sign in with Freelancer</a></p>`)
		return
	}

	account, err := c.services.Account.GetAccount(r.Context(), accountID)
	if err != nil {
		http.Error(w, "Failed to load account: "+err.Error(), http.StatusInternalServerError)
		return
	}

	events, err := c.services.Account.RecentActivity(account.Email, 10)
	if err != nil {
		http.Error(w, "Failed to load activity: "+err.Error(), http.StatusInternalServerError)
		return
	}

	env := "production"
	if account.Sandbox {
		env = "sandbox"
	}

	fmt.Fprintf(w, "<h1>Welcome, %s</h1>", html.EscapeString(account.DisplayName))
	fmt.Fprintf(w, "<p>Email: %s (%s)</p>", html.EscapeString(account.Email), env)
	fmt.Fprint(w, `<p><a href="/api/self">Raw profile</a> | <form method="post" action="/refresh" style="display:inline"><button>Refresh token</button></form> | <a href="/logout">Logout</a></p>`)

	fmt.Fprint(w, "<h2>Recent activity</h2><ul>")
	for _, event := range events {
		fmt.Fprintf(w, "<li>%s — %s from %s</li>",
			event.Timestamp.Format("2006-01-02 15:04"),
			html.EscapeString(event.Action),
			html.EscapeString(event.IPAddress),
		)
	}
	fmt.Fprint(w, "</ul>")
}
