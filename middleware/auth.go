package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/blogem/freelancer-oauth/userctx"
)

// RequireAuth ensures the user has a signed-in session
// If not authenticated, redirects to /login and stores the intended destination
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		accountID, ok := sess.Get("account_id").(int)

		if !ok || accountID == 0 {
			// Store the intended destination for redirect after login
			sess.Set("redirect_after_login", r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		// Add account identity to request context for use in handlers
		ctx := userctx.SetAccountID(r.Context(), accountID)
		if email, ok := sess.Get("user_email").(string); ok {
			ctx = userctx.SetUserEmail(ctx, email)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
