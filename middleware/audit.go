package middleware

import (
	"log"
	"net/http"
	"strings"

	"gitea.com/go-chi/session"
	"github.com/blogem/freelancer-oauth/models"
	"github.com/blogem/freelancer-oauth/repositories"
)

// auditActions maps auth endpoints to the event recorded when they succeed
var auditActions = map[string]string{
	"/callback": models.AuthEventLogin,
	"/refresh":  models.AuthEventRefresh,
	"/logout":   models.AuthEventLogout,
}

// AuditLogger middleware records completed authentication requests
func AuditLogger(auditRepo repositories.AuditRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action, audited := auditActions[r.URL.Path]
			if !audited {
				next.ServeHTTP(w, r)
				return
			}

			// The logout handler clears the session, so capture the email
			// before running it
			emailBefore := sessionEmail(r)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= http.StatusBadRequest {
				return
			}

			email := sessionEmail(r)
			if email == "" {
				email = emailBefore
			}

			entry := &models.AuthEvent{
				UserEmail: email,
				Action:    action,
				UserAgent: r.UserAgent(),
				IPAddress: getIPAddress(r),
			}

			// Log asynchronously to avoid blocking the request
			go func() {
				if err := auditRepo.Create(entry); err != nil {
					log.Printf("Failed to create auth event: %v", err)
				}
			}()
		})
	}
}

// statusRecorder captures the response status for the audit decision
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// sessionEmail reads the signed-in email from the session, if any
func sessionEmail(r *http.Request) string {
	sess := session.GetSession(r)
	if sess == nil {
		return ""
	}
	email, _ := sess.Get("user_email").(string)
	return email
}

// getIPAddress extracts IP address from request, checking X-Forwarded-For first
func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Take first IP if multiple
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
