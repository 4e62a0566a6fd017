package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gitea.com/go-chi/session"
	"github.com/blogem/freelancer-oauth/controllers"
	"github.com/blogem/freelancer-oauth/database"
	"github.com/blogem/freelancer-oauth/freelancer"
	authmiddleware "github.com/blogem/freelancer-oauth/middleware"
	"github.com/blogem/freelancer-oauth/repositories"
	"github.com/blogem/freelancer-oauth/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize database
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "freelancer_oauth.db"
	}
	if err := database.InitializeDatabase(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Get database connection
	db := database.GetDB()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize services
	srvs := services.NewServices(repos)

	// Build the provider configuration once; each request flow gets its own
	// provider instance since the adapter holds token state
	cfg, err := providerConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to configure Freelancer provider: %v", err)
	}
	newProvider := func() (*freelancer.Provider, error) {
		return freelancer.New(cfg)
	}

	// Validate the configuration eagerly, before serving traffic
	if _, err := newProvider(); err != nil {
		log.Fatalf("Invalid Freelancer provider configuration: %v", err)
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, newProvider)

	// Set up router
	r, err := setupRouter(ctrl, repos)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Freelancer OAuth demo starting on port %s\n", port)
	fmt.Printf("Visit: http://localhost:%s\n", port)

	log.Fatal(http.ListenAndServe(":"+port, r))
}

// providerConfigFromEnv builds the Freelancer provider configuration from
// the environment
func providerConfigFromEnv() (freelancer.Config, error) {
	cfg := freelancer.Config{
		ClientID:     os.Getenv("FREELANCER_CLIENT_ID"),
		ClientSecret: os.Getenv("FREELANCER_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("FREELANCER_REDIRECT_URL"),
		Sandbox:      os.Getenv("FREELANCER_SANDBOX") == "true",
	}

	if scopes := os.Getenv("FREELANCER_SCOPES"); scopes != "" {
		cfg.Scopes = strings.Fields(scopes)
	}
	if advanced := os.Getenv("FREELANCER_ADVANCED_SCOPES"); advanced != "" {
		cfg.AdvancedScopes = strings.Fields(advanced)
	}

	return cfg, nil
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, repos *repositories.Repositories) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(middleware.Compress(5))

	// Determine if we should use secure cookies (HTTPS)
	useSecureCookies := os.Getenv("USE_HTTPS") == "true"

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "freelancer_session",
		Secure:         useSecureCookies, // Set to true when USE_HTTPS=true (production)
		Gclifetime:     3600,             // Session lifetime in seconds
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// Record successful login/refresh/logout events
	r.Use(authmiddleware.AuditLogger(repos.Audit))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/", ctrl.Dashboard.Index)
	r.Get("/login", ctrl.Auth.Login)
	r.Get("/callback", ctrl.Auth.Callback)
	r.Get("/logout", ctrl.Auth.Logout)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "freelancer-oauth"}`)
	})

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth)

		r.Post("/refresh", ctrl.Auth.Refresh)
		r.Get("/api/self", ctrl.API.Self)
	})

	return r, nil
}
