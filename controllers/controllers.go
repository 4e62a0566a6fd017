package controllers

import (
	"github.com/blogem/freelancer-oauth/freelancer"
	"github.com/blogem/freelancer-oauth/services"
)

// ProviderFactory builds a fresh provider for a single request flow. The
// adapter holds token state, so each concurrent flow gets its own instance.
type ProviderFactory func() (*freelancer.Provider, error)

// Controllers holds all controller instances
type Controllers struct {
	Auth      *AuthController
	Dashboard *DashboardController
	API       *APIController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, newProvider ProviderFactory) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(services, newProvider),
		Dashboard: NewDashboardController(services),
		API:       NewAPIController(services, newProvider),
	}
}
