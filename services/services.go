package services

import (
	"github.com/blogem/freelancer-oauth/repositories"
)

// Services holds all service instances
type Services struct {
	Account AccountService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Account: NewAccountService(repos.Account, repos.Token, repos.Audit),
	}
}
