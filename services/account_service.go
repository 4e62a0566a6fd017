package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogem/freelancer-oauth/freelancer"
	"github.com/blogem/freelancer-oauth/models"
	"github.com/blogem/freelancer-oauth/repositories"
)

// AccountService interface defines account and token business logic
type AccountService interface {
	// SignIn upserts the local account for a resource owner and persists
	// the freshly obtained token
	SignIn(ctx context.Context, owner *freelancer.ResourceOwner, token *freelancer.Token, sandbox bool) (*models.Account, error)

	GetAccount(ctx context.Context, id int) (*models.Account, error)

	// SaveToken persists the account's current token
	SaveToken(ctx context.Context, accountID int, token *freelancer.Token) error

	// RestoreToken loads the account's stored token into the provider so
	// authenticated requests work without a fresh authorization round trip
	RestoreToken(ctx context.Context, accountID int, provider *freelancer.Provider) (*models.TokenRecord, error)

	// SignOut drops the account's stored token
	SignOut(ctx context.Context, accountID int) error

	RecentActivity(email string, limit int) ([]models.AuthEvent, error)
}

// accountService implements AccountService interface
type accountService struct {
	accountRepo repositories.AccountRepository
	tokenRepo   repositories.TokenRepository
	auditRepo   repositories.AuditRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repositories.AccountRepository, tokenRepo repositories.TokenRepository, auditRepo repositories.AuditRepository) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		tokenRepo:   tokenRepo,
		auditRepo:   auditRepo,
	}
}

// SignIn upserts the account keyed by the resource owner's email and stores
// the token
func (s *accountService) SignIn(ctx context.Context, owner *freelancer.ResourceOwner, token *freelancer.Token, sandbox bool) (*models.Account, error) {
	if owner.Email() == "" {
		return nil, fmt.Errorf("resource owner has no email")
	}

	account, err := s.accountRepo.GetByEmail(ctx, owner.Email())
	switch err {
	case nil:
		account.Username = owner.Get("username")
		account.DisplayName = displayName(owner)
		account.Sandbox = sandbox
		if err := s.accountRepo.Update(ctx, account); err != nil {
			return nil, fmt.Errorf("failed to update account: %w", err)
		}
		if err := s.accountRepo.TouchLastLogin(ctx, account.ID); err != nil {
			return nil, err
		}
	case repositories.ErrNotFound:
		account = &models.Account{
			Email:       owner.Email(),
			Username:    owner.Get("username"),
			DisplayName: displayName(owner),
			Sandbox:     sandbox,
		}
		if errs := account.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("invalid account: %s", strings.Join(errs, "; "))
		}
		if err := s.accountRepo.Create(ctx, account); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.SaveToken(ctx, account.ID, token); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID
func (s *accountService) GetAccount(ctx context.Context, id int) (*models.Account, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid account ID: %d", id)
	}
	return s.accountRepo.GetByID(ctx, id)
}

// SaveToken persists the account's token
func (s *accountService) SaveToken(ctx context.Context, accountID int, token *freelancer.Token) error {
	record := &models.TokenRecord{
		AccountID:    accountID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expires:      token.Expires,
		Scope:        token.Scope,
		TokenType:    token.TokenType,
	}
	if errs := record.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid token record: %s", strings.Join(errs, "; "))
	}
	return s.tokenRepo.Upsert(ctx, record)
}

// RestoreToken loads the stored token into the provider
func (s *accountService) RestoreToken(ctx context.Context, accountID int, provider *freelancer.Provider) (*models.TokenRecord, error) {
	record, err := s.tokenRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := provider.SetTokenFromMap(record.TokenFields()); err != nil {
		return nil, fmt.Errorf("failed to restore token: %w", err)
	}

	return record, nil
}

// SignOut drops the account's stored token
func (s *accountService) SignOut(ctx context.Context, accountID int) error {
	return s.tokenRepo.DeleteByAccountID(ctx, accountID)
}

// RecentActivity returns the account's recent auth events
func (s *accountService) RecentActivity(email string, limit int) ([]models.AuthEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.auditRepo.RecentByEmail(email, limit)
}

// displayName picks the friendliest available profile field
func displayName(owner *freelancer.ResourceOwner) string {
	if name := owner.Get("public_name"); name != "" {
		return name
	}
	if name := owner.Get("display_name"); name != "" {
		return name
	}
	if username := owner.Get("username"); username != "" {
		return username
	}
	return owner.Email()
}
