package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/blogem/freelancer-oauth/database"
	"github.com/blogem/freelancer-oauth/models"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	// Create a temporary database for testing
	dbPath := "test_" + time.Now().Format("20060102150405.000000000") + ".db"

	// Clean up function
	t.Cleanup(func() {
		database.CloseDB()
		os.Remove(dbPath)
	})

	// Initialize test database using the actual migration system
	if err := database.InitializeDatabase(dbPath); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	return database.GetDB()
}

func TestAccountRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	// Test Create
	account := &models.Account{
		Email:       "dev@example.com",
		Username:    "dev",
		DisplayName: "Dev User",
		Sandbox:     true,
	}

	err := repo.Create(ctx, account)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	if account.ID == 0 {
		t.Error("Expected account ID to be set after creation")
	}

	// Test GetByID
	retrieved, err := repo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("Failed to get account by ID: %v", err)
	}

	if retrieved.Email != account.Email {
		t.Errorf("Expected email %s, got %s", account.Email, retrieved.Email)
	}
	if !retrieved.Sandbox {
		t.Error("Expected sandbox flag to persist")
	}

	// Test GetByEmail
	byEmail, err := repo.GetByEmail(ctx, "dev@example.com")
	if err != nil {
		t.Fatalf("Failed to get account by email: %v", err)
	}
	if byEmail.ID != account.ID {
		t.Errorf("Expected ID %d, got %d", account.ID, byEmail.ID)
	}

	// Test GetByEmail for missing row
	_, err = repo.GetByEmail(ctx, "missing@example.com")
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	// Test Update
	account.DisplayName = "Renamed"
	if err := repo.Update(ctx, account); err != nil {
		t.Fatalf("Failed to update account: %v", err)
	}

	updated, err := repo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("Failed to get updated account: %v", err)
	}
	if updated.DisplayName != "Renamed" {
		t.Errorf("Expected display name Renamed, got %s", updated.DisplayName)
	}

	// Test Count
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count accounts: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 account, got %d", count)
	}
}

func TestTokenRepository(t *testing.T) {
	db := setupTestDB(t)
	accountRepo := NewAccountRepository(db)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	account := &models.Account{Email: "dev@example.com"}
	if err := accountRepo.Create(ctx, account); err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	// Test Upsert (insert)
	record := &models.TokenRecord{
		AccountID:    account.ID,
		AccessToken:  "token-abc",
		RefreshToken: "refresh-xyz",
		Expires:      1900000000,
		Scope:        "basic",
		TokenType:    "Bearer",
	}
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("Failed to store token: %v", err)
	}

	stored, err := repo.GetByAccountID(ctx, account.ID)
	if err != nil {
		t.Fatalf("Failed to get token: %v", err)
	}
	if stored.AccessToken != "token-abc" || stored.RefreshToken != "refresh-xyz" {
		t.Errorf("Unexpected stored token: %+v", stored)
	}
	if stored.Expires != 1900000000 {
		t.Errorf("Expected expires to persist, got %d", stored.Expires)
	}

	// Test Upsert (replace)
	record.AccessToken = "token-def"
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("Failed to replace token: %v", err)
	}

	replaced, err := repo.GetByAccountID(ctx, account.ID)
	if err != nil {
		t.Fatalf("Failed to get replaced token: %v", err)
	}
	if replaced.AccessToken != "token-def" {
		t.Errorf("Expected replaced token, got %s", replaced.AccessToken)
	}

	// Test Delete
	if err := repo.DeleteByAccountID(ctx, account.ID); err != nil {
		t.Fatalf("Failed to delete token: %v", err)
	}
	if _, err := repo.GetByAccountID(ctx, account.ID); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestAuditRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)

	events := []models.AuthEvent{
		{UserEmail: "dev@example.com", Action: models.AuthEventLogin, IPAddress: "127.0.0.1"},
		{UserEmail: "dev@example.com", Action: models.AuthEventLogout, IPAddress: "127.0.0.1"},
		{UserEmail: "other@example.com", Action: models.AuthEventLogin},
	}
	for i := range events {
		if err := repo.Create(&events[i]); err != nil {
			t.Fatalf("Failed to create auth event: %v", err)
		}
	}

	recent, err := repo.RecentByEmail("dev@example.com", 10)
	if err != nil {
		t.Fatalf("Failed to query auth events: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("Expected 2 events for dev@example.com, got %d", len(recent))
	}
}
