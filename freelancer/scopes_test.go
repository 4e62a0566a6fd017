package freelancer

import (
	"errors"
	"testing"
)

func TestResolveAdvancedScopes(t *testing.T) {
	codes, err := resolveAdvancedScopes([]string{"fln:project_create"})
	if err != nil {
		t.Fatalf("Failed to resolve scopes: %v", err)
	}
	if len(codes) != 1 || codes[0] != 1 {
		t.Errorf("Expected [1], got %v", codes)
	}

	// Numeric strings pass through untouched
	codes, err = resolveAdvancedScopes([]string{"3", "fln:messaging"})
	if err != nil {
		t.Fatalf("Failed to resolve scopes: %v", err)
	}
	if len(codes) != 2 || codes[0] != 3 || codes[1] != 6 {
		t.Errorf("Expected [3 6], got %v", codes)
	}

	// Empty input resolves to an empty set
	codes, err = resolveAdvancedScopes(nil)
	if err != nil {
		t.Fatalf("Failed to resolve empty scopes: %v", err)
	}
	if len(codes) != 0 {
		t.Errorf("Expected no codes, got %v", codes)
	}
}

func TestResolveAdvancedScopesUnknown(t *testing.T) {
	_, err := resolveAdvancedScopes([]string{"fln:not_a_scope"})
	if err == nil {
		t.Fatal("Expected error for unknown symbolic scope")
	}
	var adapterErr *Error
	if !errors.As(err, &adapterErr) || adapterErr.Kind != ErrConfig {
		t.Errorf("Expected config error, got %v", err)
	}
}

func TestUnknownAdvancedScopeFailsConstruction(t *testing.T) {
	cfg := testConfig()
	cfg.AdvancedScopes = []string{"fln:project_create", "fln:bogus"}

	_, err := New(cfg)
	if err == nil {
		t.Fatal("Expected construction to fail for unknown advanced scope")
	}
	var adapterErr *Error
	if !errors.As(err, &adapterErr) || adapterErr.Kind != ErrConfig {
		t.Errorf("Expected config error, got %v", err)
	}
}

func TestJoinScopeCodes(t *testing.T) {
	if got := joinScopeCodes([]int{1, 42}); got != "1 42" {
		t.Errorf("Expected \"1 42\", got %q", got)
	}
	if got := joinScopeCodes(nil); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
