package freelancer

import (
	"errors"
	"testing"
)

// asAdapterError is a test helper around errors.As
func asAdapterError(err error, target **Error) bool {
	return errors.As(err, target)
}

func TestCheckResponse(t *testing.T) {
	// No message field means no error, regardless of other content
	if err := checkResponse(map[string]interface{}{"result": "ok"}); err != nil {
		t.Errorf("Expected no error for a body without message, got %v", err)
	}

	// A message without an error_code surfaces with an unresolved subcode
	err := checkResponse(map[string]interface{}{"message": "Something broke"})
	var adapterErr *Error
	if !errors.As(err, &adapterErr) {
		t.Fatalf("Expected adapter error, got %v", err)
	}
	if adapterErr.Kind != ErrAPI {
		t.Errorf("Expected API error kind, got %d", adapterErr.Kind)
	}
	if adapterErr.Code != CodeUnresolved {
		t.Errorf("Expected unresolved subcode, got %d", adapterErr.Code)
	}
	if adapterErr.Message != "Something broke" {
		t.Errorf("Expected message to surface, got %q", adapterErr.Message)
	}

	// An unrecognized error_code leaves the subcode unresolved but still
	// surfaces the message
	err = checkResponse(map[string]interface{}{
		"message":    "Mystery",
		"error_code": "SOMETHING_NEW",
	})
	if !errors.As(err, &adapterErr) {
		t.Fatalf("Expected adapter error, got %v", err)
	}
	if adapterErr.Code != CodeUnresolved {
		t.Errorf("Expected unresolved subcode for unknown error_code, got %d", adapterErr.Code)
	}
	if adapterErr.Message != "Mystery" {
		t.Errorf("Expected message to surface, got %q", adapterErr.Message)
	}
}

func TestCheckResponseKnownCodes(t *testing.T) {
	cases := []struct {
		errorCode string
		want      int
	}{
		{"INVALID_ATTRIBUTE", 0},
		{"MISSING_ATTRIBUTE", 1},
		{"INVALID_REQUEST", 2},
		{"UNAUTHORIZED", 3},
		{"FORBIDDEN", 4},
		{"QUOTA_EXCEEDED", 5},
		{"CONFLICT", 6},
		{"NOT_FOUND", 7},
		{"INTERNAL_ERROR", 8},
		{"SERVICE_UNAVAILABLE", 9},
	}

	for _, tc := range cases {
		err := checkResponse(map[string]interface{}{
			"message":    "failed",
			"error_code": tc.errorCode,
		})
		var adapterErr *Error
		if !errors.As(err, &adapterErr) {
			t.Fatalf("%s: expected adapter error, got %v", tc.errorCode, err)
		}
		if adapterErr.Code != tc.want {
			t.Errorf("%s: expected subcode %d, got %d", tc.errorCode, tc.want, adapterErr.Code)
		}
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: ErrAPI, Code: 7, Message: "not found"}
	if err.Error() != "freelancer: not found (code 7)" {
		t.Errorf("Unexpected error string: %s", err.Error())
	}

	unresolved := &Error{Kind: ErrAPI, Code: CodeUnresolved, Message: "not found"}
	if unresolved.Error() != "freelancer: not found" {
		t.Errorf("Unexpected error string: %s", unresolved.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := wrapError(ErrUnknown, "token exchange failed", cause)
	if !errors.Is(err, cause) {
		t.Error("Expected the cause to be reachable via errors.Is")
	}
}
