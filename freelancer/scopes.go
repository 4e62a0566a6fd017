package freelancer

import (
	"fmt"
	"strconv"
	"strings"
)

// advancedScopeCodes maps symbolic advanced scope names to the numeric codes
// the authorization server expects. Read-only after process start.
var advancedScopeCodes = map[string]int{
	"fln:project_create":   1,
	"fln:project_manage":   2,
	"fln:user_information": 3,
	"fln:contest_create":   4,
	"fln:contest_manage":   5,
	"fln:messaging":        6,
}

// resolveAdvancedScopes normalizes a mix of symbolic names and numeric
// strings into numeric codes. An unrecognized symbolic name is a
// configuration error.
func resolveAdvancedScopes(scopes []string) ([]int, error) {
	codes := make([]int, 0, len(scopes))
	for _, scope := range scopes {
		if code, err := strconv.Atoi(scope); err == nil {
			codes = append(codes, code)
			continue
		}

		code, ok := advancedScopeCodes[scope]
		if !ok {
			return nil, newError(ErrConfig, fmt.Sprintf("unknown advanced scope %q", scope))
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// joinScopeCodes renders numeric scope codes as the space-joined string the
// authorization endpoint expects
func joinScopeCodes(codes []int) string {
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = strconv.Itoa(code)
	}
	return strings.Join(parts, " ")
}
