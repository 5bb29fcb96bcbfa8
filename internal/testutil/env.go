// Package testutil provides small helpers shared by unit tests and suites.
package testutil

import (
	"strings"
	"testing"

	"github.com/deprtest/e2e/internal/config"
)

// IsolateSettings blanks every settings variable for the duration of the test
// so the host environment cannot leak into assertions, then applies overrides
// given as KEY=value pairs.
func IsolateSettings(t *testing.T, overrides ...string) *config.Settings {
	t.Helper()
	for _, key := range config.Keys() {
		t.Setenv(strings.ToUpper(key), "")
	}
	t.Setenv("DEPR_CASE_ID", "")

	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			t.Fatalf("override %q is not KEY=value", kv)
		}
		t.Setenv(strings.ToUpper(key), value)
	}

	s, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	return s
}

// IsTestSecret checks if a value has a test/development prefix.
func IsTestSecret(value string) bool {
	testPrefixes := []string{
		"test-",
		"mock-",
		"dummy-",
		"example-",
		"demo-",
		"dev-",
	}

	valueLower := strings.ToLower(value)
	for _, prefix := range testPrefixes {
		if strings.HasPrefix(valueLower, prefix) {
			return true
		}
	}

	return false
}
