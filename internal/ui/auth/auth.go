// Package auth signs browser sessions in as one of the configured roles.
package auth

import (
	"fmt"
	"strings"
	"testing"

	"github.com/deprtest/e2e/internal/config"
	"github.com/deprtest/e2e/internal/ui/pages"
)

// Role selects which configured account a session uses.
type Role string

const (
	Admin    Role = "ADMIN"
	User     Role = "USER"
	Readonly Role = "READONLY"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case Admin, User, Readonly:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Credentials returns the login and password configured for role.
func Credentials(settings *config.Settings, role Role) (login, password string, err error) {
	switch role {
	case Admin:
		login, password = settings.AdminUsername, settings.AdminPassword
	case User:
		login, password = settings.UserUsername, settings.UserPassword
	case Readonly:
		login, password = settings.ReadonlyUsername, settings.ReadonlyPassword
	default:
		return "", "", fmt.Errorf("unknown role %q", role)
	}
	if login == "" || password == "" {
		return "", "", fmt.Errorf("%s credentials not configured", strings.ToLower(string(role)))
	}
	return login, password, nil
}

// LoginAs opens the login page and signs in as role. With
// checkAlreadyLoggedIn an authenticated session is left untouched.
func LoginAs(login *pages.LoginPage, settings *config.Settings, role Role, checkAlreadyLoggedIn bool) error {
	if checkAlreadyLoggedIn {
		ok, err := login.IsLoggedIn()
		if err != nil {
			return fmt.Errorf("failed to check session: %w", err)
		}
		if ok {
			return nil
		}
	}

	user, password, err := Credentials(settings, role)
	if err != nil {
		return err
	}
	if err := login.Open(); err != nil {
		return fmt.Errorf("failed to navigate to login: %w", err)
	}
	if err := login.Login(user, password); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}
	if err := login.ShouldBeRedirectedFromLogin(); err != nil {
		return fmt.Errorf("login as %s failed: %w", role, err)
	}
	return nil
}

// WithAuth logs in as role and fails the test when that is not possible.
func WithAuth(t testing.TB, login *pages.LoginPage, settings *config.Settings, role Role, checkAlreadyLoggedIn bool) {
	t.Helper()
	if err := LoginAs(login, settings, role, checkAlreadyLoggedIn); err != nil {
		t.Fatalf("authentication as %s: %v", role, err)
	}
}
