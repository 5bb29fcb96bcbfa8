package helpers

import (
	"path/filepath"
	"testing"

	"github.com/deprtest/e2e/internal/ui/auth"
	"github.com/deprtest/e2e/internal/ui/pages"
)

// LoginPage returns the login page object bound to the session browser.
func (s *Session) LoginPage() *pages.LoginPage {
	return pages.NewLoginPage(s.Driver, s.URLs)
}

// LoginAs opens a workspace for t and signs in as role.
func (s *Session) LoginAs(t testing.TB, role auth.Role) *pages.LoginPage {
	t.Helper()
	s.Workspace(t)
	login := s.LoginPage()
	auth.WithAuth(t, login, s.Settings, role, true)
	return login
}

// SaveAuthState writes the signed-in storage state under the artifacts dir.
func (s *Session) SaveAuthState(t testing.TB) string {
	t.Helper()
	path := filepath.Join(s.Settings.ArtifactsDir, ".auth", "auth_state.json")
	if err := s.Driver.SaveAuthState(path); err != nil {
		t.Fatalf("could not save auth state: %v", err)
	}
	return path
}
