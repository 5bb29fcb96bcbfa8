package helpers

import (
	"context"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/deprtest/e2e/internal/apiclient"
	"github.com/deprtest/e2e/internal/models"
)

// API returns a client signed in as the admin account.
func (s *Session) API(t testing.TB) *apiclient.Client {
	t.Helper()
	client := apiclient.New(s.Settings.APIBaseURL, apiclient.WithLogger(s.Logger))
	resp, err := client.Login(context.Background(), s.Settings.AdminUsername, s.Settings.AdminPassword)
	if err != nil {
		t.Fatalf("api login failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK || client.Token() == "" {
		t.Fatalf("api login returned %d: %s", resp.StatusCode, resp.Text())
	}
	return client
}

// CleanupUser removes username through the API once t finishes, whether or
// not the UI flow deleted it already.
func (s *Session) CleanupUser(t testing.TB, client *apiclient.Client, username string) {
	t.Cleanup(func() {
		ctx := context.Background()
		resp, err := client.GetUsers(ctx)
		if err != nil || resp.StatusCode != http.StatusOK {
			return
		}
		var page models.Page[models.User]
		if err := resp.JSON(&page); err != nil {
			return
		}
		for _, u := range page.Items {
			if u.Username != username {
				continue
			}
			if _, err := client.DeleteUser(ctx, u.ID); err != nil {
				s.Logger.Warn("failed to clean up user", zap.String("username", username), zap.Error(err))
			}
		}
	})
}

// CleanupContact removes every contact with email once t finishes.
func (s *Session) CleanupContact(t testing.TB, client *apiclient.Client, email string) {
	t.Cleanup(func() {
		ctx := context.Background()
		resp, err := client.GetContacts(ctx)
		if err != nil || resp.StatusCode != http.StatusOK {
			return
		}
		var page models.Page[models.Contact]
		if err := resp.JSON(&page); err != nil {
			return
		}
		for _, c := range page.Items {
			if c.Email != email {
				continue
			}
			if _, err := client.DeleteContact(ctx, c.ID); err != nil {
				s.Logger.Warn("failed to clean up contact", zap.String("email", email), zap.Error(err))
			}
		}
	})
}
