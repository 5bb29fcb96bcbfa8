//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deprtest/e2e/internal/models"
	"github.com/deprtest/e2e/internal/ui/auth"
	"github.com/deprtest/e2e/internal/ui/pages"
)

func TestContactManagement(t *testing.T) {
	session.LoginAs(t, auth.Admin)
	client := session.API(t)
	contacts := pages.NewContactPage(session.Driver, session.URLs, session.Factory)

	require.NoError(t, contacts.Open())

	created, err := contacts.AddContact(models.Contact{})
	require.NoError(t, err)
	session.CleanupContact(t, client, created.Email)
	name := created.FullName()

	t.Run("Created contact is listed", func(t *testing.T) {
		require.NoError(t, contacts.Search(created.LastName))
		require.NoError(t, contacts.ShouldSeeContact(name))
	})

	t.Run("Edit phone", func(t *testing.T) {
		require.NoError(t, contacts.Edit(name, pages.ContactForm{Phone: session.Factory.Phone()}))
		require.NoError(t, contacts.ShouldSeeContact(name))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, contacts.Delete(name))
		require.NoError(t, contacts.Search(created.LastName))
		require.NoError(t, contacts.ShouldNotSeeContact(name))
	})
}
