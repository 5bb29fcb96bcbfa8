//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invalidLoginMessage = "Invalid username/email and/or password."

func TestLoginSmoke(t *testing.T) {
	t.Run("Unknown user sees an error toast", func(t *testing.T) {
		session.Workspace(t)
		login := session.LoginPage()
		user := session.Factory.User()

		require.NoError(t, login.Open())
		require.NoError(t, login.Login(user.Username, user.Password))
		require.NoError(t, login.ShouldSeeErrorToast(invalidLoginMessage))

		ok, err := login.IsLoggedIn()
		require.NoError(t, err)
		assert.False(t, ok, "Should remain on login page after failed login")
	})

	t.Run("Admin is redirected away from login", func(t *testing.T) {
		session.Workspace(t)
		login := session.LoginPage()

		require.NoError(t, login.Open())
		require.NoError(t, login.Login(session.Settings.AdminUsername, session.Settings.AdminPassword))
		require.NoError(t, login.ShouldBeRedirectedFromLogin())

		ok, err := login.IsLoggedIn()
		require.NoError(t, err)
		assert.True(t, ok, "User should be logged in")

		path := session.SaveAuthState(t)
		assert.FileExists(t, path)
	})
}
