//go:build e2e

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deprtest/e2e/internal/models"
	"github.com/deprtest/e2e/internal/testing/contracts"
)

func TestUsersSmoke(t *testing.T) {
	client := authClient(t)
	ctx := context.Background()

	resp, err := client.GetUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, contracts.ValidateSchema(contracts.SchemaPage, resp.Body))
}

func TestUsersCRUD(t *testing.T) {
	client := authClient(t)
	ctx := context.Background()
	user := createUser(t, client)

	t.Run("Get", func(t *testing.T) {
		resp, err := client.GetUser(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.User
		require.NoError(t, resp.JSON(&got))
		assert.Equal(t, user.Username, got.Username)
		assert.Empty(t, got.Password, "password must not be returned")
	})

	t.Run("Update", func(t *testing.T) {
		email := factory.Email()
		resp, err := client.UpdateUser(ctx, user.ID, map[string]any{"email": email})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Text())

		var got models.User
		require.NoError(t, resp.JSON(&got))
		assert.Equal(t, email, got.Email)
	})

	t.Run("Delete", func(t *testing.T) {
		resp, err := client.DeleteUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, resp.StatusCode)

		resp, err = client.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUsersRequireAuth(t *testing.T) {
	resp, err := newClient().GetUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsersRejectInvalidBody(t *testing.T) {
	client := authClient(t)
	resp, err := client.CreateUser(context.Background(), map[string]any{"username": "x"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, resp.StatusCode, 400)
	assert.Less(t, resp.StatusCode, 500)
}
