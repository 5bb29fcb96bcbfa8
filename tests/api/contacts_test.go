//go:build e2e

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deprtest/e2e/internal/models"
)

func TestContactsCRUD(t *testing.T) {
	client := authClient(t)
	ctx := context.Background()
	owner := createUser(t, client)
	contact := createContact(t, client, owner)

	t.Run("Get", func(t *testing.T) {
		resp, err := client.GetContact(ctx, contact.ID)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Contact
		require.NoError(t, resp.JSON(&got))
		assert.Equal(t, contact.Email, got.Email)
		assert.Equal(t, owner.ID, got.UserID)
	})

	t.Run("Update", func(t *testing.T) {
		notes := factory.Notes()
		resp, err := client.UpdateContact(ctx, contact.ID, map[string]any{"notes": notes})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Text())

		var got models.Contact
		require.NoError(t, resp.JSON(&got))
		assert.Equal(t, notes, got.Notes)
	})

	t.Run("Delete", func(t *testing.T) {
		resp, err := client.DeleteContact(ctx, contact.ID)
		require.NoError(t, err)
		assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, resp.StatusCode)

		resp, err = client.GetContact(ctx, contact.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestContactsByUser(t *testing.T) {
	client := authClient(t)
	ctx := context.Background()
	owner := createUser(t, client)
	owned := createContact(t, client, owner)
	other := createContact(t, client, createUser(t, client))

	resp, err := client.GetContactsByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page models.Page[models.Contact]
	require.NoError(t, resp.JSON(&page))
	require.NotEmpty(t, page.Items)
	ids := make([]int64, 0, len(page.Items))
	for _, c := range page.Items {
		assert.Equal(t, owner.ID, c.UserID)
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, owned.ID)
	assert.NotContains(t, ids, other.ID)
}
