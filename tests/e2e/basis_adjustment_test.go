//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deprtest/e2e/internal/ui/auth"
	"github.com/deprtest/e2e/internal/ui/pages"
)

func basisAdjustmentPage(t *testing.T) *pages.BasisAdjustmentPage {
	t.Helper()
	session.LoginAs(t, auth.Admin)
	p := pages.NewBasisAdjustmentPage(session.Driver, session.URLs, session.Factory)
	openConfiguration(t, p)
	return p
}

func TestBasisAdjustmentLifecycle(t *testing.T) {
	p := basisAdjustmentPage(t)

	require.NoError(t, p.ClickCreate())
	name, err := p.FillForm("", "")
	require.NoError(t, err)
	require.NoError(t, p.SubmitForm())
	require.NoError(t, p.WaitForGridReload())

	found, err := p.InGrid(name)
	require.NoError(t, err)
	require.True(t, found, "basis adjustment %q should be in the grid", name)

	t.Run("Cancel leaves grid unchanged", func(t *testing.T) {
		before, err := p.Grid.RowCount()
		require.NoError(t, err)

		require.NoError(t, p.ClickCreate())
		_, err = p.FillForm("", "250")
		require.NoError(t, err)
		require.NoError(t, p.CancelForm())

		after, err := p.Grid.RowCount()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Delete", func(t *testing.T) {
		cell := p.Grid.CellByText(name)
		require.NoError(t, cell.ShouldBeVisible())
		row, err := p.FirstRow()
		require.NoError(t, err)
		first, err := p.Name(row)
		require.NoError(t, err)
		if first != name {
			t.Skipf("created adjustment is not the first row (%q)", first)
		}

		require.NoError(t, p.ClickDeleteIcon(p.ActionsCell(row)))
		require.NoError(t, p.VerifyDeleteConfirmation(name))
		require.NoError(t, p.ConfirmDelete())
		require.NoError(t, p.VerifyDeleteSuccess())
	})
}
