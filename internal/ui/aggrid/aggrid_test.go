package aggrid

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deprtest/e2e/internal/ui/element"
	"github.com/deprtest/e2e/internal/ui/uitest"
)

type source struct{ page playwright.Page }

func (s source) Page() (playwright.Page, error) { return s.page, nil }

func pathOf(t *testing.T, e *element.Element) string {
	t.Helper()
	loc, err := e.Locator()
	require.NoError(t, err)
	return loc.(*uitest.Locator).Path
}

const body = ".ag-center-cols-container[role='rowgroup']"

func TestHelperSelectors(t *testing.T) {
	src := source{uitest.NewPage()}
	h := New(src, nil)
	row := h.RowByIndex(3)

	tests := []struct {
		name string
		el   *element.Element
		want string
	}{
		{"Container", h.Container(), ".ag-root-wrapper"},
		{"Header columns", h.HeaderColumns(), ".ag-header-container[role='rowgroup'] >> [role='columnheader']"},
		{"Header names", h.HeaderColumnNames(), ".ag-header-container[role='rowgroup'] >> [role='columnheader'] >> .ag-header-cell-text"},
		{"Header by col id", h.HeaderColumnByColID("name"), ".ag-header-container[role='rowgroup'] >> [col-id='name']"},
		{"Body rows", h.BodyRows(), body + " >> [role='row']"},
		{"Row by index", row, body + " >> [role='row'][row-index='3']"},
		{"Row by id", h.RowByID("42"), body + " >> [row-id='42']"},
		{"Row at position", h.RowAtPosition(1), body + " >> [role='row']:nth-child(1)"},
		{"Row cells", h.RowCells(row), body + " >> [role='row'][row-index='3'] >> [role='gridcell']"},
		{"Cells by col id", h.CellsByColID("life"), body + " >> [col-id='life']"},
		{"Row cell by col id", h.RowCellByColID(row, "life"), body + " >> [role='row'][row-index='3'] >> [col-id='life']"},
		{"Cell by text", h.CellByText("Building"), `[role='gridcell']:has-text("Building")`},
		{"Cell by quoted text", h.CellByText("5\" Pipe\\Valve\tA"), "[role='gridcell']:has-text(\"5\\\" Pipe\\\\Valve\tA\")"},
		{"Loading overlay", h.LoadingOverlay(), ".ag-overlay-loading-wrapper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pathOf(t, tt.el))
		})
	}
}

func TestHelperScopedToParent(t *testing.T) {
	src := source{uitest.NewPage()}
	h := New(src, element.Locate(src, ".configuration-table"))

	assert.Equal(t, ".configuration-table >> "+body+" >> [col-id='name']", pathOf(t, h.CellsByColID("name")))
	assert.Equal(t, ".configuration-table >> .ag-root-wrapper", pathOf(t, h.Container()))
}

func TestHelperReads(t *testing.T) {
	page := uitest.NewPage()
	h := New(source{page}, nil)

	names := ".ag-header-container[role='rowgroup'] >> [role='columnheader'] >> .ag-header-cell-text"
	page.DOM.SetCount(names, 2).
		SetText(names+" >> nth=0", " Name ").
		SetText(names+" >> nth=1", "Recovery Period").
		SetCount(body+" >> [role='row']", 4).
		SetCount(body+" >> [col-id='name']", 1).
		SetText(body+" >> [col-id='name'] >> nth=0", "Building\n")

	headers, err := h.HeaderTexts()
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Recovery Period"}, headers)

	n, err := h.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	values, err := h.ColumnValues("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Building"}, values)

	require.NoError(t, h.WaitForLoadingToFinish())
	assert.Contains(t, page.Rec.Calls(), "wait hidden for .ag-overlay-loading-wrapper")
}

func TestLegacyGrid(t *testing.T) {
	page := uitest.NewPage()
	g := NewLegacy(source{page}, ".ag-theme-alpine")

	headers := ".ag-theme-alpine [role='columnheader']"
	rows := ".ag-theme-alpine [role='rowgroup']:nth-child(2) > [role='row']"
	cell := rows + ":nth-child(2) >> [role='gridcell']:nth-child(3)"
	page.DOM.SetCount(headers, 3).
		SetText(headers+" >> nth=0", "Name").
		SetText(headers+" >> nth=1", "  ").
		SetText(headers+" >> nth=2", "Method").
		SetCount(rows, 5).
		SetText(cell, "MACRS")

	names, err := g.HeaderNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Method"}, names)

	n, err := g.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	v, err := g.CellValue(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "MACRS", v)

	require.NoError(t, g.ClickCell(1, 2))
	assert.Equal(t, []string{"click " + cell}, page.Rec.Calls())
}
