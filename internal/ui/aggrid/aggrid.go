// Package aggrid locates AG-Grid headers, rows and cells through the ARIA
// roles and data attributes the grid renders.
package aggrid

import (
	"fmt"

	"github.com/deprtest/e2e/internal/ui/element"
)

// Attributes AG-Grid puts on rows and cells.
const (
	AttrRowIndex = "row-index"
	AttrRowID    = "row-id"
	AttrColID    = "col-id"
)

const (
	locContainer        = ".ag-root-wrapper"
	locHeaderContainer  = ".ag-header-container[role='rowgroup']"
	locHeaderColumn     = "[role='columnheader']"
	locHeaderColumnName = ".ag-header-cell-text"
	locBodyContainer    = ".ag-center-cols-container[role='rowgroup']"
	locBodyRow          = "[role='row']"
	locBodyCell         = "[role='gridcell']"
	locLoadingOverlay   = ".ag-overlay-loading-wrapper"
)

// Helper builds grid elements, optionally scoped under a parent element.
type Helper struct {
	src    element.PageSource
	parent *element.Element
}

// New creates a new helper. parent may be nil to search the whole page.
func New(src element.PageSource, parent *element.Element) *Helper {
	return &Helper{src: src, parent: parent}
}

func (h *Helper) locate(selector string) *element.Element {
	if h.parent != nil {
		return element.Locate(h.src, selector, element.Under(h.parent))
	}
	return element.Locate(h.src, selector)
}

func attr(name, value string) string {
	return fmt.Sprintf("[%s='%s']", name, value)
}

func (h *Helper) Container() *element.Element {
	return h.locate(locContainer)
}

func (h *Helper) HeaderContainer() *element.Element {
	return h.locate(locHeaderContainer)
}

func (h *Helper) HeaderColumns() *element.Element {
	return h.HeaderContainer().Chain(element.Locate(h.src, locHeaderColumn))
}

func (h *Helper) HeaderColumnNames() *element.Element {
	return h.HeaderColumns().Chain(element.Locate(h.src, locHeaderColumnName))
}

func (h *Helper) HeaderColumnByColID(colID string) *element.Element {
	return h.HeaderContainer().Chain(element.Locate(h.src, attr(AttrColID, colID)))
}

func (h *Helper) BodyContainer() *element.Element {
	return h.locate(locBodyContainer)
}

func (h *Helper) BodyRows() *element.Element {
	return h.BodyContainer().Chain(element.Locate(h.src, locBodyRow))
}

// RowByIndex matches the row AG-Grid numbered index (row-index attribute),
// which survives virtual scrolling unlike DOM position.
func (h *Helper) RowByIndex(index int) *element.Element {
	sel := fmt.Sprintf("%s%s", locBodyRow, attr(AttrRowIndex, fmt.Sprint(index)))
	return h.BodyContainer().Chain(element.Locate(h.src, sel))
}

func (h *Helper) RowByID(rowID string) *element.Element {
	return h.BodyContainer().Chain(element.Locate(h.src, attr(AttrRowID, rowID)))
}

// RowAtPosition matches the 1-based DOM position inside the body container.
func (h *Helper) RowAtPosition(position int) *element.Element {
	sel := fmt.Sprintf("%s:nth-child(%d)", locBodyRow, position)
	return h.BodyContainer().Chain(element.Locate(h.src, sel))
}

// RowCells matches every cell of row.
func (h *Helper) RowCells(row *element.Element) *element.Element {
	return row.Chain(element.Locate(h.src, locBodyCell))
}

// CellsByColID matches the column's cells across all rendered rows.
func (h *Helper) CellsByColID(colID string) *element.Element {
	return h.BodyContainer().Chain(element.Locate(h.src, attr(AttrColID, colID)))
}

// RowCellByColID matches one cell of row.
func (h *Helper) RowCellByColID(row *element.Element, colID string) *element.Element {
	return row.Chain(element.Locate(h.src, attr(AttrColID, colID)))
}

// CellByText matches body cells containing text.
func (h *Helper) CellByText(text string) *element.Element {
	return h.locate(element.HasText(locBodyCell, text))
}

// HeaderTexts returns the trimmed header labels.
func (h *Helper) HeaderTexts() ([]string, error) {
	return h.HeaderColumnNames().Texts()
}

// ColumnValues returns the trimmed text of every rendered cell in a column.
func (h *Helper) ColumnValues(colID string) ([]string, error) {
	return h.CellsByColID(colID).Texts()
}

// RowCount returns the number of rendered body rows.
func (h *Helper) RowCount() (int, error) {
	return h.BodyRows().Count()
}

// LoadingOverlay is shown while the grid fetches rows.
func (h *Helper) LoadingOverlay() *element.Element {
	return h.locate(locLoadingOverlay)
}

// WaitForLoadingToFinish waits until the loading overlay is gone.
func (h *Helper) WaitForLoadingToFinish(opts ...element.ActionOption) error {
	return h.LoadingOverlay().WaitForHidden(opts...)
}
