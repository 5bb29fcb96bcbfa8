package aggrid

import (
	"fmt"
	"strings"

	"github.com/deprtest/e2e/internal/ui/element"
)

// LegacyGrid addresses cells by row and column position. Older pages still
// render grids without col-id attributes.
type LegacyGrid struct {
	src      element.PageSource
	selector string
}

func NewLegacy(src element.PageSource, selector string) *LegacyGrid {
	return &LegacyGrid{src: src, selector: selector}
}

func (g *LegacyGrid) Grid() *element.Element {
	return element.Locate(g.src, g.selector)
}

func (g *LegacyGrid) Headers() *element.Element {
	return element.Locate(g.src, g.selector+" "+locHeaderColumn)
}

func (g *LegacyGrid) Rows() *element.Element {
	return element.Locate(g.src, g.selector+" [role='rowgroup']:nth-child(2) > [role='row']")
}

func (g *LegacyGrid) cell(row, col int) *element.Element {
	r := element.Locate(g.src, fmt.Sprintf("%s [role='rowgroup']:nth-child(2) > [role='row']:nth-child(%d)", g.selector, row+1))
	return r.Chain(element.Locate(g.src, fmt.Sprintf("%s:nth-child(%d)", locBodyCell, col+1)))
}

// HeaderNames returns the non-empty header labels.
func (g *LegacyGrid) HeaderNames() ([]string, error) {
	all, err := g.Headers().Texts()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for _, n := range all {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

func (g *LegacyGrid) RowCount() (int, error) {
	return g.Rows().Count()
}

// CellValue returns the text at the 0-based row and column.
func (g *LegacyGrid) CellValue(row, col int) (string, error) {
	return g.cell(row, col).Text()
}

// ClickCell clicks the cell at the 0-based row and column.
func (g *LegacyGrid) ClickCell(row, col int) error {
	return g.cell(row, col).Click()
}
