package element

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// List is an element matching many nodes, each wrapped by an item factory.
type List[T any] struct {
	*Element
	factory func(loc playwright.Locator, index int) T
}

// NewList creates a new list over every node matched by el.
func NewList[T any](el *Element, factory func(loc playwright.Locator, index int) T) *List[T] {
	return &List[T]{Element: el, factory: factory}
}

// At wraps the index-th match without checking it exists.
func (l *List[T]) At(index int) (T, error) {
	var zero T
	loc, err := l.Locator()
	if err != nil {
		return zero, err
	}
	return l.factory(loc.Nth(index), index), nil
}

// Items wraps every current match.
func (l *List[T]) Items() ([]T, error) {
	loc, err := l.Locator()
	if err != nil {
		return nil, err
	}
	n, err := loc.Count()
	if err != nil {
		return nil, l.fail("count", err)
	}
	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, l.factory(loc.Nth(i), i))
	}
	return items, nil
}

// Each calls fn for every item and stops at the first error.
func (l *List[T]) Each(fn func(T) error) error {
	items, err := l.Items()
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

// Filter returns the items for which pred is true.
func (l *List[T]) Filter(pred func(T) (bool, error)) ([]T, error) {
	items, err := l.Items()
	if err != nil {
		return nil, err
	}
	var out []T
	for _, item := range items {
		ok, err := pred(item)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// Find returns the first item for which pred is true, or ErrNotFound.
func (l *List[T]) Find(pred func(T) (bool, error)) (T, error) {
	var zero T
	items, err := l.Items()
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		ok, err := pred(item)
		if err != nil {
			return zero, err
		}
		if ok {
			return item, nil
		}
	}
	return zero, fmt.Errorf("%w in %s", ErrNotFound, l.Element)
}

// Grid is a plain HTML table.
type Grid struct {
	*Element
	Rows *List[*GridRow]
}

// NewGrid creates a new grid; selector defaults to "table".
func NewGrid(src PageSource, selector string, opts ...Option) *Grid {
	if selector == "" {
		selector = "table"
	}
	g := &Grid{Element: Locate(src, selector, opts...)}
	g.Rows = NewList(g.Chain(Locate(src, "tbody > tr")), func(loc playwright.Locator, i int) *GridRow {
		return &GridRow{Locator: loc, Index: i, grid: g}
	})
	return g
}

// Row returns the index-th body row.
func (g *Grid) Row(index int) (*GridRow, error) {
	return g.Rows.At(index)
}

// FindRowByText returns the first row whose text contains text.
func (g *Grid) FindRowByText(text string) (*GridRow, error) {
	row, err := g.Rows.Find(func(r *GridRow) (bool, error) {
		got, err := r.Text()
		return strings.Contains(got, text), err
	})
	if err != nil {
		return nil, fmt.Errorf("row with text %q: %w", text, err)
	}
	return row, nil
}

// GridRow is one body row of a Grid.
type GridRow struct {
	Locator playwright.Locator
	Index   int
	grid    *Grid
}

// Cells lists the row's td cells.
func (r *GridRow) Cells() *List[*GridCell] {
	return NewList(Locate(r.grid.src, "td", UnderLocator(r.Locator)), func(loc playwright.Locator, i int) *GridCell {
		return &GridCell{Locator: loc, Index: i, Row: r}
	})
}

// Cell returns the index-th cell.
func (r *GridRow) Cell(index int) (*GridCell, error) {
	return r.Cells().At(index)
}

func (r *GridRow) Text() (string, error) {
	return r.Locator.TextContent()
}

func (r *GridRow) Click() error {
	return r.Locator.Click()
}

// GridCell is one td of a GridRow.
type GridCell struct {
	Locator playwright.Locator
	Index   int
	Row     *GridRow
}

func (c *GridCell) Text() (string, error) {
	return c.Locator.TextContent()
}

func (c *GridCell) Click() error {
	return c.Locator.Click()
}
