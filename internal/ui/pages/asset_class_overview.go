package pages

import (
	"fmt"

	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/ui/aggrid"
	"github.com/deprtest/e2e/internal/ui/element"
)

// AssetClassHeaders are the columns of the asset class grid.
var AssetClassHeaders = []string{"Name", "Depreciation Profile", "Tags", "Actions"}

// AssetClassOverview is the read-only view of the asset class grid that
// addresses columns by header text rather than column id.
type AssetClassOverview struct {
	b    Browser
	urls *routes.URLBuilder

	Title        *element.Element
	CreateButton *element.Element
	Grid         *aggrid.LegacyGrid
}

func NewAssetClassOverview(b Browser, urls *routes.URLBuilder) *AssetClassOverview {
	return &AssetClassOverview{
		b:            b,
		urls:         urls,
		Title:        locate(b, hasText("h3", "Asset Class")),
		CreateButton: locate(b, hasText("button", "Create")),
		Grid:         aggrid.NewLegacy(b, "[role='grid']"),
	}
}

func (o *AssetClassOverview) Open(caseID string) error {
	return o.b.Goto(o.urls.DepreciationAssetClass(caseID))
}

func (o *AssetClassOverview) header(name string) *element.Element {
	return locate(o.b, fmt.Sprintf("[role='columnheader']:has-text('%s')", name))
}

// VerifyPageLoaded checks the title, create button and grid are shown.
func (o *AssetClassOverview) VerifyPageLoaded() error {
	for _, el := range []*element.Element{o.Title, o.CreateButton, o.Grid.Grid()} {
		if err := el.ShouldBeVisible(); err != nil {
			return err
		}
	}
	return nil
}

func (o *AssetClassOverview) VerifyGridHeaders() error {
	for _, h := range AssetClassHeaders {
		if err := o.header(h).ShouldBeVisible(); err != nil {
			return fmt.Errorf("grid header %q: %w", h, err)
		}
	}
	return nil
}

func (o *AssetClassOverview) VerifyGridHasData() error {
	n, err := o.Grid.RowCount()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("asset class grid has no rows")
	}
	return nil
}
