package pages

import (
	"fmt"
	"strings"

	"github.com/deprtest/e2e/internal/ui/aggrid"
	"github.com/deprtest/e2e/internal/ui/element"
)

// Column ids shared by every configuration grid.
const (
	ColName    = "name"
	ColActions = "actions"
)

// DeleteSuccessMessage is shown in the toaster after a delete.
const DeleteSuccessMessage = "Successfully Deleted"

// ConfigurationPage is the layout shared by the tax-depreciation
// configuration screens: a titled AG-Grid with per-row edit and delete icons.
type ConfigurationPage struct {
	b       Browser
	entity  string
	url     func(caseID string) string
	editSel string
	// hover reveals the row icons before they can be clicked.
	hover bool

	Title              *element.Element
	GridContainer      *element.Element
	CreateButton       *element.Element
	ConfirmationPopup  *element.Element
	ConfirmationHeader *element.Element
	ConfirmationDelete *element.Element
	Toaster            *element.Element
	Grid               *aggrid.Helper
}

func newConfigurationPage(b Browser, entity string, url func(string) string, editSel string, hover bool) *ConfigurationPage {
	grid := locate(b, ".configuration-table")
	popup := locate(b, ".confirmation")
	return &ConfigurationPage{
		b:                  b,
		entity:             entity,
		url:                url,
		editSel:            editSel,
		hover:              hover,
		Title:              locate(b, hasText("h3", entity)),
		GridContainer:      grid,
		CreateButton:       locate(b, hasText("button", "Create")),
		ConfirmationPopup:  popup,
		ConfirmationHeader: locate(b, ".header", under(popup)),
		ConfirmationDelete: locate(b, hasText("button", "Delete"), under(popup)),
		Toaster:            locate(b, ".Toastify__toast-body"),
		Grid:               aggrid.New(b, grid),
	}
}

// OpenWithID opens the page for one depreciation case.
func (p *ConfigurationPage) OpenWithID(caseID string) error {
	return p.b.Goto(p.url(caseID))
}

// IsLoaded waits for the title and a fully loaded grid.
func (p *ConfigurationPage) IsLoaded() error {
	if err := p.Title.ShouldBeVisible(); err != nil {
		return fmt.Errorf("%s page failed to load: %w", p.entity, err)
	}
	return p.WaitForGridReload()
}

// WaitForGridReload waits until the grid is shown and its loading overlay gone.
func (p *ConfigurationPage) WaitForGridReload() error {
	if err := p.GridContainer.ShouldBeVisible(); err != nil {
		return err
	}
	return p.Grid.WaitForLoadingToFinish()
}

// VerifyGridHeaders reports every expected header the grid lacks.
func (p *ConfigurationPage) VerifyGridHeaders(expected []string) error {
	actual, err := p.Grid.HeaderTexts()
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(actual))
	for _, h := range actual {
		have[h] = true
	}
	var missing []string
	for _, h := range expected {
		if !have[h] {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("headers %q not found in grid headers %q", missing, actual)
	}
	return nil
}

func (p *ConfigurationPage) ClickCreate() error {
	return p.CreateButton.Click()
}

// FirstRow returns the first grid row; it fails when the grid is empty.
func (p *ConfigurationPage) FirstRow() (*element.Element, error) {
	if err := p.GridContainer.ShouldBeVisible(); err != nil {
		return nil, err
	}
	n, err := p.Grid.RowCount()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("no rows found in the %s grid", p.entity)
	}
	return p.Grid.RowAtPosition(1), nil
}

// Value returns the trimmed text of row's cell in column colID.
func (p *ConfigurationPage) Value(row *element.Element, colID string) (string, error) {
	text, err := p.Grid.RowCellByColID(row, colID).Text()
	return strings.TrimSpace(text), err
}

func (p *ConfigurationPage) Name(row *element.Element) (string, error) {
	return p.Value(row, ColName)
}

func (p *ConfigurationPage) ActionsCell(row *element.Element) *element.Element {
	return p.Grid.RowCellByColID(row, ColActions)
}

func (p *ConfigurationPage) clickIcon(actions *element.Element, selector string) error {
	if p.hover {
		if err := actions.Hover(); err != nil {
			return err
		}
	}
	icon := actions.Chain(locate(p.b, selector))
	if err := icon.ShouldBeVisible(); err != nil {
		return err
	}
	return icon.Click()
}

func (p *ConfigurationPage) ClickEditIcon(actions *element.Element) error {
	return p.clickIcon(actions, p.editSel)
}

func (p *ConfigurationPage) ClickDeleteIcon(actions *element.Element) error {
	return p.clickIcon(actions, ".trash")
}

// VerifyDeleteConfirmation checks the popup names the record being deleted.
func (p *ConfigurationPage) VerifyDeleteConfirmation(name string) error {
	if err := p.ConfirmationPopup.ShouldBeVisible(); err != nil {
		return err
	}
	header, err := p.ConfirmationHeader.Text()
	if err != nil {
		return err
	}
	want := fmt.Sprintf("Delete %s %s", p.entity, name)
	if !strings.Contains(header, want) {
		return fmt.Errorf("expected confirmation header to contain %q, got %q", want, header)
	}
	return p.ConfirmationDelete.ShouldBeEnabled()
}

func (p *ConfigurationPage) ConfirmDelete() error {
	if err := p.ConfirmationDelete.Click(); err != nil {
		return err
	}
	return p.ConfirmationPopup.ShouldBeHidden()
}

func (p *ConfigurationPage) VerifyDeleteSuccess() error {
	if err := p.Toaster.ShouldBeVisible(); err != nil {
		return err
	}
	text, err := p.Toaster.Text()
	if err != nil {
		return err
	}
	if !strings.Contains(text, DeleteSuccessMessage) {
		return fmt.Errorf("expected toaster message to contain %q, got %q", DeleteSuccessMessage, text)
	}
	return nil
}

// InGrid reports whether a rendered row is named exactly name.
func (p *ConfigurationPage) InGrid(name string) (bool, error) {
	if err := p.GridContainer.ShouldBeVisible(); err != nil {
		return false, err
	}
	names, err := p.Grid.ColumnValues(ColName)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// FormDialog is the create/edit form used by the configuration pages.
type FormDialog struct {
	b Browser

	Container     *element.Element
	Title         *element.Element
	NameInput     *element.Element
	ActionButtons *element.Element
	CreateBtn     *element.Element
	SaveBtn       *element.Element
	CancelBtn     *element.Element
	ErrorMessage  *element.Element
	// ValidationError is visible, or carries the "error" class, on bad input.
	ValidationError *element.Element
	errorByClass    bool
}

func (d *FormDialog) ShouldBeVisible() error {
	return d.Container.ShouldBeVisible()
}

func (d *FormDialog) ShouldNotBeVisible() error {
	return d.Container.ShouldBeHidden()
}

// Create waits for the Create button to enable, then clicks it.
func (d *FormDialog) Create() error {
	if err := d.CreateBtn.ShouldBeEnabled(); err != nil {
		return err
	}
	return d.CreateBtn.Click()
}

// Save waits for the Save button to enable, then clicks it.
func (d *FormDialog) Save() error {
	if err := d.SaveBtn.ShouldBeEnabled(); err != nil {
		return err
	}
	return d.SaveBtn.Click()
}

func (d *FormDialog) Cancel() error {
	return d.CancelBtn.Click()
}

func (d *FormDialog) HasValidationError() (bool, error) {
	if d.errorByClass {
		return d.ValidationError.HasClass("error")
	}
	return d.ValidationError.IsVisible()
}

func (d *FormDialog) Error() (string, error) {
	return d.ErrorMessage.Text()
}

func (d *FormDialog) IsCreateEnabled() (bool, error) {
	return d.CreateBtn.IsEnabled()
}

// TitleText returns the form heading, e.g. "Edit <name>".
func (d *FormDialog) TitleText() (string, error) {
	return d.Title.Text()
}

// EditName replaces the name input and returns the previous value.
func (d *FormDialog) EditName(name string) (string, error) {
	if err := d.NameInput.ShouldBeVisible(); err != nil {
		return "", err
	}
	current, err := d.NameInput.Value()
	if err != nil {
		return "", err
	}
	return current, d.NameInput.Fill(name)
}

// SetName fills the name input, e.g. to trigger the uniqueness check.
func (d *FormDialog) SetName(name string) error {
	return d.NameInput.Fill(name)
}

// Blur clicks the form body so pending change events fire.
func (d *FormDialog) Blur() error {
	return d.Container.Click()
}
