package pages

import (
	"fmt"

	"github.com/deprtest/e2e/internal/datafactory"
	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/ui/element"
)

// Bonus profile grid columns.
const (
	ColBonusMethod  = "bonusCalculationMethod"
	ColBonusPercent = "bonusPercent"
)

// DefaultBonusMethod is picked when no calculation method is given.
const DefaultBonusMethod = "Standard"

// BonusProfileDialog is the modal for bonus profiles.
type BonusProfileDialog struct {
	FormDialog
	factory *datafactory.Factory

	MethodDropdown *element.Element
	PercentInput   *element.Element
}

func NewBonusProfileDialog(b Browser, factory *datafactory.Factory) *BonusProfileDialog {
	modal := locate(b, ".modal")
	return &BonusProfileDialog{
		FormDialog: FormDialog{
			b:               b,
			Container:       modal,
			Title:           locate(b, ".modal-title", under(modal)),
			NameInput:       locate(b, "input[name='name']", under(modal)),
			ActionButtons:   modal,
			CreateBtn:       locate(b, hasText("button", "Create"), under(modal)),
			SaveBtn:         locate(b, hasText("button", "Save"), under(modal)),
			CancelBtn:       locate(b, hasText("button", "Cancel"), under(modal)),
			ErrorMessage:    locate(b, ".labeled-error", under(modal)),
			ValidationError: locate(b, ".input.error", under(modal)),
		},
		factory:        factory,
		MethodDropdown: locate(b, "div[data-name='bonusCalculationMethod']", under(modal)),
		PercentInput:   locate(b, "input[name='bonusPercent']", under(modal)),
	}
}

// SelectMethod opens the calculation method dropdown and picks method.
func (d *BonusProfileDialog) SelectMethod(method string) error {
	if err := d.MethodDropdown.Click(); err != nil {
		return err
	}
	return locate(d.b, hasText(".dropdown-item", method)).Click()
}

// Fill enters the profile fields, generating whatever is empty, and returns
// the name used.
func (d *BonusProfileDialog) Fill(name, method, percent string) (string, error) {
	if name == "" {
		name = d.factory.BonusProfileName()
	}
	if method == "" {
		method = DefaultBonusMethod
	}
	if percent == "" {
		percent = d.factory.BonusPercent()
	}
	if err := d.NameInput.Fill(name); err != nil {
		return name, err
	}
	if err := d.SelectMethod(method); err != nil {
		return name, err
	}
	return name, d.PercentInput.Fill(percent)
}

// EditPercent replaces the bonus percent and returns the previous value.
func (d *BonusProfileDialog) EditPercent(percent string) (string, error) {
	if err := d.PercentInput.ShouldBeVisible(); err != nil {
		return "", err
	}
	current, err := d.PercentInput.Value()
	if err != nil {
		return "", err
	}
	return current, d.PercentInput.Fill(percent)
}

// BonusProfilePage is the bonus profile configuration screen.
type BonusProfilePage struct {
	*ConfigurationPage
	Dialog *BonusProfileDialog
}

func NewBonusProfilePage(b Browser, urls *routes.URLBuilder, factory *datafactory.Factory) *BonusProfilePage {
	if factory == nil {
		factory = datafactory.Default()
	}
	return &BonusProfilePage{
		ConfigurationPage: newConfigurationPage(b, "Bonus Profile", urls.DepreciationBonusProfile, ".pencil", false),
		Dialog:            NewBonusProfileDialog(b, factory),
	}
}

func (p *BonusProfilePage) ClickCreate() error {
	if err := p.ConfigurationPage.ClickCreate(); err != nil {
		return err
	}
	return p.Dialog.ShouldBeVisible()
}

func (p *BonusProfilePage) FillForm(name, method, percent string) (string, error) {
	return p.Dialog.Fill(name, method, percent)
}

func (p *BonusProfilePage) SubmitForm() error {
	if err := p.Dialog.Create(); err != nil {
		return err
	}
	return p.Dialog.ShouldNotBeVisible()
}

func (p *BonusProfilePage) CancelForm() error {
	if err := p.Dialog.Cancel(); err != nil {
		return err
	}
	return p.Dialog.ShouldNotBeVisible()
}

func (p *BonusProfilePage) ClickEditIcon(actions *element.Element) error {
	if err := p.ConfigurationPage.ClickEditIcon(actions); err != nil {
		return err
	}
	return p.Dialog.ShouldBeVisible()
}

func (p *BonusProfilePage) EditName(name string) (string, error) {
	return p.Dialog.EditName(name)
}

func (p *BonusProfilePage) EditBonusPercent(percent string) (string, error) {
	return p.Dialog.EditPercent(percent)
}

func (p *BonusProfilePage) SaveEditedForm() error {
	if err := p.Dialog.Save(); err != nil {
		return err
	}
	return p.Dialog.ShouldNotBeVisible()
}

func (p *BonusProfilePage) Method(row *element.Element) (string, error) {
	return p.Value(row, ColBonusMethod)
}

func (p *BonusProfilePage) Percent(row *element.Element) (string, error) {
	return p.Value(row, ColBonusPercent)
}

// VerifyRow checks a row against the values entered in the form.
func (p *BonusProfilePage) VerifyRow(row *element.Element, name, method, percent string) error {
	checks := []struct{ col, want string }{
		{ColName, name},
		{ColBonusMethod, method},
		{ColBonusPercent, percent},
	}
	for _, c := range checks {
		if c.want == "" {
			continue
		}
		got, err := p.Value(row, c.col)
		if err != nil {
			return err
		}
		if got != c.want {
			return fmt.Errorf("bonus profile %s: expected %q, got %q", c.col, c.want, got)
		}
	}
	return nil
}
