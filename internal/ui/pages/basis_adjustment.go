package pages

import (
	"github.com/deprtest/e2e/internal/datafactory"
	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/ui/element"
)

// DefaultAdjustmentAmount is entered when no amount is given.
const DefaultAdjustmentAmount = "100"

// BasisAdjustmentForm is rendered inline above the grid.
type BasisAdjustmentForm struct {
	FormDialog
	factory *datafactory.Factory

	AmountInput *element.Element
	TypeSelect  *element.Element
	TypeOptions *element.Element
	TagsSelect  *element.Element
	TagOptions  *element.Element
}

func NewBasisAdjustmentForm(b Browser, factory *datafactory.Factory) *BasisAdjustmentForm {
	wrapper := locate(b, "[class='configurations-form-wrapper']")
	form := locate(b, "form", under(wrapper))
	kind := locate(b, "[name='adjustmentType'][role='combobox']", under(form))
	tags := locate(b, ".field.dimensional-tag", under(form))
	buttons := locate(b, "[class='action-buttons']", under(wrapper))
	return &BasisAdjustmentForm{
		FormDialog: FormDialog{
			b:               b,
			Container:       form,
			Title:           locate(b, "p.title", under(wrapper)),
			NameInput:       locate(b, "input[name='name']"),
			ActionButtons:   buttons,
			CreateBtn:       locate(b, hasText("button", "Create"), under(buttons)),
			SaveBtn:         locate(b, hasText("button", "Save"), under(buttons)),
			CancelBtn:       locate(b, hasText("button", "Cancel"), under(buttons)),
			ErrorMessage:    locate(b, ".labeled-error", under(form)),
			ValidationError: locate(b, "div.input:has(input[name='name'])", under(form)),
			errorByClass:    true,
		},
		factory:     factory,
		AmountInput: locate(b, "input[name='amount']", under(form)),
		TypeSelect:  locate(b, "i", under(kind)),
		TypeOptions: locate(b, "[role='option']", under(kind)),
		TagsSelect:  locate(b, "input", under(tags)),
		TagOptions:  locate(b, "[class='result']", under(tags)),
	}
}

// Fill enters name and amount (defaults generated / DefaultAdjustmentAmount),
// then picks the first adjustment type and tag. It returns the name used.
func (f *BasisAdjustmentForm) Fill(name, amount string) (string, error) {
	if name == "" {
		name = f.factory.BasisAdjustmentName()
	}
	if amount == "" {
		amount = DefaultAdjustmentAmount
	}
	if err := f.NameInput.Fill(name); err != nil {
		return name, err
	}
	if err := f.AmountInput.Fill(amount); err != nil {
		return name, err
	}
	if err := f.TypeSelect.Click(); err != nil {
		return name, err
	}
	if err := clickFirst(f.TypeOptions); err != nil {
		return name, err
	}
	if err := f.TagsSelect.Click(); err != nil {
		return name, err
	}
	return name, clickFirst(f.TagOptions)
}

// BasisAdjustmentPage is the basis adjustment configuration screen.
type BasisAdjustmentPage struct {
	*ConfigurationPage
	Form *BasisAdjustmentForm
}

func NewBasisAdjustmentPage(b Browser, urls *routes.URLBuilder, factory *datafactory.Factory) *BasisAdjustmentPage {
	if factory == nil {
		factory = datafactory.Default()
	}
	return &BasisAdjustmentPage{
		ConfigurationPage: newConfigurationPage(b, "Basis Adjustment", urls.DepreciationBasisAdjustment, ".pencil", false),
		Form:              NewBasisAdjustmentForm(b, factory),
	}
}

func (p *BasisAdjustmentPage) ClickCreate() error {
	if err := p.ConfigurationPage.ClickCreate(); err != nil {
		return err
	}
	return p.Form.ShouldBeVisible()
}

func (p *BasisAdjustmentPage) FillForm(name, amount string) (string, error) {
	return p.Form.Fill(name, amount)
}

func (p *BasisAdjustmentPage) SubmitForm() error {
	if err := p.Form.Create(); err != nil {
		return err
	}
	return p.Form.ShouldNotBeVisible()
}

func (p *BasisAdjustmentPage) CancelForm() error {
	if err := p.Form.Cancel(); err != nil {
		return err
	}
	return p.Form.ShouldNotBeVisible()
}

func (p *BasisAdjustmentPage) EditName(name string) (string, error) {
	return p.Form.EditName(name)
}

func (p *BasisAdjustmentPage) SaveEditedForm() error {
	if err := p.Form.Save(); err != nil {
		return err
	}
	return p.Form.ShouldNotBeVisible()
}
