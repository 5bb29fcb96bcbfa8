package pages

import (
	"github.com/deprtest/e2e/internal/datafactory"
	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/ui/element"
)

// AssetClassDialog is the side form for creating and editing asset classes.
type AssetClassDialog struct {
	FormDialog
	factory *datafactory.Factory

	Wrapper        *element.Element
	ProfileSelect  *element.Element
	ProfileOptions *element.Element
	TagsSelect     *element.Element
	TagOptions     *element.Element
}

func NewAssetClassDialog(b Browser, factory *datafactory.Factory) *AssetClassDialog {
	wrapper := locate(b, "[class='configurations-form-wrapper']")
	form := locate(b, "form", under(wrapper))
	profile := locate(b, "[name='deprProfileId'][role='combobox']", under(form))
	tags := locate(b, ".field.dimensional-tag", under(form))
	buttons := locate(b, "[class='action-buttons']", under(wrapper))
	return &AssetClassDialog{
		FormDialog: FormDialog{
			b:               b,
			Container:       form,
			Title:           locate(b, "p.title", under(wrapper)),
			NameInput:       locate(b, "input[name='name']", under(form)),
			ActionButtons:   buttons,
			CreateBtn:       locate(b, hasText("button", "Create"), under(buttons)),
			SaveBtn:         locate(b, hasText("button", "Save"), under(buttons)),
			CancelBtn:       locate(b, hasText("button", "Cancel"), under(buttons)),
			ErrorMessage:    locate(b, ".labeled-error", under(form)),
			ValidationError: locate(b, "div.input:has(input[name='name'])", under(form)),
			errorByClass:    true,
		},
		factory:        factory,
		Wrapper:        wrapper,
		ProfileSelect:  locate(b, "i", under(profile)),
		ProfileOptions: locate(b, "[role='option']", under(profile)),
		TagsSelect:     locate(b, "input", under(tags)),
		TagOptions:     locate(b, "[class='result']", under(tags)),
	}
}

// Fill enters name (generated when empty), then picks the first
// depreciation profile and the first tag. It returns the name used.
func (d *AssetClassDialog) Fill(name string) (string, error) {
	if name == "" {
		name = d.factory.AssetClassName()
	}
	if err := d.NameInput.Fill(name); err != nil {
		return name, err
	}
	if err := d.ProfileSelect.Click(); err != nil {
		return name, err
	}
	if err := clickFirst(d.ProfileOptions); err != nil {
		return name, err
	}
	if err := d.TagsSelect.Click(); err != nil {
		return name, err
	}
	return name, clickFirst(d.TagOptions)
}

// AssetClassPage is the asset class configuration screen.
type AssetClassPage struct {
	*ConfigurationPage
	Dialog *AssetClassDialog
}

func NewAssetClassPage(b Browser, urls *routes.URLBuilder, factory *datafactory.Factory) *AssetClassPage {
	if factory == nil {
		factory = datafactory.Default()
	}
	return &AssetClassPage{
		ConfigurationPage: newConfigurationPage(b, "Asset Class", urls.DepreciationAssetClass, ".pencil", false),
		Dialog:            NewAssetClassDialog(b, factory),
	}
}

// ClickCreate opens the create form.
func (p *AssetClassPage) ClickCreate() error {
	if err := p.ConfigurationPage.ClickCreate(); err != nil {
		return err
	}
	return p.Dialog.ShouldBeVisible()
}

func (p *AssetClassPage) FillForm(name string) (string, error) {
	return p.Dialog.Fill(name)
}

// SubmitForm creates the asset class and waits for the form to close.
func (p *AssetClassPage) SubmitForm() error {
	if err := p.Dialog.Create(); err != nil {
		return err
	}
	return p.Dialog.ShouldNotBeVisible()
}

func (p *AssetClassPage) CancelForm() error {
	if err := p.Dialog.Cancel(); err != nil {
		return err
	}
	return p.Dialog.ShouldNotBeVisible()
}

// ClickEditIcon opens the edit form of the row owning actions.
func (p *AssetClassPage) ClickEditIcon(actions *element.Element) error {
	if err := p.ConfigurationPage.ClickEditIcon(actions); err != nil {
		return err
	}
	return p.Dialog.ShouldBeVisible()
}

func (p *AssetClassPage) EditName(name string) (string, error) {
	return p.Dialog.EditName(name)
}

func (p *AssetClassPage) SaveEditedForm() error {
	if err := p.Dialog.Save(); err != nil {
		return err
	}
	return p.Dialog.ShouldNotBeVisible()
}
