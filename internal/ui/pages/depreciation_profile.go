package pages

import (
	"github.com/deprtest/e2e/internal/datafactory"
	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/ui/element"
)

// Depreciation profile grid columns, in display order.
var DepreciationProfileColumns = []string{
	"name", "description", "classLife", "bonusEligible", "midQuarterEligible",
	"amortization", "rateType", "method", "convention", "life", "tags", "actions",
}

// DepreciationProfileDetails are the optional fields of a profile. Empty
// strings and nil flags leave the form untouched.
type DepreciationProfileDetails struct {
	Description        string
	Life               string
	BonusEligible      *bool
	MidQuarterEligible *bool
	Amortization       *bool
}

// DepreciationProfileDialog is the side form for depreciation profiles.
type DepreciationProfileDialog struct {
	FormDialog
	factory *datafactory.Factory

	Description        *element.Element
	ClassLife          *element.Element
	RateType           *element.Element
	Method             *element.Element
	Convention         *element.Element
	BonusEligible      *element.Element
	MidQuarterEligible *element.Element
	Amortization       *element.Element
	Life               *element.Element
	Tags               *element.Element
	Options            *element.Element
}

func NewDepreciationProfileDialog(b Browser, factory *datafactory.Factory) *DepreciationProfileDialog {
	wrapper := locate(b, ".configurations-form-wrapper")
	buttons := locate(b, ".action-buttons", under(wrapper))
	field := func(selector string) *element.Element {
		return locate(b, selector, under(wrapper))
	}
	return &DepreciationProfileDialog{
		FormDialog: FormDialog{
			b:               b,
			Container:       wrapper,
			Title:           field(".title"),
			NameInput:       field("input[name='name']"),
			ActionButtons:   buttons,
			CreateBtn:       locate(b, hasText("button", "Create"), under(buttons)),
			SaveBtn:         locate(b, hasText("button", "Save"), under(buttons)),
			CancelBtn:       locate(b, hasText("button", "Cancel"), under(buttons)),
			ErrorMessage:    field(".labeled-error"),
			ValidationError: field(".input.error"),
		},
		factory:            factory,
		Description:        field("textarea[name='description']"),
		ClassLife:          field("[name='classLife']"),
		RateType:           field("[name='rateType']"),
		Method:             field("[name='method']"),
		Convention:         field("[name='convention']"),
		BonusEligible:      field("input[name='bonusEligible']"),
		MidQuarterEligible: field("input[name='midQuarterEligible']"),
		Amortization:       field("input[name='amortization']"),
		Life:               field("input[name='life']"),
		Tags:               field("[name='tags']"),
		Options:            locate(b, "[role='listbox'] >> [role='option']"),
	}
}

// pick opens a dropdown and selects its first option.
func (d *DepreciationProfileDialog) pick(dropdown *element.Element) error {
	if err := dropdown.Click(); err != nil {
		return err
	}
	return clickFirst(d.Options)
}

// Fill enters name (generated when empty) and picks the first value of every
// required dropdown. It returns the name used.
func (d *DepreciationProfileDialog) Fill(name string) (string, error) {
	if name == "" {
		name = d.factory.DepreciationProfileName()
	}
	if err := d.NameInput.Fill(name); err != nil {
		return name, err
	}
	for _, dropdown := range []*element.Element{d.ClassLife, d.RateType, d.Method, d.Convention} {
		if err := d.pick(dropdown); err != nil {
			return name, err
		}
	}
	return name, nil
}

// FillDetails sets the optional fields.
func (d *DepreciationProfileDialog) FillDetails(details DepreciationProfileDetails) error {
	if err := fillIfSet(d.Description, details.Description); err != nil {
		return err
	}
	if err := fillIfSet(d.Life, details.Life); err != nil {
		return err
	}
	if err := setChecked(d.BonusEligible, details.BonusEligible); err != nil {
		return err
	}
	if err := setChecked(d.MidQuarterEligible, details.MidQuarterEligible); err != nil {
		return err
	}
	return setChecked(d.Amortization, details.Amortization)
}

// SelectTag opens the tags dropdown and picks the first tag.
func (d *DepreciationProfileDialog) SelectTag() error {
	return d.pick(d.Tags)
}

// DepreciationProfilePage is the depreciation profile configuration screen.
// Its row icons only appear on hover.
type DepreciationProfilePage struct {
	*ConfigurationPage
	Dialog *DepreciationProfileDialog
}

func NewDepreciationProfilePage(b Browser, urls *routes.URLBuilder, factory *datafactory.Factory) *DepreciationProfilePage {
	if factory == nil {
		factory = datafactory.Default()
	}
	return &DepreciationProfilePage{
		ConfigurationPage: newConfigurationPage(b, "Depreciation Profile", urls.DepreciationProfile, ".edit", true),
		Dialog:            NewDepreciationProfileDialog(b, factory),
	}
}

func (p *DepreciationProfilePage) ClickCreate() error {
	if err := p.ConfigurationPage.ClickCreate(); err != nil {
		return err
	}
	return p.Dialog.ShouldBeVisible()
}

func (p *DepreciationProfilePage) FillForm(name string) (string, error) {
	return p.Dialog.Fill(name)
}

func (p *DepreciationProfilePage) SubmitForm() error {
	if err := p.Dialog.Create(); err != nil {
		return err
	}
	return p.Dialog.ShouldNotBeVisible()
}

func (p *DepreciationProfilePage) CancelForm() error {
	if err := p.Dialog.Cancel(); err != nil {
		return err
	}
	return p.Dialog.ShouldNotBeVisible()
}

func (p *DepreciationProfilePage) ClickEditIcon(actions *element.Element) error {
	if err := p.ConfigurationPage.ClickEditIcon(actions); err != nil {
		return err
	}
	return p.Dialog.ShouldBeVisible()
}

func (p *DepreciationProfilePage) EditName(name string) (string, error) {
	return p.Dialog.EditName(name)
}

func (p *DepreciationProfilePage) SaveEditedForm() error {
	if err := p.Dialog.Save(); err != nil {
		return err
	}
	return p.Dialog.ShouldNotBeVisible()
}

// RowValues returns every column of row keyed by column id.
func (p *DepreciationProfilePage) RowValues(row *element.Element) (map[string]string, error) {
	values := make(map[string]string, len(DepreciationProfileColumns))
	for _, col := range DepreciationProfileColumns {
		if col == ColActions {
			continue
		}
		v, err := p.Value(row, col)
		if err != nil {
			return nil, err
		}
		values[col] = v
	}
	return values, nil
}
