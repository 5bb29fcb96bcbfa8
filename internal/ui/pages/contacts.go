package pages

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/deprtest/e2e/internal/datafactory"
	"github.com/deprtest/e2e/internal/models"
	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/ui/element"
)

// ContactForm holds the contact dialog inputs; empty fields are left untouched.
type ContactForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	Notes     string
	// UserID is the value of the owner <option>.
	UserID string
}

// ContactFormFrom fills every input from c. A zero UserID selects no owner.
func ContactFormFrom(c models.Contact) ContactForm {
	form := ContactForm{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
	}
	if c.UserID != 0 {
		form.UserID = strconv.FormatInt(c.UserID, 10)
	}
	return form
}

type ContactDialog struct {
	Dialog     *element.Element
	Title      *element.Element
	FirstName  *element.Element
	LastName   *element.Element
	Email      *element.Element
	Phone      *element.Element
	Address    *element.Element
	Notes      *element.Element
	UserSelect *element.Element
	SaveBtn    *element.Element
	CancelBtn  *element.Element
}

func NewContactDialog(b Browser) *ContactDialog {
	dialog := locate(b, ".contact-dialog")
	return &ContactDialog{
		Dialog:     dialog,
		Title:      locate(b, ".dialog-title", under(dialog)),
		FirstName:  locate(b, "input[name='firstName']", under(dialog)),
		LastName:   locate(b, "input[name='lastName']", under(dialog)),
		Email:      locate(b, "input[name='email']", under(dialog)),
		Phone:      locate(b, "input[name='phone']", under(dialog)),
		Address:    locate(b, "textarea[name='address']", under(dialog)),
		Notes:      locate(b, "textarea[name='notes']", under(dialog)),
		UserSelect: locate(b, "select[name='userId']", under(dialog)),
		SaveBtn:    element.Text(b, "Save", under(dialog)),
		CancelBtn:  element.Text(b, "Cancel", under(dialog)),
	}
}

func (d *ContactDialog) Fill(form ContactForm) error {
	for _, f := range []struct {
		el    *element.Element
		value string
	}{
		{d.FirstName, form.FirstName},
		{d.LastName, form.LastName},
		{d.Email, form.Email},
		{d.Phone, form.Phone},
		{d.Address, form.Address},
		{d.Notes, form.Notes},
	} {
		if err := fillIfSet(f.el, f.value); err != nil {
			return err
		}
	}
	if form.UserID != "" {
		return d.UserSelect.SelectOption(form.UserID)
	}
	return nil
}

func (d *ContactDialog) Save() error {
	return d.SaveBtn.Click()
}

func (d *ContactDialog) Cancel() error {
	return d.CancelBtn.Click()
}

func (d *ContactDialog) ShouldBeVisible() error {
	return d.Dialog.ShouldBeVisible()
}

// ContactPage lists contacts in a plain table.
type ContactPage struct {
	b       Browser
	urls    *routes.URLBuilder
	factory *datafactory.Factory

	Title         *element.Element
	AddContactBtn *element.Element
	SearchInput   *element.Element
	SearchBtn     *element.Element
	Alert         *element.Element
	Grid          *element.Grid
	Dialog        *ContactDialog
	Confirm       *element.Element
}

func NewContactPage(b Browser, urls *routes.URLBuilder, factory *datafactory.Factory) *ContactPage {
	if factory == nil {
		factory = datafactory.Default()
	}
	return &ContactPage{
		b:             b,
		urls:          urls,
		factory:       factory,
		Title:         locate(b, "h1"),
		AddContactBtn: element.Text(b, "Add Contact"),
		SearchInput:   element.New(b, element.ByPlaceholder, "Search contacts..."),
		SearchBtn:     locate(b, "button.search-button"),
		Alert:         locate(b, ".alert"),
		Grid:          element.NewGrid(b, ""),
		Dialog:        NewContactDialog(b),
		Confirm:       element.Text(b, "Confirm"),
	}
}

func (p *ContactPage) Open() error {
	return p.b.Goto(p.urls.Contacts())
}

// OpenDetails navigates to one contact's detail page.
func (p *ContactPage) OpenDetails(id any) error {
	return p.b.Goto(p.urls.Full(routes.UIContactDetails, id))
}

// AddContact creates a contact through the dialog. Empty fields of c other
// than the owner are generated; the submitted contact is returned.
func (p *ContactPage) AddContact(c models.Contact) (models.Contact, error) {
	gen := p.factory.Contact()
	if c.FirstName == "" {
		c.FirstName = gen.FirstName
	}
	if c.LastName == "" {
		c.LastName = gen.LastName
	}
	if c.Email == "" {
		c.Email = gen.Email
	}
	if c.Phone == "" {
		c.Phone = gen.Phone
	}
	if c.Address == "" {
		c.Address = gen.Address
	}
	if c.Notes == "" {
		c.Notes = gen.Notes
	}

	if err := p.AddContactBtn.Click(); err != nil {
		return c, err
	}
	if err := p.Dialog.ShouldBeVisible(); err != nil {
		return c, err
	}
	if err := p.Dialog.Fill(ContactFormFrom(c)); err != nil {
		return c, err
	}
	return c, p.Dialog.Save()
}

func (p *ContactPage) Search(term string) error {
	if err := p.SearchInput.Fill(term); err != nil {
		return err
	}
	return p.SearchBtn.Click()
}

// Row finds the table row containing name.
func (p *ContactPage) Row(name string) (*element.GridRow, error) {
	return p.Grid.FindRowByText(name)
}

func (p *ContactPage) rowAction(name, action string) error {
	row, err := p.Row(name)
	if err != nil {
		return fmt.Errorf("contact %q: %w", name, err)
	}
	return element.Text(p.b, action, element.UnderLocator(row.Locator)).Click()
}

func (p *ContactPage) Edit(name string, form ContactForm) error {
	if err := p.rowAction(name, "Edit"); err != nil {
		return err
	}
	if err := p.Dialog.ShouldBeVisible(); err != nil {
		return err
	}
	if err := p.Dialog.Fill(form); err != nil {
		return err
	}
	return p.Dialog.Save()
}

func (p *ContactPage) Delete(name string) error {
	if err := p.rowAction(name, "Delete"); err != nil {
		return err
	}
	return p.Confirm.Click()
}

// ViewDetails clicks the row's View button.
func (p *ContactPage) ViewDetails(name string) error {
	return p.rowAction(name, "View")
}

func (p *ContactPage) ShouldSeeContact(name string) error {
	if _, err := p.Row(name); err != nil {
		return fmt.Errorf("contact %q not found in the grid: %w", name, err)
	}
	return nil
}

func (p *ContactPage) ShouldNotSeeContact(name string) error {
	_, err := p.Row(name)
	switch {
	case err == nil:
		return fmt.Errorf("contact %q found in the grid but should not be present", name)
	case errors.Is(err, element.ErrNotFound):
		return nil
	default:
		return err
	}
}
