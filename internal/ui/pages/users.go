package pages

import (
	"errors"
	"fmt"

	"github.com/deprtest/e2e/internal/datafactory"
	"github.com/deprtest/e2e/internal/models"
	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/ui/element"
)

// UserForm holds the user dialog inputs. Empty strings and a nil IsActive
// leave the corresponding input untouched.
type UserForm struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Phone     string
	IsActive  *bool
}

// UserFormFrom fills every input from u.
func UserFormFrom(u models.User) UserForm {
	active := u.IsActive
	return UserForm{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Password:  u.Password,
		Phone:     u.Phone,
		IsActive:  &active,
	}
}

// UserDialog adds and edits users.
type UserDialog struct {
	Dialog    *element.Element
	Title     *element.Element
	Username  *element.Element
	Email     *element.Element
	FirstName *element.Element
	LastName  *element.Element
	Password  *element.Element
	Phone     *element.Element
	Active    *element.Element
	SaveBtn   *element.Element
	CancelBtn *element.Element
}

func NewUserDialog(b Browser) *UserDialog {
	dialog := locate(b, ".user-dialog")
	return &UserDialog{
		Dialog:    dialog,
		Title:     locate(b, ".dialog-title", under(dialog)),
		Username:  locate(b, "input[name='username']", under(dialog)),
		Email:     locate(b, "input[name='email']", under(dialog)),
		FirstName: locate(b, "input[name='firstName']", under(dialog)),
		LastName:  locate(b, "input[name='lastName']", under(dialog)),
		Password:  locate(b, "input[name='password']", under(dialog)),
		Phone:     locate(b, "input[name='phone']", under(dialog)),
		Active:    locate(b, "input[name='isActive']", under(dialog)),
		SaveBtn:   element.Text(b, "Save", under(dialog)),
		CancelBtn: element.Text(b, "Cancel", under(dialog)),
	}
}

func (d *UserDialog) Fill(form UserForm) error {
	for _, f := range []struct {
		el    *element.Element
		value string
	}{
		{d.Username, form.Username},
		{d.Email, form.Email},
		{d.FirstName, form.FirstName},
		{d.LastName, form.LastName},
		{d.Password, form.Password},
		{d.Phone, form.Phone},
	} {
		if err := fillIfSet(f.el, f.value); err != nil {
			return err
		}
	}
	return setChecked(d.Active, form.IsActive)
}

func (d *UserDialog) Save() error {
	return d.SaveBtn.Click()
}

func (d *UserDialog) Cancel() error {
	return d.CancelBtn.Click()
}

func (d *UserDialog) ShouldBeVisible() error {
	return d.Dialog.ShouldBeVisible()
}

// ShouldHaveEmail checks the email input value.
func (d *UserDialog) ShouldHaveEmail(email string) error {
	return d.Email.ShouldHaveValue(email)
}

// UserPage lists users in a plain table.
type UserPage struct {
	b       Browser
	urls    *routes.URLBuilder
	factory *datafactory.Factory

	Title       *element.Element
	AddUserBtn  *element.Element
	SearchInput *element.Element
	SearchBtn   *element.Element
	Alert       *element.Element
	Grid        *element.Grid
	Dialog      *UserDialog
	Confirm     *element.Element
}

func NewUserPage(b Browser, urls *routes.URLBuilder, factory *datafactory.Factory) *UserPage {
	if factory == nil {
		factory = datafactory.Default()
	}
	return &UserPage{
		b:           b,
		urls:        urls,
		factory:     factory,
		Title:       locate(b, "h1"),
		AddUserBtn:  element.Text(b, "Add User"),
		SearchInput: element.New(b, element.ByPlaceholder, "Search users..."),
		SearchBtn:   locate(b, "button.search-button"),
		Alert:       locate(b, ".alert"),
		Grid:        element.NewGrid(b, ""),
		Dialog:      NewUserDialog(b),
		Confirm:     element.Text(b, "Confirm"),
	}
}

func (p *UserPage) Open() error {
	return p.b.Goto(p.urls.Users())
}

// OpenDetails navigates to one user's detail page.
func (p *UserPage) OpenDetails(id any) error {
	return p.b.Goto(p.urls.Full(routes.UIUserDetails, id))
}

// AddUser creates a user through the dialog. Empty fields of u are generated
// and the user actually submitted is returned.
func (p *UserPage) AddUser(u models.User) (models.User, error) {
	gen := p.factory.User()
	if u.Username == "" {
		u.Username = gen.Username
	}
	if u.Email == "" {
		u.Email = gen.Email
	}
	if u.FirstName == "" {
		u.FirstName = gen.FirstName
	}
	if u.LastName == "" {
		u.LastName = gen.LastName
	}
	if u.Password == "" {
		u.Password = gen.Password
	}
	if u.Phone == "" {
		u.Phone = gen.Phone
	}
	u.IsActive = true

	if err := p.AddUserBtn.Click(); err != nil {
		return u, err
	}
	if err := p.Dialog.ShouldBeVisible(); err != nil {
		return u, err
	}
	if err := p.Dialog.Fill(UserFormFrom(u)); err != nil {
		return u, err
	}
	return u, p.Dialog.Save()
}

func (p *UserPage) Search(term string) error {
	if err := p.SearchInput.Fill(term); err != nil {
		return err
	}
	return p.SearchBtn.Click()
}

// Row finds the table row containing username.
func (p *UserPage) Row(username string) (*element.GridRow, error) {
	return p.Grid.FindRowByText(username)
}

func (p *UserPage) rowAction(username, action string) error {
	row, err := p.Row(username)
	if err != nil {
		return fmt.Errorf("user %q: %w", username, err)
	}
	return element.Text(p.b, action, element.UnderLocator(row.Locator)).Click()
}

// Edit opens the row's edit dialog, applies form and saves.
func (p *UserPage) Edit(username string, form UserForm) error {
	if err := p.rowAction(username, "Edit"); err != nil {
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

// Delete removes the user and confirms.
func (p *UserPage) Delete(username string) error {
	if err := p.rowAction(username, "Delete"); err != nil {
		return err
	}
	return p.Confirm.Click()
}

func (p *UserPage) ShouldSeeUser(username string) error {
	if _, err := p.Row(username); err != nil {
		return fmt.Errorf("user %q not found in the grid: %w", username, err)
	}
	return nil
}

func (p *UserPage) ShouldNotSeeUser(username string) error {
	_, err := p.Row(username)
	switch {
	case err == nil:
		return fmt.Errorf("user %q found in the grid but should not be present", username)
	case errors.Is(err, element.ErrNotFound):
		return nil
	default:
		return err
	}
}
