package pages

import (
	"fmt"
	"regexp"

	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/ui/element"
)

var loginURL = regexp.MustCompile(`/login/?$`)

// LoginPage is the sign-in form.
type LoginPage struct {
	b   Browser
	url string

	Email       *element.Element
	Password    *element.Element
	LoginButton *element.Element
	ErrorToast  *element.Element
}

func NewLoginPage(b Browser, urls *routes.URLBuilder) *LoginPage {
	return &LoginPage{
		b:           b,
		url:         urls.Login(),
		Email:       locate(b, "input[name='emailAddress']"),
		Password:    locate(b, "input[name='password']"),
		LoginButton: locate(b, "button[id='st-loginButton']"),
		ErrorToast:  locate(b, ".Toastify__toast--error"),
	}
}

func (p *LoginPage) Open() error {
	return p.b.Goto(p.url)
}

// Login submits the form. It does not wait for the outcome.
func (p *LoginPage) Login(login, password string) error {
	if err := p.Email.Fill(login); err != nil {
		return err
	}
	if err := p.Password.Fill(password); err != nil {
		return err
	}
	return p.LoginButton.Click()
}

// ShouldSeeErrorToast checks the error toast carries message.
func (p *LoginPage) ShouldSeeErrorToast(message string) error {
	if err := p.ErrorToast.ShouldBeVisible(); err != nil {
		return err
	}
	span := p.ErrorToast.Chain(locate(p.b, element.HasText("span", message)))
	if err := span.ShouldBeVisible(); err != nil {
		return fmt.Errorf("error toast with message %q not found: %w", message, err)
	}
	return nil
}

// ShouldBeRedirectedFromLogin waits until the URL no longer ends in /login.
func (p *LoginPage) ShouldBeRedirectedFromLogin() error {
	page, err := p.b.Page()
	if err != nil {
		return err
	}
	if err := element.PageAssertions(page).Not().ToHaveURL(loginURL); err != nil {
		return fmt.Errorf("still on the login page: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether the current page is past the login form.
func (p *LoginPage) IsLoggedIn() (bool, error) {
	page, err := p.b.Page()
	if err != nil {
		return false, err
	}
	if url := page.URL(); url == "" || url == "about:blank" || loginURL.MatchString(url) {
		return false, nil
	}
	visible, err := p.Email.IsVisible()
	if err != nil {
		return false, err
	}
	return !visible, nil
}
