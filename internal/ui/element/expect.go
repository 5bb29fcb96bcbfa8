package element

import (
	"github.com/playwright-community/playwright-go"
)

// Assertions builds the retrying assertions for a locator. Unit tests swap it
// for an in-memory implementation.
var Assertions = func(loc playwright.Locator) playwright.LocatorAssertions {
	return playwright.NewPlaywrightAssertions(DefaultExpectTimeout).Locator(loc)
}

// PageAssertions is the page level counterpart of Assertions.
var PageAssertions = func(page playwright.Page) playwright.PageAssertions {
	return playwright.NewPlaywrightAssertions(DefaultExpectTimeout).Page(page)
}

func (e *Element) expect() (playwright.LocatorAssertions, error) {
	loc, err := e.Locator()
	if err != nil {
		return nil, err
	}
	return Assertions(loc), nil
}

func (e *Element) check(name string, assert func(playwright.LocatorAssertions) error) error {
	a, err := e.expect()
	if err != nil {
		return err
	}
	if err := assert(a); err != nil {
		return e.fail(name, err)
	}
	return nil
}

// ShouldBeVisible asserts visibility, retrying until the expect timeout.
func (e *Element) ShouldBeVisible() error {
	return e.check("expect visible", func(a playwright.LocatorAssertions) error {
		return a.ToBeVisible()
	})
}

func (e *Element) ShouldBeHidden() error {
	return e.check("expect hidden", func(a playwright.LocatorAssertions) error {
		return a.ToBeHidden()
	})
}

// ShouldBeVisibleIf asserts visible when visible is true and hidden otherwise.
func (e *Element) ShouldBeVisibleIf(visible bool) error {
	if visible {
		return e.ShouldBeVisible()
	}
	return e.ShouldBeHidden()
}

func (e *Element) ShouldBeEnabled() error {
	return e.check("expect enabled", func(a playwright.LocatorAssertions) error {
		return a.ToBeEnabled()
	})
}

func (e *Element) ShouldBeDisabled() error {
	return e.check("expect disabled", func(a playwright.LocatorAssertions) error {
		return a.ToBeDisabled()
	})
}

// ShouldHaveText asserts the full text content.
func (e *Element) ShouldHaveText(text string) error {
	return e.check("expect text "+text+" in", func(a playwright.LocatorAssertions) error {
		return a.ToHaveText(text)
	})
}

// ShouldContainText asserts a substring of the text content.
func (e *Element) ShouldContainText(text string) error {
	return e.check("expect text containing "+text+" in", func(a playwright.LocatorAssertions) error {
		return a.ToContainText(text)
	})
}

func (e *Element) ShouldHaveValue(value string) error {
	return e.check("expect value "+value+" in", func(a playwright.LocatorAssertions) error {
		return a.ToHaveValue(value)
	})
}

func (e *Element) ShouldHaveCount(n int) error {
	return e.check("expect count", func(a playwright.LocatorAssertions) error {
		return a.ToHaveCount(n)
	})
}
