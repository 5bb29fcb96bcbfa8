package uitest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Assertions evaluates locator expectations once against the fake DOM.
// Assign it to element.Assertions in tests.
func Assertions(loc playwright.Locator) playwright.LocatorAssertions {
	return &locatorAssertions{loc: loc.(*Locator)}
}

// PageAssertions evaluates page expectations once. Assign it to
// element.PageAssertions in tests.
func PageAssertions(page playwright.Page) playwright.PageAssertions {
	return &pageAssertions{page: page.(*Page)}
}

type locatorAssertions struct {
	playwright.LocatorAssertions

	loc   *Locator
	isNot bool
}

func (a *locatorAssertions) result(ok bool, format string, args ...any) error {
	if ok != a.isNot {
		a.loc.page.Rec.add("expect %s", a.loc.Path)
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	if a.isNot {
		msg = "not " + msg
	}
	return fmt.Errorf("expected %s to be %s", a.loc.Path, msg)
}

func (a *locatorAssertions) Not() playwright.LocatorAssertions {
	return &locatorAssertions{loc: a.loc, isNot: !a.isNot}
}

func (a *locatorAssertions) ToBeVisible(options ...playwright.LocatorAssertionsToBeVisibleOptions) error {
	visible, err := a.loc.IsVisible()
	if err != nil {
		return err
	}
	return a.result(visible, "visible")
}

func (a *locatorAssertions) ToBeHidden(options ...playwright.LocatorAssertionsToBeHiddenOptions) error {
	visible, err := a.loc.IsVisible()
	if err != nil {
		return err
	}
	return a.result(!visible, "hidden")
}

func (a *locatorAssertions) ToBeEnabled(options ...playwright.LocatorAssertionsToBeEnabledOptions) error {
	enabled, err := a.loc.IsEnabled()
	if err != nil {
		return err
	}
	return a.result(enabled, "enabled")
}

func (a *locatorAssertions) ToBeDisabled(options ...playwright.LocatorAssertionsToBeDisabledOptions) error {
	enabled, err := a.loc.IsEnabled()
	if err != nil {
		return err
	}
	return a.result(!enabled, "disabled")
}

func (a *locatorAssertions) ToHaveText(expected interface{}, options ...playwright.LocatorAssertionsToHaveTextOptions) error {
	text, err := a.loc.TextContent()
	if err != nil {
		return err
	}
	return a.result(match(expected, strings.TrimSpace(text), true), "text %v, got %q", expected, text)
}

func (a *locatorAssertions) ToContainText(expected interface{}, options ...playwright.LocatorAssertionsToContainTextOptions) error {
	text, err := a.loc.TextContent()
	if err != nil {
		return err
	}
	return a.result(match(expected, text, false), "containing %v, got %q", expected, text)
}

func (a *locatorAssertions) ToHaveValue(value interface{}, options ...playwright.LocatorAssertionsToHaveValueOptions) error {
	got, err := a.loc.InputValue()
	if err != nil {
		return err
	}
	return a.result(match(value, got, true), "value %v, got %q", value, got)
}

func (a *locatorAssertions) ToHaveCount(count int, options ...playwright.LocatorAssertionsToHaveCountOptions) error {
	got, err := a.loc.Count()
	if err != nil {
		return err
	}
	return a.result(got == count, "count %d, got %d", count, got)
}

type pageAssertions struct {
	playwright.PageAssertions

	page  *Page
	isNot bool
}

func (a *pageAssertions) Not() playwright.PageAssertions {
	return &pageAssertions{page: a.page, isNot: !a.isNot}
}

func (a *pageAssertions) ToHaveURL(urlOrRegExp interface{}, options ...playwright.PageAssertionsToHaveURLOptions) error {
	url := a.page.URL()
	if match(urlOrRegExp, url, true) != a.isNot {
		return nil
	}
	if a.isNot {
		return fmt.Errorf("expected URL not to match %v, got %q", urlOrRegExp, url)
	}
	return fmt.Errorf("expected URL to match %v, got %q", urlOrRegExp, url)
}

func match(expected interface{}, actual string, full bool) bool {
	switch want := expected.(type) {
	case *regexp.Regexp:
		return want.MatchString(actual)
	case string:
		if full {
			return want == actual
		}
		return strings.Contains(actual, want)
	default:
		return fmt.Sprint(want) == actual
	}
}
