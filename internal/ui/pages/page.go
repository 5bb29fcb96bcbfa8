// Package pages holds the page objects of the depreciation web app.
package pages

import (
	"fmt"

	"github.com/deprtest/e2e/internal/ui/element"
)

// Browser is what page objects need from the driver.
type Browser interface {
	element.PageSource
	Goto(url string) error
}

func locate(b Browser, selector string, opts ...element.Option) *element.Element {
	return element.Locate(b, selector, opts...)
}

func under(parent *element.Element) element.Option {
	return element.Under(parent)
}

func hasText(tag, text string) string {
	return fmt.Sprintf("%s:has-text('%s')", tag, text)
}

// fillIfSet fills el only when value is non-empty.
func fillIfSet(el *element.Element, value string) error {
	if value == "" {
		return nil
	}
	return el.Fill(value)
}

// setChecked toggles a checkbox only when it differs from want.
func setChecked(el *element.Element, want *bool) error {
	if want == nil {
		return nil
	}
	checked, err := el.IsChecked()
	if err != nil {
		return err
	}
	switch {
	case *want && !checked:
		return el.Check()
	case !*want && checked:
		return el.Uncheck()
	}
	return nil
}

// clickFirst clicks the first match of options, if any.
func clickFirst(options *element.Element) error {
	all, err := options.All()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return nil
	}
	return all[0].Click()
}
