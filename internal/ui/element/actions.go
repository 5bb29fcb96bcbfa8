package element

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

type actionOptions struct {
	timeout float64
	force   bool
}

// ActionOption adjusts a single action.
type ActionOption func(*actionOptions)

// WithTimeout overrides the action timeout in milliseconds.
func WithTimeout(ms float64) ActionOption {
	return func(o *actionOptions) { o.timeout = ms }
}

// WithForce skips actionability checks.
func WithForce() ActionOption {
	return func(o *actionOptions) { o.force = true }
}

func resolveOptions(defaultTimeout float64, opts []ActionOption) actionOptions {
	o := actionOptions{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (e *Element) fail(action string, err error) error {
	return fmt.Errorf("%s %s: %w", action, e, err)
}

func (e *Element) Hover(opts ...ActionOption) error {
	loc, err := e.Locator()
	if err != nil {
		return err
	}
	o := resolveOptions(DefaultActionTimeout, opts)
	if err := loc.Hover(playwright.LocatorHoverOptions{
		Timeout: playwright.Float(o.timeout),
		Force:   playwright.Bool(o.force),
	}); err != nil {
		return e.fail("hover", err)
	}
	return nil
}

func (e *Element) Click(opts ...ActionOption) error {
	loc, err := e.Locator()
	if err != nil {
		return err
	}
	o := resolveOptions(DefaultActionTimeout, opts)
	if err := loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(o.timeout),
		Force:   playwright.Bool(o.force),
	}); err != nil {
		return e.fail("click", err)
	}
	return nil
}

func (e *Element) Fill(value string, opts ...ActionOption) error {
	loc, err := e.Locator()
	if err != nil {
		return err
	}
	o := resolveOptions(DefaultActionTimeout, opts)
	if err := loc.Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(o.timeout),
		Force:   playwright.Bool(o.force),
	}); err != nil {
		return e.fail("fill", err)
	}
	return nil
}

// Press sends a key, e.g. "Enter" or "Control+A".
func (e *Element) Press(key string, opts ...ActionOption) error {
	loc, err := e.Locator()
	if err != nil {
		return err
	}
	o := resolveOptions(DefaultActionTimeout, opts)
	if err := loc.Press(key, playwright.LocatorPressOptions{
		Timeout: playwright.Float(o.timeout),
	}); err != nil {
		return e.fail("press "+key+" on", err)
	}
	return nil
}

func (e *Element) Check(opts ...ActionOption) error {
	loc, err := e.Locator()
	if err != nil {
		return err
	}
	o := resolveOptions(DefaultActionTimeout, opts)
	if err := loc.Check(playwright.LocatorCheckOptions{
		Timeout: playwright.Float(o.timeout),
		Force:   playwright.Bool(o.force),
	}); err != nil {
		return e.fail("check", err)
	}
	return nil
}

func (e *Element) Uncheck(opts ...ActionOption) error {
	loc, err := e.Locator()
	if err != nil {
		return err
	}
	o := resolveOptions(DefaultActionTimeout, opts)
	if err := loc.Uncheck(playwright.LocatorUncheckOptions{
		Timeout: playwright.Float(o.timeout),
		Force:   playwright.Bool(o.force),
	}); err != nil {
		return e.fail("uncheck", err)
	}
	return nil
}

// SelectOption selects <option> elements by value.
func (e *Element) SelectOption(values ...string) error {
	loc, err := e.Locator()
	if err != nil {
		return err
	}
	if _, err := loc.SelectOption(playwright.SelectOptionValues{Values: &values}); err != nil {
		return e.fail("select option in", err)
	}
	return nil
}

// WaitFor waits until the element is visible.
func (e *Element) WaitFor(opts ...ActionOption) error {
	return e.waitFor(playwright.WaitForSelectorStateVisible, opts)
}

// WaitForHidden waits until the element is hidden or detached.
func (e *Element) WaitForHidden(opts ...ActionOption) error {
	return e.waitFor(playwright.WaitForSelectorStateHidden, opts)
}

func (e *Element) waitFor(state *playwright.WaitForSelectorState, opts []ActionOption) error {
	loc, err := e.Locator()
	if err != nil {
		return err
	}
	o := resolveOptions(DefaultWaitTimeout, opts)
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(o.timeout),
	}); err != nil {
		return e.fail("wait for", err)
	}
	return nil
}

// Text returns the text content, "" when the node has none.
func (e *Element) Text() (string, error) {
	loc, err := e.Locator()
	if err != nil {
		return "", err
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", e.fail("read text of", err)
	}
	return text, nil
}

// Value returns the current value of an input.
func (e *Element) Value() (string, error) {
	loc, err := e.Locator()
	if err != nil {
		return "", err
	}
	v, err := loc.InputValue()
	if err != nil {
		return "", e.fail("read value of", err)
	}
	return v, nil
}

// Attribute returns an attribute value.
func (e *Element) Attribute(name string) (string, error) {
	loc, err := e.Locator()
	if err != nil {
		return "", err
	}
	v, err := loc.GetAttribute(name)
	if err != nil {
		return "", e.fail("read "+name+" of", err)
	}
	return v, nil
}

// ClassList splits the class attribute.
func (e *Element) ClassList() ([]string, error) {
	class, err := e.Attribute("class")
	if err != nil {
		return nil, err
	}
	return strings.Fields(class), nil
}

// HasClass reports whether the class attribute contains name.
func (e *Element) HasClass(name string) (bool, error) {
	classes, err := e.ClassList()
	if err != nil {
		return false, err
	}
	for _, c := range classes {
		if c == name {
			return true, nil
		}
	}
	return false, nil
}

func (e *Element) IsVisible() (bool, error) {
	loc, err := e.Locator()
	if err != nil {
		return false, err
	}
	return loc.IsVisible()
}

func (e *Element) IsEnabled() (bool, error) {
	loc, err := e.Locator()
	if err != nil {
		return false, err
	}
	return loc.IsEnabled()
}

func (e *Element) IsChecked() (bool, error) {
	loc, err := e.Locator()
	if err != nil {
		return false, err
	}
	return loc.IsChecked()
}

// Count returns the number of matching nodes.
func (e *Element) Count() (int, error) {
	loc, err := e.Locator()
	if err != nil {
		return 0, err
	}
	return loc.Count()
}

// All resolves every match.
func (e *Element) All() ([]playwright.Locator, error) {
	loc, err := e.Locator()
	if err != nil {
		return nil, err
	}
	return loc.All()
}

// Texts returns the text content of every match.
func (e *Element) Texts() ([]string, error) {
	all, err := e.All()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for _, loc := range all {
		text, err := loc.TextContent()
		if err != nil {
			return nil, e.fail("read text of", err)
		}
		out = append(out, strings.TrimSpace(text))
	}
	return out, nil
}
