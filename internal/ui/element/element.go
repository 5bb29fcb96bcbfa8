// Package element wraps playwright locators in lazily resolved, reusable
// element descriptions used by the page objects.
package element

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// By selects which playwright lookup resolves an element.
type By int

const (
	ByLocator By = iota
	ByText
	ByLabel
	ByTitle
	ByAltText
	ByPlaceholder
	ByTestID
)

func (b By) String() string {
	switch b {
	case ByLocator:
		return "locator"
	case ByText:
		return "text"
	case ByLabel:
		return "label"
	case ByTitle:
		return "title"
	case ByAltText:
		return "alt text"
	case ByPlaceholder:
		return "placeholder"
	case ByTestID:
		return "test id"
	default:
		return fmt.Sprintf("By(%d)", int(b))
	}
}

// Default action timeouts in milliseconds.
const (
	DefaultActionTimeout = 2000
	DefaultWaitTimeout   = 5000
	DefaultExpectTimeout = 5000
)

// ErrNotFound is returned when a lookup over a list matches nothing.
var ErrNotFound = errors.New("element not found")

// PageSource hands out the page elements resolve against.
type PageSource interface {
	Page() (playwright.Page, error)
}

// Element describes how to find a node; nothing is resolved until an action
// or expectation runs.
type Element struct {
	src          PageSource
	by           By
	selector     string
	args         map[string]string
	parent       *Element
	parentLoc    playwright.Locator
	ignoreParent bool
	exact        bool
	nth          int
}

// Option configures an Element.
type Option func(*Element)

// Under resolves the element inside parent.
func Under(parent *Element) Option {
	return func(e *Element) { e.parent = parent }
}

// UnderLocator resolves the element inside an already resolved locator.
func UnderLocator(loc playwright.Locator) Option {
	return func(e *Element) { e.parentLoc = loc }
}

// IgnoreParent resolves against the page even when a parent is set.
func IgnoreParent() Option {
	return func(e *Element) { e.ignoreParent = true }
}

// Inexact turns off exact text matching for the text based strategies.
func Inexact() Option {
	return func(e *Element) { e.exact = false }
}

// New creates a new element. Text based strategies match exactly by default.
func New(src PageSource, by By, selector string, opts ...Option) *Element {
	e := &Element{src: src, by: by, selector: selector, exact: true, nth: -1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Locate is shorthand for New(src, ByLocator, selector, opts...).
func Locate(src PageSource, selector string, opts ...Option) *Element {
	return New(src, ByLocator, selector, opts...)
}

// Text is shorthand for New(src, ByText, text, opts...).
func Text(src PageSource, text string, opts ...Option) *Element {
	return New(src, ByText, text, opts...)
}

func (e *Element) clone() *Element {
	c := *e
	if e.args != nil {
		c.args = make(map[string]string, len(e.args))
		for k, v := range e.args {
			c.args[k] = v
		}
	}
	return &c
}

// With returns a copy whose {name} placeholders are filled from args.
func (e *Element) With(args map[string]string) *Element {
	c := e.clone()
	if c.args == nil {
		c.args = make(map[string]string, len(args))
	}
	for k, v := range args {
		c.args[k] = v
	}
	return c
}

// Arg is With for a single placeholder.
func (e *Element) Arg(name, value string) *Element {
	return e.With(map[string]string{name: value})
}

// Chain returns a copy of child resolved inside e.
func (e *Element) Chain(child *Element) *Element {
	c := child.clone()
	c.parent = e
	c.parentLoc = nil
	return c
}

// Nth returns a copy narrowed to the i-th match.
func (e *Element) Nth(i int) *Element {
	c := e.clone()
	c.nth = i
	return c
}

var cssStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// HasText appends a :has-text("...") pseudo-class to selector. Only the
// quote and backslash are escaped; everything else reaches the selector
// engine as written.
func HasText(selector, text string) string {
	return selector + `:has-text("` + cssStringEscaper.Replace(text) + `")`
}

var placeholder = regexp.MustCompile(`\{[A-Za-z_][A-Za-z0-9_]*\}`)

// Selector returns the selector with placeholders substituted.
func (e *Element) Selector() string {
	if len(e.args) == 0 {
		return e.selector
	}
	return placeholder.ReplaceAllStringFunc(e.selector, func(m string) string {
		if v, ok := e.args[strings.Trim(m, "{}")]; ok {
			return v
		}
		return m
	})
}

func (e *Element) String() string {
	s := fmt.Sprintf("%s %q", e.by, e.Selector())
	if e.parent != nil && !e.ignoreParent {
		s = e.parent.String() + " > " + s
	}
	return s
}

type scope interface {
	locator(by By, selector string, exact bool) playwright.Locator
}

type pageScope struct{ p playwright.Page }

func (s pageScope) locator(by By, selector string, exact bool) playwright.Locator {
	switch by {
	case ByText:
		return s.p.GetByText(selector, playwright.PageGetByTextOptions{Exact: playwright.Bool(exact)})
	case ByLabel:
		return s.p.GetByLabel(selector, playwright.PageGetByLabelOptions{Exact: playwright.Bool(exact)})
	case ByTitle:
		return s.p.GetByTitle(selector, playwright.PageGetByTitleOptions{Exact: playwright.Bool(exact)})
	case ByAltText:
		return s.p.GetByAltText(selector, playwright.PageGetByAltTextOptions{Exact: playwright.Bool(exact)})
	case ByPlaceholder:
		return s.p.GetByPlaceholder(selector, playwright.PageGetByPlaceholderOptions{Exact: playwright.Bool(exact)})
	case ByTestID:
		return s.p.GetByTestId(selector)
	default:
		return s.p.Locator(selector)
	}
}

type locatorScope struct{ l playwright.Locator }

func (s locatorScope) locator(by By, selector string, exact bool) playwright.Locator {
	switch by {
	case ByText:
		return s.l.GetByText(selector, playwright.LocatorGetByTextOptions{Exact: playwright.Bool(exact)})
	case ByLabel:
		return s.l.GetByLabel(selector, playwright.LocatorGetByLabelOptions{Exact: playwright.Bool(exact)})
	case ByTitle:
		return s.l.GetByTitle(selector, playwright.LocatorGetByTitleOptions{Exact: playwright.Bool(exact)})
	case ByAltText:
		return s.l.GetByAltText(selector, playwright.LocatorGetByAltTextOptions{Exact: playwright.Bool(exact)})
	case ByPlaceholder:
		return s.l.GetByPlaceholder(selector, playwright.LocatorGetByPlaceholderOptions{Exact: playwright.Bool(exact)})
	case ByTestID:
		return s.l.GetByTestId(selector)
	default:
		return s.l.Locator(selector)
	}
}

// Locator resolves the element, walking parents up to the current page.
func (e *Element) Locator() (playwright.Locator, error) {
	var sc scope
	switch {
	case e.ignoreParent || (e.parent == nil && e.parentLoc == nil):
		if e.src == nil {
			return nil, fmt.Errorf("element %s has no page source", e)
		}
		page, err := e.src.Page()
		if err != nil {
			return nil, err
		}
		sc = pageScope{page}
	case e.parentLoc != nil:
		sc = locatorScope{e.parentLoc}
	default:
		parent, err := e.parent.Locator()
		if err != nil {
			return nil, err
		}
		sc = locatorScope{parent}
	}

	loc := sc.locator(e.by, e.Selector(), e.exact)
	if e.nth >= 0 {
		loc = loc.Nth(e.nth)
	}
	return loc, nil
}
