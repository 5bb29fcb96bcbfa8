// Package uitest provides in-memory stand-ins for the playwright browser,
// context, page and locator so page objects can be unit tested without a
// browser. Locators resolve to a selector path; state is looked up by path.
package uitest

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Recorder collects every action performed through the fakes.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *Recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the recorded actions.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Reset forgets recorded actions.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// DOM is the fake document state shared by every page of a browser.
type DOM struct {
	mu       sync.Mutex
	texts    map[string]string
	values   map[string]string
	attrs    map[string]string
	counts   map[string]int
	hidden   map[string]bool
	disabled map[string]bool
	errs     map[string]error
}

func newDOM() *DOM {
	return &DOM{
		texts:    map[string]string{},
		values:   map[string]string{},
		attrs:    map[string]string{},
		counts:   map[string]int{},
		hidden:   map[string]bool{},
		disabled: map[string]bool{},
		errs:     map[string]error{},
	}
}

// SetText sets the text content at path.
func (d *DOM) SetText(path, text string) *DOM {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[path] = text
	return d
}

// SetValue sets the input value at path.
func (d *DOM) SetValue(path, value string) *DOM {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[path] = value
	return d
}

// SetAttr sets attribute name at path.
func (d *DOM) SetAttr(path, name, value string) *DOM {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attrs[path+"@"+name] = value
	return d
}

// SetCount sets how many elements match path. Unset paths count as 1.
func (d *DOM) SetCount(path string, n int) *DOM {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts[path] = n
	return d
}

// Hide marks path as not visible.
func (d *DOM) Hide(path string) *DOM {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hidden[path] = true
	return d
}

// Disable marks path as disabled.
func (d *DOM) Disable(path string) *DOM {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disabled[path] = true
	return d
}

// Fail makes every action on path return err.
func (d *DOM) Fail(path string, err error) *DOM {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs[path] = err
	return d
}

func (d *DOM) get(path string) (text, value string, count int, hidden, disabled bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	count, ok := d.counts[path]
	if !ok {
		count = 1
	}
	return d.texts[path], d.values[path], count, d.hidden[path], d.disabled[path], d.errs[path]
}

func (d *DOM) attr(path, name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.attrs[path+"@"+name]
	return v, ok
}

func (d *DOM) fill(path, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[path] = value
}

// Browser is a fake playwright.Browser.
type Browser struct {
	playwright.Browser

	Rec *Recorder
	DOM *DOM

	mu              sync.Mutex
	OpenedContexts  []*Context
	LastOptions     playwright.BrowserNewContextOptions
	NewContextError error
	Closed          bool
}

// NewBrowser returns a fake browser with empty state.
func NewBrowser() *Browser {
	return &Browser{Rec: &Recorder{}, DOM: newDOM()}
}

func (b *Browser) NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.NewContextError != nil {
		return nil, b.NewContextError
	}
	if len(options) > 0 {
		b.LastOptions = options[0]
	}
	ctx := &Context{browser: b}
	b.OpenedContexts = append(b.OpenedContexts, ctx)
	return ctx, nil
}

func (b *Browser) Close(options ...playwright.BrowserCloseOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Closed = true
	return nil
}

// Context is a fake playwright.BrowserContext.
type Context struct {
	playwright.BrowserContext

	browser *Browser

	mu             sync.Mutex
	OpenedPages    []*Page
	DefaultTimeout float64
	Closed         bool
	StatePath      string
}

func (c *Context) NewPage() (playwright.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := &Page{ctx: c, Rec: c.browser.Rec, DOM: c.browser.DOM}
	c.OpenedPages = append(c.OpenedPages, p)
	return p, nil
}

func (c *Context) SetDefaultTimeout(timeout float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DefaultTimeout = timeout
}

func (c *Context) Close(options ...playwright.BrowserContextCloseOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Closed = true
	return nil
}

func (c *Context) StorageState(path ...string) (*playwright.StorageState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(path) > 0 {
		c.StatePath = path[0]
		if err := os.WriteFile(path[0], []byte(`{"cookies":[],"origins":[]}`), 0600); err != nil {
			return nil, err
		}
	}
	return &playwright.StorageState{}, nil
}

// Page is a fake playwright.Page.
type Page struct {
	playwright.Page

	Rec *Recorder
	DOM *DOM
	ctx *Context

	mu      sync.Mutex
	url     string
	GotoErr error
}

// NewPage returns a standalone fake page with its own state.
func NewPage() *Page {
	b := NewBrowser()
	ctx, _ := b.NewContext()
	p, _ := ctx.NewPage()
	return p.(*Page)
}

func (p *Page) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.Rec.add("goto %s", url)
	if p.GotoErr != nil {
		return nil, p.GotoErr
	}
	p.mu.Lock()
	p.url = url
	p.mu.Unlock()
	return nil, nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) Context() playwright.BrowserContext {
	return p.ctx
}

func (p *Page) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	data := []byte("\x89PNG")
	if len(options) > 0 && options[0].Path != nil {
		p.Rec.add("screenshot %s", *options[0].Path)
		if err := os.WriteFile(*options[0].Path, data, 0600); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (p *Page) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	p.Rec.add("wait load state")
	return nil
}

func (p *Page) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	return p.locator(selector)
}

func (p *Page) GetByText(text interface{}, options ...playwright.PageGetByTextOptions) playwright.Locator {
	return p.locator(by("text", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (p *Page) GetByLabel(text interface{}, options ...playwright.PageGetByLabelOptions) playwright.Locator {
	return p.locator(by("label", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (p *Page) GetByTitle(text interface{}, options ...playwright.PageGetByTitleOptions) playwright.Locator {
	return p.locator(by("title", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (p *Page) GetByAltText(text interface{}, options ...playwright.PageGetByAltTextOptions) playwright.Locator {
	return p.locator(by("alt", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (p *Page) GetByPlaceholder(text interface{}, options ...playwright.PageGetByPlaceholderOptions) playwright.Locator {
	return p.locator(by("placeholder", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (p *Page) GetByTestId(testId interface{}) playwright.Locator {
	return p.locator(by("testid", testId, true))
}

func (p *Page) locator(path string) *Locator {
	return &Locator{page: p, Path: path}
}

func by(kind string, text interface{}, exact bool) string {
	if exact {
		return fmt.Sprintf("%s=%q", kind, fmt.Sprint(text))
	}
	return fmt.Sprintf("%s=%v", kind, text)
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

// pwLocator aliases playwright.Locator so it can be embedded without the
// embedded field name clashing with the Locator method.
type pwLocator = playwright.Locator

// Locator is a fake playwright.Locator identified by its selector path.
type Locator struct {
	pwLocator

	page *Page
	Path string
}

func (l *Locator) child(path string) *Locator {
	return &Locator{page: l.page, Path: l.Path + " >> " + path}
}

func (l *Locator) Locator(selectorOrLocator interface{}, options ...playwright.LocatorLocatorOptions) playwright.Locator {
	if other, ok := selectorOrLocator.(*Locator); ok {
		return l.child(other.Path)
	}
	return l.child(fmt.Sprint(selectorOrLocator))
}

func (l *Locator) GetByText(text interface{}, options ...playwright.LocatorGetByTextOptions) playwright.Locator {
	return l.child(by("text", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (l *Locator) GetByLabel(text interface{}, options ...playwright.LocatorGetByLabelOptions) playwright.Locator {
	return l.child(by("label", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (l *Locator) GetByTitle(text interface{}, options ...playwright.LocatorGetByTitleOptions) playwright.Locator {
	return l.child(by("title", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (l *Locator) GetByAltText(text interface{}, options ...playwright.LocatorGetByAltTextOptions) playwright.Locator {
	return l.child(by("alt", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (l *Locator) GetByPlaceholder(text interface{}, options ...playwright.LocatorGetByPlaceholderOptions) playwright.Locator {
	return l.child(by("placeholder", text, len(options) > 0 && isTrue(options[0].Exact)))
}

func (l *Locator) GetByTestId(testId interface{}) playwright.Locator {
	return l.child(by("testid", testId, true))
}

func (l *Locator) Nth(index int) playwright.Locator {
	return &Locator{page: l.page, Path: fmt.Sprintf("%s >> nth=%d", l.Path, index)}
}

func (l *Locator) First() playwright.Locator {
	return l.Nth(0)
}

func (l *Locator) Count() (int, error) {
	_, _, count, _, _, err := l.page.DOM.get(l.Path)
	return count, err
}

func (l *Locator) All() ([]playwright.Locator, error) {
	n, err := l.Count()
	if err != nil {
		return nil, err
	}
	out := make([]playwright.Locator, n)
	for i := range out {
		out[i] = l.Nth(i)
	}
	return out, nil
}

func (l *Locator) act(verb string) error {
	l.page.Rec.add("%s %s", verb, l.Path)
	_, _, _, _, _, err := l.page.DOM.get(l.Path)
	return err
}

func (l *Locator) Click(options ...playwright.LocatorClickOptions) error {
	verb := "click"
	if len(options) > 0 && isTrue(options[0].Force) {
		verb = "force-click"
	}
	return l.act(verb)
}

func (l *Locator) Hover(options ...playwright.LocatorHoverOptions) error {
	return l.act("hover")
}

func (l *Locator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	if err := l.act("fill " + value + " into"); err != nil {
		return err
	}
	l.page.DOM.fill(l.Path, value)
	return nil
}

func (l *Locator) Press(key string, options ...playwright.LocatorPressOptions) error {
	return l.act("press " + key + " on")
}

func (l *Locator) Check(options ...playwright.LocatorCheckOptions) error {
	return l.act("check")
}

func (l *Locator) Uncheck(options ...playwright.LocatorUncheckOptions) error {
	return l.act("uncheck")
}

func (l *Locator) SelectOption(values playwright.SelectOptionValues, options ...playwright.LocatorSelectOptionOptions) ([]string, error) {
	var selected []string
	if values.Values != nil {
		selected = *values.Values
	}
	if values.Labels != nil {
		selected = append(selected, *values.Labels...)
	}
	return selected, l.act("select " + strings.Join(selected, ",") + " in")
}

func (l *Locator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	state := "visible"
	if len(options) > 0 && options[0].State != nil {
		state = string(*options[0].State)
	}
	return l.act("wait " + state + " for")
}

func (l *Locator) TextContent(options ...playwright.LocatorTextContentOptions) (string, error) {
	text, _, _, _, _, err := l.page.DOM.get(l.Path)
	return text, err
}

func (l *Locator) InnerText(options ...playwright.LocatorInnerTextOptions) (string, error) {
	return l.TextContent()
}

func (l *Locator) InputValue(options ...playwright.LocatorInputValueOptions) (string, error) {
	_, value, _, _, _, err := l.page.DOM.get(l.Path)
	return value, err
}

func (l *Locator) GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error) {
	v, _ := l.page.DOM.attr(l.Path, name)
	return v, nil
}

func (l *Locator) IsVisible(options ...playwright.LocatorIsVisibleOptions) (bool, error) {
	_, _, count, hidden, _, err := l.page.DOM.get(l.Path)
	return count > 0 && !hidden, err
}

func (l *Locator) IsEnabled(options ...playwright.LocatorIsEnabledOptions) (bool, error) {
	_, _, _, _, disabled, err := l.page.DOM.get(l.Path)
	return !disabled, err
}

func (l *Locator) IsChecked(options ...playwright.LocatorIsCheckedOptions) (bool, error) {
	v, _ := l.page.DOM.attr(l.Path, "checked")
	return v == "true", nil
}

// SetURL sets the page URL without recording a navigation.
func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}
