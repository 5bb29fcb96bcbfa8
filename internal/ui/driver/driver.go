// Package driver owns the playwright browser and the incognito workspaces
// (browser contexts) the page objects run in.
package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/deprtest/e2e/internal/config"
)

// DefaultAuthStatePath is where SaveAuthState writes when no path is given.
const DefaultAuthStatePath = ".auth/auth_state.json"

const contextPrefix = "context_"

var (
	// ErrNoWorkspace is returned by page accessors before NewWorkspace.
	ErrNoWorkspace = errors.New("driver is not initialized, call NewWorkspace first")
	// ErrNoBrowser is returned when the browser has already been closed.
	ErrNoBrowser = errors.New("browser not initialized")
)

type workspace struct {
	name     string
	context  playwright.BrowserContext
	pages    []playwright.Page
	selected int // 1-based
}

func (w *workspace) page() playwright.Page {
	return w.pages[w.selected-1]
}

// Driver manages one browser and any number of named workspaces.
type Driver struct {
	settings *config.Settings
	logger   *zap.Logger

	pw      *playwright.Playwright
	browser playwright.Browser

	mu         sync.Mutex
	workspaces []*workspace
	current    *workspace
}

// Install downloads the playwright driver and chromium.
func Install(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("installing playwright browsers")
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return fmt.Errorf("could not install playwright browsers: %w", err)
	}
	return nil
}

// LaunchOptions returns the browser launch options for settings.
func LaunchOptions(settings *config.Settings) playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(settings.HeadlessMode),
		Args:     []string{"--start-maximized", "--lang=en-US"},
	}
	if settings.BrowserChannel != "" {
		opts.Channel = playwright.String(settings.BrowserChannel)
	}
	if slowMo := settings.SlowMoMillis(); slowMo > 0 {
		opts.SlowMo = playwright.Float(slowMo)
	}
	return opts
}

// ContextOptions returns the options for a fresh incognito context.
func ContextOptions() playwright.BrowserNewContextOptions {
	return playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(true),
		Locale:            playwright.String("en-US"),
		Viewport: &playwright.Size{
			Width:  1920,
			Height: 1080,
		},
		TimezoneId: playwright.String("America/New_York"),
	}
}

// Launch starts playwright and the browser. Browsers are installed first
// unless PLAYWRIGHT_PREINSTALLED=1.
func Launch(settings *config.Settings, logger *zap.Logger) (*Driver, error) {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := Install(logger); err != nil {
			return nil, err
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		// Fallback: attempt install driver explicitly then retry
		_ = playwright.Install()
		pw, err = playwright.Run()
		if err != nil {
			return nil, fmt.Errorf("could not start playwright after retry: %w", err)
		}
	}

	browser, err := pw.Chromium.Launch(LaunchOptions(settings))
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	d := New(browser, settings, logger)
	d.pw = pw
	return d, nil
}

// New wraps an already launched browser.
func New(browser playwright.Browser, settings *config.Settings, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		settings: settings,
		logger:   logger,
		browser:  browser,
	}
}

// Settings returns the settings the driver was created with.
func (d *Driver) Settings() *config.Settings {
	return d.settings
}

// NewWorkspace opens an incognito context with one page and selects it.
// Contexts are named context_1, context_2, ... in creation order.
func (d *Driver) NewWorkspace() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.browser == nil {
		return "", ErrNoBrowser
	}

	ctx, err := d.browser.NewContext(ContextOptions())
	if err != nil {
		return "", fmt.Errorf("could not create context: %w", err)
	}
	ctx.SetDefaultTimeout(d.settings.TimeoutMillis())

	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		return "", fmt.Errorf("could not create page: %w", err)
	}

	ws := &workspace{
		name:     d.nextName(),
		context:  ctx,
		pages:    []playwright.Page{page},
		selected: 1,
	}
	d.workspaces = append(d.workspaces, ws)
	d.current = ws
	d.logger.Debug("workspace created", zap.String("context", ws.name))
	return ws.name, nil
}

func (d *Driver) nextName() string {
	if len(d.workspaces) == 0 {
		return contextPrefix + "1"
	}
	last := d.workspaces[len(d.workspaces)-1].name
	n, err := strconv.Atoi(strings.TrimPrefix(last, contextPrefix))
	if err != nil {
		n = len(d.workspaces)
	}
	return contextPrefix + strconv.Itoa(n+1)
}

// Page returns the selected page of the current workspace.
func (d *Driver) Page() (playwright.Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return nil, ErrNoWorkspace
	}
	return d.current.page(), nil
}

// NewPage opens another page in the current workspace and selects it.
func (d *Driver) NewPage() (playwright.Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return nil, ErrNoWorkspace
	}
	page, err := d.current.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	d.current.pages = append(d.current.pages, page)
	d.current.selected = len(d.current.pages)
	return page, nil
}

// SelectPage selects the n-th page (1-based) of the current workspace.
func (d *Driver) SelectPage(n int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return ErrNoWorkspace
	}
	if n < 1 || n > len(d.current.pages) {
		return fmt.Errorf("page %d out of range, workspace %s has %d", n, d.current.name, len(d.current.pages))
	}
	d.current.selected = n
	return nil
}

// SwitchContext makes the named workspace current.
func (d *Driver) SwitchContext(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, ws := range d.workspaces {
		if ws.name == name {
			d.current = ws
			return nil
		}
	}
	return fmt.Errorf("unknown context %q", name)
}

// CurrentContext returns the name of the current workspace, "" when none.
func (d *Driver) CurrentContext() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return ""
	}
	return d.current.name
}

// Contexts lists workspace names in creation order.
func (d *Driver) Contexts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.workspaces))
	for _, ws := range d.workspaces {
		names = append(names, ws.name)
	}
	return names
}

// Goto navigates the selected page.
func (d *Driver) Goto(url string) error {
	page, err := d.Page()
	if err != nil {
		return err
	}
	if _, err := page.Goto(url); err != nil {
		if strings.Contains(err.Error(), "ERR_TOO_MANY_REDIRECTS") {
			return fmt.Errorf("redirect loop navigating to %s (check HOST and the login redirect): %w", url, err)
		}
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// CloseContexts closes every workspace. The first workspace created
// afterwards is context_1 again.
func (d *Driver) CloseContexts() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var errs []error
	for _, ws := range d.workspaces {
		if err := ws.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", ws.name, err))
		}
	}
	d.workspaces = nil
	d.current = nil
	return errors.Join(errs...)
}

// Close closes every workspace, the browser and playwright itself.
func (d *Driver) Close() error {
	errs := []error{d.CloseContexts()}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.browser != nil {
		if err := d.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
		d.browser = nil
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
		d.pw = nil
	}
	return errors.Join(errs...)
}

// SaveAuthState writes the current workspace's storage state to path, or
// DefaultAuthStatePath when path is "".
func (d *Driver) SaveAuthState(path string) error {
	if path == "" {
		path = DefaultAuthStatePath
	}
	page, err := d.Page()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create auth state dir: %w", err)
	}
	if _, err := page.Context().StorageState(path); err != nil {
		return fmt.Errorf("failed to save auth state: %w", err)
	}
	return nil
}

// Screenshot captures the selected page under <artifacts_dir>/screenshots
// and returns the file path.
func (d *Driver) Screenshot(name string) (string, error) {
	page, err := d.Page()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(d.settings.ArtifactsDir, "screenshots")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.png", sanitize(name), time.Now().Unix()))
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}
	d.logger.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

func sanitize(name string) string {
	return strings.NewReplacer("/", "_", " ", "_", ":", "_").Replace(name)
}

// WaitForIdle waits for the selected page's network to go idle.
func (d *Driver) WaitForIdle() error {
	page, err := d.Page()
	if err != nil {
		return err
	}
	return page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}
