// Package helpers wires settings, the browser driver and authentication
// around the UI suites.
package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/deprtest/e2e/internal/config"
	"github.com/deprtest/e2e/internal/datafactory"
	"github.com/deprtest/e2e/internal/logging"
	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/testutil"
	"github.com/deprtest/e2e/internal/ui/driver"
)

// Session is the browser shared by every test of one package run.
type Session struct {
	Settings *config.Settings
	Logger   *zap.Logger
	URLs     *routes.URLBuilder
	Factory  *datafactory.Factory
	Driver   *driver.Driver
}

// EnvFile returns DEPR_ENV_FILE, or the .env at the module root. A relative
// DEPR_ENV_FILE is taken from the module root, not from the package
// directory go test runs in.
func EnvFile() string {
	path := os.Getenv("DEPR_ENV_FILE")
	if path == "" {
		path = config.DefaultEnvFile
	}
	if filepath.IsAbs(path) {
		return path
	}
	root, err := testutil.ProjectRoot()
	if err != nil {
		return path
	}
	return filepath.Join(root, path)
}

// LoadSettings resolves and validates the settings of a suite run.
func LoadSettings() (*config.Settings, error) {
	settings, err := config.Load(EnvFile())
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// NewSession loads settings and launches the browser. Call it from TestMain.
func NewSession() (*Session, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	logger, err := logging.FromSettings(settings)
	if err != nil {
		return nil, fmt.Errorf("could not build logger: %w", err)
	}
	d, err := driver.Launch(settings, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("browser session started",
		zap.String("base_url", settings.UIBaseURL()),
		zap.Bool("headless", settings.HeadlessMode))
	return &Session{
		Settings: settings,
		Logger:   logger,
		URLs:     routes.NewURLBuilder(settings),
		Factory:  datafactory.Default(),
		Driver:   d,
	}, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	if err := s.Driver.Close(); err != nil {
		s.Logger.Warn("failed to close browser", zap.Error(err))
	}
	_ = s.Logger.Sync()
}

// Workspace opens a fresh incognito context for t. A screenshot is taken
// when t fails, then every context is closed.
func (s *Session) Workspace(t testing.TB) *driver.Driver {
	t.Helper()
	name, err := s.Driver.NewWorkspace()
	if err != nil {
		t.Fatalf("could not open workspace: %v", err)
	}
	t.Cleanup(func() {
		if t.Failed() {
			if path, err := s.Driver.Screenshot(t.Name()); err == nil {
				t.Logf("screenshot saved to %s", path)
			} else {
				s.Logger.Warn("failed to take screenshot", zap.String("test", t.Name()), zap.Error(err))
			}
		}
		if err := s.Driver.CloseContexts(); err != nil {
			s.Logger.Warn("failed to close workspace", zap.String("workspace", name), zap.Error(err))
		}
	})
	return s.Driver
}
