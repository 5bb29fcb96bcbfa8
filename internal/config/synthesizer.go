package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvVariable is one line of a synthesized env file.
type EnvVariable struct {
	Key         string
	Value       string
	Type        string
	Generated   bool
	Description string
}

// Synthesizer writes a documented .env for a local run of the suites.
type Synthesizer struct {
	outputPath string
	variables  []EnvVariable
}

func NewSynthesizer(outputPath string) *Synthesizer {
	return &Synthesizer{
		outputPath: outputPath,
		variables:  make([]EnvVariable, 0),
	}
}

// SynthesizeEnv writes the env file. With rotateOnly the fixture account
// passwords are regenerated and every other existing value is kept.
func (s *Synthesizer) SynthesizeEnv(rotateOnly bool) error {
	existing, err := s.loadExistingEnv()
	if err != nil {
		return fmt.Errorf("failed to read existing env file: %w", err)
	}

	if err := s.generateVariables(existing, rotateOnly); err != nil {
		return err
	}

	if err := s.writeEnvFile(); err != nil {
		return fmt.Errorf("failed to write .env file: %w", err)
	}

	return nil
}

// Variables returns what the last synthesis produced.
func (s *Synthesizer) Variables() []EnvVariable {
	return s.variables
}

func (s *Synthesizer) GetGeneratedCount() int {
	count := 0
	for _, v := range s.variables {
		if v.Generated {
			count++
		}
	}
	return count
}

func (s *Synthesizer) generatePassword(length int) (string, error) {
	if length < 12 {
		length = 12
	}

	byteLength := (length * 3) / 4
	if byteLength < 9 {
		byteLength = 9
	}

	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	// URL-safe alphabet only: A-Z, a-z, 0-9, -, _
	result := base64.RawURLEncoding.EncodeToString(bytes)
	if len(result) > length {
		result = result[:length]
	}

	return result, nil
}

func (s *Synthesizer) loadExistingEnv() (map[string]string, error) {
	vars := make(map[string]string)

	v := viper.New()
	ok, err := readEnvFile(v, s.outputPath)
	if err != nil || !ok {
		return vars, err
	}
	for _, key := range v.AllKeys() {
		vars[strings.ToUpper(key)] = v.GetString(key)
	}
	return vars, nil
}

func (s *Synthesizer) section(title string) {
	if len(s.variables) > 0 {
		s.variables = append(s.variables, EnvVariable{Type: "blank"})
	}
	s.variables = append(s.variables, EnvVariable{Key: "# " + title, Type: "section"})
}

func (s *Synthesizer) static(existing map[string]string, key, description string) {
	s.variables = append(s.variables, EnvVariable{
		Key:         strings.ToUpper(key),
		Value:       s.getOrDefault(existing, strings.ToUpper(key), fmt.Sprint(defaults[key])),
		Type:        "static",
		Description: description,
	})
}

func (s *Synthesizer) secret(existing map[string]string, key, description string, rotateOnly bool) error {
	envKey := strings.ToUpper(key)
	generated, err := s.generatePassword(16)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", envKey, err)
	}
	value := s.getOrGenerate(existing, envKey, generated, rotateOnly)
	s.variables = append(s.variables, EnvVariable{
		Key:         envKey,
		Value:       value,
		Type:        "secret",
		Generated:   value == generated,
		Description: description,
	})
	return nil
}

func (s *Synthesizer) generateVariables(existing map[string]string, rotateOnly bool) error {
	s.variables = s.variables[:0]

	s.variables = append(s.variables, EnvVariable{
		Key:  fmt.Sprintf("# Generated by depr-e2e synthesize on %s", time.Now().Format(time.RFC3339)),
		Type: "comment",
	})

	s.section("Target")
	s.static(existing, "protocol", "http or https")
	s.static(existing, "domain", "")
	s.static(existing, "host", "host[:port] serving the UI")
	s.static(existing, "api_base_url", "REST API root, including /api")
	s.static(existing, "db_url", "postgres://, mysql:// or sqlite://")
	s.static(existing, "depreciation_id", "case used by the configuration pages")

	s.section("Browser")
	s.static(existing, "headless_mode", "")
	s.static(existing, "demo_test", "slows every action down by 300ms")
	s.static(existing, "timeout", "default action timeout in milliseconds")
	s.static(existing, "browser_channel", "")
	s.static(existing, "artifacts_dir", "screenshots and auth state")

	s.section("Accounts")
	s.static(existing, "admin_username", "")
	s.static(existing, "admin_password", "")
	s.static(existing, "user_username", "")
	if err := s.secret(existing, "user_password", "", rotateOnly); err != nil {
		return err
	}
	s.static(existing, "readonly_username", "")
	if err := s.secret(existing, "readonly_password", "", rotateOnly); err != nil {
		return err
	}

	s.section("Logging")
	s.static(existing, "log_level", "debug, info, warn or error")
	s.static(existing, "log_format", "console or json")
	return nil
}

func (s *Synthesizer) getOrDefault(existing map[string]string, key, defaultValue string) string {
	if val, ok := existing[key]; ok {
		return val
	}
	return defaultValue
}

func (s *Synthesizer) getOrGenerate(existing map[string]string, key, newValue string, rotateOnly bool) string {
	if rotateOnly {
		return newValue
	}
	if val, ok := existing[key]; ok && val != "" {
		return val
	}
	return newValue
}

func (s *Synthesizer) writeEnvFile() error {
	if _, err := os.Stat(s.outputPath); err == nil {
		backupPath := fmt.Sprintf("%s.backup.%s", s.outputPath, time.Now().Format("20060102_150405"))
		if err := s.copyFile(s.outputPath, backupPath); err != nil {
			return fmt.Errorf("failed to backup existing .env: %w", err)
		}
	}

	file, err := os.Create(s.outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	for _, v := range s.variables {
		switch v.Type {
		case "comment", "section":
			fmt.Fprintln(file, v.Key)
		case "blank":
			fmt.Fprintln(file)
		default:
			if v.Description != "" {
				fmt.Fprintf(file, "# %s\n", v.Description)
			}
			fmt.Fprintf(file, "%s=%s\n", v.Key, v.Value)
		}
	}

	return nil
}

func (s *Synthesizer) copyFile(src, dst string) error {
	data, err := os.ReadFile(src) //nolint:gosec // operator-supplied path
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0600)
}
