package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Dir is the per-project data directory.
const Dir = ".fieldstate"

// Config represents the fieldstate configuration
type Config struct {
	// Field behaviour
	DebounceMS        int `json:"debounce_ms" env:"FIELDSTATE_DEBOUNCE_MS"`
	MinUsernameLength int `json:"min_username_length" env:"FIELDSTATE_MIN_USERNAME_LENGTH"`

	// UI preferences
	Theme string `json:"theme" env:"FIELDSTATE_THEME"`
	Debug bool   `json:"debug" env:"FIELDSTATE_DEBUG"`

	// Files, relative to the project directory unless absolute
	LogFile   string `json:"log_file" env:"FIELDSTATE_LOG_FILE"`
	LogFormat string `json:"log_format" env:"FIELDSTATE_LOG_FORMAT"`
	DraftFile string `json:"draft_file" env:"FIELDSTATE_DRAFT_FILE"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DebounceMS:        300,
		MinUsernameLength: 3,
		Theme:             "ember",
		Debug:             false,
		LogFile:           filepath.Join(Dir, "fieldstate.log"),
		LogFormat:         "text",
		DraftFile:         filepath.Join(Dir, "draft.json"),
	}
}

// Debounce returns the async validation quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.DebounceMS < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDebounce, c.DebounceMS)
	}
	if c.MinUsernameLength < 0 {
		return fmt.Errorf("%w: min_username_length %d", ErrInvalidValue, c.MinUsernameLength)
	}
	return nil
}

// Manager handles configuration loading and saving
type Manager struct {
	projectPath string
	configPath  string
	envPath     string
	config      *Config
}

// NewManager creates a new configuration manager
func NewManager(projectPath string) *Manager {
	return &Manager{
		projectPath: projectPath,
		configPath:  filepath.Join(projectPath, Dir, "config.json"),
		envPath:     filepath.Join(projectPath, ".env"),
		config:      DefaultConfig(),
	}
}

// Load reads the configuration from disk, creating defaults if needed.
// Environment variables (and a .env file in the project directory) override
// file values.
func (m *Manager) Load() error {
	dataDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", Dir, err)
	}

	if err := m.ensureGitignore(); err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	config := DefaultConfig()

	data, err := os.ReadFile(m.configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		m.config = config
		if err := m.Save(); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	if err := m.applyEnv(config); err != nil {
		return err
	}
	m.expandEnvVars(config)

	if err := config.Validate(); err != nil {
		return err
	}

	m.config = config
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Path resolves a configured file path against the project directory.
func (m *Manager) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.projectPath, p)
}

// Set updates a configuration value and saves
func (m *Manager) Set(key, value string) error {
	next := *m.config

	switch key {
	case "debounce_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
		next.DebounceMS = n
	case "min_username_length":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
		next.MinUsernameLength = n
	case "theme":
		next.Theme = value
	case "debug":
		next.Debug = value == "true"
	case "log_file":
		next.LogFile = value
	case "log_format":
		next.LogFormat = value
	case "draft_file":
		next.DraftFile = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if err := next.Validate(); err != nil {
		return err
	}

	m.config = &next
	return m.Save()
}

// applyEnv loads the project .env file, if any, then parses FIELDSTATE_*
// variables over config. Unset variables leave file values alone.
func (m *Manager) applyEnv(config *Config) error {
	if err := godotenv.Load(m.envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", m.envPath, err)
	}
	if err := env.Parse(config); err != nil {
		return errors.Join(ErrParsingEnv, err)
	}
	return nil
}

// ensureGitignore creates a .gitignore in the data directory
func (m *Manager) ensureGitignore() error {
	gitignorePath := filepath.Join(filepath.Dir(m.configPath), ".gitignore")

	if _, err := os.Stat(gitignorePath); !os.IsNotExist(err) {
		return nil // Already exists
	}

	gitignoreContent := `# fieldstate data directory .gitignore
#
# Config is committed; logs and form drafts stay local.

*.log
*.tmp
draft.json

!config.json
!.gitignore
`

	return os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644)
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars expands environment variables in path values
func (m *Manager) expandEnvVars(config *Config) {
	config.LogFile = expandString(config.LogFile)
	config.DraftFile = expandString(config.DraftFile)
}

// expandString expands $VAR and ${VAR}. Unset variables are left as written.
func expandString(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match
	})
}
