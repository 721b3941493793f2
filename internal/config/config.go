package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Config represents the webui application configuration
type Config struct {
	// Where UI settings files are saved. Empty means resolve from the environment.
	SettingsDir string `json:"settings_dir"`

	// Headless API listen address
	ListenAddr string `json:"listen_addr"`

	// UI preferences
	Theme string `json:"theme"`
	Debug bool   `json:"debug"`

	// Backend endpoints shown as widget defaults. Empty means use the environment.
	BackendHost    string `json:"backend_host"`
	BackendPort    int    `json:"backend_port"`
	OllamaEndpoint string `json:"ollama_endpoint"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: "127.0.0.1:7788",
		Theme:      "webui",
		Debug:      false,
	}
}

// Manager handles configuration loading and saving
type Manager struct {
	projectPath string
	configPath  string

	// raw is the file content with ${VAR} references intact; config is the
	// expanded view handed out by Get.
	raw    *Config
	config *Config
}

// NewManager creates a configuration manager for <projectPath>/.webui/config.json
func NewManager(projectPath string) *Manager {
	return NewManagerAt(projectPath, filepath.Join(projectPath, ".webui", "config.json"))
}

// NewManagerAt creates a configuration manager for an explicit config file path
func NewManagerAt(projectPath, configPath string) *Manager {
	return &Manager{
		projectPath: projectPath,
		configPath:  configPath,
		raw:         DefaultConfig(),
		config:      DefaultConfig(),
	}
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk, creating defaults if needed
func (m *Manager) Load() error {
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return m.Save()
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so missing keys keep their default value
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}

	m.raw = config
	m.config = expanded(config)
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration with environment variables expanded
func (m *Manager) Get() *Config {
	return m.config
}

// Set updates a configuration value and saves. The value is written as
// given; Get sees it with environment variables expanded.
func (m *Manager) Set(key, value string) error {
	switch key {
	case "settings_dir":
		m.raw.SettingsDir = value
	case "listen_addr":
		m.raw.ListenAddr = value
	case "theme":
		m.raw.Theme = value
	case "debug":
		m.raw.Debug = value == "true"
	case "backend_host":
		m.raw.BackendHost = value
	case "backend_port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid backend_port %q: %w", value, err)
		}
		m.raw.BackendPort = port
	case "ollama_endpoint":
		m.raw.OllamaEndpoint = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	m.config = expanded(m.raw)
	return m.Save()
}

// envVarPattern matches $VAR or ${VAR}
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expanded returns a copy of config with environment variables expanded in
// string values
func expanded(raw *Config) *Config {
	config := *raw
	config.SettingsDir = expandString(config.SettingsDir)
	config.ListenAddr = expandString(config.ListenAddr)
	config.Theme = expandString(config.Theme)
	config.BackendHost = expandString(config.BackendHost)
	config.OllamaEndpoint = expandString(config.OllamaEndpoint)
	return &config
}

// expandString expands environment variables in a string.
// Supports $VAR and ${VAR} syntax; unset variables are left as written.
func expandString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
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
