package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Environment variables read by webui.
const (
	EnvSettingsDir     = "WEBUI_SETTINGS_DIR"
	EnvDockerContainer = "DOCKER_CONTAINER"
	EnvBackendHost     = "BACKEND_HOST"
	EnvBackendPort     = "BACKEND_PORT"
	EnvOllamaEndpoint  = "OLLAMA_ENDPOINT"
)

// ContainerSettingsDir is the settings directory used inside a container.
const ContainerSettingsDir = "/app/webui_settings"

// dockerEnvFile is checked to detect a container. Tests override it.
var dockerEnvFile = "/.dockerenv"

// IsContainerized reports whether the process appears to run in a container.
func IsContainerized() bool {
	if _, err := os.Stat(dockerEnvFile); err == nil {
		return true
	}
	return os.Getenv(EnvDockerContainer) != "" || os.Getenv(EnvBackendHost) != ""
}

// ResolveSettingsDir picks the settings directory: the explicit value, then
// WEBUI_SETTINGS_DIR, then the container default, then ./webui_settings.
func ResolveSettingsDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dir := os.Getenv(EnvSettingsDir); dir != "" {
		return dir
	}
	if IsContainerized() {
		return ContainerSettingsDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "webui_settings"
	}
	return filepath.Join(cwd, "webui_settings")
}

// Backend describes the services the agents talk to.
type Backend struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	ChromeCDPURL   string `json:"chrome_cdp_url"`
	OllamaEndpoint string `json:"ollama_endpoint"`
}

// BackendConfig merges config values with BACKEND_HOST, BACKEND_PORT and
// OLLAMA_ENDPOINT. Config values win over the environment.
func BackendConfig(cfg *Config) (Backend, error) {
	b := Backend{Host: "localhost", Port: 9222}

	if host := os.Getenv(EnvBackendHost); host != "" {
		b.Host = host
	}
	if raw := os.Getenv(EnvBackendPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return b, fmt.Errorf("invalid %s %q: %w", EnvBackendPort, raw, err)
		}
		b.Port = port
	}
	b.OllamaEndpoint = os.Getenv(EnvOllamaEndpoint)

	if cfg != nil {
		if cfg.BackendHost != "" {
			b.Host = cfg.BackendHost
		}
		if cfg.BackendPort != 0 {
			b.Port = cfg.BackendPort
		}
		if cfg.OllamaEndpoint != "" {
			b.OllamaEndpoint = cfg.OllamaEndpoint
		}
	}

	b.ChromeCDPURL = fmt.Sprintf("http://%s:%d", b.Host, b.Port)
	if b.OllamaEndpoint == "" {
		b.OllamaEndpoint = fmt.Sprintf("http://%s:11434", b.Host)
	}
	return b, nil
}
