// Package tabs builds the widgets of each settings tab and registers them.
package tabs

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/webui/internal/config"
	"github.com/billie-coop/webui/internal/registry"
	"github.com/billie-coop/webui/internal/widget"
)

// Tab names, used as the first part of component identifiers.
const (
	AgentSettings   = "agent_settings"
	BrowserSettings = "browser_settings"
	LoadSaveConfig  = "load_save_config"
)

// Identifiers the UI needs to reach directly.
const (
	ConfigFileID = LoadSaveConfig + ".config_file"
	LoadButtonID = LoadSaveConfig + ".load_config_button"
	SaveButtonID = LoadSaveConfig + ".save_config_button"
	StatusID     = LoadSaveConfig + ".config_status"
)

// Tab is one page of the UI.
type Tab struct {
	Name  string
	Title string
}

// Actions are the callbacks wired to the buttons on the load/save tab.
type Actions struct {
	Save func() tea.Cmd
	Load func() tea.Cmd
}

// Providers offered by the LLM provider dropdown.
var Providers = []string{"openai", "anthropic", "google", "azure_openai", "deepseek", "ollama", "mistral"}

// Build creates every tab's widgets, registers them in reg and returns the
// tabs in display order.
func Build(reg *registry.Registry, backend config.Backend, actions Actions) []Tab {
	buildAgentSettings(reg, backend)
	buildBrowserSettings(reg, backend)
	buildLoadSaveConfig(reg, actions)

	return []Tab{
		{Name: AgentSettings, Title: "Agent Settings"},
		{Name: BrowserSettings, Title: "Browser Settings"},
		{Name: LoadSaveConfig, Title: "Load & Save Config"},
	}
}

func buildAgentSettings(reg *registry.Registry, backend config.Backend) {
	reg.RegisterOrdered(AgentSettings,
		registry.Field{Name: "llm_provider", Widget: widget.NewDropdown("LLM Provider", Providers, "openai")},
		registry.Field{Name: "llm_model_name", Widget: widget.NewTextBox("Model Name", "gpt-4o")},
		registry.Field{Name: "llm_temperature", Widget: widget.NewSlider("Temperature", 0.6, 0, 2, 0.1)},
		registry.Field{Name: "use_vision", Widget: widget.NewCheckbox("Use Vision", true)},
		registry.Field{Name: "ollama_num_ctx", Widget: widget.NewSlider("Ollama Context", 16000, 256, 65536, 256)},
		registry.Field{Name: "llm_base_url", Widget: widget.NewTextBox("Base URL", backend.OllamaEndpoint)},
		registry.Field{Name: "llm_api_key", Widget: widget.NewTextBox("API Key", "")},
		registry.Field{Name: "max_steps", Widget: widget.NewSlider("Max Run Steps", 100, 1, 1000, 1)},
		registry.Field{Name: "max_actions", Widget: widget.NewSlider("Max Actions", 10, 1, 100, 1)},
		registry.Field{Name: "tool_calling_method", Widget: widget.NewDropdown("Tool Calling", []string{"auto", "json_schema", "function_calling", "None"}, "auto")},
	)
}

func buildBrowserSettings(reg *registry.Registry, backend config.Backend) {
	reg.RegisterOrdered(BrowserSettings,
		registry.Field{Name: "browser_binary_path", Widget: widget.NewTextBox("Browser Binary", "")},
		registry.Field{Name: "browser_user_data_dir", Widget: widget.NewTextBox("User Data Dir", "")},
		registry.Field{Name: "use_own_browser", Widget: widget.NewCheckbox("Use Own Browser", false)},
		registry.Field{Name: "keep_browser_open", Widget: widget.NewCheckbox("Keep Browser Open", true)},
		registry.Field{Name: "headless", Widget: widget.NewCheckbox("Headless Mode", false)},
		registry.Field{Name: "disable_security", Widget: widget.NewCheckbox("Disable Security", false)},
		registry.Field{Name: "window_w", Widget: widget.NewNumber("Window Width", 1280, 10)},
		registry.Field{Name: "window_h", Widget: widget.NewNumber("Window Height", 1100, 10)},
		registry.Field{Name: "cdp_url", Widget: widget.NewTextBox("CDP URL", backend.ChromeCDPURL)},
		registry.Field{Name: "save_recording_path", Widget: widget.NewTextBox("Recording Path", "./tmp/record_videos")},
		registry.Field{Name: "save_download_path", Widget: widget.NewTextBox("Download Path", "./tmp/downloads")},
	)
}

func buildLoadSaveConfig(reg *registry.Registry, actions Actions) {
	status := widget.NewStatusBox("Status")
	reg.RegisterOrdered(LoadSaveConfig,
		registry.Field{Name: "config_file", Widget: widget.NewFilePicker("Load UI Settings", ".json")},
		registry.Field{Name: "load_config_button", Widget: widget.NewButton("Load Config", actions.Load)},
		registry.Field{Name: "save_config_button", Widget: widget.NewButton("Save UI Settings", actions.Save)},
		registry.Field{Name: "config_status", Widget: status},
	)
}

// FilePicker returns the load tab's file picker
func FilePicker(reg *registry.Registry) *widget.FilePicker {
	w, err := reg.WidgetByID(ConfigFileID)
	if err != nil {
		return nil
	}
	fp, _ := w.(*widget.FilePicker)
	return fp
}

// Status returns the load tab's status box
func Status(reg *registry.Registry) *widget.TextBox {
	w, err := reg.WidgetByID(StatusID)
	if err != nil {
		return nil
	}
	tb, _ := w.(*widget.TextBox)
	return tb
}
