// Package config provides local-first configuration for webui.
//
// Application settings live in the project's .webui/ directory:
//
//	.webui/
//	└── config.json        # Main configuration
//
// The config.json file contains simple key-value settings:
//
//	{
//	  "settings_dir": "${HOME}/webui_settings",
//	  "listen_addr": "127.0.0.1:7788",
//	  "theme": "webui",
//	  "debug": false,
//	  "backend_host": "",
//	  "backend_port": 0,
//	  "ollama_endpoint": ""
//	}
//
// String values can reference environment variables using $VAR or ${VAR}.
//
// This is separate from the UI settings files written by package settings:
// config.json configures the program, settings files hold widget values.
//
// Environment:
//
//   - WEBUI_SETTINGS_DIR overrides the default settings directory.
//   - DOCKER_CONTAINER (or /.dockerenv, or BACKEND_HOST) marks a container,
//     where the default settings directory is /app/webui_settings.
//   - BACKEND_HOST, BACKEND_PORT and OLLAMA_ENDPOINT set the backend endpoints.
//
// Example usage:
//
//	manager := config.NewManager("/path/to/project")
//	if err := manager.Load(); err != nil {
//		log.Fatal(err)
//	}
//
//	dir := config.ResolveSettingsDir(manager.Get().SettingsDir)
package config
