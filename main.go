// Package main is the entry point for webui.
//
// With a terminal attached webui runs the settings TUI; with --headless, or
// when stdin is not a terminal, it serves the HTTP API instead.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea/v2"
	"golang.org/x/term"

	"github.com/billie-coop/webui/internal/api"
	"github.com/billie-coop/webui/internal/config"
	"github.com/billie-coop/webui/internal/registry"
	"github.com/billie-coop/webui/internal/settings"
	"github.com/billie-coop/webui/internal/state"
	"github.com/billie-coop/webui/internal/tui"
	"github.com/billie-coop/webui/internal/tui/events"
	"github.com/billie-coop/webui/internal/tui/styles"
	"github.com/billie-coop/webui/internal/tui/tabs"
	"github.com/billie-coop/webui/internal/watcher"
)

// Args represents command-line arguments
type Args struct {
	SettingsDir string `arg:"--settings-dir" help:"directory for saved UI settings (default: $WEBUI_SETTINGS_DIR or ./webui_settings)"`
	Config      string `arg:"--config" help:"path to config file (default: .webui/config.json)"`
	Headless    bool   `arg:"--headless" help:"serve the HTTP API instead of the terminal UI"`
	Addr        string `arg:"--addr" help:"API listen address"`
	Theme       string `arg:"--theme" help:"TUI theme"`
	Debug       bool   `arg:"--debug" help:"write debug logs"`
	LogFile     string `arg:"--log-file" help:"log file used while the TUI is running (default: .webui/debug.log)"`
}

// Description is shown by --help
func (Args) Description() string {
	return "webui - save and restore agent UI settings"
}

func main() {
	var args Args
	arg.MustParse(&args)

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args Args) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfgManager := config.NewManager(cwd)
	if args.Config != "" {
		cfgManager = config.NewManagerAt(cwd, args.Config)
	}
	if err := cfgManager.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cfgManager.Get()

	// Flags win over the config file
	if args.Addr != "" {
		cfg.ListenAddr = args.Addr
	}
	if args.Theme != "" {
		cfg.Theme = args.Theme
	}
	cfg.Debug = cfg.Debug || args.Debug

	backend, err := config.BackendConfig(cfg)
	if err != nil {
		return err
	}

	settingsDir := args.SettingsDir
	if settingsDir == "" {
		settingsDir = cfg.SettingsDir
	}
	settingsDir = config.ResolveSettingsDir(settingsDir)

	stateDir := filepath.Dir(cfgManager.Path())
	history := state.NewHistoryStore(stateDir)

	headless := args.Headless || !term.IsTerminal(int(os.Stdin.Fd()))
	if !headless {
		logFile := args.LogFile
		if logFile == "" {
			logFile = filepath.Join(stateDir, "debug.log")
		}
		if cfg.Debug {
			f, err := tea.LogToFile(logFile, "webui")
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()
		} else {
			// The TUI owns the terminal
			log.SetOutput(io.Discard)
		}
	}

	reg := registry.New()
	manager := settings.NewManager(reg, settingsDir, settings.WithLogger(log.Default()))
	if err := manager.EnsureDir(); err != nil {
		return err
	}
	log.Printf("UI settings will be saved to: %s", settingsDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if headless {
		return runHeadless(ctx, cfg, reg, manager, history, backend)
	}
	return runTUI(cfgManager, reg, manager, history, backend)
}

func runHeadless(ctx context.Context, cfg *config.Config, reg *registry.Registry, manager *settings.Manager, history *state.HistoryStore, backend config.Backend) error {
	// Buttons have nothing to drive without the TUI; the API exposes the operations
	tabs.Build(reg, backend, tabs.Actions{})

	server := api.New(reg, manager, api.WithHistory(history))
	return server.ListenAndServe(ctx, cfg.ListenAddr)
}

func runTUI(cfgManager *config.Manager, reg *registry.Registry, manager *settings.Manager, history *state.HistoryStore, backend config.Backend) error {
	broker := events.NewBroker()
	defer broker.Clear()

	w, err := watcher.New(watcher.DefaultDebounce, func(paths []string) {
		broker.Publish(events.Event{
			Type:    events.SettingsFilesChangedEvent,
			Payload: events.FilesChangedPayload{Dir: manager.Dir(), Paths: paths},
		})
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()
	if err := w.Watch(manager.Dir()); err != nil {
		log.Printf("Watcher: %v", err)
	}

	model := tui.New(tui.Options{
		Registry: reg,
		Settings: manager,
		Broker:   broker,
		Themes:   styles.NewManager(cfgManager.Get().Theme),
		Backend:  backend,
		History:  history,
		Watcher:  w,
		Config:   cfgManager,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
