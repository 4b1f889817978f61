// Package cmd wires configuration, logging, tracing, and the config
// watcher together and launches the playground TUI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/appcues/inkwell/internal/config"
	"github.com/appcues/inkwell/internal/content"
	"github.com/appcues/inkwell/internal/dnd"
	"github.com/appcues/inkwell/internal/editor"
	"github.com/appcues/inkwell/internal/log"
	"github.com/appcues/inkwell/internal/selection"
	"github.com/appcues/inkwell/internal/tracing"
	"github.com/appcues/inkwell/internal/ui"
	"github.com/appcues/inkwell/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	debugFlag    bool
	noExtendFlag bool
	noReloadFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "A terminal playground for selection reconciliation and drag/drop",
	Long: `An interactive editor playground: select with the mouse, drag selected
text to move it, and simulate external text and file drops, while the
logical selection is reconciled against a capability-limited host.`,
	Version: version,
	RunE:    runPlayground,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/inkwell/config.yaml)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging to inkwell.log")
	rootCmd.Flags().BoolVar(&noExtendFlag, "no-extend", false,
		"deny the host the extend capability (exercises backward emulation)")
	rootCmd.Flags().BoolVar(&noReloadFlag, "no-auto-reload", false,
		"disable config hot reload")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("document", defaults.Document)
	viper.SetDefault("host.extend", defaults.Host.Extend)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_log", defaults.UI.ShowLog)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .inkwell/config.yaml (current directory)
		// 2. ~/.config/inkwell/config.yaml (user config)
		if _, err := os.Stat(".inkwell/config.yaml"); err == nil {
			viper.SetConfigFile(".inkwell/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "inkwell"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere. Create a commented default so
		// theme changes have somewhere to persist.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".inkwell/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runPlayground(_ *cobra.Command, _ []string) error {
	debug := os.Getenv("INKWELL_DEBUG") != "" || debugFlag || cfg.Debug
	if debug {
		logPath := os.Getenv("INKWELL_LOG")
		if logPath == "" {
			logPath = "inkwell.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "inkwell")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "inkwell starting", "debug", true, "logPath", logPath)
	}

	if noExtendFlag {
		cfg.Host.Extend = false
	}
	if noReloadFlag {
		cfg.AutoReload = false
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = ".inkwell/config.yaml"
	}

	var watch <-chan struct{}
	var w *watcher.Watcher
	if cfg.AutoReload {
		w, err = watcher.New(watcher.DefaultConfig(configPath))
		if err != nil {
			log.ErrorErr(log.CatConfig, "config watcher unavailable", err)
		} else {
			watch, err = w.Start()
			if err != nil {
				log.ErrorErr(log.CatConfig, "config watcher failed to start", err)
				watch = nil
			}
		}
	}

	lines := cfg.Document
	if len(lines) == 0 {
		lines = config.Defaults().Document
	}
	c := content.FromText(lines...)
	initial := editor.NewEditorState(c, selection.CollapsedAt(c.BlockAt(0).Key(), 0))
	ed := editor.New(initial)
	handler := dnd.NewHandler(ed, dnd.WithTracer(provider.Tracer()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zone.NewGlobal()
	defer zone.Close()

	model := ui.New(ctx, ui.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Editor:     ed,
		Handler:    handler,
		Reload:     reloadConfig,
		Watch:      watch,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, runErr := p.Run()

	cancel()
	if w != nil {
		if stopErr := w.Stop(); stopErr != nil && runErr == nil {
			runErr = stopErr
		}
	}
	ed.Close()
	if shutErr := provider.Shutdown(context.Background()); shutErr != nil && runErr == nil {
		runErr = shutErr
	}

	if runErr != nil {
		return fmt.Errorf("running playground: %w", runErr)
	}
	return nil
}

// reloadConfig re-reads the config file in place. Invalid contents are
// rejected so a half-saved file never replaces a working setup.
func reloadConfig() (config.Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return config.Config{}, fmt.Errorf("re-reading config: %w", err)
	}
	var next config.Config
	if err := viper.Unmarshal(&next); err != nil {
		return config.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := config.Validate(next); err != nil {
		return config.Config{}, err
	}
	return next, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
