package main

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tasktracker/internal/config"
	"tasktracker/internal/logging"
	"tasktracker/internal/store"
	"tasktracker/internal/tasklist"
	"tasktracker/internal/ui"
	"tasktracker/internal/viewsync"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

type flagValues struct {
	configPath string
	dataDir    string
	backend    string
	logLevel   string
	logFormat  string
	logFile    string
	addr       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &flagValues{}

	root := &cobra.Command{
		Use:          "tasktracker",
		Short:        "Keep a numbered task list with completion progress",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to the TOML config file (default ./"+config.DefaultConfigFile+")")
	pf.StringVar(&flags.dataDir, "data-dir", config.DefaultDataDir, "directory for saved tasks and settings")
	pf.StringVar(&flags.backend, "backend", config.DefaultBackend, "storage backend: json or sqlite")
	pf.StringVar(&flags.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", config.DefaultLogFormat, "log format: text, json, logfmt")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file")

	root.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Run the terminal interface (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	})
	root.AddCommand(newServeCmd(flags))

	return root
}

// loadConfig layers the flags the user set over the file and environment.
func loadConfig(cmd *cobra.Command, flags *flagValues) (*config.Config, error) {
	var overrides []config.Override
	set := func(name string, apply config.Override) {
		if cmd.Flags().Changed(name) {
			overrides = append(overrides, apply)
		}
	}
	set("data-dir", func(c *config.Config) { c.DataDir = flags.dataDir })
	set("backend", func(c *config.Config) { c.Backend = flags.backend })
	set("log-level", func(c *config.Config) { c.LogLevel = flags.logLevel })
	set("log-format", func(c *config.Config) { c.LogFormat = flags.logFormat })
	set("log-file", func(c *config.Config) { c.LogFile = flags.logFile })
	set("addr", func(c *config.Config) { c.Addr = flags.addr })

	return config.Load(flags.configPath, overrides...)
}

func newLogger(cfg *config.Config, file string) (*log.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   file,
		Prefix: "tasktracker",
	})
}

// newController wires the task list, the storage backend and a presenter.
func newController(cfg *config.Config, view viewsync.Presenter, logger *log.Logger) (*viewsync.Controller, store.Gateway, error) {
	gateway, err := store.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	logger.Info("store opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)

	ctrl := viewsync.New(tasklist.New(), gateway, view, viewsync.WithLogger(logger))
	return ctrl, gateway, nil
}

func runTUI(cmd *cobra.Command, flags *flagValues) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	// The terminal is taken by the interface, so logs always go to a file.
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = cfg.DefaultLogPath()
	}
	logger, closer, err := newLogger(cfg, logFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	model := ui.New(ctx)
	ctrl, gateway, err := newController(cfg, model, logger)
	if err != nil {
		return err
	}
	defer gateway.Close()

	model.Attach(ctrl)
	ctrl.Start(ctx)

	runErr := ui.Run(ctx, model)
	if !model.Closed() {
		// The program ended without the exit key, e.g. a signal.
		if err := ctrl.Shutdown(context.Background()); err != nil {
			logger.Error("failed to save on exit", "err", err)
		}
	} else if err := model.ShutdownErr(); err != nil {
		logger.Error("failed to save on exit", "err", err)
	}
	return runErr
}

func parseTemplates() (*template.Template, error) {
	tmpl := template.New("")

	patterns := []string{
		"templates/*.html",
		"templates/partials/*.html",
	}

	for _, pattern := range patterns {
		matches, err := fs.Glob(templatesFS, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}

		for _, match := range matches {
			content, err := templatesFS.ReadFile(match)
			if err != nil {
				return nil, fmt.Errorf("failed to read template %s: %w", match, err)
			}

			name := filepath.Base(match)
			_, err = tmpl.New(name).Parse(string(content))
			if err != nil {
				return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
			}
		}
	}

	return tmpl, nil
}
