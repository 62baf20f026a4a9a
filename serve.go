package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"tasktracker/internal/config"
	"tasktracker/internal/handlers"
	"tasktracker/internal/viewsync"
)

const (
	shutdownTimeout = 10 * time.Second
	saveTimeout     = 5 * time.Second
)

func newServeCmd(flags *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list as a web page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.addr, "addr", config.DefaultAddr, "address to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, flags *flagValues) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	tmpl, err := parseTemplates()
	if err != nil {
		return err
	}

	view := handlers.NewPresenter()
	h := handlers.New(view, tmpl, logger)
	ctrl, gateway, err := newController(cfg, view, logger)
	if err != nil {
		return err
	}
	defer gateway.Close()
	h.Attach(ctrl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h.Lock(func() { ctrl.Start(ctx) })

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
	h.Routes(r)

	server := &http.Server{Addr: cfg.Addr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "url", "http://localhost"+cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}

	return saveOnExit(shutdownCtx, h, ctrl, logger)
}

// saveOnExit saves the task list after the server has drained. The save gets
// its own deadline so a drain that used up ctx does not lose the list.
func saveOnExit(ctx context.Context, h *handlers.Handlers, ctrl *viewsync.Controller, logger *log.Logger) error {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	var err error
	h.Lock(func() { err = ctrl.Shutdown(saveCtx) })
	if err != nil {
		logger.Error("failed to save on exit", "err", err)
	}
	return err
}
