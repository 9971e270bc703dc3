package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/internal/config"
	"github.com/iw2rmb/inkwell/internal/metrics"
	"github.com/iw2rmb/inkwell/internal/preview"
)

func serveCmd(opts *options) *cobra.Command {
	var (
		addr string
		ansi bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve editor previews over HTTP",
		Long: `Serve editor previews over HTTP.

Routes:
  GET /?doc=...&theme=dark   render a document once
  GET /stats?doc=...         document statistics as JSON
  GET /ws                    live editing session over a websocket
  GET /metrics               Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			if cmd.Flags().Changed("ansi") {
				cfg.Serve.ANSI = ansi
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&ansi, "ansi", false, "color previews with terminal escape sequences")
	return cmd
}

func newPreview(cfg config.Config, deps preview.Config) *preview.Server {
	exts := editorExtensions(cfg.Editor)
	deps.Extensions = func() []engine.Extension { return exts }
	deps.Doc = cfg.Serve.Doc
	deps.ANSI = cfg.Serve.ANSI
	return preview.New(deps)
}

func runServe(ctx context.Context, cfg config.Config) error {
	log, closeLog, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	deps := preview.Config{Logger: log}
	if cfg.Serve.Metrics {
		deps.Metrics = metrics.New()
	}
	srv := newPreview(cfg, deps)
	hs := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	log.Info("serving", "addr", cfg.Serve.Addr, "version", inkwell.Version())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("stopped")
	return nil
}
