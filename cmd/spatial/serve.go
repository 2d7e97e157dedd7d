package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeusync/spatial/internal/injector"
	"github.com/zeusync/spatial/internal/server"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	config      string
	addr        string
	maxDistance float64
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve raycast queries over HTTP and WebSocket",
		Long: `Serve loads the scene files and answers POST /raycast, POST /raycast/batch,
GET /bodies, GET /stats and WebSocket queries on GET /ws until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "YAML server configuration file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address, overrides the configuration")
	cmd.Flags().Float64Var(&opts.maxDistance, "max", 0, "maximum query distance, overrides the configuration")

	return cmd
}

func (o *serveOptions) serverConfig(cmd *cobra.Command, root *rootOptions) (server.Config, error) {
	cfg := server.DefaultServerConfig()
	if o.config != "" {
		loaded, err := server.LoadConfig(o.config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr = o.addr
	}
	if cmd.Flags().Changed("max") {
		cfg.MaxDistance = o.maxDistance
	}
	if cmd.Flags().Changed("log-level") || o.config == "" {
		level, err := root.level()
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}
	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	cfg, err := opts.serverConfig(cmd, root)
	if err != nil {
		return err
	}
	docs, err := root.loadScenes(cmd)
	if err != nil {
		return err
	}
	srv, err := injector.InitializeServer(cfg, docs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = srv.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", srv.Addr())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Stop(shutdownCtx); err != nil {
		return err
	}
	return srv.Close()
}
