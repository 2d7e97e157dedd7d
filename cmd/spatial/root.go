package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zeusync/spatial/internal/core/observability/log"
	"github.com/zeusync/spatial/internal/core/systems/physics"
	"github.com/zeusync/spatial/internal/injector"
	"github.com/zeusync/spatial/internal/scene"
	"github.com/zeusync/spatial/internal/server"
)

var errNoScene = errors.New("at least one --scene file is required")

type rootOptions struct {
	scenes   []string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "spatial",
		Short: "Cast rays against 3D scenes",
		Long: `spatial loads YAML or JSON scene files describing spheres, boxes, planes and
compound shapes, and answers raycast queries against them from the command line
or over HTTP and WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       "0.1.0",
	}

	cmd.PersistentFlags().StringSliceVar(&opts.scenes, "scene", nil, "scene file (.yaml, .yml or .json); repeatable")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(newCastCmd(opts), newServeCmd(opts), newInspectCmd(opts))
	return cmd
}

func (o *rootOptions) level() (log.Level, error) {
	return log.ParseLevel(o.logLevel)
}

func (o *rootOptions) loadScenes(cmd *cobra.Command) ([]*scene.Document, error) {
	if len(o.scenes) == 0 {
		return nil, errNoScene
	}
	return scene.LoadFiles(cmd.Context(), o.scenes...)
}

// loadWorld reads the scene files into a fresh world.
func (o *rootOptions) loadWorld(cmd *cobra.Command) (*physics.World, error) {
	level, err := o.level()
	if err != nil {
		return nil, err
	}
	docs, err := o.loadScenes(cmd)
	if err != nil {
		return nil, err
	}

	cfg := server.DefaultServerConfig()
	cfg.LogLevel = level
	return injector.InitializeWorld(cfg, docs)
}
