package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shreejewels/storefront/internal/adminapi"
	"github.com/shreejewels/storefront/internal/app"
	"github.com/shreejewels/storefront/internal/publicapi"
	"github.com/shreejewels/storefront/internal/webserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication(cfg)
	if err := application.Init(ctx); err != nil {
		return err
	}
	defer application.Release()

	adminapi.Init()
	publicapi.Init()

	if err := webserver.NewServer(cfg, application).Start(ctx); err != nil {
		return err
	}
	zap.S().Infof("%s stopped", cfg.System.Appid)
	return nil
}

// cmd.Context is nil when a command runs outside Execute (tests)
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
