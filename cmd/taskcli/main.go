// Package main is the entry point for the taskcli CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskcli/internal/api"
	"taskcli/internal/cli"
	"taskcli/internal/commands"
	"taskcli/internal/config"
	"taskcli/internal/logging"
	"taskcli/internal/service"
	"taskcli/internal/session"
	"taskcli/internal/storage"
)

// app is the API client together with the store backing its session.
type app struct {
	*api.Client
	store storage.Store
}

func (a *app) Close() error {
	return a.store.Close()
}

func newService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	store, err := storage.Open(cfg.Settings.Storage.Kind, cfg.Dir)
	if err != nil {
		return nil, err
	}

	client, err := api.New(api.Options{
		BaseURL:             cfg.Settings.API.BaseURL,
		Timeout:             cfg.Settings.API.Timeout,
		Session:             session.New(store),
		ClearOnUnauthorized: cfg.Settings.Session.ClearOnUnauthorized,
		Logger:              logging.New(os.Stderr, cfg.Debug),
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	return &app{Client: client, store: store}, nil
}

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
