package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/repositories"
	"github.com/blossomlabs/blossom-cli/internal/services"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	httpClient := &http.Client{Timeout: time.Duration(config.API.Timeout) * time.Second}
	client := services.NewClient(config.API.BaseURL, config.Credentials.Token, httpClient)

	// A config token wins; the stored login is only consulted when the config
	// leaves it blank. Opening the cache here is best effort; setup creates it
	// on first run.
	if client.Token() == "" {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			if cred, err := repositories.NewCredentialRepository(db).Get(); err == nil {
				client.SetToken(cred.Token)
			}
			db.Close()
		}
	}

	apiService := services.NewAPIService(config.API.BaseURL, client.Token(), httpClient)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Client:     client,
		API:        apiService,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "blossom",
		Usage:    "Content analytics dashboard for short-form video",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
