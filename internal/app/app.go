// Package app wires configuration, session state, the API client and the UI
// together.
package app

import (
	"context"
	"fmt"

	"github.com/fruitvision/fruitvision/internal/api"
	"github.com/fruitvision/fruitvision/internal/config"
	"github.com/fruitvision/fruitvision/internal/result"
	"github.com/fruitvision/fruitvision/internal/session"
	"github.com/fruitvision/fruitvision/internal/ui"
	"github.com/fruitvision/fruitvision/internal/upload"
)

// Options configure the application.
type Options struct {
	ConfigPath  string // empty uses ~/.config/fruitvision/config.toml
	SessionPath string // empty uses ~/.config/fruitvision/session.toml
}

// Env holds the wired components shared by the TUI and the one-shot CLI
// commands.
type Env struct {
	Config    config.Config
	Store     *session.Store
	Client    *api.Client
	Validator *upload.Validator
	ChartDir  string
}

// Bootstrap loads config, restores any persisted session and builds the API
// client with the store as its token source.
func Bootstrap(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// The client's token source reads the store, so the store is built first
	// with a nil authenticator and completed below.
	store, err := session.NewStore(opts.SessionPath, nil)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	client, err := api.NewClient(cfg.APIURL, store.Token)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	client.SetTimeout(cfg.Timeout)
	store.SetAuthenticator(client)

	store.Restore()

	return &Env{
		Config:    cfg,
		Store:     store,
		Client:    client,
		Validator: &upload.Validator{},
		ChartDir:  result.DefaultChartDir(),
	}, nil
}

// Run boots the TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	env, err := Bootstrap(opts)
	if err != nil {
		return err
	}
	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     env.Store,
		Client:    env.Client,
		Validator: env.Validator,
		ChartDir:  env.ChartDir,
	})
}
