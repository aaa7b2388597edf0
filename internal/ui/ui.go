// Package ui implements the interactive FruitVision terminal interface using
// Bubble Tea. The root model (model.go) routes between the home, login,
// register, predict and result views; network and preview work runs as
// commands so the interface never blocks, and every failure surfaces as a
// dismissable inline notice with the loading state cleared.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fruitvision/fruitvision/internal/api"
	"github.com/fruitvision/fruitvision/internal/session"
	"github.com/fruitvision/fruitvision/internal/upload"
)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Store     *session.Store
	Client    api.Service
	Validator *upload.Validator
	ChartDir  string
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a session store")
	}
	if opts.Client == nil {
		return fmt.Errorf("ui requires an api client")
	}
	if opts.Validator == nil {
		opts.Validator = &upload.Validator{}
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	program := tea.NewProgram(
		New(opts),
		tea.WithAltScreen(),
		tea.WithContext(opts.Context),
	)
	_, err := program.Run()
	return err
}
