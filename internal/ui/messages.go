package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fruitvision/fruitvision/internal/api"
	"github.com/fruitvision/fruitvision/internal/result"
	"github.com/fruitvision/fruitvision/internal/session"
	"github.com/fruitvision/fruitvision/internal/upload"
)

// loginResultMsg reports the outcome of a login attempt.
type loginResultMsg struct {
	session session.Session
	err     error
}

// registerResultMsg reports the outcome of a registration attempt.
type registerResultMsg struct {
	err error
}

// fileAcceptedMsg reports the outcome of validating a selected file.
type fileAcceptedMsg struct {
	pending *upload.Pending
	err     error
}

// previewReadyMsg delivers an asynchronously derived preview. The generation
// is checked against the validator before display so a stale preview for a
// superseded selection never overwrites a newer one.
type previewReadyMsg struct {
	preview upload.Preview
	err     error
}

// predictResultMsg reports the outcome of a prediction request.
type predictResultMsg struct {
	res    *api.PredictionResult
	charts []result.Chart
	err    error
}

func loginCmd(store *session.Store, username, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := store.Login(context.Background(), username, password)
		return loginResultMsg{session: sess, err: err}
	}
}

func registerCmd(store *session.Store, username, password, email string) tea.Cmd {
	return func() tea.Msg {
		return registerResultMsg{err: store.Register(context.Background(), username, password, email)}
	}
}

func acceptFileCmd(validator *upload.Validator, path string) tea.Cmd {
	return func() tea.Msg {
		pending, err := validator.Accept(path)
		return fileAcceptedMsg{pending: pending, err: err}
	}
}

func previewCmd(pending *upload.Pending, cols int) tea.Cmd {
	return func() tea.Msg {
		preview, err := upload.RenderPreview(pending, cols)
		return previewReadyMsg{preview: preview, err: err}
	}
}

func predictCmd(client api.Service, pending *upload.Pending, chartDir string) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Predict(context.Background(), pending.Name, pending.Data)
		if err != nil {
			return predictResultMsg{err: err}
		}
		charts, err := result.SaveCharts(res.Visualizations, chartDir)
		if err != nil {
			// The prediction itself succeeded; show it without charts.
			charts = nil
		}
		return predictResultMsg{res: res, charts: charts}
	}
}
