package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginSubmit carries the credentials the user submitted.
type loginSubmit struct {
	username string
	password string
}

type loginModel struct {
	username textinput.Model
	password textinput.Model
	focus    int
	loading  bool
}

func newLoginModel() loginModel {
	username := textinput.New()
	username.Placeholder = "Enter your username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Enter your password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return loginModel{username: username, password: password}
}

func (m loginModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) stopLoading() loginModel {
	m.loading = false
	return m
}

func (m loginModel) update(msg tea.Msg) (loginModel, *loginSubmit, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.loading {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			if m.focus == 0 {
				m.focus = 1
				m.username.Blur()
				return m, nil, m.password.Focus()
			}
			m.focus = 0
			m.password.Blur()
			return m, nil, m.username.Focus()
		case "enter":
			if m.focus == 0 {
				m.focus = 1
				m.username.Blur()
				return m, nil, m.password.Focus()
			}
			username := strings.TrimSpace(m.username.Value())
			password := m.password.Value()
			if username == "" || password == "" {
				return m, &loginSubmit{}, nil
			}
			m.loading = true
			return m, &loginSubmit{username: username, password: password}, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, nil, tea.Batch(cmds...)
}

func (m loginModel) view(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Value.Render("Login to FruitVision"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Enter your credentials to access your account"))
	b.WriteString("\n\n")
	b.WriteString(styles.Label.Render("Username") + "\n" + m.username.View() + "\n\n")
	b.WriteString(styles.Label.Render("Password") + "\n" + m.password.View() + "\n\n")
	if m.loading {
		b.WriteString(styles.Muted.Render("Logging in..."))
	} else {
		b.WriteString(styles.Help.Render("enter submit • tab switch field • esc back"))
	}
	return styles.Box.Render(b.String())
}
