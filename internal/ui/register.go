package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// registerSubmit carries the details the user submitted for a new account.
type registerSubmit struct {
	username string
	email    string
	password string
}

type registerModel struct {
	inputs  []textinput.Model
	focus   int
	loading bool
}

func newRegisterModel() registerModel {
	username := textinput.New()
	username.Placeholder = "Choose a username"
	username.CharLimit = 64
	username.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Choose a password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return registerModel{inputs: []textinput.Model{username, email, password}}
}

func (m registerModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (m registerModel) stopLoading() registerModel {
	m.loading = false
	return m
}

func (m registerModel) setFocus(i int) (registerModel, tea.Cmd) {
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	var cmd tea.Cmd
	for idx := range m.inputs {
		if idx == m.focus {
			cmd = m.inputs[idx].Focus()
		} else {
			m.inputs[idx].Blur()
		}
	}
	return m, cmd
}

func (m registerModel) update(msg tea.Msg) (registerModel, *registerSubmit, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.loading {
		switch key.String() {
		case "tab", "down":
			m, cmd := m.setFocus(m.focus + 1)
			return m, nil, cmd
		case "shift+tab", "up":
			m, cmd := m.setFocus(m.focus - 1)
			return m, nil, cmd
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m, cmd := m.setFocus(m.focus + 1)
				return m, nil, cmd
			}
			submit := &registerSubmit{
				username: strings.TrimSpace(m.inputs[0].Value()),
				email:    strings.TrimSpace(m.inputs[1].Value()),
				password: m.inputs[2].Value(),
			}
			if submit.username != "" && submit.password != "" {
				m.loading = true
			}
			return m, submit, nil
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, nil, tea.Batch(cmds...)
}

func (m registerModel) view(styles Styles) string {
	labels := []string{"Username", "Email", "Password"}

	var b strings.Builder
	b.WriteString(styles.Value.Render("Create an account"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Enter your details to create a new account"))
	b.WriteString("\n\n")
	for i, input := range m.inputs {
		b.WriteString(styles.Label.Render(labels[i]) + "\n" + input.View() + "\n\n")
	}
	if m.loading {
		b.WriteString(styles.Muted.Render("Creating account..."))
	} else {
		b.WriteString(styles.Help.Render("enter submit • tab switch field • esc back"))
	}
	return styles.Box.Render(b.String())
}
