package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewHome view = iota
	viewLogin
	viewRegister
	viewPredict
	viewResult
)

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeSuccess
	noticeError
)

// notice is a dismissable inline message rendered near the active view.
type notice struct {
	kind noticeKind
	text string
}

// Model is the root Bubble Tea model. It routes messages to the active view
// and owns cross-view state: the current notice and auth-driven navigation.
type Model struct {
	opts   Options
	styles Styles

	view   view
	width  int
	height int

	notice notice

	login    loginModel
	register registerModel
	predict  predictModel
	result   resultModel
}

// New builds the root model.
func New(opts Options) Model {
	return Model{
		opts:     opts,
		styles:   defaultStyles(),
		view:     viewHome,
		login:    newLoginModel(),
		register: newRegisterModel(),
		predict:  newPredictModel(),
		result:   newResultModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.predict = m.predict.resize(msg.Width, msg.Height)
		m.result = m.result.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.notice.kind != noticeNone {
				m.notice = notice{}
				return m, nil
			}
			if m.view == viewPredict && m.predict.picking {
				m.predict = m.predict.closePicker()
				return m, nil
			}
			return m.navigateBack()
		}
		if m.view == viewHome {
			return m.updateHomeKeys(msg)
		}

	case loginResultMsg:
		m.login = m.login.stopLoading()
		if msg.err != nil {
			m.notice = notice{kind: noticeError, text: msg.err.Error()}
			return m, nil
		}
		m.notice = notice{kind: noticeSuccess, text: "You have been logged in successfully!"}
		return m.showPredict()

	case registerResultMsg:
		m.register = m.register.stopLoading()
		if msg.err != nil {
			m.notice = notice{kind: noticeError, text: msg.err.Error()}
			return m, nil
		}
		m.notice = notice{kind: noticeSuccess, text: "Registration successful! Please login."}
		m.view = viewLogin
		m.login = newLoginModel()
		return m, m.login.focusCmd()

	case fileAcceptedMsg:
		if msg.err != nil {
			m.notice = notice{kind: noticeError, text: msg.err.Error()}
			return m, nil
		}
		m.notice = notice{}
		m.predict = m.predict.setPending(msg.pending)
		if msg.pending == nil {
			return m, nil
		}
		return m, previewCmd(msg.pending, previewCols(m.width))

	case previewReadyMsg:
		if msg.err != nil {
			// The validation result already stands; a failed preview only
			// costs the thumbnail.
			return m, nil
		}
		if !m.opts.Validator.Latest(msg.preview.Generation) {
			return m, nil
		}
		m.predict = m.predict.setPreview(msg.preview)
		return m, nil

	case predictResultMsg:
		m.predict = m.predict.stopLoading()
		if msg.err != nil {
			m.notice = notice{kind: noticeError, text: msg.err.Error()}
			return m, nil
		}
		m.notice = notice{}
		m.result = m.result.setResult(msg.res, msg.charts)
		m.view = viewResult
		return m, nil
	}

	return m.updateActiveView(msg)
}

func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewLogin:
		var submit *loginSubmit
		m.login, submit, cmd = m.login.update(msg)
		if submit != nil {
			if submit.username == "" || submit.password == "" {
				m.notice = notice{kind: noticeError, text: "Please fill in all fields"}
				return m, nil
			}
			m.notice = notice{}
			return m, loginCmd(m.opts.Store, submit.username, submit.password)
		}
	case viewRegister:
		var submit *registerSubmit
		m.register, submit, cmd = m.register.update(msg)
		if submit != nil {
			if submit.username == "" || submit.password == "" {
				m.notice = notice{kind: noticeError, text: "Please fill in all fields"}
				return m, nil
			}
			m.notice = notice{}
			return m, registerCmd(m.opts.Store, submit.username, submit.password, submit.email)
		}
	case viewPredict:
		var action predictAction
		m.predict, action, cmd = m.predict.update(msg)
		switch action.kind {
		case predictActionPick:
			return m, acceptFileCmd(m.opts.Validator, action.path)
		case predictActionSubmit:
			pending, err := m.opts.Validator.Submit()
			if err != nil {
				m.notice = notice{kind: noticeError, text: err.Error()}
				m.predict = m.predict.stopLoading()
				return m, nil
			}
			m.notice = notice{}
			// The upload is handed off; a fresh selection is needed for the
			// next submission.
			m.predict = m.predict.setPending(nil)
			return m, tea.Batch(cmd, predictCmd(m.opts.Client, pending, m.opts.ChartDir))
		}
	case viewResult:
		m.result, cmd = m.result.update(msg)
	}
	return m, cmd
}

func (m Model) updateHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "l":
		m.notice = notice{}
		m.view = viewLogin
		m.login = newLoginModel()
		return m, m.login.focusCmd()
	case "r":
		m.notice = notice{}
		m.view = viewRegister
		m.register = newRegisterModel()
		return m, m.register.focusCmd()
	case "p":
		m.notice = notice{}
		return m.showPredict()
	case "o":
		if m.opts.Store.Current().Authenticated() {
			m.opts.Store.Logout()
			m.notice = notice{kind: noticeSuccess, text: "You have been logged out successfully."}
		}
		return m, nil
	}
	return m, nil
}

// showPredict navigates to the predict view, redirecting to login when the
// session is unauthenticated.
func (m Model) showPredict() (tea.Model, tea.Cmd) {
	if !m.opts.Store.Current().Authenticated() {
		m.view = viewLogin
		m.login = newLoginModel()
		m.notice = notice{kind: noticeError, text: "Please log in to analyze images."}
		return m, m.login.focusCmd()
	}
	m.view = viewPredict
	var cmd tea.Cmd
	m.predict, cmd = m.predict.open()
	return m, cmd
}

func (m Model) navigateBack() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewResult:
		// A new prediction fully replaces the prior one, so returning to the
		// form is always safe.
		return m.showPredict()
	case viewHome:
		return m, nil
	default:
		m.view = viewHome
		return m, nil
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("FruitVision"))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtitle.Render(m.headerStatus()))
	b.WriteString("\n\n")

	if m.notice.kind != noticeNone {
		style := m.styles.Notice.BorderForeground(m.styles.Success.GetForeground())
		text := m.styles.Success.Render(m.notice.text)
		if m.notice.kind == noticeError {
			style = m.styles.Notice.BorderForeground(m.styles.Error.GetForeground())
			text = m.styles.Error.Render(m.notice.text)
		}
		b.WriteString(style.Render(text + m.styles.Muted.Render("  (esc to dismiss)")))
		b.WriteString("\n\n")
	}

	switch m.view {
	case viewHome:
		b.WriteString(m.viewHome())
	case viewLogin:
		b.WriteString(m.login.view(m.styles))
	case viewRegister:
		b.WriteString(m.register.view(m.styles))
	case viewPredict:
		b.WriteString(m.predict.view(m.styles))
	case viewResult:
		b.WriteString(m.result.view(m.styles))
	}

	return b.String()
}

func (m Model) headerStatus() string {
	sess := m.opts.Store.Current()
	if sess.Authenticated() {
		name := sess.Username
		if name == "" {
			name = "User"
		}
		return "signed in as " + name
	}
	return "not signed in"
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString("Upload a fruit photo and get an instant classification\n")
	b.WriteString("with confidence, ripeness and model metrics.\n\n")

	entries := []struct{ key, label string }{
		{"p", "Analyze an image"},
		{"l", "Login"},
		{"r", "Register"},
		{"o", "Logout"},
		{"q", "Quit"},
	}
	for _, e := range entries {
		b.WriteString(m.styles.Label.Render("  "+e.key) + "  " + e.label + "\n")
	}
	return b.String()
}

func previewCols(width int) int {
	cols := width / 2
	if cols <= 0 {
		cols = 40
	}
	if cols > 60 {
		cols = 60
	}
	return cols
}
