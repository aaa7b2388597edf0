package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fruitvision/fruitvision/internal/upload"
)

type predictActionKind int

const (
	predictActionNone predictActionKind = iota
	predictActionPick
	predictActionSubmit
)

// predictAction tells the root model what the predict view wants done.
type predictAction struct {
	kind predictActionKind
	path string
}

type predictModel struct {
	picker  filepicker.Model
	picking bool

	pending *upload.Pending
	preview *upload.Preview

	spinner spinner.Model
	loading bool

	width  int
	height int
}

func newPredictModel() predictModel {
	picker := filepicker.New()
	picker.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}
	if home, err := os.UserHomeDir(); err == nil {
		picker.CurrentDirectory = home
	}
	picker.Height = 12

	s := spinner.New()
	s.Spinner = spinner.Dot

	return predictModel{picker: picker, spinner: s}
}

// open prepares the view when the user navigates to it. With nothing pending
// the file picker opens immediately.
func (m predictModel) open() (predictModel, tea.Cmd) {
	if m.pending == nil && !m.loading {
		m.picking = true
		return m, m.picker.Init()
	}
	return m, nil
}

func (m predictModel) resize(width, height int) predictModel {
	m.width = width
	m.height = height
	if h := height - 10; h > 4 {
		m.picker.Height = h
	}
	return m
}

func (m predictModel) setPending(p *upload.Pending) predictModel {
	m.pending = p
	m.preview = nil
	return m
}

func (m predictModel) setPreview(p upload.Preview) predictModel {
	m.preview = &p
	return m
}

func (m predictModel) stopLoading() predictModel {
	m.loading = false
	return m
}

func (m predictModel) closePicker() predictModel {
	m.picking = false
	return m
}

func (m predictModel) update(msg tea.Msg) (predictModel, predictAction, tea.Cmd) {
	if m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, predictAction{}, cmd
	}

	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
			m.picking = false
			return m, predictAction{kind: predictActionPick, path: path}, cmd
		}
		if didSelect, path := m.picker.DidSelectDisabledFile(msg); didSelect {
			// Route it through the validator anyway so the user sees the real
			// reason instead of a silently refused cursor.
			m.picking = false
			return m, predictAction{kind: predictActionPick, path: path}, cmd
		}
		return m, predictAction{}, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "c":
			m.picking = true
			return m, predictAction{}, m.picker.Init()
		case "x":
			// Cancel the current selection.
			return m, predictAction{kind: predictActionPick, path: ""}, nil
		case "enter":
			m.loading = true
			return m, predictAction{kind: predictActionSubmit}, m.spinner.Tick
		}
	}
	return m, predictAction{}, nil
}

func (m predictModel) view(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Value.Render("Fruit Analysis"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Upload an image of a fruit to analyze and get detailed insights"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Analyzing Image...\n")
		return styles.Box.Render(b.String())
	}

	if m.picking {
		b.WriteString("Pick an image (JPG, PNG, GIF up to 5MB)\n\n")
		b.WriteString(m.picker.View())
		b.WriteString("\n" + styles.Help.Render("enter select • esc cancel"))
		return styles.Box.Render(b.String())
	}

	if m.pending != nil {
		b.WriteString(styles.Label.Render("Selected: ") + m.pending.Name +
			styles.Muted.Render(fmt.Sprintf("  (%s, %s)", m.pending.MIMEType, formatSize(m.pending.Size))))
		b.WriteString("\n\n")
		if m.preview != nil {
			b.WriteString(m.preview.Terminal)
			b.WriteString("\n")
			b.WriteString(styles.Muted.Render(fmt.Sprintf("%dx%d px", m.preview.Width, m.preview.Height)))
			b.WriteString("\n\n")
		}
		b.WriteString(styles.Help.Render("enter analyze • c change image • x clear • esc back"))
	} else {
		b.WriteString(styles.Muted.Render("No image selected."))
		b.WriteString("\n\n")
		b.WriteString(styles.Help.Render("c choose an image • esc back"))
	}
	return styles.Box.Render(b.String())
}

func formatSize(bytes int64) string {
	const (
		kib = 1024
		mib = 1024 * kib
	)
	switch {
	case bytes >= mib:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mib)
	case bytes >= kib:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kib)
	}
	return fmt.Sprintf("%d B", bytes)
}
