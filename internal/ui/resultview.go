package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fruitvision/fruitvision/internal/api"
	"github.com/fruitvision/fruitvision/internal/result"
)

type resultModel struct {
	viewport viewport.Model
	summary  result.View
	charts   []result.Chart
	hasData  bool
	styles   Styles
	width    int
}

func newResultModel() resultModel {
	vp := viewport.New(80, 20)
	return resultModel{viewport: vp, styles: defaultStyles()}
}

func (m resultModel) resize(width, height int) resultModel {
	m.width = width
	m.viewport.Width = width
	if h := height - 6; h > 4 {
		m.viewport.Height = h
	}
	if m.hasData {
		m.viewport.SetContent(m.render())
	}
	return m
}

// setResult replaces the displayed prediction wholesale; results are never
// merged across submissions.
func (m resultModel) setResult(res *api.PredictionResult, charts []result.Chart) resultModel {
	m.summary = result.New(res)
	m.charts = charts
	m.hasData = true
	m.viewport.SetContent(m.render())
	m.viewport.GotoTop()
	return m
}

func (m resultModel) update(msg tea.Msg) (resultModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m resultModel) render() string {
	styles := m.styles
	var b strings.Builder

	b.WriteString(styles.Value.Render("Prediction Results"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Analysis of your fruit image"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString("  " + styles.Label.Render(label) + " " + styles.Value.Render(value) + "\n")
	}

	b.WriteString(styles.Subtitle.Render("Prediction") + "\n")
	row("Class:      ", m.summary.Class)
	row("Confidence: ", m.summary.Confidence)
	b.WriteString("\n")

	b.WriteString(styles.Subtitle.Render("Fruit Information") + "\n")
	row("Type:       ", m.summary.FruitType)
	row("Ripeness:   ", m.summary.Ripeness)
	b.WriteString("\n")

	b.WriteString(styles.Subtitle.Render("Performance Metrics") + "\n")
	row("Precision:  ", m.summary.Precision)
	row("Recall:     ", m.summary.Recall)
	row("F1 Score:   ", m.summary.F1Score)
	row("Accuracy:   ", m.summary.Accuracy)

	if len(m.charts) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render("Visualizations") + "\n")
		for _, chart := range m.charts {
			b.WriteString("  " + styles.Label.Render(chart.Title) + "\n")
			b.WriteString("  " + styles.Muted.Render(chart.Description) + "\n")
			b.WriteString("  " + chart.Path + "\n")
		}
	}

	return b.String()
}

func (m resultModel) view(styles Styles) string {
	if !m.hasData {
		return styles.Muted.Render("No prediction yet.")
	}
	return m.viewport.View() + "\n" + styles.Help.Render("↑/↓ scroll • esc new analysis")
}
