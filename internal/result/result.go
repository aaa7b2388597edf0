// Package result maps a prediction response into display-ready form. It does
// formatting only: no retries, no caching, no derived computation.
package result

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fruitvision/fruitvision/internal/api"
)

// View is the flattened, display-ready form of a prediction.
type View struct {
	Class      string
	Confidence string
	FruitType  string
	Ripeness   string
	Precision  string
	Recall     string
	F1Score    string
	Accuracy   string
}

// New builds a View from a prediction, formatting every 0-1 fraction as a
// percentage and passing labels through untouched.
func New(res *api.PredictionResult) View {
	if res == nil {
		return View{}
	}
	return View{
		Class:      res.PredictedClass,
		Confidence: FormatMetric(res.Probability),
		FruitType:  res.ClassInfo.FruitType,
		Ripeness:   res.ClassInfo.Ripeness,
		Precision:  FormatMetric(res.Metrics.Precision),
		Recall:     FormatMetric(res.Metrics.Recall),
		F1Score:    FormatMetric(res.Metrics.F1Score),
		Accuracy:   FormatMetric(res.Metrics.Accuracy),
	}
}

// FormatMetric renders a 0-1 fraction as a percentage with two decimals.
func FormatMetric(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// Chart pairs a decoded visualization with its display metadata.
type Chart struct {
	Title       string
	Description string
	Path        string
}

// SaveCharts decodes the base64 chart payloads and writes them as PNG files
// under dir so they can be opened in an image viewer. Charts the backend left
// empty are skipped. Each prediction overwrites the previous charts; results
// are never accumulated.
func SaveCharts(vis api.Visualizations, dir string) ([]Chart, error) {
	entries := []struct {
		title, description, file, payload string
	}{
		{"Class Distribution", "Distribution of different classes in the dataset", "class_distribution.png", vis.ClassDistribution},
		{"Confusion Matrix", "Evaluation of classification accuracy", "confusion_matrix.png", vis.ConfusionMatrix},
		{"Accuracy Graph", "Model accuracy over training epochs", "accuracy_graph.png", vis.AccuracyGraph},
	}

	var charts []Chart
	for _, entry := range entries {
		payload := strings.TrimSpace(entry.payload)
		if payload == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(stripDataURI(payload))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", entry.file, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create chart dir: %w", err)
		}
		path := filepath.Join(dir, entry.file)
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", entry.file, err)
		}
		charts = append(charts, Chart{Title: entry.title, Description: entry.description, Path: path})
	}
	return charts, nil
}

// DefaultChartDir returns the per-user cache location for decoded charts.
func DefaultChartDir() string {
	cache, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "fruitvision", "charts")
	}
	return filepath.Join(cache, "fruitvision", "charts")
}

// stripDataURI removes a "data:image/png;base64," style prefix when the
// backend embeds one.
func stripDataURI(payload string) string {
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			return payload[i+1:]
		}
	}
	return payload
}
