package api

// PredictionResult mirrors the payload returned by POST /predict. The result
// is treated as immutable once received; each new prediction fully replaces
// the prior one on the caller's side.
type PredictionResult struct {
	PredictedClass string         `json:"predicted_class"`
	Probability    float64        `json:"probability"`
	ClassInfo      ClassInfo      `json:"class_info"`
	Metrics        Metrics        `json:"metrics"`
	Visualizations Visualizations `json:"visualizations"`
}

// ClassInfo describes the predicted fruit beyond its raw class label.
type ClassInfo struct {
	FruitType string `json:"fruit_type"`
	Ripeness  string `json:"ripeness"`
}

// Metrics carries the model evaluation scores, each a fraction in [0, 1].
type Metrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	Accuracy  float64 `json:"accuracy"`
}

// Visualizations holds the chart images rendered by the backend, each encoded
// as base64 PNG data suitable for inline embedding.
type Visualizations struct {
	ClassDistribution string `json:"class_distribution"`
	ConfusionMatrix   string `json:"confusion_matrix"`
	AccuracyGraph     string `json:"accuracy_graph"`
}
