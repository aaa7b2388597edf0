package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fruitvision/fruitvision/internal/app"
	"github.com/fruitvision/fruitvision/internal/result"
)

var predictCmd = &cobra.Command{
	Use:   "predict <image>",
	Short: "Classify a fruit image and print the result",
	Long: `Classify a fruit image and print the predicted class, confidence,
ripeness and model metrics. Chart images returned by the service are saved
under the user cache directory.

The image must be a JPEG, PNG or similar image file of at most 5 MB.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := app.Bootstrap(appOptions())
		if err != nil {
			return err
		}

		if _, err := env.Validator.Accept(args[0]); err != nil {
			return err
		}
		pending, err := env.Validator.Submit()
		if err != nil {
			return err
		}

		res, err := env.Client.Predict(cmd.Context(), pending.Name, pending.Data)
		if err != nil {
			return err
		}

		view := result.New(res)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Class:      %s\n", view.Class)
		fmt.Fprintf(out, "Confidence: %s\n", view.Confidence)
		fmt.Fprintf(out, "Type:       %s\n", view.FruitType)
		fmt.Fprintf(out, "Ripeness:   %s\n", view.Ripeness)
		fmt.Fprintf(out, "Precision:  %s\n", view.Precision)
		fmt.Fprintf(out, "Recall:     %s\n", view.Recall)
		fmt.Fprintf(out, "F1 Score:   %s\n", view.F1Score)
		fmt.Fprintf(out, "Accuracy:   %s\n", view.Accuracy)

		charts, err := result.SaveCharts(res.Visualizations, env.ChartDir)
		if err != nil {
			return fmt.Errorf("save charts: %w", err)
		}
		for _, chart := range charts {
			fmt.Fprintf(out, "%s: %s\n", chart.Title, chart.Path)
		}
		return nil
	},
}
