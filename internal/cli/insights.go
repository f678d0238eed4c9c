package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/moneyblueprint/internal/insights"
	"github.com/ppiankov/moneyblueprint/internal/pipeline"
	"github.com/ppiankov/moneyblueprint/internal/prompt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInsightsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "insights <file>",
		Short: "Show summary insights and risk flags for one wizard file",
		Long: `Insights derives the summary bullets and risk flags for a wizard export
without assembling the prompt.

Example:
  blueprint insights answers.json
  blueprint insights answers.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := pipeline.NewLoader(pipeline.DefaultMaxBytes).LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			derived := insights.Derive(loaded.Raw)
			a.logger.Debug("derived insights",
				zap.String("source", loaded.Source),
				zap.Int("summary_bullets", len(derived.SummaryBullets)),
				zap.Int("risk_flags", len(derived.RiskFlags)),
			)

			out := cmd.OutOrStdout()
			switch format {
			case "", "text":
				_, err = fmt.Fprintf(out, "Summary insights:\n%s\n\nRisk flags:\n%s\n",
					prompt.FormatSummary(derived.SummaryBullets),
					prompt.FormatRisks(derived.RiskFlags))
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(derived)
			default:
				return fmt.Errorf("unknown insights format: %s (supported: text, json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	return cmd
}
