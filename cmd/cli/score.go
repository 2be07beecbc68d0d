package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openbom/bomsight/internal/domain/models"
	"github.com/openbom/bomsight/internal/domain/service"
)

var scoreCmd = &cobra.Command{
	Use:   "score <metrics.json>",
	Short: "Score a metrics document and print the per-entity results.",
	Long: `Reads a metrics fixture document, fits the lead-time normalizer over the
file's own population and prints score, tier and recommended actions for
every entity.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var doc struct {
		Samples []models.EntityMetrics `json:"samples"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	if len(doc.Samples) == 0 {
		return fmt.Errorf("%s contains no samples", args[0])
	}

	leadTimes := make([]float64, len(doc.Samples))
	for i, m := range doc.Samples {
		leadTimes[i] = float64(m.LeadTimeDays)
	}
	norm, err := service.NewNormalizer(leadTimes)
	if err != nil {
		return err
	}

	scorer := service.NewRiskScorer()
	advisor := service.NewActionAdvisor()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tSCORE\tTIER\tACTIONS")
	for _, m := range doc.Samples {
		result := scorer.Score(m, norm, advisor)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", result.EntityID, result.Score, result.Tier, strings.Join(result.Actions, "; "))
	}
	return w.Flush()
}
