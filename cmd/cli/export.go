package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/openbom/bomsight/internal/application"
	"github.com/openbom/bomsight/internal/application/dto"
	"github.com/openbom/bomsight/internal/domain/service"
	"github.com/openbom/bomsight/internal/infrastructure/fixtures"
	"github.com/openbom/bomsight/pkg/logger"
)

var (
	exportDir string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the flattened hierarchy of a fixture directory as CSV.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "./fixtures", "fixture directory to load")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.NewNoopLogger()
	loader := fixtures.NewLoader(fixtures.DirSource{Dir: exportDir}, nil, log)

	pop, _, err := loader.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("fixture directory %s unusable: %w", exportDir, err)
	}

	aggregator := application.NewAggregatorService(service.NewRiskScorer(), service.NewActionAdvisor(), log)
	snap := aggregator.BuildSnapshot(cmd.Context(), pop)

	var out io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return dto.WriteRowsCSV(out, snap.Rows)
}
