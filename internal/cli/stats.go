package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"passage/config"
	"passage/internal/adapter/store"
	"passage/internal/usecase"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus and index diagnostics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	dbPath := config.CorpusDBPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no corpus found. Run 'passage index' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open corpus store: %w", err)
	}
	defer st.Close()

	retrieveUC := usecase.NewRetrieveUseCase(st, corpusParams(), pageParams())
	stats, err := retrieveUC.CorpusStats()
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}

	if statsJSON {
		return printJSON(stats)
	}

	fmt.Printf("Documents:      %d\n", stats.DocumentCount)
	fmt.Printf("Sections:       %d\n", stats.SectionCount)
	fmt.Printf("Unique terms:   %d\n", stats.UniqueTermCount)
	fmt.Printf("Average length: %.1f tokens\n", stats.AverageLength)
	return nil
}
