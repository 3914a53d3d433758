package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"passage/config"
	"passage/internal/adapter/store"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all ingested documents",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	dbPath := config.CorpusDBPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Nothing to clear.")
		return nil
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open corpus store: %w", err)
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		return fmt.Errorf("failed to clear corpus: %w", err)
	}

	fmt.Println("Corpus cleared.")
	return nil
}
