package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"passage/config"
	"passage/internal/adapter/fs"
	"passage/internal/adapter/sectioner"
	"passage/internal/adapter/store"
	"passage/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Ingest documents into the corpus",
	Long: `Ingest documents in the specified directory for later retrieval.
Raw documents are stored in .passage/corpus.db within the target directory;
the retrieval index is rebuilt in memory on each query.

Examples:
  passage index .               # Ingest current directory
  passage index /path/to/docs   # Ingest specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := rootDir
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	if err := config.EnsureDir(path); err != nil {
		return fmt.Errorf("failed to create .passage directory: %w", err)
	}

	st, err := store.NewBoltStore(config.CorpusDBPath(path))
	if err != nil {
		return fmt.Errorf("failed to open corpus store: %w", err)
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes)
	ingestUC := usecase.NewIngestUseCase(st, walker, sectioner.New())

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	progress := func(done, total int, rel string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Ingesting"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		bar.Set(done)
	}

	result, err := ingestUC.Ingest(path, progress)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	if bar != nil {
		bar.Finish()
	}

	fmt.Printf("Ingested %d files (%d sections), skipped %d\n",
		result.FilesIngested, result.SectionsCreated, result.FilesSkipped)
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %s\n", e)
	}

	return nil
}
