package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"passage/config"
	"passage/internal/adapter/analyzer"
	"passage/internal/adapter/store"
	"passage/internal/domain"
	"passage/internal/usecase"
)

var (
	queryText string
	queryTopK int
	queryJSON bool
	queryPage string
	queryPack bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the ingested corpus",
	Long: `Search for relevant passages using BM25 lexical retrieval. Results
carry citation provenance (source, domain, title). With --page, search a
single document with heading- and position-aware ranking instead.

Examples:
  passage query -q "pricing plans"
  passage query -q "install" --top-k 10 --json
  passage query -q "how billing works" --pack`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.Flags().StringVar(&queryPage, "page", "", "restrict to one document id, with heading/position boosting")
	queryCmd.Flags().BoolVar(&queryPack, "pack", false, "pack results into a budgeted context block")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
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

	topK := cfg.Retrieve.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	var (
		results  []domain.RankedResult
		warnings []domain.Warning
	)
	if queryPage != "" {
		results, warnings, err = retrieveUC.SearchPage(queryPage, queryText, topK)
	} else {
		results, warnings, err = retrieveUC.SearchCorpus(queryText, topK)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if queryPack {
		policy, _ := analyzer.ParsePolicy(cfg.Engine.CorpusStopWords)
		packUC := usecase.NewPackUseCase(analyzer.NewTokenizer(policy))
		packed := packUC.Pack(queryText, results, cfg.Pack.TokenBudget)
		return printJSON(packed)
	}

	if queryJSON {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, r := range results {
		fmt.Printf("%d. [%.3f] %s\n", i+1, r.Score, headline(r))
		if r.Domain != "" {
			fmt.Printf("   source: %s (%s)\n", r.SourceURL, r.Domain)
		}
		fmt.Printf("   %s\n\n", truncate(r.Text, 200))
	}
	return nil
}

func headline(r domain.RankedResult) string {
	switch {
	case r.Heading != "" && r.Title != "":
		return fmt.Sprintf("%s - %s", r.Title, r.Heading)
	case r.Heading != "":
		return r.Heading
	case r.Title != "":
		return r.Title
	default:
		return r.SectionID
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
