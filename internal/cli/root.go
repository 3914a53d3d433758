package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"passage/config"
	"passage/internal/adapter/analyzer"
	"passage/internal/adapter/retriever"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "passage",
	Short: "Lexical passage retrieval - rank document sections against a query",
	Long: `passage indexes document sections with BM25 lexical retrieval and ranks
them against free-text queries, with citation provenance for multi-source
corpora and heading/position-aware boosting for single documents.

Example usage:
  passage index .                  # Ingest documents in current directory
  passage query -q "pricing"       # Search the ingested corpus
  passage query -q "setup" --pack  # Pack top passages into a context block`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		setupLogging(cfg.Logging.Level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./passage.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// corpusParams builds cross-corpus retriever parameters from config.
func corpusParams() retriever.Params {
	policy, _ := analyzer.ParsePolicy(cfg.Engine.CorpusStopWords)
	return retriever.Params{
		K1:             cfg.Engine.K1,
		B:              cfg.Engine.B,
		StopWordPolicy: policy,
	}
}

// pageParams builds single-document retriever parameters from config.
func pageParams() retriever.Params {
	policy, _ := analyzer.ParsePolicy(cfg.Engine.PageStopWords)
	return retriever.Params{
		K1:             cfg.Engine.K1,
		B:              cfg.Engine.B,
		StopWordPolicy: policy,
	}
}
