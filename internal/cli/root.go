package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"logtriage/config"
	"logtriage/internal/adapter/llm"
	"logtriage/internal/adapter/splitter"
	"logtriage/internal/adapter/store"
	"logtriage/internal/port"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "logtriage",
	Short: "Retrieval-augmented troubleshooting for infrastructure error logs",
	Long: `logtriage keeps a small collection of runbooks and docs, retrieves the
chunks most relevant to a pasted error log, and asks a hosted language model
for a cited diagnosis.

Example usage:
  logtriage add runbook.md --title "MySQL runbook"
  logtriage ingest ./docs              # Bulk-ingest a documentation directory
  logtriage search -q "connection refused 3306"
  logtriage ask -f error.log           # Full clean -> retrieve -> diagnose run
  logtriage serve                      # HTTP API for the browser front end`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		// Best effort; a missing .env file is not an error.
		_ = godotenv.Load()

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

		level, err := zerolog.ParseLevel(cfg.Logging.Level)
		if err != nil {
			level = zerolog.InfoLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./logtriage.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

// openStore opens the persistent document collection under rootDir.
func openStore() (port.DocumentStore, error) {
	if err := config.EnsureDataDir(rootDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	st, err := store.NewBoltStore(config.DocDBPath(rootDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	return st, nil
}

func newSplitter() (*splitter.RecursiveSplitter, error) {
	return splitter.NewRecursiveSplitter(cfg.Chunking.Size, cfg.Chunking.Overlap)
}

// newLLM builds the hosted-model client from config. The API key is resolved
// here, at the composition root, from the configured environment variable.
func newLLM() (port.LLM, error) {
	key := os.Getenv(cfg.LLM.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("API key not found: set the %s environment variable", cfg.LLM.APIKeyEnv)
	}
	return llm.NewClaudeClient(llm.Config{
		APIKey:            key,
		Model:             cfg.LLM.Model,
		MaxTokens:         cfg.LLM.MaxTokens,
		Timeout:           cfg.LLMTimeoutDuration(),
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	}, logger)
}
