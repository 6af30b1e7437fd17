package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"logtriage/internal/adapter/cache"
	"logtriage/internal/adapter/retriever"
	"logtriage/internal/usecase"
)

var (
	askQuery string
	askFile  string
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Diagnose an error message against the knowledge base",
	Long: `Clean the input with the model, retrieve matching documentation, and
generate a cited diagnosis.

Examples:
  logtriage ask -q "panic: runtime error: invalid memory address"
  logtriage ask -f crash.log`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "error message or question")
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "read the input from a file")
}

func runAsk(cmd *cobra.Command, args []string) error {
	input := askQuery
	if askFile != "" {
		data, err := os.ReadFile(askFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", askFile, err)
		}
		input = string(data)
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("provide an input with --query or --file")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	llm, err := newLLM()
	if err != nil {
		return err
	}

	queryCache := cache.NewQueryCache(cfg.Retrieve.CacheSize, cfg.CacheTTLDuration())
	retrieve := usecase.NewRetrieveUseCase(retriever.NewLexicalRetriever(st), queryCache, cfg.Retrieve.MinScore)
	ask := usecase.NewAskUseCase(llm, retrieve, st, cfg.Retrieve.TopK, logger)

	diagnosis, err := ask.Ask(cmd.Context(), input)
	if err != nil {
		return err
	}

	fmt.Println(diagnosis.Answer)
	if len(diagnosis.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range diagnosis.Sources {
			fmt.Printf("  - %s (%s, score %.3f)\n", src.Title, src.ChunkID, src.Score)
		}
	}
	return nil
}
