package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"logtriage/internal/adapter/retriever"
	"logtriage/internal/usecase"
)

var (
	searchQuery string
	searchTopK  int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the document collection",
	Long: `Rank chunks against a query by lexical overlap, without calling the
hosted model.

Examples:
  logtriage search -q "connection refused 3306"
  logtriage search -q "oom killed pod" --top-k 10 --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

// SearchResult is a simplified result for CLI output.
type SearchResult struct {
	DocID   string  `json:"doc_id"`
	ChunkID string  `json:"chunk_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	topK := cfg.Retrieve.TopK
	if searchTopK > 0 {
		topK = searchTopK
	}

	retrieve := usecase.NewRetrieveUseCase(retriever.NewLexicalRetriever(st), nil, cfg.Retrieve.MinScore)
	scored, err := retrieve.Retrieve(searchQuery, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(scored))
	for _, s := range scored {
		title := ""
		if doc, err := st.GetDocument(s.Chunk.DocID); err == nil {
			title = doc.Title
		}
		results = append(results, SearchResult{
			DocID:   s.Chunk.DocID,
			ChunkID: s.Chunk.ID,
			Title:   title,
			Score:   s.Score,
			Text:    s.Chunk.Text,
		})
	}

	if searchJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(results), searchQuery)
	for i, r := range results {
		fmt.Printf("--- [%d] %s (%s, score: %.3f) ---\n", i+1, r.Title, r.ChunkID, r.Score)
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}
	return nil
}
