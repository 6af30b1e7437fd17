package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"logtriage/internal/usecase"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage documents in the knowledge base",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		docs, err := st.ListDocuments()
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("No documents in the knowledge base.")
			return nil
		}
		for _, doc := range docs {
			chunks, _ := st.GetChunksByDoc(doc.ID)
			fmt.Printf("%s  %s  (%d chunks, added %s)\n",
				doc.ID, doc.Title, len(chunks), doc.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var docsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sp, err := newSplitter()
		if err != nil {
			return err
		}
		ingest := usecase.NewIngestUseCase(st, sp, nil, logger)
		if err := ingest.RemoveDocument(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

var docsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("Documents:        %d\n", stats.TotalDocs)
		fmt.Printf("Chunks:           %d\n", stats.TotalChunks)
		fmt.Printf("Avg chunk length: %.1f bytes\n", stats.AvgChunkLen)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsRmCmd)
	docsCmd.AddCommand(docsStatsCmd)
}
