package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"logtriage/internal/usecase"
)

var addTitle string

var addCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add a single document to the collection",
	Long: `Add a document from a file, or from stdin when no file is given.

Examples:
  logtriage add runbook.md --title "MySQL runbook"
  cat notes.txt | logtriage add --title "On-call notes"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "document title (default is the file name)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	var text, title string

	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		text = string(data)
		title = filepath.Base(args[0])
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if addTitle != "" {
		title = addTitle
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	chk, err := newSplitter()
	if err != nil {
		return fmt.Errorf("invalid chunking config: %w", err)
	}

	ingest := usecase.NewIngestUseCase(st, chk, nil, logger)
	doc, chunks, err := ingest.AddDocument(title, text)
	if err != nil {
		return err
	}

	fmt.Printf("Added %q (%s): %d chunks\n", doc.Title, doc.ID, chunks)
	return nil
}
