package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"logtriage/internal/adapter/fs"
	"logtriage/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Bulk-ingest a documentation directory",
	Long: `Walk a directory and add every matching file as a document. Include and
exclude patterns come from the ingest section of the config.

Examples:
  logtriage ingest ./docs
  logtriage ingest ~/runbooks`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
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

	walker := fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes)
	files, err := walker.Walk(path)
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No matching files found.")
		return nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Ingesting"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	added, skipped, totalChunks := 0, 0, 0
	for _, file := range files {
		content, err := fs.ReadFile(file.Path)
		if err != nil {
			logger.Warn().Str("path", file.Path).Err(err).Msg("skipping unreadable file")
			skipped++
			bar.Add(1)
			continue
		}

		_, chunks, err := ingest.AddDocument(file.RelPath, content)
		if err != nil {
			logger.Warn().Str("path", file.Path).Err(err).Msg("skipping file")
			skipped++
			bar.Add(1)
			continue
		}
		added++
		totalChunks += chunks
		bar.Add(1)
	}

	fmt.Printf("Ingested %d documents (%d chunks), skipped %d\n", added, totalChunks, skipped)
	return nil
}
