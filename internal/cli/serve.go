package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"logtriage/internal/adapter/cache"
	"logtriage/internal/adapter/retriever"
	"logtriage/internal/server"
	"logtriage/internal/usecase"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve the knowledge base over HTTP. Diagnosis requires model access;
if the API key is not configured the server still starts, with the ask
endpoint disabled.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind address (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sp, err := newSplitter()
	if err != nil {
		return err
	}

	queryCache := cache.NewQueryCache(cfg.Retrieve.CacheSize, cfg.CacheTTLDuration())
	ingest := usecase.NewIngestUseCase(st, sp, queryCache, logger)
	retrieve := usecase.NewRetrieveUseCase(retriever.NewLexicalRetriever(st), queryCache, cfg.Retrieve.MinScore)

	var ask *usecase.AskUseCase
	if llm, err := newLLM(); err != nil {
		logger.Warn().Err(err).Msg("model access unavailable, ask endpoint disabled")
	} else {
		ask = usecase.NewAskUseCase(llm, retrieve, st, cfg.Retrieve.TopK, logger)
	}

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv, err := server.NewServer(ingest, retrieve, ask, cfg.Retrieve.TopK, logger, server.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
