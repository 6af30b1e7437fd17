package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"logtriage/internal/domain"
	"logtriage/internal/port"
)

// Prompt templates for the two hosted-model calls. Kept short to minimize
// tokens; the citation marker format is what the UI parses.
const (
	cleanQuerySystemPrompt = `You turn raw infrastructure error logs into short search queries.
Keep the failing component, the error kind, and concrete identifiers such as
ports, hostnames, service names, and error codes. Drop timestamps, stack
frames, and request ids. Respond with the query text only, on one line.`

	diagnoseSystemPrompt = `You are an infrastructure troubleshooting assistant. Diagnose the
user's problem using ONLY the provided documentation excerpts. Cite every
excerpt you rely on with its marker, exactly as given, in the form
[Source ID: <documentId>]. If the excerpts do not cover the problem, say so
plainly instead of guessing. Be concise.`
)

const snippetLimit = 200

// AskUseCase runs the full pipeline: rewrite the raw log into a search
// query, retrieve the most relevant chunks, and generate a cited diagnosis.
// Hosted-model failures are returned to the caller; there are no retries
// here.
type AskUseCase struct {
	llm      port.LLM
	retrieve *RetrieveUseCase
	store    port.DocumentStore
	topK     int
	log      zerolog.Logger
}

func NewAskUseCase(llm port.LLM, retrieve *RetrieveUseCase, store port.DocumentStore, topK int, log zerolog.Logger) *AskUseCase {
	return &AskUseCase{
		llm:      llm,
		retrieve: retrieve,
		store:    store,
		topK:     topK,
		log:      log,
	}
}

// CleanQuery rewrites a raw error log into a short search query.
func (u *AskUseCase) CleanQuery(ctx context.Context, rawLog string) (string, error) {
	out, err := u.llm.GenerateWithSystem(ctx, cleanQuerySystemPrompt, rawLog)
	if err != nil {
		return "", fmt.Errorf("query cleaning failed: %w", err)
	}
	query := strings.TrimSpace(out)
	if query == "" {
		return "", fmt.Errorf("query cleaning returned empty output")
	}
	return query, nil
}

// Ask diagnoses a raw error log against the document collection.
func (u *AskUseCase) Ask(ctx context.Context, rawLog string) (*domain.Diagnosis, error) {
	if strings.TrimSpace(rawLog) == "" {
		return nil, fmt.Errorf("input log is empty")
	}

	query, err := u.CleanQuery(ctx, rawLog)
	if err != nil {
		return nil, err
	}
	u.log.Debug().Str("query", query).Msg("cleaned query")

	results, err := u.retrieve.Retrieve(query, u.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	answer, err := u.llm.GenerateWithSystem(ctx, diagnoseSystemPrompt, u.buildPrompt(query, results))
	if err != nil {
		return nil, fmt.Errorf("diagnosis generation failed: %w", err)
	}

	diagnosis := &domain.Diagnosis{
		RawInput: rawLog,
		Query:    query,
		Answer:   strings.TrimSpace(answer),
		Sources:  u.buildCitations(results),
		Model:    u.llm.ModelName(),
	}

	u.log.Info().
		Str("query", query).
		Int("sources", len(diagnosis.Sources)).
		Msg("diagnosis generated")

	return diagnosis, nil
}

func (u *AskUseCase) buildPrompt(query string, results []domain.ScoredChunk) string {
	var b strings.Builder
	b.WriteString("Problem: ")
	b.WriteString(query)
	b.WriteString("\n\nDocumentation excerpts:\n")

	if len(results) == 0 {
		b.WriteString("(no relevant documentation found)\n")
		return b.String()
	}

	for _, r := range results {
		title := ""
		if doc, err := u.store.GetDocument(r.Chunk.DocID); err == nil {
			title = doc.Title
		}
		fmt.Fprintf(&b, "\n[Source ID: %s] %s\n%s\n", r.Chunk.DocID, title, r.Chunk.Text)
	}
	return b.String()
}

func (u *AskUseCase) buildCitations(results []domain.ScoredChunk) []domain.Citation {
	citations := make([]domain.Citation, 0, len(results))
	for _, r := range results {
		snippet := r.Chunk.Text
		if len(snippet) > snippetLimit {
			snippet = snippet[:snippetLimit] + "..."
		}
		title := ""
		if doc, err := u.store.GetDocument(r.Chunk.DocID); err == nil {
			title = doc.Title
		}
		citations = append(citations, domain.Citation{
			DocID:   r.Chunk.DocID,
			ChunkID: r.Chunk.ID,
			Title:   title,
			Score:   r.Score,
			Snippet: snippet,
		})
	}
	return citations
}
