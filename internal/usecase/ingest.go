package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"logtriage/internal/adapter/cache"
	"logtriage/internal/domain"
	"logtriage/internal/port"
)

// IngestUseCase creates and removes documents. A document and its chunks are
// written in one operation and removed in one operation; every mutation
// invalidates the query cache.
type IngestUseCase struct {
	store   port.DocumentStore
	chunker port.Chunker
	cache   *cache.QueryCache
	log     zerolog.Logger
}

func NewIngestUseCase(store port.DocumentStore, chunker port.Chunker, qc *cache.QueryCache, log zerolog.Logger) *IngestUseCase {
	return &IngestUseCase{
		store:   store,
		chunker: chunker,
		cache:   qc,
		log:     log,
	}
}

// AddDocument ingests a document and returns it together with the number of
// chunks created.
func (u *IngestUseCase) AddDocument(title, text string) (domain.Document, int, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Document{}, 0, fmt.Errorf("document text is empty")
	}
	if title == "" {
		title = "untitled"
	}

	doc := domain.Document{
		ID:        uuid.NewString(),
		Title:     title,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	chunks, err := u.chunker.Chunk(doc, text)
	if err != nil {
		return domain.Document{}, 0, fmt.Errorf("failed to chunk document: %w", err)
	}
	if len(chunks) == 0 {
		return domain.Document{}, 0, fmt.Errorf("document produced no chunks")
	}

	if err := u.store.PutDocument(doc, chunks); err != nil {
		return domain.Document{}, 0, fmt.Errorf("failed to store document: %w", err)
	}
	if u.cache != nil {
		u.cache.Invalidate()
	}

	u.log.Info().
		Str("doc_id", doc.ID).
		Str("title", doc.Title).
		Int("chunks", len(chunks)).
		Msg("document ingested")

	return doc, len(chunks), nil
}

// RemoveDocument deletes a document and all its chunks.
func (u *IngestUseCase) RemoveDocument(id string) error {
	if err := u.store.DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if u.cache != nil {
		u.cache.Invalidate()
	}
	u.log.Info().Str("doc_id", id).Msg("document removed")
	return nil
}

func (u *IngestUseCase) ListDocuments() ([]domain.Document, error) {
	return u.store.ListDocuments()
}

func (u *IngestUseCase) GetDocument(id string) (domain.Document, error) {
	return u.store.GetDocument(id)
}

func (u *IngestUseCase) Stats() (domain.Stats, error) {
	return u.store.Stats()
}
