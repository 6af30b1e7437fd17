// Package memstore holds the document collection in process memory. It is
// the collection the browser (wasm) build and the HTTP server use; nothing
// outlives the session.
package memstore

import (
	"fmt"
	"sync"

	"logtriage/internal/domain"
)

type MemoryStore struct {
	mu       sync.RWMutex
	docs     map[string]domain.Document
	chunks   map[string][]domain.Chunk
	docOrder []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:   make(map[string]domain.Document),
		chunks: make(map[string][]domain.Chunk),
	}
}

// PutDocument stores a document together with its chunks. Re-putting an
// existing id replaces the document and its chunks but keeps its position in
// the insertion order.
func (s *MemoryStore) PutDocument(doc domain.Document, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[doc.ID]; !exists {
		s.docOrder = append(s.docOrder, doc.ID)
	}
	s.docs[doc.ID] = doc
	s.chunks[doc.ID] = append([]domain.Chunk(nil), chunks...)
	return nil
}

func (s *MemoryStore) GetDocument(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return doc, nil
}

func (s *MemoryStore) ListDocuments() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docOrder))
	for _, id := range s.docOrder {
		docs = append(docs, s.docs[id])
	}
	return docs, nil
}

// DeleteDocument removes a document and all its chunks. Deleting an unknown
// id is not an error.
func (s *MemoryStore) DeleteDocument(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return nil
	}
	delete(s.docs, id)
	delete(s.chunks, id)
	for i, d := range s.docOrder {
		if d == id {
			s.docOrder = append(s.docOrder[:i], s.docOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) GetChunksByDoc(docID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Chunk(nil), s.chunks[docID]...), nil
}

// ListChunks returns a copied snapshot of every chunk: documents in
// insertion order, chunks within a document in sequence order.
func (s *MemoryStore) ListChunks() ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []domain.Chunk
	for _, id := range s.docOrder {
		all = append(all, s.chunks[id]...)
	}
	return all, nil
}

func (s *MemoryStore) Stats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.Stats{TotalDocs: len(s.docs)}
	totalLen := 0
	for _, chunks := range s.chunks {
		stats.TotalChunks += len(chunks)
		for _, c := range chunks {
			totalLen += len(c.Text)
		}
	}
	if stats.TotalChunks > 0 {
		stats.AvgChunkLen = float64(totalLen) / float64(stats.TotalChunks)
	}
	return stats, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
