package port

import "logtriage/internal/domain"

// Retriever defines the interface for searching the document collection.
type Retriever interface {
	// Search scores every chunk against the query and returns the top-k
	// results in descending relevance order.
	Search(query string, k int) ([]domain.ScoredChunk, error)
}
