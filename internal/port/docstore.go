package port

import "logtriage/internal/domain"

// DocumentStore holds the document collection. Documents and their chunks
// are written together and removed together; there is no partial update.
//
// ListChunks returns a flattened snapshot: documents in insertion order,
// chunks within a document in sequence order. Retrieval ranks over that
// snapshot, so the snapshot order doubles as the tie-break order for
// equally-scored chunks.
type DocumentStore interface {
	PutDocument(doc domain.Document, chunks []domain.Chunk) error

	GetDocument(id string) (domain.Document, error)

	ListDocuments() ([]domain.Document, error)

	DeleteDocument(id string) error

	GetChunksByDoc(docID string) ([]domain.Chunk, error)

	ListChunks() ([]domain.Chunk, error)

	Stats() (domain.Stats, error)

	Close() error
}
