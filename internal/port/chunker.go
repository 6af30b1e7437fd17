package port

import "logtriage/internal/domain"

type Chunker interface {
	Chunk(doc domain.Document, content string) ([]domain.Chunk, error)
}
