package domain

import "time"

// Document is a named unit of source text submitted by a user. Documents are
// immutable once created; the only mutation is whole-document deletion, which
// cascades to the document's chunks.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Chunk is a contiguous substring of a document's text, sized so a handful
// of chunks fit in a model prompt. DocID is a copied identifier used for
// citation and lookup, never a live reference. Index is the chunk's sequence
// position within its document.
type Chunk struct {
	ID    string `json:"id"`
	DocID string `json:"doc_id"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// ScoredChunk pairs a chunk with its relevance score for a query.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// Citation points at a chunk that supported a diagnosis.
type Citation struct {
	DocID   string  `json:"doc_id"`
	ChunkID string  `json:"chunk_id"`
	Title   string  `json:"title,omitempty"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet,omitempty"`
}

// Diagnosis is the result of the ask pipeline: the cleaned query that was
// actually searched, the generated answer, and the chunks it was grounded on.
type Diagnosis struct {
	RawInput string     `json:"raw_input"`
	Query    string     `json:"query"`
	Answer   string     `json:"answer"`
	Sources  []Citation `json:"sources"`
	Model    string     `json:"model,omitempty"`
}

// Stats summarizes the document collection.
type Stats struct {
	TotalDocs   int     `json:"total_docs"`
	TotalChunks int     `json:"total_chunks"`
	AvgChunkLen float64 `json:"avg_chunk_len"`
}
