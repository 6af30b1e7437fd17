// Package splitter turns free-text documents into bounded, boundary-aware
// chunks. Splitting prefers the least disruptive separator available
// (paragraph break, then line break, then space) and falls back to a
// character-level hard split only when a piece has no usable boundary.
//
// Note on overlap: the configured overlap is honored only by the hard-split
// fallback. The boundary-aware levels reassemble greedily and do not
// duplicate trailing context between adjacent chunks.
package splitter

import (
	"errors"
	"fmt"
	"strings"

	"logtriage/internal/domain"
)

// Defaults used when chunking ingested documents.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// ErrInvalidChunking is returned for a non-positive chunk size or an overlap
// that is negative or not smaller than the chunk size. Rejecting these at the
// constructor keeps the hard-split step positive and the recursion finite.
var ErrInvalidChunking = errors.New("splitter: chunk size must be positive and overlap must be in [0, chunk size)")

// separator hierarchy, most to least disruptive to avoid. The empty-string
// level (split into individual characters) is the hard-split fallback.
var separators = []string{"\n\n", "\n", " "}

// RecursiveSplitter splits text into chunks of at most chunkSize bytes,
// except that a hard-split remainder may be shorter but never longer.
type RecursiveSplitter struct {
	chunkSize    int
	chunkOverlap int
}

func NewRecursiveSplitter(chunkSize, chunkOverlap int) (*RecursiveSplitter, error) {
	if chunkSize <= 0 || chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, ErrInvalidChunking
	}
	return &RecursiveSplitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}, nil
}

// Split splits text into an ordered sequence of pieces. Empty input yields
// no pieces. Lengths are byte lengths.
func (s *RecursiveSplitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	return s.split(text, 0)
}

func (s *RecursiveSplitter) split(text string, level int) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}
	if level >= len(separators) {
		return s.hardSplit(text)
	}
	sep := separators[level]

	// Greedily reassemble the separated tokens: keep joining while the
	// accumulator stays strictly below the chunk size, flush otherwise.
	parts := strings.Split(text, sep)
	var pieces []string
	cur := ""
	started := false
	for _, part := range parts {
		if !started {
			cur = part
			started = true
			continue
		}
		joined := cur + sep + part
		if len(joined) < s.chunkSize {
			cur = joined
			continue
		}
		if cur != "" {
			pieces = append(pieces, cur)
		}
		cur = part
	}
	if started && cur != "" {
		pieces = append(pieces, cur)
	}

	// Pieces still over the bound re-enter at the next separator level.
	var out []string
	for _, piece := range pieces {
		if len(piece) <= s.chunkSize {
			out = append(out, piece)
			continue
		}
		out = append(out, s.split(piece, level+1)...)
	}
	return out
}

// hardSplit slices consecutive windows of chunkSize bytes, advancing by
// chunkSize-chunkOverlap each step. The step is at least 1 by construction,
// which guarantees termination even at chunkSize = 1.
func (s *RecursiveSplitter) hardSplit(text string) []string {
	step := s.chunkSize - s.chunkOverlap
	var out []string
	for start := 0; start < len(text); start += step {
		end := start + s.chunkSize
		if end > len(text) {
			end = len(text)
		}
		out = append(out, text[start:end])
		if end == len(text) {
			break
		}
	}
	return out
}

// Chunk implements port.Chunker: it splits a document's content, trims each
// piece, drops pieces that are empty after trimming, and assigns sequential
// identifiers of the form {documentID}-chunk-{index}. Identifiers are
// deterministic: the same document id and content always produce the same
// chunks in the same order.
func (s *RecursiveSplitter) Chunk(doc domain.Document, content string) ([]domain.Chunk, error) {
	pieces := s.Split(content)
	chunks := make([]domain.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		text := strings.TrimSpace(piece)
		if text == "" {
			continue
		}
		idx := len(chunks)
		chunks = append(chunks, domain.Chunk{
			ID:    fmt.Sprintf("%s-chunk-%d", doc.ID, idx),
			DocID: doc.ID,
			Index: idx,
			Text:  text,
		})
	}
	return chunks, nil
}
