// Package retriever ranks chunks against a query using lexical overlap.
// There is no index build step and no external service: every chunk in the
// collection is scored on each call, which keeps the ranking deterministic
// and explainable for collections of the size this tool targets.
package retriever

import (
	"sort"
	"strings"
	"unicode"

	"logtriage/internal/domain"
	"logtriage/internal/port"
)

// tokenSet normalizes text into a deduplicated token set: lowercase, strip
// characters that are neither word characters nor whitespace, split on
// whitespace, and drop tokens of length <= 2 (a coarse stop-word
// approximation). Repeated words count once; the scorer favors vocabulary
// coverage over term frequency.
func tokenSet(text string) map[string]struct{} {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	set := make(map[string]struct{})
	for _, word := range strings.Fields(b.String()) {
		if len(word) <= 2 {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

// jaccard scores the overlap of two token sets: |A∩B| / |A∪B|. An empty
// union scores 0 (the divisor is substituted with 1 rather than dividing by
// zero).
func jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		union = 1
	}
	return float64(inter) / float64(union)
}

// Rank scores every chunk against the query and returns the top-k results in
// descending score order. The sort is stable, so equally-scored chunks keep
// their input order. Rank never fails: an empty query, an empty collection,
// or k <= 0 all produce a defined result.
func Rank(query string, chunks []domain.Chunk, topK int) []domain.ScoredChunk {
	if len(chunks) == 0 || topK <= 0 {
		return nil
	}

	queryTokens := tokenSet(query)

	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		scored = append(scored, domain.ScoredChunk{
			Chunk: chunk,
			Score: jaccard(queryTokens, tokenSet(chunk.Text)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored
}

// LexicalRetriever adapts Rank to the Retriever port by snapshotting the
// store's flattened chunk list before ranking. The snapshot keeps retrieval
// consistent when ingestion runs concurrently.
type LexicalRetriever struct {
	store port.DocumentStore
}

func NewLexicalRetriever(store port.DocumentStore) *LexicalRetriever {
	return &LexicalRetriever{store: store}
}

func (r *LexicalRetriever) Search(query string, k int) ([]domain.ScoredChunk, error) {
	chunks, err := r.store.ListChunks()
	if err != nil {
		return nil, err
	}
	return Rank(query, chunks, k), nil
}
