package usecase

import (
	"logtriage/internal/adapter/cache"
	"logtriage/internal/domain"
	"logtriage/internal/port"
)

// RetrieveUseCase handles search over the document collection, with an
// optional result cache and minimum-score filter in front of the retriever.
type RetrieveUseCase struct {
	retriever port.Retriever
	cache     *cache.QueryCache
	minScore  float64
}

func NewRetrieveUseCase(retriever port.Retriever, qc *cache.QueryCache, minScore float64) *RetrieveUseCase {
	return &RetrieveUseCase{
		retriever: retriever,
		cache:     qc,
		minScore:  minScore,
	}
}

// Retrieve returns the top-k chunks for the query, best first.
func (u *RetrieveUseCase) Retrieve(query string, topK int) ([]domain.ScoredChunk, error) {
	if u.cache != nil {
		if results, ok := u.cache.Get(query, topK); ok {
			return results, nil
		}
	}

	results, err := u.retriever.Search(query, topK)
	if err != nil {
		return nil, err
	}

	if u.minScore > 0 {
		filtered := make([]domain.ScoredChunk, 0, len(results))
		for _, r := range results {
			if r.Score >= u.minScore {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if u.cache != nil {
		u.cache.Put(query, topK, results)
	}
	return results, nil
}
