package app

import (
	"sort"

	"github.com/pmarin/filedex/models"
)

const (
	DefaultThreshold = 0.4
	DefaultLimit     = 20
)

// Searcher ranks stored records against a query string.
type Searcher struct {
	store *Store
}

func NewSearcher(store *Store) *Searcher {
	return &Searcher{store: store}
}

// Search scores every stored record against query and returns the survivors
// ordered best first. A record's composite score is the maximum of its name
// similarity, its path similarity, and an exact tag match (which counts as
// 1.0). Records are dropped when filter rejects them or the composite score
// falls below threshold. Zero or negative threshold and limit select the
// defaults. An empty result is not an error.
func (s *Searcher) Search(query string, filter *FileFilter, threshold float64, limit int) ([]models.ScoredResult, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	records, err := s.store.AllFiles()
	if err != nil {
		return nil, err
	}

	var results []models.ScoredResult
	for _, rec := range records {
		tags, err := s.store.TagsFor(rec.Path)
		if err != nil {
			return nil, err
		}
		if !filter.Admits(rec, tags) {
			continue
		}

		score := Ratio(query, rec.Name)
		if p := Ratio(query, rec.Path); p > score {
			score = p
		}
		for _, tag := range tags {
			// Exact tag hit pins the score to the maximum.
			if tag == query {
				score = 1.0
				break
			}
		}

		if score < threshold {
			continue
		}
		results = append(results, models.ScoredResult{
			Score: score,
			File:  rec,
			Tags:  tags,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].File.Path < results[j].File.Path
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
