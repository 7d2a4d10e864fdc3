package pipeline

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"partpick/internal"
	"partpick/internal/util"
)

const suggestDiceThreshold = 0.5

// Suggest ranks near misses for a query that matched nothing. Items whose
// names contain the query letters in order come first, closest first; then
// names with a bigram similarity of at least one half.
func Suggest(items []internal.Item, query string, limit int) []internal.Item {
	q := util.NormalizeSearch(query)
	if q == "" || limit <= 0 || len(items) == 0 {
		return nil
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = util.NormalizeSearch(item.Name)
	}

	ranks := fuzzy.RankFindNormalizedFold(q, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]internal.Item, 0, limit)
	taken := map[int]struct{}{}
	for _, r := range ranks {
		if len(out) == limit {
			return out
		}
		out = append(out, items[r.OriginalIndex])
		taken[r.OriginalIndex] = struct{}{}
	}

	type scored struct {
		idx   int
		score float64
	}
	var similar []scored
	for i, name := range names {
		if _, ok := taken[i]; ok {
			continue
		}
		if score := util.DiceCoefficient(q, name); score >= suggestDiceThreshold {
			similar = append(similar, scored{idx: i, score: score})
		}
	}
	sort.SliceStable(similar, func(i, j int) bool { return similar[i].score > similar[j].score })
	for _, s := range similar {
		if len(out) == limit {
			break
		}
		out = append(out, items[s.idx])
	}
	return out
}
