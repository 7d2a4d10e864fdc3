package catalog

import (
	"partpick/internal"
	"partpick/internal/util"
)

type Index struct {
	PositionByID       map[string]int
	Categories         []string
	NormalizedNameByID map[string]string
}

// BuildIndex records item positions, categories in first-seen order and the
// search form of every name.
func BuildIndex(items []internal.Item) *Index {
	idx := &Index{
		PositionByID:       make(map[string]int, len(items)),
		Categories:         []string{},
		NormalizedNameByID: make(map[string]string, len(items)),
	}

	seen := map[string]struct{}{}
	for i, item := range items {
		idx.PositionByID[item.ID] = i
		idx.NormalizedNameByID[item.ID] = util.NormalizeSearch(item.Name)
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		idx.Categories = append(idx.Categories, item.Category)
	}

	return idx
}

func (idx *Index) Has(id string) bool {
	_, ok := idx.PositionByID[id]
	return ok
}
