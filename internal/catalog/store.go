package catalog

import (
	"partpick/internal"
	"partpick/internal/util"
)

// Store holds the current catalog, the selection and the filter state.
// It is owned by one goroutine; callers serialize access.
type Store struct {
	items     []internal.Item
	index     *Index
	selection internal.Selection
	query     string
	category  string
}

func NewStore(items []internal.Item) *Store {
	s := &Store{}
	s.ReplaceCatalog(items, nil)
	return s
}

func NewSampleStore() *Store {
	return NewStore(SampleItems())
}

// ReplaceCatalog swaps in a new catalog. The selection becomes sel restricted
// to ids of the new items with positive quantities, and filters reset.
func (s *Store) ReplaceCatalog(items []internal.Item, sel internal.Selection) {
	next := make([]internal.Item, len(items))
	copy(next, items)
	idx := BuildIndex(next)

	selection := internal.Selection{}
	for id, qty := range sel {
		if qty > 0 && idx.Has(id) {
			selection[id] = qty
		}
	}

	s.items = next
	s.index = idx
	s.selection = selection
	s.query = ""
	s.category = internal.CategoryAll
}

func (s *Store) Toggle(id string) {
	if !s.index.Has(id) {
		return
	}
	if _, ok := s.selection[id]; ok {
		delete(s.selection, id)
		return
	}
	s.selection[id] = 1
}

// SetQuantity selects id with the coerced quantity; bad input becomes 1.
func (s *Store) SetQuantity(id, raw string) {
	if !s.index.Has(id) {
		return
	}
	s.selection[id] = util.CoerceQuantity(raw)
}

func (s *Store) ClearAll() {
	s.selection = internal.Selection{}
}

// Filter returns the items in category (or every category for "All") whose
// name contains query, ignoring case and whitespace.
func (s *Store) Filter(query, category string) []internal.Item {
	q := util.NormalizeSearch(query)
	out := []internal.Item{}
	for _, item := range s.items {
		if category != internal.CategoryAll && item.Category != category {
			continue
		}
		if !util.MatchesNormalized(s.index.NormalizedNameByID[item.ID], q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s *Store) Categories() []string {
	out := make([]string, 0, len(s.index.Categories)+1)
	out = append(out, internal.CategoryAll)
	return append(out, s.index.Categories...)
}

func (s *Store) SetQuery(query string) { s.query = query }

func (s *Store) Query() string { return s.query }

func (s *Store) SetCategory(category string) { s.category = category }

func (s *Store) Category() string { return s.category }

func (s *Store) Visible() []internal.Item {
	return s.Filter(s.query, s.category)
}

func (s *Store) Items() []internal.Item {
	out := make([]internal.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Item(id string) (internal.Item, bool) {
	pos, ok := s.index.PositionByID[id]
	if !ok {
		return internal.Item{}, false
	}
	return s.items[pos], true
}

func (s *Store) Selection() internal.Selection {
	return s.selection.Clone()
}

// Quantity returns 0 for unselected items.
func (s *Store) Quantity(id string) int {
	return s.selection[id]
}

func (s *Store) IsSelected(id string) bool {
	return s.selection[id] > 0
}

// SelectedItems lists selected items in catalog order.
func (s *Store) SelectedItems() []internal.Item {
	out := []internal.Item{}
	for _, item := range s.items {
		if s.selection[item.ID] > 0 {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store) Output() string {
	return Render(s.items, s.selection)
}
