package catalog

import (
	"reflect"
	"testing"

	"partpick/internal"
	"partpick/internal/util"
)

func names(items []internal.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestSampleStore(t *testing.T) {
	s := NewSampleStore()
	if got := names(s.Items()); !reflect.DeepEqual(got, []string{"강아지", "고양이", "다람쥐", "토마토", "상추"}) {
		t.Fatalf("items=%v", got)
	}
	if got := s.Categories(); !reflect.DeepEqual(got, []string{"All", "동물", "식물"}) {
		t.Fatalf("categories=%v", got)
	}
	if s.Output() != "" {
		t.Fatalf("output=%q", s.Output())
	}
}

func TestFilter(t *testing.T) {
	s := NewSampleStore()
	if got := s.Filter("", internal.CategoryAll); len(got) != 5 {
		t.Fatalf("len=%d", len(got))
	}
	if got := names(s.Filter("강 아", internal.CategoryAll)); !reflect.DeepEqual(got, []string{"강아지"}) {
		t.Fatalf("got %v", got)
	}
	if got := names(s.Filter("", "식물")); !reflect.DeepEqual(got, []string{"토마토", "상추"}) {
		t.Fatalf("got %v", got)
	}
	if got := s.Filter("강아지", "식물"); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
	if got := s.Filter("", "없는분류"); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestVisibleFollowsFilterState(t *testing.T) {
	s := NewSampleStore()
	s.SetCategory("동물")
	s.SetQuery("양")
	if got := names(s.Visible()); !reflect.DeepEqual(got, []string{"고양이"}) {
		t.Fatalf("got %v", got)
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	s := NewSampleStore()
	s.SetQuantity("p2", "3")
	before := s.Selection()
	s.Toggle("p1")
	if s.Quantity("p1") != 1 {
		t.Fatalf("qty=%d", s.Quantity("p1"))
	}
	s.Toggle("p1")
	if !reflect.DeepEqual(s.Selection(), before) {
		t.Fatalf("selection=%v want %v", s.Selection(), before)
	}
}

func TestSetQuantity(t *testing.T) {
	s := NewSampleStore()
	s.SetQuantity("p1", "0")
	if s.Quantity("p1") != 1 || !s.IsSelected("p1") {
		t.Fatalf("qty=%d", s.Quantity("p1"))
	}
	s.SetQuantity("p1", "4.8")
	if s.Quantity("p1") != 4 {
		t.Fatalf("qty=%d", s.Quantity("p1"))
	}
	s.SetQuantity("p1", "many")
	if s.Quantity("p1") != 1 {
		t.Fatalf("qty=%d", s.Quantity("p1"))
	}
	s.SetQuantity("nope", "3")
	s.Toggle("nope")
	if _, ok := s.Selection()["nope"]; ok {
		t.Fatal("unknown id selected")
	}
}

func TestSelectionIsACopy(t *testing.T) {
	s := NewSampleStore()
	s.Toggle("p1")
	sel := s.Selection()
	sel["p2"] = 9
	if s.IsSelected("p2") {
		t.Fatal("store mutated through copy")
	}
}

func TestReplaceCatalog(t *testing.T) {
	s := NewSampleStore()
	s.Toggle("p1")
	s.SetQuery("강")
	s.SetCategory("동물")

	items := []internal.Item{
		{ID: "a", Name: "상추", Category: "식물"},
		{ID: "b", Name: "볼트", Category: internal.CategoryUncategorized},
	}
	s.ReplaceCatalog(items, internal.Selection{"a": 2, "p1": 5, "b": 0})

	if got := s.Selection(); !reflect.DeepEqual(got, internal.Selection{"a": 2}) {
		t.Fatalf("selection=%v", got)
	}
	if s.Query() != "" || s.Category() != internal.CategoryAll {
		t.Fatalf("filters not reset: %q %q", s.Query(), s.Category())
	}
	if got := s.Categories(); !reflect.DeepEqual(got, []string{"All", "식물", "Uncategorized"}) {
		t.Fatalf("categories=%v", got)
	}
	if s.Output() != "상추x2" {
		t.Fatalf("output=%q", s.Output())
	}
}

func TestSelectedItemsCatalogOrder(t *testing.T) {
	s := NewSampleStore()
	s.Toggle("p5")
	s.Toggle("p1")
	if got := names(s.SelectedItems()); !reflect.DeepEqual(got, []string{"강아지", "상추"}) {
		t.Fatalf("got %v", got)
	}
	s.ClearAll()
	if len(s.SelectedItems()) != 0 || s.Output() != "" {
		t.Fatal("clear failed")
	}
}

func TestFilterAgreesWithMatchesQuery(t *testing.T) {
	s := NewStore([]internal.Item{
		{ID: "a", Name: "고양이 사료", Category: "동물"},
		{ID: "b", Name: "ＡＢＣ 볼트", Category: "공구"},
		{ID: "c", Name: "상추", Category: "식물"},
	})
	for _, q := range []string{"", "  ", "양이사", "abc", "ＡＢ", "볼 트", "상추", "없음"} {
		var want []string
		for _, item := range s.Items() {
			if util.MatchesQuery(item.Name, q) {
				want = append(want, item.Name)
			}
		}
		got := names(s.Filter(q, internal.CategoryAll))
		if len(got) == 0 && len(want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("query %q: filter=%v match=%v", q, got, want)
		}
	}
}
