package pipeline

import (
	"testing"

	"partpick/internal/catalog"
)

func TestSuggest(t *testing.T) {
	items := catalog.SampleItems()

	got := Suggest(items, "강지", 3)
	if len(got) == 0 || got[0].Name != "강아지" {
		t.Fatalf("got %+v", got)
	}

	got = Suggest(items, "다람지", 3)
	if len(got) != 1 || got[0].Name != "다람쥐" {
		t.Fatalf("got %+v", got)
	}

	if got := Suggest(items, "zzz", 3); len(got) != 0 {
		t.Fatalf("got %+v", got)
	}
	if got := Suggest(items, "", 3); got != nil {
		t.Fatalf("got %+v", got)
	}
	if got := Suggest(items, "강지", 0); got != nil {
		t.Fatalf("got %+v", got)
	}
}
