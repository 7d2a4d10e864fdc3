package catalog

import (
	"partpick/internal"
	"partpick/internal/util"
)

var sampleLabels = []struct{ id, label string }{
	{"p1", "[동물] 강아지"},
	{"p2", "[동물] 고양이"},
	{"p3", "[동물] 다람쥐"},
	{"p4", "[식물] 토마토"},
	{"p5", "[식물] 상추"},
}

// SampleItems is the catalog shown before anything has been imported.
func SampleItems() []internal.Item {
	out := make([]internal.Item, 0, len(sampleLabels))
	for _, s := range sampleLabels {
		category, name := util.ParseLabel(s.label)
		out = append(out, internal.Item{ID: s.id, Name: name, Category: category})
	}
	return out
}
