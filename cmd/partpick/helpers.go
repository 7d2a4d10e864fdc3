package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"partpick/internal"
	"partpick/internal/catalog"
	"partpick/internal/util"
)

type selectEntry struct {
	ref string
	qty string
	set bool
}

// parseSelectList reads "name", "name=qty" or "id=qty" entries.
func parseSelectList(values []string) []selectEntry {
	out := make([]selectEntry, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		ref, qty, found := strings.Cut(v, "=")
		out = append(out, selectEntry{ref: strings.TrimSpace(ref), qty: strings.TrimSpace(qty), set: found})
	}
	return out
}

// resolveItem finds an item by id, then by exact name, then by search form.
func resolveItem(store *catalog.Store, ref string) (internal.Item, bool) {
	if item, ok := store.Item(ref); ok {
		return item, true
	}
	items := store.Items()
	for _, item := range items {
		if item.Name == ref {
			return item, true
		}
	}
	norm := util.NormalizeSearch(ref)
	for _, item := range items {
		if util.NormalizeSearch(item.Name) == norm {
			return item, true
		}
	}
	return internal.Item{}, false
}

func applySelection(store *catalog.Store, entries []selectEntry) error {
	for _, e := range entries {
		item, ok := resolveItem(store, e.ref)
		if !ok {
			return fmt.Errorf("no item named %q in the catalog", e.ref)
		}
		if e.set {
			store.SetQuantity(item.ID, e.qty)
		} else {
			store.Toggle(item.ID)
		}
	}
	return nil
}

func exportPath(outputDir, path string) string {
	if filepath.IsAbs(path) || filepath.Dir(path) != "." {
		return path
	}
	return filepath.Join(outputDir, path)
}

func formatRow(store *catalog.Store, item internal.Item) string {
	box := "[ ]"
	label := item.Name
	if store.IsSelected(item.ID) {
		box = "[x]"
		label = catalog.DisplayLabel(item.Name, store.Quantity(item.ID))
	}
	return fmt.Sprintf("%s %-12s %s", box, "["+item.Category+"]", label)
}
