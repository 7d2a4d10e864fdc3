package pipeline

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"partpick/internal"
	"partpick/internal/catalog"
	"partpick/internal/logging"
	"partpick/internal/storage"
)

func newService(t *testing.T) (*ImportService, *catalog.Store, *storage.DB) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := catalog.NewSampleStore()
	return NewImportService(store, db, DecodeOptions{TextEncoding: EncodingAuto}, logging.Null()), store, db
}

func TestImportFileReplacesCatalog(t *testing.T) {
	svc, store, db := newService(t)
	store.Toggle("p1")
	store.SetQuery("강")

	path := filepath.Join(t.TempDir(), "parts.xlsx")
	blob := mkXLSX([][]any{
		{"품명", "수량"},
		{"[식물] 상추", 2},
		{"[동물] 강아지", ""},
	})
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := svc.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Items != 2 || res.Preselected != 1 || res.Source != internal.SourceXLSX {
		t.Fatalf("res=%+v", res)
	}
	if got := store.Categories(); !reflect.DeepEqual(got, []string{"All", "식물", "동물"}) {
		t.Fatalf("categories=%v", got)
	}
	if store.Output() != "상추x2" {
		t.Fatalf("output=%q", store.Output())
	}
	if store.Query() != "" || store.Category() != internal.CategoryAll {
		t.Fatal("filters not reset")
	}

	rows, err := db.ListImports(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Status != "imported" || rows[0].ItemCount != 2 || len(rows[0].Hash) != 64 {
		t.Fatalf("history=%+v", rows)
	}
	if got := svc.LastImportPath(); filepath.Base(got) != "parts.xlsx" {
		t.Fatalf("last path=%q", got)
	}

	svc.RecordOutput(store.Output(), 1, true)
	outs, _ := db.ListOutputs(5)
	if len(outs) != 1 || outs[0].ImportID == nil || *outs[0].ImportID != rows[0].ID {
		t.Fatalf("outputs=%+v", outs)
	}
}

func TestApplyEmptyImportKeepsCatalog(t *testing.T) {
	svc, store, db := newService(t)
	store.SetQuantity("p2", "3")
	before := store.Items()

	for _, rows := range [][][]string{nil, {{""}, {"  "}}, {{"수량"}, {"3"}}} {
		_, err := svc.Apply(Decoded{Filename: "empty.csv", Source: internal.SourceCSV, Rows: rows})
		if !errors.Is(err, internal.ErrEmptyImport) {
			t.Fatalf("err=%v", err)
		}
	}
	if !reflect.DeepEqual(store.Items(), before) || store.Quantity("p2") != 3 {
		t.Fatal("catalog changed by empty import")
	}

	rows, _ := db.ListImports(5)
	if len(rows) != 3 || rows[0].Status != "empty" {
		t.Fatalf("history=%+v", rows)
	}
}

func TestImportFileDecodeFailure(t *testing.T) {
	svc, store, db := newService(t)
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("PK\x03\x04garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := svc.ImportFile(context.Background(), path)
	if !errors.Is(err, internal.ErrDecodeFailure) {
		t.Fatalf("err=%v", err)
	}
	if len(store.Items()) != 5 {
		t.Fatal("catalog changed by failed decode")
	}
	rows, _ := db.ListImports(5)
	if len(rows) != 1 || rows[0].Status != "unreadable" {
		t.Fatalf("history=%+v", rows)
	}
}

func TestDecodeCancelled(t *testing.T) {
	svc, _, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Decode(ctx, "parts.csv", []byte("name\n볼트\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
}

func TestImportWithoutHistory(t *testing.T) {
	store := catalog.NewSampleStore()
	svc := NewImportService(store, nil, DecodeOptions{}, nil)
	d, err := svc.Decode(context.Background(), "parts.csv", []byte("[공구] 망치\n[공구] 줄자\n"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := svc.Apply(d)
	if err != nil {
		t.Fatal(err)
	}
	if res.Items != 2 || res.Preselected != 0 {
		t.Fatalf("res=%+v", res)
	}
	svc.RecordOutput("망치", 1, false)
	if svc.LastImportPath() != "" {
		t.Fatal("history disabled")
	}
}

func TestImportLogsHintRowsAndMetadataFailure(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewImportService(catalog.NewSampleStore(), db, DecodeOptions{}, logger)

	path := filepath.Join(t.TempDir(), "parts.csv")
	if err := os.WriteFile(path, []byte("품명,수량\n[공구] 망치,\n[공구] 렌치,4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ImportFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "row=3") || strings.Contains(logs.String(), "row=2") {
		t.Fatalf("logs=%s", logs.String())
	}
	if strings.Contains(logs.String(), "history write failed") {
		t.Fatalf("logs=%s", logs.String())
	}

	raw, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer raw.Close()
	if _, err := raw.Exec(`DROP TABLE metadata`); err != nil {
		t.Fatal(err)
	}

	logs.Reset()
	if _, err := svc.ImportFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "history write failed") || !strings.Contains(logs.String(), "table=metadata") {
		t.Fatalf("logs=%s", logs.String())
	}
}
