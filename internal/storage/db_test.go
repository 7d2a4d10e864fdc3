package storage

import (
	"path/filepath"
	"testing"

	"partpick/internal"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history", "partpick.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestImportHistory(t *testing.T) {
	db := openTemp(t)

	first, err := db.InsertImport(internal.ImportRow{TraceID: "t1", Filename: "a.xlsx", Hash: "h1", Source: "xlsx", ItemCount: 3, Preselected: 1, Status: "imported"}, map[string]float64{"totalMs": 4})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.InsertImport(internal.ImportRow{TraceID: "t2", Filename: "b.csv", Hash: "h2", Source: "csv", Status: "empty", Error: "no importable rows"}, nil); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListImports(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[0].Filename != "b.csv" || rows[0].Error != "no importable rows" {
		t.Fatalf("newest first expected: %+v", rows[0])
	}
	if rows[1].ItemCount != 3 || rows[1].Preselected != 1 || rows[1].Error != "" {
		t.Fatalf("unexpected row: %+v", rows[1])
	}

	got, err := db.GetImport(first)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.TraceID != "t1" {
		t.Fatalf("got %+v", got)
	}
	missing, err := db.GetImport(999)
	if err != nil || missing != nil {
		t.Fatalf("missing=%v err=%v", missing, err)
	}
}

func TestOutputHistory(t *testing.T) {
	db := openTemp(t)
	id, err := db.InsertImport(internal.ImportRow{TraceID: "t1", Filename: "a.xlsx", Hash: "h", Source: "xlsx", Status: "imported"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.InsertOutput(&id, "강아지,고양이x3", 2, true); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertOutput(nil, "상추", 1, false); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListOutputs(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Output != "상추" || rows[0].ImportID != nil || rows[0].Copied {
		t.Fatalf("unexpected: %+v", rows)
	}
	rows, _ = db.ListOutputs(5)
	if len(rows) != 2 || rows[1].ImportID == nil || *rows[1].ImportID != id || !rows[1].Copied {
		t.Fatalf("unexpected: %+v", rows)
	}
}

func TestMetadata(t *testing.T) {
	db := openTemp(t)
	v, err := db.GetMetadata("last_import_path")
	if err != nil || v != nil {
		t.Fatalf("v=%v err=%v", v, err)
	}
	_ = db.SetMetadata("last_import_path", "/tmp/a.xlsx")
	_ = db.SetMetadata("last_import_path", "/tmp/b.xlsx")
	v, err = db.GetMetadata("last_import_path")
	if err != nil || v == nil || *v != "/tmp/b.xlsx" {
		t.Fatalf("v=%v err=%v", v, err)
	}
}
