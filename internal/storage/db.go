package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"partpick/internal"
)

// DB is the import/output history. It never stores the catalog itself.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS imports (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  filename TEXT NOT NULL,
  hash TEXT NOT NULL,
  source TEXT NOT NULL,
  itemCount INTEGER NOT NULL DEFAULT 0,
  preselected INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL,
  error TEXT,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_imports_hash ON imports(hash);

CREATE TABLE IF NOT EXISTS outputs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  importId INTEGER,
  output TEXT NOT NULL,
  entryCount INTEGER NOT NULL,
  copied INTEGER NOT NULL DEFAULT 0,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(importId) REFERENCES imports(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertImport(row internal.ImportRow, timings map[string]float64) (int, error) {
	timingsJSON, _ := json.Marshal(timings)
	var errText any
	if row.Error != "" {
		errText = row.Error
	}
	res, err := d.conn.Exec(`
INSERT INTO imports (traceId, filename, hash, source, itemCount, preselected, status, error, timingsJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, row.TraceID, row.Filename, row.Hash, row.Source, row.ItemCount, row.Preselected, row.Status, errText, string(timingsJSON))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (d *DB) GetImport(id int) (*internal.ImportRow, error) {
	var row internal.ImportRow
	var errText sql.NullString
	err := d.conn.QueryRow(`
SELECT id, traceId, filename, hash, source, itemCount, preselected, status, error, createdAt
FROM imports WHERE id = ?
`, id).Scan(
		&row.ID, &row.TraceID, &row.Filename, &row.Hash, &row.Source, &row.ItemCount, &row.Preselected, &row.Status, &errText, &row.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.Error = errText.String
	return &row, nil
}

// ListImports returns the newest imports first.
func (d *DB) ListImports(limit int) ([]internal.ImportRow, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, filename, hash, source, itemCount, preselected, status, error, createdAt
FROM imports ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ImportRow
	for rows.Next() {
		var row internal.ImportRow
		var errText sql.NullString
		if err := rows.Scan(&row.ID, &row.TraceID, &row.Filename, &row.Hash, &row.Source, &row.ItemCount, &row.Preselected, &row.Status, &errText, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.Error = errText.String
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) InsertOutput(importID *int, output string, entryCount int, copied bool) error {
	var ref any
	if importID != nil {
		ref = *importID
	}
	_, err := d.conn.Exec(`INSERT INTO outputs (importId, output, entryCount, copied) VALUES (?, ?, ?, ?)`, ref, output, entryCount, copied)
	return err
}

func (d *DB) ListOutputs(limit int) ([]internal.OutputRow, error) {
	rows, err := d.conn.Query(`
SELECT id, importId, output, entryCount, copied, createdAt
FROM outputs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.OutputRow
	for rows.Next() {
		var row internal.OutputRow
		var importID sql.NullInt64
		if err := rows.Scan(&row.ID, &importID, &row.Output, &row.EntryCount, &row.Copied, &row.CreatedAt); err != nil {
			return nil, err
		}
		if importID.Valid {
			id := int(importID.Int64)
			row.ImportID = &id
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
