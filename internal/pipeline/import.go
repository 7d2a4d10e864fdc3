package pipeline

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"partpick/internal"
	"partpick/internal/catalog"
	"partpick/internal/storage"
)

const metaLastImportPath = "last_import_path"

// Decoded is a file turned into rows but not yet applied to a catalog.
type Decoded struct {
	Path     string
	Filename string
	Hash     string
	Source   internal.ImportSource
	Rows     [][]string
	DecodeMs float64
}

type ImportResult struct {
	Source      internal.ImportSource
	Filename    string
	Items       int
	Preselected int
}

// ImportService decodes files and swaps the result into a catalog store.
// Decode may run on any goroutine; Apply must run where the store is owned.
type ImportService struct {
	store  *catalog.Store
	db     *storage.DB
	opts   DecodeOptions
	logger *slog.Logger

	lastImportID *int
}

// NewImportService wires a store to an optional history database.
func NewImportService(store *catalog.Store, db *storage.DB, opts DecodeOptions, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{store: store, db: db, opts: opts, logger: logger}
}

func (s *ImportService) Store() *catalog.Store { return s.store }

func (s *ImportService) Decode(ctx context.Context, filename string, content []byte) (Decoded, error) {
	sum := sha256.Sum256(content)
	d := Decoded{
		Filename: filename,
		Hash:     hex.EncodeToString(sum[:]),
		Source:   DetectFormat(filename, content),
	}
	if err := ctx.Err(); err != nil {
		return d, err
	}

	type result struct {
		rows [][]string
		err  error
	}
	start := time.Now()
	done := make(chan result, 1)
	go func() {
		rows, err := DecodeGrid(d.Source, content, s.opts)
		done <- result{rows: rows, err: err}
	}()

	select {
	case <-ctx.Done():
		return d, ctx.Err()
	case r := <-done:
		d.DecodeMs = float64(time.Since(start).Milliseconds())
		if r.err != nil {
			return d, r.err
		}
		d.Rows = r.rows
		return d, nil
	}
}

// Apply ingests decoded rows and replaces the catalog. When no row yields an
// item the catalog is left untouched and ErrEmptyImport is returned.
func (s *ImportService) Apply(d Decoded) (ImportResult, error) {
	start := time.Now()
	items := IngestRows(d.Rows, nil)
	if len(items) == 0 {
		err := fmt.Errorf("%w: %s", internal.ErrEmptyImport, d.Filename)
		s.Fail(d, err)
		return ImportResult{}, err
	}

	sel := DefaultSelection(items)
	for _, item := range items {
		if _, ok := sel[item.ID]; ok {
			s.logger.Debug("quantity preselected", "file", d.Filename, "row", item.RowNo, "name", item.Name, "qty", sel[item.ID])
		}
	}
	s.store.ReplaceCatalog(StripHints(items), sel)

	res := ImportResult{Source: d.Source, Filename: d.Filename, Items: len(items), Preselected: len(sel)}
	s.logger.Info("catalog imported", "file", d.Filename, "source", d.Source, "items", res.Items, "preselected", res.Preselected)

	s.record(d, internal.ImportRow{
		ItemCount:   res.Items,
		Preselected: res.Preselected,
		Status:      "imported",
	}, float64(time.Since(start).Milliseconds()))
	return res, nil
}

// ImportFile reads, decodes and applies path in one step.
func (s *ImportService) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, err
	}
	d, err := s.Decode(ctx, filepath.Base(path), content)
	d.Path = path
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			s.Fail(d, err)
		}
		return ImportResult{}, err
	}
	return s.Apply(d)
}

// Fail records an import that did not change the catalog.
func (s *ImportService) Fail(d Decoded, err error) {
	status := "failed"
	switch {
	case errors.Is(err, internal.ErrDecodeFailure):
		status = "unreadable"
	case errors.Is(err, internal.ErrEmptyImport):
		status = "empty"
	}
	s.logger.Warn("import rejected", "file", d.Filename, "source", d.Source, "status", status, "error", err)
	s.record(d, internal.ImportRow{Status: status, Error: err.Error()}, 0)
}

// RecordOutput logs a rendered line against the last successful import.
func (s *ImportService) RecordOutput(output string, entries int, copied bool) {
	if s.db == nil || output == "" {
		return
	}
	if err := s.db.InsertOutput(s.lastImportID, output, entries, copied); err != nil {
		s.logger.Warn("history write failed", "table", "outputs", "error", err)
	}
}

func (s *ImportService) record(d Decoded, row internal.ImportRow, applyMs float64) {
	if s.db == nil {
		return
	}
	row.TraceID = traceID()
	row.Filename = d.Filename
	row.Hash = d.Hash
	row.Source = string(d.Source)
	id, err := s.db.InsertImport(row, map[string]float64{"decodeMs": d.DecodeMs, "applyMs": applyMs})
	if err != nil {
		s.logger.Warn("history write failed", "table", "imports", "error", err)
		return
	}
	if row.Status != "imported" {
		return
	}
	s.lastImportID = &id
	if d.Path != "" {
		if abs, err := filepath.Abs(d.Path); err == nil {
			if err := s.db.SetMetadata(metaLastImportPath, abs); err != nil {
				s.logger.Warn("history write failed", "table", "metadata", "error", err)
			}
		}
	}
}

// LastImportPath returns the most recently imported file, if any.
func (s *ImportService) LastImportPath() string {
	if s.db == nil {
		return ""
	}
	v, err := s.db.GetMetadata(metaLastImportPath)
	if err != nil || v == nil {
		return ""
	}
	return *v
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
