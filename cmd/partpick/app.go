package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"partpick/internal"
	"partpick/internal/catalog"
	"partpick/internal/config"
	"partpick/internal/logging"
	"partpick/internal/pipeline"
	"partpick/internal/storage"
)

type app struct {
	cfg      config.Config
	logger   *slog.Logger
	logClose io.Closer
	db       *storage.DB
	store    *catalog.Store
	svc      *pipeline.ImportService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, logClose: closer, store: catalog.NewSampleStore()}
	if cfg.HistoryEnabled() {
		db, err := storage.Open(cfg.HistoryDB)
		if err != nil {
			logger.Warn("history disabled", "path", cfg.HistoryDB, "error", err)
		} else {
			a.db = db
		}
	}
	a.svc = pipeline.NewImportService(a.store, a.db, pipeline.DecodeOptions{TextEncoding: cfg.CSV.Encoding}, logger)
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	_ = a.logClose.Close()
}

// importFile loads path into the store. An import without usable rows is a
// notice, not an error: the sample catalog stays in place.
func (a *app) importFile(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	bar := newSpinner("Reading " + path)
	res, err := a.svc.ImportFile(ctx, path)
	finishBar(bar)

	switch {
	case errors.Is(err, internal.ErrEmptyImport):
		fmt.Fprintln(os.Stderr, "notice: no importable rows; put \"[category] name\" labels in the first column. Showing the sample catalog.")
		return nil
	case errors.Is(err, internal.ErrDecodeFailure):
		return fmt.Errorf("could not read %s as a spreadsheet (.xlsx .csv .tsv .html .eml .pdf): %w", path, err)
	case err != nil:
		return err
	}

	fmt.Fprintf(os.Stderr, "imported %d items from %s (%d preselected)\n", res.Items, res.Filename, res.Preselected)
	return nil
}

func newSpinner(description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
