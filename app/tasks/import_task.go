package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lysyi3m/opal-catalog/app/catalog"
	"github.com/lysyi3m/opal-catalog/app/database"
)

const sampleSize = 5

type ImportOptions struct {
	CSVPath  string // single export; ignored when CSVDir is set
	CSVDir   string
	Pattern  string
	OutPath  string
	Settings catalog.Settings
}

type ImportTask struct {
	Task
	options ImportOptions
	source  *catalog.Source
	store   *catalog.Store
	repo    database.ProductRepository // nil when no snapshot is kept
	printer *message.Printer

	Result catalog.Result
}

func NewImportTask(options ImportOptions, source *catalog.Source, store *catalog.Store, repo database.ProductRepository) *ImportTask {
	input := options.CSVPath
	if options.CSVDir != "" {
		input = options.CSVDir
	}

	return &ImportTask{
		Task:    NewTask(TaskTypeImport, input),
		options: options,
		source:  source,
		store:   store,
		repo:    repo,
		printer: message.NewPrinter(language.English),
	}
}

func (t *ImportTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	files := []string{t.options.CSVPath}
	if t.options.CSVDir != "" {
		var err error
		files, err = t.source.ListFiles(t.options.CSVDir, t.options.Pattern)
		if err != nil {
			return fmt.Errorf("failed to list CSV files: %w", err)
		}
		if len(files) == 0 {
			slog.Warn("No CSV files found", "dir", t.options.CSVDir, "pattern", t.options.Pattern)
		} else {
			slog.Info("Found CSV files", "count", len(files), "dir", t.options.CSVDir)
		}
	}

	normalizer := catalog.NewNormalizer(t.options.Settings)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows, err := t.source.ReadFile(file)
		if err != nil {
			return err
		}

		result := normalizer.Run(rows)
		t.Result.Products = append(t.Result.Products, result.Products...)
		t.Result.Stats.Add(result.Stats)

		slog.Info("Processed CSV file",
			"file", filepath.Base(file),
			"rows", result.Stats.Read,
			"products", result.Stats.Accepted)
	}

	if err := t.store.Write(t.options.OutPath, t.Result.Products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}

	if t.repo != nil {
		if err := t.repo.ReplaceAll(ctx, t.Result.Products); err != nil {
			return fmt.Errorf("failed to store snapshot: %w", err)
		}
	}

	t.logSummary()

	return nil
}

func (t *ImportTask) logSummary() {
	stats := t.Result.Stats

	withImages := 0
	for _, p := range t.Result.Products {
		if p.ImageFilename != "" {
			withImages++
		}
	}

	for _, p := range t.Result.Products[:min(sampleSize, len(t.Result.Products))] {
		slog.Info("Sample product",
			"title", p.Title,
			"price", t.printer.Sprintf("$%.2f %s", p.Price.InexactFloat64(), t.options.Settings.Currency),
			"category", p.Category.Label())
	}

	slog.Info("Task completed",
		"type", "Import",
		"duration", t.GetDuration(),
		"read", t.printer.Sprintf("%d", stats.Read),
		"accepted", t.printer.Sprintf("%d", stats.Accepted),
		"skipped", t.printer.Sprintf("%d", stats.Skipped()),
		"invalid_title", stats.InvalidTitle,
		"missing_price", stats.MissingPrice,
		"invalid_price", stats.InvalidPrice,
		"duplicate_slug", stats.DuplicateSlug,
		"with_images", t.printer.Sprintf("%d", withImages),
		"out", t.options.OutPath)
}
