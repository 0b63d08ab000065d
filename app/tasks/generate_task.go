package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/lysyi3m/opal-catalog/app/catalog"
	"github.com/lysyi3m/opal-catalog/app/database"
)

var ErrNoProductSource = errors.New("no product source")

type GenerateOptions struct {
	InPath  string // product JSON; the snapshot is read when empty
	OutPath string
	Render  catalog.RenderSettings
}

type GenerateTask struct {
	Task
	options GenerateOptions
	fs      afero.Fs
	store   *catalog.Store
	repo    database.ProductRepository
}

func NewGenerateTask(options GenerateOptions, fs afero.Fs, store *catalog.Store, repo database.ProductRepository, source string) *GenerateTask {
	return &GenerateTask{
		Task:    NewTask(TaskTypeGenerate, source),
		options: options,
		fs:      fs,
		store:   store,
		repo:    repo,
	}
}

func (t *GenerateTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	products, err := t.loadProducts(ctx)
	if err != nil {
		return err
	}

	generator, err := catalog.NewGenerator(t.options.Render)
	if err != nil {
		return err
	}

	out, err := generator.Run(products, t.Source)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(t.options.OutPath); dir != "" {
		if err := t.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(t.fs, t.options.OutPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", t.options.OutPath, err)
	}

	withImages := 0
	for _, p := range products {
		if p.ImageFilename != "" {
			withImages++
		}
	}

	slog.Info("Task completed",
		"type", "Generate",
		"duration", t.GetDuration(),
		"target", t.options.Render.Target,
		"products", len(products),
		"with_images", withImages,
		"out", t.options.OutPath)

	return nil
}

func (t *GenerateTask) loadProducts(ctx context.Context) ([]catalog.Product, error) {
	if t.options.InPath != "" {
		return t.store.Read(t.options.InPath)
	}
	if t.repo == nil {
		return nil, ErrNoProductSource
	}

	products, err := t.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return products, nil
}
