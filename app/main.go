package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/lysyi3m/opal-catalog/app/catalog"
	"github.com/lysyi3m/opal-catalog/app/cfg"
	"github.com/lysyi3m/opal-catalog/app/config"
	"github.com/lysyi3m/opal-catalog/app/database"
	"github.com/lysyi3m/opal-catalog/app/logging"
	"github.com/lysyi3m/opal-catalog/app/tasks"
)

// importAllFeaturedCount is the featured default when importing a whole directory.
const importAllFeaturedCount = 12

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	logging.Setup(logging.Config{
		Debug: appCfg.Debug,
		JSON:  appCfg.LogJSON,
	})

	slog.Debug("Configuration loaded", "command", appCfg.Command, "version", appCfg.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appCfg); err != nil {
		slog.Error("Command failed", "command", appCfg.Command, "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg *cfg.Cfg) error {
	fs := afero.NewOsFs()

	defaults := catalog.DefaultSettings()
	if appCfg.Command == cfg.CommandImportAll {
		defaults.FeaturedCount = importAllFeaturedCount
	}

	profile, err := config.NewLoader(fs).Load(appCfg.Profile, defaults)
	if err != nil {
		return err
	}

	settings := profile.Settings.Catalog()
	if appCfg.Featured > 0 {
		settings.FeaturedCount = appCfg.Featured
	}
	if appCfg.Currency != "" {
		settings.Currency = appCfg.Currency
	}

	render := profile.Render.Catalog()
	if appCfg.Target != "" {
		render.Target = appCfg.Target
	}
	if appCfg.Package != "" {
		render.Package = appCfg.Package
	}

	var repo database.ProductRepository
	if appCfg.SQLitePath != "" {
		db, err := database.Open(appCfg.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = database.NewProductRepository(db)
	}

	store := catalog.NewStore(fs)

	var task tasks.TaskInterface
	switch appCfg.Command {
	case cfg.CommandImport, cfg.CommandImportAll:
		task = tasks.NewImportTask(tasks.ImportOptions{
			CSVPath:  appCfg.CSVPath,
			CSVDir:   appCfg.CSVDir,
			Pattern:  appCfg.Pattern,
			OutPath:  appCfg.OutPath,
			Settings: settings,
		}, catalog.NewSource(fs), store, repo)
	case cfg.CommandGenerate:
		source := appCfg.InPath
		if source == "" {
			source = appCfg.SQLitePath
		}
		task = tasks.NewGenerateTask(tasks.GenerateOptions{
			InPath:  appCfg.InPath,
			OutPath: appCfg.OutPath,
			Render:  render,
		}, fs, store, repo, source)
	default:
		return fmt.Errorf("unknown command %q", appCfg.Command)
	}

	return tasks.Run(ctx, task)
}
