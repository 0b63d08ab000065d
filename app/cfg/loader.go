package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	Debug   bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	LogJSON bool   `long:"log-json" env:"LOG_JSON" description:"Write logs as JSON"`
	Profile string `long:"profile" env:"CATALOG_PROFILE" description:"YAML profile with normalizer and render settings"`
}

type rawImport struct {
	CSV      string `long:"csv" env:"CATALOG_CSV" required:"true" description:"CSV export to import"`
	Out      string `long:"out" env:"CATALOG_OUT" default:"data/products.json" description:"Product JSON file to write"`
	SQLite   string `long:"sqlite" env:"CATALOG_SQLITE" description:"Also store the products in this SQLite snapshot"`
	Featured int    `long:"featured" env:"CATALOG_FEATURED" description:"Number of leading products marked featured"`
	Currency string `long:"currency" env:"CATALOG_CURRENCY" description:"Currency code stripped from prices"`
}

type rawImportAll struct {
	CSVDir   string `long:"csv-dir" env:"CATALOG_CSV_DIR" required:"true" description:"Directory of CSV exports to import"`
	Pattern  string `long:"pattern" env:"CATALOG_PATTERN" default:"*.csv" description:"Glob selecting the CSV files (supports **)"`
	Out      string `long:"out" env:"CATALOG_OUT" default:"data/products.json" description:"Product JSON file to write"`
	SQLite   string `long:"sqlite" env:"CATALOG_SQLITE" description:"Also store the products in this SQLite snapshot"`
	Featured int    `long:"featured" env:"CATALOG_FEATURED" description:"Number of leading products marked featured"`
}

type rawGenerate struct {
	In      string `long:"in" env:"CATALOG_IN" description:"Product JSON file to render"`
	SQLite  string `long:"sqlite" env:"CATALOG_SQLITE" description:"SQLite snapshot to render instead of a JSON file"`
	Out     string `long:"out" env:"CATALOG_GENERATED" required:"true" description:"Source file to write"`
	Target  string `long:"target" env:"CATALOG_TARGET" choice:"go" choice:"typescript" description:"Output language"`
	Package string `long:"package" env:"CATALOG_PACKAGE" description:"Package name of the generated Go file"`
}

// Load parses the process arguments after loading .env from the working
// directory. It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return parse(os.Args[1:])
}

func parse(args []string) (*Cfg, error) {
	var (
		raw       rawCfg
		importCmd rawImport
		importAll rawImportAll
		generate  rawGenerate
	)

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.AddCommand(CommandImport, "Import one CSV export",
		"Normalize one CSV export into the product JSON file.", &importCmd); err != nil {
		return nil, err
	}
	if _, err := parser.AddCommand(CommandImportAll, "Import a directory of CSV exports",
		"Normalize every matching CSV export into one product JSON file.", &importAll); err != nil {
		return nil, err
	}
	if _, err := parser.AddCommand(CommandGenerate, "Render the typed product catalog",
		"Render products from JSON or SQLite into a Go or TypeScript source file.", &generate); err != nil {
		return nil, err
	}

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Command: parser.Active.Name,
		Debug:   raw.Debug,
		LogJSON: raw.LogJSON,
		Profile: raw.Profile,
		Version: GetVersion(),
	}

	switch cfg.Command {
	case CommandImport:
		cfg.CSVPath = importCmd.CSV
		cfg.OutPath = importCmd.Out
		cfg.SQLitePath = importCmd.SQLite
		cfg.Featured = importCmd.Featured
		cfg.Currency = importCmd.Currency
	case CommandImportAll:
		cfg.CSVDir = importAll.CSVDir
		cfg.Pattern = importAll.Pattern
		cfg.OutPath = importAll.Out
		cfg.SQLitePath = importAll.SQLite
		cfg.Featured = importAll.Featured
	case CommandGenerate:
		if (generate.In == "") == (generate.SQLite == "") {
			return nil, fmt.Errorf("generate needs exactly one of --in or --sqlite")
		}
		cfg.InPath = generate.In
		cfg.SQLitePath = generate.SQLite
		cfg.OutPath = generate.Out
		cfg.Target = generate.Target
		cfg.Package = generate.Package
	}

	if cfg.Featured < 0 {
		return nil, fmt.Errorf("--featured must be non-negative, got %d", cfg.Featured)
	}

	return cfg, nil
}
