package cfg

const (
	CommandImport    = "import"
	CommandImportAll = "import-all"
	CommandGenerate  = "generate"
)

type Cfg struct {
	Command string

	// Logging and profile
	Debug   bool
	LogJSON bool
	Profile string

	// Import
	CSVPath    string
	CSVDir     string
	Pattern    string
	OutPath    string
	SQLitePath string
	Featured   int    // 0 when not given
	Currency   string // empty when not given

	// Generate
	InPath  string
	Target  string // empty when not given
	Package string // empty when not given

	Version string
}
