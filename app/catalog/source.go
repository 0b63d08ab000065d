package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

const DefaultPattern = "*.csv"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source reads catalog exports from a filesystem.
type Source struct {
	fs afero.Fs
}

func NewSource(fs afero.Fs) *Source {
	return &Source{fs: fs}
}

// ReadFile decodes one CSV export. Quoting is parsed leniently, rows may have
// any number of fields and invalid UTF-8 is dropped. An empty file has no rows.
func (s *Source) ReadFile(path string) ([]RawRow, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		data = bytes.ToValidUTF8(data, nil)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows []RawRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}

	return rows, nil
}

// ListFiles returns the files under dir matching a doublestar pattern such as
// "*.csv" or "**/*.csv", sorted by path.
func (s *Source) ListFiles(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern %q", pattern)
	}

	exists, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !exists {
		return nil, fmt.Errorf("CSV directory %s does not exist", dir)
	}

	if !filepath.IsAbs(dir) {
		if dir, err = filepath.Abs(dir); err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(s.fs, dir))
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s in %s: %w", pattern, dir, err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		files = append(files, filepath.Join(dir, filepath.FromSlash(match)))
	}
	slices.Sort(files)

	return files, nil
}
