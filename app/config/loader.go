package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/opal-catalog/app/catalog"
)

// Loader handles loading and validation of profiles
type Loader struct {
	fs       afero.Fs
	validate *validator.Validate
}

func NewLoader(fs afero.Fs) *Loader {
	return &Loader{
		fs:       fs,
		validate: validator.New(),
	}
}

// Load reads the profile at path and fills unset settings from defaults.
// An empty path yields the defaults alone.
func (l *Loader) Load(path string, defaults catalog.Settings) (*Profile, error) {
	profile := &Profile{}

	if path != "" {
		data, err := afero.ReadFile(l.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile: %w", err)
		}

		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(profile); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
		}
	}

	l.setDefaults(profile, defaults)

	if err := l.validate.Struct(profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	if path != "" {
		slog.Debug("Profile loaded", "path", path, "currency", profile.Settings.Currency, "target", profile.Render.Target)
	}

	return profile, nil
}

// setDefaults applies default values to the profile
func (l *Loader) setDefaults(profile *Profile, settings catalog.Settings) {
	if profile.Settings.Currency == "" {
		profile.Settings.Currency = settings.Currency
	}
	if profile.Settings.FeaturedCount == 0 {
		profile.Settings.FeaturedCount = settings.FeaturedCount
	}
	if profile.Settings.MinTitleLength == 0 {
		profile.Settings.MinTitleLength = settings.MinTitleLength
	}
	if profile.Settings.DescriptionLimit == 0 {
		profile.Settings.DescriptionLimit = settings.DescriptionLimit
	}
	if profile.Settings.SlugLimit == 0 {
		profile.Settings.SlugLimit = settings.SlugLimit
	}
	if profile.Settings.InStock == "" {
		profile.Settings.InStock = settings.InStock
	}

	render := catalog.DefaultRenderSettings()
	if profile.Render.Target == "" {
		profile.Render.Target = render.Target
	}
	if profile.Render.Package == "" {
		profile.Render.Package = render.Package
	}
	if profile.Render.ImagePrefix == "" {
		profile.Render.ImagePrefix = render.ImagePrefix
	}
	if profile.Render.DescriptionLimit == 0 {
		profile.Render.DescriptionLimit = render.DescriptionLimit
	}
}
