package config

// Profile is an optional YAML file tuning the normalizer and the renderer.
type Profile struct {
	Settings Settings `yaml:"settings"`
	Render   Render   `yaml:"render"`
}

// Settings mirrors catalog.Settings
type Settings struct {
	Currency         string `yaml:"currency" validate:"required"`
	FeaturedCount    int    `yaml:"featured_count" validate:"gte=0"`
	MinTitleLength   int    `yaml:"min_title_length" validate:"gte=1"`
	DescriptionLimit int    `yaml:"description_limit" validate:"gte=1,lte=300"`
	SlugLimit        int    `yaml:"slug_limit" validate:"gte=1,lte=60"`
	InStock          string `yaml:"in_stock" validate:"required"`
}

// Render mirrors catalog.RenderSettings
type Render struct {
	Target           string `yaml:"target" validate:"oneof=go typescript"`
	Package          string `yaml:"package" validate:"required"`
	ImagePrefix      string `yaml:"image_prefix"`
	DescriptionLimit int    `yaml:"description_limit" validate:"gte=1,lte=300"`
}
