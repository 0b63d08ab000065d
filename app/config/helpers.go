package config

import (
	"github.com/lysyi3m/opal-catalog/app/catalog"
)

func (s Settings) Catalog() catalog.Settings {
	return catalog.Settings{
		Currency:         s.Currency,
		FeaturedCount:    s.FeaturedCount,
		MinTitleLength:   s.MinTitleLength,
		DescriptionLimit: s.DescriptionLimit,
		SlugLimit:        s.SlugLimit,
		InStock:          s.InStock,
	}
}

func (r Render) Catalog() catalog.RenderSettings {
	return catalog.RenderSettings{
		Target:           r.Target,
		Package:          r.Package,
		ImagePrefix:      r.ImagePrefix,
		DescriptionLimit: r.DescriptionLimit,
	}
}
