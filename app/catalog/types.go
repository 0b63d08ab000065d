package catalog

import (
	"github.com/shopspring/decimal"
)

// Source row types

// RawRow is one catalog entry as exported by the shop backup.
type RawRow struct {
	Title        string `csv:"title"`
	Description  string `csv:"description"`
	Price        string `csv:"price"`
	ImageURL     string `csv:"image_link"`
	Availability string `csv:"availability"`
}

// Classification enums

type Category string

const (
	CategoryRings     Category = "opal-rings"
	CategoryNecklaces Category = "opal-necklaces"
	CategoryEarrings  Category = "opal-earrings"
	CategoryBracelets Category = "opal-bracelets"
	CategoryRawOpals  Category = "raw-opals"
)

// CategoryAll selects every category in FilterByCategory.
const CategoryAll = "all"

var Categories = []Category{
	CategoryRings,
	CategoryNecklaces,
	CategoryEarrings,
	CategoryBracelets,
	CategoryRawOpals,
}

func (c Category) Label() string {
	switch c {
	case CategoryRings:
		return "Opal Rings"
	case CategoryNecklaces:
		return "Necklaces & Pendants"
	case CategoryEarrings:
		return "Opal Earrings"
	case CategoryBracelets:
		return "Opal Bracelets"
	case CategoryRawOpals:
		return "Raw Opals"
	default:
		return string(c)
	}
}

type StoneType string

const (
	StoneBlackOpal   StoneType = "Black Opal"
	StoneBoulderOpal StoneType = "Boulder Opal"
	StoneCrystalOpal StoneType = "Crystal Opal"
	StoneDoublet     StoneType = "Doublet"
	StoneWhiteOpal   StoneType = "White Opal"
)

var StoneTypes = []StoneType{
	StoneBlackOpal,
	StoneBoulderOpal,
	StoneCrystalOpal,
	StoneDoublet,
	StoneWhiteOpal,
}

type Origin string

const (
	OriginLightningRidge Origin = "Lightning Ridge, NSW"
	OriginCooberPedy     Origin = "Coober Pedy, SA"
	OriginQueensland     Origin = "Queensland"
	OriginMintabie       Origin = "Mintabie, SA"
	OriginAndamooka      Origin = "Andamooka, SA"
	OriginAustralia      Origin = "Australia"
)

var Origins = []Origin{
	OriginLightningRidge,
	OriginCooberPedy,
	OriginQueensland,
	OriginMintabie,
	OriginAndamooka,
	OriginAustralia,
}

// Product types

type Product struct {
	ID            string
	Title         string
	Slug          string
	Description   string
	Price         decimal.Decimal
	ImageURL      string
	ImageFilename string // empty when the row had no image URL
	Category      Category
	StoneType     StoneType
	Origin        Origin
	Weight        decimal.NullDecimal // carats
	Stock         int
	Featured      bool
}

type SortMode string

const (
	SortFeatured  SortMode = "featured"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
)

// Normalizer types

type Settings struct {
	Currency         string
	FeaturedCount    int
	MinTitleLength   int
	DescriptionLimit int
	SlugLimit        int
	InStock          string
}

func DefaultSettings() Settings {
	return Settings{
		Currency:         "AUD",
		FeaturedCount:    10,
		MinTitleLength:   5,
		DescriptionLimit: 300,
		SlugLimit:        60,
		InStock:          "in stock",
	}
}

type SkipReason string

const (
	SkipInvalidTitle  SkipReason = "invalid_title"
	SkipMissingPrice  SkipReason = "missing_price"
	SkipInvalidPrice  SkipReason = "invalid_price"
	SkipDuplicateSlug SkipReason = "duplicate_slug"
)

type Stats struct {
	Read          int
	Accepted      int
	InvalidTitle  int
	MissingPrice  int
	InvalidPrice  int
	DuplicateSlug int
}

func (s Stats) Skipped() int {
	return s.InvalidTitle + s.MissingPrice + s.InvalidPrice + s.DuplicateSlug
}

// Add folds the counters of another batch into s.
func (s *Stats) Add(other Stats) {
	s.Read += other.Read
	s.Accepted += other.Accepted
	s.InvalidTitle += other.InvalidTitle
	s.MissingPrice += other.MissingPrice
	s.InvalidPrice += other.InvalidPrice
	s.DuplicateSlug += other.DuplicateSlug
}

func (s *Stats) skip(reason SkipReason) {
	switch reason {
	case SkipInvalidTitle:
		s.InvalidTitle++
	case SkipMissingPrice:
		s.MissingPrice++
	case SkipInvalidPrice:
		s.InvalidPrice++
	case SkipDuplicateSlug:
		s.DuplicateSlug++
	}
}

type Result struct {
	Products []Product
	Stats    Stats
}

// Renderer types

const (
	TargetGo         = "go"
	TargetTypeScript = "typescript"
)

type RenderSettings struct {
	Target           string
	Package          string
	ImagePrefix      string
	DescriptionLimit int
}

func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Target:           TargetGo,
		Package:          "products",
		ImagePrefix:      "/images/products/",
		DescriptionLimit: 250,
	}
}
