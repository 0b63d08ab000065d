package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

var ErrInvalidProduct = errors.New("invalid product")

// record is the on-disk shape of a product in the intermediate JSON file.
type record struct {
	ID            string       `json:"id" validate:"required,numeric"`
	Title         string       `json:"title" validate:"required"`
	Slug          string       `json:"slug" validate:"required,max=60"`
	Description   string       `json:"description" validate:"max=300"`
	Price         json.Number  `json:"price" validate:"required"`
	ImageURL      string       `json:"image_url"`
	ImageFilename *string      `json:"image_filename"`
	Category      string       `json:"category" validate:"category"`
	StoneType     string       `json:"stone_type" validate:"stone_type"`
	Origin        string       `json:"origin" validate:"origin"`
	Weight        *json.Number `json:"weight"`
	Stock         int          `json:"stock" validate:"oneof=0 1"`
	Featured      bool         `json:"featured"`
}

// Store reads and writes the intermediate JSON product file.
type Store struct {
	fs       afero.Fs
	validate *validator.Validate
}

func NewStore(fs afero.Fs) *Store {
	validate := validator.New()
	mustRegister(validate, "category", enumValidator(Categories))
	mustRegister(validate, "stone_type", enumValidator(StoneTypes))
	mustRegister(validate, "origin", enumValidator(Origins))

	return &Store{
		fs:       fs,
		validate: validate,
	}
}

func mustRegister(validate *validator.Validate, tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
	}
}

func enumValidator[T ~string](values []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(values, T(fl.Field().String()))
	}
}

func (s *Store) Write(path string, products []Product) error {
	records := make([]record, 0, len(products))
	for _, p := range products {
		records = append(records, toRecord(p))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(s.fs, path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Read loads and validates a product file. Any invalid record, or a repeated
// id or slug, fails the whole file.
func (s *Store) Read(path string) ([]Product, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	products := make([]Product, 0, len(records))
	ids := make(map[string]struct{}, len(records))
	slugs := make(map[string]struct{}, len(records))
	for i, r := range records {
		p, err := s.fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i+1, err)
		}

		if _, seen := ids[p.ID]; seen {
			return nil, fmt.Errorf("%s: record %d: %w: duplicate id %s", path, i+1, ErrInvalidProduct, p.ID)
		}
		if _, seen := slugs[p.Slug]; seen {
			return nil, fmt.Errorf("%s: record %d: %w: duplicate slug %s", path, i+1, ErrInvalidProduct, p.Slug)
		}
		ids[p.ID] = struct{}{}
		slugs[p.Slug] = struct{}{}

		products = append(products, p)
	}

	return products, nil
}

func toRecord(p Product) record {
	r := record{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       json.Number(p.Price.String()),
		ImageURL:    p.ImageURL,
		Category:    string(p.Category),
		StoneType:   string(p.StoneType),
		Origin:      string(p.Origin),
		Stock:       p.Stock,
		Featured:    p.Featured,
	}

	if p.ImageFilename != "" {
		filename := p.ImageFilename
		r.ImageFilename = &filename
	}
	if p.Weight.Valid {
		weight := json.Number(p.Weight.Decimal.String())
		r.Weight = &weight
	}

	return r
}

func (s *Store) fromRecord(r record) (Product, error) {
	if err := s.validate.Struct(r); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	price, err := decimal.NewFromString(r.Price.String())
	if err != nil {
		return Product{}, fmt.Errorf("%w: price %q: %v", ErrInvalidProduct, r.Price, err)
	}
	if !price.IsPositive() {
		return Product{}, fmt.Errorf("%w: price %s is not positive", ErrInvalidProduct, price)
	}

	p := Product{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       price,
		ImageURL:    r.ImageURL,
		Category:    Category(r.Category),
		StoneType:   StoneType(r.StoneType),
		Origin:      Origin(r.Origin),
		Stock:       r.Stock,
		Featured:    r.Featured,
	}

	if r.ImageFilename != nil {
		p.ImageFilename = *r.ImageFilename
	}
	if r.Weight != nil {
		weight, err := decimal.NewFromString(r.Weight.String())
		if err != nil {
			return Product{}, fmt.Errorf("%w: weight %q: %v", ErrInvalidProduct, *r.Weight, err)
		}
		p.Weight = decimal.NullDecimal{Decimal: weight, Valid: true}
	}

	return p, nil
}
