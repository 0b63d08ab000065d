package database

import (
	"context"

	"github.com/lysyi3m/opal-catalog/app/catalog"
)

type ProductRepository interface {
	ReplaceAll(ctx context.Context, products []catalog.Product) error
	List(ctx context.Context) ([]catalog.Product, error)
	Count(ctx context.Context) (int, error)
}
