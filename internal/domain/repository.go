package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching looked-up product records
type CacheRepository interface {
	Get(ctx context.Context, key string) (*ProductRecord, error)
	Set(ctx context.Context, key string, record *ProductRecord, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FoodClient defines the interface for the external nutrition database.
// Implementations make exactly one attempt per call; retry policy belongs to
// callers.
type FoodClient interface {
	GetProductByBarcode(ctx context.Context, barcode string) (*OFFProduct, error)
	SearchProducts(ctx context.Context, query string) (*OFFSearchResponse, error)
}

// ProductGateway is the read-only lookup surface consumed by the scan and view
// controllers
type ProductGateway interface {
	LookupByBarcode(ctx context.Context, barcode string) (*ProductRecord, error)
	SearchByName(ctx context.Context, query string) (*ProductRecord, error)
}
