package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/proteinscan/backend/internal/domain"
	"github.com/proteinscan/backend/internal/infrastructure/openfoodfacts"
)

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL time.Duration
}

// ProductService is the product data gateway: it looks products up in the
// food database, shapes the raw payload into a ProductRecord, and delegates
// ingredient classification and scoring. Read-only; a single outbound attempt
// per invocation.
type ProductService struct {
	cache      domain.CacheRepository
	foodClient domain.FoodClient
	cacheTTL   time.Duration
}

// NewProductService creates a new product service with dependencies
func NewProductService(
	cache domain.CacheRepository,
	foodClient domain.FoodClient,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ProductService{
		cache:      cache,
		foodClient: foodClient,
		cacheTTL:   cacheTTL,
	}
}

// LookupByBarcode fetches and analyzes the product behind a decoded barcode.
// Flow: check cache -> fetch from Open Food Facts -> classify + score ->
// cache -> return. An unknown barcode is domain.ErrProductNotFound, an
// expected outcome rather than a failure.
func (s *ProductService) LookupByBarcode(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := fmt.Sprintf("product:barcode:%s", barcode)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	offProduct, err := s.foodClient.GetProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	record := buildProductRecord(offProduct, barcode)
	s.storeInCache(ctx, cacheKey, record)

	return record, nil
}

// SearchByName runs a free-text search and analyzes the most relevant hit.
// The result page is small and dominated by general foods, so the first
// candidate that signals a protein product wins; otherwise the first result
// is taken. An empty page is domain.ErrProductNotFound.
func (s *ProductService) SearchByName(ctx context.Context, query string) (*domain.ProductRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := fmt.Sprintf("product:search:%s", normalizeForCacheKey(query))
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	searchResp, err := s.foodClient.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(searchResp.Products) == 0 {
		return nil, domain.ErrProductNotFound
	}

	selected := selectSearchCandidate(searchResp.Products)

	barcode := strings.TrimSpace(selected.Code)
	if barcode == "" {
		barcode = domain.BarcodeManualSearch
	}

	record := buildProductRecord(selected, barcode)
	s.storeInCache(ctx, cacheKey, record)

	return record, nil
}

// selectSearchCandidate prefers the first protein-signaling product, falling
// back to the first result in the page
func selectSearchCandidate(products []domain.OFFProduct) *domain.OFFProduct {
	for i := range products {
		if signalsProteinProduct(&products[i]) {
			return &products[i]
		}
	}
	return &products[0]
}

// signalsProteinProduct checks whether a search hit looks protein-focused
func signalsProteinProduct(p *domain.OFFProduct) bool {
	if p.Nutriments.Proteins100g >= proteinFocusMinimum {
		return true
	}
	if strings.Contains(strings.ToLower(p.ProductName), "protein") {
		return true
	}
	return strings.Contains(strings.ToLower(p.Categories), "protein")
}

// buildProductRecord shapes a raw payload into the app's product record,
// delegating ingredient classification and scoring. Missing numeric fields
// stay 0, missing text fields take the documented placeholders.
func buildProductRecord(p *domain.OFFProduct, barcode string) *domain.ProductRecord {
	nutrients := openfoodfacts.MapNutrients(p.Nutriments)
	name := openfoodfacts.DisplayName(p)
	scoreResult := ScoreProduct(nutrients, name, p.Categories)

	return &domain.ProductRecord{
		Name:                name,
		Brand:               openfoodfacts.DisplayBrand(p),
		Barcode:             barcode,
		Score:               scoreResult.OverallScore,
		ProteinPer100g:      nutrients.Protein,
		ServingSize:         p.ServingSize,
		Ingredients:         ClassifyIngredients(p.IngredientsText),
		NutritionHighlights: openfoodfacts.MapNutritionHighlights(nutrients),
		ImageURL:            p.ImageURL,
		IsProteinProduct:    scoreResult.IsProteinFocused,
	}
}

// storeInCache caches a record, ignoring cache failures
func (s *ProductService) storeInCache(ctx context.Context, key string, record *domain.ProductRecord) {
	// A cache write failure must never fail the lookup.
	_ = s.cache.Set(ctx, key, record, s.cacheTTL)
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
