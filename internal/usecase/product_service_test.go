package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/proteinscan/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]*domain.ProductRecord
	getError  error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]*domain.ProductRecord),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (*domain.ProductRecord, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if record, ok := m.data[key]; ok {
		return record, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, record *domain.ProductRecord, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = record
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockFoodClient is a mock implementation of domain.FoodClient
type MockFoodClient struct {
	product      *domain.OFFProduct
	productError error
	searchResult *domain.OFFSearchResponse
	searchError  error
	productCalls int
	searchCalls  int
}

func NewMockFoodClient() *MockFoodClient {
	return &MockFoodClient{}
}

func (m *MockFoodClient) GetProductByBarcode(ctx context.Context, barcode string) (*domain.OFFProduct, error) {
	m.productCalls++
	if m.productError != nil {
		return nil, m.productError
	}
	return m.product, nil
}

func (m *MockFoodClient) SearchProducts(ctx context.Context, query string) (*domain.OFFSearchResponse, error) {
	m.searchCalls++
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResult, nil
}

func wheyProduct() *domain.OFFProduct {
	return &domain.OFFProduct{
		Code:            "748927022259",
		ProductName:     "Gold Standard Whey",
		Brands:          "Optimum Nutrition",
		Categories:      "Protein powders",
		IngredientsText: "Whey Protein Isolate, Natural Flavors, Sucralose",
		ServingSize:     "30g",
		ImageURL:        "https://images.example/whey.jpg",
		Nutriments: domain.OFFNutriments{
			EnergyKcal100g:   380,
			Proteins100g:     78,
			Sugars100g:       3,
			Fat100g:          4,
			SaturatedFat100g: 2,
			Sodium100g:       0.15,
		},
	}
}

func TestLookupByBarcode(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for blank barcode", func(t *testing.T) {
		svc := NewProductService(NewMockCacheRepository(), NewMockFoodClient(), ProductServiceConfig{})

		_, err := svc.LookupByBarcode(ctx, "   ")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("builds a record from the payload", func(t *testing.T) {
		cache := NewMockCacheRepository()
		client := NewMockFoodClient()
		client.product = wheyProduct()
		svc := NewProductService(cache, client, ProductServiceConfig{})

		record, err := svc.LookupByBarcode(ctx, "748927022259")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if record.Name != "Gold Standard Whey" {
			t.Errorf("name = %q", record.Name)
		}
		if record.Brand != "Optimum Nutrition" {
			t.Errorf("brand = %q", record.Brand)
		}
		if record.Barcode != "748927022259" {
			t.Errorf("barcode = %q", record.Barcode)
		}
		if !record.IsProteinProduct {
			t.Error("IsProteinProduct = false, want true")
		}
		if record.ProteinPer100g != 78 {
			t.Errorf("protein = %v, want 78", record.ProteinPer100g)
		}
		if len(record.Ingredients) != 3 {
			t.Errorf("ingredients = %d, want 3", len(record.Ingredients))
		}
		if record.Ingredients[0].Category != domain.CategoryGood {
			t.Errorf("first ingredient category = %s, want good", record.Ingredients[0].Category)
		}
		if record.Score < 1 || record.Score > 100 {
			t.Errorf("score = %d, outside [1,100]", record.Score)
		}
		if !cache.setCalled {
			t.Error("successful lookup was not cached")
		}
	})

	t.Run("defaults missing fields to placeholders", func(t *testing.T) {
		client := NewMockFoodClient()
		client.product = &domain.OFFProduct{Code: "40084015"}
		svc := NewProductService(NewMockCacheRepository(), client, ProductServiceConfig{})

		record, err := svc.LookupByBarcode(ctx, "40084015")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if record.Name != domain.PlaceholderName {
			t.Errorf("name = %q, want placeholder", record.Name)
		}
		if record.Brand != domain.PlaceholderBrand {
			t.Errorf("brand = %q, want placeholder", record.Brand)
		}
		if record.ProteinPer100g != 0 {
			t.Errorf("protein = %v, want 0", record.ProteinPer100g)
		}
		if len(record.Ingredients) != 0 {
			t.Errorf("ingredients = %d, want 0", len(record.Ingredients))
		}
	})

	t.Run("propagates not found without wrapping it away", func(t *testing.T) {
		client := NewMockFoodClient()
		client.productError = domain.ErrProductNotFound
		svc := NewProductService(NewMockCacheRepository(), client, ProductServiceConfig{})

		_, err := svc.LookupByBarcode(ctx, "0000000000000")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		cache := NewMockCacheRepository()
		client := NewMockFoodClient()
		client.product = wheyProduct()
		svc := NewProductService(cache, client, ProductServiceConfig{})

		if _, err := svc.LookupByBarcode(ctx, "748927022259"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.LookupByBarcode(ctx, "748927022259"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if client.productCalls != 1 {
			t.Errorf("client calls = %d, want 1 (second lookup cached)", client.productCalls)
		}
	})

	t.Run("cache write failure does not fail the lookup", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.setError = errors.New("cache down")
		client := NewMockFoodClient()
		client.product = wheyProduct()
		svc := NewProductService(cache, client, ProductServiceConfig{})

		if _, err := svc.LookupByBarcode(ctx, "748927022259"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestSearchByName(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for blank query", func(t *testing.T) {
		svc := NewProductService(NewMockCacheRepository(), NewMockFoodClient(), ProductServiceConfig{})

		_, err := svc.SearchByName(ctx, "")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("prefers the first protein-signaling candidate", func(t *testing.T) {
		client := NewMockFoodClient()
		client.searchResult = &domain.OFFSearchResponse{
			Count: 3,
			Products: []domain.OFFProduct{
				{Code: "1", ProductName: "Fruit Bar", Nutriments: domain.OFFNutriments{Proteins100g: 3}},
				{Code: "2", ProductName: "Whey Protein Bar", Nutriments: domain.OFFNutriments{Proteins100g: 30}},
				{Code: "3", ProductName: "Another Protein Bar", Nutriments: domain.OFFNutriments{Proteins100g: 25}},
			},
		}
		svc := NewProductService(NewMockCacheRepository(), client, ProductServiceConfig{})

		record, err := svc.SearchByName(ctx, "protein bar")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Name != "Whey Protein Bar" {
			t.Errorf("selected %q, want the first protein candidate", record.Name)
		}
		if record.Barcode != "2" {
			t.Errorf("barcode = %q, want 2", record.Barcode)
		}
	})

	t.Run("falls back to the first result", func(t *testing.T) {
		client := NewMockFoodClient()
		client.searchResult = &domain.OFFSearchResponse{
			Count: 2,
			Products: []domain.OFFProduct{
				{Code: "1", ProductName: "Fruit Bar", Nutriments: domain.OFFNutriments{Proteins100g: 3}},
				{Code: "2", ProductName: "Granola Bar", Nutriments: domain.OFFNutriments{Proteins100g: 6}},
			},
		}
		svc := NewProductService(NewMockCacheRepository(), client, ProductServiceConfig{})

		record, err := svc.SearchByName(ctx, "bar")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Name != "Fruit Bar" {
			t.Errorf("selected %q, want the first result", record.Name)
		}
	})

	t.Run("marks codeless results as manual search", func(t *testing.T) {
		client := NewMockFoodClient()
		client.searchResult = &domain.OFFSearchResponse{
			Count: 1,
			Products: []domain.OFFProduct{
				{ProductName: "Bulk Pea Protein", Nutriments: domain.OFFNutriments{Proteins100g: 80}},
			},
		}
		svc := NewProductService(NewMockCacheRepository(), client, ProductServiceConfig{})

		record, err := svc.SearchByName(ctx, "pea protein")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Barcode != domain.BarcodeManualSearch {
			t.Errorf("barcode = %q, want %q", record.Barcode, domain.BarcodeManualSearch)
		}
	})

	t.Run("propagates not found for an empty page", func(t *testing.T) {
		client := NewMockFoodClient()
		client.searchError = domain.ErrProductNotFound
		svc := NewProductService(NewMockCacheRepository(), client, ProductServiceConfig{})

		_, err := svc.SearchByName(ctx, "nothing matches this")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
	})
}
