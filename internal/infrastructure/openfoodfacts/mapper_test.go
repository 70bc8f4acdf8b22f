package openfoodfacts

import (
	"testing"

	"github.com/proteinscan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapNutrients(t *testing.T) {
	nutrients := MapNutrients(domain.OFFNutriments{
		EnergyKcal100g:   380,
		Proteins100g:     78,
		Sugars100g:       3.5,
		Fat100g:          4,
		SaturatedFat100g: 2,
		Sodium100g:       0.15,
		Fiber100g:        1.2,
	})

	assert.Equal(t, 380.0, nutrients.EnergyKcal)
	assert.Equal(t, 78.0, nutrients.Protein)
	assert.Equal(t, 3.5, nutrients.Sugars)
	assert.Equal(t, 4.0, nutrients.TotalFat)
	assert.Equal(t, 2.0, nutrients.SaturatedFat)
	assert.Equal(t, 150.0, nutrients.SodiumMg)
	assert.Equal(t, 1.2, nutrients.Fiber)
}

func TestMapNutrients_DerivesSodiumFromSalt(t *testing.T) {
	nutrients := MapNutrients(domain.OFFNutriments{Salt100g: 1.25})

	assert.InDelta(t, 500.0, nutrients.SodiumMg, 0.01)
}

func TestMapNutrients_MissingFieldsStayZero(t *testing.T) {
	nutrients := MapNutrients(domain.OFFNutriments{})

	assert.Zero(t, nutrients.Protein)
	assert.Zero(t, nutrients.Sugars)
	assert.Zero(t, nutrients.SodiumMg)
	assert.Zero(t, nutrients.SaturatedFat)
}

func TestMapNutritionHighlights(t *testing.T) {
	highlights := MapNutritionHighlights(domain.Nutrients{
		EnergyKcal: 120,
		Sugars:     1,
		TotalFat:   1.5,
		Fiber:      2,
		SodiumMg:   130,
	})

	assert.Equal(t, "120 kcal", highlights["calories"])
	assert.Equal(t, "1g", highlights["sugar"])
	assert.Equal(t, "1.5g", highlights["fat"])
	assert.Equal(t, "2g", highlights["fiber"])
	assert.Equal(t, "130mg", highlights["sodium"])
}

func TestMapNutritionHighlights_OptionalFieldsOmitted(t *testing.T) {
	highlights := MapNutritionHighlights(domain.Nutrients{EnergyKcal: 90})

	assert.Contains(t, highlights, "calories")
	assert.Contains(t, highlights, "sugar")
	assert.Contains(t, highlights, "fat")
	assert.NotContains(t, highlights, "fiber")
	assert.NotContains(t, highlights, "sodium")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Whey", DisplayName(&domain.OFFProduct{ProductName: "  Whey  "}))
	assert.Equal(t, domain.PlaceholderName, DisplayName(&domain.OFFProduct{}))
	assert.Equal(t, domain.PlaceholderName, DisplayName(&domain.OFFProduct{ProductName: "   "}))
}

func TestDisplayBrand(t *testing.T) {
	assert.Equal(t, "Optimum Nutrition", DisplayBrand(&domain.OFFProduct{Brands: "Optimum Nutrition"}))
	assert.Equal(t, "Optimum Nutrition", DisplayBrand(&domain.OFFProduct{Brands: "Optimum Nutrition, Glanbia"}))
	assert.Equal(t, domain.PlaceholderBrand, DisplayBrand(&domain.OFFProduct{}))
}
