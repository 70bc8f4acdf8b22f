package domain

// Nutrients holds the per-100g nutrient facts used by the scoring heuristic.
// Zero values mean the food database did not report the field.
type Nutrients struct {
	EnergyKcal   float64 `json:"energyKcal"`
	Protein      float64 `json:"protein"`      // grams
	Sugars       float64 `json:"sugars"`       // grams
	TotalFat     float64 `json:"totalFat"`     // grams
	SaturatedFat float64 `json:"saturatedFat"` // grams
	SodiumMg     float64 `json:"sodiumMg"`     // milligrams
	Fiber        float64 `json:"fiber"`        // grams
}

// OFFNutriments mirrors the per-100g block of an Open Food Facts product payload
type OFFNutriments struct {
	EnergyKcal100g   float64 `json:"energy-kcal_100g"`
	Proteins100g     float64 `json:"proteins_100g"`
	Sugars100g       float64 `json:"sugars_100g"`
	Fat100g          float64 `json:"fat_100g"`
	SaturatedFat100g float64 `json:"saturated-fat_100g"`
	Sodium100g       float64 `json:"sodium_100g"` // grams; mapper converts to mg
	Fiber100g        float64 `json:"fiber_100g"`
	Salt100g         float64 `json:"salt_100g"`
}

// OFFProduct represents a product object from the Open Food Facts API
type OFFProduct struct {
	Code            string        `json:"code"`
	ProductName     string        `json:"product_name"`
	Brands          string        `json:"brands"`
	Categories      string        `json:"categories"`
	IngredientsText string        `json:"ingredients_text"`
	ServingSize     string        `json:"serving_size"`
	ImageURL        string        `json:"image_url"`
	Nutriments      OFFNutriments `json:"nutriments"`
}

// OFFProductResponse is the per-barcode lookup response. Status is 1 when the
// barcode matched a product, 0 otherwise.
type OFFProductResponse struct {
	Status  int         `json:"status"`
	Code    string      `json:"code"`
	Product *OFFProduct `json:"product"`
}

// OFFSearchResponse is the free-text search response
type OFFSearchResponse struct {
	Count    int          `json:"count"`
	Products []OFFProduct `json:"products"`
}
