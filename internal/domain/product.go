package domain

// IngredientCategory classifies a single ingredient for display
type IngredientCategory string

const (
	CategoryGood    IngredientCategory = "good"
	CategoryWarning IngredientCategory = "warning"
	CategoryBad     IngredientCategory = "bad"
	CategoryNeutral IngredientCategory = "neutral"
)

// BarcodeManualSearch marks records produced by free-text search rather than a scan
const BarcodeManualSearch = "manual-search"

// Placeholders for fields the food database may omit
const (
	PlaceholderName  = "Unknown Product"
	PlaceholderBrand = "Unknown Brand"
)

// IngredientAnnotation is one classified ingredient with its rationale
type IngredientAnnotation struct {
	Name     string             `json:"name"`
	Category IngredientCategory `json:"category"`
	Reason   string             `json:"reason"`
}

// ProductRecord is the normalized result of a lookup: identity, score, and
// ingredient analysis. Immutable once produced; history holds these by value.
type ProductRecord struct {
	Name                string                 `json:"name"`
	Brand               string                 `json:"brand"`
	Barcode             string                 `json:"barcode"`
	Score               int                    `json:"score"`
	ProteinPer100g      float64                `json:"proteinPer100g"`
	ServingSize         string                 `json:"servingSize"`
	Ingredients         []IngredientAnnotation `json:"ingredients"`
	NutritionHighlights map[string]string      `json:"nutritionHighlights"`
	ImageURL            string                 `json:"imageUrl,omitempty"`
	IsProteinProduct    bool                   `json:"isProteinProduct"`
}

// ScoreResult is the output of the protein-quality heuristic
type ScoreResult struct {
	OverallScore     int  `json:"overallScore"`
	IsProteinFocused bool `json:"isProteinFocused"`
}
