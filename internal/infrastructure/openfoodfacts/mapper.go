package openfoodfacts

import (
	"fmt"
	"strings"

	"github.com/proteinscan/backend/internal/domain"
)

// saltToSodiumFactor converts salt mass to sodium mass (NaCl is ~40% sodium)
const saltToSodiumFactor = 2.5

// MapNutrients converts an OFF per-100g nutriment block into domain nutrients.
// Missing fields stay 0; sodium comes out in milligrams, derived from salt
// when OFF reports only that.
func MapNutrients(n domain.OFFNutriments) domain.Nutrients {
	sodiumMg := n.Sodium100g * 1000
	if sodiumMg == 0 && n.Salt100g > 0 {
		sodiumMg = n.Salt100g / saltToSodiumFactor * 1000
	}

	return domain.Nutrients{
		EnergyKcal:   n.EnergyKcal100g,
		Protein:      n.Proteins100g,
		Sugars:       n.Sugars100g,
		TotalFat:     n.Fat100g,
		SaturatedFat: n.SaturatedFat100g,
		SodiumMg:     sodiumMg,
		Fiber:        n.Fiber100g,
	}
}

// MapNutritionHighlights builds the display map shown on the result screen.
// Calories, sugar and fat are always present; fiber and sodium only when the
// database reported them.
func MapNutritionHighlights(n domain.Nutrients) map[string]string {
	highlights := map[string]string{
		"calories": fmt.Sprintf("%s kcal", trimFloat(n.EnergyKcal)),
		"sugar":    fmt.Sprintf("%sg", trimFloat(n.Sugars)),
		"fat":      fmt.Sprintf("%sg", trimFloat(n.TotalFat)),
	}
	if n.Fiber > 0 {
		highlights["fiber"] = fmt.Sprintf("%sg", trimFloat(n.Fiber))
	}
	if n.SodiumMg > 0 {
		highlights["sodium"] = fmt.Sprintf("%smg", trimFloat(n.SodiumMg))
	}
	return highlights
}

// DisplayName returns the product name or its documented placeholder
func DisplayName(p *domain.OFFProduct) string {
	if name := strings.TrimSpace(p.ProductName); name != "" {
		return name
	}
	return domain.PlaceholderName
}

// DisplayBrand returns the first listed brand or its documented placeholder
func DisplayBrand(p *domain.OFFProduct) string {
	brands := strings.TrimSpace(p.Brands)
	if brands == "" {
		return domain.PlaceholderBrand
	}
	if idx := strings.Index(brands, ","); idx > 0 {
		return strings.TrimSpace(brands[:idx])
	}
	return brands
}

// trimFloat renders a float without trailing zeros ("24", "1.5")
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	return s
}
