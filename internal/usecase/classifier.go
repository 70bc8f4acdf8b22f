package usecase

import (
	"strings"

	"github.com/proteinscan/backend/internal/domain"
)

// maxIngredientAnnotations caps the result screen's ingredient list
const maxIngredientAnnotations = 10

// goodKeywords mark ingredients commonly valued in protein products
var goodKeywords = []string{
	"whey protein", "whey isolate", "casein", "milk protein",
	"egg white", "egg protein", "pea protein", "rice protein",
	"soy protein", "hemp protein", "collagen", "lecithin",
	"stevia", "monk fruit", "oat", "almond", "quinoa",
	"chia", "flax", "bcaa", "creatine", "l-glutamine",
	"probiotic", "cocoa",
}

// warningKeywords mark ingredients with documented sensitivities or debate
var warningKeywords = []string{
	"sucralose", "acesulfame", "aspartame", "saccharin",
	"maltodextrin", "carrageenan", "dextrose", "corn syrup solids",
	"artificial flavor", "artificial flavour", "gums", "xanthan",
	"sorbitol", "xylitol", "erythritol", "caffeine",
}

// badKeywords mark ingredients with known negative health associations
var badKeywords = []string{
	"high fructose corn syrup", "hydrogenated", "trans fat",
	"artificial color", "artificial colour", "red dye", "red 40",
	"yellow 5", "yellow 6", "blue 1", "titanium dioxide",
	"bha", "bht", "propylparaben", "potassium bromate",
	"partially hydrogenated",
}

// ingredientReasons maps a matched keyword to its bespoke rationale
var ingredientReasons = map[string]string{
	"whey protein":             "High-quality complete protein",
	"whey isolate":             "High-quality complete protein",
	"casein":                   "Slow-digesting complete protein",
	"milk protein":             "Complete dairy protein blend",
	"egg white":                "Complete protein with high bioavailability",
	"egg protein":              "Complete protein with high bioavailability",
	"pea protein":              "Plant-based complete protein",
	"rice protein":             "Complementary amino acid profile",
	"soy protein":              "Plant-based complete protein",
	"collagen":                 "Supports joint and skin health",
	"lecithin":                 "Natural emulsifier, supports brain health",
	"stevia":                   "Natural zero-calorie sweetener",
	"monk fruit":               "Natural zero-calorie sweetener",
	"creatine":                 "Well-researched strength supplement",
	"sucralose":                "Artificial sweetener, may affect gut bacteria",
	"acesulfame":               "Artificial sweetener, some concerns with long-term use",
	"aspartame":                "Artificial sweetener, controversial research findings",
	"maltodextrin":             "Highly processed carb, spikes blood sugar",
	"carrageenan":              "Thickener linked to digestive inflammation",
	"caffeine":                 "Stimulant, fine in moderation",
	"high fructose corn syrup": "Linked to obesity and metabolic issues",
	"hydrogenated":             "Source of trans fats, harms heart health",
	"artificial color":         "May cause hyperactivity and allergic reactions",
	"artificial colour":        "May cause hyperactivity and allergic reactions",
	"red dye":                  "May cause hyperactivity and allergic reactions",
	"red 40":                   "May cause hyperactivity and allergic reactions",
	"titanium dioxide":         "Whitening agent with safety concerns",
}

// genericReasons supply the fallback rationale per category
var genericReasons = map[domain.IngredientCategory]string{
	domain.CategoryGood:    "Beneficial ingredient in protein products",
	domain.CategoryWarning: "May cause issues for sensitive individuals",
	domain.CategoryBad:     "Associated with negative health effects",
	domain.CategoryNeutral: "Generally recognized as safe",
}

// ClassifyIngredients maps a free-text ingredient list to per-ingredient
// annotations. Candidates are comma-separated; matching is a lowercased
// substring test in priority order good > warning > bad, first hit wins; no
// hit means neutral. Output is capped at ten entries, a display limit.
func ClassifyIngredients(ingredientsText string) []domain.IngredientAnnotation {
	if strings.TrimSpace(ingredientsText) == "" {
		return []domain.IngredientAnnotation{}
	}

	annotations := make([]domain.IngredientAnnotation, 0, maxIngredientAnnotations)
	for _, candidate := range strings.Split(ingredientsText, ",") {
		name := strings.TrimSpace(candidate)
		if name == "" {
			continue
		}
		if len(annotations) == maxIngredientAnnotations {
			break
		}

		category, reason := classifyIngredient(name)
		annotations = append(annotations, domain.IngredientAnnotation{
			Name:     name,
			Category: category,
			Reason:   reason,
		})
	}

	return annotations
}

// classifyIngredient resolves one ingredient name to a category and rationale
func classifyIngredient(name string) (domain.IngredientCategory, string) {
	lower := strings.ToLower(name)

	if keyword, ok := matchKeyword(lower, goodKeywords); ok {
		return domain.CategoryGood, reasonFor(keyword, domain.CategoryGood)
	}
	if keyword, ok := matchKeyword(lower, warningKeywords); ok {
		return domain.CategoryWarning, reasonFor(keyword, domain.CategoryWarning)
	}
	if keyword, ok := matchKeyword(lower, badKeywords); ok {
		return domain.CategoryBad, reasonFor(keyword, domain.CategoryBad)
	}

	return domain.CategoryNeutral, genericReasons[domain.CategoryNeutral]
}

// matchKeyword returns the first keyword contained in the lowercased name
func matchKeyword(lower string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// reasonFor looks up the bespoke rationale, falling back to the category generic
func reasonFor(keyword string, category domain.IngredientCategory) string {
	if reason, ok := ingredientReasons[keyword]; ok {
		return reason
	}
	return genericReasons[category]
}
