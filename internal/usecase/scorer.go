package usecase

import (
	"math"
	"strings"

	"github.com/proteinscan/backend/internal/domain"
)

// Scoring adjustments, applied additively to the base
const (
	scoreBase = 50.0

	proteinHighBonus   = 25.0 // ≥20g protein per 100g
	proteinMidBonus    = 15.0 // ≥15g
	proteinLowBonus    = 10.0 // ≥10g
	proteinPoorPenalty = 15.0 // <5g

	sugarVeryLowBonus = 15.0 // ≤2g sugar per 100g
	sugarLowBonus     = 10.0 // ≤5g
	sugarHighPenalty  = 20.0 // >15g
	sugarMidPenalty   = 10.0 // >10g

	sodiumLowBonus      = 10.0 // ≤200mg sodium per 100g
	sodiumHighPenalty   = 15.0 // >800mg
	sodiumMidPenalty    = 10.0 // >500mg
	satFatLowBonus      = 10.0 // ≤2g saturated fat per 100g
	satFatHighPenalty   = 15.0 // >10g
	nonProteinPenalty   = 20.0 // product is not protein-focused
	proteinFocusMinimum = 15.0 // grams per 100g that alone mark protein focus
)

// ScoreProduct runs the deterministic protein-quality heuristic over a
// product's per-100g nutrient facts. The sodium and saturated-fat adjustments
// only apply when the database reported those fields; protein and sugar are
// always judged, with absent values treated as zero. The final score is
// rounded and clamped to [1,100].
func ScoreProduct(n domain.Nutrients, name, categories string) domain.ScoreResult {
	score := scoreBase

	switch {
	case n.Protein >= 20:
		score += proteinHighBonus
	case n.Protein >= 15:
		score += proteinMidBonus
	case n.Protein >= 10:
		score += proteinLowBonus
	case n.Protein < 5:
		score -= proteinPoorPenalty
	}

	switch {
	case n.Sugars <= 2:
		score += sugarVeryLowBonus
	case n.Sugars <= 5:
		score += sugarLowBonus
	case n.Sugars > 15:
		score -= sugarHighPenalty
	case n.Sugars > 10:
		score -= sugarMidPenalty
	}

	if n.SodiumMg > 0 {
		switch {
		case n.SodiumMg <= 200:
			score += sodiumLowBonus
		case n.SodiumMg > 800:
			score -= sodiumHighPenalty
		case n.SodiumMg > 500:
			score -= sodiumMidPenalty
		}
	}

	if n.SaturatedFat > 0 {
		switch {
		case n.SaturatedFat <= 2:
			score += satFatLowBonus
		case n.SaturatedFat > 10:
			score -= satFatHighPenalty
		}
	}

	focused := isProteinFocused(n, name, categories)
	if !focused {
		// The tool is scoped to protein products; down-rank irrelevant matches.
		score -= nonProteinPenalty
	}

	return domain.ScoreResult{
		OverallScore:     clampScore(score),
		IsProteinFocused: focused,
	}
}

// isProteinFocused judges whether a product is marketed or composed primarily
// around protein content
func isProteinFocused(n domain.Nutrients, name, categories string) bool {
	if n.Protein >= proteinFocusMinimum {
		return true
	}
	if strings.Contains(strings.ToLower(categories), "protein") {
		return true
	}
	return strings.Contains(strings.ToLower(name), "protein")
}

// clampScore rounds and clamps a raw score into [1,100]
func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 1 {
		return 1
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
