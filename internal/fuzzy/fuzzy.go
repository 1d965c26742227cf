// Package fuzzy finds near-duplicate ingredient, tag and recipe names so the
// store can offer an existing entity instead of creating one more spelling
// of it. Matching is relative edit distance: levenshtein distance divided by
// the longer name, lower is better.
package fuzzy

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/quantity"
)

const (
	// Tags are short and uniform, so the threshold is strict.
	tagThreshold = 0.4
	// Ingredient and recipe names vary more ("Tomato" vs "Tomato (diced)").
	ingredientThreshold  = 0.6
	recipeTitleThreshold = 0.6

	// Maximum relative difference between per-person quantities for two
	// recipe ingredients to count as structurally equal.
	quantityTolerance = 0.2
)

var parenthetical = regexp.MustCompile(`\([^)]*\)`)
var whitespace = regexp.MustCompile(`\s+`)

// CleanName strips parenthetical content and collapses whitespace, so
// "Tomato  (diced)" indexes and queries as "Tomato".
func CleanName(name string) string {
	cleaned := parenthetical.ReplaceAllString(name, " ")
	cleaned = whitespace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Score is the relative edit distance between two names, case-insensitive.
// 0 is identical, 1 is nothing in common.
func Score(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	longer := len([]rune(a))
	if l := len([]rune(b)); l > longer {
		longer = l
	}
	if longer == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longer)
}

// FindSimilarTags returns tags whose names are close to name, best first.
// An exact case-insensitive match short-circuits to that tag alone.
func FindSimilarTags(name string, tags []models.Tag) []models.Tag {
	for _, tag := range tags {
		if strings.EqualFold(tag.Name, name) {
			return []models.Tag{tag}
		}
	}
	type scored struct {
		tag   models.Tag
		score float64
	}
	var matches []scored
	for _, tag := range tags {
		if score := Score(name, tag.Name); score <= tagThreshold {
			matches = append(matches, scored{tag, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score < matches[j].score })
	result := make([]models.Tag, 0, len(matches))
	for _, match := range matches {
		result = append(result, match.tag)
	}
	return result
}

// FindSimilarIngredients is FindSimilarTags for ingredients, with names
// cleaned on both sides and a looser threshold.
func FindSimilarIngredients(name string, ingredients []models.Ingredient) []models.Ingredient {
	cleaned := CleanName(name)
	for _, ingredient := range ingredients {
		if strings.EqualFold(CleanName(ingredient.Name), cleaned) {
			return []models.Ingredient{ingredient}
		}
	}
	type scored struct {
		ingredient models.Ingredient
		score      float64
	}
	var matches []scored
	for _, ingredient := range ingredients {
		if score := Score(cleaned, CleanName(ingredient.Name)); score <= ingredientThreshold {
			matches = append(matches, scored{ingredient, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score < matches[j].score })
	result := make([]models.Ingredient, 0, len(matches))
	for _, match := range matches {
		result = append(result, match.ingredient)
	}
	return result
}

// FindSimilarRecipes ranks candidates that look like target: first a
// structural pre-filter on core ingredients, then fuzzy title ranking among
// the structural matches. A recipe never matches itself, and recipes with
// no valid serving count are never compared.
func FindSimilarRecipes(target models.Recipe, recipes []models.Recipe) []models.Recipe {
	if target.Persons <= 0 {
		return []models.Recipe{}
	}
	type scored struct {
		recipe models.Recipe
		score  float64
	}
	var matches []scored
	for _, candidate := range recipes {
		if candidate.ID != 0 && candidate.ID == target.ID {
			continue
		}
		if candidate.Persons <= 0 {
			continue
		}
		if !structurallySimilar(target, candidate) {
			continue
		}
		if score := Score(target.Title, candidate.Title); score <= recipeTitleThreshold {
			matches = append(matches, scored{candidate, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score < matches[j].score })
	result := make([]models.Recipe, 0, len(matches))
	for _, match := range matches {
		result = append(result, match.recipe)
	}
	return result
}

// structurallySimilar requires the same core ingredients (condiments and
// oils excluded) by name, with per-person quantities within tolerance.
func structurallySimilar(a, b models.Recipe) bool {
	coreA := coreIngredients(a)
	coreB := coreIngredients(b)
	if len(coreA) != len(coreB) {
		return false
	}
	for i := range coreA {
		if !strings.EqualFold(coreA[i].Name, coreB[i].Name) {
			return false
		}
		if !quantitiesComparable(coreA[i].Quantity, a.Persons, coreB[i].Quantity, b.Persons) {
			return false
		}
	}
	return true
}

// coreIngredients sorts alphabetically so the pairwise comparison is
// deterministic regardless of recipe ordering.
func coreIngredients(recipe models.Recipe) []models.Ingredient {
	core := make([]models.Ingredient, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		if ingredient.Type == models.TypeCondiment || ingredient.Type == models.TypeOilAndFat {
			continue
		}
		core = append(core, ingredient)
	}
	sort.Slice(core, func(i, j int) bool {
		return strings.ToLower(core[i].Name) < strings.ToLower(core[j].Name)
	})
	return core
}

func quantitiesComparable(quantityA string, personsA int, quantityB string, personsB int) bool {
	numberA, okA := quantity.Parse(quantityA)
	numberB, okB := quantity.Parse(quantityB)
	if okA != okB {
		return false
	}
	if !okA {
		return quantityA == quantityB
	}
	perPersonA := numberA / float64(personsA)
	perPersonB := numberB / float64(personsB)
	larger := math.Max(math.Abs(perPersonA), math.Abs(perPersonB))
	if larger == 0 {
		return true
	}
	return math.Abs(perPersonA-perPersonB)/larger <= quantityTolerance
}
