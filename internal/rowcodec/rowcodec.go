// Package rowcodec translates between in-memory entities and the flat text
// columns they are stored in. Nested lists are flattened with a two-level
// separator scheme: fields inside one item are joined with ItemSeparator,
// items inside one list with ListSeparator. Neither token may appear in
// user-entered free text.
package rowcodec

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
)

const (
	ItemSeparator = "__"
	ListSeparator = "--"
)

// EncodeList joins per-item encodings with ListSeparator. An empty input
// encodes to the empty string.
func EncodeList[T any](items []T, encode func(T) string) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, encode(item))
	}
	return strings.Join(parts, ListSeparator)
}

// DecodeList splits on ListSeparator (a blob without the separator is a
// one-element list) and decodes each token in order. Tokens the decoder
// rejects are skipped, not fatal. An empty blob decodes to an empty slice.
func DecodeList[T any](blob string, decode func(string) (T, bool)) []T {
	if blob == "" {
		return []T{}
	}
	tokens := strings.Split(blob, ListSeparator)
	items := make([]T, 0, len(tokens))
	for _, token := range tokens {
		if item, ok := decode(token); ok {
			items = append(items, item)
		}
	}
	return items
}

// EncodeIngredientRef produces "<id>__<quantity>". The ingredient is
// resolved to its ID through known, matching by ID when set, else by name.
func EncodeIngredientRef(ingredient models.Ingredient, known []models.Ingredient) (string, error) {
	id := ingredient.ID
	if id <= 0 {
		resolved, ok := lookupIngredientByName(ingredient.Name, known)
		if !ok {
			return "", fmt.Errorf("ingredient %q has no ID and is not in the lookup table", ingredient.Name)
		}
		id = resolved.ID
	}
	return strconv.FormatInt(id, 10) + ItemSeparator + ingredient.Quantity, nil
}

// DecodeIngredientRef is the inverse of EncodeIngredientRef: it resolves the
// encoded ID against known and attaches the recipe-local quantity.
func DecodeIngredientRef(token string, known []models.Ingredient) (models.Ingredient, error) {
	idText, quantity, _ := strings.Cut(token, ItemSeparator)
	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("parsing ingredient reference %q: %w", token, err)
	}
	for _, ingredient := range known {
		if ingredient.ID == id {
			ingredient.Quantity = quantity
			return ingredient, nil
		}
	}
	return models.Ingredient{}, fmt.Errorf("ingredient reference %d not found", id)
}

// EncodeIngredientList flattens recipe ingredients into one column value.
// A reference that cannot be resolved is logged and dropped so the rest of
// the list still encodes.
func EncodeIngredientList(ingredients []models.Ingredient, known []models.Ingredient) string {
	parts := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		token, err := EncodeIngredientRef(ingredient, known)
		if err != nil {
			slog.Warn("skipping unencodable ingredient reference", "name", ingredient.Name, "error", err)
			continue
		}
		parts = append(parts, token)
	}
	return strings.Join(parts, ListSeparator)
}

// DecodeIngredientList is the inverse of EncodeIngredientList. A missing
// reference is logged and skipped; it never aborts the rest of the list.
func DecodeIngredientList(blob string, known []models.Ingredient) []models.Ingredient {
	return DecodeList(blob, func(token string) (models.Ingredient, bool) {
		ingredient, err := DecodeIngredientRef(token, known)
		if err != nil {
			slog.Warn("skipping undecodable ingredient reference", "token", token, "error", err)
			return models.Ingredient{}, false
		}
		return ingredient, true
	})
}

// EncodeTagList stores tag references as their IDs. Every tag must already
// be persisted (ID set) or resolvable by name through known.
func EncodeTagList(tags []models.Tag, known []models.Tag) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		id := tag.ID
		if id <= 0 {
			resolved, ok := lookupTagByName(tag.Name, known)
			if !ok {
				slog.Warn("skipping unencodable tag reference", "name", tag.Name)
				continue
			}
			id = resolved.ID
		}
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ListSeparator)
}

func DecodeTagList(blob string, known []models.Tag) []models.Tag {
	return DecodeList(blob, func(token string) (models.Tag, bool) {
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			slog.Warn("skipping undecodable tag reference", "token", token, "error", err)
			return models.Tag{}, false
		}
		for _, tag := range known {
			if tag.ID == id {
				return tag, true
			}
		}
		slog.Warn("skipping unknown tag reference", "id", id)
		return models.Tag{}, false
	})
}

func EncodeStringList(values []string) string {
	return strings.Join(values, ListSeparator)
}

func DecodeStringList(blob string) []string {
	if blob == "" {
		return []string{}
	}
	return strings.Split(blob, ListSeparator)
}

// EncodePreparation stores each step as "title__description".
func EncodePreparation(steps []models.PreparationStep) string {
	return EncodeList(steps, func(step models.PreparationStep) string {
		return step.Title + ItemSeparator + step.Description
	})
}

// DecodePreparation reverses EncodePreparation. A token without the field
// separator becomes a step with an empty title and the token as description.
func DecodePreparation(blob string) []models.PreparationStep {
	return DecodeList(blob, func(token string) (models.PreparationStep, bool) {
		title, description, found := strings.Cut(token, ItemSeparator)
		if !found {
			return models.PreparationStep{Description: token}, true
		}
		return models.PreparationStep{Title: title, Description: description}, true
	})
}

// IntersectSeasons intersects two season lists by month token, preserving
// the order of the first operand. The "*" sentinel imposes no constraint:
// intersecting with it returns the other operand unchanged, and
// "*" ∩ "*" is the full twelve-month list.
func IntersectSeasons(a, b []string) []string {
	if isAllYear(a) && isAllYear(b) {
		return models.AllMonths()
	}
	if isAllYear(a) {
		return append([]string(nil), b...)
	}
	if isAllYear(b) {
		return append([]string(nil), a...)
	}
	inB := make(map[string]bool, len(b))
	for _, month := range b {
		inB[month] = true
	}
	result := []string{}
	for _, month := range a {
		if inB[month] {
			result = append(result, month)
		}
	}
	return result
}

// DeriveRecipeSeason folds IntersectSeasons over every ingredient season.
// If no ingredient restricts the season the result is all twelve months.
func DeriveRecipeSeason(ingredients []models.Ingredient) []string {
	season := []string{models.SeasonAllYear}
	for _, ingredient := range ingredients {
		if len(ingredient.Season) == 0 {
			continue
		}
		season = IntersectSeasons(season, ingredient.Season)
	}
	if isAllYear(season) {
		return models.AllMonths()
	}
	return season
}

func isAllYear(season []string) bool {
	for _, token := range season {
		if token == models.SeasonAllYear {
			return true
		}
	}
	return false
}

func lookupIngredientByName(name string, known []models.Ingredient) (models.Ingredient, bool) {
	for _, ingredient := range known {
		if strings.EqualFold(ingredient.Name, name) {
			return ingredient, true
		}
	}
	return models.Ingredient{}, false
}

func lookupTagByName(name string, known []models.Tag) (models.Tag, bool) {
	for _, tag := range known {
		if strings.EqualFold(tag.Name, name) {
			return tag, true
		}
	}
	return models.Tag{}, false
}
