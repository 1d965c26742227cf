package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/fuzzy"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/gateway"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/rowcodec"
)

func encodeIngredientRecord(ingredient models.Ingredient) gateway.Record {
	return gateway.Record{
		"INGREDIENT": ingredient.Name,
		"UNIT":       ingredient.Unit,
		"TYPE":       string(ingredient.Type),
		"SEASON":     rowcodec.EncodeStringList(ingredient.Season),
	}
}

func decodeIngredientRecord(record gateway.Record) models.Ingredient {
	return models.Ingredient{
		ID:     recordInt64(record, "ID"),
		Name:   recordString(record, "INGREDIENT"),
		Unit:   recordString(record, "UNIT"),
		Type:   models.IngredientType(recordString(record, "TYPE")),
		Season: rowcodec.DecodeStringList(recordString(record, "SEASON")),
	}
}

// AddIngredient persists one ingredient and returns its canonical,
// ID-bearing form. The cache is untouched when storage fails.
func (store *Store) AddIngredient(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.addIngredientLocked(ctx, ingredient)
}

func (store *Store) addIngredientLocked(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error) {
	id, err := store.ingredientsTable.Insert(ctx, encodeIngredientRecord(ingredient))
	if err != nil {
		slog.Error("adding ingredient", "name", ingredient.Name, "error", err)
		return models.Ingredient{}, err
	}
	record, err := store.ingredientsTable.FindByID(ctx, id)
	if err != nil {
		slog.Error("re-fetching ingredient", "id", id, "error", err)
		return models.Ingredient{}, err
	}
	persisted := decodeIngredientRecord(record)
	store.ingredients = append(store.ingredients, persisted)
	return persisted, nil
}

// AddMultipleIngredients inserts in input order; a failed insert is logged
// and skipped, not fatal to the rest of the batch.
func (store *Store) AddMultipleIngredients(ctx context.Context, ingredients []models.Ingredient) []models.Ingredient {
	store.mu.Lock()
	defer store.mu.Unlock()

	added := make([]models.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		persisted, err := store.addIngredientLocked(ctx, ingredient)
		if err != nil {
			continue
		}
		added = append(added, persisted)
	}
	return added
}

func (store *Store) EditIngredient(ctx context.Context, ingredient models.Ingredient) error {
	if ingredient.ID <= 0 {
		return fmt.Errorf("editing ingredient %q: %w", ingredient.Name, ErrMissingID)
	}
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.ingredientsTable.UpdateByID(ctx, ingredient.ID, encodeIngredientRecord(ingredient)); err != nil {
		slog.Error("editing ingredient", "id", ingredient.ID, "error", err)
		return err
	}
	for i := range store.ingredients {
		if store.ingredients[i].ID == ingredient.ID {
			store.ingredients[i] = ingredient
			break
		}
	}
	return nil
}

// DeleteIngredient removes by ID when set, else by exact name.
func (store *Store) DeleteIngredient(ctx context.Context, ingredient models.Ingredient) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	var err error
	if ingredient.ID > 0 {
		err = store.ingredientsTable.DeleteByID(ctx, ingredient.ID)
	} else {
		err = store.ingredientsTable.Delete(ctx, gateway.Record{"INGREDIENT": ingredient.Name})
	}
	if err != nil {
		slog.Error("deleting ingredient", "name", ingredient.Name, "error", err)
		return err
	}

	kept := store.ingredients[:0]
	for _, cached := range store.ingredients {
		if ingredient.ID > 0 && cached.ID == ingredient.ID {
			continue
		}
		if ingredient.ID <= 0 && cached.Name == ingredient.Name {
			continue
		}
		kept = append(kept, cached)
	}
	store.ingredients = kept
	return nil
}

// FindSimilarIngredients searches the cache; storage is never re-queried.
func (store *Store) FindSimilarIngredients(name string) []models.Ingredient {
	store.mu.Lock()
	defer store.mu.Unlock()
	return fuzzy.FindSimilarIngredients(name, store.ingredients)
}

// verifyIngredientsLocked resolves every recipe ingredient reference to a
// persisted ingredient, creating missing ones, and preserves each
// reference's recipe-local quantity.
func (store *Store) verifyIngredientsLocked(ctx context.Context, references []models.Ingredient) ([]models.Ingredient, error) {
	resolved := make([]models.Ingredient, 0, len(references))
	for _, reference := range references {
		existing, found := store.ingredientByNameLocked(reference.Name)
		if !found {
			persisted, err := store.addIngredientLocked(ctx, reference)
			if err != nil {
				return nil, fmt.Errorf("creating ingredient %q: %w", reference.Name, err)
			}
			existing = persisted
		}
		existing.Quantity = reference.Quantity
		resolved = append(resolved, existing)
	}
	return resolved, nil
}

func (store *Store) ingredientByNameLocked(name string) (models.Ingredient, bool) {
	for _, ingredient := range store.ingredients {
		if strings.EqualFold(ingredient.Name, name) {
			return ingredient, true
		}
	}
	return models.Ingredient{}, false
}
