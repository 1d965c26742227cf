package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/fuzzy"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/gateway"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/quantity"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/rowcodec"
)

func (store *Store) encodeRecipeRecord(recipe models.Recipe) gateway.Record {
	return gateway.Record{
		"IMAGE_SOURCE": store.relativizeImage(recipe.ImageSource),
		"TITLE":        recipe.Title,
		"DESCRIPTION":  recipe.Description,
		"TAGS":         rowcodec.EncodeTagList(recipe.Tags, store.tags),
		"PERSONS":      recipe.Persons,
		"INGREDIENTS":  rowcodec.EncodeIngredientList(recipe.Ingredients, store.ingredients),
		"PREPARATION":  rowcodec.EncodePreparation(recipe.Preparation),
		"TIME":         recipe.Time,
	}
}

func (store *Store) decodeRecipeRecord(record gateway.Record) models.Recipe {
	ingredients := rowcodec.DecodeIngredientList(recordString(record, "INGREDIENTS"), store.ingredients)
	return models.Recipe{
		ID:          recordInt64(record, "ID"),
		ImageSource: store.resolveImage(recordString(record, "IMAGE_SOURCE")),
		Title:       recordString(record, "TITLE"),
		Description: recordString(record, "DESCRIPTION"),
		Tags:        rowcodec.DecodeTagList(recordString(record, "TAGS"), store.tags),
		Persons:     int(recordInt64(record, "PERSONS")),
		Ingredients: ingredients,
		Season:      rowcodec.DeriveRecipeSeason(ingredients),
		Preparation: rowcodec.DecodePreparation(recordString(record, "PREPARATION")),
		Time:        int(recordInt64(record, "TIME")),
	}
}

// AddRecipe persists a recipe. Tag references are resolved or created
// first, then ingredient references (that order matters: ingredient
// verification can itself insert rows); only once both lists point at
// persisted entities is the recipe row written and cached.
func (store *Store) AddRecipe(ctx context.Context, recipe models.Recipe) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	tags, err := store.verifyTagsLocked(ctx, recipe.Tags)
	if err != nil {
		slog.Error("adding recipe", "title", recipe.Title, "error", err)
		return err
	}
	ingredients, err := store.verifyIngredientsLocked(ctx, recipe.Ingredients)
	if err != nil {
		slog.Error("adding recipe", "title", recipe.Title, "error", err)
		return err
	}
	recipe.Tags = tags
	recipe.Ingredients = ingredients

	id, err := store.recipesTable.Insert(ctx, store.encodeRecipeRecord(recipe))
	if err != nil {
		slog.Error("adding recipe", "title", recipe.Title, "error", err)
		return err
	}
	record, err := store.recipesTable.FindByID(ctx, id)
	if err != nil {
		slog.Error("re-fetching recipe", "id", id, "error", err)
		return err
	}
	store.recipes = append(store.recipes, store.decodeRecipeRecord(record))
	return nil
}

// EditRecipe requires a persisted recipe; without an ID it fails before any
// storage call. On success the cached entry is replaced in place.
func (store *Store) EditRecipe(ctx context.Context, recipe models.Recipe) error {
	if recipe.ID <= 0 {
		return fmt.Errorf("editing recipe %q: %w", recipe.Title, ErrMissingID)
	}
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.recipesTable.UpdateByID(ctx, recipe.ID, store.encodeRecipeRecord(recipe)); err != nil {
		slog.Error("editing recipe", "id", recipe.ID, "error", err)
		return err
	}
	recipe.Season = rowcodec.DeriveRecipeSeason(recipe.Ingredients)
	for i := range store.recipes {
		if store.recipes[i].ID == recipe.ID {
			store.recipes[i] = recipe
			break
		}
	}
	return nil
}

// DeleteRecipe removes by ID when set, else by best-effort structural match
// on title, description and image. A successful delete also reconciles the
// shopping list: the recipe's contributions are subtracted, and entries
// left empty are removed entirely.
func (store *Store) DeleteRecipe(ctx context.Context, recipe models.Recipe) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	var err error
	if recipe.ID > 0 {
		err = store.recipesTable.DeleteByID(ctx, recipe.ID)
	} else {
		err = store.recipesTable.Delete(ctx, gateway.Record{
			"TITLE":        recipe.Title,
			"DESCRIPTION":  recipe.Description,
			"IMAGE_SOURCE": store.relativizeImage(recipe.ImageSource),
		})
	}
	if err != nil {
		slog.Error("deleting recipe", "title", recipe.Title, "error", err)
		return err
	}

	kept := store.recipes[:0]
	var deleted models.Recipe
	for _, cached := range store.recipes {
		if recipe.ID > 0 && cached.ID == recipe.ID {
			deleted = cached
			continue
		}
		if recipe.ID <= 0 && cached.Title == recipe.Title && cached.Description == recipe.Description &&
			store.relativizeImage(cached.ImageSource) == store.relativizeImage(recipe.ImageSource) {
			deleted = cached
			continue
		}
		kept = append(kept, cached)
	}
	store.recipes = kept
	if deleted.Title == "" {
		deleted = recipe
	}
	return store.reconcileShoppingLocked(ctx, deleted)
}

// FindSimilarRecipes delegates to the fuzzy matcher over the cache.
func (store *Store) FindSimilarRecipes(recipe models.Recipe) []models.Recipe {
	store.mu.Lock()
	defer store.mu.Unlock()
	return fuzzy.FindSimilarRecipes(recipe, store.recipes)
}

// RandomRecipes returns up to n recipes via a Fisher-Yates shuffle of the
// cache; n outside (0, len) returns the whole shuffled collection.
func (store *Store) RandomRecipes(n int) []models.Recipe {
	store.mu.Lock()
	defer store.mu.Unlock()

	if len(store.recipes) == 0 {
		slog.Error("no recipes to sample from")
		return []models.Recipe{}
	}
	shuffled := append([]models.Recipe(nil), store.recipes...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if n <= 0 || n >= len(shuffled) {
		return shuffled
	}
	return shuffled[:n]
}

// ScaleAllRecipesForNewPersons rescales every cached recipe to the new
// default serving count. Recipes already at the target are skipped; a
// recipe with no valid ID or serving count is logged and skipped, never
// fatal to the batch. Storage updates are applied as one batch and the
// cache is rewritten in a single pass afterwards.
func (store *Store) ScaleAllRecipesForNewPersons(ctx context.Context, newPersons int) error {
	if newPersons <= 0 {
		return fmt.Errorf("scaling recipes: invalid serving count %d", newPersons)
	}
	store.mu.Lock()
	defer store.mu.Unlock()

	type update struct {
		index  int
		recipe models.Recipe
		fields gateway.Record
	}
	var updates []update
	for i, cached := range store.recipes {
		if cached.Persons == newPersons {
			continue
		}
		if cached.ID <= 0 || cached.Persons <= 0 {
			slog.Error("skipping recipe with invalid serving data",
				"title", cached.Title, "id", cached.ID, "persons", cached.Persons)
			continue
		}
		scaled := cached
		scaled.Ingredients = append([]models.Ingredient(nil), cached.Ingredients...)
		for j := range scaled.Ingredients {
			scaled.Ingredients[j].Quantity = quantity.ScaleForPersons(
				scaled.Ingredients[j].Quantity, cached.Persons, newPersons)
		}
		scaled.Persons = newPersons
		updates = append(updates, update{
			index:  i,
			recipe: scaled,
			fields: gateway.Record{
				"PERSONS":     newPersons,
				"INGREDIENTS": rowcodec.EncodeIngredientList(scaled.Ingredients, store.ingredients),
			},
		})
	}

	var failures []error
	applied := updates[:0]
	for _, u := range updates {
		if err := store.recipesTable.UpdateByID(ctx, u.recipe.ID, u.fields); err != nil {
			slog.Error("scaling recipe", "id", u.recipe.ID, "error", err)
			failures = append(failures, err)
			continue
		}
		applied = append(applied, u)
	}
	for _, u := range applied {
		store.recipes[u.index] = u.recipe
	}
	return errors.Join(failures...)
}
