package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/gateway"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/quantity"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/rowcodec"
)

func encodeShoppingRecord(item models.ShoppingItem) gateway.Record {
	return gateway.Record{
		"TYPE":       string(item.Type),
		"INGREDIENT": item.Name,
		"QUANTITY":   item.Quantity,
		"UNIT":       item.Unit,
		"TITLES":     rowcodec.EncodeStringList(item.RecipeTitles),
		"PURCHASED":  item.Purchased,
	}
}

func decodeShoppingRecord(record gateway.Record) models.ShoppingItem {
	return models.ShoppingItem{
		ID:           recordInt64(record, "ID"),
		Type:         models.IngredientType(recordString(record, "TYPE")),
		Name:         recordString(record, "INGREDIENT"),
		Quantity:     recordString(record, "QUANTITY"),
		Unit:         recordString(record, "UNIT"),
		RecipeTitles: rowcodec.DecodeStringList(recordString(record, "TITLES")),
		Purchased:    recordBool(record, "PURCHASED"),
	}
}

// AddRecipeToShopping merges every recipe ingredient into the shopping
// list: an entry with the same ingredient name absorbs the quantity and
// gains the recipe title once more, anything else becomes a new entry.
// Adding the same recipe twice therefore never duplicates rows.
func (store *Store) AddRecipeToShopping(ctx context.Context, recipe models.Recipe) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, ingredient := range recipe.Ingredients {
		index, found := store.shoppingIndexByNameLocked(ingredient.Name)
		if found {
			if err := store.mergeShoppingLocked(ctx, ingredient, recipe.Title, index); err != nil {
				slog.Warn("skipping shopping merge", "ingredient", ingredient.Name, "error", err)
			}
			continue
		}
		item := models.ShoppingItem{
			Type:         ingredient.Type,
			Name:         ingredient.Name,
			Quantity:     ingredient.Quantity,
			Unit:         ingredient.Unit,
			RecipeTitles: []string{recipe.Title},
			Purchased:    false,
		}
		id, err := store.shoppingTable.Insert(ctx, encodeShoppingRecord(item))
		if err != nil {
			slog.Error("adding shopping entry", "ingredient", ingredient.Name, "error", err)
			return err
		}
		record, err := store.shoppingTable.FindByID(ctx, id)
		if err != nil {
			slog.Error("re-fetching shopping entry", "id", id, "error", err)
			return err
		}
		store.shopping = append(store.shopping, decodeShoppingRecord(record))
	}
	return nil
}

// mergeShoppingLocked folds one more contribution into an existing entry.
// Both quantities must share a representation (numeric with numeric, text
// with text); a mismatch is a recoverable data inconsistency and leaves
// storage and cache untouched.
func (store *Store) mergeShoppingLocked(ctx context.Context, contribution models.Ingredient, title string, index int) error {
	existing := store.shopping[index]
	_, contributionNumeric := quantity.Parse(contribution.Quantity)
	_, existingNumeric := quantity.Parse(existing.Quantity)
	if contributionNumeric != existingNumeric {
		return fmt.Errorf("quantity representation mismatch for %q: %q vs %q",
			existing.Name, contribution.Quantity, existing.Quantity)
	}

	merged := existing
	merged.Quantity = quantity.Sum(existing.Quantity, contribution.Quantity)
	merged.RecipeTitles = append(append([]string(nil), existing.RecipeTitles...), title)

	err := store.shoppingTable.UpdateByID(ctx, existing.ID, gateway.Record{
		"QUANTITY": merged.Quantity,
		"TITLES":   rowcodec.EncodeStringList(merged.RecipeTitles),
	})
	if err != nil {
		return err
	}
	store.shopping[index] = merged
	return nil
}

// reconcileShoppingLocked undoes a deleted recipe's contributions. Entries
// reduced to nothing are removed; the rest lose the quantity and one
// occurrence of the recipe title.
func (store *Store) reconcileShoppingLocked(ctx context.Context, recipe models.Recipe) error {
	kept := make([]models.ShoppingItem, 0, len(store.shopping))
	for _, item := range store.shopping {
		titleIndex := indexOf(item.RecipeTitles, recipe.Title)
		if titleIndex < 0 {
			kept = append(kept, item)
			continue
		}
		contribution, found := ingredientByName(recipe.Ingredients, item.Name)
		if !found {
			kept = append(kept, item)
			continue
		}

		remaining := quantity.Subtract(item.Quantity, contribution.Quantity)
		if remaining == "" {
			if err := store.shoppingTable.DeleteByID(ctx, item.ID); err != nil {
				slog.Error("removing shopping entry", "id", item.ID, "error", err)
				kept = append(kept, item)
			}
			continue
		}

		item.Quantity = remaining
		item.RecipeTitles = append(
			append([]string(nil), item.RecipeTitles[:titleIndex]...),
			item.RecipeTitles[titleIndex+1:]...)
		err := store.shoppingTable.UpdateByID(ctx, item.ID, gateway.Record{
			"QUANTITY": item.Quantity,
			"TITLES":   rowcodec.EncodeStringList(item.RecipeTitles),
		})
		if err != nil {
			slog.Error("updating shopping entry", "id", item.ID, "error", err)
		}
		kept = append(kept, item)
	}
	store.shopping = kept
	return nil
}

// PurchaseShoppingItem flips the purchased flag of one entry.
func (store *Store) PurchaseShoppingItem(ctx context.Context, id int64, purchased bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	err := store.shoppingTable.UpdateByID(ctx, id, gateway.Record{"PURCHASED": purchased})
	if err != nil {
		slog.Error("updating purchased flag", "id", id, "error", err)
		return err
	}
	for i := range store.shopping {
		if store.shopping[i].ID == id {
			store.shopping[i].Purchased = purchased
			break
		}
	}
	return nil
}

// ResetShoppingList drops and recreates the shopping table and clears its
// cache; the other tables are untouched.
func (store *Store) ResetShoppingList(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.shoppingTable.Drop(ctx); err != nil {
		return err
	}
	if err := store.shoppingTable.Create(ctx); err != nil {
		return err
	}
	store.shopping = []models.ShoppingItem{}
	return nil
}

func (store *Store) shoppingIndexByNameLocked(name string) (int, bool) {
	for i, item := range store.shopping {
		if strings.EqualFold(item.Name, name) {
			return i, true
		}
	}
	return 0, false
}

func ingredientByName(ingredients []models.Ingredient, name string) (models.Ingredient, bool) {
	for _, ingredient := range ingredients {
		if strings.EqualFold(ingredient.Name, name) {
			return ingredient, true
		}
	}
	return models.Ingredient{}, false
}

func indexOf(values []string, target string) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}
