// Package store is the single authoritative owner of the recipe data: four
// SQLite tables behind generic gateways, plus an in-memory mirror of each
// that stays in lockstep with storage after every mutation. Every other part
// of the application reads and writes through a Store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/gateway"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
)

// ErrMissingID is returned by edit operations called on an entity that was
// never persisted.
var ErrMissingID = errors.New("entity has no ID")

// ImageDirProvider supplies the directory recipe images live in. Decoded
// image sources are resolved against it; it is owned elsewhere.
type ImageDirProvider interface {
	RecipeImageDir() string
}

var recipeColumns = []gateway.Column{
	{Name: "IMAGE_SOURCE", SQLType: "TEXT"},
	{Name: "TITLE", SQLType: "TEXT"},
	{Name: "DESCRIPTION", SQLType: "TEXT"},
	{Name: "TAGS", SQLType: "TEXT"},
	{Name: "PERSONS", SQLType: "INTEGER"},
	{Name: "INGREDIENTS", SQLType: "TEXT"},
	{Name: "PREPARATION", SQLType: "TEXT"},
	{Name: "TIME", SQLType: "INTEGER"},
}

var ingredientColumns = []gateway.Column{
	{Name: "INGREDIENT", SQLType: "TEXT"},
	{Name: "UNIT", SQLType: "TEXT"},
	{Name: "TYPE", SQLType: "TEXT"},
	{Name: "SEASON", SQLType: "TEXT"},
}

var tagColumns = []gateway.Column{
	{Name: "NAME", SQLType: "TEXT"},
}

var shoppingColumns = []gateway.Column{
	{Name: "TYPE", SQLType: "TEXT"},
	{Name: "INGREDIENT", SQLType: "TEXT"},
	{Name: "QUANTITY", SQLType: "TEXT"},
	{Name: "UNIT", SQLType: "TEXT"},
	{Name: "TITLES", SQLType: "TEXT"},
	{Name: "PURCHASED", SQLType: "INTEGER"},
}

// Store must be constructed once per process by the composition root and
// Init must run before any other call.
type Store struct {
	mu     sync.Mutex
	images ImageDirProvider

	recipesTable     *gateway.Table
	ingredientsTable *gateway.Table
	tagsTable        *gateway.Table
	shoppingTable    *gateway.Table

	recipes     []models.Recipe
	ingredients []models.Ingredient
	tags        []models.Tag
	shopping    []models.ShoppingItem
}

func New(db *sql.DB, images ImageDirProvider) *Store {
	return &Store{
		images:           images,
		recipesTable:     gateway.New(db, "recipes", recipeColumns),
		ingredientsTable: gateway.New(db, "ingredients", ingredientColumns),
		tagsTable:        gateway.New(db, "tags", tagColumns),
		shoppingTable:    gateway.New(db, "shopping", shoppingColumns),
	}
}

// Init creates any missing tables and loads all four caches. It is
// idempotent: calling it on an initialized store reloads from storage.
func (store *Store) Init(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, table := range store.tables() {
		if err := table.Create(ctx); err != nil {
			return fmt.Errorf("initializing store: %w", err)
		}
	}
	return store.reloadLocked(ctx)
}

// Reset drops and recreates all four tables and clears the caches. The
// store stays ready for use afterwards.
func (store *Store) Reset(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, table := range store.tables() {
		if err := table.Drop(ctx); err != nil {
			return fmt.Errorf("resetting store: %w", err)
		}
		if err := table.Create(ctx); err != nil {
			return fmt.Errorf("resetting store: %w", err)
		}
	}
	store.recipes = []models.Recipe{}
	store.ingredients = []models.Ingredient{}
	store.tags = []models.Tag{}
	store.shopping = []models.ShoppingItem{}
	return nil
}

func (store *Store) tables() []*gateway.Table {
	return []*gateway.Table{store.recipesTable, store.ingredientsTable, store.tagsTable, store.shoppingTable}
}

// reloadLocked rebuilds every cache from storage. Ingredients and tags load
// first because recipe decoding resolves references against them.
func (store *Store) reloadLocked(ctx context.Context) error {
	ingredientRecords, err := store.ingredientsTable.Find(ctx, nil)
	if err != nil {
		return fmt.Errorf("loading ingredients: %w", err)
	}
	store.ingredients = []models.Ingredient{}
	for _, record := range ingredientRecords {
		store.ingredients = append(store.ingredients, decodeIngredientRecord(record))
	}

	tagRecords, err := store.tagsTable.Find(ctx, nil)
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}
	store.tags = []models.Tag{}
	for _, record := range tagRecords {
		store.tags = append(store.tags, decodeTagRecord(record))
	}

	recipeRecords, err := store.recipesTable.Find(ctx, nil)
	if err != nil {
		return fmt.Errorf("loading recipes: %w", err)
	}
	store.recipes = []models.Recipe{}
	for _, record := range recipeRecords {
		store.recipes = append(store.recipes, store.decodeRecipeRecord(record))
	}

	shoppingRecords, err := store.shoppingTable.Find(ctx, nil)
	if err != nil {
		return fmt.Errorf("loading shopping list: %w", err)
	}
	store.shopping = []models.ShoppingItem{}
	for _, record := range shoppingRecords {
		store.shopping = append(store.shopping, decodeShoppingRecord(record))
	}
	return nil
}

func (store *Store) Recipes() []models.Recipe {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]models.Recipe(nil), store.recipes...)
}

func (store *Store) Ingredients() []models.Ingredient {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]models.Ingredient(nil), store.ingredients...)
}

func (store *Store) Tags() []models.Tag {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]models.Tag(nil), store.tags...)
}

func (store *Store) ShoppingList() []models.ShoppingItem {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]models.ShoppingItem(nil), store.shopping...)
}

// resolveImage prefixes a stored image filename with the image directory.
func (store *Store) resolveImage(name string) string {
	if store.images == nil || name == "" {
		return name
	}
	directory := store.images.RecipeImageDir()
	if directory == "" {
		return name
	}
	return filepath.Join(directory, name)
}

// relativizeImage strips the image directory prefix before persisting, so
// rows survive the directory moving.
func (store *Store) relativizeImage(source string) string {
	if store.images == nil || source == "" {
		return source
	}
	directory := store.images.RecipeImageDir()
	if directory == "" {
		return source
	}
	if relative, err := filepath.Rel(directory, source); err == nil && !strings.HasPrefix(relative, "..") {
		return relative
	}
	return source
}

func recordString(record gateway.Record, key string) string {
	if value, ok := record[key].(string); ok {
		return value
	}
	return ""
}

func recordInt64(record gateway.Record, key string) int64 {
	if value, ok := record[key].(int64); ok {
		return value
	}
	return 0
}

func recordBool(record gateway.Record, key string) bool {
	return recordInt64(record, key) != 0
}
