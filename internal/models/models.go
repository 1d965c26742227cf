package models

type IngredientType string

const (
	TypeCereal       IngredientType = "cereal"
	TypeVegetable    IngredientType = "vegetable"
	TypeMeat         IngredientType = "meat"
	TypePoultry      IngredientType = "poultry"
	TypeFish         IngredientType = "fish"
	TypeSeafood      IngredientType = "seafood"
	TypeDairy        IngredientType = "dairy"
	TypeCheese       IngredientType = "cheese"
	TypeSpice        IngredientType = "spice"
	TypeCondiment    IngredientType = "condiment"
	TypeSauce        IngredientType = "sauce"
	TypeOilAndFat    IngredientType = "oilAndFat"
	TypeFruit        IngredientType = "fruit"
	TypeLegumes      IngredientType = "legumes"
	TypeSugar        IngredientType = "sugar"
	TypeNutsAndSeeds IngredientType = "nutsAndSeeds"
	TypeSweetener    IngredientType = "sweetener"
	TypePlantProtein IngredientType = "plantProtein"
	TypeUndefined    IngredientType = "undefined"
)

// SeasonAllYear is the sentinel season token meaning "no seasonal
// restriction". A season list is either exactly [SeasonAllYear] or an
// ordered list of month tokens "1".."12".
const SeasonAllYear = "*"

func AllMonths() []string {
	return []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
}

// Ingredient is a shared pantry entry. Quantity is recipe-local: it is only
// meaningful when the ingredient appears inside a Recipe's ingredient list
// and is never persisted on the ingredients table itself.
type Ingredient struct {
	ID       int64          `json:"id,omitempty"`
	Name     string         `json:"name"`
	Unit     string         `json:"unit"`
	Type     IngredientType `json:"type"`
	Season   []string       `json:"season"`
	Quantity string         `json:"quantity,omitempty"`
}

type Tag struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type PreparationStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Recipe's Season is derived from its ingredients (intersection of all
// non-"*" ingredient seasons) and is not stored as its own column.
type Recipe struct {
	ID          int64             `json:"id,omitempty"`
	ImageSource string            `json:"image_Source"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        []Tag             `json:"tags"`
	Persons     int               `json:"persons"`
	Ingredients []Ingredient      `json:"ingredients"`
	Season      []string          `json:"season,omitempty"`
	Preparation []PreparationStep `json:"preparation"`
	Time        int               `json:"time"`
}

// ShoppingItem aggregates one ingredient across every recipe added to the
// shopping list. RecipeTitles keeps one entry per contribution, so a recipe
// added twice appears twice.
type ShoppingItem struct {
	ID           int64          `json:"id,omitempty"`
	Type         IngredientType `json:"type"`
	Name         string         `json:"name"`
	Quantity     string         `json:"quantity"`
	Unit         string         `json:"unit"`
	RecipeTitles []string       `json:"recipesTitle"`
	Purchased    bool           `json:"purchased"`
}
