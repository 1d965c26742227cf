package fuzzy_test

import (
	"testing"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/fuzzy"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Tomato (diced)", "Tomato"},
		{"Tomato   (diced)  (ripe)", "Tomato"},
		{"  Olive   Oil  ", "Olive Oil"},
		{"Plain", "Plain"},
	}
	for _, tt := range tests {
		if got := fuzzy.CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindSimilarTags_ExactMatchShortCircuits(t *testing.T) {
	tags := []models.Tag{{ID: 1, Name: "Dessert"}, {ID: 2, Name: "Desserts"}}
	found := fuzzy.FindSimilarTags("dessert", tags)
	if len(found) != 1 {
		t.Fatalf("expected exactly the exact match, got %d results", len(found))
	}
	if found[0].ID != 1 {
		t.Errorf("expected tag 1, got %d", found[0].ID)
	}
}

func TestFindSimilarTags_ThresholdRejectsUnrelated(t *testing.T) {
	tags := []models.Tag{{ID: 1, Name: "Dessert"}}
	if found := fuzzy.FindSimilarTags("zzzzz_unrelated", tags); len(found) != 0 {
		t.Errorf("expected no matches, got %+v", found)
	}
}

func TestFindSimilarTags_CloseMatch(t *testing.T) {
	tags := []models.Tag{{ID: 1, Name: "Vegan"}, {ID: 2, Name: "Winter"}}
	found := fuzzy.FindSimilarTags("vegans", tags)
	if len(found) != 1 || found[0].Name != "Vegan" {
		t.Errorf("expected [Vegan], got %+v", found)
	}
}

func TestFindSimilarIngredients_Typo(t *testing.T) {
	ingredients := []models.Ingredient{{ID: 1, Name: "Tomato", Type: models.TypeVegetable}}
	if found := fuzzy.FindSimilarIngredients("tomatoe", ingredients); len(found) == 0 {
		t.Error("expected 'tomatoe' to match 'Tomato'")
	}
}

func TestFindSimilarIngredients_ParentheticalCleaned(t *testing.T) {
	ingredients := []models.Ingredient{{ID: 1, Name: "Tomato (diced)"}}
	found := fuzzy.FindSimilarIngredients("Tomato", ingredients)
	if len(found) != 1 {
		t.Fatalf("expected cleaned exact match, got %d results", len(found))
	}
}

func TestFindSimilarIngredients_Ordering(t *testing.T) {
	ingredients := []models.Ingredient{
		{ID: 1, Name: "Tomatillo"},
		{ID: 2, Name: "Tomatoes"},
	}
	found := fuzzy.FindSimilarIngredients("Tomato", ingredients)
	if len(found) < 2 {
		t.Fatalf("expected both near matches, got %d", len(found))
	}
	if found[0].Name != "Tomatoes" {
		t.Errorf("expected best match first, got %q", found[0].Name)
	}
}

func similarRecipeFixture() (models.Recipe, models.Recipe) {
	target := models.Recipe{
		ID:      1,
		Title:   "Tomato Soup",
		Persons: 2,
		Ingredients: []models.Ingredient{
			{Name: "Tomato", Type: models.TypeVegetable, Quantity: "400"},
			{Name: "Olive Oil", Type: models.TypeOilAndFat, Quantity: "10"},
		},
	}
	candidate := models.Recipe{
		ID:      2,
		Title:   "Tomato Soupe",
		Persons: 4,
		Ingredients: []models.Ingredient{
			{Name: "tomato", Type: models.TypeVegetable, Quantity: "800"},
		},
	}
	return target, candidate
}

func TestFindSimilarRecipes_StructuralMatch(t *testing.T) {
	target, candidate := similarRecipeFixture()
	found := fuzzy.FindSimilarRecipes(target, []models.Recipe{candidate})
	if len(found) != 1 {
		t.Fatalf("expected a structural+title match, got %d", len(found))
	}
	if found[0].ID != 2 {
		t.Errorf("expected recipe 2, got %d", found[0].ID)
	}
}

func TestFindSimilarRecipes_NeverMatchesItself(t *testing.T) {
	target, _ := similarRecipeFixture()
	if found := fuzzy.FindSimilarRecipes(target, []models.Recipe{target}); len(found) != 0 {
		t.Errorf("a recipe must not match itself, got %+v", found)
	}
}

func TestFindSimilarRecipes_QuantityOutsideTolerance(t *testing.T) {
	target, candidate := similarRecipeFixture()
	// 100/person vs 200/person is far beyond the 20% tolerance.
	candidate.Ingredients[0].Quantity = "400"
	if found := fuzzy.FindSimilarRecipes(target, []models.Recipe{candidate}); len(found) != 0 {
		t.Errorf("expected quantity mismatch to fail the pre-filter, got %+v", found)
	}
}

func TestFindSimilarRecipes_CoreCountMismatch(t *testing.T) {
	target, candidate := similarRecipeFixture()
	candidate.Ingredients = append(candidate.Ingredients,
		models.Ingredient{Name: "Onion", Type: models.TypeVegetable, Quantity: "100"})
	if found := fuzzy.FindSimilarRecipes(target, []models.Recipe{candidate}); len(found) != 0 {
		t.Errorf("expected core-count mismatch to fail the pre-filter, got %+v", found)
	}
}

func TestFindSimilarRecipes_InvalidPersonsExcluded(t *testing.T) {
	target, candidate := similarRecipeFixture()
	candidate.Persons = 0
	if found := fuzzy.FindSimilarRecipes(target, []models.Recipe{candidate}); len(found) != 0 {
		t.Errorf("expected candidate without servings to be excluded, got %+v", found)
	}

	target.Persons = 0
	_, candidate = similarRecipeFixture()
	if found := fuzzy.FindSimilarRecipes(target, []models.Recipe{candidate}); len(found) != 0 {
		t.Errorf("expected target without servings to match nothing, got %+v", found)
	}
}
