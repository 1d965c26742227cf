package rowcodec_test

import (
	"reflect"
	"testing"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/rowcodec"
)

var knownIngredients = []models.Ingredient{
	{ID: 3, Name: "Tomato", Unit: "g", Type: models.TypeVegetable, Season: []string{"6", "7", "8"}},
	{ID: 4, Name: "Salt", Unit: "", Type: models.TypeCondiment, Season: []string{models.SeasonAllYear}},
}

func TestEncodeIngredientRef(t *testing.T) {
	ingredient := models.Ingredient{ID: 3, Name: "Tomato", Quantity: "100"}
	token, err := rowcodec.EncodeIngredientRef(ingredient, knownIngredients)
	if err != nil {
		t.Fatalf("encoding: %v", err)
	}
	if token != "3__100" {
		t.Errorf("expected '3__100', got %q", token)
	}
}

func TestEncodeIngredientRef_ResolvesByName(t *testing.T) {
	ingredient := models.Ingredient{Name: "salt", Quantity: "1"}
	token, err := rowcodec.EncodeIngredientRef(ingredient, knownIngredients)
	if err != nil {
		t.Fatalf("encoding: %v", err)
	}
	if token != "4__1" {
		t.Errorf("expected '4__1', got %q", token)
	}
}

func TestEncodeIngredientRef_Unresolvable(t *testing.T) {
	ingredient := models.Ingredient{Name: "Dragonfruit", Quantity: "1"}
	if _, err := rowcodec.EncodeIngredientRef(ingredient, knownIngredients); err == nil {
		t.Fatal("expected error for unresolvable ingredient")
	}
}

func TestIngredientListRoundTrip(t *testing.T) {
	ingredients := []models.Ingredient{
		{ID: 3, Name: "Tomato", Unit: "g", Type: models.TypeVegetable, Season: []string{"6", "7", "8"}, Quantity: "400"},
		{ID: 4, Name: "Salt", Type: models.TypeCondiment, Season: []string{models.SeasonAllYear}, Quantity: "1 pinch"},
	}
	blob := rowcodec.EncodeIngredientList(ingredients, knownIngredients)
	decoded := rowcodec.DecodeIngredientList(blob, knownIngredients)
	if !reflect.DeepEqual(decoded, ingredients) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, ingredients)
	}
}

func TestDecodeIngredientList_SkipsMissingReference(t *testing.T) {
	blob := "3__100--99__5--4__1"
	decoded := rowcodec.DecodeIngredientList(blob, knownIngredients)
	if len(decoded) != 2 {
		t.Fatalf("expected 2 ingredients (missing ref skipped), got %d", len(decoded))
	}
	if decoded[0].Name != "Tomato" || decoded[1].Name != "Salt" {
		t.Errorf("unexpected decode order: %+v", decoded)
	}
}

func TestDecodeIngredientList_Empty(t *testing.T) {
	decoded := rowcodec.DecodeIngredientList("", knownIngredients)
	if decoded == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty slice, got %+v", decoded)
	}
}

func TestDecodeIngredientList_SingleToken(t *testing.T) {
	decoded := rowcodec.DecodeIngredientList("3__250", knownIngredients)
	if len(decoded) != 1 {
		t.Fatalf("expected one-element list, got %d", len(decoded))
	}
	if decoded[0].Quantity != "250" {
		t.Errorf("expected quantity '250', got %q", decoded[0].Quantity)
	}
}

func TestTagListRoundTrip(t *testing.T) {
	known := []models.Tag{{ID: 1, Name: "Dessert"}, {ID: 2, Name: "Vegan"}}
	blob := rowcodec.EncodeTagList([]models.Tag{known[1], known[0]}, known)
	if blob != "2--1" {
		t.Errorf("expected '2--1', got %q", blob)
	}
	decoded := rowcodec.DecodeTagList(blob, known)
	if len(decoded) != 2 || decoded[0].Name != "Vegan" || decoded[1].Name != "Dessert" {
		t.Errorf("unexpected tags: %+v", decoded)
	}
}

func TestPreparationRoundTrip(t *testing.T) {
	steps := []models.PreparationStep{
		{Title: "Prepare", Description: "Chop the tomatoes"},
		{Title: "Cook", Description: "Simmer for 20 minutes"},
	}
	decoded := rowcodec.DecodePreparation(rowcodec.EncodePreparation(steps))
	if !reflect.DeepEqual(decoded, steps) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, steps)
	}
}

func TestDecodePreparation_TokenWithoutSeparator(t *testing.T) {
	decoded := rowcodec.DecodePreparation("Just simmer everything")
	if len(decoded) != 1 {
		t.Fatalf("expected 1 step, got %d", len(decoded))
	}
	if decoded[0].Title != "" {
		t.Errorf("expected empty title, got %q", decoded[0].Title)
	}
	if decoded[0].Description != "Just simmer everything" {
		t.Errorf("unexpected description: %q", decoded[0].Description)
	}
}

func TestDecodePreparation_Empty(t *testing.T) {
	decoded := rowcodec.DecodePreparation("")
	if decoded == nil || len(decoded) != 0 {
		t.Errorf("expected empty slice, got %+v", decoded)
	}
}

func TestStringListRoundTrip(t *testing.T) {
	titles := []string{"Soup", "Stew"}
	decoded := rowcodec.DecodeStringList(rowcodec.EncodeStringList(titles))
	if !reflect.DeepEqual(decoded, titles) {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
	if got := rowcodec.DecodeStringList(""); got == nil || len(got) != 0 {
		t.Errorf("expected empty slice for empty blob, got %+v", got)
	}
}

func TestIntersectSeasons(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []string
	}{
		{"sentinel left", []string{"*"}, []string{"3", "4"}, []string{"3", "4"}},
		{"sentinel right", []string{"3", "4"}, []string{"*"}, []string{"3", "4"}},
		{"both sentinel", []string{"*"}, []string{"*"}, models.AllMonths()},
		{"overlap", []string{"1", "2"}, []string{"2", "3"}, []string{"2"}},
		{"disjoint", []string{"1"}, []string{"2"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rowcodec.IntersectSeasons(tt.a, tt.b)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("IntersectSeasons(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDeriveRecipeSeason(t *testing.T) {
	allYear := models.Ingredient{Season: []string{models.SeasonAllYear}}
	summer := models.Ingredient{Season: []string{"6", "7", "8"}}
	lateSummer := models.Ingredient{Season: []string{"8", "9"}}

	if got := rowcodec.DeriveRecipeSeason([]models.Ingredient{allYear}); !reflect.DeepEqual(got, models.AllMonths()) {
		t.Errorf("all-year only: expected full year, got %v", got)
	}
	if got := rowcodec.DeriveRecipeSeason([]models.Ingredient{allYear, summer, lateSummer}); !reflect.DeepEqual(got, []string{"8"}) {
		t.Errorf("expected [8], got %v", got)
	}
	if got := rowcodec.DeriveRecipeSeason(nil); !reflect.DeepEqual(got, models.AllMonths()) {
		t.Errorf("no ingredients: expected full year, got %v", got)
	}
}
