package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/config"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/images"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/models"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/server"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/store"
)

func newServeCommand(recipeStore *store.Store, cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.New(recipeStore, cfg).Start()
		},
	}
}

func newListCommand(recipeStore *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:       "list {recipes|ingredients|tags}",
		Short:     "List stored entities",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"recipes", "ingredients", "tags"},
		RunE: func(cmd *cobra.Command, args []string) error {
			title := color.New(color.FgCyan, color.Bold)
			faint := color.New(color.Faint)
			switch args[0] {
			case "recipes":
				for _, recipe := range recipeStore.Recipes() {
					title.Printf("%s\n", recipe.Title)
					faint.Printf("  %d persons, %d min, season %s\n",
						recipe.Persons, recipe.Time, strings.Join(recipe.Season, ","))
				}
			case "ingredients":
				for _, ingredient := range recipeStore.Ingredients() {
					title.Printf("%s", ingredient.Name)
					faint.Printf("  (%s, unit %q)\n", ingredient.Type, ingredient.Unit)
				}
			case "tags":
				for _, tag := range recipeStore.Tags() {
					title.Printf("%s\n", tag.Name)
				}
			}
			return nil
		},
	}
}

func newAddRecipeCommand(recipeStore *store.Store, imageProvider *images.Provider) *cobra.Command {
	var imagePath string
	cmd := &cobra.Command{
		Use:   "add-recipe <recipe.json>",
		Short: "Add one recipe from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe, err := readRecipeFile(args[0])
			if err != nil {
				return err
			}
			if imagePath != "" {
				name, err := imageProvider.Import(imagePath)
				if err != nil {
					return err
				}
				recipe.ImageSource = name
			}
			if err := recipeStore.AddRecipe(cmd.Context(), recipe); err != nil {
				return err
			}
			fmt.Printf("added recipe %q\n", recipe.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&imagePath, "image", "", "image file to import for this recipe")
	return cmd
}

func newImportCommand(recipeStore *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "import <recipes.json>",
		Short: "Bulk-import recipes from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}
			var recipes []models.Recipe
			if err := json.Unmarshal(content, &recipes); err != nil {
				return fmt.Errorf("parsing import file: %w", err)
			}

			bar := progressbar.Default(int64(len(recipes)), "importing")
			failed := 0
			for _, recipe := range recipes {
				if err := recipeStore.AddRecipe(cmd.Context(), recipe); err != nil {
					failed++
				}
				bar.Add(1)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d recipes failed to import", failed, len(recipes))
			}
			fmt.Printf("imported %d recipes\n", len(recipes))
			return nil
		},
	}
}

func newShoppingCommand(recipeStore *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Manage the shopping list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the shopping list",
		RunE: func(cmd *cobra.Command, args []string) error {
			done := color.New(color.FgGreen)
			pending := color.New(color.FgYellow)
			for _, item := range recipeStore.ShoppingList() {
				line := fmt.Sprintf("[%d] %s %s %s (for %s)",
					item.ID, item.Quantity, item.Unit, item.Name, strings.Join(item.RecipeTitles, ", "))
				if item.Purchased {
					done.Println(line + " ✓")
				} else {
					pending.Println(line)
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <recipe-id>",
		Short: "Add a recipe's ingredients to the shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid recipe id %q", args[0])
			}
			for _, recipe := range recipeStore.Recipes() {
				if recipe.ID == id {
					return recipeStore.AddRecipeToShopping(cmd.Context(), recipe)
				}
			}
			return fmt.Errorf("no recipe with id %d", id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "purchase <item-id>",
		Short: "Mark a shopping entry as purchased",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			return recipeStore.PurchaseShoppingItem(cmd.Context(), id, true)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear the shopping list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return recipeStore.ResetShoppingList(cmd.Context())
		},
	})

	return cmd
}

func newScalePersonsCommand(recipeStore *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "scale-persons <count>",
		Short: "Rescale every recipe to a new default serving count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			persons, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid serving count %q", args[0])
			}
			return recipeStore.ScaleAllRecipesForNewPersons(cmd.Context(), persons)
		},
	}
}

func newResetCommand(recipeStore *store.Store) *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to wipe the database without --yes")
			}
			return recipeStore.Reset(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm wiping all data")
	return cmd
}

func readRecipeFile(path string) (models.Recipe, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("reading recipe file: %w", err)
	}
	var recipe models.Recipe
	if err := json.Unmarshal(content, &recipe); err != nil {
		return models.Recipe{}, fmt.Errorf("parsing recipe file: %w", err)
	}
	return recipe, nil
}
