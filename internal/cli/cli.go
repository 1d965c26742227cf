// Package cli wires the store into a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/config"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/images"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/store"
)

// Execute builds the command tree around an initialized store and runs it.
func Execute(recipeStore *store.Store, imageProvider *images.Provider, cfg config.Config) error {
	rootCmd := &cobra.Command{
		Use:          "recipedia",
		Short:        "Recipedia - local recipe collection and shopping list",
		Long:         "Recipedia keeps a local collection of recipes with ingredients, tags\nand preparation steps, and derives a shopping list from the recipes you pick.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(recipeStore, cfg),
		newListCommand(recipeStore),
		newAddRecipeCommand(recipeStore, imageProvider),
		newImportCommand(recipeStore),
		newShoppingCommand(recipeStore),
		newScalePersonsCommand(recipeStore),
		newResetCommand(recipeStore),
	)

	return rootCmd.Execute()
}
