package cli

import (
	"github.com/spf13/cobra"
)

var flagRecipesJSON bool

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the recipes in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runRecipes,
}

func init() {
	recipesCmd.Flags().BoolVar(&flagRecipesJSON, "json", false, "print the catalog as JSON")

	rootCmd.AddCommand(recipesCmd)
}

func runRecipes(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfgFile)
	if err != nil {
		return err
	}
	defer a.Close()

	recipes := a.catalog.Recipes()
	if flagRecipesJSON {
		return writeJSON(cmd.OutOrStdout(), recipes)
	}
	printRecipes(cmd.OutOrStdout(), recipes, a.catalog.Source())
	return nil
}
