package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/chefood/backend/internal/domain"
)

const (
	initialIngredientFields = 5
	noSelection             = -1
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Enter your ingredients in a form",
	Long: "Prompts for up to five ingredients, lets you add more fields one at a time, " +
		"then shows the recipes you can make. Pick a recipe to see its preparation, " +
		"and search again as often as you like.",
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	interactiveCmd.Flags().StringVarP(&flagMode, "mode", "m", "", "matching mode: batch or best (default: from config)")
	interactiveCmd.Flags().BoolVarP(&flagSort, "sort", "s", false, "order batch results by missing ingredients, fewest first")

	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfgFile)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.session(cmd.Context(), cmd.OutOrStdout(), formPrompter{}, queryOptions{
		mode: flagMode,
		sort: flagSort,
	})
}

// prompter collects the user's choices during an interactive session.
type prompter interface {
	// Ingredients returns the raw ingredient entries for one search.
	Ingredients() ([]string, error)
	// ChooseRecipe returns the index of the result to show in detail, or noSelection.
	ChooseRecipe(results []domain.MatchResult) (int, error)
	// SearchAgain reports whether the user wants another search.
	SearchAgain() (bool, error)
}

// session runs searches against one app until the user stops. Repeated searches
// share the app's result cache.
func (a *app) session(ctx context.Context, w io.Writer, p prompter, opts queryOptions) error {
	for {
		ingredients, err := p.Ingredients()
		if err != nil {
			return err
		}

		mode, results, err := a.recommend(ctx, ingredients, opts)
		if err != nil {
			return err
		}

		fmt.Fprintln(w)
		printResults(w, results, mode)

		if mode == domain.ModeBatch && len(results) > 0 {
			idx, err := p.ChooseRecipe(results)
			if err != nil {
				return err
			}
			if idx >= 0 && idx < len(results) {
				fmt.Fprintln(w)
				printDetail(w, results[idx])
			}
		}

		again, err := p.SearchAgain()
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// formPrompter asks through huh forms.
type formPrompter struct{}

// Ingredients shows the initial fields, then keeps offering one more field until
// the user declines.
func (formPrompter) Ingredients() ([]string, error) {
	values := make([]string, initialIngredientFields)

	fields := make([]huh.Field, 0, initialIngredientFields)
	for i := range values {
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("Ingredient %d", i+1)).
			Placeholder("e.g. tomate").
			Value(&values[i]))
	}

	form := huh.NewForm(huh.NewGroup(fields...).
		Title("What do you have in your kitchen?").
		Description("Leave a field empty to skip it."))
	if err := form.Run(); err != nil {
		return nil, cancelled(err)
	}

	for {
		more, err := confirm("Add another ingredient?")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}

		var extra string
		input := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Ingredient %d", len(values)+1)).
				Value(&extra),
		))
		if err := input.Run(); err != nil {
			return nil, cancelled(err)
		}
		values = append(values, extra)
	}

	return values, nil
}

func (formPrompter) ChooseRecipe(results []domain.MatchResult) (int, error) {
	options := make([]huh.Option[int], 0, len(results)+1)
	for i, r := range results {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (missing: %s)", r.Recipe.Name, missingText(r.Missing)), i))
	}
	options = append(options, huh.NewOption("Back", noSelection))

	choice := noSelection
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("See a recipe's preparation").
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return noSelection, cancelled(err)
	}
	return choice, nil
}

func (formPrompter) SearchAgain() (bool, error) {
	return confirm("Search again?")
}

func confirm(title string) (bool, error) {
	var yes bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&yes),
	))
	if err := form.Run(); err != nil {
		return false, cancelled(err)
	}
	return yes, nil
}

func cancelled(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("cancelled")
	}
	return err
}
