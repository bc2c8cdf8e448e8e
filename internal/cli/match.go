package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chefood/backend/internal/domain"
	"github.com/chefood/backend/internal/usecase"
)

var (
	flagMode string
	flagSort bool
	flagJSON bool
)

var matchCmd = &cobra.Command{
	Use:   "match [ingredients...]",
	Short: "Find recipes for a list of ingredients",
	Example: `  chefood match tomate lechuga pepino aceite
  chefood match "aceite de oliva" ajo --mode best`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&flagMode, "mode", "m", "", "matching mode: batch or best (default: from config)")
	matchCmd.Flags().BoolVarP(&flagSort, "sort", "s", false, "order batch results by missing ingredients, fewest first")
	matchCmd.Flags().BoolVar(&flagJSON, "json", false, "print results as JSON")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfgFile)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.query(cmd.Context(), cmd.OutOrStdout(), args, queryOptions{
		mode:   flagMode,
		sort:   flagSort,
		asJSON: flagJSON,
	})
}

type queryOptions struct {
	mode   string
	sort   bool
	asJSON bool
}

// recommend runs one query in the resolved mode, sorted on request.
func (a *app) recommend(ctx context.Context, ingredients []string, opts queryOptions) (domain.Mode, []domain.MatchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	mode, err := a.resolveMode(opts.mode)
	if err != nil {
		return "", nil, err
	}

	results, err := a.recommender.Recommend(ctx, ingredients, mode)
	if err != nil {
		return "", nil, fmt.Errorf("recommendation failed: %w", err)
	}

	if opts.sort {
		usecase.SortByMissing(results)
	}
	return mode, results, nil
}

// query runs one recommendation and renders it to w.
func (a *app) query(ctx context.Context, w io.Writer, ingredients []string, opts queryOptions) error {
	mode, results, err := a.recommend(ctx, ingredients, opts)
	if err != nil {
		return err
	}

	if opts.asJSON {
		return writeJSON(w, results)
	}
	printResults(w, results, mode)
	return nil
}
