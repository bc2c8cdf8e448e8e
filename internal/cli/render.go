package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/chefood/backend/internal/domain"
)

const noImageText = "No image available for this recipe"

var (
	bold    = color.New(color.Bold)
	green   = color.New(color.FgGreen)
	red     = color.New(color.FgRed)
	faint   = color.New(color.Faint)
	heading = color.New(color.FgCyan, color.Bold)
)

// missingText renders the missing list the way the results screen shows it.
func missingText(missing []string) string {
	if len(missing) == 0 {
		return "none"
	}
	return strings.Join(missing, ", ")
}

// resultColor is green for a recipe that can be cooked as is and red otherwise.
func resultColor(r domain.MatchResult) *color.Color {
	if r.IsExact() {
		return green
	}
	return red
}

// printBatch prints every candidate recipe with its missing ingredients.
func printBatch(w io.Writer, results []domain.MatchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No recipes can be made with those ingredients.")
		return
	}

	heading.Fprintf(w, "%d recipe(s) found\n", len(results))
	for _, r := range results {
		fmt.Fprintln(w)
		bold.Fprintln(w, r.Recipe.Name)
		fmt.Fprintf(w, "  Ingredients: %s\n", strings.Join(r.Recipe.Ingredients, ", "))
		resultColor(r).Fprintf(w, "  Missing: %s\n", missingText(r.Missing))
	}
}

// printDetail prints one recipe in full: ingredients, missing list, preparation
// (or the placeholder when withheld) and image.
func printDetail(w io.Writer, r domain.MatchResult) {
	if !r.Found() {
		red.Fprintln(w, r.Recipe.Name)
		return
	}

	bold.Fprintln(w, r.Recipe.Name)
	faint.Fprintf(w, "  match: %s\n", r.Tier)

	fmt.Fprintln(w, "  Ingredients:")
	for _, ing := range r.Recipe.Ingredients {
		fmt.Fprintf(w, "    - %s\n", ing)
	}
	resultColor(r).Fprintf(w, "  Missing ingredients: %s\n", missingText(r.Missing))

	fmt.Fprintln(w, "  Preparation:")
	for i, step := range r.Recipe.Steps {
		if r.StepsWithheld {
			faint.Fprintf(w, "    %s\n", step)
			continue
		}
		fmt.Fprintf(w, "    %d. %s\n", i+1, step)
	}

	if r.Recipe.HasImage() {
		fmt.Fprintf(w, "  Image: %s\n", *r.Recipe.Image)
	} else {
		faint.Fprintf(w, "  %s\n", noImageText)
	}
}

// printResults dispatches on mode.
func printResults(w io.Writer, results []domain.MatchResult, mode domain.Mode) {
	if mode == domain.ModeBest && len(results) > 0 {
		printDetail(w, results[0])
		return
	}
	printBatch(w, results)
}

// printRecipes lists the catalog.
func printRecipes(w io.Writer, recipes []domain.Recipe, source string) {
	heading.Fprintf(w, "%d recipe(s) in %s catalog\n", len(recipes), source)
	for _, r := range recipes {
		image := "no"
		if r.HasImage() {
			image = "yes"
		}
		fmt.Fprintf(w, "  %-28s %2d ingredients  image: %s\n", r.Name, len(r.Ingredients), image)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
