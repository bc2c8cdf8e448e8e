// Package catalog holds the read-only recipe snapshot the matcher queries.
package catalog

import "github.com/chefood/backend/internal/domain"

// SourceEmbedded names the catalog decoded from the binary's built-in document
const SourceEmbedded = "embedded"

// Compile-time interface check.
var _ domain.CatalogReader = (*Catalog)(nil)

// Catalog is an immutable recipe collection. It is built once at startup and has no
// mutation API, so any number of goroutines may read it without coordination.
type Catalog struct {
	recipes []domain.Recipe
	source  string
}

// New builds a catalog from an in-process table. The input is copied.
func New(recipes []domain.Recipe) *Catalog {
	return newCatalog(recipes, "memory")
}

// Empty returns the catalog used when the source could not be loaded
func Empty(source string) *Catalog {
	return &Catalog{recipes: []domain.Recipe{}, source: source}
}

func newCatalog(recipes []domain.Recipe, source string) *Catalog {
	owned := make([]domain.Recipe, len(recipes))
	for i, r := range recipes {
		owned[i] = r.Clone()
	}
	return &Catalog{recipes: owned, source: source}
}

// Recipes returns a deep copy of the recipes in catalog order
func (c *Catalog) Recipes() []domain.Recipe {
	out := make([]domain.Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of recipes
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Source returns where the catalog came from: a file path, "embedded" or "memory"
func (c *Catalog) Source() string {
	return c.source
}
