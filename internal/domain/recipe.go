// Package domain defines the core types shared by the matcher, the catalog and its callers.
package domain

// Recipe is an immutable catalog entry
type Recipe struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Image       *string  `json:"image,omitempty"` // nil when the recipe has no image
}

// HasImage reports whether the recipe carries a non-empty image reference
func (r Recipe) HasImage() bool {
	return r.Image != nil && *r.Image != ""
}

// Clone returns a deep copy of the recipe so callers never share slices with the catalog
func (r Recipe) Clone() Recipe {
	out := Recipe{
		Name:        r.Name,
		Ingredients: cloneStrings(r.Ingredients),
		Steps:       cloneStrings(r.Steps),
	}
	if r.Image != nil {
		img := *r.Image
		out.Image = &img
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
