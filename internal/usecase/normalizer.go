package usecase

import (
	"sort"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes, drops combining marks and recomposes.
// transform.Chain keeps state, so each call builds its own chain.
func stripAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// letters without a canonical decomposition
var foldReplacer = strings.NewReplacer(
	"ø", "o",
	"æ", "ae",
	"œ", "oe",
	"ß", "ss",
	"đ", "d",
	"ł", "l",
)

// Normalize canonicalizes an ingredient name for comparison: lowercase, accent-stripped,
// trimmed, with internal whitespace collapsed. "  Limón " becomes "limon".
// Whitespace-only input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToLower(text)
	if stripped, _, err := transform.String(stripAccents(), s); err == nil {
		s = stripped
	}
	// after stripping, since "ǿ" decomposes to "ø" plus a mark
	s = foldReplacer.Replace(s)

	// Trim last: a leading combining mark must not shield whitespace.
	return strings.Join(strings.Fields(s), " ")
}

// IngredientSet is a set of normalized ingredient names that remembers first-seen order
type IngredientSet struct {
	order []string
	index map[string]struct{}
}

// NormalizeSet normalizes every item, drops empties and deduplicates.
func NormalizeSet(items []string) IngredientSet {
	set := IngredientSet{
		order: make([]string, 0, len(items)),
		index: make(map[string]struct{}, len(items)),
	}
	for _, item := range items {
		n := Normalize(item)
		if n == "" {
			continue
		}
		if _, seen := set.index[n]; seen {
			continue
		}
		set.index[n] = struct{}{}
		set.order = append(set.order, n)
	}
	return set
}

// Has reports whether the normalized name is in the set
func (s IngredientSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of distinct names
func (s IngredientSet) Len() int {
	return len(s.order)
}

// Items returns the names in first-seen order
func (s IngredientSet) Items() []string {
	return append([]string(nil), s.order...)
}

// Minus returns the names of s absent from other, preserving s's order.
// The result is never nil.
func (s IngredientSet) Minus(other IngredientSet) []string {
	out := make([]string, 0)
	for _, name := range s.order {
		if !other.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// Key returns a canonical, order-independent representation used for cache keys.
// Names are JSON-encoded so that a name containing a separator cannot collide with
// two shorter names.
func (s IngredientSet) Key() string {
	sorted := make([]string, len(s.order))
	copy(sorted, s.order)
	sort.Strings(sorted)

	// Marshal cannot fail for a []string.
	data, _ := json.Marshal(sorted)
	return string(data)
}
