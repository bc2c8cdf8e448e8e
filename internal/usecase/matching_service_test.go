package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/chefood/backend/internal/domain"
	"github.com/chefood/backend/internal/logging"
)

func strPtr(s string) *string { return &s }

var ensalada = domain.Recipe{
	Name:        "Ensalada fresca",
	Ingredients: []string{"lechuga", "tomate", "pepino", "aceite", "limon"},
	Steps:       []string{"Lavar y cortar las verduras.", "Aliñar con aceite y limón."},
	Image:       strPtr("https://example.com/ensalada.jpg"),
}

func testCatalog() []domain.Recipe {
	return []domain.Recipe{
		{
			Name:        "Tortilla de papas",
			Ingredients: []string{"Huevo", "Papa", "Cebolla", "Aceite", "Sal"},
			Steps:       []string{"Freír las papas.", "Batir los huevos y mezclar."},
		},
		{
			Name:        "Huevo frito",
			Ingredients: []string{"huevo", "aceite"},
			Steps:       []string{"Calentar el aceite y freír el huevo."},
		},
		ensalada,
		{
			Name:        "Agua de limón",
			Ingredients: []string{"Limón", "agua", "azúcar"},
			Steps:       []string{"Exprimir los limones y mezclar."},
		},
	}
}

func newTestMatcher() *MatchingService {
	return NewMatchingService(MatchConfig{}, logging.Nop())
}

func names(results []domain.MatchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Recipe.Name)
	}
	return out
}

func TestNewMatchingService(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		want      float64
	}{
		{"uses provided threshold", 0.9, 0.9},
		{"accepts threshold of one", 1, 1},
		{"uses default threshold when zero", 0, 0.8},
		{"uses default threshold when negative", -0.5, 0.8},
		{"uses default threshold when above one", 1.5, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMatchingService(MatchConfig{FuzzyThreshold: tt.threshold}, logging.Nop())
			if svc.fuzzyThreshold != tt.want {
				t.Errorf("fuzzyThreshold = %v, want %v", svc.fuzzyThreshold, tt.want)
			}
		})
	}
}

func TestMatchBatch(t *testing.T) {
	svc := newTestMatcher()

	t.Run("includes recipes missing up to two ingredients in catalog order", func(t *testing.T) {
		results := svc.MatchBatch([]string{"huevo", "aceite", "Papa"}, testCatalog())

		want := []string{"Tortilla de papas", "Huevo frito"}
		if got := names(results); !reflect.DeepEqual(got, want) {
			t.Fatalf("recipes = %v, want %v", got, want)
		}
		if results[0].Tier != domain.TierNear {
			t.Errorf("tortilla tier = %v, want near", results[0].Tier)
		}
		if !reflect.DeepEqual(results[0].Missing, []string{"cebolla", "sal"}) {
			t.Errorf("tortilla missing = %v, want [cebolla sal]", results[0].Missing)
		}
		if results[1].Tier != domain.TierExact || len(results[1].Missing) != 0 {
			t.Errorf("huevo frito = %v %v, want exact with nothing missing", results[1].Tier, results[1].Missing)
		}
	})

	t.Run("excludes a recipe missing exactly three", func(t *testing.T) {
		results := svc.MatchBatch([]string{"lechuga", "tomate"}, []domain.Recipe{ensalada})
		if len(results) != 0 {
			t.Errorf("got %v, want no results", names(results))
		}
	})

	t.Run("includes a recipe missing exactly two", func(t *testing.T) {
		results := svc.MatchBatch([]string{"lechuga", "tomate", "pepino"}, []domain.Recipe{ensalada})
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if !reflect.DeepEqual(results[0].Missing, []string{"aceite", "limon"}) {
			t.Errorf("missing = %v, want [aceite limon]", results[0].Missing)
		}
		if results[0].StepsWithheld {
			t.Error("batch mode never withholds steps")
		}
	})

	t.Run("empty input returns recipes with at most two ingredients", func(t *testing.T) {
		results := svc.MatchBatch(nil, testCatalog())
		if got := names(results); !reflect.DeepEqual(got, []string{"Huevo frito"}) {
			t.Errorf("recipes = %v, want [Huevo frito]", got)
		}
		if !reflect.DeepEqual(results[0].Missing, []string{"huevo", "aceite"}) {
			t.Errorf("missing = %v, want every ingredient", results[0].Missing)
		}
	})

	t.Run("blank entries are ignored", func(t *testing.T) {
		results := svc.MatchBatch([]string{"", "  ", "\t"}, testCatalog())
		if len(results) != 1 {
			t.Errorf("got %v, want only Huevo frito", names(results))
		}
	})

	t.Run("accents and case do not matter", func(t *testing.T) {
		results := svc.MatchBatch([]string{"LIMON", "Agua", "azucar"}, testCatalog())
		found := false
		for _, r := range results {
			if r.Recipe.Name == "Agua de limón" {
				found = true
				if r.Tier != domain.TierExact {
					t.Errorf("tier = %v, want exact", r.Tier)
				}
			}
		}
		if !found {
			t.Errorf("Agua de limón not matched, got %v", names(results))
		}
	})

	t.Run("duplicate recipe ingredients count once", func(t *testing.T) {
		recipe := domain.Recipe{Name: "Doble", Ingredients: []string{"ajo", "Ajo", "ajo ", "sal", "pan"}}
		results := svc.MatchBatch([]string{"pan"}, []domain.Recipe{recipe})
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if !reflect.DeepEqual(results[0].Missing, []string{"ajo", "sal"}) {
			t.Errorf("missing = %v, want [ajo sal]", results[0].Missing)
		}
	})

	t.Run("empty catalog yields an empty non-nil slice", func(t *testing.T) {
		results := svc.MatchBatch([]string{"huevo"}, nil)
		if results == nil || len(results) != 0 {
			t.Errorf("results = %#v, want empty slice", results)
		}
	})
}

func TestMatchBatch_MissingInvariant(t *testing.T) {
	svc := newTestMatcher()
	inputs := [][]string{
		nil,
		{"huevo"},
		{"Huevo", "PAPA", "cebolla"},
		{"lechuga", "tomate", "pepino", "aceite", "limón"},
		{"agua", "sal", "aceite"},
	}

	for _, user := range inputs {
		userSet := NormalizeSet(user)
		for _, r := range svc.MatchBatch(user, testCatalog()) {
			recipeSet := NormalizeSet(r.Recipe.Ingredients)
			want := recipeSet.Minus(userSet)
			if !reflect.DeepEqual(r.Missing, want) {
				t.Errorf("%s missing = %v, want %v", r.Recipe.Name, r.Missing, want)
			}
			for _, m := range r.Missing {
				if !recipeSet.Has(m) {
					t.Errorf("%s: %q is missing but not a recipe ingredient", r.Recipe.Name, m)
				}
				if userSet.Has(m) {
					t.Errorf("%s: %q is missing but the user has it", r.Recipe.Name, m)
				}
			}
		}
	}
}

func TestMatchBest(t *testing.T) {
	svc := newTestMatcher()
	catalog := []domain.Recipe{ensalada}

	t.Run("exact match", func(t *testing.T) {
		result := svc.MatchBest([]string{"lechuga", "tomate", "pepino", "aceite", "limon"}, catalog)
		if result.Tier != domain.TierExact {
			t.Fatalf("tier = %v, want exact", result.Tier)
		}
		if len(result.Missing) != 0 {
			t.Errorf("missing = %v, want none", result.Missing)
		}
		if !reflect.DeepEqual(result.Recipe.Steps, ensalada.Steps) {
			t.Errorf("steps = %v, want the recipe's steps", result.Recipe.Steps)
		}
		if result.StepsWithheld {
			t.Error("exact match must not withhold steps")
		}
	})

	t.Run("near match withholds preparation", func(t *testing.T) {
		result := svc.MatchBest([]string{"lechuga", "tomate", "pepino", "aceite"}, catalog)
		if result.Tier != domain.TierNear {
			t.Fatalf("tier = %v, want near", result.Tier)
		}
		if !reflect.DeepEqual(result.Missing, []string{"limon"}) {
			t.Errorf("missing = %v, want [limon]", result.Missing)
		}
		if !result.StepsWithheld {
			t.Error("StepsWithheld = false, want true")
		}
		if !reflect.DeepEqual(result.Recipe.Steps, []string{WithheldStepsMessage}) {
			t.Errorf("steps = %v, want placeholder", result.Recipe.Steps)
		}
		if result.Recipe.Name != "Ensalada fresca" || !result.Recipe.HasImage() {
			t.Errorf("display fields not preserved: %+v", result.Recipe)
		}
	})

	t.Run("two missing without fuzzy candidates falls through to sentinel", func(t *testing.T) {
		result := svc.MatchBest([]string{"lechuga", "tomate", "pepino"}, catalog)
		if result.Tier != domain.TierNone {
			t.Fatalf("tier = %v, want none", result.Tier)
		}
		if result.Found() {
			t.Error("Found() = true for sentinel")
		}
		if result.Recipe.Name != NoResultMessage {
			t.Errorf("name = %q, want explanatory message", result.Recipe.Name)
		}
		if result.Recipe.Ingredients == nil || len(result.Recipe.Ingredients) != 0 {
			t.Errorf("ingredients = %#v, want empty", result.Recipe.Ingredients)
		}
		if result.Recipe.Steps == nil || len(result.Recipe.Steps) != 0 {
			t.Errorf("steps = %#v, want empty", result.Recipe.Steps)
		}
	})

	t.Run("misspelled ingredients match approximately", func(t *testing.T) {
		result := svc.MatchBest([]string{"lechuga", "tomat", "pepin", "aceite", "limon"}, catalog)
		if result.Tier != domain.TierFuzzy {
			t.Fatalf("tier = %v, want fuzzy", result.Tier)
		}
		if len(result.Missing) != 0 {
			t.Errorf("missing = %v, want none", result.Missing)
		}
		if result.StepsWithheld {
			t.Error("fuzzy match with every ingredient must not withhold steps")
		}
	})

	t.Run("fuzzy tolerates one absent ingredient", func(t *testing.T) {
		result := svc.MatchBest([]string{"lechuga", "tomat", "pepino", "aceite"}, catalog)
		if result.Tier != domain.TierFuzzy {
			t.Fatalf("tier = %v, want fuzzy", result.Tier)
		}
		if !reflect.DeepEqual(result.Missing, []string{"limon"}) {
			t.Errorf("missing = %v, want [limon]", result.Missing)
		}
		if !result.StepsWithheld {
			t.Error("StepsWithheld = false, want true")
		}
	})

	t.Run("empty input falls back to near tier", func(t *testing.T) {
		single := domain.Recipe{Name: "Pan", Ingredients: []string{"pan"}}
		result := svc.MatchBest(nil, []domain.Recipe{ensalada, single})
		if result.Tier != domain.TierNear || result.Recipe.Name != "Pan" {
			t.Errorf("got %q (%v), want Pan (near)", result.Recipe.Name, result.Tier)
		}
	})

	t.Run("empty catalog returns sentinel", func(t *testing.T) {
		result := svc.MatchBest([]string{"tomate"}, nil)
		if result.Tier != domain.TierNone {
			t.Errorf("tier = %v, want none", result.Tier)
		}
	})
}

func TestMatchBest_ShortCircuit(t *testing.T) {
	svc := newTestMatcher()
	user := []string{"huevo", "aceite", "papa", "cebolla"}

	// Tortilla is first and near (missing sal); Huevo frito comes later but is exact.
	result := svc.MatchBest(user, testCatalog())
	if result.Tier != domain.TierExact {
		t.Fatalf("tier = %v, want exact", result.Tier)
	}
	if result.Recipe.Name != "Huevo frito" {
		t.Errorf("recipe = %q, want Huevo frito", result.Recipe.Name)
	}

	// First exact hit wins even when a later recipe is also exact.
	dup := domain.Recipe{Name: "Huevo frito 2", Ingredients: []string{"huevo"}}
	result = svc.MatchBest(user, append(testCatalog(), dup))
	if result.Recipe.Name != "Huevo frito" {
		t.Errorf("recipe = %q, want first exact hit", result.Recipe.Name)
	}
}

func TestMatch(t *testing.T) {
	svc := newTestMatcher()

	t.Run("batch mode", func(t *testing.T) {
		results, err := svc.Match([]string{"huevo", "aceite"}, testCatalog(), domain.ModeBatch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].Recipe.Name != "Huevo frito" {
			t.Errorf("results = %v, want [Huevo frito]", names(results))
		}
	})

	t.Run("best mode returns exactly one result", func(t *testing.T) {
		results, err := svc.Match(nil, nil, domain.ModeBest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].Tier != domain.TierNone {
			t.Errorf("results = %+v, want single sentinel", results)
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := svc.Match(nil, testCatalog(), domain.Mode("random"))
		if !errors.Is(err, domain.ErrInvalidMode) {
			t.Errorf("error = %v, want ErrInvalidMode", err)
		}
	})
}

func TestMatch_ResultsAreOwnedByCaller(t *testing.T) {
	svc := newTestMatcher()
	catalog := testCatalog()

	results := svc.MatchBatch([]string{"huevo", "aceite"}, catalog)
	results[0].Recipe.Ingredients[0] = "changed"
	results[0].Recipe.Steps[0] = "changed"

	if catalog[1].Ingredients[0] != "huevo" || catalog[1].Steps[0] == "changed" {
		t.Error("mutating a result changed the catalog recipe")
	}

	best := svc.MatchBest([]string{"lechuga", "tomate", "pepino", "aceite", "limon"}, catalog)
	*best.Recipe.Image = "changed"
	if *catalog[2].Image == "changed" {
		t.Error("mutating the result image changed the catalog recipe")
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b    string
		atLeast float64
		below   float64
	}{
		{"tomate", "tomate", 1, 1.01},
		{"tomat", "tomate", 0.8, 0.9},
		{"pepin", "pepino", 0.8, 0.9},
		{"limon", "lemon", 0.79, 0.81},
		{"aceite", "pepino", 0, 0.5},
		{"", "", 1, 1.01},
		{"", "sal", 0, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got < tt.atLeast || got >= tt.below {
				t.Errorf("Similarity(%q, %q) = %v, want in [%v, %v)", tt.a, tt.b, got, tt.atLeast, tt.below)
			}
			if rev := Similarity(tt.b, tt.a); rev != got {
				t.Errorf("Similarity is not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestSortByMissing(t *testing.T) {
	results := []domain.MatchResult{
		{Recipe: domain.Recipe{Name: "a"}, Missing: []string{"x", "y"}},
		{Recipe: domain.Recipe{Name: "b"}, Missing: []string{}},
		{Recipe: domain.Recipe{Name: "c"}, Missing: []string{"x"}},
		{Recipe: domain.Recipe{Name: "d"}, Missing: []string{}},
	}

	SortByMissing(results)

	want := []string{"b", "d", "c", "a"}
	if got := names(results); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}
