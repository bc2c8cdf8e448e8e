package catalog

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/chefood/backend/internal/domain"
)

// record is the on-disk shape of one recipe. English and Spanish keys are both accepted.
type record struct {
	Name         string   `json:"name" yaml:"name"`
	Nombre       string   `json:"nombre" yaml:"nombre"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Ingredientes []string `json:"ingredientes" yaml:"ingredientes"`
	Preparation  steps    `json:"preparation" yaml:"preparation"`
	Instructions steps    `json:"instructions" yaml:"instructions"`
	Preparacion  steps    `json:"preparacion" yaml:"preparacion"`
	Image        string   `json:"image" yaml:"image"`
	Imagen       string   `json:"imagen" yaml:"imagen"`
}

func (r record) toRecipe() (domain.Recipe, bool) {
	name := firstNonEmpty(r.Name, r.Nombre)
	if strings.TrimSpace(name) == "" {
		return domain.Recipe{}, false
	}

	ingredients := r.Ingredients
	if len(ingredients) == 0 {
		ingredients = r.Ingredientes
	}

	var prep steps
	for _, candidate := range []steps{r.Preparation, r.Instructions, r.Preparacion} {
		if len(candidate) > 0 {
			prep = candidate
			break
		}
	}

	recipe := domain.Recipe{
		Name:        name,
		Ingredients: append([]string{}, ingredients...),
		Steps:       append([]string{}, prep...),
	}
	if img := strings.TrimSpace(firstNonEmpty(r.Image, r.Imagen)); img != "" {
		recipe.Image = &img
	}
	return recipe, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// steps accepts either a single paragraph or a list of instructions
type steps []string

// UnmarshalJSON implements json.Unmarshaler
func (s *steps) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := stepsFromRaw(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler
func (s *steps) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := stepsFromRaw(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func stepsFromRaw(raw interface{}) (steps, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if text := strings.TrimSpace(v); text != "" {
			return steps{text}, nil
		}
		return nil, nil
	case []interface{}:
		out := make(steps, 0, len(v))
		for i, item := range v {
			text, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("preparation step %d is %T, want string", i+1, item)
			}
			if text = strings.TrimSpace(text); text != "" {
				out = append(out, text)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("preparation is %T, want string or list of strings", raw)
	}
}
