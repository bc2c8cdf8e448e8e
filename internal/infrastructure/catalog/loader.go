package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/chefood/backend/internal/domain"
)

//go:embed data/recetas.json
var embeddedCatalog []byte

// Format is the encoding of a catalog document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder by file extension; anything that is not YAML is read as JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads the catalog once at startup. An empty path selects the embedded document.
// A missing or malformed source is logged and yields an empty catalog: queries then
// report "no recipes found" instead of the process failing.
func Load(path string, log zerolog.Logger) *Catalog {
	source := path
	data := embeddedCatalog
	format := FormatJSON

	if path == "" {
		source = SourceEmbedded
	} else {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Error().
				Err(fmt.Errorf("%w: read %s: %v", domain.ErrCatalogLoad, path, err)).
				Msg("using empty catalog")
			return Empty(source)
		}
		data = raw
		format = FormatFromPath(path)
	}

	recipes, skipped, err := Parse(data, format)
	if err != nil {
		log.Error().
			Err(fmt.Errorf("%w: parse %s: %v", domain.ErrCatalogLoad, source, err)).
			Msg("using empty catalog")
		return Empty(source)
	}

	if skipped > 0 {
		log.Warn().Str("source", source).Int("skipped", skipped).Msg("skipped recipes without a name")
	}
	log.Info().Str("source", source).Int("recipes", len(recipes)).Msg("catalog loaded")

	return newCatalog(recipes, source)
}

// Parse decodes a catalog document. The document is either a list of recipe records or
// a mapping with a "recipes" (or "recetas") list. Records without a name are skipped and
// counted.
func Parse(data []byte, format Format) ([]domain.Recipe, int, error) {
	var (
		records []record
		err     error
	)
	switch format {
	case FormatYAML:
		records, err = decodeYAML(data)
	default:
		records, err = decodeJSON(data)
	}
	if err != nil {
		return nil, 0, err
	}

	recipes := make([]domain.Recipe, 0, len(records))
	skipped := 0
	for _, rec := range records {
		recipe, ok := rec.toRecipe()
		if !ok {
			skipped++
			continue
		}
		recipes = append(recipes, recipe)
	}
	return recipes, skipped, nil
}

func decodeJSON(data []byte) ([]record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if trimmed[0] == '[' {
		var records []record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.records()
}

func decodeYAML(data []byte) ([]record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err == nil {
		if records, err := doc.records(); err == nil {
			return records, nil
		}
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// document is the mapping form of a catalog
type document struct {
	Recipes []record `json:"recipes" yaml:"recipes"`
	Recetas []record `json:"recetas" yaml:"recetas"`
}

func (d document) records() ([]record, error) {
	if d.Recipes == nil && d.Recetas == nil {
		return nil, fmt.Errorf("document has no recipes list")
	}
	return append(d.Recipes, d.Recetas...), nil
}
