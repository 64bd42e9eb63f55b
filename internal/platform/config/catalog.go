package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog lists the accepted values for the enumerated submission fields.
type Catalog struct {
	Version            int      `yaml:"version"`
	DietaryPreferences []string `yaml:"dietary_preferences"`
	HeardFrom          []string `yaml:"heard_from"`
}

// DefaultCatalog mirrors the options offered by the landing page form.
func DefaultCatalog() Catalog {
	return Catalog{
		Version: 1,
		DietaryPreferences: []string{
			"vegetarian",
			"non-vegetarian",
			"vegan",
			"gluten-free",
			"dairy-free",
			"no-preference",
		},
		HeardFrom: []string{
			"social-media",
			"friend-family",
			"google-search",
			"advertisement",
			"health-blog",
			"fitness-app",
			"word-of-mouth",
			"other",
		},
	}
}

func ParseCatalogYAML(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, err
	}
	if c.Version != 1 {
		return Catalog{}, errors.New("catalog: unsupported version")
	}
	if len(c.DietaryPreferences) == 0 {
		return Catalog{}, errors.New("catalog: missing dietary_preferences")
	}
	if len(c.HeardFrom) == 0 {
		return Catalog{}, errors.New("catalog: missing heard_from")
	}
	return c, nil
}

// LoadCatalog reads a YAML catalog from path; an empty path yields DefaultCatalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalogYAML(b)
}
