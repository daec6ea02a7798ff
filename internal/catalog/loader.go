package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Config is the YAML document describing catalog overrides. Sections left
// empty fall back to the built-in tables.
type Config struct {
	Version     string                  `yaml:"version"`
	Plants      []domain.PlantType      `yaml:"plants"`
	Sprinklers  []domain.SprinklerType  `yaml:"sprinklers"`
	Decorations []domain.DecorationType `yaml:"decorations"`
}

// LoadFile reads a catalog YAML file and builds a validated catalog.
// Missing sections fall back to defaults.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Load(data)
}

// Load parses catalog YAML and builds a validated catalog.
func Load(data []byte) (*Catalog, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config: %w", err)
	}

	plants := cfg.Plants
	if len(plants) == 0 {
		plants = DefaultPlants()
	}
	sprinklers := cfg.Sprinklers
	if len(sprinklers) == 0 {
		sprinklers = DefaultSprinklers()
	}
	decorations := cfg.Decorations
	if len(decorations) == 0 {
		decorations = DefaultDecorations()
	}

	return New(plants, sprinklers, decorations)
}
