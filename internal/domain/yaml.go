package domain

import (
	"time"

	"gopkg.in/yaml.v3"
)

// flexDuration accepts either a Go duration string ("90s") or raw
// nanoseconds when decoding catalog YAML.
type flexDuration time.Duration

func (d *flexDuration) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!str" {
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return err
		}
		*d = flexDuration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = flexDuration(n)
	return nil
}

// UnmarshalYAML decodes a plant entry, accepting duration strings for
// growth_duration.
func (p *PlantType) UnmarshalYAML(value *yaml.Node) error {
	var aux struct {
		Name             string       `yaml:"name"`
		Cost             int          `yaml:"cost"`
		GrowthDuration   flexDuration `yaml:"growth_duration"`
		BaseValue        int          `yaml:"base_value"`
		Season           Season       `yaml:"season"`
		Rarity           Rarity       `yaml:"rarity"`
		GrowthMultiplier float64      `yaml:"growth_multiplier"`
		MaxStock         int          `yaml:"max_stock"`
		RestockAmount    int          `yaml:"restock_amount"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*p = PlantType{
		Name:             aux.Name,
		Cost:             aux.Cost,
		GrowthDuration:   time.Duration(aux.GrowthDuration),
		BaseValue:        aux.BaseValue,
		Season:           aux.Season,
		Rarity:           aux.Rarity,
		GrowthMultiplier: aux.GrowthMultiplier,
		MaxStock:         aux.MaxStock,
		RestockAmount:    aux.RestockAmount,
	}
	return nil
}

// UnmarshalYAML decodes a sprinkler entry, accepting duration strings.
func (s *SprinklerType) UnmarshalYAML(value *yaml.Node) error {
	var aux struct {
		Name        string       `yaml:"name"`
		Cost        int          `yaml:"cost"`
		Radius      int          `yaml:"radius"`
		GrowthBonus float64      `yaml:"growth_bonus"`
		Efficiency  float64      `yaml:"efficiency"`
		Duration    flexDuration `yaml:"duration"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*s = SprinklerType{
		Name:        aux.Name,
		Cost:        aux.Cost,
		Radius:      aux.Radius,
		GrowthBonus: aux.GrowthBonus,
		Efficiency:  aux.Efficiency,
		Duration:    time.Duration(aux.Duration),
	}
	return nil
}
