package catalog

import (
	"errors"
	"fmt"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// Sentinel errors for catalog validation
var (
	ErrDuplicateName    = errors.New("duplicate catalog name")
	ErrInvalidConfig    = errors.New("invalid catalog configuration")
	ErrEntryNotFound    = errors.New("catalog entry not found")
	ErrMultiplierBounds = errors.New("growth multiplier out of bounds")
)

// Growth-speed multipliers are catalog-defined and bounded.
const (
	MinGrowthMultiplier = 0.5
	MaxGrowthMultiplier = 4.0
)

// Catalog holds the immutable plant/sprinkler/decoration tables. Built once
// at startup and shared read-only by every slot.
type Catalog struct {
	plants      map[string]domain.PlantType
	sprinklers  map[string]domain.SprinklerType
	decorations map[string]domain.DecorationType
	plantOrder  []string
}

// New builds a catalog from the given entries, validating them.
func New(plants []domain.PlantType, sprinklers []domain.SprinklerType, decorations []domain.DecorationType) (*Catalog, error) {
	c := &Catalog{
		plants:      make(map[string]domain.PlantType, len(plants)),
		sprinklers:  make(map[string]domain.SprinklerType, len(sprinklers)),
		decorations: make(map[string]domain.DecorationType, len(decorations)),
	}

	for _, p := range plants {
		if _, ok := c.plants[p.Name]; ok {
			return nil, fmt.Errorf("%w: plant %q", ErrDuplicateName, p.Name)
		}
		if err := validatePlant(p); err != nil {
			return nil, err
		}
		c.plants[p.Name] = p
		c.plantOrder = append(c.plantOrder, p.Name)
	}
	for _, s := range sprinklers {
		if _, ok := c.sprinklers[s.Name]; ok {
			return nil, fmt.Errorf("%w: sprinkler %q", ErrDuplicateName, s.Name)
		}
		if s.Radius < 1 || s.Duration <= 0 {
			return nil, fmt.Errorf("%w: sprinkler %q", ErrInvalidConfig, s.Name)
		}
		c.sprinklers[s.Name] = s
	}
	for _, d := range decorations {
		if _, ok := c.decorations[d.Name]; ok {
			return nil, fmt.Errorf("%w: decoration %q", ErrDuplicateName, d.Name)
		}
		c.decorations[d.Name] = d
	}
	return c, nil
}

func validatePlant(p domain.PlantType) error {
	if p.Name == "" || p.Cost < 0 || p.BaseValue < 0 {
		return fmt.Errorf("%w: plant %q", ErrInvalidConfig, p.Name)
	}
	if p.GrowthMultiplier < MinGrowthMultiplier || p.GrowthMultiplier > MaxGrowthMultiplier {
		return fmt.Errorf("%w: plant %q has multiplier %v", ErrMultiplierBounds, p.Name, p.GrowthMultiplier)
	}
	switch p.Season {
	case domain.SeasonSpring, domain.SeasonSummer, domain.SeasonFall, domain.SeasonWinter, domain.SeasonAll:
	default:
		return fmt.Errorf("%w: plant %q has season %q", ErrInvalidConfig, p.Name, p.Season)
	}
	switch p.Rarity {
	case domain.RarityCommon, domain.RarityRare, domain.RarityLegendary:
	default:
		return fmt.Errorf("%w: plant %q has rarity %q", ErrInvalidConfig, p.Name, p.Rarity)
	}
	return nil
}

// Plant returns the plant type by name.
func (c *Catalog) Plant(name string) (domain.PlantType, error) {
	p, ok := c.plants[name]
	if !ok {
		return domain.PlantType{}, fmt.Errorf("%w: plant %q", ErrEntryNotFound, name)
	}
	return p, nil
}

// Sprinkler returns the sprinkler type by name.
func (c *Catalog) Sprinkler(name string) (domain.SprinklerType, error) {
	s, ok := c.sprinklers[name]
	if !ok {
		return domain.SprinklerType{}, fmt.Errorf("%w: sprinkler %q", ErrEntryNotFound, name)
	}
	return s, nil
}

// Decoration returns the decoration type by name.
func (c *Catalog) Decoration(name string) (domain.DecorationType, error) {
	d, ok := c.decorations[name]
	if !ok {
		return domain.DecorationType{}, fmt.Errorf("%w: decoration %q", ErrEntryNotFound, name)
	}
	return d, nil
}

// PlantNames returns the plant names in catalog order.
func (c *Catalog) PlantNames() []string {
	out := make([]string, len(c.plantOrder))
	copy(out, c.plantOrder)
	return out
}

// Plants returns all plant types in catalog order.
func (c *Catalog) Plants() []domain.PlantType {
	out := make([]domain.PlantType, 0, len(c.plantOrder))
	for _, name := range c.plantOrder {
		out = append(out, c.plants[name])
	}
	return out
}

// Sprinklers returns all sprinkler types.
func (c *Catalog) Sprinklers() []domain.SprinklerType {
	out := make([]domain.SprinklerType, 0, len(c.sprinklers))
	for _, s := range c.sprinklers {
		out = append(out, s)
	}
	return out
}

// Decorations returns all decoration types.
func (c *Catalog) Decorations() []domain.DecorationType {
	out := make([]domain.DecorationType, 0, len(c.decorations))
	for _, d := range c.decorations {
		out = append(out, d)
	}
	return out
}
