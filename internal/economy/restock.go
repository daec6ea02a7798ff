package economy

import (
	"time"

	"github.com/willowbyte/gardenbloom/internal/domain"
)

// MaybeRestock restocks the shop if the restock interval elapsed. Returns
// true when a restock pass ran. Rare and legendary entries restock behind
// independent random rolls; when they do hit, they receive a boosted
// amount (3x / 5x), clamped to max stock.
func (s *Service) MaybeRestock(g *domain.GardenState, now time.Time) bool {
	if now.Sub(g.LastRestockAt) < s.restockInterval {
		return false
	}
	s.Restock(g, now)
	return true
}

// Restock runs one unconditional restock pass over every catalog entry.
func (s *Service) Restock(g *domain.GardenState, now time.Time) {
	for _, p := range s.cat.Plants() {
		entry, ok := g.Shop[p.Name]
		if !ok {
			// Catalog entry added after this save was created.
			entry = &domain.ShopEntry{MaxStock: p.MaxStock, RestockAmount: p.RestockAmount}
			g.Shop[p.Name] = entry
		}
		if entry.Stock >= entry.MaxStock {
			continue
		}

		amount := entry.RestockAmount
		switch p.Rarity {
		case domain.RarityRare:
			if s.rng.Float64() >= domain.RareRestockChance {
				continue
			}
			amount *= domain.RareRestockBoost
		case domain.RarityLegendary:
			if s.rng.Float64() >= domain.LegendaryRestockChance {
				continue
			}
			amount *= domain.LegendaryRestockBoost
		}

		entry.Stock += amount
		if entry.Stock > entry.MaxStock {
			entry.Stock = entry.MaxStock
		}
	}
	g.LastRestockAt = now
	g.UpdatedAt = now
}
