package economy

import (
	"math/rand"
	"time"

	"github.com/willowbyte/gardenbloom/internal/catalog"
)

// Service owns the shop restock schedule, resource refills, and tool
// upgrades for a GardenState. State mutations happen in place; the caller
// serializes access.
type Service struct {
	cat             *catalog.Catalog
	rng             *rand.Rand
	restockInterval time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithRand injects a deterministic random source (tests).
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithRestockInterval overrides the default 5 minute restock cadence.
func WithRestockInterval(d time.Duration) Option {
	return func(s *Service) { s.restockInterval = d }
}

// NewService creates the economy service.
func NewService(cat *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		cat:             cat,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		restockInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
