package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotOfDoesNotAliasGrid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g := &GardenState{
		SlotID:     1,
		GardenSize: 2,
		Grid:       make([][]Cell, 2),
	}
	for r := range g.Grid {
		g.Grid[r] = make([]Cell, 2)
	}
	g.Grid[0][0].Plant = &Plant{TypeName: "carrot", PlantedAt: now, GrowthStage: 1}
	g.Grid[1][1].Decoration = &Decoration{TypeName: "gnome", PlacedAt: now}

	snap := SnapshotOf(g, now)

	// Mutations after the snapshot was taken must not show through.
	g.Grid[0][0].Plant.GrowthStage = 4
	g.Grid[0][0].Plant.IsFullyGrown = true
	g.Grid[1][1].Decoration.TypeName = "fountain"
	g.Grid[0][1].Plant = &Plant{TypeName: "rose"}

	require.NotNil(t, snap.Grid[0][0].Plant)
	assert.Equal(t, 1, snap.Grid[0][0].Plant.GrowthStage)
	assert.False(t, snap.Grid[0][0].Plant.IsFullyGrown)
	assert.Equal(t, "gnome", snap.Grid[1][1].Decoration.TypeName)
	assert.Nil(t, snap.Grid[0][1].Plant)
	assert.Equal(t, now, snap.TakenAt)
}
