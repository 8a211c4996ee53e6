package visibility

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/store"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(n int) *store.MapStore {
	s := store.NewMapStore()
	for x := 0; x < n; x++ {
		s.Set(vec.Vec3{X: x}, block.Stone)
	}
	return s
}

func TestSelect_FiltersByRadius(t *testing.T) {
	s := line(10)

	got := Selector{Radius: 3}.Select(s, mgl64.Vec3{0.5, 0.5, 0.5})
	require.Len(t, got, 4, "Центры ячеек 0..3 лежат в радиусе 3")
	for i, e := range got {
		assert.Equal(t, vec.Vec3{X: i}, e.Pos)
		assert.Equal(t, block.Stone, e.ID)
	}
}

func TestSelect_NonPositiveRadiusReturnsAll(t *testing.T) {
	s := line(5)
	assert.Len(t, Selector{}.Select(s, mgl64.Vec3{100, 100, 100}), 5)
	assert.Len(t, Selector{Radius: -1}.Select(s, mgl64.Vec3{}), 5)
}

func TestSelect_IsReadOnlyAndOrdered(t *testing.T) {
	s := store.NewMapStore()
	s.Set(vec.Vec3{X: 1, Y: 0, Z: 0}, block.Dirt)
	s.Set(vec.Vec3{X: 0, Y: 1, Z: 0}, block.Sand)
	s.Set(vec.Vec3{X: 0, Y: 0, Z: 1}, block.Water)
	before := store.Digest(s)

	got := Selector{Radius: 10}.Select(s, mgl64.Vec3{})
	require.Len(t, got, 3)
	assert.Equal(t, vec.Vec3{Z: 1}, got[0].Pos)
	assert.Equal(t, vec.Vec3{Y: 1}, got[1].Pos)
	assert.Equal(t, vec.Vec3{X: 1}, got[2].Pos)
	assert.Equal(t, before, store.Digest(s))
}

func TestSelect_EmptyStore(t *testing.T) {
	assert.Empty(t, Selector{Radius: 5}.Select(store.NewMapStore(), mgl64.Vec3{}))
}

func slab() *store.MapStore {
	s := store.NewMapStore()
	for x := 0; x < 10; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 10; z++ {
				s.Set(vec.Vec3{X: x, Y: y, Z: z}, block.Stone)
			}
		}
	}
	s.Set(vec.Vec3{X: 5, Y: 3, Z: 5}, block.Water)
	return s
}

func TestSelect_BoxScanMatchesFullScan(t *testing.T) {
	s := slab()
	for _, tt := range []struct {
		radius float64
		center mgl64.Vec3
	}{
		{1.5, mgl64.Vec3{5.5, 2.5, 5.5}},
		{2, mgl64.Vec3{5, 3, 5}},
		{2.7, mgl64.Vec3{0.2, 1.9, 9.8}},
		{3, mgl64.Vec3{9.9, 1.5, 0.1}},
	} {
		sel := Selector{Radius: tt.radius}
		lo, hi := sel.box(tt.center)
		volume := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1) * (hi.Z - lo.Z + 1)
		require.LessOrEqual(t, volume, s.Len(), "Радиус %.1f должен идти через обход куба", tt.radius)

		want := sel.filter(s.All(), tt.center)
		got := sel.Select(s, tt.center)
		assert.Equal(t, len(want), len(got), "Радиус %.1f", tt.radius)
		if len(want) > 0 {
			assert.Equal(t, want, got)
		}
	}
}

func TestSelect_BoxScanIncludesBoundaryCells(t *testing.T) {
	s := slab()
	got := Selector{Radius: 1}.Select(s, mgl64.Vec3{5.5, 1.5, 5.5})
	assert.Len(t, got, 7, "Центр и шесть соседей на расстоянии ровно 1")
	assert.Contains(t, got, store.Entry{Pos: vec.Vec3{X: 4, Y: 1, Z: 5}, ID: block.Stone})
}
