package edit

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/store"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	above = mgl64.Vec3{0.5, 4.5, 0.5}
	down  = mgl64.Vec3{0, -1, 0}
	far   = mgl64.Vec3{20, 0, 20}
)

func TestBreak_RemovesBreakableBlock(t *testing.T) {
	s := store.NewMapStore()
	s.Set(vec.Vec3{}, block.Stone)

	res := NewEditor().Break(s, above, down)
	require.True(t, res.Changed)
	assert.Equal(t, ReasonOK, res.Reason)
	assert.Equal(t, vec.Vec3{}, res.Coord)
	assert.Equal(t, block.Stone, res.Previous)
	assert.Equal(t, block.Air, res.Current)
	assert.Equal(t, block.Air, s.Get(vec.Vec3{}))
}

func TestBreak_IsIdempotent(t *testing.T) {
	s := store.NewMapStore()
	s.Set(vec.Vec3{}, block.Grass)
	e := NewEditor()

	first := e.Break(s, above, down)
	require.True(t, first.Changed)
	digest := store.Digest(s)

	second := e.Break(s, above, down)
	assert.False(t, second.Changed, "Повторное ломание не должно ничего менять")
	assert.Equal(t, ReasonMiss, second.Reason)
	assert.Equal(t, digest, store.Digest(s))
}

func TestBreak_WaterIsUnbreakable(t *testing.T) {
	s := store.NewMapStore()
	s.Set(vec.Vec3{}, block.Water)

	res := NewEditor().Break(s, above, down)
	assert.False(t, res.Changed)
	assert.Equal(t, ReasonUnbreakable, res.Reason)
	assert.Equal(t, block.Water, s.Get(vec.Vec3{}), "Вода должна остаться на месте")
}

func TestBreak_OutOfReach(t *testing.T) {
	s := store.NewMapStore()
	s.Set(vec.Vec3{Y: -10}, block.Stone)

	res := Editor{Reach: 5, MinClearance: 1.5}.Break(s, above, down)
	assert.False(t, res.Changed)
	assert.Equal(t, ReasonMiss, res.Reason)
	assert.Equal(t, 1, s.Len())
}

func TestPlace_OnTopFace(t *testing.T) {
	s := store.NewMapStore()
	s.Set(vec.Vec3{}, block.Stone)

	res := NewEditor().Place(s, above, down, block.Dirt, far)
	require.True(t, res.Changed)
	assert.Equal(t, vec.Vec3{Y: 1}, res.Coord)
	assert.Equal(t, block.Air, res.Previous)
	assert.Equal(t, block.Dirt, s.Get(vec.Vec3{Y: 1}))
}

func TestPlace_OnSideFace(t *testing.T) {
	s := store.NewMapStore()
	s.Set(vec.Vec3{}, block.Stone)

	res := NewEditor().Place(s, mgl64.Vec3{3.5, 0.5, 0.5}, mgl64.Vec3{-1, 0, 0}, block.Wood, far)
	require.True(t, res.Changed)
	assert.Equal(t, vec.East, res.Coord)
	assert.Equal(t, block.Wood, s.Get(vec.East))
}

func TestPlace_Clearance(t *testing.T) {
	tests := []struct {
		name    string
		player  mgl64.Vec3
		allowed bool
	}{
		{"игрок внутри ячейки", mgl64.Vec3{0.5, 1, 0.5}, false},
		{"чуть ближе порога", mgl64.Vec3{0.5, 2.9, 0.5}, false},
		{"ровно на пороге", mgl64.Vec3{0.5, 3, 0.5}, true},
		{"дальше порога", mgl64.Vec3{0.5, 4, 0.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMapStore()
			s.Set(vec.Vec3{}, block.Stone)

			res := Editor{Reach: 6, MinClearance: 1.5}.Place(s, above, down, block.Sand, tt.player)
			assert.Equal(t, tt.allowed, res.Changed)
			if tt.allowed {
				assert.Equal(t, block.Sand, s.Get(vec.Vec3{Y: 1}))
			} else {
				assert.Equal(t, ReasonClearance, res.Reason)
				assert.Equal(t, block.Air, s.Get(vec.Vec3{Y: 1}))
			}
		})
	}
}

func TestPlace_InvalidMaterial(t *testing.T) {
	for _, material := range []block.ID{block.Air, block.Water, block.ID(999)} {
		s := store.NewMapStore()
		s.Set(vec.Vec3{}, block.Stone)

		res := NewEditor().Place(s, above, down, material, far)
		assert.False(t, res.Changed, "Материал %d не должен устанавливаться", material)
		assert.Equal(t, ReasonInvalidMaterial, res.Reason)
		assert.Equal(t, 1, s.Len())
	}
}

func TestPlace_Miss(t *testing.T) {
	s := store.NewMapStore()

	res := NewEditor().Place(s, above, down, block.Dirt, far)
	assert.False(t, res.Changed)
	assert.Equal(t, ReasonMiss, res.Reason)
	assert.Zero(t, s.Len())
}

func TestApply_Dispatch(t *testing.T) {
	s := store.NewMapStore()
	s.Set(vec.Vec3{}, block.Stone)
	e := NewEditor()

	placed := e.Apply(s, Action{Kind: Place, Origin: above, Direction: down, Material: block.Leaves, PlayerPosition: far})
	require.True(t, placed.Changed)
	assert.Equal(t, Place, placed.Kind)

	broken := e.Apply(s, Action{Kind: Break, Origin: above, Direction: down})
	require.True(t, broken.Changed)
	assert.Equal(t, vec.Vec3{Y: 1}, broken.Coord, "Ломается верхний блок")
	assert.Equal(t, block.Leaves, broken.Previous)

	unknown := e.Apply(s, Action{Kind: Kind(42)})
	assert.False(t, unknown.Changed)
	assert.Equal(t, ReasonUnknownAction, unknown.Reason)
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestPlace_RejectsCellsInsideBody(t *testing.T) {
	east := mgl64.Vec3{1, 0, 0}
	tests := []struct {
		name    string
		feet    mgl64.Vec3
		wall    vec.Vec3
		target  vec.Vec3
		allowed bool
	}{
		{"голова игрока", mgl64.Vec3{0.5, 1, 0.5}, vec.Vec3{X: 1, Y: 2}, vec.Vec3{Y: 2}, false},
		{"тело заходит в соседнюю колонку", mgl64.Vec3{0.9, 1, 0.5}, vec.Vec3{X: 2, Y: 2}, vec.Vec3{X: 1, Y: 2}, false},
		{"соседняя колонка свободна", mgl64.Vec3{0.5, 1, 0.5}, vec.Vec3{X: 2, Y: 2}, vec.Vec3{X: 1, Y: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMapStore()
			s.Set(tt.wall, block.Stone)
			eye := tt.feet.Add(mgl64.Vec3{0, 1.6, 0})

			res := NewEditor().Place(s, eye, east, block.Dirt, tt.feet)
			assert.Equal(t, tt.target, res.Coord)
			assert.Equal(t, tt.allowed, res.Changed)
			if !tt.allowed {
				assert.Equal(t, ReasonClearance, res.Reason)
				assert.Equal(t, block.Air, s.Get(tt.target))
			}
		})
	}
}

func TestBody_Overlaps(t *testing.T) {
	body := Body{HalfWidth: 0.3, Height: 1.8}
	feet := mgl64.Vec3{0.5, 1, 0.5}

	assert.True(t, body.Overlaps(vec.Vec3{Y: 1}, feet), "Ячейка ног")
	assert.True(t, body.Overlaps(vec.Vec3{Y: 2}, feet), "Ячейка головы")
	assert.False(t, body.Overlaps(vec.Vec3{}, feet), "Опора только касается ног")
	assert.False(t, body.Overlaps(vec.Vec3{Y: 3}, feet), "Выше макушки")
	assert.False(t, body.Overlaps(vec.Vec3{X: 1, Y: 1}, feet))
	assert.False(t, Body{}.Overlaps(vec.Vec3{Y: 1}, feet), "Нулевое тело ничего не занимает")
}
