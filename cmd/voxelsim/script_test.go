package main

import (
	"io"
	"math"
	"testing"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/sim"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/gen"
	"github.com/annel0/blockverse/internal/world/store"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript_Phases(t *testing.T) {
	s := newScript()

	first := s.Next(0)
	assert.True(t, first.Forward)
	assert.True(t, first.Jump)

	var yaw, pitch float64
	var breaks, places int
	var selected block.ID
	for tick := uint64(1); tick < cycleTicks; tick++ {
		in := s.Next(tick)
		yaw += in.LookYaw
		pitch += in.LookPitch
		if in.Break {
			breaks++
		}
		if in.Place {
			places++
		}
		if in.Select != block.Air {
			selected = in.Select
		}
	}

	assert.InDelta(t, math.Pi/2, yaw, 1e-9, "За цикл игрок поворачивается на четверть оборота")
	assert.InDelta(t, -math.Pi/6, pitch, 1e-9)
	assert.Equal(t, digTicks/5, breaks)
	assert.Equal(t, buildTicks/5, places)
	assert.Equal(t, buildMaterials[0], selected)
}

func TestScript_DrivesSimulation(t *testing.T) {
	cfg := config.Default()
	cfg.World.Bounds = gen.CenteredBounds(16)
	cfg.World.Generation.WaveAmplitude = 0
	cfg.World.Generation.RidgeAmplitude = 0
	cfg.World.Generation.DetailAmplitude = 0
	cfg.World.Generation.SeaLevel = 2

	simulation, err := sim.New(cfg, sim.WithLogger(logging.NewWriterLogger("sim", io.Discard, logging.ERROR)))
	require.NoError(t, err)
	defer simulation.Close()

	s := newScript()
	changed := 0
	for simulation.Tick() < 2*cycleTicks {
		frame := simulation.Step(s.Next(simulation.Tick()))
		for _, res := range frame.Edits {
			if res.Changed {
				changed++
			}
		}
	}

	assert.Equal(t, uint64(2*cycleTicks), simulation.Tick())
	assert.Greater(t, changed, 0, "Сценарий должен менять мир")
	assert.False(t, math.IsNaN(simulation.Player().Position.Y()))
}

func TestLookTarget(t *testing.T) {
	st := store.NewMapStore()
	st.Set(vec.Vec3{}, block.Grass)
	p := physics.NewPlayer(mgl64.Vec3{0.5, 1, 0.5}, physics.DefaultParams())
	p.Pitch = -math.Pi / 2

	assert.Equal(t, "grass {0 0 0}, точка (0.50, 1.00, 0.50)", lookTarget(st, p, 6))

	p.Pitch = 0
	assert.Equal(t, "пусто", lookTarget(st, p, 6))
}
