package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/edit"
	"github.com/annel0/blockverse/internal/world/gen"
	"github.com/annel0/blockverse/internal/world/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxelsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	material, err := cfg.Editor.Material()
	require.NoError(t, err)
	assert.Equal(t, block.Dirt, material, "Материал по умолчанию — земля")
}

func TestLoad_WithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv(PathEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  seed: 42
  store_backend: badger
  bounds:
    min_x: -8
    min_z: -8
    max_x: 8
    max_z: 8
  generation:
    sea_level: 3
player:
  spawn_x: 2
  kinematics:
    gravity: 0.02
editor:
  default_material: sand
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.World.Seed)
	assert.Equal(t, store.BackendBadger, cfg.World.StoreBackend)
	assert.Equal(t, gen.CenteredBounds(8), cfg.World.Bounds)
	assert.Equal(t, 3, cfg.World.Generation.SeaLevel)
	assert.Equal(t, gen.DefaultParams().BaseHeight, cfg.World.Generation.BaseHeight, "Незаданные поля сохраняют значения по умолчанию")
	assert.Equal(t, 2, cfg.Player.SpawnX)
	assert.Equal(t, 0.02, cfg.Player.Kinematics.Gravity)
	assert.Equal(t, 0.1, cfg.Player.Kinematics.Speed)
	assert.Equal(t, "sand", cfg.Editor.DefaultMaterial)
}

func TestLoad_PathFromEnvironment(t *testing.T) {
	path := writeConfig(t, "world:\n  seed: 7\n")
	t.Setenv(PathEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.World.Seed)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "world:\n  seed: 7\nrender:\n  radius: 10\n")
	t.Setenv("VOXEL_WORLD_SEED", "99")
	t.Setenv("VOXEL_WORLD_GEN_TREE_CHANCE", "0.5")
	t.Setenv("VOXEL_PLAYER_KINEMATICS_SPEED", "0.05")
	t.Setenv("VOXEL_METRICS_ADDR", ":2112")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.World.Seed)
	assert.Equal(t, 0.5, cfg.World.Generation.TreeChance)
	assert.Equal(t, 0.05, cfg.Player.Kinematics.Speed)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
	assert.Equal(t, 10.0, cfg.Render.Radius)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(PathEnv, "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "Отсутствующий файл")

	_, err = Load(writeConfig(t, "world: [unclosed"))
	assert.Error(t, err, "Некорректный YAML")

	_, err = Load(writeConfig(t, "world:\n  bounds:\n    min_x: 0\n    max_x: 0\n"))
	assert.ErrorIs(t, err, gen.ErrDegenerateBounds)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"неизвестное хранилище", func(c *Config) { c.World.StoreBackend = "redis" }, store.ErrUnknownBackend},
		{"слишком большая область", func(c *Config) { c.World.Generation.MaxColumns = 10 }, gen.ErrBoundsTooLarge},
		{"вода как материал", func(c *Config) { c.Editor.DefaultMaterial = "water" }, ErrInvalidConfig},
		{"нулевая досягаемость", func(c *Config) { c.Editor.Reach = 0 }, ErrInvalidConfig},
		{"нулевая частота тиков", func(c *Config) { c.Sim.TickRate = 0 }, ErrInvalidConfig},
		{"трассировка без имени", func(c *Config) { c.Tracing.Enabled = true; c.Tracing.ServiceName = "" }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.target)
		})
	}

	cfg := Default()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Editor.DefaultMaterial = "obsidian"
	assert.Error(t, cfg.Validate())
}

func TestEditorConfig_Editor(t *testing.T) {
	e := EditorConfig{Reach: 4, MinClearance: 1}.Editor(Default().Player.Body())
	assert.Equal(t, 4.0, e.Reach)
	assert.Equal(t, 1.0, e.MinClearance)
	assert.Equal(t, edit.Body{HalfWidth: 0.3, Height: 1.8}, e.Body)
}
