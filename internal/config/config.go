// Package config загружает конфигурацию симуляции из YAML и переменных окружения.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/edit"
	"github.com/annel0/blockverse/internal/world/gen"
	"github.com/annel0/blockverse/internal/world/store"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix — префикс переменных окружения
const EnvPrefix = "VOXEL_"

// PathEnv — переменная окружения с путём к файлу конфигурации
const PathEnv = "VOXEL_CONFIG"

// ErrInvalidConfig возвращается Validate для некорректной конфигурации
var ErrInvalidConfig = errors.New("некорректная конфигурация")

// Config корневая структура конфигурации симуляции
type Config struct {
	World   WorldConfig   `yaml:"world" envPrefix:"WORLD_"`
	Player  PlayerConfig  `yaml:"player" envPrefix:"PLAYER_"`
	Editor  EditorConfig  `yaml:"editor" envPrefix:"EDITOR_"`
	Render  RenderConfig  `yaml:"render" envPrefix:"RENDER_"`
	Sim     SimConfig     `yaml:"sim" envPrefix:"SIM_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`
	Tracing TracingConfig `yaml:"tracing" envPrefix:"TRACING_"`
}

// WorldConfig описывает область мира и генерацию
type WorldConfig struct {
	Seed         int64      `yaml:"seed" env:"SEED"`
	Bounds       gen.Bounds `yaml:"bounds" envPrefix:"BOUNDS_"`
	StoreBackend string     `yaml:"store_backend" env:"STORE_BACKEND"`
	Generation   gen.Params `yaml:"generation" envPrefix:"GEN_"`
}

// PlayerConfig описывает точку появления и кинематику игрока
type PlayerConfig struct {
	SpawnX      int            `yaml:"spawn_x" env:"SPAWN_X"`
	SpawnZ      int            `yaml:"spawn_z" env:"SPAWN_Z"`
	SpawnHeight float64        `yaml:"spawn_height" env:"SPAWN_HEIGHT"` // Высота над поверхностью
	Kinematics  physics.Params `yaml:"kinematics" envPrefix:"KINEMATICS_"`
}

// EditorConfig описывает ограничения редактора блоков
type EditorConfig struct {
	Reach           float64 `yaml:"reach" env:"REACH"`
	MinClearance    float64 `yaml:"min_clearance" env:"MIN_CLEARANCE"`
	DefaultMaterial string  `yaml:"default_material" env:"DEFAULT_MATERIAL"`
}

// RenderConfig описывает выборку видимых блоков
type RenderConfig struct {
	Radius float64 `yaml:"radius" env:"RADIUS"`
}

// SimConfig описывает цикл симуляции
type SimConfig struct {
	TickRate int `yaml:"tick_rate" env:"TICK_RATE"` // Тиков в секунду
}

// LogConfig описывает логирование
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	Dir   string `yaml:"dir" env:"DIR"` // Пусто — только консоль
}

// MetricsConfig описывает эндпоинт Prometheus
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"ADDR"` // Пусто — эндпоинт не запускается
}

// TracingConfig описывает трассировку OpenTelemetry
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" env:"ENABLED"`
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	return Config{
		World: WorldConfig{
			Seed:         1,
			Bounds:       gen.CenteredBounds(64),
			StoreBackend: store.BackendMap,
			Generation:   gen.DefaultParams(),
		},
		Player: PlayerConfig{
			SpawnHeight: 2,
			Kinematics:  physics.DefaultParams(),
		},
		Editor: EditorConfig{
			Reach:           edit.DefaultReach,
			MinClearance:    edit.DefaultMinClearance,
			DefaultMaterial: block.Dirt.String(),
		},
		Render: RenderConfig{
			Radius: 32,
		},
		Sim: SimConfig{
			TickRate: 60,
		},
		Log: LogConfig{
			Level: logging.INFO.String(),
		},
		Tracing: TracingConfig{
			ServiceName: "voxelsim",
		},
	}
}

// Load читает YAML файл поверх значений по умолчанию и применяет переменные окружения.
// Если path == "", берётся путь из VOXEL_CONFIG; без файла используются значения по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("чтение конфигурации %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("разбор конфигурации %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("переменные окружения: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет конфигурацию целиком
func (c Config) Validate() error {
	if err := c.World.Bounds.Validate(c.World.Generation.MaxColumns); err != nil {
		return fmt.Errorf("world.bounds: %w", err)
	}
	if err := c.World.Generation.Validate(); err != nil {
		return fmt.Errorf("world.generation: %w", err)
	}
	switch c.World.StoreBackend {
	case store.BackendMap, store.BackendBadger:
	default:
		return fmt.Errorf("world.store_backend: %w: %q", store.ErrUnknownBackend, c.World.StoreBackend)
	}
	if err := c.Player.Kinematics.Validate(); err != nil {
		return fmt.Errorf("player.kinematics: %w", err)
	}
	if c.Player.SpawnHeight < 0 {
		return fmt.Errorf("%w: player.spawn_height не может быть отрицательной", ErrInvalidConfig)
	}
	if c.Editor.Reach <= 0 || c.Editor.MinClearance < 0 {
		return fmt.Errorf("%w: требуется editor.reach > 0 и editor.min_clearance >= 0", ErrInvalidConfig)
	}
	if _, err := c.Editor.Material(); err != nil {
		return fmt.Errorf("editor.default_material: %w", err)
	}
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("%w: sim.tick_rate должен быть положительным", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("%w: tracing.service_name обязателен при включённой трассировке", ErrInvalidConfig)
	}
	return nil
}

// Material возвращает материал по умолчанию для установки
func (e EditorConfig) Material() (block.ID, error) {
	id, err := block.Parse(e.DefaultMaterial)
	if err != nil {
		return block.Air, err
	}
	if !id.IsPlaceable() {
		return block.Air, fmt.Errorf("%w: материал %q нельзя устанавливать", ErrInvalidConfig, e.DefaultMaterial)
	}
	return id, nil
}

// Editor возвращает настроенный редактор блоков для тела body
func (e EditorConfig) Editor(body edit.Body) edit.Editor {
	return edit.Editor{Reach: e.Reach, MinClearance: e.MinClearance, Body: body}
}

// Body возвращает габариты игрока из параметров кинематики
func (p PlayerConfig) Body() edit.Body {
	return edit.Body{HalfWidth: p.Kinematics.WallMargin, Height: p.Kinematics.HeadHeight}
}
