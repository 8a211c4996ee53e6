package gen

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerateBounds возвращается для границ с нулевой или отрицательной протяжённостью
	ErrDegenerateBounds = errors.New("вырожденные границы генерации")
	// ErrBoundsTooLarge возвращается, если число колонок превышает лимит памяти
	ErrBoundsTooLarge = errors.New("границы генерации превышают лимит колонок")
	// ErrInvalidParams возвращается для противоречивых параметров генерации
	ErrInvalidParams = errors.New("некорректные параметры генерации")
)

// CoordLimit ограничивает модуль координат границ диапазоном int32
const CoordLimit = math.MaxInt32

// Bounds задаёт горизонтальную область генерации: [MinX, MaxX) × [MinZ, MaxZ)
type Bounds struct {
	MinX int `yaml:"min_x" env:"MIN_X"`
	MinZ int `yaml:"min_z" env:"MIN_Z"`
	MaxX int `yaml:"max_x" env:"MAX_X"`
	MaxZ int `yaml:"max_z" env:"MAX_Z"`
}

// CenteredBounds возвращает квадрат со стороной 2*radius вокруг начала координат
func CenteredBounds(radius int) Bounds {
	return Bounds{MinX: -radius, MinZ: -radius, MaxX: radius, MaxZ: radius}
}

// Width возвращает протяжённость по X
func (b Bounds) Width() int {
	return b.MaxX - b.MinX
}

// Depth возвращает протяжённость по Z
func (b Bounds) Depth() int {
	return b.MaxZ - b.MinZ
}

// Columns возвращает число колонок в области
func (b Bounds) Columns() int {
	return b.Width() * b.Depth()
}

// Contains проверяет, попадает ли колонка (x, z) в область
func (b Bounds) Contains(x, z int) bool {
	return x >= b.MinX && x < b.MaxX && z >= b.MinZ && z < b.MaxZ
}

// Validate проверяет границы; maxColumns <= 0 отключает лимит колонок,
// но не диапазон координат. Площадь сравнивается делением, без переполнения.
func (b Bounds) Validate(maxColumns int) error {
	for _, c := range [4]int{b.MinX, b.MinZ, b.MaxX, b.MaxZ} {
		if c < -CoordLimit || c > CoordLimit {
			return fmt.Errorf("%w: координата %d вне ±%d", ErrBoundsTooLarge, c, CoordLimit)
		}
	}
	if b.Width() <= 0 || b.Depth() <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDegenerateBounds, b.Width(), b.Depth())
	}
	if maxColumns > 0 && b.Width() > maxColumns/b.Depth() {
		return fmt.Errorf("%w: %dx%d > %d", ErrBoundsTooLarge, b.Width(), b.Depth(), maxColumns)
	}
	return nil
}

// Params — параметры рельефа, биомов и декораций
type Params struct {
	BaseHeight      int     `yaml:"base_height" env:"BASE_HEIGHT"`
	WaveAmplitude   float64 `yaml:"wave_amplitude" env:"WAVE_AMPLITUDE"`
	WaveFrequency   float64 `yaml:"wave_frequency" env:"WAVE_FREQUENCY"`
	RidgeAmplitude  float64 `yaml:"ridge_amplitude" env:"RIDGE_AMPLITUDE"`
	DetailAmplitude float64 `yaml:"detail_amplitude" env:"DETAIL_AMPLITUDE"`
	DetailScale     float64 `yaml:"detail_scale" env:"DETAIL_SCALE"`
	SeaLevel        int     `yaml:"sea_level" env:"SEA_LEVEL"`

	GrassRadius     float64 `yaml:"grass_radius" env:"GRASS_RADIUS"`
	SandRadius      float64 `yaml:"sand_radius" env:"SAND_RADIUS"`
	MixedSandChance float64 `yaml:"mixed_sand_chance" env:"MIXED_SAND_CHANCE"`

	TreeChance    float64 `yaml:"tree_chance" env:"TREE_CHANCE"`
	TreeMinHeight int     `yaml:"tree_min_height" env:"TREE_MIN_HEIGHT"`
	TreeTrunkMin  int     `yaml:"tree_trunk_min" env:"TREE_TRUNK_MIN"`
	TreeTrunkMax  int     `yaml:"tree_trunk_max" env:"TREE_TRUNK_MAX"`

	MaxColumns int `yaml:"max_columns" env:"MAX_COLUMNS"`
}

// DefaultParams возвращает параметры по умолчанию
func DefaultParams() Params {
	return Params{
		BaseHeight:      8,
		WaveAmplitude:   3,
		WaveFrequency:   0.15,
		RidgeAmplitude:  1.5,
		DetailAmplitude: 2,
		DetailScale:     0.08,
		SeaLevel:        7,

		GrassRadius:     24,
		SandRadius:      48,
		MixedSandChance: 0.5,

		TreeChance:    0.02,
		TreeMinHeight: 8,
		TreeTrunkMin:  3,
		TreeTrunkMax:  5,

		MaxColumns: 512 * 512,
	}
}

// Validate проверяет согласованность параметров
func (p Params) Validate() error {
	switch {
	case p.BaseHeight < 1:
		return fmt.Errorf("%w: base_height должен быть >= 1", ErrInvalidParams)
	case p.SeaLevel < 0:
		return fmt.Errorf("%w: sea_level не может быть отрицательным", ErrInvalidParams)
	case p.GrassRadius < 0 || p.SandRadius < p.GrassRadius:
		return fmt.Errorf("%w: требуется 0 <= grass_radius <= sand_radius", ErrInvalidParams)
	case p.MixedSandChance < 0 || p.MixedSandChance > 1:
		return fmt.Errorf("%w: mixed_sand_chance вне [0, 1]", ErrInvalidParams)
	case p.TreeChance < 0 || p.TreeChance > 1:
		return fmt.Errorf("%w: tree_chance вне [0, 1]", ErrInvalidParams)
	case p.TreeTrunkMin < 1 || p.TreeTrunkMax < p.TreeTrunkMin:
		return fmt.Errorf("%w: требуется 1 <= tree_trunk_min <= tree_trunk_max", ErrInvalidParams)
	}
	return nil
}

// MaxHeight возвращает верхнюю оценку высоты мира с учётом воды и деревьев
func (p Params) MaxHeight() int {
	relief := p.BaseHeight + int(math.Ceil(math.Abs(p.WaveAmplitude)+math.Abs(p.RidgeAmplitude)+math.Abs(p.DetailAmplitude)))
	if p.SeaLevel > relief {
		relief = p.SeaLevel
	}
	return relief + p.TreeTrunkMax + 2
}
