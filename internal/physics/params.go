package physics

import (
	"errors"
	"fmt"
)

// ErrInvalidParams возвращается для некорректных параметров кинематики
var ErrInvalidParams = errors.New("некорректные параметры кинематики")

// Params — константы кинематики в единицах за тик
type Params struct {
	Speed           float64 `yaml:"speed" env:"SPEED"`
	WaterResistance float64 `yaml:"water_resistance" env:"WATER_RESISTANCE"`
	Gravity         float64 `yaml:"gravity" env:"GRAVITY"`
	JumpImpulse     float64 `yaml:"jump_impulse" env:"JUMP_IMPULSE"`
	SwimImpulse     float64 `yaml:"swim_impulse" env:"SWIM_IMPULSE"`
	DescendImpulse  float64 `yaml:"descend_impulse" env:"DESCEND_IMPULSE"`
	WaterDamping    float64 `yaml:"water_damping" env:"WATER_DAMPING"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed" env:"MAX_FALL_SPEED"`

	GroundTolerance float64 `yaml:"ground_tolerance" env:"GROUND_TOLERANCE"`
	WallMargin      float64 `yaml:"wall_margin" env:"WALL_MARGIN"`
	BodyProbe       float64 `yaml:"body_probe" env:"BODY_PROBE"`
	WaterProbe      float64 `yaml:"water_probe" env:"WATER_PROBE"`
	HeadHeight      float64 `yaml:"head_height" env:"HEAD_HEIGHT"`
	EyeHeight       float64 `yaml:"eye_height" env:"EYE_HEIGHT"`
}

// DefaultParams возвращает параметры по умолчанию
func DefaultParams() Params {
	return Params{
		Speed:           0.1,
		WaterResistance: 0.5,
		Gravity:         0.01,
		JumpImpulse:     0.2,
		SwimImpulse:     0.05,
		DescendImpulse:  0.05,
		WaterDamping:    0.9,
		MaxFallSpeed:    0.9,

		GroundTolerance: 0.1,
		WallMargin:      0.3,
		BodyProbe:       0.5,
		WaterProbe:      0.5,
		HeadHeight:      1.8,
		EyeHeight:       1.6,
	}
}

// Validate проверяет параметры. MaxFallSpeed должен быть меньше единицы,
// иначе опрос соседних ячеек может пропустить пол.
func (p Params) Validate() error {
	switch {
	case p.Speed < 0 || p.Gravity < 0:
		return fmt.Errorf("%w: speed и gravity не могут быть отрицательными", ErrInvalidParams)
	case p.WaterResistance <= 0 || p.WaterResistance > 1:
		return fmt.Errorf("%w: water_resistance вне (0, 1]", ErrInvalidParams)
	case p.WaterDamping <= 0 || p.WaterDamping >= 1:
		return fmt.Errorf("%w: water_damping вне (0, 1)", ErrInvalidParams)
	case p.MaxFallSpeed <= 0 || p.MaxFallSpeed >= 1:
		return fmt.Errorf("%w: max_fall_speed вне (0, 1)", ErrInvalidParams)
	case p.WallMargin <= p.Speed:
		return fmt.Errorf("%w: wall_margin должен превышать speed", ErrInvalidParams)
	case p.HeadHeight <= 0 || p.EyeHeight <= 0 || p.EyeHeight > p.HeadHeight:
		return fmt.Errorf("%w: требуется 0 < eye_height <= head_height", ErrInvalidParams)
	}
	return nil
}
