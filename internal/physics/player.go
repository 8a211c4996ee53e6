package physics

import (
	"math"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// Player — поза и скорость игрока. OnGround и InWater пересчитываются
// каждый тик и не используются как состояние между тиками.
type Player struct {
	Position mgl64.Vec3 // Позиция ног
	Yaw      float64    // Поворот вокруг вертикали; 0 смотрит вдоль -Z
	Pitch    float64    // Наклон взгляда в [-π/2, π/2]
	Velocity mgl64.Vec3 // Скорость в единицах за тик
	OnGround bool
	InWater  bool

	EyeHeight float64 // Высота глаз над ногами
}

// NewPlayer создаёт игрока в точке spawn с нулевой скоростью
func NewPlayer(spawn mgl64.Vec3, p Params) Player {
	return Player{Position: spawn, EyeHeight: p.EyeHeight}
}

// Eye возвращает позицию глаз (начало луча взгляда)
func (p Player) Eye() mgl64.Vec3 {
	return p.Position.Add(mgl64.Vec3{0, p.EyeHeight, 0})
}

// LookDirection возвращает единичный вектор взгляда
func (p Player) LookDirection() mgl64.Vec3 {
	sinYaw, cosYaw := math.Sincos(p.Yaw)
	sinPitch, cosPitch := math.Sincos(p.Pitch)
	return mgl64.Vec3{-sinYaw * cosPitch, sinPitch, -cosYaw * cosPitch}
}

// Cell возвращает ячейку, в которой находятся ноги
func (p Player) Cell() vec.Vec3 {
	return vec.Floor(p.Position)
}

// Input — намерения игрока на один тик
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool
	Descend bool

	LookYaw   float64 // Приращение yaw
	LookPitch float64 // Приращение pitch
}

// Intent возвращает горизонтальное намерение в локальных осях игрока:
// X — вправо, Y — назад (вперёд соответствует -Z при нулевом yaw).
func (in Input) Intent() vec.Vec2Float {
	var intent vec.Vec2Float
	if in.Forward {
		intent.Y--
	}
	if in.Back {
		intent.Y++
	}
	if in.Right {
		intent.X++
	}
	if in.Left {
		intent.X--
	}
	return intent
}
