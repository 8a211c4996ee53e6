// Package physics реализует кинематику игрока: взгляд, ходьбу, гравитацию,
// плавучесть и столкновения с блоками через выборку отдельных ячеек.
package physics

import (
	"math"

	"github.com/annel0/blockverse/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// Kinematics выполняет один тик движения игрока. Не хранит состояния.
type Kinematics struct {
	Params   Params
	collider BodyCollider
}

// NewKinematics создаёт кинематику с указанными параметрами
func NewKinematics(p Params) Kinematics {
	return Kinematics{Params: p, collider: NewBodyCollider(p)}
}

// Collider возвращает коллайдер тела игрока
func (k Kinematics) Collider() BodyCollider {
	if k.collider == (BodyCollider{}) {
		return NewBodyCollider(k.Params)
	}
	return k.collider
}

// Step возвращает новое состояние игрока после одного тика.
// Функция чистая: r только читается, p передаётся по значению.
func (k Kinematics) Step(p Player, in Input, r block.Reader) Player {
	prm := k.Params
	body := k.Collider()

	p.Yaw += in.LookYaw
	p.Pitch = mgl64.Clamp(p.Pitch+in.LookPitch, -math.Pi/2, math.Pi/2)

	// Режим выбирается заново по позиции до перемещения
	feet := p.Position
	inWater := body.Submerged(r, feet)
	grounded := body.Grounded(r, feet, p.Velocity.Y())

	speed := prm.Speed
	if inWater {
		speed *= prm.WaterResistance
	}
	move := in.Intent().Normalized().Rotate(p.Yaw).Mul(speed)
	vx, vz := move.X, move.Y

	vy := p.Velocity.Y()
	switch {
	case in.Jump && inWater:
		vy = prm.SwimImpulse
	case in.Jump && grounded:
		vy = prm.JumpImpulse
	case in.Descend && inWater:
		vy = -prm.DescendImpulse
	case inWater:
		vy *= prm.WaterDamping
	default:
		vy -= prm.Gravity
	}
	if vy < -prm.MaxFallSpeed {
		vy = -prm.MaxFallSpeed
	}

	p.OnGround = false
	if top, ok := body.Land(r, feet, vy); ok {
		feet[1] = top
		vy = 0
		p.OnGround = true
	}
	if body.HitsCeiling(r, feet, vy) {
		vy = 0
	}
	if body.Blocked(r, feet, 0, vx) {
		vx = 0
	}
	if body.Blocked(r, feet, 2, vz) {
		vz = 0
	}

	p.Velocity = mgl64.Vec3{vx, vy, vz}
	p.Position = feet.Add(p.Velocity)
	p.InWater = body.Submerged(r, p.Position)
	return p
}
