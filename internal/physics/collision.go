package physics

import (
	"math"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// BodyCollider описывает тело игрока набором точек-проб относительно ног.
// Коллизии проверяются выборкой отдельных ячеек, а не непрерывным свипом.
type BodyCollider struct {
	HalfWidth  float64 // Отступ горизонтальных проб от центра
	Height     float64 // Высота макушки над ногами
	BodyProbe  float64 // Высота горизонтальных проб
	WaterProbe float64 // Высота пробы воды
	Tolerance  float64 // Допуск приземления над верхней гранью опоры
}

// NewBodyCollider собирает коллайдер из параметров кинематики
func NewBodyCollider(p Params) BodyCollider {
	return BodyCollider{
		HalfWidth:  p.WallMargin,
		Height:     p.HeadHeight,
		BodyProbe:  p.BodyProbe,
		WaterProbe: p.WaterProbe,
		Tolerance:  p.GroundTolerance,
	}
}

// SolidAt проверяет, блокирует ли движение ячейка, содержащая точку
func SolidAt(r block.Reader, p mgl64.Vec3) bool {
	return r.Get(vec.Floor(p)).IsSolid()
}

// WaterAt проверяет, содержит ли ячейка с точкой воду
func WaterAt(r block.Reader, p mgl64.Vec3) bool {
	return r.Get(vec.Floor(p)).IsWater()
}

// Support возвращает ячейку на единицу ниже ног и признак того, что она твёрдая
func (c BodyCollider) Support(r block.Reader, feet mgl64.Vec3) (vec.Vec3, bool) {
	cell := vec.Floor(feet).Add(vec.Down)
	return cell, r.Get(cell).IsSolid()
}

// Grounded проверяет, стоит ли игрок на опоре: ноги не выше верхней грани
// больше чем на Tolerance, и вертикальная скорость не направлена вверх.
func (c BodyCollider) Grounded(r block.Reader, feet mgl64.Vec3, vy float64) bool {
	if vy > 0 {
		return false
	}
	cell, solid := c.Support(r, feet)
	return solid && feet.Y()-cell.Top() <= c.Tolerance
}

// Land проверяет, коснутся ли ноги опоры после смещения на vy.
// Возвращает высоту верхней грани опоры.
func (c BodyCollider) Land(r block.Reader, feet mgl64.Vec3, vy float64) (float64, bool) {
	if vy > 0 {
		return 0, false
	}
	cell, solid := c.Support(r, feet)
	if !solid {
		return 0, false
	}
	top := cell.Top()
	return top, feet.Y()+vy <= top+c.Tolerance
}

// HitsCeiling проверяет, упрётся ли макушка в твёрдый блок после подъёма на vy
func (c BodyCollider) HitsCeiling(r block.Reader, feet mgl64.Vec3, vy float64) bool {
	if vy <= 0 {
		return false
	}
	return SolidAt(r, feet.Add(mgl64.Vec3{0, c.Height + vy, 0}))
}

// Blocked проверяет пробу по оси axis (0 — X, 2 — Z) в направлении знака v.
// Нулевая скорость никогда не блокируется.
func (c BodyCollider) Blocked(r block.Reader, feet mgl64.Vec3, axis int, v float64) bool {
	if v == 0 {
		return false
	}
	probe := feet.Add(mgl64.Vec3{0, c.BodyProbe, 0})
	probe[axis] += math.Copysign(c.HalfWidth, v)
	return SolidAt(r, probe)
}

// Submerged проверяет, находится ли проба воды в воде
func (c BodyCollider) Submerged(r block.Reader, feet mgl64.Vec3) bool {
	return WaterAt(r, feet.Add(mgl64.Vec3{0, c.WaterProbe, 0}))
}
