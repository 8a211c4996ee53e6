package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 представляет координату решётки: единичный куб с минимальным углом (X, Y, Z).
// Тип сравним и используется как ключ хранилища блоков.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Направления граней куба
var (
	Up    = Vec3{Y: 1}
	Down  = Vec3{Y: -1}
	East  = Vec3{X: 1}
	West  = Vec3{X: -1}
	South = Vec3{Z: 1}
	North = Vec3{Z: -1}
)

// Floor возвращает ячейку решётки, содержащую непрерывную точку p.
// Для отрицательных координат используется настоящий floor, а не усечение.
func Floor(p mgl64.Vec3) Vec3 {
	return Vec3{
		X: int(math.Floor(p[0])),
		Y: int(math.Floor(p[1])),
		Z: int(math.Floor(p[2])),
	}
}

// ToVec2 проецирует координату на горизонтальную плоскость (X, Z)
func (v Vec3) ToVec2() Vec2 {
	return Vec2{
		X: v.X,
		Y: v.Z,
	}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// DistanceSqTo возвращает квадрат расстояния до другого вектора
func (v Vec3) DistanceSqTo(other Vec3) int {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Corner возвращает минимальный угол ячейки в непрерывных координатах
func (v Vec3) Corner() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Center возвращает центр ячейки
func (v Vec3) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X) + 0.5, float64(v.Y) + 0.5, float64(v.Z) + 0.5}
}

// Top возвращает высоту верхней грани ячейки
func (v Vec3) Top() float64 {
	return float64(v.Y + 1)
}
