package vec

import "math"

// Vec2 представляет колонку мира в горизонтальной плоскости: X — ось X, Y — ось Z
type Vec2 struct {
	X, Y int
}

// DistanceTo вычисляет расстояние до другой колонки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// At поднимает колонку до координаты решётки на высоте y
func (v Vec2) At(y int) Vec3 {
	return Vec3{X: v.X, Y: y, Z: v.Y}
}
