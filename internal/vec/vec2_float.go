package vec

import "math"

// Vec2Float представляет горизонтальный вектор с плавающей точкой (X — ось X, Y — ось Z)
type Vec2Float struct {
	X, Y float64
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Mul умножает вектор на скаляр
func (v Vec2Float) Mul(scalar float64) Vec2Float {
	return Vec2Float{X: v.X * scalar, Y: v.Y * scalar}
}

// Normalized возвращает нормализованный вектор; нулевой вектор остаётся нулевым
func (v Vec2Float) Normalized() Vec2Float {
	length := v.Length()
	if length == 0 {
		return Vec2Float{X: 0, Y: 0}
	}
	return Vec2Float{X: v.X / length, Y: v.Y / length}
}

// Length возвращает длину вектора
func (v Vec2Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Rotate поворачивает вектор вокруг вертикальной оси на угол yaw.
// При yaw = 0 «вперёд» (0, -1) смотрит вдоль -Z.
func (v Vec2Float) Rotate(yaw float64) Vec2Float {
	sin, cos := math.Sincos(yaw)
	return Vec2Float{
		X: v.X*cos + v.Y*sin,
		Y: -v.X*sin + v.Y*cos,
	}
}
