package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина по умолчанию
const (
	PerlinAlpha   = 2.0 // Сглаживание шума
	PerlinBeta    = 2.0 // Частота шума
	PerlinOctaves = 3   // Количество октав
)

// Noise — генератор шума Перлина, привязанный к сиду.
// Каждый запуск генерации создаёт свой экземпляр: глобального состояния нет.
type Noise struct {
	seed   int64
	perlin *perlin.Perlin
}

// NewNoise создаёт генератор шума с указанным сидом
func NewNoise(seed int64) *Noise {
	return &Noise{
		seed:   seed,
		perlin: perlin.NewPerlin(PerlinAlpha, PerlinBeta, PerlinOctaves, seed),
	}
}

// Seed возвращает сид генератора
func (n *Noise) Seed() int64 {
	return n.seed
}

// Noise2D возвращает значение шума для указанных координат (от 0 до 1)
func (n *Noise) Noise2D(x, y float64) float64 {
	// Получаем значение шума (примерно от -1 до 1)
	v := n.perlin.Noise2D(x, y)

	// Преобразуем в диапазон от 0 до 1
	return Clamp((v+1.0)/2.0, 0, 1)
}

// Signed2D возвращает значение шума в диапазоне [-1, 1]
func (n *Noise) Signed2D(x, y float64) float64 {
	return n.Noise2D(x, y)*2 - 1
}

// Clamp ограничивает значение диапазоном [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
