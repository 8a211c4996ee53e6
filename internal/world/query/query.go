// Package query реализует точечные запросы и трассировку лучей по хранилищу блоков.
package query

import (
	"math"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// MaxRayDistance ограничивает длину луча, чтобы обход всегда завершался
const MaxRayDistance = 1024.0

// Hit описывает первую непустую ячейку, в которую вошёл луч
type Hit struct {
	Coord    vec.Vec3 // Ячейка попадания
	Normal   vec.Vec3 // Нормаль грани, через которую луч вошёл в ячейку
	Distance float64  // Расстояние от начала луча до точки входа
	Block    block.ID // Материал ячейки
}

// Adjacent возвращает соседнюю ячейку со стороны грани попадания
func (h Hit) Adjacent() vec.Vec3 {
	return h.Coord.Add(h.Normal)
}

// Point возвращает точку входа луча в ячейку
func (h Hit) Point(origin, dir mgl64.Vec3) mgl64.Vec3 {
	return origin.Add(dir.Normalize().Mul(h.Distance))
}

// BlockAt возвращает материал ячейки, содержащей непрерывную точку p
func BlockAt(r block.Reader, p mgl64.Vec3) block.ID {
	return r.Get(vec.Floor(p))
}

// Raycast проходит ячейки решётки вдоль луча (алгоритм Amanatides–Woo) и
// возвращает первую непустую ячейку не дальше maxDist. Ячейка, содержащая
// начало луча, не проверяется. Нулевое направление или maxDist <= 0 — промах.
func Raycast(r block.Reader, origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	if !(maxDist > 0) || !finite(origin) || !finite(dir) {
		return Hit{}, false
	}
	if maxDist > MaxRayDistance {
		maxDist = MaxRayDistance
	}

	length := dir.Len()
	if length == 0 {
		return Hit{}, false
	}
	d := dir.Mul(1 / length)

	start := vec.Floor(origin)
	cell := [3]int{start.X, start.Y, start.Z}

	var step [3]int
	var tMax, tDelta [3]float64
	for i := 0; i < 3; i++ {
		switch {
		case d[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / d[i]
			tMax[i] = (float64(cell[i]+1) - origin[i]) / d[i]
		case d[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / d[i]
			tMax[i] = (origin[i] - float64(cell[i])) / -d[i]
		default:
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}

	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}

		t := tMax[axis]
		if t > maxDist {
			return Hit{}, false
		}

		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		coord := vec.Vec3{X: cell[0], Y: cell[1], Z: cell[2]}
		if id := r.Get(coord); id != block.Air {
			var normal [3]int
			normal[axis] = -step[axis]
			return Hit{
				Coord:    coord,
				Normal:   vec.Vec3{X: normal[0], Y: normal[1], Z: normal[2]},
				Distance: t,
				Block:    id,
			}, true
		}
	}
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
