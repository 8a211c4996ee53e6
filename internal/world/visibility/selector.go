// Package visibility отбирает блоки в радиусе видимости для рендерера.
package visibility

import (
	"math"
	"sort"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/store"
	"github.com/go-gl/mathgl/mgl64"
)

// Source — хранилище, из которого отбираются видимые блоки
type Source interface {
	block.Reader
	All() []store.Entry
	Len() int
}

// Selector отбирает записи, центр ячейки которых лежит в радиусе Radius.
// Radius <= 0 отключает отбор.
type Selector struct {
	Radius float64
}

// Select возвращает видимые записи, упорядоченные по координате.
// Если куб радиуса содержит меньше ячеек, чем хранилище записей,
// опрашиваются только ячейки куба; иначе просматривается всё хранилище.
func (sel Selector) Select(s Source, center mgl64.Vec3) []store.Entry {
	if sel.Radius > 0 {
		lo, hi := sel.box(center)
		volume := float64(hi.X-lo.X+1) * float64(hi.Y-lo.Y+1) * float64(hi.Z-lo.Z+1)
		if volume <= float64(s.Len()) {
			return sel.scanBox(s, center, lo, hi)
		}
	}
	return sel.filter(s.All(), center)
}

// box возвращает углы куба ячеек, чьи центры могут попасть в радиус
func (sel Selector) box(center mgl64.Vec3) (vec.Vec3, vec.Vec3) {
	r := mgl64.Vec3{sel.Radius, sel.Radius, sel.Radius}
	half := mgl64.Vec3{0.5, 0.5, 0.5}
	lo := center.Sub(r).Sub(half)
	hi := center.Add(r).Sub(half)
	return vec.Vec3{X: int(math.Ceil(lo.X())), Y: int(math.Ceil(lo.Y())), Z: int(math.Ceil(lo.Z()))},
		vec.Floor(hi)
}

// scanBox обходит куб в порядке X, Y, Z, поэтому результат уже упорядочен
func (sel Selector) scanBox(r block.Reader, center mgl64.Vec3, lo, hi vec.Vec3) []store.Entry {
	r2 := sel.Radius * sel.Radius
	var visible []store.Entry
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				d := pos.Center().Sub(center)
				if d.Dot(d) > r2 {
					continue
				}
				if id := r.Get(pos); id != block.Air {
					visible = append(visible, store.Entry{Pos: pos, ID: id})
				}
			}
		}
	}
	return visible
}

func (sel Selector) filter(all []store.Entry, center mgl64.Vec3) []store.Entry {
	visible := make([]store.Entry, 0, len(all))
	if sel.Radius <= 0 {
		visible = append(visible, all...)
	} else {
		r2 := sel.Radius * sel.Radius
		for _, e := range all {
			d := e.Pos.Center().Sub(center)
			if d.Dot(d) <= r2 {
				visible = append(visible, e)
			}
		}
	}

	sort.Slice(visible, func(i, j int) bool {
		a, b := visible[i].Pos, visible[j].Pos
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return visible
}
