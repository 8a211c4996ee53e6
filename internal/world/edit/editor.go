// Package edit реализует протокол изменения блоков лучом: ломание и установку.
package edit

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/query"
	"github.com/go-gl/mathgl/mgl64"
)

// Значения по умолчанию
const (
	DefaultReach        = 6.0
	DefaultMinClearance = 1.5

	DefaultBodyHalfWidth = 0.3
	DefaultBodyHeight    = 1.8
)

// Kind определяет тип действия
type Kind int

const (
	Break Kind = iota
	Place
)

// String возвращает имя действия
func (k Kind) String() string {
	switch k {
	case Break:
		return "break"
	case Place:
		return "place"
	default:
		return "unknown"
	}
}

// Reason объясняет исход действия
type Reason string

const (
	ReasonOK              Reason = "ok"
	ReasonMiss            Reason = "miss"
	ReasonUnbreakable     Reason = "unbreakable"
	ReasonClearance       Reason = "clearance"
	ReasonInvalidMaterial Reason = "invalid_material"
	ReasonUnknownAction   Reason = "unknown_action"
)

// Action описывает запрос на изменение блока
type Action struct {
	Kind           Kind
	Origin         mgl64.Vec3 // Начало луча (глаза игрока)
	Direction      mgl64.Vec3 // Направление взгляда
	Material       block.ID   // Материал для установки
	PlayerPosition mgl64.Vec3 // Позиция ног игрока
}

// Result описывает исход действия. Отказ не является ошибкой.
type Result struct {
	Kind     Kind
	Changed  bool
	Coord    vec.Vec3
	Previous block.ID
	Current  block.ID
	Reason   Reason
}

// Body — габариты игрока относительно ног: квадрат 2*HalfWidth по X/Z
// и высота Height вверх. Нулевая высота отключает проверку.
type Body struct {
	HalfWidth float64
	Height    float64
}

// Overlaps проверяет, пересекает ли ячейка c тело игрока с ногами в feet.
// Касание гранями пересечением не считается.
func (b Body) Overlaps(c vec.Vec3, feet mgl64.Vec3) bool {
	if b.Height <= 0 {
		return false
	}
	return overlap(float64(c.X), feet.X()-b.HalfWidth, feet.X()+b.HalfWidth) &&
		overlap(float64(c.Y), feet.Y(), feet.Y()+b.Height) &&
		overlap(float64(c.Z), feet.Z()-b.HalfWidth, feet.Z()+b.HalfWidth)
}

// overlap проверяет пересечение единичного отрезка [lo, lo+1) с (from, to)
func overlap(lo, from, to float64) bool {
	return lo < to && lo+1 > from
}

// Editor выполняет изменения в пределах досягаемости
type Editor struct {
	Reach        float64 // Максимальная длина луча
	MinClearance float64 // Минимальное расстояние от центра новой ячейки до игрока
	Body         Body    // Ячейки, пересекающие тело, не занимаются
}

// NewEditor создаёт редактор с параметрами по умолчанию
func NewEditor() Editor {
	return Editor{
		Reach:        DefaultReach,
		MinClearance: DefaultMinClearance,
		Body:         Body{HalfWidth: DefaultBodyHalfWidth, Height: DefaultBodyHeight},
	}
}

// Break удаляет первый блок на луче, если его можно сломать
func (e Editor) Break(s block.ReadWriter, origin, dir mgl64.Vec3) Result {
	res := Result{Kind: Break}

	hit, ok := query.Raycast(s, origin, dir, e.Reach)
	if !ok {
		res.Reason = ReasonMiss
		return res
	}

	res.Coord = hit.Coord
	res.Previous = hit.Block
	res.Current = hit.Block
	if !hit.Block.IsBreakable() {
		res.Reason = ReasonUnbreakable
		return res
	}

	s.Set(hit.Coord, block.Air)
	res.Current = block.Air
	res.Changed = true
	res.Reason = ReasonOK
	return res
}

// Place ставит material в ячейку перед гранью, в которую попал луч.
// Ячейка отвергается, если её центр ближе MinClearance к позиции игрока
// или она пересекает тело игрока.
func (e Editor) Place(s block.ReadWriter, origin, dir mgl64.Vec3, material block.ID, playerPos mgl64.Vec3) Result {
	res := Result{Kind: Place}

	if !material.IsPlaceable() {
		res.Reason = ReasonInvalidMaterial
		return res
	}

	hit, ok := query.Raycast(s, origin, dir, e.Reach)
	if !ok {
		res.Reason = ReasonMiss
		return res
	}

	candidate := hit.Adjacent()
	res.Coord = candidate
	res.Previous = s.Get(candidate)
	res.Current = res.Previous

	if candidate.Center().Sub(playerPos).Len() < e.MinClearance || e.Body.Overlaps(candidate, playerPos) {
		res.Reason = ReasonClearance
		return res
	}

	s.Set(candidate, material)
	res.Current = material
	res.Changed = res.Previous != material
	res.Reason = ReasonOK
	return res
}

// Apply выполняет действие a
func (e Editor) Apply(s block.ReadWriter, a Action) Result {
	switch a.Kind {
	case Break:
		return e.Break(s, a.Origin, a.Direction)
	case Place:
		return e.Place(s, a.Origin, a.Direction, a.Material, a.PlayerPosition)
	default:
		return Result{Kind: a.Kind, Reason: ReasonUnknownAction}
	}
}
