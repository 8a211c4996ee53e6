// Package gen детерминированно заполняет хранилище блоков рельефом,
// водой и деревьями. Генератор не хранит состояния между запусками:
// сид, шум и ГПСЧ создаются заново в каждом вызове Generate.
package gen

import (
	"math"
	"math/rand"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/store"
)

// BiomeType представляет тип биома
type BiomeType int

const (
	BiomeGrass BiomeType = iota // Ближняя зона: трава поверх земли
	BiomeMixed                  // Средняя зона: песок или камень
	BiomeSand                   // Дальняя зона: песок
)

// String возвращает имя биома
func (b BiomeType) String() string {
	switch b {
	case BiomeGrass:
		return "grass"
	case BiomeMixed:
		return "mixed"
	case BiomeSand:
		return "sand"
	default:
		return "unknown"
	}
}

// Stats — сводка по результату генерации
type Stats struct {
	Columns int
	Blocks  int
	Water   int
	Trees   int
}

// Generator генерирует ландшафт мира
type Generator struct {
	params Params
}

// NewGenerator создаёт генератор с указанными параметрами
func NewGenerator(params Params) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Generator{params: params}, nil
}

// Params возвращает параметры генератора
func (g *Generator) Params() Params {
	return g.params
}

// heightField — гладкая функция высоты для конкретного сида
type heightField struct {
	params Params
	phaseX float64
	phaseZ float64
	noise  *util.Noise
}

func (g *Generator) newHeightField(seed int64) *heightField {
	// Фазы синусоид берём из отдельного источника, чтобы высоту можно было
	// вычислить без прогона основного ГПСЧ генерации
	phaseRng := rand.New(rand.NewSource(seed ^ 0x5eed))
	return &heightField{
		params: g.params,
		phaseX: phaseRng.Float64() * 2 * math.Pi,
		phaseZ: phaseRng.Float64() * 2 * math.Pi,
		noise:  util.NewNoise(seed),
	}
}

func (h *heightField) at(x, z int) int {
	p := h.params
	fx, fz := float64(x), float64(z)

	wave := p.WaveAmplitude * math.Sin(fx*p.WaveFrequency+h.phaseX) * math.Cos(fz*p.WaveFrequency+h.phaseZ)
	ridge := p.RidgeAmplitude * math.Sin((fx+fz)*p.WaveFrequency*0.5)
	detail := 0.0
	if p.DetailAmplitude != 0 {
		detail = p.DetailAmplitude * h.noise.Signed2D(fx*p.DetailScale, fz*p.DetailScale)
	}

	height := p.BaseHeight + int(math.Round(wave+ridge+detail))
	if height < 1 {
		height = 1
	}
	return height
}

// ColumnHeight возвращает высоту рельефа колонки (x, z) для сида: блоки занимают y ∈ [0, height)
func (g *Generator) ColumnHeight(x, z int, seed int64) int {
	return g.newHeightField(seed).at(x, z)
}

// BiomeAt определяет биом по расстоянию колонки от начала координат
func (g *Generator) BiomeAt(x, z int) BiomeType {
	dist := vec.Vec2{X: x, Y: z}.DistanceTo(vec.Vec2{})
	switch {
	case dist < g.params.GrassRadius:
		return BiomeGrass
	case dist < g.params.SandRadius:
		return BiomeMixed
	default:
		return BiomeSand
	}
}

// Generate заполняет dst рельефом в пределах границ.
// Ошибка возвращается до первой записи, поэтому частично сгенерированного мира не бывает.
func (g *Generator) Generate(dst store.Store, bounds Bounds, seed int64) (Stats, error) {
	if err := bounds.Validate(g.params.MaxColumns); err != nil {
		return Stats{}, err
	}

	// Единый ГПСЧ на весь запуск; колонки обходятся в фиксированном порядке
	rng := rand.New(rand.NewSource(seed))
	heights := g.newHeightField(seed)

	stats := Stats{Columns: bounds.Columns()}

	for x := bounds.MinX; x < bounds.MaxX; x++ {
		for z := bounds.MinZ; z < bounds.MaxZ; z++ {
			column := vec.Vec2{X: x, Y: z}
			height := heights.at(x, z)
			biome := g.BiomeAt(x, z)

			surface, fill := g.surfaceBlocks(biome, height, rng)

			for y := 0; y < height; y++ {
				id := block.Stone
				switch {
				case y == height-1:
					id = surface
				case y == height-2:
					id = fill
				}
				dst.Set(column.At(y), id)
			}

			// Вода заполняет пустоту между рельефом и уровнем моря
			for y := height; y < g.params.SeaLevel; y++ {
				dst.Set(column.At(y), block.Water)
				stats.Water++
			}

			if g.canGrowTree(biome, height) && rng.Float64() < g.params.TreeChance {
				g.placeTree(dst, column.At(height), rng)
				stats.Trees++
			}
		}
	}

	stats.Blocks = dst.Len()
	logging.GetWorldLogger().Debug("Генерация seed=%d: колонок %d, блоков %d, воды %d, деревьев %d",
		seed, stats.Columns, stats.Blocks, stats.Water, stats.Trees)
	return stats, nil
}

// surfaceBlocks возвращает материалы верхнего слоя и слоя под ним
func (g *Generator) surfaceBlocks(biome BiomeType, height int, rng *rand.Rand) (surface, fill block.ID) {
	switch biome {
	case BiomeGrass:
		// Под водой трава не растёт
		if height < g.params.SeaLevel {
			return block.Dirt, block.Dirt
		}
		return block.Grass, block.Dirt
	case BiomeMixed:
		if rng.Float64() < g.params.MixedSandChance {
			return block.Sand, block.Sand
		}
		return block.Stone, block.Stone
	default:
		return block.Sand, block.Sand
	}
}

func (g *Generator) canGrowTree(biome BiomeType, height int) bool {
	if biome != BiomeGrass {
		return false
	}
	minHeight := g.params.TreeMinHeight
	if g.params.SeaLevel > minHeight {
		minHeight = g.params.SeaLevel
	}
	return height >= minHeight
}

// placeTree ставит ствол из дерева и куб кроны 3×3×3 вокруг его вершины
func (g *Generator) placeTree(dst store.Store, base vec.Vec3, rng *rand.Rand) {
	trunkHeight := g.params.TreeTrunkMin + rng.Intn(g.params.TreeTrunkMax-g.params.TreeTrunkMin+1)

	for i := 0; i < trunkHeight; i++ {
		dst.Set(base.Add(vec.Vec3{Y: i}), block.Wood)
	}

	top := base.Add(vec.Vec3{Y: trunkHeight - 1})
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				pos := top.Add(vec.Vec3{X: dx, Y: dy, Z: dz})
				// Листва не затирает ствол и другие блоки
				if current := dst.Get(pos); current != block.Air && current != block.Leaves {
					continue
				}
				dst.Set(pos, block.Leaves)
			}
		}
	}
}

// SurfaceHeight возвращает высоту над самым верхним непустым блоком колонки,
// просматривая y от maxY вниз до 0; 0, если колонка пуста
func SurfaceHeight(r block.Reader, x, z, maxY int) int {
	column := vec.Vec2{X: x, Y: z}
	for y := maxY; y >= 0; y-- {
		if r.Get(column.At(y)) != block.Air {
			return y + 1
		}
	}
	return 0
}
