package sim

import (
	"context"
	"fmt"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/edit"
	"github.com/annel0/blockverse/internal/world/gen"
	"github.com/annel0/blockverse/internal/world/store"
	"github.com/go-gl/mathgl/mgl64"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// World — сгенерированный мир: хранилище и параметры, из которых оно построено
type World struct {
	Store  store.Store
	Bounds gen.Bounds
	Seed   int64
	Stats  gen.Stats
	Spawn  mgl64.Vec3
}

// Close освобождает ресурсы хранилища
func (w *World) Close() error {
	if w == nil || w.Store == nil {
		return nil
	}
	return store.Close(w.Store)
}

// BuildWorld создаёт хранилище, генерирует рельеф и вычисляет точку появления.
// При ошибке хранилище закрывается и ничего не возвращается.
func BuildWorld(ctx context.Context, tracer trace.Tracer, cfg config.Config, seed int64) (*World, error) {
	_, span := tracer.Start(ctx, "sim.BuildWorld")
	defer span.End()

	st, err := store.New(cfg.World.StoreBackend)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	g, err := gen.NewGenerator(cfg.World.Generation)
	if err != nil {
		store.Close(st)
		span.RecordError(err)
		return nil, err
	}

	stats, err := g.Generate(st, cfg.World.Bounds, seed)
	if err != nil {
		store.Close(st)
		span.RecordError(err)
		return nil, fmt.Errorf("генерация мира: %w", err)
	}
	span.SetAttributes(
		attribute.Int64("seed", seed),
		attribute.Int("columns", stats.Columns),
		attribute.Int("blocks", stats.Blocks),
		attribute.Int("trees", stats.Trees),
	)

	return &World{
		Store:  st,
		Bounds: cfg.World.Bounds,
		Seed:   seed,
		Stats:  stats,
		Spawn:  spawnPoint(st, cfg),
	}, nil
}

// spawnPoint ставит игрока над поверхностью колонки появления.
// Колонка вне области заменяется центром области.
func spawnPoint(r block.Reader, cfg config.Config) mgl64.Vec3 {
	b := cfg.World.Bounds
	x, z := cfg.Player.SpawnX, cfg.Player.SpawnZ
	if !b.Contains(x, z) {
		x, z = b.MinX+b.Width()/2, b.MinZ+b.Depth()/2
	}
	top := gen.SurfaceHeight(r, x, z, cfg.World.Generation.MaxHeight())
	return mgl64.Vec3{float64(x) + 0.5, float64(top) + cfg.Player.SpawnHeight, float64(z) + 0.5}
}

// SelectMaterial применяет выбор материала. Air означает отсутствие выбора;
// неустанавливаемые материалы отвергаются, и выбор не меняется.
func SelectMaterial(current, requested block.ID) block.ID {
	if requested == block.Air || !requested.IsPlaceable() {
		return current
	}
	return requested
}

// Advance выполняет один тик над явным состоянием: выбор материала, движение,
// затем ломание и установка от глаз игрока после перемещения.
// Изменяется только хранилище w; игрок и материал возвращаются.
func Advance(w *World, p physics.Player, selected block.ID, in Input, k physics.Kinematics, e edit.Editor) (physics.Player, block.ID, []edit.Result) {
	selected = SelectMaterial(selected, in.Select)
	p = k.Step(p, in.Input, w.Store)

	var results []edit.Result
	if in.Break {
		results = append(results, e.Break(w.Store, p.Eye(), p.LookDirection()))
	}
	if in.Place {
		results = append(results, e.Place(w.Store, p.Eye(), p.LookDirection(), selected, p.Position))
	}
	return p, selected, results
}
