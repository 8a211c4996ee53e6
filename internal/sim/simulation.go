// Package sim связывает хранилище, генератор, кинематику, редактор и выборку
// видимости в цикл симуляции. Каждый экземпляр владеет своим состоянием.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/edit"
	"github.com/annel0/blockverse/internal/world/store"
	"github.com/annel0/blockverse/internal/world/visibility"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/annel0/blockverse/internal/sim"

// Input — снимок ввода на один тик
type Input struct {
	physics.Input

	Break  bool
	Place  bool
	Select block.ID // Air — выбор не меняется
}

// Frame — результат тика для рендерера
type Frame struct {
	Tick     uint64
	Player   physics.Player
	Selected block.ID
	Visible  []store.Entry // Общий для кадров, пока набор не меняется; только для чтения
	Edits    []edit.Result
}

// RenderSink получает кадры после каждого тика
type RenderSink interface {
	Render(frame Frame)
}

// Option настраивает симуляцию
type Option func(*Simulation)

// WithRenderSink задаёт получателя кадров
func WithRenderSink(sink RenderSink) Option {
	return func(s *Simulation) {
		s.sink = sink
	}
}

// WithRegistry регистрирует метрики в общем реестре вместо собственного
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Simulation) {
		s.registry = reg
	}
}

// WithLogger задаёт логгер симуляции
func WithLogger(l *logging.Logger) Option {
	return func(s *Simulation) {
		s.log = l
	}
}

// WithTracer задаёт трассировщик
func WithTracer(t trace.Tracer) Option {
	return func(s *Simulation) {
		s.tracer = t
	}
}

// Simulation — одна независимая симуляция. Не потокобезопасна.
type Simulation struct {
	id  uuid.UUID
	cfg config.Config

	world    *World
	player   physics.Player
	selected block.ID
	tick     uint64

	kinematics physics.Kinematics
	editor     edit.Editor
	selector   visibility.Selector
	defaultMat block.ID

	visible      []store.Entry
	visibleFrom  mgl64.Vec3
	visibleFresh bool

	sink     RenderSink
	registry *prometheus.Registry
	metrics  *Metrics
	log      *logging.Logger
	tracer   trace.Tracer
}

// New проверяет конфигурацию, генерирует мир и ставит игрока в точку появления
func New(cfg config.Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("конфигурация симуляции: %w", err)
	}
	material, err := cfg.Editor.Material()
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		id:         uuid.New(),
		cfg:        cfg,
		kinematics: physics.NewKinematics(cfg.Player.Kinematics),
		editor:     cfg.Editor.Editor(cfg.Player.Body()),
		selector:   visibility.Selector{Radius: cfg.Render.Radius},
		defaultMat: material,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.GetSimLogger()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	s.metrics = NewMetrics(s.registry, s.id.String())

	start := time.Now()
	w, err := BuildWorld(context.Background(), s.tracer, cfg, cfg.World.Seed)
	if err != nil {
		return nil, err
	}
	s.metrics.observeGeneration(time.Since(start), w.Store.Len())
	s.install(w)

	s.log.Info("🌍 Симуляция %s: мир %dx%d, seed=%d, блоков=%d, деревьев=%d",
		s.id, w.Bounds.Width(), w.Bounds.Depth(), w.Seed, w.Stats.Blocks, w.Stats.Trees)
	return s, nil
}

func (s *Simulation) install(w *World) {
	s.world = w
	s.player = physics.NewPlayer(w.Spawn, s.cfg.Player.Kinematics)
	s.selected = s.defaultMat
	s.tick = 0
	s.visibleFresh = false
}

// ID возвращает идентификатор симуляции
func (s *Simulation) ID() string {
	return s.id.String()
}

// World возвращает текущий мир. Изменения блоков следует проводить через Edit,
// иначе видимый набор обновится только после перемещения игрока.
func (s *Simulation) World() *World {
	return s.world
}

// Player возвращает текущее состояние игрока
func (s *Simulation) Player() physics.Player {
	return s.player
}

// Selected возвращает выбранный материал
func (s *Simulation) Selected() block.ID {
	return s.selected
}

// Tick возвращает номер последнего выполненного тика
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Metrics возвращает метрики симуляции
func (s *Simulation) Metrics() *Metrics {
	return s.metrics
}

// Step выполняет один тик и возвращает кадр
func (s *Simulation) Step(in Input) Frame {
	start := time.Now()
	from := s.player.Position

	player, selected, edits := Advance(s.world, s.player, s.selected, in, s.kinematics, s.editor)
	if selected != s.selected {
		s.log.Debug("Выбран материал %s", selected)
	}
	s.player, s.selected = player, selected
	s.tick++

	if from != s.player.Position {
		logging.LogPlayerMovement(s.ID(), s.tick,
			from.X(), from.Y(), from.Z(),
			s.player.Position.X(), s.player.Position.Y(), s.player.Position.Z())
	}
	for _, res := range edits {
		s.recordEdit(res)
	}

	frame := Frame{
		Tick:     s.tick,
		Player:   s.player,
		Selected: s.selected,
		Visible:  s.visibleSet(),
		Edits:    edits,
	}
	s.metrics.observeTick(time.Since(start), s.world.Store.Len())

	if s.sink != nil {
		s.sink.Render(frame)
	}
	return frame
}

// Edit применяет действие вне цикла тиков
func (s *Simulation) Edit(a edit.Action) edit.Result {
	res := s.editor.Apply(s.world.Store, a)
	s.recordEdit(res)
	return res
}

// visibleSet пересчитывает видимые блоки после перемещения игрока или изменения мира
func (s *Simulation) visibleSet() []store.Entry {
	if !s.visibleFresh || s.visibleFrom != s.player.Position {
		s.visible = s.selector.Select(s.world.Store, s.player.Position)
		s.visibleFrom = s.player.Position
		s.visibleFresh = true
	}
	return s.visible
}

func (s *Simulation) recordEdit(res edit.Result) {
	s.metrics.observeEdit(res)
	if res.Changed {
		s.visibleFresh = false
		s.log.Debug("%s %v: %s -> %s", res.Kind, res.Coord, res.Previous, res.Current)
	}
}

// Reset перестраивает мир с новым сидом
func (s *Simulation) Reset(seed int64) error {
	return s.ResetContext(context.Background(), seed)
}

// ResetContext строит новый мир в стороне и подменяет им текущий.
// При ошибке текущее состояние не меняется.
func (s *Simulation) ResetContext(ctx context.Context, seed int64) error {
	ctx, span := s.tracer.Start(ctx, "sim.Reset")
	defer span.End()

	start := time.Now()
	w, err := BuildWorld(ctx, s.tracer, s.cfg, seed)
	if err != nil {
		s.log.Warn("Сброс симуляции %s с seed=%d не удался: %v", s.id, seed, err)
		return err
	}
	s.metrics.observeGeneration(time.Since(start), w.Store.Len())

	old := s.world
	s.install(w)
	if err := old.Close(); err != nil {
		s.log.Warn("Ошибка закрытия прежнего хранилища: %v", err)
	}

	s.log.Info("🔄 Симуляция %s сброшена: seed=%d, блоков=%d", s.id, seed, w.Stats.Blocks)
	return nil
}

// Close освобождает ресурсы мира
func (s *Simulation) Close() error {
	return s.world.Close()
}
