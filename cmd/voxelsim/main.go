package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/observability"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/sim"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/query"
	"github.com/annel0/blockverse/internal/world/store"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $VOXEL_CONFIG)")
	ticks := flag.Uint64("ticks", 600, "число тиков; 0 — до сигнала завершения")
	seed := flag.Int64("seed", 0, "сид генерации (0 — из конфигурации)")
	metricsAddr := flag.String("metrics", "", "адрес Prometheus /metrics (например, :2112)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	if err := initLogging(cfg.Log); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *ticks); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
}

func initLogging(lc config.LogConfig) error {
	var err error
	if lc.Dir != "" {
		err = logging.InitDefaultFileLogger("voxelsim", lc.Dir)
	} else {
		err = logging.InitDefaultLogger("voxelsim")
	}
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return err
	}
	logging.SetDefaultLevel(level)
	logging.GetLoggerManager().SetDefaultComponentLevel(level)
	return nil
}

func run(ctx context.Context, cfg config.Config, ticks uint64) error {
	monitor := observability.NewProcessMonitor()
	instanceID := uuid.NewString()

	shutdown, err := observability.InitTelemetry(ctx, observability.TelemetryConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		InstanceID:  instanceID,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logging.Warn("Ошибка остановки трассировки: %v", err)
		}
	}()

	ctx, span := otel.Tracer("github.com/annel0/blockverse/cmd/voxelsim").Start(ctx, "voxelsim.run")
	defer span.End()

	registry := prometheus.NewRegistry()
	simulation, err := sim.New(cfg, sim.WithRegistry(registry))
	if err != nil {
		return err
	}
	defer simulation.Close()

	if cfg.Metrics.Addr != "" {
		srv := startMetrics(cfg.Metrics.Addr, registry)
		defer srv.Shutdown(context.Background())
	}

	world := simulation.World()
	logging.Info("🎮 Симуляция %s запущена: backend=%s, seed=%d, колонок=%d, блоков=%d, воды=%d, деревьев=%d",
		simulation.ID(), cfg.World.StoreBackend, world.Seed,
		world.Stats.Columns, world.Stats.Blocks, world.Stats.Water, world.Stats.Trees)
	logging.Info("🔑 Дайджест мира: %016x", store.Digest(world.Store))

	script := newScript()
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Sim.TickRate))
	defer ticker.Stop()

	var changed int
loop:
	for ticks == 0 || simulation.Tick() < ticks {
		select {
		case <-ctx.Done():
			logging.Info("📡 Получен сигнал завершения")
			break loop
		case <-ticker.C:
			frame := simulation.Step(script.Next(simulation.Tick()))
			for _, res := range frame.Edits {
				if res.Changed {
					changed++
				}
			}
			if frame.Tick%uint64(cfg.Sim.TickRate) == 0 {
				logging.Debug("Тик %d: позиция %.2f, видимых блоков %d, взгляд: %s",
					frame.Tick, frame.Player.Position, len(frame.Visible),
					lookTarget(world.Store, frame.Player, cfg.Editor.Reach))
			}
		}
	}

	p := simulation.Player()
	logging.Info("🏁 Тиков: %d, изменено блоков: %d, блоков в мире: %d",
		simulation.Tick(), changed, world.Store.Len())
	logging.Info("🔑 Итоговый дайджест: %016x", store.Digest(world.Store))
	logging.Info("🧍 Игрок: позиция=(%.2f, %.2f, %.2f) yaw=%.2f pitch=%.2f на земле=%t в воде=%t",
		p.Position.X(), p.Position.Y(), p.Position.Z(), p.Yaw, p.Pitch, p.OnGround, p.InWater)
	logging.Info("📊 Процесс: %s", monitor.Snapshot())
	return nil
}

// lookTarget описывает блок, на который смотрит игрок в пределах reach
func lookTarget(r block.Reader, p physics.Player, reach float64) string {
	eye, dir := p.Eye(), p.LookDirection()
	hit, ok := query.Raycast(r, eye, dir, reach)
	if !ok {
		return "пусто"
	}
	pt := hit.Point(eye, dir)
	return fmt.Sprintf("%s %v, точка (%.2f, %.2f, %.2f)", hit.Block, hit.Coord, pt.X(), pt.Y(), pt.Z())
}

func startMetrics(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}
