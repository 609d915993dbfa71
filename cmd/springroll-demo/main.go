// springroll-demo assembles the container and learning bridges around
// in-process collaborators and plays a scripted session, exporting the
// resulting learning and analytic traffic over OTLP.
package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	springroll "github.com/naveencl/SpringRoll"
	"github.com/naveencl/SpringRoll/internal/loopback"
)

func logExporterOptions(cfg OTelConfig) []otlploggrpc.Option {
	opts := []otlploggrpc.Option{otlploggrpc.WithInsecure()}
	if cfg.Endpoint != "" {
		opts = append(opts, otlploggrpc.WithEndpoint(cfg.Endpoint))
	}
	return opts
}

func metricExporterOptions(cfg OTelConfig) []otlpmetricgrpc.Option {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
	if cfg.Endpoint != "" {
		opts = append(opts, otlpmetricgrpc.WithEndpoint(cfg.Endpoint))
	}
	return opts
}

// captionLog stands in for the caption text element.
type captionLog struct{}

func (captionLog) SetStyleClass(class string) {
	log.Printf("captions style: %s", class)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Collaborators
	bus := loopback.NewBus()
	opts := springroll.NewOptions()
	unload := loopback.NewUnload()
	visf := &loopback.VisibilityFactory{}

	var game, container *loopback.Messenger
	if cfg.Session.Standalone {
		game = loopback.NewUnsupported()
	} else {
		game, container = loopback.NewPair()
	}

	// Host-resolved options, set before plugin setup so defaults don't win.
	opts.Set("singlePlay", cfg.Game.SinglePlay)
	if cfg.Game.PlayOptions != nil {
		opts.Set("playOptions", cfg.Game.PlayOptions)
	}

	app := springroll.NewApplication(bus, opts)
	app.Unload = unload
	app.Features = springroll.Features{
		Learning: true,
		Sound:    cfg.Game.Sound,
		Hints:    cfg.Game.Hints,
		Music:    cfg.Game.Sound,
		VO:       cfg.Game.Sound,
		SFX:      cfg.Game.Sound,
		Captions: cfg.Game.Captions,
	}
	if cfg.Game.Captions {
		app.Captions = captionLog{}
	}

	// OTel log exporter
	logExporter, err := otlploggrpc.New(ctx, logExporterOptions(cfg.OTel)...)
	if err != nil {
		log.Fatalf("log exporter: %v", err)
	}
	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)
	defer loggerProvider.Shutdown(ctx)

	// OTel metric exporter
	metricExporter, err := otlpmetricgrpc.New(ctx, metricExporterOptions(cfg.OTel)...)
	if err != nil {
		log.Fatalf("metric exporter: %v", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(cfg.Telemetry.Interval))),
	)
	defer meterProvider.Shutdown(ctx)

	if cfg.Telemetry.Enabled {
		telemetry, err := NewEventTelemetry(
			loggerProvider.Logger(cfg.OTel.ServiceName),
			meterProvider.Meter(cfg.OTel.ServiceName),
		)
		if err != nil {
			log.Fatalf("telemetry: %v", err)
		}
		telemetry.Attach(bus)
	}

	// Plugins
	var dispatcher *loopback.Dispatcher
	app.AddPlugin(springroll.NewContainerBridge(game, visf.New))
	app.AddPlugin(springroll.NewLearningBridge(
		func(a *springroll.Application, debug bool) springroll.Dispatcher {
			dispatcher = loopback.NewDispatcher(a, debug).(*loopback.Dispatcher)
			return dispatcher
		}, cfg.Learning.Debug))

	// Container-side view of outbound traffic.
	if container != nil {
		for _, name := range []string{
			springroll.MsgFeatures, springroll.MsgLoadDone, springroll.MsgFocus,
			springroll.MsgLearningEvent, springroll.MsgAnalyticEvent, springroll.MsgEndGame,
		} {
			container.On(map[string]springroll.MessageHandler{
				name: func(data any) { log.Printf("container received %s: %v", name, data) },
			})
		}
	}

	app.Setup()
	app.Preload()

	driver := NewSessionDriver(cfg.Session.StepInterval,
		demoScript(app, container, visf, func() *loopback.Dispatcher { return dispatcher }, cfg))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		driver.Run(ctx)
		cancel()
	}()

	log.Printf("springroll-demo started (standalone=%v, telemetry=%v, singlePlay=%v)",
		cfg.Session.Standalone, cfg.Telemetry.Enabled, cfg.Game.SinglePlay)

	<-ctx.Done()
	wg.Wait()

	// Signal-driven exit is the page going away.
	if !app.Destroyed() {
		unload.Fire()
	}
	log.Println("shutting down")
}
