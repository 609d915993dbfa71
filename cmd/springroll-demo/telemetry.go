package main

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"

	springroll "github.com/naveencl/SpringRoll"
	"github.com/naveencl/SpringRoll/internal/loopback"
)

// EventTelemetry exports bus traffic: learning and analytic events become
// structured OTel log records, and counters track the relayed volume.
type EventTelemetry struct {
	logger   otellog.Logger
	learning metric.Int64Counter
	analytic metric.Int64Counter
	ended    metric.Int64Counter
}

func NewEventTelemetry(logger otellog.Logger, meter metric.Meter) (*EventTelemetry, error) {
	learning, err := meter.Int64Counter("springroll.learning_events")
	if err != nil {
		return nil, fmt.Errorf("learning counter: %w", err)
	}
	analytic, err := meter.Int64Counter("springroll.analytic_events")
	if err != nil {
		return nil, fmt.Errorf("analytic counter: %w", err)
	}
	ended, err := meter.Int64Counter("springroll.games_ended")
	if err != nil {
		return nil, fmt.Errorf("ended counter: %w", err)
	}
	return &EventTelemetry{logger: logger, learning: learning, analytic: analytic, ended: ended}, nil
}

// Attach subscribes to the application bus.
func (t *EventTelemetry) Attach(bus springroll.EventBus) {
	bus.On(springroll.EventLearning, t.onLearningEvent)
	bus.On(springroll.EventAnalytic, t.onAnalyticEvent)
	bus.On(springroll.EventEndGame, t.onEndGame)
}

func (t *EventTelemetry) onLearningEvent(data any) {
	t.learning.Add(context.Background(), 1)

	var attrs []otellog.KeyValue
	if ev, ok := data.(loopback.LearningEvent); ok {
		attrs = append(attrs,
			otellog.String("event_id", ev.EventID),
			otellog.String("spec", ev.Spec),
			otellog.String("code", ev.Code),
		)
		if ev.Name != "" {
			attrs = append(attrs, otellog.String("name", ev.Name))
		}
		for k, v := range ev.Data {
			attrs = append(attrs, otellog.String(k, fmt.Sprint(v)))
		}
	}
	logEvent(t.logger, "learningEvent", attrs...)
}

func (t *EventTelemetry) onAnalyticEvent(data any) {
	t.analytic.Add(context.Background(), 1)

	var attrs []otellog.KeyValue
	if m, ok := data.(map[string]any); ok {
		for k, v := range m {
			attrs = append(attrs, otellog.String(k, fmt.Sprint(v)))
		}
	}
	logEvent(t.logger, "analyticEvent", attrs...)
}

func (t *EventTelemetry) onEndGame(data any) {
	exitType, _ := data.(string)
	t.ended.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("exit_type", exitType)))
	logEvent(t.logger, "endGame", otellog.String("exit_type", exitType))
}

func logEvent(logger otellog.Logger, event string, attrs ...otellog.KeyValue) {
	var r otellog.Record
	r.SetTimestamp(time.Now())
	r.SetBody(otellog.StringValue(event))
	r.AddAttributes(attrs...)
	logger.Emit(context.Background(), r)
}
