package services

import (
	"context"
	"time"

	"securecheck/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher is one sink for prediction events.
type Publisher interface {
	Name() string
	Available() bool
	Publish(ctx context.Context, message interface{}) error
}

// Broadcaster hands each prediction event to every available sink. Failures
// are logged and counted, never returned: the prediction has already been made.
type Broadcaster struct {
	sinks   []Publisher
	log     *zap.Logger
	timeout time.Duration
}

func NewBroadcaster(log *zap.Logger, sinks ...Publisher) *Broadcaster {
	return &Broadcaster{sinks: sinks, log: log, timeout: 2 * time.Second}
}

func (b *Broadcaster) Announce(ctx context.Context, in models.PredictionInput, p models.Prediction, at time.Time) models.PredictionEvent {
	ev := models.PredictionEvent{
		ID:         uuid.NewString(),
		At:         at.UTC(),
		Input:      in,
		Prediction: p,
	}
	if b == nil {
		return ev
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	for _, s := range b.sinks {
		if s == nil || !s.Available() {
			continue
		}
		if err := s.Publish(ctx, ev); err != nil {
			eventsPublished.WithLabelValues(s.Name(), "error").Inc()
			b.log.Warn("publish prediction event failed",
				zap.String("sink", s.Name()), zap.String("event_id", ev.ID), zap.Error(err))
			continue
		}
		eventsPublished.WithLabelValues(s.Name(), "ok").Inc()
	}
	return ev
}
