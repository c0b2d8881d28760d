package ident

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/obsgraph"
)

const instrumentationName = "github.com/zero-day-ai/obsgraph/ident"

// InstrumentedStore wraps a Store with OpenTelemetry spans and counters.
//
// Both providers are optional: a nil tracer provider skips spans, a nil
// meter provider skips counters, and with both nil the wrapper is a
// pass-through. Instrumentation failures never fail store operations.
type InstrumentedStore struct {
	store  Store
	tracer trace.Tracer

	puts   metric.Int64Counter
	gets   metric.Int64Counter
	misses metric.Int64Counter
}

// NewInstrumentedStore wraps a store with the given providers. Either
// provider may be nil.
func NewInstrumentedStore(store Store, tp trace.TracerProvider, mp metric.MeterProvider) (*InstrumentedStore, error) {
	s := &InstrumentedStore{store: store}

	if tp != nil {
		s.tracer = tp.Tracer(instrumentationName)
	}

	if mp != nil {
		meter := mp.Meter(instrumentationName)
		var err error

		s.puts, err = meter.Int64Counter("ident.store.puts",
			metric.WithDescription("Number of identifier bindings written"),
			metric.WithUnit("1"))
		if err != nil {
			return nil, fmt.Errorf("create puts counter: %w", err)
		}

		s.gets, err = meter.Int64Counter("ident.store.gets",
			metric.WithDescription("Number of identifier lookups"),
			metric.WithUnit("1"))
		if err != nil {
			return nil, fmt.Errorf("create gets counter: %w", err)
		}

		s.misses, err = meter.Int64Counter("ident.store.misses",
			metric.WithDescription("Number of identifier lookups that missed"),
			metric.WithUnit("1"))
		if err != nil {
			return nil, fmt.Errorf("create misses counter: %w", err)
		}
	}

	return s, nil
}

// Put binds an identifier to a value, recording a span and counter.
func (s *InstrumentedStore) Put(ctx context.Context, id string, value any) error {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, "ident.store.put",
			trace.WithAttributes(attribute.String("ident.id", id)))
		defer span.End()
	}
	if s.puts != nil {
		s.puts.Add(ctx, 1)
	}

	err := s.store.Put(ctx, id, value)
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Get returns the value bound to an identifier, recording a span and
// hit/miss counters. A cache miss is recorded as a miss, not as a span
// error.
func (s *InstrumentedStore) Get(ctx context.Context, id string) (any, error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, "ident.store.get",
			trace.WithAttributes(attribute.String("ident.id", id)))
		defer span.End()
	}
	if s.gets != nil {
		s.gets.Add(ctx, 1)
	}

	v, err := s.store.Get(ctx, id)
	switch {
	case err == nil:
		if span != nil {
			span.SetAttributes(attribute.Bool("ident.hit", true))
		}
	case errors.Is(err, obsgraph.ErrCacheMiss):
		if s.misses != nil {
			s.misses.Add(ctx, 1)
		}
		if span != nil {
			span.SetAttributes(attribute.Bool("ident.hit", false))
		}
	default:
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	return v, err
}

// Reset drops all entries in the wrapped store.
func (s *InstrumentedStore) Reset(ctx context.Context) error {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, "ident.store.reset")
		defer span.End()
	}

	err := s.store.Reset(ctx)
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Close closes the wrapped store.
func (s *InstrumentedStore) Close() error {
	return s.store.Close()
}
