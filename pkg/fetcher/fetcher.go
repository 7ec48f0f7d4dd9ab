package fetcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/zachfi/nowplaying/pkg/nowplaying"
	"github.com/zachfi/nowplaying/pkg/pickpath"
	"github.com/zachfi/nowplaying/pkg/schema"
)

var tracer = otel.Tracer("github.com/zachfi/nowplaying/pkg/fetcher")

type Fetcher struct {
	transport     Transport
	logger        *slog.Logger
	metrics       *Metrics
	maxConcurrent int
}

type Option func(*Fetcher)

// WithMetrics records fetch metrics in m.
func WithMetrics(m *Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

// WithMaxConcurrent bounds the number of endpoint requests in flight for a
// single fetch. Zero leaves it unbounded.
func WithMaxConcurrent(n int) Option {
	return func(f *Fetcher) { f.maxConcurrent = n }
}

func New(transport Transport, logger *slog.Logger, opts ...Option) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}

	f := &Fetcher{
		transport: transport,
		logger:    logger,
	}
	for _, o := range opts {
		o(f)
	}
	if f.metrics == nil {
		f.metrics = NewMetrics(nil)
	}

	return f
}

// Fetch requests every endpoint of s concurrently and assembles the records.
// An invalid schema, failed endpoints and malformed tracks only reduce the
// result. The returned error is non-nil only when ctx ends before all
// endpoints answered; no partial result is returned in that case.
func (f *Fetcher) Fetch(ctx context.Context, s schema.RadioSchema) ([]nowplaying.Metadata, error) {
	fetchID := uuid.NewString()
	logger := f.logger.With("schema", s.Name, "fetch_id", fetchID)

	if err := s.Validate(); err != nil {
		logger.Warn("invalid schema", "err", err)
		return []nowplaying.Metadata{}, nil
	}

	ctx, span := tracer.Start(ctx, "Fetcher.Fetch", trace.WithAttributes(
		attribute.String("schema", s.Name),
		attribute.String("fetch_id", fetchID),
		attribute.Int("endpoints", len(s.URLs)),
	))
	defer span.End()

	start := time.Now()
	f.metrics.fetchesTotal.WithLabelValues(s.Name).Inc()
	defer func() {
		f.metrics.fetchDuration.WithLabelValues(s.Name).Observe(time.Since(start).Seconds())
	}()

	merged, err := f.fetchAll(ctx, logger, s)
	if err != nil {
		logger.Warn("fetch abandoned", "err", err)
		return nil, err
	}

	tracks := pickpath.Resolve(merged, s.Paths.Tracks)
	if tracks.Kind() != pickpath.KindArray {
		logger.Warn("tracks path did not resolve to a list", "path", s.Paths.Tracks, "kind", tracks.Kind())
		return []nowplaying.Metadata{}, nil
	}

	records, dropped := Assemble(tracks.Elements(), merged, s.Paths)
	for _, d := range dropped {
		logger.Debug("dropped track", "index", d.Index, "err", d.Err)
	}

	f.metrics.recordsTotal.WithLabelValues(s.Name).Add(float64(len(records)))
	f.metrics.recordsDropped.WithLabelValues(s.Name).Add(float64(len(dropped)))
	span.SetAttributes(
		attribute.Int("records", len(records)),
		attribute.Int("dropped", len(dropped)),
	)

	return records, nil
}

// fetchAll is the fan-out/fan-in barrier: every endpoint writes only to its
// own slot and the merged set is built after all of them returned.
func (f *Fetcher) fetchAll(ctx context.Context, logger *slog.Logger, s schema.RadioSchema) (ResponseSet, error) {
	bodies := make([]interface{}, len(s.URLs))

	g, gctx := errgroup.WithContext(ctx)
	if f.maxConcurrent > 0 {
		g.SetLimit(f.maxConcurrent)
	}

	for i, u := range s.URLs {
		i, u := i, u
		g.Go(func() error {
			bodies[i] = f.fetchEndpoint(gctx, logger, s.Name, u)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := make(ResponseSet, len(s.URLs))
	for i, u := range s.URLs {
		merged[u.Name] = bodies[i]
	}
	return merged, nil
}

// fetchEndpoint never fails: on error the endpoint contributes an empty
// object, so every path rooted at it resolves to nothing.
func (f *Fetcher) fetchEndpoint(ctx context.Context, logger *slog.Logger, schemaName string, u schema.URLConfig) interface{} {
	ctx, span := tracer.Start(ctx, "Fetcher.fetchEndpoint", trace.WithAttributes(
		attribute.String("endpoint", u.Name),
	))
	defer span.End()

	body, err := f.transport.GetJSON(ctx, u.URL, u.Headers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "endpoint request failed")
		logger.Warn("endpoint request failed", "endpoint", u.Name, "err", err)
		f.metrics.endpointFailures.WithLabelValues(schemaName, u.Name).Inc()
		return map[string]interface{}{}
	}

	span.SetStatus(codes.Ok, "ok")
	return body
}
