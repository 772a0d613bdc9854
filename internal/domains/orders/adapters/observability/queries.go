package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

// Queries decorates the projection builder. Every strategy gets a span
// tagged with the number of SQL statements it issued, and a histogram of
// the same number per strategy.
type Queries struct {
	inner      orderports.QueryService
	tracer     trace.Tracer
	logger     *slog.Logger
	statements metric.Int64Histogram
}

// NewQueries wraps a query service. It accepts the same options as New.
func NewQueries(inner orderports.QueryService, opts ...Option) orderports.QueryService {
	cfg := &Service{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	q := &Queries{inner: inner, tracer: cfg.tracer, logger: cfg.logger}
	if q.tracer == nil {
		q.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if cfg.meter != nil {
		q.statements, _ = cfg.meter.Int64Histogram("orders.queries.statements",
			metric.WithDescription("SQL statements issued per projection build"))
	}
	return q
}

func observe[T any](ctx context.Context, q *Queries, strategy string, fn func(ctx context.Context) ([]T, error)) ([]T, error) {
	ctx, span := q.tracer.Start(ctx, "OrderQueries."+strategy)
	defer span.End()

	counter := platformpostgres.QueryCounterFrom(ctx)
	before := counter.Count()
	result, err := fn(ctx)
	issued := counter.Count() - before
	span.SetAttributes(attribute.Int("db.statements", issued))
	if err != nil {
		return nil, recordFailure(ctx, q.logger, span, err, "failed to project orders", slog.String("strategy", strategy))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	if q.statements != nil {
		q.statements.Record(ctx, int64(issued), metric.WithAttributes(attribute.String("strategy", strategy)))
	}
	if q.logger != nil {
		q.logger.LogAttrs(ctx, slog.LevelDebug, "orders projected",
			slog.String("strategy", strategy),
			slog.Int("orders.count", len(result)),
			slog.Int("db.statements", issued))
	}
	return result, nil
}

func (q *Queries) Graphs(ctx context.Context, search orderdomain.OrderSearch) ([]*orderdomain.Order, error) {
	return observe(ctx, q, "Graphs", func(ctx context.Context) ([]*orderdomain.Order, error) {
		return q.inner.Graphs(ctx, search)
	})
}

func (q *Queries) Lazy(ctx context.Context, search orderdomain.OrderSearch) ([]ordertypes.OrderSummary, error) {
	return observe(ctx, q, "Lazy", func(ctx context.Context) ([]ordertypes.OrderSummary, error) {
		return q.inner.Lazy(ctx, search)
	})
}

func (q *Queries) EagerJoin(ctx context.Context) ([]ordertypes.OrderSummary, error) {
	return observe(ctx, q, "EagerJoin", q.inner.EagerJoin)
}

func (q *Queries) PagedJoin(ctx context.Context, page projection.Page) ([]ordertypes.OrderSummary, error) {
	return observe(ctx, q, "PagedJoin", func(ctx context.Context) ([]ordertypes.OrderSummary, error) {
		return q.inner.PagedJoin(ctx, page)
	})
}

func (q *Queries) ItemsPerOrder(ctx context.Context) ([]ordertypes.OrderSummary, error) {
	return observe(ctx, q, "ItemsPerOrder", q.inner.ItemsPerOrder)
}

func (q *Queries) TwoQuery(ctx context.Context, page projection.Page) ([]ordertypes.OrderSummary, error) {
	return observe(ctx, q, "TwoQuery", func(ctx context.Context) ([]ordertypes.OrderSummary, error) {
		return q.inner.TwoQuery(ctx, page)
	})
}

func (q *Queries) Flat(ctx context.Context) ([]ordertypes.OrderSummary, error) {
	return observe(ctx, q, "Flat", q.inner.Flat)
}

func (q *Queries) SimpleGraphs(ctx context.Context, search orderdomain.OrderSearch) ([]*orderdomain.Order, error) {
	return observe(ctx, q, "SimpleGraphs", func(ctx context.Context) ([]*orderdomain.Order, error) {
		return q.inner.SimpleGraphs(ctx, search)
	})
}

func (q *Queries) SimpleLazy(ctx context.Context, search orderdomain.OrderSearch) ([]ordertypes.SimpleOrderSummary, error) {
	return observe(ctx, q, "SimpleLazy", func(ctx context.Context) ([]ordertypes.SimpleOrderSummary, error) {
		return q.inner.SimpleLazy(ctx, search)
	})
}

func (q *Queries) SimpleJoin(ctx context.Context, page projection.Page) ([]ordertypes.SimpleOrderSummary, error) {
	return observe(ctx, q, "SimpleJoin", func(ctx context.Context) ([]ordertypes.SimpleOrderSummary, error) {
		return q.inner.SimpleJoin(ctx, page)
	})
}

func (q *Queries) SimpleDirect(ctx context.Context) ([]ordertypes.SimpleOrderSummary, error) {
	return observe(ctx, q, "SimpleDirect", q.inner.SimpleDirect)
}

var _ orderports.QueryService = (*Queries)(nil)
