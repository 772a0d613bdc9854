package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	itemports "github.com/Apurer/go-gin-shop-api/internal/domains/items/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop-api/internal/domains/items/adapters/observability/service"

// Service decorates the catalogue service with tracing, logging, and metrics.
type Service struct {
	inner   itemports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalogue service.
func New(inner itemports.Service, opts ...Option) itemports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) SaveItem(ctx context.Context, item *itemdomain.Item) (*itemdomain.Item, error) {
	attrs := []attribute.KeyValue{}
	if item != nil {
		attrs = append(attrs, attribute.String("item.name", item.Name), attribute.String("item.kind", string(item.Kind)))
	}
	ctx, span := s.tracer.Start(ctx, "ItemService.SaveItem", trace.WithAttributes(attrs...))
	defer span.End()

	saved, err := s.inner.SaveItem(ctx, item)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save item")
	}
	span.SetAttributes(attribute.Int64("item.id", saved.ID))
	s.metrics.recordSaved(ctx)
	s.logInfo(ctx, "item saved", slog.Int64("item.id", saved.ID), slog.String("item.name", saved.Name))
	return saved, nil
}

func (s *Service) UpdateItem(ctx context.Context, id int64, name string, price, stock int64) (*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.UpdateItem", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	updated, err := s.inner.UpdateItem(ctx, id, name, price, stock)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item", slog.Int64("item.id", id))
	}
	s.logInfo(ctx, "item updated", slog.Int64("item.id", id), slog.Int64("item.stock", updated.StockQuantity))
	return updated, nil
}

func (s *Service) FindItems(ctx context.Context) ([]*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.FindItems")
	defer span.End()

	items, err := s.inner.FindItems(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list items")
	}
	span.SetAttributes(attribute.Int("items.count", len(items)))
	return items, nil
}

func (s *Service) FindOne(ctx context.Context, id int64) (*itemdomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.FindOne", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	item, err := s.inner.FindOne(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load item", slog.Int64("item.id", id))
	}
	return item, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	itemsSaved metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	saved, _ := m.Int64Counter("items.service.items_saved", metric.WithDescription("Number of catalogue items added"))
	return serviceMetrics{itemsSaved: saved}
}

func (m serviceMetrics) recordSaved(ctx context.Context) {
	if m.itemsSaved != nil {
		m.itemsSaved.Add(ctx, 1)
	}
}

var _ itemports.Service = (*Service)(nil)
