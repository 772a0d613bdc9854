package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/observability/service"

// Service decorates the members service with tracing, logging, and metrics.
type Service struct {
	inner   memberports.Service
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

// New wraps the core members service.
func New(inner memberports.Service, opts ...Option) memberports.Service {
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

func (s *Service) Join(ctx context.Context, member *memberdomain.Member) (int64, error) {
	name := ""
	if member != nil {
		name = member.Name
	}
	ctx, span := s.tracer.Start(ctx, "MemberService.Join", trace.WithAttributes(attribute.String("member.name", name)))
	defer span.End()

	s.logInfo(ctx, "joining member", slog.String("member.name", name))
	id, err := s.inner.Join(ctx, member)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return 0, s.handleError(ctx, span, err, "failed to join member", slog.String("member.name", name))
	}
	span.SetAttributes(attribute.Int64("member.id", id))
	s.metrics.recordJoined(ctx)
	s.logInfo(ctx, "member joined", slog.Int64("member.id", id))
	return id, nil
}

func (s *Service) FindMembers(ctx context.Context) ([]*memberdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.FindMembers")
	defer span.End()

	result, err := s.inner.FindMembers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list members")
	}
	span.SetAttributes(attribute.Int("member.count", len(result)))
	return result, nil
}

func (s *Service) FindOne(ctx context.Context, id int64) (*memberdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.FindOne", trace.WithAttributes(attribute.Int64("member.id", id)))
	defer span.End()

	result, err := s.inner.FindOne(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load member", slog.Int64("member.id", id))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, name string) (*memberdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.Update", trace.WithAttributes(attribute.Int64("member.id", id)))
	defer span.End()

	s.logInfo(ctx, "renaming member", slog.Int64("member.id", id), slog.String("member.name", name))
	result, err := s.inner.Update(ctx, id, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to rename member", slog.Int64("member.id", id))
	}
	s.logInfo(ctx, "member renamed", slog.Int64("member.id", id))
	return result, nil
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
	joined   metric.Int64Counter
	rejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	joined, _ := m.Int64Counter("members.service.joined", metric.WithDescription("Number of members that joined"))
	rejected, _ := m.Int64Counter("members.service.join_rejected", metric.WithDescription("Number of rejected member joins"))
	return serviceMetrics{joined: joined, rejected: rejected}
}

func (m serviceMetrics) recordJoined(ctx context.Context) {
	if m.joined != nil {
		m.joined.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.rejected != nil {
		m.rejected.Add(ctx, 1)
	}
}

var _ memberports.Service = (*Service)(nil)
