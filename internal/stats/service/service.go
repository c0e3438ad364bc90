package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"civicdesk/internal/intake/workflow"
	"civicdesk/internal/stats/metrics"
	"civicdesk/internal/stats/models"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/requestcontext"
)

// Store is the single counting primitive the snapshots are built from.
type Store interface {
	Count(ctx context.Context, table models.Table, filter models.Filter) (int, error)
	GroupCount(ctx context.Context, table models.Table, dim models.Dimension, filter models.Filter) (map[string]int, error)
}

// UserCounter reports how many actors are currently active.
type UserCounter interface {
	CountActive(ctx context.Context) (int, error)
}

const (
	recentWindow        = 30 * 24 * time.Hour
	maxConcurrentCounts = 6
	tracerName          = "civicdesk/internal/stats"
)

// Service computes statistics fresh on every call. Counts within one snapshot
// run concurrently and are not read in a single transaction.
type Service struct {
	store   Store
	users   UserCounter
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(store Store, users UserCounter, opts ...Option) *Service {
	s := &Service{
		store:  store,
		users:  users,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EntityStats is available to any authenticated actor.
func (s *Service) EntityStats(ctx context.Context, actor domain.Actor) (*models.EntityStats, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	ctx, span := s.tracer.Start(ctx, "stats.EntityStats")
	defer span.End()
	defer s.observe("entities", time.Now())

	out := &models.EntityStats{}
	g, gctx := s.group(ctx)
	s.entityCounts(gctx, g, out, since(ctx))
	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, span, err)
	}
	return out, nil
}

// FeedbackStats is available to any authenticated actor.
func (s *Service) FeedbackStats(ctx context.Context, actor domain.Actor) (*models.FeedbackStats, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	ctx, span := s.tracer.Start(ctx, "stats.FeedbackStats")
	defer span.End()
	defer s.observe("feedback", time.Now())

	out := &models.FeedbackStats{}
	g, gctx := s.group(ctx)
	s.feedbackCounts(gctx, g, out, since(ctx))
	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, span, err)
	}
	return out, nil
}

// Dashboard combines both families with the ledger size and active users.
func (s *Service) Dashboard(ctx context.Context, actor domain.Actor) (*models.Dashboard, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if !actor.IsElevated() {
		return nil, dErrors.New(dErrors.CodeForbidden, "staff privileges required")
	}
	ctx, span := s.tracer.Start(ctx, "stats.Dashboard")
	defer span.End()
	defer s.observe("dashboard", time.Now())

	out := &models.Dashboard{}
	from := since(ctx)
	g, gctx := s.group(ctx)
	s.entityCounts(gctx, g, &out.GovernmentEntities, from)
	s.feedbackCounts(gctx, g, &out.CitizenFeedback, from)
	s.count(gctx, g, models.TableSubmissions, models.Filter{}, &out.TotalSubmissions)
	g.Go(func() error {
		_, span := s.tracer.Start(gctx, "stats.CountActiveUsers")
		defer span.End()
		n, err := s.users.CountActive(gctx)
		if err != nil {
			span.RecordError(err)
			return err
		}
		out.ActiveUsers = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, span, err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "dashboard snapshot computed",
			"actor_id", actor.ID.String(),
			"total_submissions", out.TotalSubmissions,
		)
	}
	return out, nil
}

func (s *Service) group(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCounts)
	return g, gctx
}

func (s *Service) entityCounts(ctx context.Context, g *errgroup.Group, out *models.EntityStats, from time.Time) {
	s.count(ctx, g, models.TableEntities, models.Filter{}, &out.TotalEntities)
	s.count(ctx, g, models.TableEntities, models.Approved(true), &out.ApprovedEntities)
	s.count(ctx, g, models.TableEntities, models.Approved(false), &out.PendingEntities)
	s.groupCount(ctx, g, models.TableEntities, models.DimEntityType, &out.EntitiesByType)
	s.groupCount(ctx, g, models.TableEntities, models.DimGovernorate, &out.EntitiesByGovernorate)
	s.count(ctx, g, models.TableEntities, models.CreatedSince(from), &out.RecentSubmissions)
}

func (s *Service) feedbackCounts(ctx context.Context, g *errgroup.Group, out *models.FeedbackStats, from time.Time) {
	s.count(ctx, g, models.TableFeedback, models.Filter{}, &out.TotalFeedback)
	s.count(ctx, g, models.TableFeedback, models.WithStatus(string(workflow.StatusPending)), &out.PendingFeedback)
	s.count(ctx, g, models.TableFeedback, models.WithStatus(string(workflow.StatusResolved)), &out.ResolvedFeedback)
	s.groupCount(ctx, g, models.TableFeedback, models.DimFeedbackType, &out.FeedbackByType)
	s.groupCount(ctx, g, models.TableFeedback, models.DimPriority, &out.FeedbackByPriority)
	s.count(ctx, g, models.TableFeedback, models.CreatedSince(from), &out.RecentFeedback)
}

// count schedules one count; dst is written only by its own goroutine.
func (s *Service) count(ctx context.Context, g *errgroup.Group, table models.Table, filter models.Filter, dst *int) {
	g.Go(func() error {
		ctx, span := s.tracer.Start(ctx, "stats.Count", trace.WithAttributes(
			attribute.String("stats.table", string(table)),
		))
		defer span.End()

		n, err := s.store.Count(ctx, table, filter)
		if err != nil {
			span.RecordError(err)
			s.countFailed(table)
			return err
		}
		*dst = n
		return nil
	})
}

func (s *Service) groupCount(ctx context.Context, g *errgroup.Group, table models.Table, dim models.Dimension, dst *map[string]int) {
	g.Go(func() error {
		ctx, span := s.tracer.Start(ctx, "stats.GroupCount", trace.WithAttributes(
			attribute.String("stats.table", string(table)),
			attribute.String("stats.dimension", string(dim)),
		))
		defer span.End()

		groups, err := s.store.GroupCount(ctx, table, dim, models.Filter{})
		if err != nil {
			span.RecordError(err)
			s.countFailed(table)
			return err
		}
		if groups == nil {
			groups = map[string]int{}
		}
		*dst = groups
		return nil
	})
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "statistics snapshot failed")
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to compute statistics",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "statistics query timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute statistics")
}

func (s *Service) observe(scope string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSnapshotDuration(scope, time.Since(start).Seconds())
	}
}

func (s *Service) countFailed(table models.Table) {
	if s.metrics != nil {
		s.metrics.IncrementCountFailures(string(table))
	}
}

// since is the inclusive start of the recent-activity window.
func since(ctx context.Context) time.Time {
	return requestcontext.Now(ctx).Add(-recentWindow)
}
