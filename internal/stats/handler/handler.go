package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"civicdesk/internal/stats/models"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/platform/httputil"
	"civicdesk/pkg/platform/middleware/auth"
	"civicdesk/pkg/requestcontext"
)

// Service defines the statistics the handler exposes.
type Service interface {
	EntityStats(ctx context.Context, actor domain.Actor) (*models.EntityStats, error)
	FeedbackStats(ctx context.Context, actor domain.Actor) (*models.FeedbackStats, error)
	Dashboard(ctx context.Context, actor domain.Actor) (*models.Dashboard, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireActor(h.logger))
		r.Get("/entities/stats", h.handleEntityStats)
		r.Get("/feedback/stats", h.handleFeedbackStats)

		r.With(auth.RequireElevated(h.logger)).Get("/dashboard/stats", h.handleDashboard)
	})
}

func (h *Handler) handleEntityStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.service.EntityStats(ctx, requestcontext.Actor(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to compute entity stats", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleFeedbackStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.service.FeedbackStats(ctx, requestcontext.Actor(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to compute feedback stats", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.service.Dashboard(ctx, requestcontext.Actor(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to compute dashboard stats", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{"request_id", requestcontext.RequestID(ctx), "error", err}
	if code := dErrors.CodeOf(err); code == dErrors.CodeInternal || code == dErrors.CodeTimeout {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
