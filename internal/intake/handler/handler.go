package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"civicdesk/internal/intake/models"
	"civicdesk/internal/intake/workflow"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/platform/httputil"
	"civicdesk/pkg/platform/middleware/auth"
	"civicdesk/pkg/requestcontext"
)

// Service defines the intake operations the handler exposes.
type Service interface {
	CreateEntity(ctx context.Context, actor domain.Actor, in models.EntityProfile) (*models.EntityReceipt, error)
	GetEntity(ctx context.Context, actor domain.Actor, id domain.EntityID) (*models.EntityProfile, error)
	ListEntities(ctx context.Context, actor domain.Actor, filter models.EntityFilter) ([]*models.EntityProfile, error)
	DeleteEntity(ctx context.Context, actor domain.Actor, id domain.EntityID) error
	ApproveEntity(ctx context.Context, actor domain.Actor, id domain.EntityID) (*models.EntityProfile, error)
	RejectEntity(ctx context.Context, actor domain.Actor, id domain.EntityID) (*models.EntityProfile, error)

	CreateFeedback(ctx context.Context, in models.FeedbackReport) (*models.FeedbackReceipt, error)
	GetFeedback(ctx context.Context, actor domain.Actor, id domain.FeedbackID) (*models.FeedbackReport, error)
	ListFeedback(ctx context.Context, actor domain.Actor, filter models.FeedbackFilter) ([]*models.FeedbackReport, error)
	DeleteFeedback(ctx context.Context, actor domain.Actor, id domain.FeedbackID) error
	AssignFeedback(ctx context.Context, actor domain.Actor, id domain.FeedbackID, target domain.UserID) (*models.FeedbackReport, error)
	ResolveFeedback(ctx context.Context, actor domain.Actor, id domain.FeedbackID, resolution string) (*models.FeedbackReport, error)
	AddNote(ctx context.Context, actor domain.Actor, id domain.FeedbackID, note string) (*models.FeedbackReport, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id domain.FeedbackID, status string) (*models.FeedbackReport, error)

	ListSubmissions(ctx context.Context, actor domain.Actor, filter models.SubmissionFilter) ([]*models.Submission, error)
	LookupSubmission(ctx context.Context, actor domain.Actor, ref string) (*models.Submission, error)
}

// Handler serves /entities, /feedback and /submissions.
type Handler struct {
	service     Service
	logger      *slog.Logger
	submitGuard func(http.Handler) http.Handler
}

// New creates an intake Handler. submitGuard wraps the public feedback
// route and may be nil.
func New(service Service, logger *slog.Logger, submitGuard func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:     service,
		logger:      logger,
		submitGuard: submitGuard,
	}
}

// Register mounts the routes. Paths are registered flat so other handlers
// can add siblings such as /entities/stats on the same router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.submitGuard != nil {
			r.Use(h.submitGuard)
		}
		r.Post("/feedback", h.handleCreateFeedback)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireActor(h.logger))
		r.Post("/entities", h.handleCreateEntity)
		r.Get("/entities", h.handleListEntities)
		r.Get("/entities/{id}", h.handleGetEntity)
		r.Get("/feedback", h.handleListFeedback)
		r.Get("/feedback/{id}", h.handleGetFeedback)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireElevated(h.logger))
			r.Delete("/entities/{id}", h.handleDeleteEntity)
			r.Post("/entities/{id}/approve", h.handleApprove)
			r.Post("/entities/{id}/reject", h.handleReject)
			r.Delete("/feedback/{id}", h.handleDeleteFeedback)
			r.Post("/feedback/{id}/assign", h.handleAssign)
			r.Post("/feedback/{id}/resolve", h.handleResolve)
			r.Post("/feedback/{id}/notes", h.handleAddNote)
			r.Post("/feedback/{id}/status", h.handleUpdateStatus)
			r.Get("/submissions", h.handleListSubmissions)
			r.Get("/submissions/{reference}", h.handleLookupSubmission)
		})
	})
}

func (h *Handler) handleCreateEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EntityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	receipt, err := h.service.CreateEntity(ctx, requestcontext.Actor(ctx), req.Profile())
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create entity", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, domain.ParseEntityID)
	if !ok {
		return
	}
	e, err := h.service.GetEntity(ctx, requestcontext.Actor(ctx), id)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get entity", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleListEntities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := models.EntityFilter{
		EntityType:  models.EntityType(lowerParam(q.Get("entity_type"))),
		Governorate: models.Governorate(lowerParam(q.Get("governorate"))),
		Search:      strings.TrimSpace(q.Get("search")),
	}
	if v := strings.TrimSpace(q.Get("is_approved")); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "is_approved must be true or false"))
			return
		}
		filter.Approved = &approved
	}
	var ok bool
	if filter.Limit, filter.Offset, ok = page(w, r); !ok {
		return
	}

	entities, err := h.service.ListEntities(ctx, requestcontext.Actor(ctx), filter)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list entities", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entityListResponse{Entities: entities, Count: len(entities)})
}

func (h *Handler) handleDeleteEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, domain.ParseEntityID)
	if !ok {
		return
	}
	if err := h.service.DeleteEntity(ctx, requestcontext.Actor(ctx), id); err != nil {
		h.writeServiceError(ctx, w, "failed to delete entity", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.ApproveEntity, "failed to approve entity")
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.RejectEntity, "failed to reject entity")
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request, fn func(context.Context, domain.Actor, domain.EntityID) (*models.EntityProfile, error), msg string) {
	ctx := r.Context()
	id, ok := pathID(w, r, domain.ParseEntityID)
	if !ok {
		return
	}
	e, err := fn(ctx, requestcontext.Actor(ctx), id)
	if err != nil {
		h.writeServiceError(ctx, w, msg, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[FeedbackRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	receipt, err := h.service.CreateFeedback(ctx, req.Report())
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create feedback", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) handleGetFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, domain.ParseFeedbackID)
	if !ok {
		return
	}
	f, err := h.service.GetFeedback(ctx, requestcontext.Actor(ctx), id)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get feedback", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := models.FeedbackFilter{
		FeedbackType: models.FeedbackType(lowerParam(q.Get("feedback_type"))),
		Status:       workflow.FeedbackStatus(lowerParam(q.Get("status"))),
		Priority:     models.Priority(lowerParam(q.Get("priority"))),
		Governorate:  lowerParam(q.Get("governorate")),
		Search:       strings.TrimSpace(q.Get("search")),
	}
	var ok bool
	if filter.Limit, filter.Offset, ok = page(w, r); !ok {
		return
	}

	reports, err := h.service.ListFeedback(ctx, requestcontext.Actor(ctx), filter)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list feedback", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, feedbackListResponse{Feedback: reports, Count: len(reports)})
}

func (h *Handler) handleDeleteFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, domain.ParseFeedbackID)
	if !ok {
		return
	}
	if err := h.service.DeleteFeedback(ctx, requestcontext.Actor(ctx), id); err != nil {
		h.writeServiceError(ctx, w, "failed to delete feedback", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, domain.ParseFeedbackID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AssignRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	f, err := h.service.AssignFeedback(ctx, requestcontext.Actor(ctx), id, req.AssignedTo)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to assign feedback", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, domain.ParseFeedbackID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ResolveRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	f, err := h.service.ResolveFeedback(ctx, requestcontext.Actor(ctx), id, req.Resolution)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to resolve feedback", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) handleAddNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, domain.ParseFeedbackID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[NoteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	f, err := h.service.AddNote(ctx, requestcontext.Actor(ctx), id, req.Note)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to add note", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, domain.ParseFeedbackID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[StatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	f, err := h.service.UpdateStatus(ctx, requestcontext.Actor(ctx), id, req.Status)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := models.SubmissionFilter{
		Type:   models.SubmissionType(lowerParam(q.Get("submission_type"))),
		Search: strings.TrimSpace(q.Get("search")),
	}
	var ok bool
	if filter.Limit, filter.Offset, ok = page(w, r); !ok {
		return
	}

	subs, err := h.service.ListSubmissions(ctx, requestcontext.Actor(ctx), filter)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list submissions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, submissionListResponse{Submissions: subs, Count: len(subs)})
}

func (h *Handler) handleLookupSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, err := h.service.LookupSubmission(ctx, requestcontext.Actor(ctx), chi.URLParam(r, "reference"))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to look up submission", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sub)
}

type entityListResponse struct {
	Entities []*models.EntityProfile `json:"entities"`
	Count    int                     `json:"count"`
}

type feedbackListResponse struct {
	Feedback []*models.FeedbackReport `json:"feedback"`
	Count    int                      `json:"count"`
}

type submissionListResponse struct {
	Submissions []*models.Submission `json:"submissions"`
	Count       int                  `json:"count"`
}

func pathID[T any](w http.ResponseWriter, r *http.Request, parse func(string) (T, error)) (T, bool) {
	id, err := parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		var zero T
		return zero, false
	}
	return id, true
}

func page(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	q := r.URL.Query()
	var err error
	if limit, err = intParam(q.Get("limit")); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be an integer"))
		return 0, 0, false
	}
	if offset, err = intParam(q.Get("offset")); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "offset must be an integer"))
		return 0, 0, false
	}
	return limit, offset, true
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func lowerParam(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{"request_id", requestcontext.RequestID(ctx), "error", err}
	if code := dErrors.CodeOf(err); code == dErrors.CodeInternal || code == dErrors.CodeReferenceExhausted {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
