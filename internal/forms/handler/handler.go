package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"civicdesk/internal/forms/models"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/platform/httputil"
	"civicdesk/pkg/platform/middleware/auth"
	"civicdesk/pkg/requestcontext"
)

// Service defines the form operations the handler exposes.
type Service interface {
	CreateForm(ctx context.Context, actor domain.Actor, in models.FormInput) (*models.Form, error)
	UpdateForm(ctx context.Context, actor domain.Actor, id domain.FormID, in models.FormInput) (*models.Form, error)
	DeleteForm(ctx context.Context, actor domain.Actor, id domain.FormID) error
	GetForm(ctx context.Context, actor domain.Actor, id domain.FormID) (*models.Form, error)
	ListPublic(ctx context.Context, filter models.Filter) ([]*models.FormSummary, error)
	ListMine(ctx context.Context, actor domain.Actor, filter models.Filter) ([]*models.FormSummary, error)
	DuplicateForm(ctx context.Context, actor domain.Actor, id domain.FormID) (*models.Form, error)
	Submit(ctx context.Context, actor domain.Actor, id domain.FormID, in models.SubmitInput) (*models.Response, error)
	ListResponses(ctx context.Context, actor domain.Actor, id domain.FormID) ([]*models.Response, error)
	Export(ctx context.Context, actor domain.Actor, id domain.FormID) (*models.Export, error)
}

// Handler serves the /forms routes.
type Handler struct {
	service     Service
	logger      *slog.Logger
	submitGuard func(http.Handler) http.Handler
}

// New creates a forms Handler. submitGuard wraps the public submission
// route and may be nil.
func New(service Service, logger *slog.Logger, submitGuard func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:     service,
		logger:      logger,
		submitGuard: submitGuard,
	}
}

// Register mounts the routes. The router is expected to run OptionalAuth.
func (h *Handler) Register(r chi.Router) {
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", h.handleListPublic)
		r.Get("/{id}", h.handleGet)
		r.Group(func(r chi.Router) {
			if h.submitGuard != nil {
				r.Use(h.submitGuard)
			}
			r.Post("/{id}/responses", h.handleSubmit)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireActor(h.logger))
			r.Post("/", h.handleCreate)
			r.Get("/mine", h.handleListMine)
			r.Put("/{id}", h.handleUpdate)
			r.Delete("/{id}", h.handleDelete)
			r.Post("/{id}/duplicate", h.handleDuplicate)
			r.Get("/{id}/responses", h.handleListResponses)
			r.Get("/{id}/export", h.handleExport)
		})
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[FormRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	form, err := h.service.CreateForm(ctx, requestcontext.Actor(ctx), req.Input())
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create form", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, form)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.formID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FormRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	form, err := h.service.UpdateForm(ctx, requestcontext.Actor(ctx), id, req.Input())
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update form", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, form)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.formID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteForm(ctx, requestcontext.Actor(ctx), id); err != nil {
		h.writeServiceError(ctx, w, "failed to delete form", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.formID(w, r)
	if !ok {
		return
	}
	form, err := h.service.GetForm(ctx, requestcontext.Actor(ctx), id)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get form", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, form)
}

func (h *Handler) handleListPublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}
	forms, err := h.service.ListPublic(ctx, filter)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list forms", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Forms: forms, Count: len(forms)})
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}
	forms, err := h.service.ListMine(ctx, requestcontext.Actor(ctx), filter)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list forms", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Forms: forms, Count: len(forms)})
}

func (h *Handler) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.formID(w, r)
	if !ok {
		return
	}
	form, err := h.service.DuplicateForm(ctx, requestcontext.Actor(ctx), id)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to duplicate form", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, form)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.formID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	resp, err := h.service.Submit(ctx, requestcontext.Actor(ctx), id, req.Input())
	if err != nil {
		h.writeServiceError(ctx, w, "failed to submit response", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleListResponses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.formID(w, r)
	if !ok {
		return
	}
	responses, err := h.service.ListResponses(ctx, requestcontext.Actor(ctx), id)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list responses", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, responsesResponse{Responses: responses, Count: len(responses)})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.formID(w, r)
	if !ok {
		return
	}
	export, err := h.service.Export(ctx, requestcontext.Actor(ctx), id)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to export responses", err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="form_responses_%s.json"`, id))
	httputil.WriteJSON(w, http.StatusOK, export)
}

type listResponse struct {
	Forms []*models.FormSummary `json:"forms"`
	Count int                   `json:"count"`
}

type responsesResponse struct {
	Responses []*models.Response `json:"responses"`
	Count     int                `json:"count"`
}

func (h *Handler) formID(w http.ResponseWriter, r *http.Request) (domain.FormID, bool) {
	id, err := domain.ParseFormID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.FormID{}, false
	}
	return id, true
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) (models.Filter, bool) {
	q := r.URL.Query()
	filter := models.Filter{
		Category: models.Category(strings.ToLower(strings.TrimSpace(q.Get("category")))),
		Search:   strings.TrimSpace(q.Get("search")),
	}
	var err error
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be an integer"))
		return models.Filter{}, false
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "offset must be an integer"))
		return models.Filter{}, false
	}
	return filter, true
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{"request_id", requestcontext.RequestID(ctx), "error", err}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
