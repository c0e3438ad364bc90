package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"civicdesk/internal/forms/metrics"
	"civicdesk/internal/forms/models"
	"civicdesk/internal/forms/schema"
	"civicdesk/internal/forms/validation"
	"civicdesk/internal/platform/config"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	platformvalidation "civicdesk/pkg/platform/validation"
	"civicdesk/pkg/platform/sentinel"
	"civicdesk/pkg/requestcontext"
)

// Store is the persistence port for forms and their responses.
type Store interface {
	Create(ctx context.Context, form *models.Form) error
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id domain.FormID) error
	FindByID(ctx context.Context, id domain.FormID) (*models.Form, error)
	List(ctx context.Context, filter models.Filter) ([]*models.FormSummary, error)
	AppendResponse(ctx context.Context, resp *models.Response) error
	ListResponses(ctx context.Context, formID domain.FormID) ([]*models.Response, error)
	CountResponses(ctx context.Context, formID domain.FormID) (int, error)
}

const (
	maxTitleLength  = 255
	maxFields       = 200
	defaultPageSize = 50
	maxPageSize     = 200
)

// Service owns form definitions and response intake.
type Service struct {
	store     Store
	validator *validation.Validator
	anonymous config.AnonymousPolicy
	logger    *slog.Logger
	metrics   *metrics.Metrics
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

// WithAnonymousPolicy overrides the default anonymous-submission policy.
func WithAnonymousPolicy(p config.AnonymousPolicy) Option {
	return func(s *Service) {
		s.anonymous = p
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		anonymous: config.DefaultAnonymousPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator = validation.New(s.anonymous)
	return s
}

// CreateForm defines a new form owned by actor.
func (s *Service) CreateForm(ctx context.Context, actor domain.Actor, in models.FormInput) (*models.Form, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	sc, err := buildSchema(in)
	if err != nil {
		return nil, err
	}

	form, err := models.NewForm(domain.NewFormID(), actor.ID, in.Title, in.Description,
		in.Category, sc, boolOr(in.IsPublic, true), boolOr(in.IsActive, true), requestcontext.Now(ctx))
	if err != nil {
		return nil, invariantToValidation(err)
	}
	if err := s.store.Create(ctx, form); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create form")
	}

	s.logAudit(ctx, "form_created", "form_id", form.ID.String(), "actor_id", actor.ID.String(), "fields", sc.Len())
	s.incrementFormsCreated()
	return form, nil
}

// UpdateForm replaces the owner-editable attributes. Stored responses are
// not revalidated.
func (s *Service) UpdateForm(ctx context.Context, actor domain.Actor, id domain.FormID, in models.FormInput) (*models.Form, error) {
	form, err := s.ownedForm(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	sc, err := buildSchema(in)
	if err != nil {
		return nil, err
	}

	updated, err := models.NewForm(form.ID, form.OwnerID, in.Title, in.Description, in.Category, sc,
		boolOr(in.IsPublic, form.IsPublic), boolOr(in.IsActive, form.IsActive), form.CreatedAt)
	if err != nil {
		return nil, invariantToValidation(err)
	}
	updated.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, updated); err != nil {
		return nil, wrapFormErr(err, "failed to update form")
	}
	s.logAudit(ctx, "form_updated", "form_id", id.String(), "actor_id", actor.ID.String())
	return updated, nil
}

// DeleteForm removes the form and every response to it.
func (s *Service) DeleteForm(ctx context.Context, actor domain.Actor, id domain.FormID) error {
	if _, err := s.ownedForm(ctx, actor, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return wrapFormErr(err, "failed to delete form")
	}
	s.logAudit(ctx, "form_deleted", "form_id", id.String(), "actor_id", actor.ID.String())
	return nil
}

// GetForm returns an open form to anyone and a closed form only to its owner.
func (s *Service) GetForm(ctx context.Context, actor domain.Actor, id domain.FormID) (*models.Form, error) {
	form, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFormErr(err, "failed to load form")
	}
	if !form.IsOpen() && !form.OwnedBy(actor) {
		return nil, dErrors.New(dErrors.CodeNotFound, "form not found")
	}
	return form, nil
}

// ListPublic lists public, active forms.
func (s *Service) ListPublic(ctx context.Context, filter models.Filter) ([]*models.FormSummary, error) {
	filter.OwnerID = domain.UserID{}
	filter.PublicOnly = true
	filter.ActiveOnly = true
	return s.list(ctx, filter)
}

// ListMine lists every form owned by actor.
func (s *Service) ListMine(ctx context.Context, actor domain.Actor, filter models.Filter) ([]*models.FormSummary, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	filter.OwnerID = actor.ID
	return s.list(ctx, filter)
}

func (s *Service) list(ctx context.Context, filter models.Filter) ([]*models.FormSummary, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidChoice, "unknown form category")
	}
	filter.Limit = clampLimit(filter.Limit)
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	forms, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list forms")
	}
	return forms, nil
}

// DuplicateForm copies a form the actor owns as an inactive draft.
func (s *Service) DuplicateForm(ctx context.Context, actor domain.Actor, id domain.FormID) (*models.Form, error) {
	form, err := s.ownedForm(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	dup := form.Duplicate(domain.NewFormID(), actor.ID, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, dup); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to duplicate form")
	}
	s.logAudit(ctx, "form_duplicated", "form_id", dup.ID.String(), "source_form_id", id.String(), "actor_id", actor.ID.String())
	s.incrementFormsCreated()
	return dup, nil
}

// Submit validates answers against the form's schema and stores the response.
// Inactive forms accept nothing; private forms accept only their owner.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, id domain.FormID, in models.SubmitInput) (*models.Response, error) {
	start := time.Now()
	defer s.observeSubmit(start)

	form, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFormErr(err, "failed to load form")
	}
	if !form.IsPublic && !form.OwnedBy(actor) {
		return nil, dErrors.New(dErrors.CodeNotFound, "form not found")
	}
	if !form.IsActive {
		return nil, dErrors.New(dErrors.CodeValidation, "form is not accepting responses")
	}

	name, email, err := s.submitter(in)
	if err != nil {
		s.incrementRejected(err)
		return nil, err
	}

	mode := validation.ModeNormal
	if in.Anonymous {
		mode = validation.ModeAnonymous
	}
	result, err := s.validator.Validate(form.Schema, in.Answers, mode)
	if err != nil {
		s.incrementRejected(err)
		return nil, err
	}
	if err := result.Err(); err != nil {
		s.incrementRejected(err)
		if s.logger != nil {
			s.logger.InfoContext(ctx, "form response rejected",
				"form_id", id.String(),
				"fields", result.Errors.Keys(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return nil, err
	}

	resp := &models.Response{
		ID:                domain.NewResponseID(),
		FormID:            form.ID,
		Answers:           result.Answers,
		SubmitterName:     name,
		SubmitterEmail:    email,
		SubmittedAt:       requestcontext.Now(ctx),
		SourceIP:          requestcontext.ClientIP(ctx),
		SchemaFingerprint: form.Schema.Fingerprint(),
	}
	if err := s.store.AppendResponse(ctx, resp); err != nil {
		return nil, wrapFormErr(err, "failed to store response")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "form response stored",
			"form_id", id.String(),
			"response_id", resp.ID.String(),
			"anonymous", in.Anonymous,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementResponsesSubmitted()
	}
	return resp, nil
}

func (s *Service) submitter(in models.SubmitInput) (string, string, error) {
	name := strings.TrimSpace(in.SubmitterName)
	email := strings.TrimSpace(in.SubmitterEmail)
	if in.Anonymous {
		if name == "" {
			name = s.anonymous.Placeholder
		}
		if email != "" && !platformvalidation.IsEmail(email) {
			email = ""
		}
		return name, email, nil
	}

	fields := dErrors.FieldErrors{}
	if name == "" {
		fields.Add("submitter_name", dErrors.CodeRequired, "submitter name is required")
	} else if len(name) > maxTitleLength {
		fields.Add("submitter_name", dErrors.CodeValidation, "submitter name is too long")
	}
	if email != "" && !platformvalidation.IsEmail(email) {
		fields.Add("submitter_email", dErrors.CodeInvalidFormat, "enter a valid email address")
	}
	if len(fields) > 0 {
		return "", "", dErrors.NewFieldErrors("invalid submitter", fields)
	}
	return name, email, nil
}

// ListResponses returns the form's responses, newest first. Owner only.
func (s *Service) ListResponses(ctx context.Context, actor domain.Actor, id domain.FormID) ([]*models.Response, error) {
	if _, err := s.ownedForm(ctx, actor, id); err != nil {
		return nil, err
	}
	responses, err := s.store.ListResponses(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list responses")
	}
	return responses, nil
}

// Export returns the form title and every response. Owner only.
func (s *Service) Export(ctx context.Context, actor domain.Actor, id domain.FormID) (*models.Export, error) {
	form, err := s.ownedForm(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	responses, err := s.store.ListResponses(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list responses")
	}

	out := &models.Export{FormTitle: form.Title, Responses: make([]models.ExportedAnswer, 0, len(responses))}
	for _, r := range responses {
		out.Responses = append(out.Responses, models.ExportedAnswer{
			SubmitterName:  r.SubmitterName,
			SubmitterEmail: r.SubmitterEmail,
			SubmittedAt:    r.SubmittedAt,
			Answers:        r.Answers,
		})
	}
	s.logAudit(ctx, "form_responses_exported", "form_id", id.String(), "actor_id", actor.ID.String(), "count", len(out.Responses))
	return out, nil
}

// ownedForm loads a form and hides it from anyone but its owner.
func (s *Service) ownedForm(ctx context.Context, actor domain.Actor, id domain.FormID) (*models.Form, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	form, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapFormErr(err, "failed to load form")
	}
	if !form.OwnedBy(actor) {
		if form.IsOpen() {
			return nil, dErrors.New(dErrors.CodeForbidden, "only the form owner can do this")
		}
		return nil, dErrors.New(dErrors.CodeNotFound, "form not found")
	}
	return form, nil
}

func buildSchema(in models.FormInput) (schema.Schema, error) {
	fields := dErrors.FieldErrors{}
	if len(strings.TrimSpace(in.Title)) > maxTitleLength {
		fields.Add("title", dErrors.CodeValidation, "title must be 255 characters or less")
	}
	if len(in.Fields) == 0 {
		fields.Add("fields", dErrors.CodeRequired, "at least one field is required")
	} else if len(in.Fields) > maxFields {
		fields.Add("fields", dErrors.CodeValidation, "too many fields")
	}
	if len(fields) > 0 {
		return schema.Schema{}, dErrors.NewFieldErrors("invalid form", fields)
	}
	return schema.New(in.Fields)
}

func invariantToValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return err
}

func wrapFormErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "form not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}

func (s *Service) incrementFormsCreated() {
	if s.metrics != nil {
		s.metrics.IncrementFormsCreated()
	}
}

func (s *Service) incrementRejected(err error) {
	if s.metrics != nil {
		s.metrics.IncrementResponsesRejected(string(dErrors.CodeOf(err)))
	}
}

func (s *Service) observeSubmit(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSubmit(start)
	}
}
