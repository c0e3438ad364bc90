package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"civicdesk/internal/intake/metrics"
	"civicdesk/internal/intake/models"
	"civicdesk/internal/intake/reference"
	"civicdesk/internal/intake/workflow"
	"civicdesk/internal/platform/config"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/platform/sentinel"
	"civicdesk/pkg/requestcontext"
)

// Store is the persistence port for entities, feedback and the submission
// ledger. Methods called inside RunInTx share its transaction.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateEntity(ctx context.Context, e *models.EntityProfile) error
	CreateFeedback(ctx context.Context, f *models.FeedbackReport) error
	InsertSubmission(ctx context.Context, sub *models.Submission) error

	FindEntity(ctx context.Context, id domain.EntityID) (*models.EntityProfile, error)
	FindEntityForUpdate(ctx context.Context, id domain.EntityID) (*models.EntityProfile, error)
	FindFeedback(ctx context.Context, id domain.FeedbackID) (*models.FeedbackReport, error)
	FindFeedbackForUpdate(ctx context.Context, id domain.FeedbackID) (*models.FeedbackReport, error)
	UpdateEntity(ctx context.Context, e *models.EntityProfile) error
	UpdateFeedback(ctx context.Context, f *models.FeedbackReport) error
	MarkProcessed(ctx context.Context, ref models.RecordRef, by domain.UserID, at time.Time) error
	DeleteEntity(ctx context.Context, id domain.EntityID) error
	DeleteFeedback(ctx context.Context, id domain.FeedbackID) error

	ListEntities(ctx context.Context, filter models.EntityFilter) ([]*models.EntityProfile, error)
	ListFeedback(ctx context.Context, filter models.FeedbackFilter) ([]*models.FeedbackReport, error)
	ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]*models.Submission, error)
	FindSubmissionByReference(ctx context.Context, ref string) (*models.Submission, error)
}

// UserDirectory answers whether an assignment target exists.
type UserDirectory interface {
	Exists(ctx context.Context, id domain.UserID) (bool, error)
}

const (
	maxReferenceAttempts = 5
	defaultPageSize      = 50
	maxPageSize          = 200
)

// Service runs intake and the staff review workflows.
type Service struct {
	store      Store
	directory  UserDirectory
	references reference.Generator
	anonymous  config.AnonymousPolicy
	resolution config.ResolutionPolicy
	logger     *slog.Logger
	metrics    *metrics.Metrics
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

func WithAnonymousPolicy(p config.AnonymousPolicy) Option {
	return func(s *Service) {
		s.anonymous = p
	}
}

func WithResolutionPolicy(p config.ResolutionPolicy) Option {
	return func(s *Service) {
		s.resolution = p
	}
}

// WithReferenceGenerator replaces the crypto/rand generator, mostly for tests.
func WithReferenceGenerator(g reference.Generator) Option {
	return func(s *Service) {
		s.references = g
	}
}

func New(store Store, directory UserDirectory, opts ...Option) *Service {
	s := &Service{
		store:      store,
		directory:  directory,
		references: reference.NewRandomGenerator(),
		anonymous:  config.DefaultAnonymousPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEntity stores a registration profile and its ledger entry in one
// transaction. The profile starts pending review.
func (s *Service) CreateEntity(ctx context.Context, actor domain.Actor, in models.EntityProfile) (*models.EntityReceipt, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if err := checkEntityChoices(&in); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	entity := in
	entity.ID = domain.NewEntityID()
	entity.SubmittedBy = actor.ID
	entity.IsApproved = false
	entity.ApprovedBy = nil
	entity.ApprovalDate = nil
	entity.CreatedAt = now
	entity.UpdatedAt = now

	var sub *models.Submission
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateEntity(ctx, &entity); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store entity")
		}
		var err error
		sub, err = s.insertWithReference(ctx, func(ref string) *models.Submission {
			return models.NewEntitySubmission(domain.NewSubmissionID(), ref, &entity)
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, "entity_submitted",
		"entity_id", entity.ID.String(),
		"reference_number", sub.ReferenceNumber,
		"actor_id", actor.ID.String(),
	)
	s.incrementSubmissions(models.SubmissionEntity)
	return &models.EntityReceipt{Entity: &entity, Submission: sub}, nil
}

// CreateFeedback stores a citizen report and its ledger entry. Anyone may
// submit; anonymous reports drop every identity field.
func (s *Service) CreateFeedback(ctx context.Context, in models.FeedbackReport) (*models.FeedbackReceipt, error) {
	if err := checkFeedbackChoices(&in); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	report := in
	report.ID = domain.NewFeedbackID()
	if report.Priority == "" {
		report.Priority = models.PriorityMedium
	}
	report.Status = workflow.StatusPending
	report.AssignedTo = nil
	report.AdminNotes = ""
	report.Resolution = ""
	report.ResolvedBy = nil
	report.ResolvedAt = nil
	report.CreatedAt = now
	report.UpdatedAt = now
	if report.IsAnonymous {
		report.Anonymize(s.anonymous.Placeholder)
	} else if err := checkCitizen(&report); err != nil {
		return nil, err
	}

	var sub *models.Submission
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateFeedback(ctx, &report); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store feedback")
		}
		var err error
		sub, err = s.insertWithReference(ctx, func(ref string) *models.Submission {
			return models.NewFeedbackSubmission(domain.NewSubmissionID(), ref, &report)
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, "feedback_submitted",
		"feedback_id", report.ID.String(),
		"reference_number", sub.ReferenceNumber,
		"anonymous", report.IsAnonymous,
	)
	s.incrementSubmissions(models.SubmissionFeedback)
	return &models.FeedbackReceipt{Feedback: &report, Submission: sub}, nil
}

// insertWithReference draws reference numbers until one is free, giving up
// after maxReferenceAttempts collisions.
func (s *Service) insertWithReference(ctx context.Context, build func(ref string) *models.Submission) (*models.Submission, error) {
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		ref, err := s.references.Next()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate reference number")
		}
		sub := build(ref)
		err = s.store.InsertSubmission(ctx, sub)
		if err == nil {
			return sub, nil
		}
		if !errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record submission")
		}
		if s.metrics != nil {
			s.metrics.IncrementReferenceCollisions()
		}
		if s.logger != nil {
			s.logger.WarnContext(ctx, "reference number collision",
				"attempt", attempt,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementReferenceExhausted()
	}
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "reference numbers exhausted",
			"attempts", maxReferenceAttempts,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return nil, dErrors.New(dErrors.CodeReferenceExhausted, "could not allocate a unique reference number")
}

// GetEntity returns one profile.
func (s *Service) GetEntity(ctx context.Context, actor domain.Actor, id domain.EntityID) (*models.EntityProfile, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	e, err := s.store.FindEntity(ctx, id)
	if err != nil {
		return nil, translate(err, "entity not found", "failed to load entity")
	}
	return e, nil
}

func (s *Service) ListEntities(ctx context.Context, actor domain.Actor, filter models.EntityFilter) ([]*models.EntityProfile, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if filter.EntityType != "" && !filter.EntityType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidChoice, "unknown entity type")
	}
	if filter.Governorate != "" && !filter.Governorate.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidChoice, "unknown governorate")
	}
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)
	out, err := s.store.ListEntities(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list entities")
	}
	return out, nil
}

// DeleteEntity removes a profile and its ledger entry. Staff only.
func (s *Service) DeleteEntity(ctx context.Context, actor domain.Actor, id domain.EntityID) error {
	if err := requireElevated(actor); err != nil {
		return err
	}
	if err := s.store.DeleteEntity(ctx, id); err != nil {
		return translate(err, "entity not found", "failed to delete entity")
	}
	s.logAudit(ctx, "entity_deleted", "entity_id", id.String(), "actor_id", actor.ID.String())
	return nil
}

// ApproveEntity marks a profile approved. Approving twice keeps the first
// approver.
func (s *Service) ApproveEntity(ctx context.Context, actor domain.Actor, id domain.EntityID) (*models.EntityProfile, error) {
	return s.reviewEntity(ctx, actor, id, workflow.ActionApprove)
}

// RejectEntity returns a profile to pending and clears the approval stamp.
func (s *Service) RejectEntity(ctx context.Context, actor domain.Actor, id domain.EntityID) (*models.EntityProfile, error) {
	return s.reviewEntity(ctx, actor, id, workflow.ActionReject)
}

func (s *Service) reviewEntity(ctx context.Context, actor domain.Actor, id domain.EntityID, action workflow.ApprovalAction) (*models.EntityProfile, error) {
	if err := requireElevated(actor); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	var out *models.EntityProfile
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		e, err := s.store.FindEntityForUpdate(ctx, id)
		if err != nil {
			return translate(err, "entity not found", "failed to load entity")
		}
		if action == workflow.ActionApprove && e.IsApproved {
			out = e
			return nil
		}
		if err := e.Review(action, actor.ID, now); err != nil {
			return err
		}
		if err := s.store.UpdateEntity(ctx, e); err != nil {
			return translate(err, "entity not found", "failed to update entity")
		}
		if err := s.markProcessed(ctx, models.EntityRef(id), actor.ID, now); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := "entity_approved"
	if action == workflow.ActionReject {
		event = "entity_rejected"
	}
	s.logAudit(ctx, event,
		"entity_id", id.String(),
		"actor_id", actor.ID.String(),
		"is_approved", out.IsApproved,
	)
	s.incrementTransition(string(action))
	return out, nil
}

// GetFeedback returns one report.
func (s *Service) GetFeedback(ctx context.Context, actor domain.Actor, id domain.FeedbackID) (*models.FeedbackReport, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	f, err := s.store.FindFeedback(ctx, id)
	if err != nil {
		return nil, translate(err, "feedback not found", "failed to load feedback")
	}
	return f, nil
}

func (s *Service) ListFeedback(ctx context.Context, actor domain.Actor, filter models.FeedbackFilter) ([]*models.FeedbackReport, error) {
	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if filter.FeedbackType != "" && !filter.FeedbackType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidChoice, "unknown feedback type")
	}
	if filter.Priority != "" && !filter.Priority.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidChoice, "unknown priority")
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidStatus, "unknown feedback status")
	}
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)
	out, err := s.store.ListFeedback(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list feedback")
	}
	return out, nil
}

// DeleteFeedback removes a report and its ledger entry. Staff only.
func (s *Service) DeleteFeedback(ctx context.Context, actor domain.Actor, id domain.FeedbackID) error {
	if err := requireElevated(actor); err != nil {
		return err
	}
	if err := s.store.DeleteFeedback(ctx, id); err != nil {
		return translate(err, "feedback not found", "failed to delete feedback")
	}
	s.logAudit(ctx, "feedback_deleted", "feedback_id", id.String(), "actor_id", actor.ID.String())
	return nil
}

// AssignFeedback hands a report to target and moves it to in_progress.
func (s *Service) AssignFeedback(ctx context.Context, actor domain.Actor, id domain.FeedbackID, target domain.UserID) (*models.FeedbackReport, error) {
	if err := requireElevated(actor); err != nil {
		return nil, err
	}
	exists, err := s.directory.Exists(ctx, target)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
	}

	f, err := s.transitionFeedback(ctx, actor, id, workflow.ActionAssign, func(f *models.FeedbackReport, now time.Time) error {
		return f.Assign(target, now)
	})
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, "feedback_assigned", "feedback_id", id.String(), "actor_id", actor.ID.String(), "assignee_id", target.String())
	return f, nil
}

// ResolveFeedback closes out a report with the given resolution text.
func (s *Service) ResolveFeedback(ctx context.Context, actor domain.Actor, id domain.FeedbackID, resolution string) (*models.FeedbackReport, error) {
	if err := requireElevated(actor); err != nil {
		return nil, err
	}
	resolution = strings.TrimSpace(resolution)
	if s.resolution.RequireText && resolution == "" {
		fields := dErrors.FieldErrors{}
		fields.Add("resolution", dErrors.CodeRequired, "resolution text is required")
		return nil, dErrors.NewFieldErrors("invalid resolution", fields)
	}

	f, err := s.transitionFeedback(ctx, actor, id, workflow.ActionResolve, func(f *models.FeedbackReport, now time.Time) error {
		return f.Resolve(actor.ID, resolution, now)
	})
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, "feedback_resolved", "feedback_id", id.String(), "actor_id", actor.ID.String())
	return f, nil
}

// AddNote appends a stamped line to the admin log without touching status.
func (s *Service) AddNote(ctx context.Context, actor domain.Actor, id domain.FeedbackID, note string) (*models.FeedbackReport, error) {
	if err := requireElevated(actor); err != nil {
		return nil, err
	}
	note = strings.TrimSpace(note)
	if note == "" {
		fields := dErrors.FieldErrors{}
		fields.Add("note", dErrors.CodeRequired, "note text is required")
		return nil, dErrors.NewFieldErrors("invalid note", fields)
	}
	// Notes keep each entry on one line.
	note = strings.Join(strings.Fields(note), " ")

	f, err := s.transitionFeedback(ctx, actor, id, workflow.ActionAddNote, func(f *models.FeedbackReport, now time.Time) error {
		return f.AddNote(actor.Label(), note, now)
	})
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, "feedback_note_added", "feedback_id", id.String(), "actor_id", actor.ID.String())
	return f, nil
}

// UpdateStatus moves a report to any of the four states.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, id domain.FeedbackID, status string) (*models.FeedbackReport, error) {
	if err := requireElevated(actor); err != nil {
		return nil, err
	}
	target, err := workflow.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	action, err := workflow.MarkAction(target)
	if err != nil {
		return nil, err
	}

	f, err := s.transitionFeedback(ctx, actor, id, action, func(f *models.FeedbackReport, now time.Time) error {
		return f.SetStatus(actor.ID, target, now)
	})
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, "feedback_status_changed", "feedback_id", id.String(), "actor_id", actor.ID.String(), "status", string(target))
	return f, nil
}

// transitionFeedback locks the report, applies fn and stamps the ledger in
// one transaction.
func (s *Service) transitionFeedback(ctx context.Context, actor domain.Actor, id domain.FeedbackID, action workflow.FeedbackAction, fn func(*models.FeedbackReport, time.Time) error) (*models.FeedbackReport, error) {
	now := requestcontext.Now(ctx)

	var out *models.FeedbackReport
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		f, err := s.store.FindFeedbackForUpdate(ctx, id)
		if err != nil {
			return translate(err, "feedback not found", "failed to load feedback")
		}
		if err := fn(f, now); err != nil {
			return err
		}
		if err := s.store.UpdateFeedback(ctx, f); err != nil {
			return translate(err, "feedback not found", "failed to update feedback")
		}
		if err := s.markProcessed(ctx, models.FeedbackRef(id), actor.ID, now); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.incrementTransition(string(action))
	return out, nil
}

// markProcessed tolerates records that predate the ledger.
func (s *Service) markProcessed(ctx context.Context, ref models.RecordRef, by domain.UserID, at time.Time) error {
	err := s.store.MarkProcessed(ctx, ref, by, at)
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "record has no ledger entry",
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return nil
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to stamp submission")
}

// ListSubmissions lists the ledger. Staff only.
func (s *Service) ListSubmissions(ctx context.Context, actor domain.Actor, filter models.SubmissionFilter) ([]*models.Submission, error) {
	if err := requireElevated(actor); err != nil {
		return nil, err
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidChoice, "unknown submission type")
	}
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)
	out, err := s.store.ListSubmissions(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list submissions")
	}
	return out, nil
}

// LookupSubmission finds a ledger entry by reference number. Staff only.
func (s *Service) LookupSubmission(ctx context.Context, actor domain.Actor, ref string) (*models.Submission, error) {
	if err := requireElevated(actor); err != nil {
		return nil, err
	}
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if !reference.IsWellFormed(ref) {
		return nil, dErrors.New(dErrors.CodeNotFound, "submission not found")
	}
	sub, err := s.store.FindSubmissionByReference(ctx, ref)
	if err != nil {
		return nil, translate(err, "submission not found", "failed to load submission")
	}
	return sub, nil
}

func requireElevated(actor domain.Actor) error {
	if !actor.IsAuthenticated() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if !actor.IsElevated() {
		return dErrors.New(dErrors.CodeForbidden, "staff privileges required")
	}
	return nil
}

func checkEntityChoices(e *models.EntityProfile) error {
	fields := dErrors.FieldErrors{}
	if !e.EntityType.IsValid() {
		fields.Add("entity_type", dErrors.CodeInvalidChoice, "unknown entity type")
	}
	if !e.Governorate.IsValid() {
		fields.Add("governorate", dErrors.CodeInvalidChoice, "unknown governorate")
	}
	if len(fields) > 0 {
		return dErrors.NewFieldErrors("invalid entity", fields)
	}
	return nil
}

func checkFeedbackChoices(f *models.FeedbackReport) error {
	fields := dErrors.FieldErrors{}
	if !f.FeedbackType.IsValid() {
		fields.Add("feedback_type", dErrors.CodeInvalidChoice, "unknown feedback type")
	}
	if f.Priority != "" && !f.Priority.IsValid() {
		fields.Add("priority", dErrors.CodeInvalidChoice, "unknown priority")
	}
	if f.Governorate != "" && !models.Governorate(f.Governorate).IsValid() {
		fields.Add("governorate", dErrors.CodeInvalidChoice, "unknown governorate")
	}
	if len(fields) > 0 {
		return dErrors.NewFieldErrors("invalid feedback", fields)
	}
	return nil
}

// checkCitizen requires the contact fields of a named report.
func checkCitizen(f *models.FeedbackReport) error {
	fields := dErrors.FieldErrors{}
	for name, v := range map[string]string{
		"citizen_name":    f.CitizenName,
		"citizen_phone":   f.CitizenPhone,
		"citizen_email":   f.CitizenEmail,
		"citizen_address": f.CitizenAddress,
	} {
		if strings.TrimSpace(v) == "" {
			fields.Add(name, dErrors.CodeRequired, "this field is required for non-anonymous feedback")
		}
	}
	if len(fields) > 0 {
		return dErrors.NewFieldErrors("missing contact details", fields)
	}
	return nil
}

// translate keeps domain errors and maps store sentinels.
func translate(err error, notFound, internal string) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFound)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internal)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *Service) incrementSubmissions(t models.SubmissionType) {
	if s.metrics != nil {
		s.metrics.IncrementSubmissionsCreated(string(t))
	}
}

func (s *Service) incrementTransition(action string) {
	if s.metrics != nil {
		s.metrics.IncrementTransition(action)
	}
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
