package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,UserDirectory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"civicdesk/internal/intake/models"
	"civicdesk/internal/intake/service/mocks"
	"civicdesk/internal/intake/store"
	"civicdesk/internal/intake/workflow"
	"civicdesk/internal/platform/config"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/platform/sentinel"
	"civicdesk/pkg/requestcontext"
	"civicdesk/pkg/testutil"
)

// sequenceGenerator hands out refs in order and repeats the last one.
type sequenceGenerator struct {
	refs  []string
	calls int
}

func (g *sequenceGenerator) Next() (string, error) {
	i := g.calls
	if i >= len(g.refs) {
		i = len(g.refs) - 1
	}
	g.calls++
	return g.refs[i], nil
}

type staticDirectory map[domain.UserID]bool

func (d staticDirectory) Exists(_ context.Context, id domain.UserID) (bool, error) {
	return d[id], nil
}

type ServiceSuite struct {
	suite.Suite
	store   *store.InMemoryStore
	refs    *sequenceGenerator
	service *Service
	citizen domain.Actor
	staff   domain.Actor
	now     time.Time
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewInMemoryStore()
	s.refs = &sequenceGenerator{refs: []string{"AAAAAAAAAA", "BBBBBBBBBB", "CCCCCCCCCC", "DDDDDDDDDD"}}
	s.citizen = testutil.NewActor("citizen")
	s.staff = testutil.NewStaff("staff")
	s.service = New(s.store, staticDirectory{s.staff.ID: true}, WithReferenceGenerator(s.refs))
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func entityInput() models.EntityProfile {
	return models.EntityProfile{
		EntityName:        "Ministry of Health",
		EntityType:        models.EntityMinistry,
		Governorate:       models.Baghdad,
		Address:           "Bab Al-Muadham",
		PhoneNumber:       "07701234567",
		Email:             "info@moh.gov.iq",
		ManagerName:       "Ali Hassan",
		ManagerPosition:   "Director General",
		ManagerPhone:      "07707654321",
		ManagerEmail:      "ali@moh.gov.iq",
		EstablishmentDate: "1920-01-01",
		EmployeeCount:     5000,
		AnnualBudget:      "250000000.00",
		ServicesProvided:  "public hospitals",
		TargetAudience:    "all citizens",
	}
}

func feedbackInput() models.FeedbackReport {
	return models.FeedbackReport{
		CitizenName:    "Sara Kareem",
		CitizenPhone:   "07711112222",
		CitizenEmail:   "sara@example.com",
		CitizenAddress: "Basra",
		CitizenID:      "199012345678",
		FeedbackType:   models.FeedbackComplaint,
		Title:          "Clinic closed",
		Description:    "The clinic was closed during working hours",
		RelatedEntity:  "Ministry of Health",
	}
}

func (s *ServiceSuite) createFeedback(mutate ...func(*models.FeedbackReport)) *models.FeedbackReceipt {
	in := feedbackInput()
	for _, m := range mutate {
		m(&in)
	}
	receipt, err := s.service.CreateFeedback(s.ctx, in)
	s.Require().NoError(err)
	return receipt
}

func (s *ServiceSuite) TestCreateEntity() {
	s.Run("records a pending profile and its ledger entry", func() {
		in := entityInput()
		in.IsApproved = true

		receipt, err := s.service.CreateEntity(s.ctx, s.citizen, in)
		s.Require().NoError(err)
		s.False(receipt.Entity.IsApproved)
		s.Nil(receipt.Entity.ApprovedBy)
		s.Equal(s.citizen.ID, receipt.Entity.SubmittedBy)
		s.Equal(s.now, receipt.Entity.CreatedAt)
		s.Equal("AAAAAAAAAA", receipt.Submission.ReferenceNumber)
		s.Equal(models.SubmissionEntity, receipt.Submission.Type)
		s.Equal("Ali Hassan", receipt.Submission.SubmitterName)
		s.Equal("ali@moh.gov.iq", receipt.Submission.SubmitterEmail)

		sub, err := s.service.LookupSubmission(s.ctx, s.staff, "aaaaaaaaaa")
		s.Require().NoError(err)
		s.Equal(receipt.Entity.ID, *sub.EntityID)
		s.False(sub.IsProcessed())
	})

	s.Run("requires an actor", func() {
		_, err := s.service.CreateEntity(s.ctx, domain.Actor{}, entityInput())
		s.Equal(dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})

	s.Run("rejects unknown choices", func() {
		in := entityInput()
		in.EntityType = "embassy"
		_, err := s.service.CreateEntity(s.ctx, s.citizen, in)
		s.Require().Error(err)
		s.Contains(dErrors.FieldErrorsOf(err), "entity_type")
	})
}

func (s *ServiceSuite) TestReferenceCollisionRetriesOnce() {
	s.createFeedback()
	s.Equal(1, s.refs.calls)

	// Rewind so the next draw collides with the stored reference.
	s.refs.refs = []string{"AAAAAAAAAA", "EEEEEEEEEE"}
	s.refs.calls = 0

	receipt := s.createFeedback()
	s.Equal("EEEEEEEEEE", receipt.Submission.ReferenceNumber)
	s.Equal(2, s.refs.calls)
}

func (s *ServiceSuite) TestReferenceExhaustionRollsBack() {
	s.createFeedback()
	s.refs.refs = []string{"AAAAAAAAAA"}
	s.refs.calls = 0

	_, err := s.service.CreateFeedback(s.ctx, feedbackInput())
	s.Require().Error(err)
	s.Equal(dErrors.CodeReferenceExhausted, dErrors.CodeOf(err))
	s.Equal(maxReferenceAttempts, s.refs.calls)

	all, err := s.service.ListFeedback(s.ctx, s.staff, models.FeedbackFilter{})
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *ServiceSuite) TestCreateFeedback() {
	s.Run("anonymous reports drop identity fields", func() {
		receipt := s.createFeedback(func(f *models.FeedbackReport) {
			f.IsAnonymous = true
			f.Status = workflow.StatusResolved
		})
		fb := receipt.Feedback
		s.Equal("Anonymous", fb.CitizenName)
		s.Empty(fb.CitizenPhone)
		s.Empty(fb.CitizenEmail)
		s.Empty(fb.CitizenAddress)
		s.Empty(fb.CitizenID)
		s.Equal(workflow.StatusPending, fb.Status)
		s.Equal(models.PriorityMedium, fb.Priority)
		s.Equal("Anonymous", receipt.Submission.SubmitterName)
		s.Empty(receipt.Submission.SubmitterEmail)
	})

	s.Run("named reports need contact details", func() {
		in := feedbackInput()
		in.CitizenPhone = ""
		in.CitizenAddress = "  "
		_, err := s.service.CreateFeedback(s.ctx, in)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		fields := dErrors.FieldErrorsOf(err)
		s.Contains(fields, "citizen_phone")
		s.Contains(fields, "citizen_address")
	})

	s.Run("keeps a requested priority", func() {
		receipt := s.createFeedback(func(f *models.FeedbackReport) { f.Priority = models.PriorityUrgent })
		s.Equal(models.PriorityUrgent, receipt.Feedback.Priority)
	})
}

func (s *ServiceSuite) TestEntityReview() {
	receipt, err := s.service.CreateEntity(s.ctx, s.citizen, entityInput())
	s.Require().NoError(err)
	id := receipt.Entity.ID

	s.Run("non-staff are refused", func() {
		_, err := s.service.ApproveEntity(s.ctx, s.citizen, id)
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("approve stamps the reviewer and the ledger", func() {
		e, err := s.service.ApproveEntity(s.ctx, s.staff, id)
		s.Require().NoError(err)
		s.True(e.IsApproved)
		s.Equal(s.staff.ID, *e.ApprovedBy)
		s.Equal(s.now, *e.ApprovalDate)

		sub, err := s.service.LookupSubmission(s.ctx, s.staff, receipt.Submission.ReferenceNumber)
		s.Require().NoError(err)
		s.Equal(s.staff.ID, *sub.ProcessedBy)
	})

	s.Run("approving again keeps the first approval", func() {
		other := testutil.NewStaff("second")
		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))
		e, err := s.service.ApproveEntity(later, other, id)
		s.Require().NoError(err)
		s.Equal(s.staff.ID, *e.ApprovedBy)
		s.Equal(s.now, *e.ApprovalDate)
	})

	s.Run("reject clears the approval", func() {
		e, err := s.service.RejectEntity(s.ctx, s.staff, id)
		s.Require().NoError(err)
		s.False(e.IsApproved)
		s.Nil(e.ApprovedBy)
		s.Nil(e.ApprovalDate)

		again, err := s.service.RejectEntity(s.ctx, s.staff, id)
		s.Require().NoError(err)
		s.False(again.IsApproved)
	})

	s.Run("missing entity is not found", func() {
		_, err := s.service.ApproveEntity(s.ctx, s.staff, domain.NewEntityID())
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestFeedbackWorkflow() {
	receipt := s.createFeedback(func(f *models.FeedbackReport) { f.IsAnonymous = true })
	id := receipt.Feedback.ID

	s.Run("assigning an unknown user fails", func() {
		_, err := s.service.AssignFeedback(s.ctx, s.staff, id, testutil.NewActor("ghost").ID)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("assign moves the report to in_progress", func() {
		f, err := s.service.AssignFeedback(s.ctx, s.staff, id, s.staff.ID)
		s.Require().NoError(err)
		s.Equal(workflow.StatusInProgress, f.Status)
		s.Equal(s.staff.ID, *f.AssignedTo)
	})

	s.Run("notes are stamped and leave status alone", func() {
		_, err := s.service.AddNote(s.ctx, s.staff, id, "called the clinic")
		s.Require().NoError(err)
		later := requestcontext.WithTime(s.ctx, s.now.Add(90*time.Minute))
		f, err := s.service.AddNote(later, s.staff, id, "follow up\ntomorrow")
		s.Require().NoError(err)
		s.Equal(workflow.StatusInProgress, f.Status)
		s.Equal([]string{
			"[2026-03-01 09:00] staff: called the clinic",
			"[2026-03-01 10:30] staff: follow up tomorrow",
		}, f.NoteLines())
	})

	s.Run("empty notes are rejected", func() {
		_, err := s.service.AddNote(s.ctx, s.staff, id, "   ")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown status is invalid_status", func() {
		_, err := s.service.UpdateStatus(s.ctx, s.staff, id, "archived")
		s.Equal(dErrors.CodeInvalidStatus, dErrors.CodeOf(err))
	})

	s.Run("entering resolved stamps the resolver", func() {
		f, err := s.service.UpdateStatus(s.ctx, s.staff, id, "resolved")
		s.Require().NoError(err)
		s.Equal(workflow.StatusResolved, f.Status)
		s.Equal(s.staff.ID, *f.ResolvedBy)
		s.Equal(s.now, *f.ResolvedAt)
	})

	s.Run("closing keeps the resolution stamp", func() {
		f, err := s.service.UpdateStatus(s.ctx, s.staff, id, "closed")
		s.Require().NoError(err)
		s.Equal(workflow.StatusClosed, f.Status)
		s.NotNil(f.ResolvedAt)
	})

	s.Run("ledger entry is stamped once", func() {
		sub, err := s.service.LookupSubmission(s.ctx, s.staff, receipt.Submission.ReferenceNumber)
		s.Require().NoError(err)
		s.Equal(s.now, *sub.ProcessedAt)
	})
}

func (s *ServiceSuite) TestResolve() {
	receipt := s.createFeedback()
	id := receipt.Feedback.ID

	s.Run("text is optional by default", func() {
		f, err := s.service.ResolveFeedback(s.ctx, s.staff, id, "")
		s.Require().NoError(err)
		s.Equal(workflow.StatusResolved, f.Status)
		s.Empty(f.Resolution)
	})

	s.Run("policy can require text", func() {
		strict := New(s.store, staticDirectory{}, WithResolutionPolicy(config.ResolutionPolicy{RequireText: true}))
		_, err := strict.ResolveFeedback(s.ctx, s.staff, id, " ")
		s.Require().Error(err)
		s.Contains(dErrors.FieldErrorsOf(err), "resolution")

		f, err := strict.ResolveFeedback(s.ctx, s.staff, id, "clinic reopened")
		s.Require().NoError(err)
		s.Equal("clinic reopened", f.Resolution)
	})
}

func (s *ServiceSuite) TestDeleteRemovesLedgerEntry() {
	receipt := s.createFeedback()

	err := s.service.DeleteFeedback(s.ctx, s.citizen, receipt.Feedback.ID)
	s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))

	s.Require().NoError(s.service.DeleteFeedback(s.ctx, s.staff, receipt.Feedback.ID))
	_, err = s.service.LookupSubmission(s.ctx, s.staff, receipt.Submission.ReferenceNumber)
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestListings() {
	s.createFeedback(func(f *models.FeedbackReport) { f.Title = "Water outage" })
	s.createFeedback(func(f *models.FeedbackReport) { f.FeedbackType = models.FeedbackSuggestion })

	s.Run("lists need an actor", func() {
		_, err := s.service.ListFeedback(s.ctx, domain.Actor{}, models.FeedbackFilter{})
		s.Equal(dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})

	s.Run("filters by type", func() {
		got, err := s.service.ListFeedback(s.ctx, s.citizen, models.FeedbackFilter{FeedbackType: models.FeedbackSuggestion})
		s.Require().NoError(err)
		s.Len(got, 1)
	})

	s.Run("unknown filter values are rejected", func() {
		_, err := s.service.ListFeedback(s.ctx, s.citizen, models.FeedbackFilter{Status: "archived"})
		s.Equal(dErrors.CodeInvalidStatus, dErrors.CodeOf(err))
		_, err = s.service.ListEntities(s.ctx, s.citizen, models.EntityFilter{Governorate: "atlantis"})
		s.Equal(dErrors.CodeInvalidChoice, dErrors.CodeOf(err))
	})

	s.Run("ledger is staff only", func() {
		_, err := s.service.ListSubmissions(s.ctx, s.citizen, models.SubmissionFilter{})
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))

		subs, err := s.service.ListSubmissions(s.ctx, s.staff, models.SubmissionFilter{Search: "water"})
		s.Require().NoError(err)
		s.Empty(subs)

		subs, err = s.service.ListSubmissions(s.ctx, s.staff, models.SubmissionFilter{Type: models.SubmissionFeedback})
		s.Require().NoError(err)
		s.Len(subs, 2)
	})
}

func TestStoreErrorsAreTranslated(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	directory := mocks.NewMockUserDirectory(ctrl)
	svc := New(mockStore, directory)
	ctx := context.Background()
	staff := testutil.NewStaff("staff")
	id := domain.NewFeedbackID()

	runInline := func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

	t.Run("store failure inside a transition maps to internal", func(t *testing.T) {
		mockStore.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
		mockStore.EXPECT().FindFeedbackForUpdate(gomock.Any(), id).Return(nil, errors.New("connection reset"))

		_, err := svc.UpdateStatus(ctx, staff, id, "closed")
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(err))
	})

	t.Run("missing ledger entry does not fail the transition", func(t *testing.T) {
		report := &models.FeedbackReport{ID: id, Status: workflow.StatusPending}
		mockStore.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
		mockStore.EXPECT().FindFeedbackForUpdate(gomock.Any(), id).Return(report, nil)
		mockStore.EXPECT().UpdateFeedback(gomock.Any(), report).Return(nil)
		mockStore.EXPECT().MarkProcessed(gomock.Any(), models.FeedbackRef(id), staff.ID, gomock.Any()).Return(sentinel.ErrNotFound)

		f, err := svc.UpdateStatus(ctx, staff, id, "in_progress")
		require.NoError(t, err)
		assert.Equal(t, workflow.StatusInProgress, f.Status)
	})

	t.Run("directory failure maps to internal", func(t *testing.T) {
		target := testutil.NewActor("clerk").ID
		directory.EXPECT().Exists(gomock.Any(), target).Return(false, errors.New("timeout"))

		_, err := svc.AssignFeedback(ctx, staff, id, target)
		assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(err))
	})

	t.Run("non-conflict insert errors stop the reference loop", func(t *testing.T) {
		mockStore.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
		mockStore.EXPECT().CreateFeedback(gomock.Any(), gomock.Any()).Return(nil)
		mockStore.EXPECT().InsertSubmission(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(1)

		in := feedbackInput()
		_, err := svc.CreateFeedback(ctx, in)
		assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(err))
	})
}
