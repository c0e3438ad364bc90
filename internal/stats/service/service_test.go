package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,UserCounter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"civicdesk/internal/directory"
	intakemodels "civicdesk/internal/intake/models"
	intakestore "civicdesk/internal/intake/store"
	"civicdesk/internal/intake/workflow"
	"civicdesk/internal/stats/models"
	"civicdesk/internal/stats/service/mocks"
	statsstore "civicdesk/internal/stats/store"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/requestcontext"
	"civicdesk/pkg/testutil"
)

type StatsServiceSuite struct {
	suite.Suite
	intake  *intakestore.InMemoryStore
	users   *directory.InMemoryStore
	service *Service
	staff   domain.Actor
	citizen domain.Actor
	now     time.Time
	ctx     context.Context
	refs    int
}

func TestStatsServiceSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceSuite))
}

func (s *StatsServiceSuite) SetupTest() {
	s.intake = intakestore.NewInMemoryStore()
	s.users = directory.NewInMemory()
	s.service = New(statsstore.NewInMemory(statsstore.IntakeSources(s.intake)), s.users)
	s.staff = testutil.NewStaff("staff")
	s.citizen = testutil.NewActor("citizen")
	s.now = time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.refs = 0
}

func (s *StatsServiceSuite) nextRef() string {
	s.refs++
	return fmt.Sprintf("REF%07d", s.refs)
}

func (s *StatsServiceSuite) addEntity(t intakemodels.EntityType, g intakemodels.Governorate, approved bool, createdAt time.Time) {
	e := &intakemodels.EntityProfile{
		ID:          domain.NewEntityID(),
		EntityName:  string(t) + " of " + string(g),
		EntityType:  t,
		Governorate: g,
		ManagerName: "manager",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if approved {
		s.Require().NoError(e.Review(workflow.ActionApprove, s.staff.ID, createdAt))
	}
	s.Require().NoError(s.intake.CreateEntity(s.ctx, e))
	s.Require().NoError(s.intake.InsertSubmission(s.ctx, intakemodels.NewEntitySubmission(domain.NewSubmissionID(), s.nextRef(), e)))
}

func (s *StatsServiceSuite) addFeedback(ft intakemodels.FeedbackType, p intakemodels.Priority, status workflow.FeedbackStatus, createdAt time.Time) {
	f := &intakemodels.FeedbackReport{
		ID:           domain.NewFeedbackID(),
		CitizenName:  "Anonymous",
		FeedbackType: ft,
		Title:        "report",
		Description:  "details",
		Priority:     p,
		Status:       status,
		IsAnonymous:  true,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	s.Require().NoError(s.intake.CreateFeedback(s.ctx, f))
	s.Require().NoError(s.intake.InsertSubmission(s.ctx, intakemodels.NewFeedbackSubmission(domain.NewSubmissionID(), s.nextRef(), f)))
}

func (s *StatsServiceSuite) seed() {
	day := 24 * time.Hour
	s.addEntity(intakemodels.EntityMinistry, intakemodels.Baghdad, true, s.now.Add(-2*day))
	s.addEntity(intakemodels.EntityMinistry, intakemodels.Basra, false, s.now.Add(-40*day))
	s.addEntity(intakemodels.EntityMunicipality, intakemodels.Baghdad, false, s.now.Add(-30*day))

	s.addFeedback(intakemodels.FeedbackComplaint, intakemodels.PriorityHigh, workflow.StatusPending, s.now.Add(-day))
	s.addFeedback(intakemodels.FeedbackComplaint, intakemodels.PriorityMedium, workflow.StatusResolved, s.now.Add(-3*day))
	s.addFeedback(intakemodels.FeedbackSuggestion, intakemodels.PriorityMedium, workflow.StatusInProgress, s.now.Add(-31*day))
	s.addFeedback(intakemodels.FeedbackInquiry, intakemodels.PriorityLow, workflow.StatusClosed, s.now.Add(-60*day))

	s.Require().NoError(s.users.Upsert(s.ctx, directory.FromActor(s.staff, s.now)))
	s.Require().NoError(s.users.Upsert(s.ctx, directory.FromActor(s.citizen, s.now)))
	inactive := testutil.NewActor("gone")
	inactive.Active = false
	s.Require().NoError(s.users.Upsert(s.ctx, directory.FromActor(inactive, s.now)))
}

func (s *StatsServiceSuite) TestEntityStats() {
	s.seed()

	out, err := s.service.EntityStats(s.ctx, s.citizen)
	s.Require().NoError(err)

	s.Equal(3, out.TotalEntities)
	s.Equal(1, out.ApprovedEntities)
	s.Equal(2, out.PendingEntities)
	s.Equal(out.TotalEntities, out.ApprovedEntities+out.PendingEntities)
	s.Equal(map[string]int{"ministry": 2, "municipality": 1}, out.EntitiesByType)
	s.Equal(map[string]int{"baghdad": 2, "basra": 1}, out.EntitiesByGovernorate)
	// the record created exactly 30 days ago sits on the inclusive boundary
	s.Equal(2, out.RecentSubmissions)
}

func (s *StatsServiceSuite) TestFeedbackStats() {
	s.seed()

	out, err := s.service.FeedbackStats(s.ctx, s.citizen)
	s.Require().NoError(err)

	s.Equal(4, out.TotalFeedback)
	s.Equal(1, out.PendingFeedback)
	s.Equal(1, out.ResolvedFeedback)
	s.GreaterOrEqual(out.TotalFeedback, out.PendingFeedback+out.ResolvedFeedback)
	s.NotEqual(out.TotalFeedback, out.PendingFeedback+out.ResolvedFeedback)
	s.Equal(map[string]int{"complaint": 2, "suggestion": 1, "inquiry": 1}, out.FeedbackByType)
	s.Equal(map[string]int{"high": 1, "medium": 2, "low": 1}, out.FeedbackByPriority)
	s.Equal(2, out.RecentFeedback)
}

func (s *StatsServiceSuite) TestDashboard() {
	s.Run("requires staff", func() {
		_, err := s.service.Dashboard(s.ctx, s.citizen)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("requires an actor", func() {
		_, err := s.service.Dashboard(s.ctx, domain.Actor{})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("combines every count", func() {
		s.seed()
		out, err := s.service.Dashboard(s.ctx, s.staff)
		s.Require().NoError(err)

		s.Equal(3, out.GovernmentEntities.TotalEntities)
		s.Equal(4, out.CitizenFeedback.TotalFeedback)
		s.Equal(7, out.TotalSubmissions)
		s.Equal(2, out.ActiveUsers)
	})
}

func (s *StatsServiceSuite) TestEmptyStoreYieldsEmptyGroups() {
	out, err := s.service.EntityStats(s.ctx, s.citizen)
	s.Require().NoError(err)
	s.Zero(out.TotalEntities)
	s.NotNil(out.EntitiesByType)
	s.Empty(out.EntitiesByType)
}

func (s *StatsServiceSuite) TestAnonymousActorRejected() {
	_, err := s.service.EntityStats(s.ctx, domain.Actor{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.FeedbackStats(s.ctx, domain.Actor{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestStoreFailuresAreInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	users := mocks.NewMockUserCounter(ctrl)
	svc := New(store, users)
	actor := testutil.NewStaff("staff")

	store.EXPECT().Count(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("connection reset")).AnyTimes()
	store.EXPECT().GroupCount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]int{}, nil).AnyTimes()
	users.EXPECT().CountActive(gomock.Any()).Return(1, nil).AnyTimes()

	_, err := svc.Dashboard(context.Background(), actor)
	if !dErrors.HasCode(err, dErrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestDeadlineIsReportedAsTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	svc := New(store, mocks.NewMockUserCounter(ctrl))

	store.EXPECT().Count(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, context.DeadlineExceeded).AnyTimes()
	store.EXPECT().GroupCount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]int{}, nil).AnyTimes()

	_, err := svc.FeedbackStats(context.Background(), testutil.NewActor("citizen"))
	if !dErrors.HasCode(err, dErrors.CodeTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestRecentWindowUsesRequestClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	svc := New(store, mocks.NewMockUserCounter(ctrl))
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	store.EXPECT().GroupCount(gomock.Any(), models.TableEntities, gomock.Any(), models.Filter{}).Return(map[string]int{}, nil).Times(2)
	store.EXPECT().Count(gomock.Any(), models.TableEntities, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ models.Table, f models.Filter) (int, error) {
			if !f.Since.IsZero() && !f.Since.Equal(now.Add(-30*24*time.Hour)) {
				return 0, fmt.Errorf("unexpected window start %s", f.Since)
			}
			return 0, nil
		},
	).Times(4)

	if _, err := svc.EntityStats(ctx, testutil.NewActor("citizen")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
