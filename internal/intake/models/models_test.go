package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicdesk/internal/intake/workflow"
	"civicdesk/pkg/domain"
)

var now = time.Date(2026, 4, 2, 14, 5, 0, 0, time.UTC)

func TestEntityApproveThenRejectLeavesNoResidue(t *testing.T) {
	reviewer := domain.UserID(uuid.New())
	e := &EntityProfile{ID: domain.NewEntityID()}

	require.NoError(t, e.Review(workflow.ActionApprove, reviewer, now))
	assert.True(t, e.IsApproved)
	require.NotNil(t, e.ApprovedBy)
	assert.Equal(t, reviewer, *e.ApprovedBy)
	require.NotNil(t, e.ApprovalDate)
	assert.Equal(t, now, *e.ApprovalDate)

	require.NoError(t, e.Review(workflow.ActionReject, reviewer, now.Add(time.Minute)))
	assert.False(t, e.IsApproved)
	assert.Nil(t, e.ApprovedBy)
	assert.Nil(t, e.ApprovalDate)
	assert.Equal(t, now.Add(time.Minute), e.UpdatedAt)
}

func TestEntityReapproveRefreshesStamp(t *testing.T) {
	first, second := domain.UserID(uuid.New()), domain.UserID(uuid.New())
	e := &EntityProfile{}
	require.NoError(t, e.Review(workflow.ActionApprove, first, now))
	require.NoError(t, e.Review(workflow.ActionApprove, second, now.Add(time.Hour)))
	assert.True(t, e.IsApproved)
	assert.Equal(t, second, *e.ApprovedBy)
	assert.Equal(t, now.Add(time.Hour), *e.ApprovalDate)
}

func TestFeedbackLifecycle(t *testing.T) {
	staff := domain.UserID(uuid.New())
	target := domain.UserID(uuid.New())
	f := &FeedbackReport{Status: workflow.StatusPending, Priority: PriorityMedium}

	require.NoError(t, f.Assign(target, now))
	assert.Equal(t, workflow.StatusInProgress, f.Status)
	assert.Equal(t, target, *f.AssignedTo)

	require.NoError(t, f.AddNote("amal", "called the citizen", now))
	require.NoError(t, f.AddNote("amal", "waiting on the directorate", now.Add(time.Hour)))
	assert.Equal(t, workflow.StatusInProgress, f.Status)
	assert.Equal(t, []string{
		"[2026-04-02 14:05] amal: called the citizen",
		"[2026-04-02 15:05] amal: waiting on the directorate",
	}, f.NoteLines())

	require.NoError(t, f.Resolve(staff, "pothole filled", now))
	assert.Equal(t, workflow.StatusResolved, f.Status)
	assert.Equal(t, "pothole filled", f.Resolution)
	assert.Equal(t, now, *f.ResolvedAt)
	assert.Equal(t, staff, *f.ResolvedBy)
}

func TestFeedbackSetStatus(t *testing.T) {
	staff := domain.UserID(uuid.New())

	t.Run("entering resolved stamps the resolver", func(t *testing.T) {
		f := &FeedbackReport{Status: workflow.StatusInProgress}
		require.NoError(t, f.SetStatus(staff, workflow.StatusResolved, now))
		require.NotNil(t, f.ResolvedAt)
		assert.Equal(t, staff, *f.ResolvedBy)
	})

	t.Run("other targets leave resolution fields alone", func(t *testing.T) {
		f := &FeedbackReport{Status: workflow.StatusPending}
		require.NoError(t, f.SetStatus(staff, workflow.StatusClosed, now))
		assert.Equal(t, workflow.StatusClosed, f.Status)
		assert.Nil(t, f.ResolvedAt)
	})

	t.Run("unknown target is invalid_status", func(t *testing.T) {
		f := &FeedbackReport{Status: workflow.StatusPending}
		err := f.SetStatus(staff, "archived", now)
		require.Error(t, err)
		assert.Equal(t, workflow.StatusPending, f.Status)
	})
}

func TestAnonymize(t *testing.T) {
	f := &FeedbackReport{
		CitizenName: "Sara", CitizenPhone: "+9647701234567", CitizenEmail: "s@example.org",
		CitizenAddress: "Karrada", CitizenID: "199012",
	}
	f.Anonymize("Anonymous")
	assert.True(t, f.IsAnonymous)
	assert.Equal(t, "Anonymous", f.CitizenName)
	assert.Empty(t, f.CitizenPhone)
	assert.Empty(t, f.CitizenEmail)
	assert.Empty(t, f.CitizenAddress)
	assert.Empty(t, f.CitizenID)
}

func TestSubmissionWrapsExactlyOneRecord(t *testing.T) {
	e := &EntityProfile{ID: domain.NewEntityID(), ManagerName: "Ali", ManagerEmail: "ali@gov.iq", CreatedAt: now}
	s := NewEntitySubmission(domain.NewSubmissionID(), "AB12CD34EF", e)
	assert.Equal(t, SubmissionEntity, s.Type)
	assert.Equal(t, "Ali", s.SubmitterName)
	require.NotNil(t, s.EntityID)
	assert.Nil(t, s.FeedbackID)

	f := &FeedbackReport{ID: domain.NewFeedbackID(), CitizenName: "Anonymous", CreatedAt: now}
	s = NewFeedbackSubmission(domain.NewSubmissionID(), "ZZ12CD34EF", f)
	assert.Equal(t, SubmissionFeedback, s.Type)
	assert.Nil(t, s.EntityID)
	require.NotNil(t, s.FeedbackID)
	assert.Empty(t, s.SubmitterEmail)
	assert.False(t, s.IsProcessed())
}
