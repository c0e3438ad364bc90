//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"civicdesk/internal/forms/models"
	"civicdesk/internal/forms/schema"
	"civicdesk/internal/forms/store"
	"civicdesk/pkg/domain"
	"civicdesk/pkg/platform/sentinel"
	"civicdesk/pkg/testutil"
	"civicdesk/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	owner    domain.Actor
	base     time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "form_responses", "form_definitions")
	s.Require().NoError(err)
	s.owner = testutil.NewActor("owner")
	s.base = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) newForm(title string, age time.Duration) *models.Form {
	sc, err := schema.New([]schema.FieldDescriptor{
		{ID: "topic", Type: schema.FieldSelect, Label: "Topic", Required: true, Options: []schema.Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}},
		{ID: "note", Type: schema.FieldTextarea, Label: "Note"},
	})
	s.Require().NoError(err)
	form, err := models.NewForm(domain.NewFormID(), s.owner.ID, title, "about "+title, models.CategoryGeneral, sc, true, true, s.base.Add(-age))
	s.Require().NoError(err)
	return form
}

func (s *PostgresStoreSuite) TestRoundTripKeepsSchema() {
	ctx := context.Background()
	form := s.newForm("Survey", 0)
	s.Require().NoError(s.store.Create(ctx, form))

	got, err := s.store.FindByID(ctx, form.ID)
	s.Require().NoError(err)
	s.Equal(form.Title, got.Title)
	s.Equal(form.OwnerID, got.OwnerID)
	s.Equal(form.Schema.Fingerprint(), got.Schema.Fingerprint())
	topic, ok := got.Schema.FieldByID("topic")
	s.Require().True(ok)
	s.Equal([]string{"a", "b"}, topic.OptionValues())

	s.ErrorIs(s.store.Create(ctx, form), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestListWithCountsAndSearch() {
	ctx := context.Background()
	old := s.newForm("Water survey", time.Hour)
	recent := s.newForm("Roads", 0)
	recent.IsActive = false
	s.Require().NoError(s.store.Create(ctx, old))
	s.Require().NoError(s.store.Create(ctx, recent))
	s.Require().NoError(s.store.AppendResponse(ctx, &models.Response{
		ID: domain.NewResponseID(), FormID: old.ID, Answers: map[string]any{"topic": "a"},
		SubmitterName: "Sara", SubmittedAt: s.base,
	}))

	all, err := s.store.List(ctx, models.Filter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(recent.ID, all[0].ID)
	s.Equal(1, all[1].ResponseCount)

	active, err := s.store.List(ctx, models.Filter{ActiveOnly: true, PublicOnly: true})
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(old.ID, active[0].ID)

	searched, err := s.store.List(ctx, models.Filter{Search: "WATER", OwnerID: s.owner.ID})
	s.Require().NoError(err)
	s.Len(searched, 1)
}

func (s *PostgresStoreSuite) TestResponsesCascadeOnDelete() {
	ctx := context.Background()
	form := s.newForm("Survey", 0)
	s.Require().NoError(s.store.Create(ctx, form))

	for i := range 3 {
		s.Require().NoError(s.store.AppendResponse(ctx, &models.Response{
			ID:                domain.NewResponseID(),
			FormID:            form.ID,
			Answers:           map[string]any{"topic": "b", "extra": float64(i)},
			SubmitterName:     "Sara",
			SubmitterEmail:    "sara@example.org",
			SubmittedAt:       s.base.Add(time.Duration(i) * time.Minute),
			SourceIP:          "203.0.113.9",
			SchemaFingerprint: form.Schema.Fingerprint(),
		}))
	}

	responses, err := s.store.ListResponses(ctx, form.ID)
	s.Require().NoError(err)
	s.Require().Len(responses, 3)
	s.Equal(float64(2), responses[0].Answers["extra"])
	s.Equal("203.0.113.9", responses[0].SourceIP)

	err = s.store.AppendResponse(ctx, &models.Response{
		ID: domain.NewResponseID(), FormID: domain.NewFormID(), Answers: map[string]any{}, SubmitterName: "x", SubmittedAt: s.base,
	})
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Delete(ctx, form.ID))
	n, err := s.store.CountResponses(ctx, form.ID)
	s.Require().NoError(err)
	s.Zero(n)
}
