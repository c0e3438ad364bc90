//go:build integration

package directory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"civicdesk/internal/directory"
	"civicdesk/pkg/platform/sentinel"
	"civicdesk/pkg/testutil"
	"civicdesk/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *directory.PostgresStore
	t0       time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = directory.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "users"))
	s.t0 = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) TestUpsertAndFind() {
	ctx := context.Background()
	actor := testutil.NewActor("amal")
	s.Require().NoError(s.store.Upsert(ctx, &directory.User{
		ID: actor.ID, Username: "amal", Email: "amal@example.iq", IsActive: true, DateJoined: s.t0,
	}))

	actor.Elevated = true
	s.Require().NoError(s.store.Upsert(ctx, directory.FromActor(actor, s.t0.Add(time.Hour))))

	u, err := s.store.FindByID(ctx, actor.ID)
	s.Require().NoError(err)
	s.True(u.IsStaff)
	s.Equal("amal@example.iq", u.Email)
	s.True(u.DateJoined.Equal(s.t0))

	ok, err := s.store.Exists(ctx, actor.ID)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *PostgresStoreSuite) TestUnknownUser() {
	ctx := context.Background()
	ghost := testutil.NewActor("ghost").ID

	_, err := s.store.FindByID(ctx, ghost)
	s.ErrorIs(err, sentinel.ErrNotFound)

	ok, err := s.store.Exists(ctx, ghost)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *PostgresStoreSuite) TestUsernameTakenByAnotherID() {
	ctx := context.Background()
	s.Require().NoError(s.store.Upsert(ctx, directory.FromActor(testutil.NewActor("dup"), s.t0)))

	err := s.store.Upsert(ctx, directory.FromActor(testutil.NewActor("dup"), s.t0))
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestCountActive() {
	ctx := context.Background()
	s.Require().NoError(s.store.Upsert(ctx, directory.FromActor(testutil.NewActor("a"), s.t0)))
	s.Require().NoError(s.store.Upsert(ctx, directory.FromActor(testutil.NewActor("b"), s.t0)))
	off := testutil.NewActor("c")
	off.Active = false
	s.Require().NoError(s.store.Upsert(ctx, directory.FromActor(off, s.t0)))

	n, err := s.store.CountActive(ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}
