package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"civicdesk/internal/intake/models"
	"civicdesk/pkg/domain"
	"civicdesk/pkg/platform/sentinel"
)

// InMemoryStore keeps entities, feedback and the ledger in maps. One mutex
// guards everything; RunInTx holds it for the whole callback and replays an
// undo journal when the callback fails.
type InMemoryStore struct {
	mu          sync.Mutex
	entities    map[domain.EntityID]models.EntityProfile
	feedback    map[domain.FeedbackID]models.FeedbackReport
	submissions map[domain.SubmissionID]models.Submission
	refs        map[string]domain.SubmissionID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entities:    make(map[domain.EntityID]models.EntityProfile),
		feedback:    make(map[domain.FeedbackID]models.FeedbackReport),
		submissions: make(map[domain.SubmissionID]models.Submission),
		refs:        make(map[string]domain.SubmissionID),
	}
}

type memTxKey struct{}

type memTx struct {
	store *InMemoryStore
	undo  []func()
}

func (s *InMemoryStore) txFrom(ctx context.Context) *memTx {
	tx, ok := ctx.Value(memTxKey{}).(*memTx)
	if ok && tx.store == s {
		return tx
	}
	return nil
}

// RunInTx runs fn holding the store lock. Nested calls join the outer one.
func (s *InMemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txFrom(ctx) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s}
	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		return err
	}
	return nil
}

// lock acquires the mutex unless ctx already holds it through RunInTx.
func (s *InMemoryStore) lock(ctx context.Context) (*memTx, func()) {
	if tx := s.txFrom(ctx); tx != nil {
		return tx, func() {}
	}
	s.mu.Lock()
	return nil, s.mu.Unlock
}

func (tx *memTx) record(fn func()) {
	if tx != nil {
		tx.undo = append(tx.undo, fn)
	}
}

func restore[K comparable, V any](m map[K]V, key K) func() {
	prev, existed := m[key]
	return func() {
		if existed {
			m[key] = prev
		} else {
			delete(m, key)
		}
	}
}

func (s *InMemoryStore) CreateEntity(ctx context.Context, e *models.EntityProfile) error {
	tx, unlock := s.lock(ctx)
	defer unlock()
	if _, exists := s.entities[e.ID]; exists {
		return sentinel.ErrConflict
	}
	tx.record(restore(s.entities, e.ID))
	s.entities[e.ID] = *e
	return nil
}

func (s *InMemoryStore) CreateFeedback(ctx context.Context, f *models.FeedbackReport) error {
	tx, unlock := s.lock(ctx)
	defer unlock()
	if _, exists := s.feedback[f.ID]; exists {
		return sentinel.ErrConflict
	}
	tx.record(restore(s.feedback, f.ID))
	s.feedback[f.ID] = *f
	return nil
}

// InsertSubmission fails with ErrConflict when the reference number is taken.
func (s *InMemoryStore) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	tx, unlock := s.lock(ctx)
	defer unlock()
	if _, taken := s.refs[sub.ReferenceNumber]; taken {
		return sentinel.ErrConflict
	}
	if _, exists := s.submissions[sub.ID]; exists {
		return sentinel.ErrConflict
	}
	if (sub.EntityID == nil) == (sub.FeedbackID == nil) {
		return sentinel.ErrInvalidState
	}
	if sub.EntityID != nil {
		if _, ok := s.entities[*sub.EntityID]; !ok {
			return sentinel.ErrNotFound
		}
	}
	if sub.FeedbackID != nil {
		if _, ok := s.feedback[*sub.FeedbackID]; !ok {
			return sentinel.ErrNotFound
		}
	}
	tx.record(restore(s.submissions, sub.ID))
	tx.record(restore(s.refs, sub.ReferenceNumber))
	s.submissions[sub.ID] = *sub
	s.refs[sub.ReferenceNumber] = sub.ID
	return nil
}

func (s *InMemoryStore) FindEntity(ctx context.Context, id domain.EntityID) (*models.EntityProfile, error) {
	_, unlock := s.lock(ctx)
	defer unlock()
	e, ok := s.entities[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &e, nil
}

// FindEntityForUpdate is FindEntity; the mutex held by RunInTx is the row lock.
func (s *InMemoryStore) FindEntityForUpdate(ctx context.Context, id domain.EntityID) (*models.EntityProfile, error) {
	return s.FindEntity(ctx, id)
}

func (s *InMemoryStore) FindFeedback(ctx context.Context, id domain.FeedbackID) (*models.FeedbackReport, error) {
	_, unlock := s.lock(ctx)
	defer unlock()
	f, ok := s.feedback[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &f, nil
}

func (s *InMemoryStore) FindFeedbackForUpdate(ctx context.Context, id domain.FeedbackID) (*models.FeedbackReport, error) {
	return s.FindFeedback(ctx, id)
}

func (s *InMemoryStore) UpdateEntity(ctx context.Context, e *models.EntityProfile) error {
	tx, unlock := s.lock(ctx)
	defer unlock()
	if _, ok := s.entities[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	tx.record(restore(s.entities, e.ID))
	s.entities[e.ID] = *e
	return nil
}

func (s *InMemoryStore) UpdateFeedback(ctx context.Context, f *models.FeedbackReport) error {
	tx, unlock := s.lock(ctx)
	defer unlock()
	if _, ok := s.feedback[f.ID]; !ok {
		return sentinel.ErrNotFound
	}
	tx.record(restore(s.feedback, f.ID))
	s.feedback[f.ID] = *f
	return nil
}

// MarkProcessed stamps the ledger entry wrapping ref the first time staff act
// on it. Later calls leave the first stamp in place.
func (s *InMemoryStore) MarkProcessed(ctx context.Context, ref models.RecordRef, by domain.UserID, at time.Time) error {
	tx, unlock := s.lock(ctx)
	defer unlock()
	for id, sub := range s.submissions {
		if !ref.Matches(&sub) {
			continue
		}
		if sub.ProcessedAt != nil {
			return nil
		}
		tx.record(restore(s.submissions, id))
		stampedBy, stampedAt := by, at
		sub.ProcessedBy = &stampedBy
		sub.ProcessedAt = &stampedAt
		s.submissions[id] = sub
		return nil
	}
	return sentinel.ErrNotFound
}

// DeleteEntity removes the entity and the ledger entry wrapping it.
func (s *InMemoryStore) DeleteEntity(ctx context.Context, id domain.EntityID) error {
	tx, unlock := s.lock(ctx)
	defer unlock()
	if _, ok := s.entities[id]; !ok {
		return sentinel.ErrNotFound
	}
	tx.record(restore(s.entities, id))
	delete(s.entities, id)
	s.dropSubmissions(tx, models.EntityRef(id))
	return nil
}

// DeleteFeedback removes the report and the ledger entry wrapping it.
func (s *InMemoryStore) DeleteFeedback(ctx context.Context, id domain.FeedbackID) error {
	tx, unlock := s.lock(ctx)
	defer unlock()
	if _, ok := s.feedback[id]; !ok {
		return sentinel.ErrNotFound
	}
	tx.record(restore(s.feedback, id))
	delete(s.feedback, id)
	s.dropSubmissions(tx, models.FeedbackRef(id))
	return nil
}

func (s *InMemoryStore) dropSubmissions(tx *memTx, ref models.RecordRef) {
	for id, sub := range s.submissions {
		if !ref.Matches(&sub) {
			continue
		}
		tx.record(restore(s.submissions, id))
		tx.record(restore(s.refs, sub.ReferenceNumber))
		delete(s.submissions, id)
		delete(s.refs, sub.ReferenceNumber)
	}
}

func (s *InMemoryStore) ListEntities(ctx context.Context, filter models.EntityFilter) ([]*models.EntityProfile, error) {
	_, unlock := s.lock(ctx)
	defer unlock()
	out := make([]*models.EntityProfile, 0)
	for _, e := range s.entities {
		if filter.Approved != nil && e.IsApproved != *filter.Approved {
			continue
		}
		if filter.EntityType != "" && e.EntityType != filter.EntityType {
			continue
		}
		if filter.Governorate != "" && e.Governorate != filter.Governorate {
			continue
		}
		if !matchesAny(filter.Search, e.EntityName, e.ServicesProvided, e.ManagerName) {
			continue
		}
		out = append(out, &e)
	}
	sortNewestFirst(out, func(e *models.EntityProfile) (time.Time, string) { return e.CreatedAt, e.ID.String() })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (s *InMemoryStore) ListFeedback(ctx context.Context, filter models.FeedbackFilter) ([]*models.FeedbackReport, error) {
	_, unlock := s.lock(ctx)
	defer unlock()
	out := make([]*models.FeedbackReport, 0)
	for _, f := range s.feedback {
		if filter.FeedbackType != "" && f.FeedbackType != filter.FeedbackType {
			continue
		}
		if filter.Status != "" && f.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && f.Priority != filter.Priority {
			continue
		}
		if filter.Governorate != "" && f.Governorate != filter.Governorate {
			continue
		}
		if !matchesAny(filter.Search, f.CitizenName, f.Title, f.Description) {
			continue
		}
		out = append(out, &f)
	}
	sortNewestFirst(out, func(f *models.FeedbackReport) (time.Time, string) { return f.CreatedAt, f.ID.String() })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (s *InMemoryStore) ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]*models.Submission, error) {
	_, unlock := s.lock(ctx)
	defer unlock()
	out := make([]*models.Submission, 0)
	for _, sub := range s.submissions {
		if filter.Type != "" && sub.Type != filter.Type {
			continue
		}
		if !matchesAny(filter.Search, sub.ReferenceNumber, sub.SubmitterName, sub.SubmitterEmail) {
			continue
		}
		out = append(out, &sub)
	}
	sortNewestFirst(out, func(s *models.Submission) (time.Time, string) { return s.CreatedAt, s.ID.String() })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (s *InMemoryStore) FindSubmissionByReference(ctx context.Context, ref string) (*models.Submission, error) {
	_, unlock := s.lock(ctx)
	defer unlock()
	id, ok := s.refs[ref]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	sub := s.submissions[id]
	return &sub, nil
}

// Entities returns a snapshot of every entity, for the stats reader.
func (s *InMemoryStore) Entities(ctx context.Context) []models.EntityProfile {
	_, unlock := s.lock(ctx)
	defer unlock()
	out := make([]models.EntityProfile, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	return out
}

// Feedback returns a snapshot of every report, for the stats reader.
func (s *InMemoryStore) Feedback(ctx context.Context) []models.FeedbackReport {
	_, unlock := s.lock(ctx)
	defer unlock()
	out := make([]models.FeedbackReport, 0, len(s.feedback))
	for _, f := range s.feedback {
		out = append(out, f)
	}
	return out
}

// Submissions returns a snapshot of the ledger, for the stats reader.
func (s *InMemoryStore) Submissions(ctx context.Context) []models.Submission {
	_, unlock := s.lock(ctx)
	defer unlock()
	out := make([]models.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		out = append(out, sub)
	}
	return out
}

// matchesAny is a case-insensitive substring match OR-ed across fields.
// An empty needle matches everything.
func matchesAny(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func sortNewestFirst[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi < idj
		}
		return ti.After(tj)
	})
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
