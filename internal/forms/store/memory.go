package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"civicdesk/internal/forms/models"
	"civicdesk/pkg/domain"
	"civicdesk/pkg/platform/sentinel"
)

// InMemoryStore keeps forms and their responses in process memory.
type InMemoryStore struct {
	mu        sync.RWMutex
	forms     map[domain.FormID]models.Form
	responses map[domain.FormID][]models.Response
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		forms:     make(map[domain.FormID]models.Form),
		responses: make(map[domain.FormID][]models.Response),
	}
}

func (s *InMemoryStore) Create(_ context.Context, form *models.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[form.ID]; exists {
		return sentinel.ErrConflict
	}
	s.forms[form.ID] = *form
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, form *models.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[form.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.forms[form.ID] = *form
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.FormID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[id]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.forms, id)
	delete(s.responses, id)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.FormID) (*models.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	form, ok := s.forms[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &form, nil
}

func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.FormSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]*models.FormSummary, 0)
	for _, f := range s.forms {
		if filter.Category != "" && f.Category != filter.Category {
			continue
		}
		if !filter.OwnerID.IsNil() && f.OwnerID != filter.OwnerID {
			continue
		}
		if filter.PublicOnly && !f.IsPublic {
			continue
		}
		if filter.ActiveOnly && !f.IsActive {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(f.Title), needle) &&
			!strings.Contains(strings.ToLower(f.Description), needle) {
			continue
		}
		form := f
		out = append(out, &models.FormSummary{Form: &form, ResponseCount: len(s.responses[f.ID])})
	}

	// Newest first, matching the postgres ordering.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter.Limit, filter.Offset), nil
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

func (s *InMemoryStore) AppendResponse(_ context.Context, resp *models.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[resp.FormID]; !ok {
		return sentinel.ErrNotFound
	}
	s.responses[resp.FormID] = append(s.responses[resp.FormID], *resp)
	return nil
}

// ListResponses returns responses newest first.
func (s *InMemoryStore) ListResponses(_ context.Context, formID domain.FormID) ([]*models.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.responses[formID]
	out := make([]*models.Response, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		r := stored[i]
		out = append(out, &r)
	}
	return out, nil
}

func (s *InMemoryStore) CountResponses(_ context.Context, formID domain.FormID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.responses[formID]), nil
}
