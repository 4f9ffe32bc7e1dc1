// Package memory is an in-process backend used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"finly/internal/domain"
	"finly/internal/storage"
)

var _ storage.Store = (*Storage)(nil)

type Storage struct {
	mu       sync.RWMutex
	expenses []domain.Expense
	profiles map[string]domain.Profile
	reviews  []domain.Review
	users    map[string]domain.User
	emails   map[string]string
}

func NewStorage() *Storage {
	return &Storage{
		profiles: make(map[string]domain.Profile),
		users:    make(map[string]domain.User),
		emails:   make(map[string]string),
	}
}

func (s *Storage) Close(context.Context) error { return nil }

// === ExpenseStorage ===

func (s *Storage) ListExpenses(ctx context.Context, ownerID string) ([]domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Expense{}
	for _, e := range s.expenses {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *Storage) CreateExpense(ctx context.Context, e *domain.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, *e)
	return nil
}

func (s *Storage) DeleteExpense(ctx context.Context, ownerID, expenseID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == expenseID && e.OwnerID == ownerID {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// === ProfileStorage ===

func (s *Storage) GetOrCreateProfile(ctx context.Context, def domain.Profile) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[def.OwnerID]
	if !ok {
		p = def
		s.profiles[def.OwnerID] = p
	}
	return cloneProfile(p), nil
}

func (s *Storage) UpsertProfile(ctx context.Context, def domain.Profile, patch domain.ProfilePatch) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[def.OwnerID]
	if !ok {
		p = def
	}
	p.Apply(patch, def.UpdatedAt)
	s.profiles[def.OwnerID] = *cloneProfile(p)
	return cloneProfile(p), nil
}

func cloneProfile(p domain.Profile) *domain.Profile {
	if p.Income != nil {
		income := *p.Income
		p.Income = &income
	}
	return &p
}

// === ReviewStorage ===

func (s *Storage) CreateReview(ctx context.Context, r *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, *r)
	return nil
}

func (s *Storage) ListRecentReviews(ctx context.Context, limit int) ([]domain.ReviewWithAuthor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first; later inserts win ties.
	recent := make([]domain.Review, 0, len(s.reviews))
	for i := len(s.reviews) - 1; i >= 0; i-- {
		recent = append(recent, s.reviews[i])
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}

	out := []domain.ReviewWithAuthor{}
	for _, r := range recent {
		u, ok := s.users[r.AuthorID]
		if !ok {
			continue
		}
		out = append(out, domain.ReviewWithAuthor{Review: r, Author: u.Public()})
	}
	return out, nil
}

// === UserStorage ===

func (s *Storage) CreateUser(ctx context.Context, u *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, taken := s.emails[key]; taken {
		return domain.ErrEmailTaken
	}
	s.users[u.ID] = *u
	s.emails[key] = u.ID
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	u := s.users[id]
	return &u, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// DeleteUser removes an identity, leaving its reviews orphaned.
func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	delete(s.emails, strings.ToLower(u.Email))
	return nil
}
