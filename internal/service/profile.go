package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"finly/internal/domain"
	"finly/internal/storage"

	"github.com/sethvargo/go-retry"
)

const (
	maxNameLength  = 100
	maxGoalsLength = 2000
)

type ProfileService struct {
	store   storage.ProfileStorage
	timeout time.Duration
	now     func() time.Time
	backoff func() retry.Backoff
}

func NewProfileService(store storage.ProfileStorage, timeout time.Duration) *ProfileService {
	return &ProfileService{
		store:   store,
		timeout: timeout,
		now:     time.Now,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(4, retry.WithJitterPercent(20, retry.NewConstant(25*time.Millisecond)))
		},
	}
}

// withConflictRetry repeats op while the store reports a lost insert race.
func (s *ProfileService) withConflictRetry(ctx context.Context, op func(ctx context.Context) (*domain.Profile, error)) (*domain.Profile, error) {
	var out *domain.Profile
	attempt := 0
	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attempt++
		sctx, cancel := storeCtx(ctx, s.timeout)
		defer cancel()

		p, err := op(sctx)
		if errors.Is(err, domain.ErrConflict) {
			slog.Debug("Profile upsert conflict, retrying", "attempt", attempt)
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

func (s *ProfileService) defaults(id domain.Identity) domain.Profile {
	def := domain.NewProfile(id, s.now().UTC())
	def.ID = newID()
	return def
}

// GetOrCreate returns the caller's profile, creating the default one on
// first access. Concurrent first accesses converge to a single record.
func (s *ProfileService) GetOrCreate(ctx context.Context, id domain.Identity) (*domain.Profile, error) {
	p, err := s.withConflictRetry(ctx, func(ctx context.Context) (*domain.Profile, error) {
		return s.store.GetOrCreateProfile(ctx, s.defaults(id))
	})
	if err != nil {
		return nil, storeErr("get or create profile", err)
	}
	return p, nil
}

// Seed creates the profile with name instead of the email-derived default.
// An existing profile is returned unchanged.
func (s *ProfileService) Seed(ctx context.Context, id domain.Identity, name string) (*domain.Profile, error) {
	p, err := s.withConflictRetry(ctx, func(ctx context.Context) (*domain.Profile, error) {
		def := s.defaults(id)
		if name != "" {
			def.Name = name
		}
		return s.store.GetOrCreateProfile(ctx, def)
	})
	if err != nil {
		return nil, storeErr("seed profile", err)
	}
	return p, nil
}

// ParsePatch validates a client update.
func ParsePatch(in domain.ProfileInput) (domain.ProfilePatch, error) {
	var patch domain.ProfilePatch

	if in.Name != nil {
		name := domain.CleanText(*in.Name)
		if name == "" {
			return patch, domain.Invalid("name", "name must not be blank")
		}
		if len([]rune(name)) > maxNameLength {
			return patch, domain.Invalid("name", "name must be at most %d characters long", maxNameLength)
		}
		patch.Name = &name
	}

	income, err := domain.ParseIncome(in.Income)
	if err != nil {
		return patch, err
	}
	patch.Income = income

	if in.FinancialGoals != nil {
		goals := strings.TrimSpace(*in.FinancialGoals)
		if len([]rune(goals)) > maxGoalsLength {
			return patch, domain.Invalid("financialGoals", "financialGoals must be at most %d characters long", maxGoalsLength)
		}
		patch.FinancialGoals = &goals
	}
	return patch, nil
}

// Update applies the fields present in in, creating the profile if needed.
func (s *ProfileService) Update(ctx context.Context, id domain.Identity, in domain.ProfileInput) (*domain.Profile, error) {
	patch, err := ParsePatch(in)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.GetOrCreate(ctx, id)
	}

	p, err := s.withConflictRetry(ctx, func(ctx context.Context) (*domain.Profile, error) {
		return s.store.UpsertProfile(ctx, s.defaults(id), patch)
	})
	if err != nil {
		return nil, storeErr("update profile", err)
	}
	slog.Info("Profile updated", "user_id", id.ID, "income_set", patch.Income.Set)
	return p, nil
}
