// internal/storage/storage.go
package storage

import (
	"context"

	"finly/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks finly/internal/storage ExpenseStorage,ProfileStorage,ReviewStorage,UserStorage

// ExpenseStorage persists expenses. Every method is scoped by owner.
type ExpenseStorage interface {
	// ListExpenses returns the owner's expenses, newest date first; ties keep insertion order.
	ListExpenses(ctx context.Context, ownerID string) ([]domain.Expense, error)
	// CreateExpense stores e. e.ID, CreatedAt and UpdatedAt are already set.
	CreateExpense(ctx context.Context, e *domain.Expense) error
	// DeleteExpense removes the expense only when it belongs to ownerID and
	// returns how many records were removed.
	DeleteExpense(ctx context.Context, ownerID, expenseID string) (int64, error)
}

// ProfileStorage keeps exactly one profile per owner.
type ProfileStorage interface {
	// GetOrCreateProfile atomically inserts def when the owner has no profile
	// and returns the stored document. Lost insert races return domain.ErrConflict.
	GetOrCreateProfile(ctx context.Context, def domain.Profile) (*domain.Profile, error)
	// UpsertProfile applies patch, creating the profile from def if needed.
	UpsertProfile(ctx context.Context, def domain.Profile, patch domain.ProfilePatch) (*domain.Profile, error)
}

type ReviewStorage interface {
	CreateReview(ctx context.Context, r *domain.Review) error
	// ListRecentReviews returns the newest limit reviews joined with their
	// authors. Reviews whose author is gone are dropped.
	ListRecentReviews(ctx context.Context, limit int) ([]domain.ReviewWithAuthor, error)
}

type UserStorage interface {
	// CreateUser fails with domain.ErrEmailTaken when the email is registered.
	CreateUser(ctx context.Context, u *domain.User) error
	// GetUserByEmail returns nil, nil when nobody has that email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// Store is everything a backend provides.
type Store interface {
	ExpenseStorage
	ProfileStorage
	ReviewStorage
	UserStorage
	Close(ctx context.Context) error
}
