package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"finly/internal/auth"
	"finly/internal/domain"
	"finly/internal/storage"
	"finly/internal/validator"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"max=100"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is what a successful login hands back.
type Session struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      domain.PublicUser `json:"user"`
}

type UserService struct {
	store    storage.UserStorage
	profiles *ProfileService
	tokens   *auth.TokenService
	timeout time.Duration
	now     func() time.Time
}

// NewUserService wires registration and login. profiles may be nil, in which
// case profiles are only created on first access.
func NewUserService(store storage.UserStorage, profiles *ProfileService, tokens *auth.TokenService, timeout time.Duration) *UserService {
	return &UserService{store: store, profiles: profiles, tokens: tokens, timeout: timeout, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and its profile, named as the user signed up.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = domain.CleanText(in.Name)
	if err := validator.Check(in); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	sctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	existing, err := s.store.GetUserByEmail(sctx, in.Email)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = domain.DefaultName(in.Email)
	}
	now := s.now().UTC()
	u := &domain.User{
		ID:           newID(),
		Email:        in.Email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(sctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, storeErr("create user", err)
	}

	slog.Info("User registered", "user_id", u.ID)

	if s.profiles != nil {
		// The account exists either way; a missing profile is created on first access.
		if _, err := s.profiles.Seed(ctx, domain.Identity{ID: u.ID, Email: u.Email}, u.Name); err != nil {
			slog.Warn("Failed to create profile at registration", "user_id", u.ID, "error", err)
		}
	}
	return u, nil
}

// Login answers domain.ErrInvalidCredentials for unknown emails and wrong
// passwords alike.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validator.Check(in); err != nil {
		return nil, err
	}

	sctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	u, err := s.store.GetUserByEmail(sctx, in.Email)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	if u == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := auth.CheckPassword(u.PasswordHash, in.Password); err != nil {
		slog.Debug("Login rejected", "user_id", u.ID)
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.GenerateToken(domain.Identity{ID: u.ID, Email: u.Email})
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u.Public()}, nil
}

func (s *UserService) Total(ctx context.Context) (int64, error) {
	sctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	n, err := s.store.CountUsers(sctx)
	if err != nil {
		return 0, storeErr("count users", err)
	}
	return n, nil
}
