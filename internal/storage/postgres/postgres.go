// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"finly/internal/domain"
	"finly/internal/storage"
	"finly/migrations"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

var _ storage.Store = (*Storage)(nil)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// Connect opens a pool and checks the server is reachable.
func Connect(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	slog.Info("Connected to PostgreSQL")
	return NewStorage(pool), nil
}

func (s *Storage) Close(context.Context) error {
	s.db.Close()
	return nil
}

// Migrate applies the embedded goose migrations. command is one of
// up, down, status or reset.
func Migrate(ctx context.Context, dsn, command string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "", "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "reset":
		err = goose.ResetContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func parseNumeric(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse numeric %q: %w", s, err)
	}
	return d, nil
}

// === ExpenseStorage ===

func (s *Storage) ListExpenses(ctx context.Context, ownerID string) ([]domain.Expense, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, description, amount::text, category, date, created_at, updated_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, seq
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var e domain.Expense
		var amount, category string
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Description, &amount, &category, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Amount, err = parseNumeric(amount); err != nil {
			return nil, err
		}
		e.Category = domain.Category(category)
		e.Date = e.Date.UTC()
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return expenses, nil
}

func (s *Storage) CreateExpense(ctx context.Context, e *domain.Expense) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO expenses (id, user_id, description, amount, category, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
	`, e.ID, e.OwnerID, e.Description, e.Amount.String(), string(e.Category), e.Date, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert expense: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (s *Storage) DeleteExpense(ctx context.Context, ownerID, expenseID string) (int64, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM expenses WHERE id = $1 AND user_id = $2", expenseID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	return tag.RowsAffected(), nil
}

// === ProfileStorage ===

const profileColumns = "id, user_id, email, name, income::text, financial_goals, created_at, updated_at"

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var income *string
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Email, &p.Name, &income, &p.FinancialGoals, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if income != nil {
		d, err := parseNumeric(*income)
		if err != nil {
			return nil, err
		}
		p.Income = &d
	}
	return &p, nil
}

func (s *Storage) GetOrCreateProfile(ctx context.Context, def domain.Profile) (*domain.Profile, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	row := s.db.QueryRow(ctx, `
		INSERT INTO user_profiles (id, user_id, email, name, financial_goals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING `+profileColumns,
		def.ID, def.OwnerID, def.Email, def.Name, def.FinancialGoals, def.CreatedAt, def.UpdatedAt)

	p, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("get or create profile: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("get or create profile: %w", err)
	}
	return p, nil
}

func (s *Storage) UpsertProfile(ctx context.Context, def domain.Profile, patch domain.ProfilePatch) (*domain.Profile, error) {
	name := def.Name
	if patch.Name != nil {
		name = *patch.Name
	}
	goals := def.FinancialGoals
	if patch.FinancialGoals != nil {
		goals = *patch.FinancialGoals
	}
	var income *string
	if patch.Income.Set && patch.Income.Value != nil {
		v := patch.Income.Value.String()
		income = &v
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO user_profiles (id, user_id, email, name, income, financial_goals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			name            = CASE WHEN $9::boolean  THEN EXCLUDED.name            ELSE user_profiles.name END,
			income          = CASE WHEN $10::boolean THEN EXCLUDED.income          ELSE user_profiles.income END,
			financial_goals = CASE WHEN $11::boolean THEN EXCLUDED.financial_goals ELSE user_profiles.financial_goals END,
			updated_at      = EXCLUDED.updated_at
		RETURNING `+profileColumns,
		def.ID, def.OwnerID, def.Email, name, income, goals, def.CreatedAt, def.UpdatedAt,
		patch.Name != nil, patch.Income.Set, patch.FinancialGoals != nil)

	p, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("upsert profile: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return p, nil
}

// === ReviewStorage ===

func (s *Storage) CreateReview(ctx context.Context, r *domain.Review) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO reviews (id, rating, comment, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.ID, r.Rating, r.Comment, r.AuthorID, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (s *Storage) ListRecentReviews(ctx context.Context, limit int) ([]domain.ReviewWithAuthor, error) {
	// Cap first, then join: reviews whose author is gone drop out of the page.
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.rating, r.comment, r.user_id, r.created_at,
		       u.id, u.name, u.email, u.image
		FROM (
			SELECT id, rating, comment, user_id, created_at, seq
			FROM reviews
			ORDER BY created_at DESC, seq DESC
			LIMIT $1
		) r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC, r.seq DESC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.ReviewWithAuthor{}
	for rows.Next() {
		var r domain.ReviewWithAuthor
		if err := rows.Scan(
			&r.ID, &r.Rating, &r.Comment, &r.AuthorID, &r.CreatedAt,
			&r.Author.ID, &r.Author.Name, &r.Author.Email, &r.Author.Image,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return reviews, nil
}

// === UserStorage ===

func (s *Storage) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, email, name, image, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Email, u.Name, u.Image, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Storage) findUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx, `
		SELECT id, email, name, image, hashed_password, created_at, updated_at
		FROM users WHERE `+where, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.Image, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findUser(ctx, "lower(email) = lower($1)", email)
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findUser(ctx, "id = $1", id)
}

func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
