package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"finly/internal/domain"
	"finly/internal/events"
	"finly/internal/metrics"
	"finly/internal/storage"
	"finly/internal/validator"

	"github.com/shopspring/decimal"
)

type ExpenseService struct {
	store   storage.ExpenseStorage
	events  events.Publisher
	metrics *metrics.Metrics
	timeout time.Duration
	now     func() time.Time
}

func NewExpenseService(store storage.ExpenseStorage, pub events.Publisher, m *metrics.Metrics, timeout time.Duration) *ExpenseService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &ExpenseService{store: store, events: pub, metrics: m, timeout: timeout, now: time.Now}
}

// For binds every operation to one owner.
func (s *ExpenseService) For(owner domain.Identity) *ExpenseScope {
	return &ExpenseScope{svc: s, owner: owner}
}

// ExpenseScope is an expense repository that can only see one owner's records.
type ExpenseScope struct {
	svc   *ExpenseService
	owner domain.Identity
}

func (sc *ExpenseScope) List(ctx context.Context) ([]domain.Expense, error) {
	ctx, cancel := storeCtx(ctx, sc.svc.timeout)
	defer cancel()

	expenses, err := sc.svc.store.ListExpenses(ctx, sc.owner.ID)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}

// ValidateExpense checks in and returns the draft ready to store, with the
// amount rounded to paise. Fields are checked in the order description,
// amount, category, date.
func ValidateExpense(in domain.ExpenseInput) (domain.ExpenseDraft, error) {
	amount, amountErr := domain.ParseAmountJSON(in.Amount)
	draft := domain.ExpenseDraft{
		Description: domain.CleanText(in.Description),
		Amount:      amount,
		Category:    in.Category,
		Date:        in.Date,
	}

	if err := validator.Check(draft); err != nil {
		var verr *domain.ValidationError
		if amountErr != nil && errors.As(err, &verr) && verr.Field == "amount" {
			if errors.Is(amountErr, domain.ErrAmountTooLarge) {
				return draft, domain.Invalid("amount", "amount must be at most %s", domain.MaxAmount.StringFixed(2))
			}
			return draft, domain.Invalid("amount", "amount must be a number")
		}
		return draft, err
	}
	return draft, nil
}

func (sc *ExpenseScope) Create(ctx context.Context, in domain.ExpenseInput) (*domain.Expense, error) {
	draft, err := ValidateExpense(in)
	if err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(draft.Date)
	if err != nil {
		return nil, domain.Invalid("date", "date must be a date in YYYY-MM-DD format")
	}

	now := sc.svc.now().UTC()
	e := &domain.Expense{
		ID:          newID(),
		OwnerID:     sc.owner.ID,
		Description: draft.Description,
		Amount:      draft.Amount,
		Category:    domain.Category(draft.Category),
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	sctx, cancel := storeCtx(ctx, sc.svc.timeout)
	defer cancel()
	if err := sc.svc.store.CreateExpense(sctx, e); err != nil {
		return nil, storeErr("create expense", err)
	}

	slog.Info("Expense created", "user_id", sc.owner.ID, "expense_id", e.ID, "category", e.Category)
	amount := e.Amount
	sc.svc.publish(ctx, events.ExpenseEvent{
		Type:       events.ExpenseCreated,
		ExpenseID:  e.ID,
		OwnerID:    e.OwnerID,
		Amount:     &amount,
		Category:   string(e.Category),
		OccurredAt: now,
	})
	return e, nil
}

// Delete reports domain.ErrNotFound both for missing ids and for ids that
// belong to someone else.
func (sc *ExpenseScope) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID("id", rawID)
	if err != nil {
		return err
	}

	sctx, cancel := storeCtx(ctx, sc.svc.timeout)
	defer cancel()
	n, err := sc.svc.store.DeleteExpense(sctx, sc.owner.ID, id)
	if err != nil {
		return storeErr("delete expense", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	slog.Info("Expense deleted", "user_id", sc.owner.ID, "expense_id", id)
	sc.svc.publish(ctx, events.ExpenseEvent{
		Type:       events.ExpenseDeleted,
		ExpenseID:  id,
		OwnerID:    sc.owner.ID,
		OccurredAt: sc.svc.now().UTC(),
	})
	return nil
}

func (sc *ExpenseScope) Total(ctx context.Context) (decimal.Decimal, error) {
	expenses, err := sc.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return SumExpenses(expenses), nil
}

func SumExpenses(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// publish never fails the caller; the record is already stored.
func (s *ExpenseService) publish(ctx context.Context, e events.ExpenseEvent) {
	err := s.events.Publish(context.WithoutCancel(ctx), e)
	s.metrics.EventPublished(e.Type, err)
	if err != nil {
		slog.Warn("Failed to publish event", "type", e.Type, "expense_id", e.ExpenseID, "error", err)
	}
}
