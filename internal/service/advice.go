package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"finly/internal/advice"
	"finly/internal/domain"
	"finly/internal/metrics"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// TipsInput lets the caller override what is stored in the profile.
type TipsInput struct {
	Income           json.RawMessage `json:"income,omitempty"`
	FinancialGoals   *string         `json:"financialGoals,omitempty"`
	SpendingPatterns string          `json:"spendingPatterns,omitempty"`
}

type AdviceService struct {
	profiles  *ProfileService
	expenses  *ExpenseService
	generator advice.Generator
	metrics   *metrics.Metrics
}

func NewAdviceService(profiles *ProfileService, expenses *ExpenseService, gen advice.Generator, m *metrics.Metrics) *AdviceService {
	if gen == nil {
		gen = advice.Disabled{}
	}
	return &AdviceService{profiles: profiles, expenses: expenses, generator: gen, metrics: m}
}

// SavingTips returns an empty string when the generator fails; store
// failures are still returned.
func (s *AdviceService) SavingTips(ctx context.Context, id domain.Identity, in TipsInput) (string, error) {
	override, err := domain.ParseIncome(in.Income)
	if err != nil {
		return "", err
	}

	var (
		profile  *domain.Profile
		expenses []domain.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profiles.GetOrCreate(gctx, id)
		profile = p
		return err
	})
	g.Go(func() error {
		list, err := s.expenses.For(id).List(gctx)
		expenses = list
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	req := advice.Request{
		Kind:             advice.KindSavingTips,
		UserID:           id.ID,
		Income:           decimal.Zero,
		TotalExpenses:    SumExpenses(expenses),
		FinancialGoals:   profile.FinancialGoals,
		SpendingPatterns: strings.TrimSpace(in.SpendingPatterns),
	}
	switch {
	case override.Value != nil:
		req.Income = *override.Value
	case profile.Income != nil:
		req.Income = *profile.Income
	}
	if in.FinancialGoals != nil && strings.TrimSpace(*in.FinancialGoals) != "" {
		req.FinancialGoals = strings.TrimSpace(*in.FinancialGoals)
	}
	if req.SpendingPatterns == "" {
		req.SpendingPatterns = DescribeSpending(expenses)
	}

	res, err := s.generator.GenerateAdvice(ctx, req)
	if err != nil {
		s.fallback(advice.KindSavingTips, id, err)
		return "", nil
	}
	return res.SavingTips, nil
}

// SpendingAlerts never fails because of the generator: any error or
// malformed answer becomes an empty list.
func (s *AdviceService) SpendingAlerts(ctx context.Context, id domain.Identity) ([]domain.SpendingAlert, error) {
	expenses, err := s.expenses.For(id).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return []domain.SpendingAlert{}, nil
	}

	lines := make([]advice.ExpenseLine, len(expenses))
	for i, e := range expenses {
		lines[i] = advice.ExpenseLine{Category: string(e.Category), Amount: e.Amount, Date: e.Date}
	}

	res, err := s.generator.GenerateAdvice(ctx, advice.Request{
		Kind:          advice.KindSpendingAlerts,
		UserID:        id.ID,
		TotalExpenses: SumExpenses(expenses),
		Expenses:      lines,
	})
	if err != nil {
		s.fallback(advice.KindSpendingAlerts, id, err)
		return []domain.SpendingAlert{}, nil
	}
	if res.Alerts == nil {
		return []domain.SpendingAlert{}, nil
	}
	return res.Alerts, nil
}

func (s *AdviceService) fallback(kind advice.Kind, id domain.Identity, err error) {
	s.metrics.AdviceFallback(string(kind))
	slog.Warn("Advice unavailable, using default", "kind", kind, "user_id", id.ID, "error", err)
}

// DescribeSpending summarises spending per category, largest first.
func DescribeSpending(expenses []domain.Expense) string {
	if len(expenses) == 0 {
		return "No expenses recorded yet."
	}

	totals := make(map[domain.Category]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	cats := make([]domain.Category, 0, len(totals))
	for c := range totals {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if cmp := totals[cats[i]].Cmp(totals[cats[j]]); cmp != 0 {
			return cmp > 0
		}
		return cats[i] < cats[j]
	})

	grand := SumExpenses(expenses)
	parts := make([]string, len(cats))
	for i, c := range cats {
		share := decimal.Zero
		if grand.IsPositive() {
			share = totals[c].Div(grand).Mul(decimal.NewFromInt(100)).Round(0)
		}
		parts[i] = fmt.Sprintf("%s: %s (%s%%)", c, domain.FormatRupees(totals[c]), share.String())
	}
	return "Spending by category: " + strings.Join(parts, ", ") + "."
}
