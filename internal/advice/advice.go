// Package advice talks to the LLM that produces saving tips and spending
// spike alerts.
package advice

import (
	"context"
	"errors"
	"time"

	"finly/internal/domain"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_generator.go -package=mocks finly/internal/advice Generator

type Kind string

const (
	KindSavingTips     Kind = "saving_tips"
	KindSpendingAlerts Kind = "spending_alerts"
)

var (
	ErrNotConfigured = errors.New("advice generator not configured")
	ErrEmptyResponse = errors.New("empty advice response")
	ErrMalformed     = errors.New("malformed advice response")
)

// ExpenseLine is the slice of an expense the model gets to see.
type ExpenseLine struct {
	Category string
	Amount   decimal.Decimal
	Date     time.Time
}

type Request struct {
	Kind             Kind
	UserID           string
	Income           decimal.Decimal
	TotalExpenses    decimal.Decimal
	FinancialGoals   string
	SpendingPatterns string
	Expenses         []ExpenseLine
}

// Result holds SavingTips for KindSavingTips and Alerts for KindSpendingAlerts.
type Result struct {
	SavingTips string
	Alerts     []domain.SpendingAlert
}

type Generator interface {
	GenerateAdvice(ctx context.Context, req Request) (Result, error)
}

// Disabled is the Generator used when no LLM key is configured.
type Disabled struct{}

func (Disabled) GenerateAdvice(context.Context, Request) (Result, error) {
	return Result{}, ErrNotConfigured
}
