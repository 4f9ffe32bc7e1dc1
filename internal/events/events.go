// Package events publishes expense lifecycle notifications.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ExpenseCreated = "expense.created"
	ExpenseDeleted = "expense.deleted"
)

type ExpenseEvent struct {
	Type       string           `json:"type"`
	ExpenseID  string           `json:"expenseId"`
	OwnerID    string           `json:"userId"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Category   string           `json:"category,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

func (e ExpenseEvent) JSON() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e ExpenseEvent) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, ExpenseEvent) error { return nil }
func (Nop) Close() error                                { return nil }

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []ExpenseEvent
}

func (r *Recorder) Publish(_ context.Context, e ExpenseEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Events() []ExpenseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ExpenseEvent(nil), r.events...)
}

func (r *Recorder) Close() error { return nil }
