package advice

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseSavingTips(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"plain", `{"savingTips":"Cook at home."}`, "Cook at home.", nil},
		{"fenced", "```json\n{\"savingTips\": \"Cut rent\"}\n```", "Cut rent", nil},
		{"empty", "  ", "", ErrEmptyResponse},
		{"not json", "Sure! Here are tips", "", ErrMalformed},
		{"missing field", `{"tips":"x"}`, "", ErrMalformed},
		{"blank tips", `{"savingTips":"   "}`, "", ErrMalformed},
		{"wrong type", `{"savingTips":42}`, "", ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSavingTips(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("tips = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSpendingAlerts(t *testing.T) {
	got, err := ParseSpendingAlerts(`{"alerts":[{"category":"food","spikeAmount":1500.5,"message":"Food spend jumped by ₹1500.50"}]}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Category != "food" || !got[0].SpikeAmount.Equal(decimal.RequireFromString("1500.5")) {
		t.Errorf("alerts = %+v", got)
	}

	empty, err := ParseSpendingAlerts(`{"alerts":[]}`)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("empty list: %v, %v", empty, err)
	}

	bad := map[string]string{
		"empty":            "",
		"truncated":        `{"alerts":[{"category":"fo`,
		"alerts missing":   `{}`,
		"alerts null":      `{"alerts":null}`,
		"no category":      `{"alerts":[{"spikeAmount":1,"message":"m"}]}`,
		"no amount":        `{"alerts":[{"category":"food","message":"m"}]}`,
		"negative amount":  `{"alerts":[{"category":"food","spikeAmount":-3,"message":"m"}]}`,
		"no message":       `{"alerts":[{"category":"food","spikeAmount":3}]}`,
		"alerts not array": `{"alerts":"none"}`,
	}
	for name, in := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseSpendingAlerts(in); err == nil {
				t.Errorf("expected error for %s", in)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	tips, err := BuildPrompt(Request{
		Kind:             KindSavingTips,
		Income:           decimal.NewFromInt(50000),
		TotalExpenses:    decimal.RequireFromString("1234.5"),
		SpendingPatterns: "food: ₹1234.50 (100%)",
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Income: ₹50000.00", "Expenses: ₹1234.50", "Financial Goals: not specified", "savingTips"} {
		if !strings.Contains(tips, want) {
			t.Errorf("tips prompt missing %q:\n%s", want, tips)
		}
	}

	alerts, err := BuildPrompt(Request{
		Kind:   KindSpendingAlerts,
		UserID: "u1",
		Expenses: []ExpenseLine{
			{Category: "food", Amount: decimal.NewFromInt(200), Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(alerts, "- Category: food, Amount: ₹200.00, Date: 2024-01-02") {
		t.Errorf("alerts prompt:\n%s", alerts)
	}

	if _, err := BuildPrompt(Request{Kind: "poem"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}
