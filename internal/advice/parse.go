package advice

import (
	"encoding/json"
	"fmt"
	"strings"

	"finly/internal/domain"

	"github.com/shopspring/decimal"
)

// stripFences removes a ```json ... ``` wrapper some models add anyway.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func ParseSavingTips(content string) (string, error) {
	content = stripFences(content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	var payload struct {
		SavingTips *string `json:"savingTips"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if payload.SavingTips == nil || strings.TrimSpace(*payload.SavingTips) == "" {
		return "", fmt.Errorf("%w: savingTips missing", ErrMalformed)
	}
	return strings.TrimSpace(*payload.SavingTips), nil
}

// ParseSpendingAlerts accepts only a well-formed {"alerts": [...]} object.
// An explicit empty list is valid.
func ParseSpendingAlerts(content string) ([]domain.SpendingAlert, error) {
	content = stripFences(content)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	var payload struct {
		Alerts *[]struct {
			Category    string           `json:"category"`
			SpikeAmount *decimal.Decimal `json:"spikeAmount"`
			Message     string           `json:"message"`
		} `json:"alerts"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if payload.Alerts == nil {
		return nil, fmt.Errorf("%w: alerts missing", ErrMalformed)
	}

	alerts := make([]domain.SpendingAlert, 0, len(*payload.Alerts))
	for i, a := range *payload.Alerts {
		switch {
		case strings.TrimSpace(a.Category) == "":
			return nil, fmt.Errorf("%w: alert %d has no category", ErrMalformed, i)
		case a.SpikeAmount == nil || a.SpikeAmount.IsNegative():
			return nil, fmt.Errorf("%w: alert %d has a bad spikeAmount", ErrMalformed, i)
		case strings.TrimSpace(a.Message) == "":
			return nil, fmt.Errorf("%w: alert %d has no message", ErrMalformed, i)
		}
		alerts = append(alerts, domain.SpendingAlert{
			Category:    strings.TrimSpace(a.Category),
			SpikeAmount: *a.SpikeAmount,
			Message:     strings.TrimSpace(a.Message),
		})
	}
	return alerts, nil
}
