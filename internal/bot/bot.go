// Package bot is the Telegram front end. It speaks to the same services as
// the HTTP API; every Telegram account is its own identity.
package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"finly/internal/domain"
	"finly/internal/service"

	"golang.org/x/text/encoding/charmap"
)

const listLimit = 10

const helpText = "💸 Finly\n\n" +
	"Commands:\n" +
	"/add <amount> <category> <description> - record an expense for today\n" +
	"/list - your latest expenses\n" +
	"/delete <id> - delete an expense\n" +
	"/total - everything you have spent\n" +
	"/tips - saving tips\n" +
	"/alerts - spending spikes\n\n" +
	"Categories: food, rent, transport, entertainment, utilities, other"

type Handler struct {
	expenses *service.ExpenseService
	advice   *service.AdviceService
	now      func() time.Time
}

func NewHandler(expenses *service.ExpenseService, advice *service.AdviceService) *Handler {
	return &Handler{expenses: expenses, advice: advice, now: time.Now}
}

// Identity maps a Telegram account onto an owner id.
func Identity(telegramID int64) domain.Identity {
	return domain.Identity{ID: fmt.Sprintf("tg:%d", telegramID)}
}

// Reply runs one command and returns the text to send back.
func (h *Handler) Reply(ctx context.Context, telegramID int64, raw string) string {
	text := domain.CleanText(fixEncoding(raw))
	id := Identity(telegramID)
	cmd, args, _ := strings.Cut(text, " ")
	// Group chats append the bot name: /add@finly_bot
	cmd, _, _ = strings.Cut(strings.ToLower(cmd), "@")

	slog.Debug("Bot command", "user_id", id.ID, "command", cmd)

	var (
		reply string
		err   error
	)
	switch cmd {
	case "/start", "/help":
		reply = helpText
	case "/add":
		reply, err = h.add(ctx, id, args)
	case "/list":
		reply, err = h.list(ctx, id)
	case "/delete":
		reply, err = h.delete(ctx, id, args)
	case "/total":
		reply, err = h.total(ctx, id)
	case "/tips":
		reply, err = h.tips(ctx, id)
	case "/alerts":
		reply, err = h.alerts(ctx, id)
	default:
		reply = "Unknown command. Send /help"
	}
	if err != nil {
		return errorReply(id, cmd, err)
	}
	return reply
}

func errorReply(id domain.Identity, cmd string, err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return "❌ " + verr.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "❌ Expense not found"
	case errors.Is(err, domain.ErrUpstream):
		return "⏳ The service is busy, try again in a moment"
	default:
		slog.Error("Bot command failed", "user_id", id.ID, "command", cmd, "error", err)
		return "❌ Something went wrong, try again later"
	}
}

func (h *Handler) add(ctx context.Context, id domain.Identity, args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return "Usage: /add <amount> <category> <description>\nExample: /add 250 food Lunch with team", nil
	}
	amount, err := json.Marshal(strings.ReplaceAll(fields[0], ",", "."))
	if err != nil {
		return "", err
	}

	e, err := h.expenses.For(id).Create(ctx, domain.ExpenseInput{
		Description: strings.Join(fields[2:], " "),
		Amount:      amount,
		Category:    strings.ToLower(fields[1]),
		Date:        h.now().Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Saved %s on %s\nid: %s", domain.FormatRupees(e.Amount), e.Category, e.ID), nil
}

func (h *Handler) list(ctx context.Context, id domain.Identity) (string, error) {
	expenses, err := h.expenses.For(id).List(ctx)
	if err != nil {
		return "", err
	}
	if len(expenses) == 0 {
		return "📭 No expenses yet. Add one with /add", nil
	}

	lines := []string{"🧾 Latest expenses:"}
	for i, e := range expenses {
		if i == listLimit {
			lines = append(lines, fmt.Sprintf("…and %d more", len(expenses)-listLimit))
			break
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s\n  id: %s",
			e.Date.Format("2006-01-02"), e.Category, domain.FormatRupees(e.Amount), e.Description, e.ID))
	}
	return strings.Join(lines, "\n"), nil
}

func (h *Handler) delete(ctx context.Context, id domain.Identity, args string) (string, error) {
	expenseID := strings.TrimSpace(args)
	if expenseID == "" {
		return "Usage: /delete <id>", nil
	}
	if err := h.expenses.For(id).Delete(ctx, expenseID); err != nil {
		return "", err
	}
	return "✅ Expense deleted", nil
}

func (h *Handler) total(ctx context.Context, id domain.Identity) (string, error) {
	total, err := h.expenses.For(id).Total(ctx)
	if err != nil {
		return "", err
	}
	return "💰 Total spent: " + domain.FormatRupees(total), nil
}

func (h *Handler) tips(ctx context.Context, id domain.Identity) (string, error) {
	tips, err := h.advice.SavingTips(ctx, id, service.TipsInput{})
	if err != nil {
		return "", err
	}
	if tips == "" {
		return "🤷 No tips right now, try again later", nil
	}
	return "💡 " + tips, nil
}

func (h *Handler) alerts(ctx context.Context, id domain.Identity) (string, error) {
	alerts, err := h.advice.SpendingAlerts(ctx, id)
	if err != nil {
		return "", err
	}
	if len(alerts) == 0 {
		return "👌 No spending spikes spotted", nil
	}
	lines := []string{"⚠️ Spending alerts:"}
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("%s (+%s): %s", a.Category, domain.FormatRupees(a.SpikeAmount), a.Message))
	}
	return strings.Join(lines, "\n"), nil
}

// fixEncoding repairs text that some clients send as Windows-1251.
func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	fixed, err := charmap.Windows1251.NewDecoder().String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}
	return strings.ToValidUTF8(s, "")
}
