// Package storagetest is the behaviour every storage.Store backend must
// share. Backends call Run from their own tests with an empty store.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"finly/internal/domain"
	"finly/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Run exercises store. The store must start empty.
func Run(t *testing.T, store storage.Store) {
	t.Run("Expenses", func(t *testing.T) { testExpenses(t, store) })
	t.Run("Profiles", func(t *testing.T) { testProfiles(t, store) })
	t.Run("Users", func(t *testing.T) { testUsers(t, store) })
	t.Run("Reviews", func(t *testing.T) { testReviews(t, store) })
}

func testExpenses(t *testing.T, store storage.Store) {
	ctx := context.Background()
	alice, bob := uuid.NewString(), uuid.NewString()
	now := time.Now().UTC().Truncate(time.Millisecond)

	add := func(owner, desc, amount string, date time.Time) string {
		t.Helper()
		e := &domain.Expense{
			ID:          uuid.NewString(),
			OwnerID:     owner,
			Description: desc,
			Amount:      decimal.RequireFromString(amount),
			Category:    domain.CategoryFood,
			Date:        date,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense: %v", err)
		}
		now = now.Add(time.Millisecond)
		return e.ID
	}

	if got, err := store.ListExpenses(ctx, alice); err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty list = %#v, %v", got, err)
	}

	jan := add(alice, "jan", "12.50", day(2024, 1, 1))
	add(bob, "bob", "99", day(2024, 3, 1))
	feb := add(alice, "feb", "7", day(2024, 2, 1))
	jan2 := add(alice, "jan again", "0.01", day(2024, 1, 1))

	got, err := store.ListExpenses(ctx, alice)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	want := []string{feb, jan, jan2}
	if len(got) != len(want) {
		t.Fatalf("got %d expenses, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.ID != want[i] {
			t.Errorf("position %d: got %s (%s), want %s", i, e.ID, e.Description, want[i])
		}
		if e.OwnerID != alice {
			t.Errorf("leaked expense of %s", e.OwnerID)
		}
	}
	if !got[1].Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("amount round trip = %s", got[1].Amount)
	}
	if !got[1].Date.Equal(day(2024, 1, 1)) {
		t.Errorf("date round trip = %v", got[1].Date)
	}

	// Amounts arrive rounded to paise and come back unchanged, up to the cap.
	carol := uuid.NewString()
	for _, raw := range []string{`12.345`, `"0.005"`, `999999999999.99`} {
		amount, err := domain.ParseAmountJSON([]byte(raw))
		if err != nil {
			t.Fatalf("ParseAmountJSON(%s): %v", raw, err)
		}
		add(carol, raw, amount.String(), day(2024, 5, 1))
	}
	scaled, err := store.ListExpenses(ctx, carol)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	wantAmounts := []string{"12.35", "0.01", "999999999999.99"}
	if len(scaled) != len(wantAmounts) {
		t.Fatalf("got %d scaled expenses, want %d", len(scaled), len(wantAmounts))
	}
	for i, e := range scaled {
		if e.Amount.StringFixed(2) != wantAmounts[i] || !e.Amount.Equal(decimal.RequireFromString(wantAmounts[i])) {
			t.Errorf("%s stored as %s, want %s", e.Description, e.Amount, wantAmounts[i])
		}
	}

	if n, err := store.DeleteExpense(ctx, bob, jan); err != nil || n != 0 {
		t.Errorf("foreign delete = %d, %v", n, err)
	}
	if n, err := store.DeleteExpense(ctx, alice, jan); err != nil || n != 1 {
		t.Errorf("owner delete = %d, %v", n, err)
	}
	if n, err := store.DeleteExpense(ctx, alice, jan); err != nil || n != 0 {
		t.Errorf("repeat delete = %d, %v", n, err)
	}
}

func testProfiles(t *testing.T, store storage.Store) {
	ctx := context.Background()
	id := domain.Identity{ID: uuid.NewString(), Email: "ravi@example.com"}
	now := time.Now().UTC().Truncate(time.Millisecond)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[string]bool{}
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			def := domain.NewProfile(id, now)
			def.ID = uuid.NewString()
			p, err := store.GetOrCreateProfile(ctx, def)
			if errors.Is(err, domain.ErrConflict) {
				return
			}
			if err != nil {
				t.Errorf("GetOrCreateProfile: %v", err)
				return
			}
			mu.Lock()
			ids[p.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(ids) != 1 {
		t.Fatalf("concurrent first access produced %d profiles", len(ids))
	}

	def := domain.NewProfile(id, now)
	def.ID = uuid.NewString()
	p, err := store.GetOrCreateProfile(ctx, def)
	if err != nil {
		t.Fatal(err)
	}
	if !ids[p.ID] || p.Name != "ravi" || p.Income != nil {
		t.Errorf("stored profile = %+v", p)
	}

	zero := decimal.Zero
	goals := "House"
	p, err = store.UpsertProfile(ctx, def, domain.ProfilePatch{
		Income:         domain.IncomeUpdate{Set: true, Value: &zero},
		FinancialGoals: &goals,
	})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if p.Income == nil || !p.Income.IsZero() || p.FinancialGoals != "House" || p.Name != "ravi" {
		t.Errorf("after zero income = %+v", p)
	}

	rich, err := domain.ParseIncome([]byte(`"999999999999.994"`))
	if err != nil {
		t.Fatalf("ParseIncome: %v", err)
	}
	p, err = store.UpsertProfile(ctx, def, domain.ProfilePatch{Income: rich})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if p.Income == nil || !p.Income.Equal(domain.MaxAmount) {
		t.Errorf("income at cap = %v", p.Income)
	}

	p, err = store.UpsertProfile(ctx, def, domain.ProfilePatch{Income: domain.IncomeUpdate{Set: true}})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if p.Income != nil || p.FinancialGoals != "House" {
		t.Errorf("after clearing income = %+v", p)
	}

	// Upsert without a prior profile creates one.
	other := domain.NewProfile(domain.Identity{ID: uuid.NewString(), Email: "new@example.com"}, now)
	other.ID = uuid.NewString()
	name := "Neha"
	p, err = store.UpsertProfile(ctx, other, domain.ProfilePatch{Name: &name})
	if err != nil || p.Name != "Neha" || p.OwnerID != other.OwnerID {
		t.Errorf("upsert-create = %+v, %v", p, err)
	}
}

func testUsers(t *testing.T, store storage.Store) {
	ctx := context.Background()
	before, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}

	u := &domain.User{ID: uuid.NewString(), Email: "meera@example.com", Name: "Meera", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	dup := &domain.User{ID: uuid.NewString(), Email: "Meera@Example.com", Name: "Other"}
	if err := store.CreateUser(ctx, dup); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("duplicate email: err = %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "MEERA@example.com")
	if err != nil || got == nil || got.ID != u.ID || got.PasswordHash != "hash" {
		t.Errorf("GetUserByEmail = %+v, %v", got, err)
	}
	if got, err := store.GetUserByEmail(ctx, "nobody@example.com"); err != nil || got != nil {
		t.Errorf("unknown email = %+v, %v", got, err)
	}
	if got, err := store.GetUserByID(ctx, u.ID); err != nil || got == nil || got.Name != "Meera" {
		t.Errorf("GetUserByID = %+v, %v", got, err)
	}

	after, err := store.CountUsers(ctx)
	if err != nil || after != before+1 {
		t.Errorf("CountUsers = %d, want %d", after, before+1)
	}
}

func testReviews(t *testing.T, store storage.Store) {
	ctx := context.Background()
	if got, err := store.ListRecentReviews(ctx, 10); err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty reviews = %#v, %v", got, err)
	}

	author := &domain.User{ID: uuid.NewString(), Email: "author@example.com", Name: "Author"}
	if err := store.CreateUser(ctx, author); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var newest string
	for i := range 12 {
		owner := author.ID
		if i%4 == 0 {
			owner = uuid.NewString() // no such user
		}
		r := &domain.Review{ID: uuid.NewString(), Rating: 1 + i%5, Comment: "fine", AuthorID: owner, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.CreateReview(ctx, r); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
		newest = r.ID
	}

	got, err := store.ListRecentReviews(ctx, 5)
	if err != nil {
		t.Fatalf("ListRecentReviews: %v", err)
	}
	// The newest five are i = 11..7; i = 8 has no author.
	if len(got) != 4 {
		t.Fatalf("got %d reviews, want 4", len(got))
	}
	if got[0].ID != newest {
		t.Errorf("first review = %s, want %s", got[0].ID, newest)
	}
	for i, r := range got {
		if r.Author.ID != author.ID || r.Author.Name != "Author" {
			t.Errorf("author not joined: %+v", r.Author)
		}
		if i > 0 && r.CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("reviews out of order at %d", i)
		}
	}
}
