package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"finly/internal/domain"
	"finly/internal/storage/storagetest"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStorage(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()

	add := func(id, owner string, date time.Time) {
		t.Helper()
		err := store.CreateExpense(ctx, &domain.Expense{
			ID: id, OwnerID: owner, Description: id, Amount: decimal.NewFromInt(1),
			Category: domain.CategoryFood, Date: date,
		})
		if err != nil {
			t.Fatalf("CreateExpense: %v", err)
		}
	}

	add("a1", "alice", day(2024, 1, 1))
	add("b1", "bob", day(2024, 3, 1))
	add("a2", "alice", day(2024, 2, 1))
	add("a3", "alice", day(2024, 1, 1))

	t.Run("ListExpenses scopes by owner and orders by date", func(t *testing.T) {
		got, err := store.ListExpenses(ctx, "alice")
		if err != nil {
			t.Fatalf("ListExpenses: %v", err)
		}
		want := []string{"a2", "a1", "a3"}
		if len(got) != len(want) {
			t.Fatalf("got %d expenses, want %d", len(got), len(want))
		}
		for i, e := range got {
			if e.ID != want[i] {
				t.Errorf("position %d: got %s, want %s", i, e.ID, want[i])
			}
			if e.OwnerID != "alice" {
				t.Errorf("leaked expense of %s", e.OwnerID)
			}
		}
	})

	t.Run("ListExpenses for unknown owner is empty, not nil", func(t *testing.T) {
		got, err := store.ListExpenses(ctx, "carol")
		if err != nil {
			t.Fatalf("ListExpenses: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty slice, got %#v", got)
		}
	})

	t.Run("DeleteExpense refuses other owners", func(t *testing.T) {
		n, err := store.DeleteExpense(ctx, "alice", "b1")
		if err != nil || n != 0 {
			t.Fatalf("got %d, %v", n, err)
		}
		n, err = store.DeleteExpense(ctx, "bob", "b1")
		if err != nil || n != 1 {
			t.Fatalf("got %d, %v", n, err)
		}
	})
}

func TestGetOrCreateProfileConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	now := time.Now()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			def := domain.NewProfile(domain.Identity{ID: "u1", Email: "u1@example.com"}, now)
			def.ID = fmt.Sprintf("p%d", i)
			p, err := store.GetOrCreateProfile(ctx, def)
			if err != nil {
				t.Errorf("GetOrCreateProfile: %v", err)
				return
			}
			ids[i] = p.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("profiles diverged: %v", ids)
		}
	}
	if len(store.profiles) != 1 {
		t.Errorf("expected one stored profile, got %d", len(store.profiles))
	}
}

func TestListRecentReviewsDropsOrphans(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, u := range []domain.User{{ID: "u1", Email: "a@x.io", Name: "A"}, {ID: "u2", Email: "b@x.io", Name: "B"}} {
		u := u
		if err := store.CreateUser(ctx, &u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}
	for i := 0; i < 12; i++ {
		author := "u1"
		if i%3 == 0 {
			author = "u2"
		}
		r := domain.Review{ID: fmt.Sprintf("r%02d", i), Rating: 4, Comment: "ok", AuthorID: author, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.CreateReview(ctx, &r); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	got, err := store.ListRecentReviews(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentReviews: %v", err)
	}
	if len(got) != 10 || got[0].ID != "r11" || got[9].ID != "r02" {
		t.Fatalf("unexpected page: %d items, first %s", len(got), got[0].ID)
	}

	if err := store.DeleteUser(ctx, "u2"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	got, err = store.ListRecentReviews(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentReviews: %v", err)
	}
	for _, r := range got {
		if r.AuthorID == "u2" {
			t.Errorf("review %s of removed author was returned", r.ID)
		}
		if r.Author.Name != "A" {
			t.Errorf("author not joined: %+v", r.Author)
		}
	}
	// r11..r02 minus u2's r09, r06, r03
	if len(got) != 7 {
		t.Errorf("expected 7 joined reviews, got %d", len(got))
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	if err := store.CreateUser(ctx, &domain.User{ID: "1", Email: "Me@Example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateUser(ctx, &domain.User{ID: "2", Email: "me@example.com"}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	n, _ := store.CountUsers(ctx)
	if n != 1 {
		t.Errorf("CountUsers = %d", n)
	}
}

func TestContract(t *testing.T) {
	storagetest.Run(t, NewStorage())
}
