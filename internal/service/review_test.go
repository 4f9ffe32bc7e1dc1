package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"finly/internal/domain"
	"finly/internal/storage/memory"
	"finly/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func TestClampLimit(t *testing.T) {
	cases := map[int]int{-1: 10, 0: 10, 1: 1, 10: 10, 50: 50, 51: 50, 1000: 50}
	for in, want := range cases {
		if got := ClampLimit(in); got != want {
			t.Errorf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestReviewService_EmptyStore(t *testing.T) {
	got, err := NewReviewService(memory.NewStorage(), time.Second).ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("reviews = %v, want empty slice", got)
	}
}

func TestReviewService_CreateAndList(t *testing.T) {
	store := memory.NewStorage()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_ = store.CreateUser(context.Background(), &domain.User{ID: "u1", Email: "alice@example.com", Name: "Alice"})

	svc := NewReviewService(store, time.Second)
	svc.now = func() time.Time { now = now.Add(time.Minute); return now }

	for _, c := range []string{"first", "second"} {
		if _, err := svc.Create(context.Background(), alice, domain.ReviewDraft{Rating: 5, Comment: c}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Comment != "second" || got[0].Author.Name != "Alice" {
		t.Errorf("reviews = %+v", got)
	}
}

func TestReviewService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockReviewStorage(ctrl) // nothing may be written
	svc := NewReviewService(store, time.Second)

	tests := map[string]struct {
		draft domain.ReviewDraft
		field string
	}{
		"rating too high": {domain.ReviewDraft{Rating: 6, Comment: "ok"}, "rating"},
		"rating missing":  {domain.ReviewDraft{Comment: "ok"}, "rating"},
		"blank comment":   {domain.ReviewDraft{Rating: 3, Comment: " \n "}, "comment"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), alice, tt.draft)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("err = %v, want ValidationError(%s)", err, tt.field)
			}
		})
	}
}

func TestReviewService_PassesClampedLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockReviewStorage(ctrl)
	store.EXPECT().ListRecentReviews(gomock.Any(), 50).Return(nil, nil)

	got, err := NewReviewService(store, time.Second).ListRecent(context.Background(), 500)
	if err != nil || got == nil {
		t.Errorf("got %v, %v", got, err)
	}
}
