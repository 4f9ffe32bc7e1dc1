package mongo

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"finly/internal/domain"
	"finly/internal/storage/storagetest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestRecentReviewsPipeline(t *testing.T) {
	p := RecentReviewsPipeline(7)
	stages := make([]string, len(p))
	for i, stage := range p {
		stages[i] = stage[0].Key
	}
	want := []string{"$sort", "$limit", "$lookup", "$unwind", "$project"}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v", stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d = %s, want %s", i, stages[i], want[i])
		}
	}
	if limit := p[1][0].Value; limit != 7 {
		t.Errorf("limit = %v", limit)
	}
}

func TestDecimal128RoundTrip(t *testing.T) {
	for _, s := range []string{"12.5", "0.01", "1999999.99", "0"} {
		d := decimal.RequireFromString(s)
		v, err := toDecimal128(d)
		if err != nil {
			t.Fatalf("toDecimal128(%s): %v", s, err)
		}
		back, err := fromDecimal128(v)
		if err != nil {
			t.Fatalf("fromDecimal128(%s): %v", v, err)
		}
		if !back.Equal(d) {
			t.Errorf("round trip %s -> %s", d, back)
		}
	}
}

func TestExpenseDocToDomain(t *testing.T) {
	amount, _ := bson.ParseDecimal128("42.75")
	doc := expenseDoc{ID: "e1", UserID: "u1", Description: "Taxi", Amount: amount, Category: "transport", Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)}
	e, err := doc.toDomain()
	if err != nil {
		t.Fatal(err)
	}
	if e.OwnerID != "u1" || e.Amount.String() != "42.75" || e.Category != "transport" {
		t.Errorf("expense = %+v", e)
	}
}

func TestExpenseSort(t *testing.T) {
	var keys []string
	for _, e := range ExpenseSort() {
		keys = append(keys, e.Key)
	}
	if strings.Join(keys, ",") != "date,createdAt,seq" {
		t.Errorf("sort keys = %v", keys)
	}
}

func TestNewExpenseDoc_SeqIncreases(t *testing.T) {
	now := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)
	var prev bson.ObjectID
	for i := range 50 {
		doc, err := newExpenseDoc(&domain.Expense{
			ID:        uuid.NewString(),
			OwnerID:   "u1",
			Amount:    decimal.NewFromInt(int64(i + 1)),
			Date:      now,
			CreatedAt: now,
		})
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 && bytes.Compare(prev[:], doc.Seq[:]) >= 0 {
			t.Fatalf("seq %s not after %s", doc.Seq.Hex(), prev.Hex())
		}
		prev = doc.Seq
	}
}

// TestContract needs a MongoDB server, e.g.
// TEST_MONGO_URI=mongodb://localhost:27017 go test ./internal/storage/mongo
func TestContract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := Connect(ctx, uri, "finly_test_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() {
		_ = store.db.Drop(context.Background())
		_ = store.Close(context.Background())
	})

	storagetest.Run(t, store)
}
