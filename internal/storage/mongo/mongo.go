// internal/storage/mongo/mongo.go
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finly/internal/domain"
	"finly/internal/storage"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ExpenseCollection = "expenses"
	ProfileCollection = "userProfiles"
	ReviewCollection  = "reviews"
	UserCollection    = "users"
)

var _ storage.Store = (*Storage)(nil)

type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the client, checks the server and makes sure the unique
// indexes the profile and user invariants rely on exist.
func Connect(ctx context.Context, uri, database string) (*Storage, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := NewStorage(client, database)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	slog.Info("Connected to MongoDB", "database", database)
	return s, nil
}

func NewStorage(client *mongo.Client, database string) *Storage {
	return &Storage{client: client, db: client.Database(database)}
}

func (s *Storage) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		ExpenseCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		},
		ProfileCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ReviewCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		slog.Error("Failed to disconnect from MongoDB", "error", err)
		return err
	}
	slog.Info("Disconnected from MongoDB")
	return nil
}

// === documents ===

type expenseDoc struct {
	ID          string          `bson:"_id"`
	UserID      string          `bson:"userId"`
	Description string          `bson:"description"`
	Amount      bson.Decimal128 `bson:"amount"`
	Category    string          `bson:"category"`
	Date        time.Time       `bson:"date"`
	CreatedAt   time.Time       `bson:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt"`
	// Seq orders inserts that share a millisecond; ObjectIDs from one
	// process only ever increase.
	Seq bson.ObjectID `bson:"seq"`
}

type profileDoc struct {
	ID             string           `bson:"_id"`
	UserID         string           `bson:"userId"`
	Email          string           `bson:"email"`
	Name           string           `bson:"name"`
	Income         *bson.Decimal128 `bson:"income,omitempty"`
	FinancialGoals string           `bson:"financialGoals"`
	CreatedAt      time.Time        `bson:"createdAt"`
	UpdatedAt      time.Time        `bson:"updatedAt"`
}

type reviewDoc struct {
	ID        string    `bson:"_id"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	UserID    string    `bson:"userId"`
	CreatedAt time.Time `bson:"createdAt"`
}

type userDoc struct {
	ID             string    `bson:"_id"`
	Email          string    `bson:"email"`
	Name           string    `bson:"name"`
	Image          string    `bson:"image,omitempty"`
	HashedPassword string    `bson:"hashedPassword,omitempty"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

type reviewWithUserDoc struct {
	reviewDoc `bson:",inline"`
	User      userDoc `bson:"user"`
}

func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	v, err := bson.ParseDecimal128(d.String())
	if err != nil {
		return bson.Decimal128{}, fmt.Errorf("encode amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v bson.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode amount %s: %w", v, err)
	}
	return d, nil
}

func (d expenseDoc) toDomain() (domain.Expense, error) {
	amount, err := fromDecimal128(d.Amount)
	if err != nil {
		return domain.Expense{}, err
	}
	return domain.Expense{
		ID:          d.ID,
		OwnerID:     d.UserID,
		Description: d.Description,
		Amount:      amount,
		Category:    domain.Category(d.Category),
		Date:        d.Date.UTC(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func (d profileDoc) toDomain() (*domain.Profile, error) {
	p := &domain.Profile{
		ID:             d.ID,
		OwnerID:        d.UserID,
		Email:          d.Email,
		Name:           d.Name,
		FinancialGoals: d.FinancialGoals,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.Income != nil {
		income, err := fromDecimal128(*d.Income)
		if err != nil {
			return nil, err
		}
		p.Income = &income
	}
	return p, nil
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		Image:        d.Image,
		PasswordHash: d.HashedPassword,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// === ExpenseStorage ===

func (s *Storage) ListExpenses(ctx context.Context, ownerID string) ([]domain.Expense, error) {
	coll := s.db.Collection(ExpenseCollection)
	opts := options.Find().SetSort(ExpenseSort())

	cursor, err := coll.Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cursor.Close(ctx)

	expenses := []domain.Expense{}
	for cursor.Next(ctx) {
		var doc expenseDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		e, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("expense cursor: %w", err)
	}
	return expenses, nil
}

// ExpenseSort lists newest dates first and same-date expenses in insertion
// order.
func ExpenseSort() bson.D {
	return bson.D{
		{Key: "date", Value: -1},
		{Key: "createdAt", Value: 1},
		{Key: "seq", Value: 1},
	}
}

func newExpenseDoc(e *domain.Expense) (expenseDoc, error) {
	amount, err := toDecimal128(e.Amount)
	if err != nil {
		return expenseDoc{}, err
	}
	return expenseDoc{
		ID:          e.ID,
		UserID:      e.OwnerID,
		Description: e.Description,
		Amount:      amount,
		Category:    string(e.Category),
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Seq:         bson.NewObjectID(),
	}, nil
}

func (s *Storage) CreateExpense(ctx context.Context, e *domain.Expense) error {
	doc, err := newExpenseDoc(e)
	if err != nil {
		return err
	}
	if _, err := s.db.Collection(ExpenseCollection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert expense: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (s *Storage) DeleteExpense(ctx context.Context, ownerID, expenseID string) (int64, error) {
	res, err := s.db.Collection(ExpenseCollection).DeleteOne(ctx, bson.M{"_id": expenseID, "userId": ownerID})
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	return res.DeletedCount, nil
}

// === ProfileStorage ===

func (s *Storage) GetOrCreateProfile(ctx context.Context, def domain.Profile) (*domain.Profile, error) {
	insert := profileDoc{
		ID:             def.ID,
		UserID:         def.OwnerID,
		Email:          def.Email,
		Name:           def.Name,
		FinancialGoals: def.FinancialGoals,
		CreatedAt:      def.CreatedAt,
		UpdatedAt:      def.UpdatedAt,
	}
	update := bson.D{{Key: "$setOnInsert", Value: insert}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc profileDoc
	err := s.db.Collection(ProfileCollection).
		FindOneAndUpdate(ctx, bson.M{"userId": def.OwnerID}, update, opts).
		Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("upsert profile: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return doc.toDomain()
}

func (s *Storage) UpsertProfile(ctx context.Context, def domain.Profile, patch domain.ProfilePatch) (*domain.Profile, error) {
	set := bson.D{{Key: "updatedAt", Value: def.UpdatedAt}}
	onInsert := bson.D{
		{Key: "_id", Value: def.ID},
		{Key: "email", Value: def.Email},
		{Key: "createdAt", Value: def.CreatedAt},
	}

	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	} else {
		onInsert = append(onInsert, bson.E{Key: "name", Value: def.Name})
	}
	if patch.FinancialGoals != nil {
		set = append(set, bson.E{Key: "financialGoals", Value: *patch.FinancialGoals})
	} else {
		onInsert = append(onInsert, bson.E{Key: "financialGoals", Value: def.FinancialGoals})
	}

	update := bson.D{{Key: "$set", Value: set}, {Key: "$setOnInsert", Value: onInsert}}
	if patch.Income.Set {
		if patch.Income.Value != nil {
			income, err := toDecimal128(*patch.Income.Value)
			if err != nil {
				return nil, err
			}
			update[0].Value = append(set, bson.E{Key: "income", Value: income})
		} else {
			update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "income", Value: ""}}})
		}
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc profileDoc
	err := s.db.Collection(ProfileCollection).
		FindOneAndUpdate(ctx, bson.M{"userId": def.OwnerID}, update, opts).
		Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("update profile: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return doc.toDomain()
}

// === ReviewStorage ===

func (s *Storage) CreateReview(ctx context.Context, r *domain.Review) error {
	doc := reviewDoc{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		UserID:    r.AuthorID,
		CreatedAt: r.CreatedAt,
	}
	if _, err := s.db.Collection(ReviewCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// RecentReviewsPipeline sorts and caps before the author join, so a removed
// author shrinks the page instead of pulling in older reviews.
func RecentReviewsPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UserCollection},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "rating", Value: 1},
			{Key: "comment", Value: 1},
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "user._id", Value: 1},
			{Key: "user.name", Value: 1},
			{Key: "user.email", Value: 1},
			{Key: "user.image", Value: 1},
		}}},
	}
}

func (s *Storage) ListRecentReviews(ctx context.Context, limit int) ([]domain.ReviewWithAuthor, error) {
	cursor, err := s.db.Collection(ReviewCollection).Aggregate(ctx, RecentReviewsPipeline(limit))
	if err != nil {
		return nil, fmt.Errorf("aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []domain.ReviewWithAuthor{}
	for cursor.Next(ctx) {
		var doc reviewWithUserDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, domain.ReviewWithAuthor{
			Review: domain.Review{
				ID:        doc.ID,
				Rating:    doc.Rating,
				Comment:   doc.Comment,
				AuthorID:  doc.UserID,
				CreatedAt: doc.CreatedAt,
			},
			Author: doc.User.toDomain().Public(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("review cursor: %w", err)
	}
	return reviews, nil
}

// === UserStorage ===

func (s *Storage) CreateUser(ctx context.Context, u *domain.User) error {
	doc := userDoc{
		ID:             u.ID,
		Email:          strings.ToLower(u.Email),
		Name:           u.Name,
		Image:          u.Image,
		HashedPassword: u.PasswordHash,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if _, err := s.db.Collection(UserCollection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Storage) findUser(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	err := s.db.Collection(UserCollection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"email": strings.ToLower(email)})
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.db.Collection(UserCollection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
