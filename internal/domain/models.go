// internal/domain/models.go
package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Identity is what the session mechanism tells us about the caller.
type Identity struct {
	ID    string
	Email string
}

type Category string

const (
	CategoryFood          Category = "food"
	CategoryRent          Category = "rent"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryOther         Category = "other"
)

var Categories = []Category{
	CategoryFood,
	CategoryRent,
	CategoryTransport,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// User is a registered identity.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Image        string    `json:"image,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the subset of a user that other people may see.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

type Expense struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"userId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ExpenseInput is an expense as a client sends it. Amount may be a JSON
// number or a numeric string.
type ExpenseInput struct {
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

// ExpenseDraft is a validated-but-not-yet-stored expense.
type ExpenseDraft struct {
	Description string          `json:"description" validate:"required,notblank,max=200"`
	Amount      decimal.Decimal `json:"amount" validate:"amount"`
	Category    string          `json:"category" validate:"required,category"`
	Date        string          `json:"date" validate:"required,isodate"`
}

type Profile struct {
	ID             string           `json:"id"`
	OwnerID        string           `json:"userId"`
	Email          string           `json:"email"`
	Name           string           `json:"name"`
	Income         *decimal.Decimal `json:"income,omitempty"`
	FinancialGoals string           `json:"financialGoals"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// IncomeUpdate carries the three states an income field can be sent in:
// absent (Set == false), cleared (Set with nil Value) and a concrete amount.
type IncomeUpdate struct {
	Set   bool
	Value *decimal.Decimal
}

// ProfileInput is a profile update as a client sends it. Income is kept raw
// so that absent, null, "" and numbers can be told apart.
type ProfileInput struct {
	Name           *string         `json:"name"`
	Income         json.RawMessage `json:"income"`
	FinancialGoals *string         `json:"financialGoals"`
}

// ProfilePatch holds only the fields the caller sent.
type ProfilePatch struct {
	Name           *string
	Income         IncomeUpdate
	FinancialGoals *string
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && !p.Income.Set && p.FinancialGoals == nil
}

// NewProfile builds the default profile for an identity that has none yet.
func NewProfile(id Identity, now time.Time) Profile {
	return Profile{
		OwnerID:   id.ID,
		Email:     id.Email,
		Name:      DefaultName(id.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultName is the local part of an email address.
func DefaultName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

type Review struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	AuthorID  string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewDraft struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,notblank,max=2000"`
}

type ReviewWithAuthor struct {
	Review
	Author PublicUser `json:"user"`
}

// SpendingAlert flags a category whose spending jumped.
type SpendingAlert struct {
	Category    string          `json:"category"`
	SpikeAmount decimal.Decimal `json:"spikeAmount"`
	Message     string          `json:"message"`
}

// Apply copies the present fields of patch onto p.
func (p *Profile) Apply(patch ProfilePatch, now time.Time) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Income.Set {
		p.Income = patch.Income.Value
	}
	if patch.FinancialGoals != nil {
		p.FinancialGoals = *patch.FinancialGoals
	}
	p.UpdatedAt = now
}
