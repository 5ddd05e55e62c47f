// Package store provides per-user access to the four record kinds finsight
// works with. The analytics engine never talks to a store directly; callers
// fetch one user's records and hand them to the engine.
package store

import (
	"fmt"
	"sort"
	"strings"

	"finsight/internal/categorizer"
	"finsight/internal/finsighterror"
	"finsight/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordStore reads and writes user-scoped records. Every read returns only
// records owned by userID.
type RecordStore interface {
	Categories(userID string) ([]models.Category, error)
	Keywords(userID string) ([]models.Keyword, error)
	Transactions(userID string) ([]models.Transaction, error)
	Budgets(userID string) ([]models.Budget, error)

	// AddCategory creates a category; names are unique per user ignoring case.
	AddCategory(userID, name string) (models.Category, error)
	// AddKeyword creates a keyword rule. Text is trimmed and lower-cased and
	// must be unique per user.
	AddKeyword(userID, categoryID, text string) (models.Keyword, error)
	DeleteKeyword(userID, keywordID string) error
	// SetBudget creates or replaces the user's budget for a category.
	SetBudget(userID, categoryID string, amount decimal.Decimal) (models.Budget, error)
	AddTransaction(tx models.Transaction) (models.Transaction, error)
	// DeleteTransaction removes one of the user's transactions. Another
	// user's transaction is reported as not found.
	DeleteTransaction(userID, transactionID string) error
}

// records is the full data set shared by the in-memory and file-backed
// stores. Methods do not lock.
type records struct {
	categories   []models.Category
	keywords     []models.Keyword
	budgets      []models.Budget
	transactions []models.Transaction
	newID        func() string
}

func newRecords() *records {
	return &records{newID: uuid.NewString}
}

func (r *records) categoriesFor(userID string) []models.Category {
	var out []models.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

func (r *records) keywordsFor(userID string) []models.Keyword {
	var out []models.Keyword
	for _, k := range r.keywords {
		if k.UserID == userID {
			out = append(out, k)
		}
	}
	return out
}

func (r *records) budgetsFor(userID string) []models.Budget {
	var out []models.Budget
	for _, b := range r.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// transactionsFor returns the user's transactions, most recent first.
func (r *records) transactionsFor(userID string) []models.Transaction {
	var out []models.Transaction
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (r *records) findCategory(userID, categoryID string) (models.Category, error) {
	for _, c := range r.categories {
		if c.UserID == userID && c.ID == categoryID {
			return c, nil
		}
	}
	return models.Category{}, &finsighterror.NotFoundError{Kind: "category", Key: categoryID}
}

func (r *records) addCategory(userID, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if userID == "" {
		return models.Category{}, &finsighterror.ValidationError{Record: "category", Field: "user_id", Reason: "must not be empty"}
	}
	if name == "" {
		return models.Category{}, &finsighterror.ValidationError{Record: "category", Field: "name", Reason: "must not be empty"}
	}
	for _, c := range r.categoriesFor(userID) {
		if strings.EqualFold(c.Name, name) {
			return models.Category{}, fmt.Errorf("category %q: %w", name, finsighterror.ErrDuplicateCategory)
		}
	}

	c := models.Category{ID: r.newID(), UserID: userID, Name: name}
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *records) addKeyword(userID, categoryID, text string) (models.Keyword, error) {
	normalized, err := categorizer.NormalizeKeyword(text)
	if err != nil {
		return models.Keyword{}, err
	}
	if _, err := r.findCategory(userID, categoryID); err != nil {
		return models.Keyword{}, err
	}
	for _, k := range r.keywordsFor(userID) {
		if k.Text == normalized {
			return models.Keyword{}, fmt.Errorf("keyword %q: %w", normalized, finsighterror.ErrDuplicateKeyword)
		}
	}

	k := models.Keyword{ID: r.newID(), UserID: userID, CategoryID: categoryID, Text: normalized}
	r.keywords = append(r.keywords, k)
	return k, nil
}

func (r *records) deleteKeyword(userID, keywordID string) error {
	for i, k := range r.keywords {
		if k.UserID == userID && k.ID == keywordID {
			r.keywords = append(r.keywords[:i], r.keywords[i+1:]...)
			return nil
		}
	}
	return &finsighterror.NotFoundError{Kind: "keyword", Key: keywordID}
}

func (r *records) setBudget(userID, categoryID string, amount decimal.Decimal) (models.Budget, error) {
	if _, err := r.findCategory(userID, categoryID); err != nil {
		return models.Budget{}, err
	}
	b := models.Budget{UserID: userID, CategoryID: categoryID, Amount: amount}
	if err := b.Validate(); err != nil {
		return models.Budget{}, err
	}

	for i, existing := range r.budgets {
		if existing.UserID == userID && existing.CategoryID == categoryID {
			r.budgets[i].Amount = amount
			return r.budgets[i], nil
		}
	}

	b.ID = r.newID()
	r.budgets = append(r.budgets, b)
	return b, nil
}

func (r *records) addTransaction(tx models.Transaction) (models.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, err
	}
	if tx.HasCategory() {
		if _, err := r.findCategory(tx.UserID, tx.CategoryID); err != nil {
			return models.Transaction{}, err
		}
	}
	if tx.ID == "" {
		tx.ID = r.newID()
	}
	r.transactions = append(r.transactions, tx)
	return tx, nil
}

func (r *records) deleteTransaction(userID, transactionID string) error {
	for i, tx := range r.transactions {
		if tx.UserID == userID && tx.ID == transactionID {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return &finsighterror.NotFoundError{Kind: "transaction", Key: transactionID}
}
