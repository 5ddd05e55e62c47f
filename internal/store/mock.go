package store

import (
	"sync"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// MemoryStore is an in-memory RecordStore for tests. Setting one of the Err
// fields makes the matching read fail.
type MemoryStore struct {
	mu   sync.RWMutex
	data *records

	CategoriesErr   error
	KeywordsErr     error
	TransactionsErr error
	BudgetsErr      error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newRecords()}
}

// Seed appends records verbatim, bypassing validation.
func (m *MemoryStore) Seed(categories []models.Category, keywords []models.Keyword, budgets []models.Budget, transactions []models.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.categories = append(m.data.categories, categories...)
	m.data.keywords = append(m.data.keywords, keywords...)
	m.data.budgets = append(m.data.budgets, budgets...)
	m.data.transactions = append(m.data.transactions, transactions...)
}

func (m *MemoryStore) Categories(userID string) ([]models.Category, error) {
	if m.CategoriesErr != nil {
		return nil, m.CategoriesErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.categoriesFor(userID), nil
}

func (m *MemoryStore) Keywords(userID string) ([]models.Keyword, error) {
	if m.KeywordsErr != nil {
		return nil, m.KeywordsErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.keywordsFor(userID), nil
}

func (m *MemoryStore) Transactions(userID string) ([]models.Transaction, error) {
	if m.TransactionsErr != nil {
		return nil, m.TransactionsErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.transactionsFor(userID), nil
}

func (m *MemoryStore) Budgets(userID string) ([]models.Budget, error) {
	if m.BudgetsErr != nil {
		return nil, m.BudgetsErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.budgetsFor(userID), nil
}

func (m *MemoryStore) AddCategory(userID, name string) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.addCategory(userID, name)
}

func (m *MemoryStore) AddKeyword(userID, categoryID, text string) (models.Keyword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.addKeyword(userID, categoryID, text)
}

func (m *MemoryStore) DeleteKeyword(userID, keywordID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.deleteKeyword(userID, keywordID)
}

func (m *MemoryStore) SetBudget(userID, categoryID string, amount decimal.Decimal) (models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.setBudget(userID, categoryID, amount)
}

func (m *MemoryStore) AddTransaction(tx models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.addTransaction(tx)
}

func (m *MemoryStore) DeleteTransaction(userID, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.deleteTransaction(userID, transactionID)
}
