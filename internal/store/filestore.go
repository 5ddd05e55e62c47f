package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"finsight/internal/finsighterror"
	"finsight/internal/logging"
	"finsight/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File names inside the data directory.
const (
	CategoriesFileName   = "categories.yaml"
	KeywordsFileName     = "keywords.yaml"
	BudgetsFileName      = "budgets.yaml"
	TransactionsFileName = "transactions.csv"
)

type categoriesDocument struct {
	Categories []models.Category `yaml:"categories"`
}

type keywordsDocument struct {
	Keywords []models.Keyword `yaml:"keywords"`
}

type budgetRecord struct {
	ID         string `yaml:"id"`
	UserID     string `yaml:"user_id"`
	CategoryID string `yaml:"category_id"`
	Amount     string `yaml:"amount"`
}

type budgetsDocument struct {
	Budgets []budgetRecord `yaml:"budgets"`
}

type transactionRow struct {
	ID          string `csv:"id"`
	UserID      string `csv:"user_id"`
	CategoryID  string `csv:"category_id"`
	Type        string `csv:"type"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
	Date        string `csv:"date"`
}

// FileStore keeps records in a data directory: YAML files for categories,
// keyword rules and budgets, and a CSV file for transactions. Missing files
// are treated as empty. Every call reads the files afresh, so edits made by
// another process are picked up on the next call.
type FileStore struct {
	dir    string
	logger logging.Logger
	mu     sync.Mutex
	newID  func() string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string, logger logging.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: logging.OrDiscard(logger),
		newID:  newRecords().newID,
	}
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileStore) Categories(userID string) ([]models.Category, error) {
	r, err := s.read()
	if err != nil {
		return nil, err
	}
	return r.categoriesFor(userID), nil
}

func (s *FileStore) Keywords(userID string) ([]models.Keyword, error) {
	r, err := s.read()
	if err != nil {
		return nil, err
	}
	return r.keywordsFor(userID), nil
}

func (s *FileStore) Transactions(userID string) ([]models.Transaction, error) {
	r, err := s.read()
	if err != nil {
		return nil, err
	}
	return r.transactionsFor(userID), nil
}

func (s *FileStore) Budgets(userID string) ([]models.Budget, error) {
	r, err := s.read()
	if err != nil {
		return nil, err
	}
	return r.budgetsFor(userID), nil
}

func (s *FileStore) AddCategory(userID, name string) (models.Category, error) {
	var c models.Category
	err := s.update(func(r *records) error {
		var err error
		c, err = r.addCategory(userID, name)
		return err
	}, CategoriesFileName)
	return c, err
}

func (s *FileStore) AddKeyword(userID, categoryID, text string) (models.Keyword, error) {
	var k models.Keyword
	err := s.update(func(r *records) error {
		var err error
		k, err = r.addKeyword(userID, categoryID, text)
		return err
	}, KeywordsFileName)
	return k, err
}

func (s *FileStore) DeleteKeyword(userID, keywordID string) error {
	return s.update(func(r *records) error {
		return r.deleteKeyword(userID, keywordID)
	}, KeywordsFileName)
}

func (s *FileStore) SetBudget(userID, categoryID string, amount decimal.Decimal) (models.Budget, error) {
	var b models.Budget
	err := s.update(func(r *records) error {
		var err error
		b, err = r.setBudget(userID, categoryID, amount)
		return err
	}, BudgetsFileName)
	return b, err
}

func (s *FileStore) AddTransaction(tx models.Transaction) (models.Transaction, error) {
	var saved models.Transaction
	err := s.update(func(r *records) error {
		var err error
		saved, err = r.addTransaction(tx)
		return err
	}, TransactionsFileName)
	return saved, err
}

func (s *FileStore) DeleteTransaction(userID, transactionID string) error {
	return s.update(func(r *records) error {
		return r.deleteTransaction(userID, transactionID)
	}, TransactionsFileName)
}

func (s *FileStore) read() (*records, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// update loads every file, applies fn and rewrites only the named files.
func (s *FileStore) update(fn func(*records) error, files ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(r); err != nil {
		return err
	}
	for _, name := range files {
		if err := s.save(r, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) load() (*records, error) {
	r := newRecords()
	r.newID = s.newID

	var cats categoriesDocument
	if err := s.readYAML(CategoriesFileName, &cats); err != nil {
		return nil, err
	}
	r.categories = cats.Categories

	var kws keywordsDocument
	if err := s.readYAML(KeywordsFileName, &kws); err != nil {
		return nil, err
	}
	r.keywords = kws.Keywords

	var buds budgetsDocument
	if err := s.readYAML(BudgetsFileName, &buds); err != nil {
		return nil, err
	}
	for _, b := range buds.Budgets {
		amount, err := decimal.NewFromString(b.Amount)
		if err != nil {
			return nil, &finsighterror.StoreError{Operation: "parse budget amount in", FilePath: s.path(BudgetsFileName), Err: err}
		}
		r.budgets = append(r.budgets, models.Budget{ID: b.ID, UserID: b.UserID, CategoryID: b.CategoryID, Amount: amount})
	}

	txs, err := s.readTransactions()
	if err != nil {
		return nil, err
	}
	r.transactions = txs

	s.logger.Debug("Loaded records",
		logging.F(logging.FieldFile, s.dir),
		logging.F("categories", len(r.categories)),
		logging.F("keywords", len(r.keywords)),
		logging.F("budgets", len(r.budgets)),
		logging.F("transactions", len(r.transactions)))
	return r, nil
}

func (s *FileStore) readYAML(name string, out interface{}) error {
	path := s.path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &finsighterror.StoreError{Operation: "read", FilePath: path, Err: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &finsighterror.StoreError{Operation: "parse", FilePath: path, Err: err}
	}
	return nil
}

func (s *FileStore) readTransactions() ([]models.Transaction, error) {
	path := s.path(TransactionsFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &finsighterror.StoreError{Operation: "read", FilePath: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var rows []transactionRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, &finsighterror.StoreError{Operation: "parse", FilePath: path, Err: err}
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := row.toTransaction()
		if err != nil {
			return nil, &finsighterror.StoreError{Operation: fmt.Sprintf("parse row %d of", i+1), FilePath: path, Err: err}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (s *FileStore) save(r *records, name string) error {
	path := s.path(name)
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return &finsighterror.StoreError{Operation: "create directory for", FilePath: path, Err: err}
	}

	var (
		data []byte
		err  error
	)
	switch name {
	case CategoriesFileName:
		data, err = yaml.Marshal(categoriesDocument{Categories: r.categories})
	case KeywordsFileName:
		data, err = yaml.Marshal(keywordsDocument{Keywords: r.keywords})
	case BudgetsFileName:
		doc := budgetsDocument{Budgets: make([]budgetRecord, 0, len(r.budgets))}
		for _, b := range r.budgets {
			doc.Budgets = append(doc.Budgets, budgetRecord{ID: b.ID, UserID: b.UserID, CategoryID: b.CategoryID, Amount: b.Amount.String()})
		}
		data, err = yaml.Marshal(doc)
	case TransactionsFileName:
		rows := make([]transactionRow, 0, len(r.transactions))
		for _, tx := range r.transactions {
			rows = append(rows, newTransactionRow(tx))
		}
		data, err = gocsv.MarshalBytes(&rows)
	default:
		return fmt.Errorf("unknown record file %q", name)
	}
	if err != nil {
		return &finsighterror.StoreError{Operation: "encode", FilePath: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return &finsighterror.StoreError{Operation: "write", FilePath: path, Err: err}
	}
	s.logger.Debug("Saved records", logging.F(logging.FieldFile, path))
	return nil
}

func newTransactionRow(tx models.Transaction) transactionRow {
	return transactionRow{
		ID:          tx.ID,
		UserID:      tx.UserID,
		CategoryID:  tx.CategoryID,
		Type:        tx.Type.String(),
		Amount:      tx.Amount.String(),
		Description: tx.Description,
		Date:        tx.Date.Format(time.RFC3339),
	}
}

func (row transactionRow) toTransaction() (models.Transaction, error) {
	typ, err := models.ParseTransactionType(row.Type)
	if err != nil {
		return models.Transaction{}, err
	}
	amount, err := models.ParseAmount(row.Amount)
	if err != nil {
		return models.Transaction{}, err
	}
	date, err := time.Parse(time.RFC3339, row.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid date %q: %w", row.Date, err)
	}
	return models.Transaction{
		ID:          row.ID,
		UserID:      row.UserID,
		CategoryID:  row.CategoryID,
		Type:        typ,
		Amount:      amount,
		Description: row.Description,
		Date:        date,
	}, nil
}
