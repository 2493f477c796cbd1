package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/finpulse/finpulse/internal/models"
)

// Document collections
const (
	CollectionTransactions = "transactions"
	CollectionBudget       = "budget"
	CollectionHabits       = "habits"
	CollectionHabitLog     = "habit_log"
)

// budgetDocID: the budget is a single current-month document, not historized
const budgetDocID = "current"

// Repository provides a document-style store over Postgres. Records are
// kept as JSONB keyed by (collection, id); subscribers are notified after
// every successful write so callers can re-derive state on change.
type Repository struct {
	db *sql.DB

	mu          sync.RWMutex
	subscribers map[string][]func()
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:          db,
		subscribers: make(map[string][]func()),
	}
}

// Subscribe registers a callback fired after every write to the collection.
// Callbacks run synchronously on the writing goroutine.
func (r *Repository) Subscribe(collection string, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers[collection] = append(r.subscribers[collection], fn)
}

func (r *Repository) notify(collection string) {
	r.mu.RLock()
	subs := make([]func(), len(r.subscribers[collection]))
	copy(subs, r.subscribers[collection])
	r.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

// SaveDocument inserts or replaces a document in a collection
func (r *Repository) SaveDocument(collection, id string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	query := `
		INSERT INTO finpulse.documents (collection, id, doc, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (collection, id)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.Exec(query, collection, id, raw); err != nil {
		return fmt.Errorf("failed to save document %s/%s: %w", collection, id, err)
	}

	r.notify(collection)
	return nil
}

// DeleteDocument removes a document from a collection
func (r *Repository) DeleteDocument(collection, id string) error {
	query := `DELETE FROM finpulse.documents WHERE collection = $1 AND id = $2`
	if _, err := r.db.Exec(query, collection, id); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}

	r.notify(collection)
	return nil
}

// getDocument decodes a single document into out
func (r *Repository) getDocument(collection, id string, out interface{}) error {
	var raw []byte
	query := `SELECT doc FROM finpulse.documents WHERE collection = $1 AND id = $2`
	err := r.db.QueryRow(query, collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	return json.Unmarshal(raw, out)
}

// listDocuments returns the raw documents of a collection in insertion order
func (r *Repository) listDocuments(collection string) ([][]byte, []string, error) {
	query := `
		SELECT id, doc FROM finpulse.documents
		WHERE collection = $1
		ORDER BY created_at, id`
	rows, err := r.db.Query(query, collection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	defer rows.Close()

	var docs [][]byte
	var ids []string
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, nil, fmt.Errorf("failed to scan document: %w", err)
		}
		ids = append(ids, id)
		docs = append(docs, raw)
	}
	return docs, ids, rows.Err()
}

// SaveTransaction stores a ledger entry
func (r *Repository) SaveTransaction(tx models.Transaction) error {
	return r.SaveDocument(CollectionTransactions, tx.ID, tx)
}

// DeleteTransaction removes a ledger entry
func (r *Repository) DeleteTransaction(id string) error {
	return r.DeleteDocument(CollectionTransactions, id)
}

// ListTransactions returns the full ledger snapshot
func (r *Repository) ListTransactions() ([]models.Transaction, error) {
	docs, _, err := r.listDocuments(CollectionTransactions)
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(docs))
	for _, raw := range docs {
		var tx models.Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			return nil, fmt.Errorf("failed to decode transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// SaveBudget stores the current-month budget
func (r *Repository) SaveBudget(b models.Budget) error {
	return r.SaveDocument(CollectionBudget, budgetDocID, b)
}

// GetBudget returns the current budget amount, zero when none is set
func (r *Repository) GetBudget() (float64, error) {
	var b models.Budget
	err := r.getDocument(CollectionBudget, budgetDocID, &b)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return b.Amount, nil
}

// SaveHabit stores a habit record
func (r *Repository) SaveHabit(h models.Habit) error {
	return r.SaveDocument(CollectionHabits, h.ID, h)
}

// GetHabit returns a habit by id
func (r *Repository) GetHabit(id string) (*models.Habit, error) {
	var h models.Habit
	err := r.getDocument(CollectionHabits, id, &h)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("habit not found")
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListHabits returns all habit records
func (r *Repository) ListHabits() ([]models.Habit, error) {
	docs, _, err := r.listDocuments(CollectionHabits)
	if err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0, len(docs))
	for _, raw := range docs {
		var h models.Habit
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("failed to decode habit: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, nil
}

// AppendHabitLog records a habit completion in the date's log bucket
func (r *Repository) AppendHabitLog(date, habitID string) error {
	var ids []string
	err := r.getDocument(CollectionHabitLog, date, &ids)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	for _, id := range ids {
		if id == habitID {
			return nil
		}
	}
	ids = append(ids, habitID)
	return r.SaveDocument(CollectionHabitLog, date, ids)
}

// GetHabitLog returns the full completion log keyed by date
func (r *Repository) GetHabitLog() (models.HabitLog, error) {
	docs, ids, err := r.listDocuments(CollectionHabitLog)
	if err != nil {
		return nil, err
	}

	log := make(models.HabitLog, len(docs))
	for i, raw := range docs {
		var habitIDs []string
		if err := json.Unmarshal(raw, &habitIDs); err != nil {
			return nil, fmt.Errorf("failed to decode habit log for %s: %w", ids[i], err)
		}
		log[ids[i]] = habitIDs
	}
	return log, nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO finpulse.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM finpulse.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
