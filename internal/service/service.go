package service

import (
	"fmt"
	"time"

	"github.com/finpulse/finpulse/internal/config"
	"github.com/finpulse/finpulse/internal/engine"
	"github.com/finpulse/finpulse/internal/models"
	"github.com/finpulse/finpulse/internal/notifier"
	"github.com/finpulse/finpulse/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service handles business logic: it owns the ledger, feeds snapshots to
// the analytics engine and pushes fresh alerts to the notifier whenever
// the ledger changes.
type Service struct {
	repo     *repository.Repository
	log      *logrus.Logger
	config   *config.Config
	engine   *engine.Engine
	notifier *notifier.Notifier
	advisor  *Advisor
}

// NewService initializes a new service and subscribes it to ledger changes
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, eng *engine.Engine, notif *notifier.Notifier) *Service {
	s := &Service{
		repo:     repo,
		log:      log,
		config:   cfg,
		engine:   eng,
		notifier: notif,
		advisor:  NewAdvisor(),
	}

	// Event-driven re-evaluation: every ledger or budget mutation triggers
	// a full recomputation of the derived state.
	repo.Subscribe(repository.CollectionTransactions, s.Reevaluate)
	repo.Subscribe(repository.CollectionBudget, s.Reevaluate)

	return s
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// AddTransaction validates and stores a new ledger entry
func (s *Service) AddTransaction(txType string, amount float64, category, date string, timestamp *time.Time) (*models.Transaction, error) {
	if txType != models.TypeExpense && txType != models.TypeIncome {
		return nil, fmt.Errorf("invalid transaction type: %s", txType)
	}
	if amount < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}

	tx := models.Transaction{
		ID:        uuid.NewString(),
		Type:      txType,
		Amount:    amount,
		Category:  category,
		Date:      date,
		Timestamp: timestamp,
	}

	if err := s.repo.SaveTransaction(tx); err != nil {
		return nil, err
	}

	s.log.Infof("Transaction added: %s %s %.2f on %s", tx.ID, tx.Type, tx.Amount, tx.Date)
	return &tx, nil
}

// DeleteTransaction removes a ledger entry
func (s *Service) DeleteTransaction(id string) error {
	return s.repo.DeleteTransaction(id)
}

// ListTransactions returns the full ledger
func (s *Service) ListTransactions() ([]models.Transaction, error) {
	return s.repo.ListTransactions()
}

// SetBudget stores the current-month budget
func (s *Service) SetBudget(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	return s.repo.SaveBudget(models.Budget{
		Amount:    amount,
		UpdatedAt: s.engine.Today(),
	})
}

// snapshot loads the ledger and budget in one place
func (s *Service) snapshot() ([]models.Transaction, float64, error) {
	txs, err := s.repo.ListTransactions()
	if err != nil {
		return nil, 0, err
	}
	budget, err := s.repo.GetBudget()
	if err != nil {
		return nil, 0, err
	}
	return txs, budget, nil
}

// State derives the current financial state
func (s *Service) State() (models.FinancialState, error) {
	txs, budget, err := s.snapshot()
	if err != nil {
		return models.FinancialState{}, err
	}
	return s.engine.ComputeState(txs, budget), nil
}

// Risk derives the current risk signals
func (s *Service) Risk() (models.RiskSignals, error) {
	txs, budget, err := s.snapshot()
	if err != nil {
		return models.RiskSignals{}, err
	}
	state := s.engine.ComputeState(txs, budget)
	return s.engine.ComputeRisk(state, budget), nil
}

// Behavior derives the current behavior profile
func (s *Service) Behavior() (models.BehaviorProfile, error) {
	txs, err := s.repo.ListTransactions()
	if err != nil {
		return models.BehaviorProfile{}, err
	}
	return s.engine.ComputeBehavior(txs), nil
}

// Alerts derives the current alert list
func (s *Service) Alerts() ([]models.Alert, error) {
	txs, budget, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return s.engine.ComputeAlerts(txs, budget), nil
}

// Reevaluate recomputes alerts from the current snapshot and publishes
// them through the notifier. Called on every ledger change and from the
// daily cron job.
func (s *Service) Reevaluate() {
	alerts, err := s.Alerts()
	if err != nil {
		s.log.Errorf("Failed to re-evaluate alerts: %v", err)
		return
	}
	if delivered := s.notifier.Publish(alerts); len(delivered) > 0 {
		s.log.Infof("Published %d alert(s)", len(delivered))
	}
}

// SpendingAdvice returns advisory text for the current financial situation
func (s *Service) SpendingAdvice() (string, error) {
	txs, budget, err := s.snapshot()
	if err != nil {
		return "", err
	}
	state := s.engine.ComputeState(txs, budget)
	risks := s.engine.ComputeRisk(state, budget)
	behavior := s.engine.ComputeBehavior(txs)
	return s.advisor.SpendingAdvice(state, risks, behavior), nil
}

// HabitAdvice returns advisory text for the current habit statistics
func (s *Service) HabitAdvice() (string, error) {
	stats, err := s.HabitStats()
	if err != nil {
		return "", err
	}
	return s.advisor.HabitAdvice(stats), nil
}

// CreateHabit stores a new habit with an empty streak
func (s *Service) CreateHabit(name string) (*models.Habit, error) {
	if name == "" {
		return nil, fmt.Errorf("habit name is required")
	}

	h := models.Habit{ID: uuid.NewString(), Name: name}
	if err := s.repo.SaveHabit(h); err != nil {
		return nil, err
	}

	s.log.Infof("Habit created: %s (%s)", h.Name, h.ID)
	return &h, nil
}

// ListHabits returns all habit records
func (s *Service) ListHabits() ([]models.Habit, error) {
	return s.repo.ListHabits()
}

// MarkHabitDone records today's completion for a habit and updates its
// streak. A second completion on the same day is a no-op.
func (s *Service) MarkHabitDone(id string) (*models.Habit, error) {
	h, err := s.repo.GetHabit(id)
	if err != nil {
		return nil, err
	}

	today := s.engine.Today()
	if !engine.UpdateStreak(h, today) {
		return h, nil
	}

	if err := s.repo.SaveHabit(*h); err != nil {
		return nil, err
	}
	if err := s.repo.AppendHabitLog(today, h.ID); err != nil {
		return nil, err
	}

	s.log.Infof("Habit done: %s, streak %d", h.Name, h.Streak)
	return h, nil
}

// HabitStats derives aggregate habit statistics
func (s *Service) HabitStats() (models.HabitStats, error) {
	habits, err := s.repo.ListHabits()
	if err != nil {
		return models.HabitStats{}, err
	}
	log, err := s.repo.GetHabitLog()
	if err != nil {
		return models.HabitStats{}, err
	}
	return s.engine.ComputeHabitStats(habits, log), nil
}
