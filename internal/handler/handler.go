package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/finpulse/finpulse/internal/service"
	"github.com/gorilla/mux"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// AddTransaction handles ledger entry creation
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type      string     `json:"type"`
		Amount    float64    `json:"amount"`
		Category  string     `json:"category"`
		Date      string     `json:"date"`
		Timestamp *time.Time `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.AddTransaction(req.Type, req.Amount, req.Category, req.Date, req.Timestamp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// ListTransactions returns the full ledger
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.ListTransactions()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// DeleteTransaction removes a ledger entry
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.svc.DeleteTransaction(id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetBudget stores the current-month budget
func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetBudget(req.Amount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// State returns the derived financial state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.State()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Risk returns the derived risk signals
func (h *Handler) Risk(w http.ResponseWriter, r *http.Request) {
	risks, err := h.svc.Risk()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, risks)
}

// Behavior returns the derived behavior profile
func (h *Handler) Behavior(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Behavior()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Alerts returns the current alert list
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.Alerts()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// SpendingAdvice returns advisory text for the financial situation
func (h *Handler) SpendingAdvice(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.SpendingAdvice()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"advice": text})
}

// HabitAdvice returns advisory text for the habit statistics
func (h *Handler) HabitAdvice(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.HabitAdvice()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"advice": text})
}

// CreateHabit stores a new habit
func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	habit, err := h.svc.CreateHabit(req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

// ListHabits returns all habit records
func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := h.svc.ListHabits()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

// MarkHabitDone records today's completion for a habit
func (h *Handler) MarkHabitDone(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	habit, err := h.svc.MarkHabitDone(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// HabitStats returns aggregate habit statistics
func (h *Handler) HabitStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.HabitStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
