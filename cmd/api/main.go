package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/finpulse/finpulse/internal/config"
	"github.com/finpulse/finpulse/internal/engine"
	"github.com/finpulse/finpulse/internal/handler"
	"github.com/finpulse/finpulse/internal/integrations/rates"
	"github.com/finpulse/finpulse/internal/middleware"
	"github.com/finpulse/finpulse/internal/notifier"
	"github.com/finpulse/finpulse/internal/repository"
	"github.com/finpulse/finpulse/internal/service"
	"github.com/finpulse/finpulse/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// All date bucketing happens in one configured zone
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		logger.Fatalf("Invalid time zone %q: %v", cfg.TimeZone, err)
	}
	eng := engine.NewWithClock(func() time.Time { return time.Now().In(loc) })

	// Initialize layers
	repo := repository.NewRepository(db)
	var sink notifier.Sink
	if cfg.SMTPHost != "" {
		sink = email.NewSender(cfg, logger)
	}
	notif := notifier.New(logger, sink, cfg.AlertEmail)
	svc := service.NewService(repo, logger, cfg, eng, notif)
	h := handler.NewHandler(svc)
	ratesClient := rates.NewClient(cfg, logger)
	ratesCache := rates.NewCache(rates.DefaultCacheTTL)

	// Daily re-evaluation so stale snapshots still produce alerts
	c := cron.New()
	if _, err := c.AddFunc("0 9 * * *", svc.Reevaluate); err != nil {
		logger.Fatalf("Failed to schedule re-evaluation job: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/transactions", h.AddTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/budget", h.SetBudget).Methods("PUT")
	authRouter.HandleFunc("/state", h.State).Methods("GET")
	authRouter.HandleFunc("/risk", h.Risk).Methods("GET")
	authRouter.HandleFunc("/behavior", h.Behavior).Methods("GET")
	authRouter.HandleFunc("/alerts", h.Alerts).Methods("GET")
	authRouter.HandleFunc("/advice/spending", h.SpendingAdvice).Methods("GET")
	authRouter.HandleFunc("/advice/habits", h.HabitAdvice).Methods("GET")
	authRouter.HandleFunc("/habits", h.CreateHabit).Methods("POST")
	authRouter.HandleFunc("/habits", h.ListHabits).Methods("GET")
	authRouter.HandleFunc("/habits/{id}/done", h.MarkHabitDone).Methods("POST")
	authRouter.HandleFunc("/habits/stats", h.HabitStats).Methods("GET")
	// Key rate endpoint
	r.HandleFunc("/rates", func(w http.ResponseWriter, r *http.Request) {
		rate, err := ratesClient.KeyRate(ratesCache)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get key rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"key_rate": rate})
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
