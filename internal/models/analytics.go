package models

// Safety levels for the projected end-of-month balance
const (
	SafetyStable   = "stable"
	SafetyWarning  = "warning"
	SafetyCritical = "critical"
)

// FinancialState represents point-in-time financial metrics derived from
// the ledger and the current budget
type FinancialState struct {
	BalanceLeft         float64 `json:"balance_left"`
	BurnRatePerDay      float64 `json:"burn_rate_per_day"`
	ProjectedEndBalance float64 `json:"projected_end_balance"`
	SafetyLevel         string  `json:"safety_level"`
	MonthExpenses       float64 `json:"month_expenses"`
	MonthIncome         float64 `json:"month_income"`
}

// RiskSignals represents the composite risk score and its components,
// each bounded to [0,100]
type RiskSignals struct {
	OverspendRisk int `json:"overspend_risk"`
	DeficitRisk   int `json:"deficit_risk"`
	RiskScore     int `json:"risk_score"`
}

// BehaviorProfile represents spending-pattern anomalies detected over
// the trailing week
type BehaviorProfile struct {
	CategorySpikes   []string `json:"category_spikes"`
	ImpulsePattern   bool     `json:"impulse_pattern"`
	AbnormalVelocity bool     `json:"abnormal_velocity"`
	WeekendSpike     bool     `json:"weekend_spike"`
	LateNightSpike   bool     `json:"late_night_spike"`
	RecentFrequency  int      `json:"recent_frequency"`
}

// Alert types
const (
	AlertBudgetCritical  = "budget_critical"
	AlertBudgetWarning   = "budget_warning"
	AlertVelocitySpike   = "velocity_spike"
	AlertBehaviorAnomaly = "behavior_anomaly"
)

// Alert is a single user-facing alert event. Alerts carry no persistent
// identity; deduplication across evaluations belongs to the notifier.
type Alert struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
