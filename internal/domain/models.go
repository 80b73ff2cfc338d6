package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64     `db:"id"`
	Login     string    `db:"login"`
	Level     int       `db:"level"`
	CreatedAt time.Time `db:"created_at"`
}

type JobStatus string

const (
	JobPending    JobStatus = "PENDING"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobSucceeded  JobStatus = "SUCCEEDED"
	JobDead       JobStatus = "DEAD"
)

type JobPayload struct {
	PurchaseAmountUSD *decimal.Decimal `json:"purchaseAmountUsd,omitempty"`
	HistoryIDs        []int64          `json:"historyIds,omitempty"`
}

// RecalcJob is one level re-evaluation request for a user. Claimed with a
// lease; recovered by the rescue sweep when the lease expires.
type RecalcJob struct {
	ID             int64      `db:"id"`
	UserID         int64      `db:"user_id"`
	Reason         string     `db:"reason"`
	Status         JobStatus  `db:"status"`
	Attempts       int        `db:"attempts"`
	MaxAttempts    int        `db:"max_attempts"`
	ScheduledAt    time.Time  `db:"scheduled_at"`
	AvailableUntil *time.Time `db:"available_until"`
	PickedAt       *time.Time `db:"picked_at"`
	PickedBy       *string    `db:"picked_by"`
	Payload        JobPayload `db:"payload"`
	DedupeKey      *string    `db:"dedupe_key"`
	LastError      *string    `db:"last_error"`
	CreatedAt      time.Time  `db:"created_at"`
}

type RequirementKind string

const (
	ReqNodeAmountMin               RequirementKind = "NODE_AMOUNT_MIN"
	ReqDirectReferralCountMin      RequirementKind = "DIRECT_REFERRAL_COUNT_MIN"
	ReqGroupSalesAmountMin         RequirementKind = "GROUP_SALES_AMOUNT_MIN"
	ReqDirectDownlineLevelCountMin RequirementKind = "DIRECT_DOWNLINE_LEVEL_COUNT_MIN"
)

type PolicyRequirement struct {
	ID          int64           `db:"id"`
	Kind        RequirementKind `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Count       int             `db:"count"`
	TargetLevel int             `db:"target_level"`
}

// PolicyGroup is an AND over its requirements.
type PolicyGroup struct {
	ID           int64 `db:"id"`
	Requirements []PolicyRequirement
}

// PolicyLevel is an OR over its groups.
type PolicyLevel struct {
	ID     int64 `db:"id"`
	Level  int   `db:"level"`
	Groups []PolicyGroup
}

// LevelPolicy is the ordered tier definition tree. Levels are evaluated
// highest tier first.
type LevelPolicy struct {
	ID     int64 `db:"id"`
	Active bool  `db:"active"`
	Levels []PolicyLevel
}

// PurchaseSplitPolicy converts a purchase's USD amount into per-purpose
// pools. Only the level pool is consumed by this engine.
type PurchaseSplitPolicy struct {
	ID       int64           `db:"id"`
	BasePct  decimal.Decimal `db:"base_pct"`
	LevelPct decimal.Decimal `db:"level_pct"`
}

type BonusPlanItem struct {
	Level   int             `db:"level"`
	Percent decimal.Decimal `db:"percent"`
}

// BonusPlan holds the cumulative cap% per tier used by the waterfall.
type BonusPlan struct {
	ID     int64 `db:"id"`
	Active bool  `db:"active"`
	Items  []BonusPlanItem
}

// MiningPercentPolicy is the live percentage split for mining rewards.
// Runs snapshot it at start time; the runner never reads it directly.
type MiningPercentPolicy struct {
	ID           int64             `db:"id"`
	Active       bool              `db:"active"`
	SelfPct      decimal.Decimal   `db:"self_pct"`
	CompanyPct   decimal.Decimal   `db:"company_pct"`
	MlmPct       decimal.Decimal   `db:"mlm_pct"`
	ReferralPcts []decimal.Decimal `db:"referral_pcts"`
}

type ScheduleKind string

const (
	ScheduleInterval ScheduleKind = "INTERVAL"
	ScheduleDaily    ScheduleKind = "DAILY"
)

type MiningSchedule struct {
	ID              int64        `db:"id"`
	Kind            ScheduleKind `db:"kind"`
	Active          bool         `db:"active"`
	IntervalMinutes int          `db:"interval_minutes"`
	DailyAtMinutes  int          `db:"daily_at_minutes"`
	Timezone        string       `db:"timezone"`
	DaysOfWeekMask  int          `db:"days_of_week_mask"`
	NextRunAt       *time.Time   `db:"next_run_at"`
	LastRunAt       *time.Time   `db:"last_run_at"`
}

type RunStatus string

const (
	RunRunning   RunStatus = "RUNNING"
	RunCompleted RunStatus = "COMPLETED"
)

// MiningRun is an immutable snapshot of the active percentages taken when
// the run starts, so a mid-run policy edit cannot skew payouts.
type MiningRun struct {
	ID           int64             `db:"id"`
	ScheduleID   int64             `db:"schedule_id"`
	Status       RunStatus         `db:"status"`
	SelfPct      decimal.Decimal   `db:"self_pct"`
	CompanyPct   decimal.Decimal   `db:"company_pct"`
	MlmPct       decimal.Decimal   `db:"mlm_pct"`
	ReferralPcts []decimal.Decimal `db:"referral_pcts"`
	BonusPlanID  int64             `db:"bonus_plan_id"`
	StartedAt    time.Time         `db:"started_at"`
	CompletedAt  *time.Time        `db:"completed_at"`
}

// HolderAllowance is a package holder with their tier and aggregated daily
// DFT allowance (sum of quantity x daily rate over active packages).
type HolderAllowance struct {
	UserID    int64           `db:"user_id"`
	Level     int             `db:"level"`
	Allowance decimal.Decimal `db:"allowance"`
}

type PayoutKind string

const (
	PayoutSelf       PayoutKind = "SELF"
	PayoutCompany    PayoutKind = "COMPANY"
	PayoutReferral   PayoutKind = "REFERRAL"
	PayoutLevelBonus PayoutKind = "LEVEL_BONUS"
)

type MiningPayout struct {
	ID        int64           `db:"id"`
	RunID     int64           `db:"run_id"`
	UserID    int64           `db:"user_id"`
	Kind      PayoutKind      `db:"kind"`
	Level     int             `db:"level"`
	Amount    decimal.Decimal `db:"amount"`
	CreatedAt time.Time       `db:"created_at"`
}

type RewardHistory struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Kind      PayoutKind      `db:"kind"`
	Token     string          `db:"token"`
	Amount    decimal.Decimal `db:"amount"`
	Note      string          `db:"note"`
	CreatedAt time.Time       `db:"created_at"`
}

type TxDirection string

const (
	TxDeposit  TxDirection = "DEPOSIT"
	TxWithdraw TxDirection = "WITHDRAW"
)

type WalletTx struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Token     string          `db:"token"`
	Direction TxDirection     `db:"direction"`
	Amount    decimal.Decimal `db:"amount"`
	Note      string          `db:"note"`
	CreatedAt time.Time       `db:"created_at"`
}

// WorkerConfig is the single persisted row of worker tunables, reloaded
// before every loop iteration. Defaults apply when the row is absent.
type WorkerConfig struct {
	Active           bool  `db:"active"`
	PollIntervalSec  int   `db:"poll_interval_sec"`
	BatchSize        int   `db:"batch_size"`
	LeaseSec         int   `db:"lease_sec"`
	MaxChainDepth    int   `db:"max_chain_depth"`
	HeartbeatSteps   int   `db:"heartbeat_steps"`
	MaxWalltimeSec   int   `db:"max_walltime_sec"`
	RescueGraceSec   int   `db:"rescue_grace_sec"`
	BackoffBaseSec   int   `db:"backoff_base_sec"`
	BackoffExpCap    int   `db:"backoff_exp_cap"`
	MinEligibleLevel int   `db:"min_eligible_level"`
	SentinelUserID   int64 `db:"sentinel_user_id"`
}

func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Active:           true,
		PollIntervalSec:  5,
		BatchSize:        20,
		LeaseSec:         60,
		MaxChainDepth:    30,
		HeartbeatSteps:   4,
		MaxWalltimeSec:   600,
		RescueGraceSec:   120,
		BackoffBaseSec:   10,
		BackoffExpCap:    6,
		MinEligibleLevel: 1,
		SentinelUserID:   1,
	}
}
