package ports

import (
	"context"
	"time"

	"staking-eligibility-service/internal/core/domain"
)

// Classifier assigns an eligibility category to a transaction timestamp.
type Classifier interface {
	Classify(ts time.Time) domain.Category
}

// RewardCalculator derives the staking schedule for a category and a
// user-entered amount. balance is accepted for parity with the account
// lookup path and does not affect the schedule.
type RewardCalculator interface {
	Schedule(category domain.Category, enteredAmount float64, balance float64) (*domain.RewardSchedule, error)
}

// IngestionService drives a full pass over the spreadsheet source.
type IngestionService interface {
	Run(ctx context.Context) (*IngestionResult, error)
}

// IngestionResult is the outcome of one ingestion run.
type IngestionResult struct {
	RunID   string                `json:"run_id"`
	Grouped domain.GroupedWallets `json:"grouped"`
	Rows    int                   `json:"rows"`
	Skipped int                   `json:"skipped"`
	Stored  int                   `json:"stored"`
}

// RewardQueryService answers reward-detail requests from the directory.
type RewardQueryService interface {
	// WalletReward computes the schedule for a stored wallet and a
	// caller-supplied entered amount.
	WalletReward(ctx context.Context, address string, enteredAmount float64) (*domain.RewardSchedule, error)
	// WalletDetails is the legacy variant: the wallet's recorded balance is
	// used as the entered amount.
	WalletDetails(ctx context.Context, address string) (*domain.RewardSchedule, error)
	// Wallets returns every persisted record.
	Wallets(ctx context.Context) ([]domain.WalletRecord, error)
}

// TokenService handles operator JWT operations.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}

// HashService verifies operator access keys (Argon2id).
type HashService interface {
	Hash(key string) (string, error)
	Verify(key string, hash string) (bool, error)
}

// AuthService authenticates operators for the ingestion trigger.
type AuthService interface {
	Login(ctx context.Context, accessKey string) (token string, expiry time.Time, err error)
}
