package ports

import (
	"context"
	"time"

	"staking-eligibility-service/internal/core/domain"
)

// WalletRepository is the wallet directory store, keyed by address.
type WalletRepository interface {
	// Upsert writes (address, category), overwriting any prior category for
	// the address. Re-applying the same write is a no-op on directory state.
	Upsert(ctx context.Context, address string, category domain.Category) error
	GetByAddress(ctx context.Context, address string) (*domain.WalletRecord, error)
	List(ctx context.Context) ([]domain.WalletRecord, error)
}

// BalanceSource resolves a wallet's token balance. The directory does not own
// balances; an address without one yields ok=false, never a stand-in value.
type BalanceSource interface {
	Balance(ctx context.Context, address string) (balance float64, ok bool, err error)
}

// RowSource exposes the spreadsheet as an ordered sequence of cell rows.
// Row 0 is the header; column 0 holds the address and column 2 the raw date.
type RowSource interface {
	Rows(ctx context.Context) ([][]string, error)
}

// CategoryCache is a read-through cache in front of the wallet directory.
type CategoryCache interface {
	Get(ctx context.Context, address string) (*domain.WalletRecord, error) // nil, nil on miss
	Set(ctx context.Context, record *domain.WalletRecord, ttl time.Duration) error
}
