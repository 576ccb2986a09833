package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// BalanceRepo implements ports.BalanceSource from the wallet_balances table.
// Balances are written by an external settlement process; this adapter only
// reads them. An address without a row yields ok=false rather than a default.
type BalanceRepo struct {
	pool Pool
}

// NewBalanceRepo creates a new BalanceRepo.
func NewBalanceRepo(pool Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool}
}

// Balance returns the recorded token balance for the address.
func (r *BalanceRepo) Balance(ctx context.Context, address string) (float64, bool, error) {
	query := `SELECT balance FROM wallet_balances WHERE address = $1`

	var balance float64
	err := r.pool.QueryRow(ctx, query, address).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get wallet balance: %w", err)
	}
	return balance, true, nil
}
