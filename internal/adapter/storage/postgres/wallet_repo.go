package postgres

import (
	"context"
	"errors"
	"fmt"

	"staking-eligibility-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Upsert writes a wallet classification, overwriting any prior category for
// the address. Each call is a single independent statement.
func (r *WalletRepo) Upsert(ctx context.Context, address string, category domain.Category) error {
	query := `INSERT INTO wallets (address, category, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (address) DO UPDATE SET category = EXCLUDED.category, updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query, address, category)
	if err != nil {
		return fmt.Errorf("upsert wallet: %w", err)
	}
	return nil
}

// GetByAddress fetches a wallet record by address, nil when absent.
func (r *WalletRepo) GetByAddress(ctx context.Context, address string) (*domain.WalletRecord, error) {
	query := `SELECT address, category, created_at, updated_at
		FROM wallets WHERE address = $1`

	rec := &domain.WalletRecord{}
	err := r.pool.QueryRow(ctx, query, address).Scan(
		&rec.Address, &rec.Category, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by address: %w", err)
	}
	return rec, nil
}

// List returns every stored wallet record ordered by address.
func (r *WalletRepo) List(ctx context.Context) ([]domain.WalletRecord, error) {
	query := `SELECT address, category, created_at, updated_at
		FROM wallets ORDER BY address`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var records []domain.WalletRecord
	for rows.Next() {
		var rec domain.WalletRecord
		if err := rows.Scan(&rec.Address, &rec.Category, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return records, nil
}
