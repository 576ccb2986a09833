package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"staking-eligibility-service/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletColumns() []string {
	return []string{"address", "category", "created_at", "updated_at"}
}

func walletRow(address string, category domain.Category) *pgxmock.Rows {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return pgxmock.NewRows(walletColumns()).AddRow(address, category, now, now)
}

func TestWalletRepo_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs("0xabc", domain.CategorySoldBeforeCutoff).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), "0xabc", domain.CategorySoldBeforeCutoff)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Upsert_Overwrite(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs("0xabc", domain.CategoryPurchasedInWindow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO wallets").
		WithArgs("0xabc", domain.CategoryLatePurchase).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Upsert(context.Background(), "0xabc", domain.CategoryPurchasedInWindow))
	require.NoError(t, repo.Upsert(context.Background(), "0xabc", domain.CategoryLatePurchase))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByAddress(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE address").
		WithArgs("0xabc").
		WillReturnRows(walletRow("0xabc", domain.CategoryPurchasedInWindow))

	rec, err := repo.GetByAddress(context.Background(), "0xabc")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "0xabc", rec.Address)
	assert.Equal(t, domain.CategoryPurchasedInWindow, rec.Category)
	assert.Nil(t, rec.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByAddress_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE address").
		WithArgs("0xmissing").
		WillReturnRows(pgxmock.NewRows(walletColumns()))

	rec, err := repo.GetByAddress(context.Background(), "0xmissing")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	now := time.Now().UTC().Truncate(time.Microsecond)
	rows := pgxmock.NewRows(walletColumns()).
		AddRow("0xaaa", domain.CategorySoldBeforeCutoff, now, now).
		AddRow("0xbbb", domain.CategoryLatePurchase, now, now)

	mock.ExpectQuery("SELECT .+ FROM wallets ORDER BY address").
		WillReturnRows(rows)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0xaaa", records[0].Address)
	assert.Equal(t, domain.CategoryLatePurchase, records[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_List_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM wallets ORDER BY address").
		WillReturnError(errors.New("connection refused"))

	_, err = repo.List(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
