package service

import (
	"context"
	"fmt"

	"staking-eligibility-service/internal/core/domain"
	"staking-eligibility-service/internal/core/ports"
	"staking-eligibility-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// RewardQueryServiceImpl implements ports.RewardQueryService. Reads go
// through the category cache when one is configured, falling back to the
// wallet directory.
type RewardQueryServiceImpl struct {
	walletRepo ports.WalletRepository
	balances   ports.BalanceSource
	cache      ports.CategoryCache // nil = cache disabled
	calculator ports.RewardCalculator
	log        zerolog.Logger
}

// NewRewardQueryService creates a new RewardQueryServiceImpl.
func NewRewardQueryService(
	walletRepo ports.WalletRepository,
	balances ports.BalanceSource,
	cache ports.CategoryCache,
	calculator ports.RewardCalculator,
	log zerolog.Logger,
) *RewardQueryServiceImpl {
	return &RewardQueryServiceImpl{
		walletRepo: walletRepo,
		balances:   balances,
		cache:      cache,
		calculator: calculator,
		log:        log,
	}
}

// WalletReward computes a reward schedule for the stored category and the
// caller-supplied entered amount.
func (s *RewardQueryServiceImpl) WalletReward(ctx context.Context, address string, enteredAmount float64) (*domain.RewardSchedule, error) {
	if enteredAmount < 0 {
		return nil, apperror.Validation("entered amount must be non-negative")
	}

	record, err := s.lookup(ctx, address)
	if err != nil {
		return nil, err
	}
	if record.Category == "" {
		return nil, apperror.ErrCategoryUndefined(address)
	}

	// The schedule does not depend on the balance; resolve it best-effort
	// for parity with the account lookup.
	balance, ok, err := s.balances.Balance(ctx, address)
	if err != nil || !ok {
		if err != nil {
			s.log.Warn().Err(err).Str("address", address).Msg("balance lookup failed")
		}
		balance = 0
	}

	schedule, err := s.calculator.Schedule(record.Category, enteredAmount, balance)
	if err != nil {
		return nil, err
	}
	schedule.Address = address
	return schedule, nil
}

// WalletDetails is the legacy read path: the wallet's recorded balance is the
// entered amount. A wallet without a recorded balance fails loudly.
func (s *RewardQueryServiceImpl) WalletDetails(ctx context.Context, address string) (*domain.RewardSchedule, error) {
	record, err := s.lookup(ctx, address)
	if err != nil {
		return nil, err
	}
	if record.Category == "" {
		return nil, apperror.ErrCategoryUndefined(address)
	}

	balance, ok, err := s.balances.Balance(ctx, address)
	if err != nil {
		return nil, apperror.ErrSourceUnavailable(fmt.Errorf("balance lookup for %s: %w", address, err))
	}
	if !ok {
		return nil, apperror.ErrBalanceUnavailable(address)
	}

	schedule, err := s.calculator.Schedule(record.Category, balance, balance)
	if err != nil {
		return nil, err
	}
	schedule.Address = address
	return schedule, nil
}

// Wallets returns every persisted wallet record.
func (s *RewardQueryServiceImpl) Wallets(ctx context.Context) ([]domain.WalletRecord, error) {
	records, err := s.walletRepo.List(ctx)
	if err != nil {
		return nil, apperror.ErrSourceUnavailable(fmt.Errorf("listing wallets: %w", err))
	}
	return records, nil
}

// lookup resolves a wallet record via cache then directory.
func (s *RewardQueryServiceImpl) lookup(ctx context.Context, address string) (*domain.WalletRecord, error) {
	if s.cache != nil {
		record, err := s.cache.Get(ctx, address)
		if err != nil {
			s.log.Warn().Err(err).Str("address", address).Msg("category cache read failed, falling through to directory")
		}
		if record != nil {
			return record, nil
		}
	}

	record, err := s.walletRepo.GetByAddress(ctx, address)
	if err != nil {
		return nil, apperror.ErrSourceUnavailable(fmt.Errorf("wallet lookup for %s: %w", address, err))
	}
	if record == nil {
		return nil, apperror.ErrWalletNotFound(address)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, record, categoryCacheTTL); err != nil {
			s.log.Warn().Err(err).Str("address", address).Msg("failed to populate category cache")
		}
	}

	return record, nil
}
