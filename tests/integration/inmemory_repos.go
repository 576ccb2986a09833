package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"staking-eligibility-service/internal/core/domain"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	records map[string]*domain.WalletRecord
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{records: make(map[string]*domain.WalletRecord)}
}

func (r *inMemoryWalletRepo) Upsert(ctx context.Context, address string, category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.records[address]; ok {
		existing.Category = category
		existing.UpdatedAt = now
		return nil
	}
	r.records[address] = &domain.WalletRecord{
		Address:   address,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *inMemoryWalletRepo) GetByAddress(ctx context.Context, address string) (*domain.WalletRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[address]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (r *inMemoryWalletRepo) List(ctx context.Context) ([]domain.WalletRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]domain.WalletRecord, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Address < records[j].Address })
	return records, nil
}

// --- In-Memory Balance Source ---

type inMemoryBalanceSource struct {
	mu       sync.RWMutex
	balances map[string]float64
}

func newInMemoryBalanceSource() *inMemoryBalanceSource {
	return &inMemoryBalanceSource{balances: make(map[string]float64)}
}

func (s *inMemoryBalanceSource) set(address string, balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[address] = balance
}

func (s *inMemoryBalanceSource) Balance(ctx context.Context, address string) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balance, ok := s.balances[address]
	return balance, ok, nil
}
