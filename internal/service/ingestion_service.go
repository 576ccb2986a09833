package service

import (
	"context"
	"fmt"
	"time"

	"staking-eligibility-service/internal/core/domain"
	"staking-eligibility-service/internal/core/ports"
	"staking-eligibility-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Spreadsheet column positions: column 0 is the address, column 2 the raw date.
const (
	colAddress = 0
	colRawDate = 2
)

const categoryCacheTTL = time.Hour

// IngestionServiceImpl implements ports.IngestionService. It drives every
// data row through the classifier and upserts eligible classifications into
// the wallet directory, one independent write per row (last write wins, no
// cross-row transaction).
type IngestionServiceImpl struct {
	source           ports.RowSource
	classifier       ports.Classifier
	walletRepo       ports.WalletRepository
	cache            ports.CategoryCache // nil = cache disabled
	keepUnclassified bool
	log              zerolog.Logger
}

// NewIngestionService creates a new IngestionServiceImpl.
func NewIngestionService(
	source ports.RowSource,
	classifier ports.Classifier,
	walletRepo ports.WalletRepository,
	cache ports.CategoryCache,
	keepUnclassified bool,
	log zerolog.Logger,
) *IngestionServiceImpl {
	return &IngestionServiceImpl{
		source:           source,
		classifier:       classifier,
		walletRepo:       walletRepo,
		cache:            cache,
		keepUnclassified: keepUnclassified,
		log:              log,
	}
}

// Run performs a full ingestion pass. Rows with unparseable dates are logged
// and skipped; they contribute to no bucket and no persisted record. Any
// directory write failure aborts the run, leaving rows written so far in
// place.
func (s *IngestionServiceImpl) Run(ctx context.Context) (*ports.IngestionResult, error) {
	rows, err := s.source.Rows(ctx)
	if err != nil {
		return nil, apperror.ErrSourceUnavailable(fmt.Errorf("reading rows: %w", err))
	}

	result := &ports.IngestionResult{RunID: uuid.New().String()}

	for i, row := range rows {
		if i == 0 {
			continue // header row
		}
		result.Rows++

		address := cell(row, colAddress)
		rawDate := cell(row, colRawDate)

		ts, err := ParseCellDate(rawDate)
		if err != nil {
			result.Skipped++
			s.log.Warn().
				Str("run_id", result.RunID).
				Str("address", address).
				Str("raw_date", rawDate).
				Err(err).
				Msg("skipping row with invalid date")
			continue
		}

		category := s.classifier.Classify(ts)
		result.Grouped.Add(category, address)

		if !category.Eligible() && !s.keepUnclassified {
			continue
		}

		if err := s.walletRepo.Upsert(ctx, address, category); err != nil {
			return nil, apperror.ErrSourceUnavailable(fmt.Errorf("upsert wallet %s: %w", address, err))
		}
		result.Stored++

		if s.cache != nil {
			record := &domain.WalletRecord{Address: address, Category: category}
			if err := s.cache.Set(ctx, record, categoryCacheTTL); err != nil {
				s.log.Warn().Err(err).Str("address", address).Msg("failed to refresh category cache")
			}
		}
	}

	s.log.Info().
		Str("run_id", result.RunID).
		Int("rows", result.Rows).
		Int("skipped", result.Skipped).
		Int("stored", result.Stored).
		Msg("ingestion run complete")

	return result, nil
}

// cell returns the column value, or "" when the row is too short.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
