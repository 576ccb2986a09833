// Package handler holds the gin HTTP handlers and router.
package handler

import (
	"strconv"
	"time"

	"staking-eligibility-service/internal/adapter/http/dto"
	"staking-eligibility-service/internal/core/domain"
	"staking-eligibility-service/internal/core/ports"
	"staking-eligibility-service/pkg/apperror"
	"staking-eligibility-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles the wallet classification and reward endpoints.
type WalletHandler struct {
	ingestionSvc ports.IngestionService
	querySvc     ports.RewardQueryService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ingestionSvc ports.IngestionService, querySvc ports.RewardQueryService) *WalletHandler {
	return &WalletHandler{
		ingestionSvc: ingestionSvc,
		querySvc:     querySvc,
	}
}

// WalletsByCategory handles GET /api/v1/wallets-by-category. It runs a full
// ingestion pass over the configured spreadsheet and returns the grouped
// address buckets.
func (h *WalletHandler) WalletsByCategory(c *gin.Context) {
	result, err := h.ingestionSvc.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WalletsByCategoryResponse{
		RunID:             result.RunID,
		SoldBeforeCutoff:  result.Grouped.SoldBeforeCutoff,
		PurchasedInWindow: result.Grouped.PurchasedInWindow,
		LatePurchases:     result.Grouped.LatePurchases,
		Rows:              result.Rows,
		Skipped:           result.Skipped,
		Stored:            result.Stored,
	})
}

// Wallets handles GET /api/v1/wallets.
func (h *WalletHandler) Wallets(c *gin.Context) {
	records, err := h.querySvc.Wallets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WalletResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, toWalletResponse(rec))
	}

	response.OK(c, dto.WalletListResponse{Items: items, Total: len(items)})
}

// WalletRewardDetails handles GET /api/v1/wallet-reward-details/:address/:amount.
func (h *WalletHandler) WalletRewardDetails(c *gin.Context) {
	address := c.Param("address")
	amount, err := strconv.ParseFloat(c.Param("amount"), 64)
	if err != nil {
		response.Error(c, apperror.Validation("amount must be a number"))
		return
	}

	schedule, err := h.querySvc.WalletReward(c.Request.Context(), address, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toRewardDetailsResponse(schedule))
}

// WalletDetails handles GET /api/v1/wallet-details/:address. The wallet's
// recorded balance is used as the staked amount.
func (h *WalletHandler) WalletDetails(c *gin.Context) {
	schedule, err := h.querySvc.WalletDetails(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toRewardDetailsResponse(schedule))
}

func toWalletResponse(rec domain.WalletRecord) dto.WalletResponse {
	return dto.WalletResponse{
		Address:   rec.Address,
		Category:  string(rec.Category),
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toRewardDetailsResponse(s *domain.RewardSchedule) dto.RewardDetailsResponse {
	return dto.RewardDetailsResponse{
		Address:         s.Address,
		Category:        string(s.Category),
		MaxStakePercent: s.MaxStakePercent,
		StakeAmount:     s.StakeAmount,
		TotalReward:     s.TotalReward,
		Tranches: dto.TranchesResponse{
			Day60:  s.Tranches.Day60,
			Day120: s.Tranches.Day120,
			Day180: s.Tranches.Day180,
		},
	}
}
