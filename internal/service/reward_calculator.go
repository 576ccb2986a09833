package service

import (
	"staking-eligibility-service/internal/core/domain"
	"staking-eligibility-service/pkg/apperror"
)

// Reward schedule constants. The multiplier and tranche split are uniform
// across categories; only the stake cap varies.
const (
	rewardMultiplier = 4.0

	trancheDay60Share  = 0.15
	trancheDay120Share = 0.25
	trancheDay180Share = 0.60
)

// maxStakePercent maps each eligible category to its stake cap.
var maxStakePercent = map[domain.Category]float64{
	domain.CategorySoldBeforeCutoff:  100,
	domain.CategoryPurchasedInWindow: 25,
	domain.CategoryLatePurchase:      100,
}

// StakingRewardCalculator implements ports.RewardCalculator.
type StakingRewardCalculator struct{}

// NewRewardCalculator creates a new StakingRewardCalculator.
func NewRewardCalculator() *StakingRewardCalculator {
	return &StakingRewardCalculator{}
}

// Schedule derives the reward schedule for a category and an entered amount.
// The balance argument mirrors the account lookup path and does not affect
// the result. Unknown or unclassified categories carry no staking rules.
func (c *StakingRewardCalculator) Schedule(category domain.Category, enteredAmount float64, balance float64) (*domain.RewardSchedule, error) {
	if enteredAmount < 0 {
		return nil, apperror.Validation("entered amount must be non-negative")
	}

	pct, ok := maxStakePercent[category]
	if !ok {
		return nil, apperror.ErrUnknownCategory(string(category))
	}

	stake := enteredAmount * pct / 100
	total := stake * rewardMultiplier

	return &domain.RewardSchedule{
		Category:        category,
		MaxStakePercent: pct,
		StakeAmount:     stake,
		TotalReward:     total,
		Tranches: domain.Tranches{
			Day60:  total * trancheDay60Share,
			Day120: total * trancheDay120Share,
			Day180: total * trancheDay180Share,
		},
	}, nil
}
