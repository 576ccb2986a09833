package domain

// Tranches is the three-part reward release schedule.
type Tranches struct {
	Day60  float64 `json:"day60"`
	Day120 float64 `json:"day120"`
	Day180 float64 `json:"day180"`
}

// RewardSchedule is the derived staking outcome for a wallet. It is computed
// on demand and never persisted.
type RewardSchedule struct {
	Address         string   `json:"address,omitempty"`
	Category        Category `json:"category"`
	MaxStakePercent float64  `json:"max_stake_percentage"`
	StakeAmount     float64  `json:"stake_amount"`
	TotalReward     float64  `json:"total_reward"`
	Tranches        Tranches `json:"tranches"`
}
