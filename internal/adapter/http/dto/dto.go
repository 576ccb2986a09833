// Package dto holds the HTTP request and response bodies.
package dto

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// WalletsByCategoryResponse is the outcome of an ingestion run: the grouped
// address buckets plus run counters.
type WalletsByCategoryResponse struct {
	RunID             string   `json:"run_id"`
	SoldBeforeCutoff  []string `json:"sold_before_cutoff"`
	PurchasedInWindow []string `json:"purchased_in_window"`
	LatePurchases     []string `json:"purchased_after_late_entry"`
	Rows              int      `json:"rows"`
	Skipped           int      `json:"skipped"`
	Stored            int      `json:"stored"`
}

// WalletResponse is one persisted wallet classification.
type WalletResponse struct {
	Address   string `json:"address"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// WalletListResponse wraps the full wallet directory listing.
type WalletListResponse struct {
	Items []WalletResponse `json:"items"`
	Total int              `json:"total"`
}

// TranchesResponse is the three-part reward release schedule.
type TranchesResponse struct {
	Day60  float64 `json:"day60"`
	Day120 float64 `json:"day120"`
	Day180 float64 `json:"day180"`
}

// RewardDetailsResponse is the computed staking schedule for a wallet.
type RewardDetailsResponse struct {
	Address         string           `json:"address"`
	Category        string           `json:"category"`
	MaxStakePercent float64          `json:"max_stake_percentage"`
	StakeAmount     float64          `json:"stake_amount"`
	TotalReward     float64          `json:"total_reward"`
	Tranches        TranchesResponse `json:"tranches"`
}
