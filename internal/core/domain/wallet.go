package domain

import "time"

// Category is the eligibility classification assigned to a wallet from its
// transaction timestamp. The three eligible categories map to staking rules;
// CategoryUnclassified carries no rules.
type Category string

const (
	// CategorySoldBeforeCutoff marks wallets whose transaction predates the sell cutoff.
	CategorySoldBeforeCutoff Category = "sold_before_cutoff"
	// CategoryPurchasedInWindow marks wallets that transacted between the sell
	// cutoff and the end of the purchase window.
	CategoryPurchasedInWindow Category = "purchased_in_window"
	// CategoryLatePurchase marks wallets that transacted after the late-entry start.
	CategoryLatePurchase Category = "purchased_after_late_entry"
	// CategoryUnclassified marks wallets matched by no eligibility window.
	CategoryUnclassified Category = "unclassified"
)

// Eligible reports whether the category qualifies for staking rules.
func (c Category) Eligible() bool {
	switch c {
	case CategorySoldBeforeCutoff, CategoryPurchasedInWindow, CategoryLatePurchase:
		return true
	}
	return false
}

// WalletRecord is a persisted wallet classification. Address is an opaque,
// case-sensitive identifier; Balance is owned by an external source and may
// be absent.
type WalletRecord struct {
	Address   string    `json:"address"`
	Category  Category  `json:"category"`
	Balance   *float64  `json:"balance,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupedWallets holds the per-category address buckets produced by an
// ingestion run. Addresses keep arrival order; duplicates are preserved.
type GroupedWallets struct {
	SoldBeforeCutoff  []string `json:"sold_before_cutoff"`
	PurchasedInWindow []string `json:"purchased_in_window"`
	LatePurchases     []string `json:"purchased_after_late_entry"`
}

// Add appends an address to the bucket for an eligible category.
// Unclassified addresses are never bucketed.
func (g *GroupedWallets) Add(category Category, address string) {
	switch category {
	case CategorySoldBeforeCutoff:
		g.SoldBeforeCutoff = append(g.SoldBeforeCutoff, address)
	case CategoryPurchasedInWindow:
		g.PurchasedInWindow = append(g.PurchasedInWindow, address)
	case CategoryLatePurchase:
		g.LatePurchases = append(g.LatePurchases, address)
	}
}
