package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// MarketplaceConfig is the root record of an auction house. One exists per
// (authority, treasury mint) pair; its address and the addresses of its fee
// and treasury sub-accounts are deterministic, with the salts persisted so
// they never need re-deriving from scratch.
type MarketplaceConfig struct {
	Address       string `json:"address" db:"address"`
	Authority     string `json:"authority" db:"authority"`
	TreasuryMint  string `json:"treasuryMint" db:"treasury_mint"`
	FeeBasisPoints uint16 `json:"feeBasisPoints" db:"fee_basis_points"`

	FeeAccount                string `json:"feeAccount" db:"fee_account"`
	FeeWithdrawalAccount      string `json:"feeWithdrawalAccount" db:"fee_withdrawal_account"`
	TreasuryAccount           string `json:"treasuryAccount" db:"treasury_account"`
	TreasuryWithdrawalAccount string `json:"treasuryWithdrawalAccount" db:"treasury_withdrawal_account"`

	Salt         uint8 `json:"salt" db:"salt"`
	FeeSalt      uint8 `json:"feeSalt" db:"fee_salt"`
	TreasurySalt uint8 `json:"treasurySalt" db:"treasury_salt"`

	RequiresSignOff bool `json:"requiresSignOff" db:"requires_sign_off"`
}

func (m MarketplaceConfig) Slug() string {
	return CreateMarketplaceSlug(m.Authority, m.TreasuryMint)
}

func CreateMarketplaceSlug(authority, treasuryMint string) string {
	return slug.Make(fmt.Sprintf("marketplace-%s-%s", authority, treasuryMint))
}
