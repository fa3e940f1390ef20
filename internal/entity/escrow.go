package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// EscrowBalance is the per-bidder holding of committed funds for one
// marketplace. The value itself sits on the ledger account at Address; this
// record carries the derivation salt and ownership metadata.
type EscrowBalance struct {
	Address     string `json:"address" db:"address"`
	Marketplace string `json:"marketplace" db:"marketplace"`
	Bidder      string `json:"bidder" db:"bidder"`
	Salt        uint8  `json:"salt" db:"salt"`
}

func (e EscrowBalance) Slug() string {
	return CreateEscrowSlug(e.Marketplace, e.Bidder)
}

func CreateEscrowSlug(marketplace, bidder string) string {
	return slug.Make(fmt.Sprintf("escrow-%s-%s", marketplace, bidder))
}
