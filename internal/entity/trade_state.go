package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

type TradeSide string

const (
	ListingSide TradeSide = "listing"
	BidSide     TradeSide = "bid"
)

// TradeState is one party's standing offer for one asset at one price. The
// address is a pure function of (side, owner, marketplace, asset, price), so
// at most one open listing and one open bid exist per tuple; repeating the
// same call overwrites rather than duplicates.
type TradeState struct {
	Address     string    `json:"address" db:"address"`
	Side        TradeSide `json:"side" db:"side"`
	Owner       string    `json:"owner" db:"owner"`
	Marketplace string    `json:"marketplace" db:"marketplace"`
	Asset       string    `json:"asset" db:"asset"`
	Price       uint64    `json:"price" db:"price"`
	Salt        uint8     `json:"salt" db:"salt"`

	// EscrowSalt is only set on the bid side; it re-derives the bidder's
	// escrow account without a fresh salt search.
	EscrowSalt uint8 `json:"escrowSalt" db:"escrow_salt"`

	// Deposit is the storage deposit held on the record's own account,
	// refunded to the owner when the record closes.
	Deposit uint64 `json:"deposit" db:"deposit"`
}

func (t TradeState) Slug() string {
	return CreateTradeStateSlug(string(t.Side), t.Owner, t.Asset, t.Price)
}

func CreateTradeStateSlug(side, owner, asset string, price uint64) string {
	return slug.Make(fmt.Sprintf("trade-%s-%s-%s-%d", side, owner, asset, price))
}
