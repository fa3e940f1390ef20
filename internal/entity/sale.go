package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Sale is the receipt of a settled trade.
type Sale struct {
	Id           string `json:"id"`
	Marketplace  string `json:"marketplace"`
	Asset        string `json:"asset"`
	Buyer        string `json:"buyer"`
	Seller       string `json:"seller"`
	Price        uint64 `json:"price"`
	Fee          uint64 `json:"fee"`
	RoyaltyPaid  uint64 `json:"royaltyPaid"`
	SellerAmount uint64 `json:"sellerAmount"`
}

func (s Sale) Slug() string {
	return slug.Make(fmt.Sprintf("sale-%s", s.Id))
}
