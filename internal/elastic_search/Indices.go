package elastic_search

import (
	"fmt"

	"github.com/mintara/auction-house/internal/config"
)

type Indices string

var (
	MarketActionIndex Indices = "marketaction"
	SaleIndex         Indices = "sale"
)

// Get prefixes the index with the network so environments never collide.
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.auctionhouse.%s", config.Get().Network, string(*i))
}

func All() []Indices {
	return []Indices{MarketActionIndex, SaleIndex}
}
