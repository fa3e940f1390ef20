// Package engine implements the trade-state and settlement operations of the
// auction house: marketplace creation, listing, bidding, sale execution and
// cancellation. Every operation is a single all-or-nothing unit over the
// record store; external registry calls are synchronous and abort the unit
// on failure.
package engine

import (
	"github.com/mintara/auction-house/internal/address"
	"github.com/mintara/auction-house/internal/entity"
	"github.com/mintara/auction-house/internal/registry"
	"github.com/mintara/auction-house/internal/repository"
	"github.com/mintara/auction-house/internal/store"
)

type Engine interface {
	CreateMarketplace(params CreateMarketplaceParams) (entity.MarketplaceConfig, error)
	List(params ListParams) (entity.TradeState, error)
	Bid(params BidParams) (entity.TradeState, error)
	ExecuteSale(params ExecuteSaleParams) (entity.Sale, error)
	Cancel(params CancelParams) error

	EscrowBalance(marketplace, bidder string) (entity.EscrowBalance, uint64, error)
}

type engine struct {
	store         *store.Store
	deriver       address.Deriver
	marketplaces  repository.MarketplaceRepository
	tradeStates   repository.TradeStateRepository
	escrows       repository.EscrowRepository
	accounts      repository.AccountRepository
	assetRegistry registry.AssetRegistry

	tradeStateDeposit uint64
}

func NewEngine(
	store *store.Store,
	deriver address.Deriver,
	marketplaces repository.MarketplaceRepository,
	tradeStates repository.TradeStateRepository,
	escrows repository.EscrowRepository,
	accounts repository.AccountRepository,
	assetRegistry registry.AssetRegistry,
	tradeStateDeposit uint64,
) Engine {
	return engine{
		store:             store,
		deriver:           deriver,
		marketplaces:      marketplaces,
		tradeStates:       tradeStates,
		escrows:           escrows,
		accounts:          accounts,
		assetRegistry:     assetRegistry,
		tradeStateDeposit: tradeStateDeposit,
	}
}

type CreateMarketplaceParams struct {
	Authority                 string `json:"authority"`
	TreasuryMint              string `json:"treasuryMint"`
	FeeBasisPoints            uint16 `json:"feeBasisPoints"`
	FeeWithdrawalAccount      string `json:"feeWithdrawalAccount"`
	TreasuryWithdrawalAccount string `json:"treasuryWithdrawalAccount"`
	RequiresSignOff           bool   `json:"requiresSignOff"`
}

type ListParams struct {
	Marketplace string       `json:"marketplace"`
	Owner       string       `json:"owner"`
	Asset       string       `json:"asset"`
	Price       uint64       `json:"price"`
	Proof       entity.Proof `json:"proof"`
}

type BidParams struct {
	Marketplace string `json:"marketplace"`
	Bidder      string `json:"bidder"`
	Asset       string `json:"asset"`
	Price       uint64 `json:"price"`
}

type ExecuteSaleParams struct {
	Marketplace        string              `json:"marketplace"`
	Seller             string              `json:"seller"`
	Buyer              string              `json:"buyer"`
	Asset              string              `json:"asset"`
	Price              uint64              `json:"price"`
	Proof              entity.Proof        `json:"proof"`
	RoyaltyBasisPoints uint16              `json:"royaltyBasisPoints"`
	Metadata           entity.MetadataArgs `json:"metadata"`
	MarketplaceSignOff bool                `json:"marketplaceSignOff"`
}

type CancelParams struct {
	Marketplace      string           `json:"marketplace"`
	Owner            string           `json:"owner"`
	Asset            string           `json:"asset"`
	Price            uint64           `json:"price"`
	Side             entity.TradeSide `json:"side"`
	Proof            entity.Proof     `json:"proof"`
	RevertDelegation bool             `json:"revertDelegation"`
}
