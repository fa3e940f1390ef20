package engine

import (
	"github.com/jmoiron/sqlx"
	"github.com/mintara/auction-house/internal/address"
	"github.com/mintara/auction-house/internal/entity"
	"github.com/mintara/auction-house/internal/event"
	"github.com/mintara/auction-house/pkg/checked"
	"go.uber.org/zap"
)

// Bid ensures the bidder's escrow holds at least the bid price, topping it up
// by exactly the shortfall, then creates or overwrites the bid record keyed
// by (bidder, asset, price).
func (e engine) Bid(params BidParams) (entity.TradeState, error) {
	var state entity.TradeState

	err := e.store.WithinTx(func(tx *sqlx.Tx) error {
		if _, err := e.marketplaces.Get(tx, params.Marketplace); err != nil {
			return err
		}

		escrowAddr, escrowSalt, err := e.deriver.Derive(address.Escrow(params.Marketplace, params.Bidder))
		if err != nil {
			return err
		}

		escrow := entity.EscrowBalance{
			Address:     escrowAddr,
			Marketplace: params.Marketplace,
			Bidder:      params.Bidder,
			Salt:        escrowSalt,
		}
		if err := e.escrows.Upsert(tx, escrow); err != nil {
			return err
		}

		balance, err := e.accounts.Balance(tx, escrowAddr)
		if err != nil {
			return err
		}

		if balance < params.Price {
			required, err := checked.Sub(params.Price, balance)
			if err != nil {
				return err
			}

			if err := e.accounts.Transfer(tx, params.Bidder, escrowAddr, required); err != nil {
				return err
			}

			zap.L().With(
				zap.String("bidder", params.Bidder),
				zap.Uint64("topUp", required),
			).Debug("Engine: Escrow topped up")
		}

		state, err = e.upsertTradeState(tx, entity.BidSide, params.Bidder, params.Marketplace, params.Asset, params.Price, escrowSalt)
		return err
	})
	if err != nil {
		zap.L().With(
			zap.String("bidder", params.Bidder),
			zap.String("asset", params.Asset),
			zap.Uint64("price", params.Price),
			zap.Error(err),
		).Error("Engine: Failed to place bid")
		return entity.TradeState{}, err
	}

	zap.L().With(
		zap.String("bidder", params.Bidder),
		zap.String("asset", params.Asset),
		zap.Uint64("price", params.Price),
	).Info("Engine: Bid placed")

	event.EmitEvent(event.BidPlacedEvent, entity.MarketAction{
		Id:          entity.NewActionId(),
		Marketplace: params.Marketplace,
		Asset:       params.Asset,
		Action:      entity.BidAction,
		Owner:       params.Bidder,
		Price:       params.Price,
	})

	return state, nil
}
