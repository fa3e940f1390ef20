package engine

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mintara/auction-house/internal/address"
	"github.com/mintara/auction-house/internal/entity"
	"github.com/mintara/auction-house/internal/event"
	"github.com/mintara/auction-house/internal/repository"
	"go.uber.org/zap"
)

// List delegates control of the asset to the marketplace signer and creates
// or overwrites the seller's listing record for (owner, asset, price).
func (e engine) List(params ListParams) (entity.TradeState, error) {
	var state entity.TradeState

	err := e.store.WithinTx(func(tx *sqlx.Tx) error {
		if _, err := e.marketplaces.Get(tx, params.Marketplace); err != nil {
			return err
		}

		signer, _, err := e.deriver.Derive(address.Signer())
		if err != nil {
			return err
		}

		if err := e.assetRegistry.Delegate(params.Asset, params.Owner, signer, params.Proof); err != nil {
			return err
		}

		state, err = e.upsertTradeState(tx, entity.ListingSide, params.Owner, params.Marketplace, params.Asset, params.Price, 0)
		return err
	})
	if err != nil {
		zap.L().With(
			zap.String("owner", params.Owner),
			zap.String("asset", params.Asset),
			zap.Uint64("price", params.Price),
			zap.Error(err),
		).Error("Engine: Failed to create listing")
		return entity.TradeState{}, err
	}

	zap.L().With(
		zap.String("owner", params.Owner),
		zap.String("asset", params.Asset),
		zap.Uint64("price", params.Price),
	).Info("Engine: Listing created")

	event.EmitEvent(event.ListingCreatedEvent, entity.MarketAction{
		Id:          entity.NewActionId(),
		Marketplace: params.Marketplace,
		Asset:       params.Asset,
		Action:      entity.ListingAction,
		Owner:       params.Owner,
		Price:       params.Price,
	})

	return state, nil
}

// upsertTradeState creates the record at its deterministic address if absent,
// charging the storage deposit from the owner, then writes the agreement
// fields. A record that already exists keeps its deposit.
func (e engine) upsertTradeState(tx *sqlx.Tx, side entity.TradeSide, owner, marketplace, asset string, price uint64, escrowSalt uint8) (entity.TradeState, error) {
	seeds := address.TradeState(string(side), owner, marketplace, asset, price)
	addr, salt, err := e.deriver.Derive(seeds)
	if err != nil {
		return entity.TradeState{}, err
	}

	deposit := uint64(0)

	existing, err := e.tradeStates.Get(tx, addr)
	if err == nil {
		deposit = existing.Deposit
	} else if errors.Is(err, repository.ErrTradeStateNotFound) {
		deposit = e.tradeStateDeposit
		if err := e.accounts.Transfer(tx, owner, addr, deposit); err != nil {
			return entity.TradeState{}, err
		}
	} else {
		return entity.TradeState{}, err
	}

	state := entity.TradeState{
		Address:     addr,
		Side:        side,
		Owner:       owner,
		Marketplace: marketplace,
		Asset:       asset,
		Price:       price,
		Salt:        salt,
		EscrowSalt:  escrowSalt,
		Deposit:     deposit,
	}

	if err := e.tradeStates.Upsert(tx, state); err != nil {
		return entity.TradeState{}, err
	}

	return state, nil
}
