package engine

import (
	"github.com/jmoiron/sqlx"
	"github.com/mintara/auction-house/internal/entity"
	"github.com/mintara/auction-house/internal/event"
	"go.uber.org/zap"
)

// Cancel reclaims the caller's own trade-state record, refunding its storage
// deposit. A cancelled bid leaves the escrow balance untouched; the funds
// stay committed for a future bid. Cancelling a listing can optionally hand
// delegation of the asset back to the owner.
func (e engine) Cancel(params CancelParams) error {
	err := e.store.WithinTx(func(tx *sqlx.Tx) error {
		state, err := e.tradeState(tx, params.Side, params.Owner, params.Marketplace, params.Asset, params.Price)
		if err != nil {
			return err
		}

		if params.RevertDelegation && params.Side == entity.ListingSide {
			if err := e.assetRegistry.Delegate(params.Asset, params.Owner, params.Owner, params.Proof); err != nil {
				return err
			}
		}

		return e.closeTradeState(tx, state)
	})
	if err != nil {
		zap.L().With(
			zap.String("owner", params.Owner),
			zap.String("asset", params.Asset),
			zap.Uint64("price", params.Price),
			zap.Error(err),
		).Error("Engine: Failed to cancel trade state")
		return err
	}

	zap.L().With(
		zap.String("owner", params.Owner),
		zap.String("asset", params.Asset),
		zap.String("side", string(params.Side)),
	).Info("Engine: Trade state cancelled")

	event.EmitEvent(event.TradeStateCancelledEvent, entity.MarketAction{
		Id:          entity.NewActionId(),
		Marketplace: params.Marketplace,
		Asset:       params.Asset,
		Action:      entity.CancelAction,
		Owner:       params.Owner,
		Price:       params.Price,
	})

	return nil
}
