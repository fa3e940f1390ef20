package engine

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mintara/auction-house/internal/address"
	"github.com/mintara/auction-house/internal/entity"
	"github.com/mintara/auction-house/internal/event"
	"github.com/mintara/auction-house/internal/repository"
	"github.com/mintara/auction-house/pkg/checked"
	"go.uber.org/zap"
)

// ExecuteSale settles a matching bid/listing pair: marketplace fee, royalty
// split and remainder are paid out of the buyer's escrow, the asset moves
// from the marketplace delegate to the buyer, and both trade states close
// with their deposits refunded. The whole unit commits or none of it does.
func (e engine) ExecuteSale(params ExecuteSaleParams) (entity.Sale, error) {
	var sale entity.Sale

	err := e.store.WithinTx(func(tx *sqlx.Tx) error {
		config, err := e.marketplaces.Get(tx, params.Marketplace)
		if err != nil {
			return err
		}

		if config.RequiresSignOff && !params.MarketplaceSignOff {
			return ErrSignOffRequired
		}

		if params.Metadata.Hash() != params.Proof.DataHash {
			return ErrMetadataHashMismatch
		}

		buyerState, err := e.tradeState(tx, entity.BidSide, params.Buyer, params.Marketplace, params.Asset, params.Price)
		if err != nil {
			return err
		}

		sellerState, err := e.tradeState(tx, entity.ListingSide, params.Seller, params.Marketplace, params.Asset, params.Price)
		if err != nil {
			return err
		}

		if buyerState.Asset != sellerState.Asset || buyerState.Asset != params.Asset {
			return ErrInvalidOrder
		}
		if buyerState.Price != sellerState.Price || buyerState.Price != params.Price {
			return ErrInvalidOrder
		}

		escrowAddr := e.deriver.DeriveWithSalt(address.Escrow(params.Marketplace, params.Buyer), buyerState.EscrowSalt)
		if !e.deriver.Verify(escrowAddr, address.Escrow(params.Marketplace, params.Buyer), buyerState.EscrowSalt) {
			return ErrInvalidTradeState
		}

		escrowBalance, err := e.accounts.Balance(tx, escrowAddr)
		if err != nil {
			return err
		}
		if escrowBalance < params.Price {
			return ErrNotEnoughFunds
		}

		if err := validateRoyaltyShares(params.Metadata.Creators); err != nil {
			return err
		}

		fee, err := checked.MulDiv(params.Price, uint64(config.FeeBasisPoints), 10000)
		if err != nil {
			return err
		}

		royaltyPool, err := checked.MulDiv(params.Price, uint64(params.RoyaltyBasisPoints), 10000)
		if err != nil {
			return err
		}

		paidOut := uint64(0)
		for _, creator := range params.Metadata.Creators {
			share, err := checked.MulDiv(royaltyPool, uint64(creator.Share), 100)
			if err != nil {
				return err
			}

			if err := e.accounts.Transfer(tx, escrowAddr, creator.Address, share); err != nil {
				return err
			}

			paidOut, err = checked.Add(paidOut, share)
			if err != nil {
				return err
			}
		}

		remaining, err := checked.Sub(params.Price, fee)
		if err != nil {
			return err
		}

		sellerAmount, err := checked.Sub(remaining, paidOut)
		if err != nil {
			return err
		}

		if err := e.accounts.Transfer(tx, escrowAddr, config.FeeAccount, fee); err != nil {
			return err
		}

		if err := e.accounts.Transfer(tx, escrowAddr, params.Seller, sellerAmount); err != nil {
			return err
		}

		signer, _, err := e.deriver.Derive(address.Signer())
		if err != nil {
			return err
		}

		if err := e.assetRegistry.Transfer(params.Asset, signer, params.Buyer, params.Proof); err != nil {
			return err
		}

		if err := e.closeTradeState(tx, sellerState); err != nil {
			return err
		}
		if err := e.closeTradeState(tx, buyerState); err != nil {
			return err
		}

		sale = entity.Sale{
			Id:           entity.NewActionId(),
			Marketplace:  params.Marketplace,
			Asset:        params.Asset,
			Buyer:        params.Buyer,
			Seller:       params.Seller,
			Price:        params.Price,
			Fee:          fee,
			RoyaltyPaid:  paidOut,
			SellerAmount: sellerAmount,
		}

		return nil
	})
	if err != nil {
		zap.L().With(
			zap.String("asset", params.Asset),
			zap.String("buyer", params.Buyer),
			zap.String("seller", params.Seller),
			zap.Uint64("price", params.Price),
			zap.Error(err),
		).Error("Engine: Failed to execute sale")
		return entity.Sale{}, err
	}

	zap.L().With(
		zap.String("asset", params.Asset),
		zap.String("buyer", params.Buyer),
		zap.String("seller", params.Seller),
		zap.Uint64("price", params.Price),
		zap.Uint64("fee", sale.Fee),
		zap.Uint64("royalty", sale.RoyaltyPaid),
	).Info("Engine: Sale executed")

	event.EmitEvent(event.SaleExecutedEvent, sale)

	return sale, nil
}

// tradeState loads and re-validates the record at the deterministic address
// for the given key tuple. The stored salt is never trusted without
// re-deriving and comparing.
func (e engine) tradeState(tx *sqlx.Tx, side entity.TradeSide, owner, marketplace, asset string, price uint64) (entity.TradeState, error) {
	seeds := address.TradeState(string(side), owner, marketplace, asset, price)

	addr, _, err := e.deriver.Derive(seeds)
	if err != nil {
		return entity.TradeState{}, err
	}

	state, err := e.tradeStates.Get(tx, addr)
	if errors.Is(err, repository.ErrTradeStateNotFound) {
		return entity.TradeState{}, ErrInvalidTradeState
	}
	if err != nil {
		return entity.TradeState{}, err
	}

	if state.Owner != owner || !e.deriver.Verify(addr, seeds, state.Salt) {
		return entity.TradeState{}, ErrInvalidTradeState
	}

	return state, nil
}

// closeTradeState deletes the record and refunds its storage deposit to the
// record owner.
func (e engine) closeTradeState(tx *sqlx.Tx, state entity.TradeState) error {
	if err := e.accounts.Transfer(tx, state.Address, state.Owner, state.Deposit); err != nil {
		return err
	}

	return e.tradeStates.Delete(tx, state.Address)
}

// validateRoyaltyShares fails closed: a creator list whose shares do not sum
// to exactly 100 would mint or burn value during the split.
func validateRoyaltyShares(creators []entity.Creator) error {
	if len(creators) == 0 {
		return nil
	}

	total := 0
	for _, creator := range creators {
		total += int(creator.Share)
	}

	if total != 100 {
		return ErrInvalidRoyaltyShares
	}

	return nil
}
