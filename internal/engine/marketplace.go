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

const maxFeeBasisPoints = 10000

func (e engine) CreateMarketplace(params CreateMarketplaceParams) (entity.MarketplaceConfig, error) {
	if params.FeeBasisPoints > maxFeeBasisPoints {
		return entity.MarketplaceConfig{}, ErrInvalidSellerFeeBasisPoints
	}

	addr, salt, err := e.deriver.Derive(address.Marketplace(params.Authority, params.TreasuryMint))
	if err != nil {
		return entity.MarketplaceConfig{}, err
	}

	feeAccount, feeSalt, err := e.deriver.Derive(address.Fee(addr))
	if err != nil {
		return entity.MarketplaceConfig{}, err
	}

	treasuryAccount, treasurySalt, err := e.deriver.Derive(address.Treasury(addr))
	if err != nil {
		return entity.MarketplaceConfig{}, err
	}

	config := entity.MarketplaceConfig{
		Address:                   addr,
		Authority:                 params.Authority,
		TreasuryMint:              params.TreasuryMint,
		FeeBasisPoints:            params.FeeBasisPoints,
		FeeAccount:                feeAccount,
		FeeWithdrawalAccount:      params.FeeWithdrawalAccount,
		TreasuryAccount:           treasuryAccount,
		TreasuryWithdrawalAccount: params.TreasuryWithdrawalAccount,
		Salt:                      salt,
		FeeSalt:                   feeSalt,
		TreasurySalt:              treasurySalt,
		RequiresSignOff:           params.RequiresSignOff,
	}

	err = e.store.WithinTx(func(tx *sqlx.Tx) error {
		if _, getErr := e.marketplaces.Get(tx, addr); getErr == nil {
			return ErrMarketplaceExists
		} else if !errors.Is(getErr, repository.ErrMarketplaceNotFound) {
			return getErr
		}

		return e.marketplaces.Create(tx, config)
	})
	if err != nil {
		return entity.MarketplaceConfig{}, err
	}

	zap.L().With(
		zap.String("marketplace", addr),
		zap.String("authority", params.Authority),
		zap.Uint16("feeBps", params.FeeBasisPoints),
	).Info("Engine: Marketplace created")

	event.EmitEvent(event.MarketplaceCreatedEvent, config)

	return config, nil
}

func (e engine) EscrowBalance(marketplace, bidder string) (entity.EscrowBalance, uint64, error) {
	escrow, err := e.escrows.GetByBidder(e.store.DB(), marketplace, bidder)
	if err != nil {
		return entity.EscrowBalance{}, 0, err
	}

	balance, err := e.accounts.Balance(e.store.DB(), escrow.Address)
	if err != nil {
		return entity.EscrowBalance{}, 0, err
	}

	return escrow, balance, nil
}
