package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mintara/auction-house/internal/entity"
)

var (
	ErrMarketplaceNotFound = errors.New("marketplace not found")
)

type MarketplaceRepository interface {
	Get(q sqlx.Ext, address string) (entity.MarketplaceConfig, error)
	Create(q sqlx.Ext, config entity.MarketplaceConfig) error
}

type marketplaceRepository struct{}

func NewMarketplaceRepository() MarketplaceRepository {
	return marketplaceRepository{}
}

func (r marketplaceRepository) Get(q sqlx.Ext, address string) (entity.MarketplaceConfig, error) {
	var config entity.MarketplaceConfig
	err := sqlx.Get(q, &config, "SELECT * FROM marketplaces WHERE address = ?", address)
	if errors.Is(err, sql.ErrNoRows) {
		return config, ErrMarketplaceNotFound
	}

	return config, err
}

func (r marketplaceRepository) Create(q sqlx.Ext, config entity.MarketplaceConfig) error {
	_, err := q.Exec(`
		INSERT INTO marketplaces (
			address, authority, treasury_mint, fee_basis_points,
			fee_account, fee_withdrawal_account, treasury_account, treasury_withdrawal_account,
			salt, fee_salt, treasury_salt, requires_sign_off
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		config.Address, config.Authority, config.TreasuryMint, config.FeeBasisPoints,
		config.FeeAccount, config.FeeWithdrawalAccount, config.TreasuryAccount, config.TreasuryWithdrawalAccount,
		config.Salt, config.FeeSalt, config.TreasurySalt, config.RequiresSignOff,
	)

	return err
}
