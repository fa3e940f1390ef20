package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mintara/auction-house/internal/entity"
)

var (
	ErrTradeStateNotFound = errors.New("trade state not found")
)

type TradeStateRepository interface {
	Get(q sqlx.Ext, address string) (entity.TradeState, error)
	Upsert(q sqlx.Ext, state entity.TradeState) error
	Delete(q sqlx.Ext, address string) error
}

type tradeStateRepository struct{}

func NewTradeStateRepository() TradeStateRepository {
	return tradeStateRepository{}
}

func (r tradeStateRepository) Get(q sqlx.Ext, address string) (entity.TradeState, error) {
	var state entity.TradeState
	err := sqlx.Get(q, &state, "SELECT * FROM trade_states WHERE address = ?", address)
	if errors.Is(err, sql.ErrNoRows) {
		return state, ErrTradeStateNotFound
	}

	return state, err
}

func (r tradeStateRepository) Upsert(q sqlx.Ext, state entity.TradeState) error {
	_, err := q.Exec(`
		INSERT INTO trade_states (address, side, owner, marketplace, asset, price, salt, escrow_salt, deposit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (address) DO UPDATE SET
			side = excluded.side,
			owner = excluded.owner,
			marketplace = excluded.marketplace,
			asset = excluded.asset,
			price = excluded.price,
			salt = excluded.salt,
			escrow_salt = excluded.escrow_salt`,
		state.Address, state.Side, state.Owner, state.Marketplace, state.Asset,
		state.Price, state.Salt, state.EscrowSalt, state.Deposit,
	)

	return err
}

func (r tradeStateRepository) Delete(q sqlx.Ext, address string) error {
	_, err := q.Exec("DELETE FROM trade_states WHERE address = ?", address)
	return err
}
