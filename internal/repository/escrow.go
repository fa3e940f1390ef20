package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mintara/auction-house/internal/entity"
)

var (
	ErrEscrowNotFound = errors.New("escrow not found")
)

type EscrowRepository interface {
	Get(q sqlx.Ext, address string) (entity.EscrowBalance, error)
	GetByBidder(q sqlx.Ext, marketplace, bidder string) (entity.EscrowBalance, error)
	Upsert(q sqlx.Ext, escrow entity.EscrowBalance) error
}

type escrowRepository struct{}

func NewEscrowRepository() EscrowRepository {
	return escrowRepository{}
}

func (r escrowRepository) Get(q sqlx.Ext, address string) (entity.EscrowBalance, error) {
	var escrow entity.EscrowBalance
	err := sqlx.Get(q, &escrow, "SELECT * FROM escrows WHERE address = ?", address)
	if errors.Is(err, sql.ErrNoRows) {
		return escrow, ErrEscrowNotFound
	}

	return escrow, err
}

func (r escrowRepository) GetByBidder(q sqlx.Ext, marketplace, bidder string) (entity.EscrowBalance, error) {
	var escrow entity.EscrowBalance
	err := sqlx.Get(q, &escrow, "SELECT * FROM escrows WHERE marketplace = ? AND bidder = ?", marketplace, bidder)
	if errors.Is(err, sql.ErrNoRows) {
		return escrow, ErrEscrowNotFound
	}

	return escrow, err
}

func (r escrowRepository) Upsert(q sqlx.Ext, escrow entity.EscrowBalance) error {
	_, err := q.Exec(`
		INSERT INTO escrows (address, marketplace, bidder, salt)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (address) DO UPDATE SET salt = excluded.salt`,
		escrow.Address, escrow.Marketplace, escrow.Bidder, escrow.Salt,
	)

	return err
}
