package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mintara/auction-house/internal/entity"
	"github.com/mintara/auction-house/pkg/checked"
	"go.uber.org/zap"
)

var (
	ErrNotEnoughFunds = errors.New("not enough funds")
)

// AccountRepository is the value-transfer capability. Every identity that can
// hold value, escrow and trade-state accounts included, is a row here.
type AccountRepository interface {
	Get(q sqlx.Ext, address string) (entity.Account, error)
	Balance(q sqlx.Ext, address string) (uint64, error)
	Credit(q sqlx.Ext, address string, amount uint64) error
	Transfer(q sqlx.Ext, from, to string, amount uint64) error
}

type accountRepository struct{}

func NewAccountRepository() AccountRepository {
	return accountRepository{}
}

func (r accountRepository) Get(q sqlx.Ext, address string) (entity.Account, error) {
	var account entity.Account
	err := sqlx.Get(q, &account, "SELECT * FROM accounts WHERE address = ?", address)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Account{Address: address}, nil
	}

	return account, err
}

func (r accountRepository) Balance(q sqlx.Ext, address string) (uint64, error) {
	account, err := r.Get(q, address)
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

func (r accountRepository) Credit(q sqlx.Ext, address string, amount uint64) error {
	account, err := r.Get(q, address)
	if err != nil {
		return err
	}

	balance, err := checked.Add(account.Balance, amount)
	if err != nil {
		return err
	}

	return r.put(q, address, balance, account.Reserved)
}

func (r accountRepository) Transfer(q sqlx.Ext, from, to string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if from == to {
		return nil
	}

	source, err := r.Get(q, from)
	if err != nil {
		return err
	}

	if source.Available() < amount {
		zap.L().With(
			zap.String("from", from),
			zap.Uint64("available", source.Available()),
			zap.Uint64("amount", amount),
		).Debug("Ledger: Insufficient funds")
		return ErrNotEnoughFunds
	}

	balance, err := checked.Sub(source.Balance, amount)
	if err != nil {
		return err
	}

	if err := r.put(q, from, balance, source.Reserved); err != nil {
		return err
	}

	return r.Credit(q, to, amount)
}

func (r accountRepository) put(q sqlx.Ext, address string, balance, reserved uint64) error {
	_, err := q.Exec(`
		INSERT INTO accounts (address, balance, reserved) VALUES (?, ?, ?)
		ON CONFLICT (address) DO UPDATE SET balance = excluded.balance, reserved = excluded.reserved`,
		address, balance, reserved,
	)

	return err
}
