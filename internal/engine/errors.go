package engine

import (
	"errors"

	"github.com/mintara/auction-house/internal/repository"
	"github.com/mintara/auction-house/pkg/checked"
)

var (
	ErrInvalidSellerFeeBasisPoints = errors.New("invalid seller fee basis points")
	ErrMarketplaceExists           = errors.New("marketplace already exists")
	ErrInvalidTradeState           = errors.New("invalid trade state")
	ErrInvalidOrder                = errors.New("invalid buying or selling order")
	ErrMetadataHashMismatch        = errors.New("metadata hash mismatch")
	ErrInvalidRoyaltyShares        = errors.New("invalid royalty shares")
	ErrSignOffRequired             = errors.New("marketplace sign off required")

	// Funds and arithmetic errors surface from the ledger and checked maths.
	ErrNotEnoughFunds  = repository.ErrNotEnoughFunds
	ErrNumericOverflow = checked.ErrNumericOverflow
)
