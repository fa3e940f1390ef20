package address

import "encoding/binary"

// Seed prefixes namespace every derived address. They mirror the record
// families of the engine and never change once records exist.
const (
	MarketplaceSeed = "auction_house"
	TradeStateSeed  = "trade_state"
	EscrowSeed      = "escrow"
	FeeSeed         = "fee"
	TreasurySeed    = "treasury"
	ProgramSeed     = "program"
	SignerSeed      = "signer"
)

// ProgramID identifies this engine in every derivation, so addresses cannot
// collide with those of another deployment sharing the store.
const ProgramID = "auction-house-v2"

func Marketplace(authority, treasuryMint string) [][]byte {
	return [][]byte{[]byte(MarketplaceSeed), []byte(authority), []byte(treasuryMint)}
}

// TradeState seeds include the side so one party's bid and listing for the
// same asset and price never collide.
func TradeState(side, owner, marketplace, asset string, price uint64) [][]byte {
	return [][]byte{
		[]byte(TradeStateSeed),
		[]byte(side),
		[]byte(owner),
		[]byte(marketplace),
		[]byte(asset),
		priceBytes(price),
	}
}

func Escrow(marketplace, bidder string) [][]byte {
	return [][]byte{[]byte(EscrowSeed), []byte(marketplace), []byte(bidder)}
}

func Fee(marketplace string) [][]byte {
	return [][]byte{[]byte(FeeSeed), []byte(marketplace)}
}

func Treasury(marketplace string) [][]byte {
	return [][]byte{[]byte(TreasurySeed), []byte(marketplace)}
}

func Signer() [][]byte {
	return [][]byte{[]byte(ProgramSeed), []byte(SignerSeed)}
}

func priceBytes(price uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], price)
	return b[:]
}
