package engine

import (
	"errors"
	"testing"

	"github.com/mintara/auction-house/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settle lists asset-1 for the seller, bids it for the buyer at the same
// price, and returns the marketplace config and proof ready for ExecuteSale.
func settleFixture(t *testing.T, env *testEnv, feeBps uint16, price uint64, metadata entity.MetadataArgs) (entity.MarketplaceConfig, entity.Proof) {
	t.Helper()

	config := env.createMarketplace(t, feeBps)
	env.fund(t, "seller", 100)
	env.fund(t, "buyer", price+100)

	proof := testProof(metadata)

	_, err := env.engine.List(ListParams{
		Marketplace: config.Address,
		Owner:       "seller",
		Asset:       "asset-1",
		Price:       price,
		Proof:       proof,
	})
	require.NoError(t, err)

	_, err = env.engine.Bid(BidParams{
		Marketplace: config.Address,
		Bidder:      "buyer",
		Asset:       "asset-1",
		Price:       price,
	})
	require.NoError(t, err)

	return config, proof
}

func TestExecuteSale(t *testing.T) {
	t.Run("splits price between fee, royalties and seller exactly", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata(
			entity.Creator{Address: "creator-a", Share: 60},
			entity.Creator{Address: "creator-b", Share: 40},
		)
		config, proof := settleFixture(t, env, 500, 1000, metadata)

		sale, err := env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace:        config.Address,
			Seller:             "seller",
			Buyer:              "buyer",
			Asset:              "asset-1",
			Price:              1000,
			Proof:              proof,
			RoyaltyBasisPoints: 1000,
			Metadata:           metadata,
		})
		require.NoError(t, err)

		assert.Equal(t, uint64(50), sale.Fee)
		assert.Equal(t, uint64(100), sale.RoyaltyPaid)
		assert.Equal(t, uint64(850), sale.SellerAmount)

		assert.Equal(t, uint64(50), env.balance(t, config.FeeAccount))
		assert.Equal(t, uint64(60), env.balance(t, "creator-a"))
		assert.Equal(t, uint64(40), env.balance(t, "creator-b"))

		// Seller: 100 funding − deposit + deposit refund + 850 proceeds.
		assert.Equal(t, uint64(950), env.balance(t, "seller"))

		// No value created or destroyed.
		assert.Equal(t, sale.Price, sale.Fee+sale.RoyaltyPaid+sale.SellerAmount)

		// Escrow fully drained, asset moved to the buyer.
		_, escrowBalance, err := env.engine.EscrowBalance(config.Address, "buyer")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), escrowBalance)

		require.Len(t, env.registry.transfers, 1)
		assert.Equal(t, "asset-1", env.registry.transfers[0].Asset)
		assert.Equal(t, "buyer", env.registry.transfers[0].To)
	})

	t.Run("computes fee with integer truncation", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata()
		config, proof := settleFixture(t, env, 500, 1000000, metadata)

		sale, err := env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace: config.Address,
			Seller:      "seller",
			Buyer:       "buyer",
			Asset:       "asset-1",
			Price:       1000000,
			Proof:       proof,
			Metadata:    metadata,
		})
		require.NoError(t, err)

		assert.Equal(t, uint64(50000), sale.Fee)
		assert.Equal(t, uint64(950000), sale.SellerAmount)
	})

	t.Run("settling twice fails with invalid trade state and never double-pays", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata()
		config, proof := settleFixture(t, env, 500, 1000, metadata)

		params := ExecuteSaleParams{
			Marketplace: config.Address,
			Seller:      "seller",
			Buyer:       "buyer",
			Asset:       "asset-1",
			Price:       1000,
			Proof:       proof,
			Metadata:    metadata,
		}

		_, err := env.engine.ExecuteSale(params)
		require.NoError(t, err)
		sellerBalance := env.balance(t, "seller")

		_, err = env.engine.ExecuteSale(params)
		assert.ErrorIs(t, err, ErrInvalidTradeState)
		assert.Equal(t, sellerBalance, env.balance(t, "seller"))
		assert.Len(t, env.registry.transfers, 1)
	})

	t.Run("rejects mismatched metadata hash with zero transfers", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata()
		config, proof := settleFixture(t, env, 500, 1000, metadata)

		tampered := metadata
		tampered.SellerFeeBasisPoints = 0

		_, err := env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace: config.Address,
			Seller:      "seller",
			Buyer:       "buyer",
			Asset:       "asset-1",
			Price:       1000,
			Proof:       proof,
			Metadata:    tampered,
		})
		assert.ErrorIs(t, err, ErrMetadataHashMismatch)

		assert.Equal(t, uint64(0), env.balance(t, config.FeeAccount))
		_, escrowBalance, escErr := env.engine.EscrowBalance(config.Address, "buyer")
		require.NoError(t, escErr)
		assert.Equal(t, uint64(1000), escrowBalance)
		assert.Len(t, env.registry.transfers, 0)
	})

	t.Run("rejects a settlement price no bid exists for", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata()
		config, proof := settleFixture(t, env, 500, 1000, metadata)

		// Price is part of the trade-state key, so a mismatched price derives
		// an address no record lives at.
		_, err := env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace: config.Address,
			Seller:      "seller",
			Buyer:       "buyer",
			Asset:       "asset-1",
			Price:       900,
			Proof:       proof,
			Metadata:    metadata,
		})
		assert.ErrorIs(t, err, ErrInvalidTradeState)
	})

	t.Run("rejects a bid for a different asset", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata()
		config, proof := settleFixture(t, env, 500, 1000, metadata)

		_, err := env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace: config.Address,
			Seller:      "seller",
			Buyer:       "buyer",
			Asset:       "asset-2",
			Price:       1000,
			Proof:       proof,
			Metadata:    metadata,
		})
		assert.ErrorIs(t, err, ErrInvalidTradeState)
	})

	t.Run("fails closed on royalty shares not summing to 100", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata(
			entity.Creator{Address: "creator-a", Share: 60},
			entity.Creator{Address: "creator-b", Share: 30},
		)
		config, proof := settleFixture(t, env, 500, 1000, metadata)

		_, err := env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace:        config.Address,
			Seller:             "seller",
			Buyer:              "buyer",
			Asset:              "asset-1",
			Price:              1000,
			Proof:              proof,
			RoyaltyBasisPoints: 1000,
			Metadata:           metadata,
		})
		assert.ErrorIs(t, err, ErrInvalidRoyaltyShares)
	})

	t.Run("registry failure rolls the whole settlement back", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata()
		config, proof := settleFixture(t, env, 500, 1000, metadata)

		env.registry.failTransfer = errors.New("inclusion proof stale")

		_, err := env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace: config.Address,
			Seller:      "seller",
			Buyer:       "buyer",
			Asset:       "asset-1",
			Price:       1000,
			Proof:       proof,
			Metadata:    metadata,
		})
		assert.EqualError(t, err, "inclusion proof stale")

		// Escrow untouched, fee unpaid, both trade states still open.
		_, escrowBalance, escErr := env.engine.EscrowBalance(config.Address, "buyer")
		require.NoError(t, escErr)
		assert.Equal(t, uint64(1000), escrowBalance)
		assert.Equal(t, uint64(0), env.balance(t, config.FeeAccount))

		env.registry.failTransfer = nil
		_, err = env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace: config.Address,
			Seller:      "seller",
			Buyer:       "buyer",
			Asset:       "asset-1",
			Price:       1000,
			Proof:       proof,
			Metadata:    metadata,
		})
		assert.NoError(t, err, "settlement succeeds once the registry recovers")
	})

	t.Run("overlapping bids drain the shared escrow once", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata()
		config := env.createMarketplace(t, 0)
		env.fund(t, "seller", 100)
		env.fund(t, "seller-2", 100)
		env.fund(t, "buyer", 1100)

		proof := testProof(metadata)

		for _, asset := range []string{"asset-1", "asset-2"} {
			owner := "seller"
			if asset == "asset-2" {
				owner = "seller-2"
			}
			_, err := env.engine.List(ListParams{Marketplace: config.Address, Owner: owner, Asset: asset, Price: 1000, Proof: proof})
			require.NoError(t, err)
			_, err = env.engine.Bid(BidParams{Marketplace: config.Address, Bidder: "buyer", Asset: asset, Price: 1000})
			require.NoError(t, err)
		}

		// The escrow holds 1000, not 2000: top-up is validated per bid.
		_, escrowBalance, err := env.engine.EscrowBalance(config.Address, "buyer")
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), escrowBalance)

		_, err = env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace: config.Address, Seller: "seller", Buyer: "buyer",
			Asset: "asset-1", Price: 1000, Proof: proof, Metadata: metadata,
		})
		require.NoError(t, err)

		_, err = env.engine.ExecuteSale(ExecuteSaleParams{
			Marketplace: config.Address, Seller: "seller-2", Buyer: "buyer",
			Asset: "asset-2", Price: 1000, Proof: proof, Metadata: metadata,
		})
		assert.ErrorIs(t, err, ErrNotEnoughFunds)
	})

	t.Run("honours the marketplace sign-off requirement", func(t *testing.T) {
		env := newTestEnv(t)
		metadata := testMetadata()

		config, err := env.engine.CreateMarketplace(CreateMarketplaceParams{
			Authority:       "authority",
			TreasuryMint:    "native",
			FeeBasisPoints:  500,
			RequiresSignOff: true,
		})
		require.NoError(t, err)

		env.fund(t, "seller", 100)
		env.fund(t, "buyer", 1100)

		proof := testProof(metadata)
		_, err = env.engine.List(ListParams{Marketplace: config.Address, Owner: "seller", Asset: "asset-1", Price: 1000, Proof: proof})
		require.NoError(t, err)
		_, err = env.engine.Bid(BidParams{Marketplace: config.Address, Bidder: "buyer", Asset: "asset-1", Price: 1000})
		require.NoError(t, err)

		params := ExecuteSaleParams{
			Marketplace: config.Address,
			Seller:      "seller",
			Buyer:       "buyer",
			Asset:       "asset-1",
			Price:       1000,
			Proof:       proof,
			Metadata:    metadata,
		}

		_, err = env.engine.ExecuteSale(params)
		assert.ErrorIs(t, err, ErrSignOffRequired)

		params.MarketplaceSignOff = true
		_, err = env.engine.ExecuteSale(params)
		assert.NoError(t, err)
	})
}
