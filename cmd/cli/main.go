package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mintara/auction-house/internal/config"
	"github.com/mintara/auction-house/internal/config/di"
	"github.com/mintara/auction-house/internal/engine"
	"github.com/mintara/auction-house/internal/entity"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container   *di.Container
	auctionHouse engine.Engine
)

func main() {
	config.Init("cli")

	container = di.NewContainer()
	defer container.Delete()

	auctionHouse = container.GetEngine()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "create-marketplace",
				Usage:  "Register a marketplace for an authority and treasury mint",
				Action: createMarketplace,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "authority", Required: true},
					&cli.StringFlag{Name: "treasury-mint", Value: "native"},
					&cli.UintFlag{Name: "fee-bps", Value: 250, Usage: "Marketplace fee in basis points"},
					&cli.StringFlag{Name: "fee-withdrawal", Value: ""},
					&cli.StringFlag{Name: "treasury-withdrawal", Value: ""},
					&cli.BoolFlag{Name: "sign-off", Usage: "Require marketplace sign off on settlement"},
				},
			},
			{
				Name:   "list",
				Usage:  "Create a sell order for an asset",
				Action: list,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "marketplace", Required: true},
					&cli.StringFlag{Name: "owner", Required: true},
					&cli.StringFlag{Name: "asset", Required: true},
					&cli.Uint64Flag{Name: "price", Required: true},
					&cli.StringFlag{Name: "proof", Required: true, Usage: "Authenticity proof as JSON"},
				},
			},
			{
				Name:   "bid",
				Usage:  "Create a buy order, funding escrow as needed",
				Action: bid,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "marketplace", Required: true},
					&cli.StringFlag{Name: "bidder", Required: true},
					&cli.StringFlag{Name: "asset", Required: true},
					&cli.Uint64Flag{Name: "price", Required: true},
				},
			},
			{
				Name:   "execute-sale",
				Usage:  "Settle a matched listing and bid",
				Action: executeSale,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "marketplace", Required: true},
					&cli.StringFlag{Name: "seller", Required: true},
					&cli.StringFlag{Name: "buyer", Required: true},
					&cli.StringFlag{Name: "asset", Required: true},
					&cli.Uint64Flag{Name: "price", Required: true},
					&cli.UintFlag{Name: "royalty-bps", Value: 0},
					&cli.StringFlag{Name: "metadata", Required: true, Usage: "Asset metadata as JSON"},
					&cli.StringFlag{Name: "proof", Required: true, Usage: "Authenticity proof as JSON"},
					&cli.BoolFlag{Name: "sign-off", Usage: "Marketplace authority signs off"},
				},
			},
			{
				Name:   "cancel",
				Usage:  "Cancel a listing or bid",
				Action: cancel,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "marketplace", Required: true},
					&cli.StringFlag{Name: "owner", Required: true},
					&cli.StringFlag{Name: "asset", Required: true},
					&cli.Uint64Flag{Name: "price", Required: true},
					&cli.StringFlag{Name: "side", Required: true, Usage: "listing or bid"},
					&cli.StringFlag{Name: "proof", Value: "", Usage: "Authenticity proof as JSON"},
					&cli.BoolFlag{Name: "revert-delegation", Usage: "Hand delegation back to the owner"},
				},
			},
			{
				Name:   "escrow",
				Usage:  "Show the escrow balance for a bidder",
				Action: escrowBalance,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "marketplace", Required: true},
					&cli.StringFlag{Name: "bidder", Required: true},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func createMarketplace(c *cli.Context) error {
	marketplaceConfig, err := auctionHouse.CreateMarketplace(engine.CreateMarketplaceParams{
		Authority:                 c.String("authority"),
		TreasuryMint:              c.String("treasury-mint"),
		FeeBasisPoints:            uint16(c.Uint("fee-bps")),
		FeeWithdrawalAccount:      c.String("fee-withdrawal"),
		TreasuryWithdrawalAccount: c.String("treasury-withdrawal"),
		RequiresSignOff:           c.Bool("sign-off"),
	})
	if err != nil {
		return err
	}

	return printJson(marketplaceConfig)
}

func list(c *cli.Context) error {
	proof, err := parseProof(c.String("proof"))
	if err != nil {
		return err
	}

	tradeState, err := auctionHouse.List(engine.ListParams{
		Marketplace: c.String("marketplace"),
		Owner:       c.String("owner"),
		Asset:       c.String("asset"),
		Price:       c.Uint64("price"),
		Proof:       proof,
	})
	if err != nil {
		return err
	}

	return printJson(tradeState)
}

func bid(c *cli.Context) error {
	tradeState, err := auctionHouse.Bid(engine.BidParams{
		Marketplace: c.String("marketplace"),
		Bidder:      c.String("bidder"),
		Asset:       c.String("asset"),
		Price:       c.Uint64("price"),
	})
	if err != nil {
		return err
	}

	return printJson(tradeState)
}

func executeSale(c *cli.Context) error {
	proof, err := parseProof(c.String("proof"))
	if err != nil {
		return err
	}

	var metadata entity.MetadataArgs
	if err := json.Unmarshal([]byte(c.String("metadata")), &metadata); err != nil {
		return fmt.Errorf("invalid metadata: %w", err)
	}

	sale, err := auctionHouse.ExecuteSale(engine.ExecuteSaleParams{
		Marketplace:        c.String("marketplace"),
		Seller:             c.String("seller"),
		Buyer:              c.String("buyer"),
		Asset:              c.String("asset"),
		Price:              c.Uint64("price"),
		Proof:              proof,
		RoyaltyBasisPoints: uint16(c.Uint("royalty-bps")),
		Metadata:           metadata,
		MarketplaceSignOff: c.Bool("sign-off"),
	})
	if err != nil {
		return err
	}

	return printJson(sale)
}

func cancel(c *cli.Context) error {
	var proof entity.Proof
	if c.String("proof") != "" {
		parsed, err := parseProof(c.String("proof"))
		if err != nil {
			return err
		}
		proof = parsed
	}

	return auctionHouse.Cancel(engine.CancelParams{
		Marketplace:      c.String("marketplace"),
		Owner:            c.String("owner"),
		Asset:            c.String("asset"),
		Price:            c.Uint64("price"),
		Side:             entity.TradeSide(c.String("side")),
		Proof:            proof,
		RevertDelegation: c.Bool("revert-delegation"),
	})
}

func escrowBalance(c *cli.Context) error {
	escrow, balance, err := auctionHouse.EscrowBalance(c.String("marketplace"), c.String("bidder"))
	if err != nil {
		return err
	}

	return printJson(map[string]interface{}{
		"escrow":  escrow,
		"balance": balance,
	})
}

func parseProof(raw string) (entity.Proof, error) {
	var proof entity.Proof
	if err := json.Unmarshal([]byte(raw), &proof); err != nil {
		return entity.Proof{}, fmt.Errorf("invalid proof: %w", err)
	}

	return proof, nil
}

func printJson(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
