package di

import (
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mintara/auction-house/internal/address"
	"github.com/mintara/auction-house/internal/api"
	"github.com/mintara/auction-house/internal/config"
	"github.com/mintara/auction-house/internal/elastic_search"
	"github.com/mintara/auction-house/internal/engine"
	"github.com/mintara/auction-house/internal/indexer"
	"github.com/mintara/auction-house/internal/messenger"
	"github.com/mintara/auction-house/internal/registry"
	"github.com/mintara/auction-house/internal/repository"
	"github.com/mintara/auction-house/internal/store"
	"github.com/patrickmn/go-cache"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "cache",
		Build: func(ctn di.Container) (interface{}, error) {
			return cache.New(5*time.Minute, 10*time.Minute), nil
		},
	},
	{
		Name: "store",
		Build: func(ctn di.Container) (interface{}, error) {
			s, err := store.Open(config.Get().Database.Path)
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to open store")
			}
			return s, nil
		},
		Close: func(obj interface{}) error {
			return obj.(*store.Store).Close()
		},
	},
	{
		Name: "deriver",
		Build: func(ctn di.Container) (interface{}, error) {
			return address.NewDeriver(address.ProgramID, ctn.Get("cache").(*cache.Cache)), nil
		},
	},
	{
		Name: "repo.marketplace",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewMarketplaceRepository(), nil
		},
	},
	{
		Name: "repo.tradestate",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewTradeStateRepository(), nil
		},
	},
	{
		Name: "repo.escrow",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewEscrowRepository(), nil
		},
	},
	{
		Name: "repo.account",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewAccountRepository(), nil
		},
	},
	{
		Name: "registry",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get().AssetRegistry

			retryClient := retryablehttp.NewClient()
			retryClient.Logger = nil
			if cfg.Debug {
				retryClient.Logger = zap.NewStdLog(zap.L())
			}
			retryClient.RetryMax = cfg.RetryMax
			retryClient.HTTPClient.Timeout = time.Duration(cfg.Timeout) * time.Second

			return registry.NewClient(retryClient, cfg.Url), nil
		},
	},
	{
		Name: "engine",
		Build: func(ctn di.Container) (interface{}, error) {
			return engine.NewEngine(
				ctn.Get("store").(*store.Store),
				ctn.Get("deriver").(address.Deriver),
				ctn.Get("repo.marketplace").(repository.MarketplaceRepository),
				ctn.Get("repo.tradestate").(repository.TradeStateRepository),
				ctn.Get("repo.escrow").(repository.EscrowRepository),
				ctn.Get("repo.account").(repository.AccountRepository),
				ctn.Get("registry").(registry.AssetRegistry),
				config.Get().TradeStateDeposit,
			), nil
		},
	},
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}
			return elastic, nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(config.Get().Amqp.Uri), nil
		},
	},
	{
		Name: "indexer.activity",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewActivityIndexer(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("messenger").(messenger.MessageService),
			), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("engine").(engine.Engine),
				ctn.Get("store").(*store.Store),
				ctn.Get("repo.account").(repository.AccountRepository),
			), nil
		},
	},
}
