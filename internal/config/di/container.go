package di

import (
	"github.com/mintara/auction-house/internal/api"
	"github.com/mintara/auction-house/internal/elastic_search"
	"github.com/mintara/auction-house/internal/engine"
	"github.com/mintara/auction-house/internal/indexer"
	"github.com/mintara/auction-house/internal/messenger"
	"github.com/mintara/auction-house/internal/store"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

type Container struct {
	ctn di.Container
}

func NewContainer() *Container {
	builder, err := di.NewBuilder()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to create DI builder")
	}

	if err := builder.Add(Definitions...); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to register DI definitions")
	}

	return &Container{ctn: builder.Build()}
}

func (c *Container) Delete() error {
	return c.ctn.Delete()
}

func (c *Container) GetStore() *store.Store {
	return c.ctn.Get("store").(*store.Store)
}

func (c *Container) GetEngine() engine.Engine {
	return c.ctn.Get("engine").(engine.Engine)
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetActivityIndexer() indexer.ActivityIndexer {
	return c.ctn.Get("indexer.activity").(indexer.ActivityIndexer)
}

func (c *Container) GetApiServer() api.Server {
	return c.ctn.Get("api").(api.Server)
}
