package indexer

import (
	"testing"

	"github.com/mintara/auction-house/internal/elastic_search"
	"github.com/mintara/auction-house/internal/entity"
	"github.com/mintara/auction-house/internal/messenger"
	"github.com/olivere/elastic/v7"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

type fakeElastic struct {
	requests []elastic_search.Request
}

func (f *fakeElastic) GetClient() *elastic.Client { return nil }
func (f *fakeElastic) InstallMappings()           {}

func (f *fakeElastic) AddIndexRequest(index string, entity entity.Entity) {
	f.requests = append(f.requests, elastic_search.Request{Index: index, Entity: entity})
}

func (f *fakeElastic) GetRequests() []elastic_search.Request { return f.requests }
func (f *fakeElastic) ClearRequests()                        { f.requests = nil }
func (f *fakeElastic) Save(index string, entity entity.Entity) {
	f.AddIndexRequest(index, entity)
}
func (f *fakeElastic) Persist() int { return len(f.requests) }

type fakeMessenger struct {
	sent []messenger.Item
}

func (f *fakeMessenger) GetQueue(item messenger.Item) (*amqp.Queue, error) { return nil, nil }

func (f *fakeMessenger) SendMessage(item messenger.Item, body []byte, reliable bool) error {
	f.sent = append(f.sent, item)
	return nil
}

func (f *fakeMessenger) ConsumeMessages(item messenger.Item, callback func(msg string)) error {
	return nil
}

func (f *fakeMessenger) GetQueueSize(item messenger.Item) (*int, error) { return nil, nil }

func TestActivityIndexer_IndexAction(t *testing.T) {
	es := &fakeElastic{}
	mq := &fakeMessenger{}
	i := NewActivityIndexer(es, mq)

	i.IndexAction(entity.MarketAction{
		Id:          entity.NewActionId(),
		Marketplace: "marketplace",
		Asset:       "asset-1",
		Action:      entity.ListingAction,
		Owner:       "seller",
		Price:       1000,
	})

	assert.Len(t, es.requests, 1)
	assert.Equal(t, []messenger.Item{messenger.MarketActivity}, mq.sent)
}

func TestActivityIndexer_IndexSale(t *testing.T) {
	es := &fakeElastic{}
	mq := &fakeMessenger{}
	i := NewActivityIndexer(es, mq)

	i.IndexSale(entity.Sale{
		Id:          entity.NewActionId(),
		Marketplace: "marketplace",
		Asset:       "asset-1",
		Buyer:       "buyer",
		Seller:      "seller",
		Price:       1000,
		Fee:         50,
	})

	// One receipt document plus one activity feed entry.
	assert.Len(t, es.requests, 2)
	assert.Equal(t, []messenger.Item{messenger.SaleExecuted}, mq.sent)
}

func TestActivityIndexer_ActionsGetDistinctSlugs(t *testing.T) {
	first := entity.MarketAction{Id: entity.NewActionId(), Asset: "asset-1", Action: entity.ListingAction}
	second := entity.MarketAction{Id: entity.NewActionId(), Asset: "asset-1", Action: entity.ListingAction}

	assert.NotEqual(t, first.Slug(), second.Slug())
}
