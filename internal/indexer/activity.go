package indexer

import (
	"encoding/json"

	"github.com/mintara/auction-house/internal/elastic_search"
	"github.com/mintara/auction-house/internal/entity"
	"github.com/mintara/auction-house/internal/event"
	"github.com/mintara/auction-house/internal/messenger"
	"go.uber.org/zap"
)

// ActivityIndexer projects engine events into the activity feed and
// notifies downstream consumers.
type ActivityIndexer interface {
	Subscribe()
	IndexAction(action entity.MarketAction)
	IndexSale(sale entity.Sale)
}

type activityIndexer struct {
	elastic   elastic_search.Index
	messenger messenger.MessageService
}

func NewActivityIndexer(elastic elastic_search.Index, messageService messenger.MessageService) ActivityIndexer {
	return activityIndexer{elastic, messageService}
}

func (i activityIndexer) Subscribe() {
	event.AddEventListener(event.ListingCreatedEvent, i.onMarketAction)
	event.AddEventListener(event.BidPlacedEvent, i.onMarketAction)
	event.AddEventListener(event.TradeStateCancelledEvent, i.onMarketAction)
	event.AddEventListener(event.SaleExecutedEvent, i.onSale)
}

func (i activityIndexer) onMarketAction(msg interface{}) {
	action, ok := msg.(entity.MarketAction)
	if !ok {
		zap.L().Error("ActivityIndexer: Unexpected market action payload")
		return
	}

	i.IndexAction(action)
}

func (i activityIndexer) onSale(msg interface{}) {
	sale, ok := msg.(entity.Sale)
	if !ok {
		zap.L().Error("ActivityIndexer: Unexpected sale payload")
		return
	}

	i.IndexSale(sale)
}

func (i activityIndexer) IndexAction(action entity.MarketAction) {
	zap.L().With(
		zap.String("asset", action.Asset),
		zap.String("action", string(action.Action)),
	).Info("ActivityIndexer: Index action")

	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), action)

	i.publish(messenger.MarketActivity, action)
}

func (i activityIndexer) IndexSale(sale entity.Sale) {
	zap.L().With(
		zap.String("asset", sale.Asset),
		zap.String("buyer", sale.Buyer),
		zap.String("seller", sale.Seller),
		zap.Uint64("price", sale.Price),
	).Info("ActivityIndexer: Index sale")

	i.elastic.AddIndexRequest(elastic_search.SaleIndex.Get(), sale)
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), entity.MarketAction{
		Id:          entity.NewActionId(),
		Marketplace: sale.Marketplace,
		Asset:       sale.Asset,
		Action:      entity.SaleAction,
		Owner:       sale.Seller,
		Counterpart: sale.Buyer,
		Price:       sale.Price,
		Fee:         sale.Fee,
		Royalty:     sale.RoyaltyPaid,
	})

	i.publish(messenger.SaleExecuted, sale)
}

func (i activityIndexer) publish(item messenger.Item, payload interface{}) {
	if i.messenger == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("ActivityIndexer: Failed to marshal payload")
		return
	}

	if err := i.messenger.SendMessage(item, body, false); err != nil {
		zap.L().With(zap.Error(err)).Error("ActivityIndexer: Failed to publish message")
	}
}
