package event

type Type string

const (
	MarketplaceCreatedEvent Type = "MarketplaceCreatedEvent"
	ListingCreatedEvent     Type = "ListingCreatedEvent"
	BidPlacedEvent          Type = "BidPlacedEvent"
	SaleExecutedEvent       Type = "SaleExecutedEvent"
	TradeStateCancelledEvent Type = "TradeStateCancelledEvent"
)
