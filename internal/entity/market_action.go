package entity

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/nu7hatch/gouuid"
)

// MarketAction is the activity-feed projection of an engine operation,
// persisted to elastic search for query.
type MarketAction struct {
	Id          string     `json:"id"`
	Marketplace string     `json:"marketplace"`
	Asset       string     `json:"asset"`
	Action      ActionType `json:"action"`
	Owner       string     `json:"owner"`
	Counterpart string     `json:"counterpart"`
	Price       uint64     `json:"price"`
	Fee         uint64     `json:"fee"`
	Royalty     uint64     `json:"royalty"`
}

type ActionType string

const (
	ListingAction ActionType = "listing"
	BidAction     ActionType = "bid"
	SaleAction    ActionType = "sale"
	CancelAction  ActionType = "cancel"
)

// Slug keys the action in the activity feed. The same owner can repeat an
// action on the same asset, so identity comes from the generated id rather
// than the action fields.
func (a MarketAction) Slug() string {
	return slug.Make(fmt.Sprintf("action-%s", a.Id))
}

func NewActionId() string {
	u, _ := uuid.NewV4()
	return u.String()
}
