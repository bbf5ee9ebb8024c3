// internal/domain/order/entity.go
package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status represents the order status
type Status string

const (
	StatusProcessingPayment Status = "processingPayment"
	StatusProcessingOrder   Status = "processingOrder"
	StatusShipped           Status = "shipped"
	StatusOrderReceived     Status = "orderReceived"
	StatusCancelled         Status = "cancelled"
)

// statusSequence is the linear progression of a fulfilled order.
var statusSequence = []Status{
	StatusProcessingPayment,
	StatusProcessingOrder,
	StatusShipped,
	StatusOrderReceived,
}

// IsValid reports whether the status belongs to the fixed set
func (s Status) IsValid() bool {
	switch s {
	case StatusProcessingPayment, StatusProcessingOrder, StatusShipped,
		StatusOrderReceived, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s Status) IsTerminal() bool {
	return s == StatusOrderReceived || s == StatusCancelled
}

// CanTransitionTo reports whether next is a legal successor: the
// following step of the fulfillment sequence, or cancellation from any
// non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusCancelled {
		return !s.IsTerminal()
	}

	for i, step := range statusSequence {
		if step == s {
			return i+1 < len(statusSequence) && statusSequence[i+1] == next
		}
	}
	return false
}

// Predecessors returns the statuses from which next is reachable.
func Predecessors(next Status) []Status {
	var from []Status
	for _, s := range append(statusSequence[:len(statusSequence):len(statusSequence)], StatusCancelled) {
		if s.CanTransitionTo(next) {
			from = append(from, s)
		}
	}
	return from
}

// PaymentMethod represents the payment method recorded on an order
type PaymentMethod string

const (
	PaymentMethodCard              PaymentMethod = "card"
	PaymentMethodThirdPartyGateway PaymentMethod = "thirdPartyGateway"
)

// Item is a cart line frozen into an order, plus the returned flag.
type Item struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	Returned  bool               `bson:"returned,omitempty" json:"returned,omitempty"`
}

// Order represents an order stored in the Orders collection. Items are
// a value-copy of the cart taken at checkout, decoupled from any
// subsequent cart mutation. The user reference is retained even when
// the user record is later deleted.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Items         []Item             `bson:"items" json:"items"`
	TotalItems    int                `bson:"totalItems" json:"totalItems"`
	TotalCost     float64            `bson:"totalCost" json:"totalCost"`
	Status        Status             `bson:"status" json:"status"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updated_at"`
}
