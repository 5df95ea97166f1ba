package kafka

import "time"

// EventType определяет тип события заказа.
type EventType string

const (
	// EventTypeOrderPlaced — заказ прошёл валидацию и закоммичен вместе
	// с покупателем и позициями.
	EventTypeOrderPlaced EventType = "order.placed"
)

// Topic для событий заказов книжного магазина.
const TopicOrderEvents = "bookstore.order.events"

// AggregateTypeOrder используется в outbox-сообщениях конвейера оформления.
const AggregateTypeOrder = "order"

// OrderPlacedEvent — payload события об оформленном заказе.
type OrderPlacedEvent struct {
	EventType          EventType `json:"event_type"`
	OrderID            int64     `json:"order_id"`
	CustomerID         int64     `json:"customer_id"`
	TotalMinor         int64     `json:"total_minor"`
	ConfirmationNumber int64     `json:"confirmation_number"`
	LineItemCount      int       `json:"line_item_count"`
	PlacedAt           time.Time `json:"placed_at"`
}

// NewOrderPlacedEvent создаёт событие об успешном оформлении заказа.
func NewOrderPlacedEvent(orderID, customerID, totalMinor, confirmation int64, lineItems int, placedAt time.Time) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		EventType:          EventTypeOrderPlaced,
		OrderID:            orderID,
		CustomerID:         customerID,
		TotalMinor:         totalMinor,
		ConfirmationNumber: confirmation,
		LineItemCount:      lineItems,
		PlacedAt:           placedAt,
	}
}
