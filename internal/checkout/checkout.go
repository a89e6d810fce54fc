// Package checkout turns a cart into a placed order: the order lands on
// the user's record, an event goes out on the orders exchange, and the
// cart is emptied.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"frylyle/internal/backend"
	"frylyle/internal/cart"
	"frylyle/internal/common/logger"
	"frylyle/internal/common/mq"
)

var ErrEmptyCart = errors.New("checkout: cart is empty")

// Publisher is satisfied by the AMQP client. Nil means events are off.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, priority uint8, body []byte) error
}

type Order struct {
	Number   string          `json:"number"`
	Items    []cart.LineItem `json:"items"`
	Total    float64         `json:"total"`
	Address  string          `json:"address,omitempty"`
	Status   string          `json:"status"`
	PlacedAt time.Time       `json:"placedAt"`
}

type orderEvent struct {
	Number   string  `json:"order_number"`
	Account  string  `json:"account_id"`
	Device   string  `json:"device_id"`
	Total    float64 `json:"total_amount"`
	Priority int     `json:"priority"`
}

type Service struct {
	documents backend.Documents
	pub       Publisher
	lg        *logger.Logger
}

func NewService(documents backend.Documents, pub Publisher, lg *logger.Logger) *Service {
	if lg == nil {
		lg = logger.NewNop()
	}
	return &Service{documents: documents, pub: pub, lg: lg}
}

// PlaceOrder records the order and clears the cart. The document write is
// the commit point; the event publish afterwards is best-effort. device
// identifies the session that placed the order and travels on the event.
func (s *Service) PlaceOrder(ctx context.Context, accountID, device string, c *cart.Container, address string) (Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}
	total := c.Total()
	order := Order{
		Number:   newOrderNumber(),
		Items:    items,
		Total:    total,
		Address:  address,
		Status:   "received",
		PlacedAt: time.Now().UTC(),
	}

	doc, err := orderDocument(order)
	if err != nil {
		return Order{}, err
	}
	if err := s.documents.AppendToUserRecordArray(ctx, accountID, "orders", doc); err != nil {
		return Order{}, fmt.Errorf("record order: %w", err)
	}

	priority := priorityFor(total)
	if s.pub != nil {
		body, err := json.Marshal(orderEvent{
			Number:   order.Number,
			Account:  accountID,
			Device:   device,
			Total:    total,
			Priority: priority,
		})
		if err == nil {
			key := fmt.Sprintf("orders.placed.%d", priority)
			if err := s.pub.Publish(ctx, mq.OrdersExchange, key, uint8(priority), body); err != nil {
				s.lg.Error("order_event_publish_failed", err, map[string]any{"order": order.Number})
			}
		}
	}

	c.Clear()
	s.lg.Info("order_placed", map[string]any{"order": order.Number, "total": total, "items": len(items)})
	return order, nil
}

// orderDocument flattens the order into plain maps for the document
// store; Firestore array operators compare values structurally.
func orderDocument(o Order) (map[string]any, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]any)
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// newOrderNumber yields ORD_YYYYMMDD_<short uuid>.
func newOrderNumber() string {
	short := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("ORD_%s_%s", time.Now().UTC().Format("20060102"), short)
}

// priorityFor tiers orders by value so the fulfilment side can work the
// big tickets first.
func priorityFor(total float64) int {
	switch {
	case total >= 100:
		return 10
	case total >= 50:
		return 5
	default:
		return 1
	}
}
