package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/shopbot/goshop/internal/domain"
	"github.com/shopbot/goshop/internal/metrics"
)

// CreateInput is the plain input value for order creation.
type CreateInput struct {
	CustomerID string      `json:"customer_id"`
	Items      []ItemInput `json:"items"`
}

// ItemInput is one requested product/quantity pair.
type ItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// newOrderID mints ORDER-<unix-ms>-<uuid fragment>. The fragment keeps ids
// unique even for two creations inside the same millisecond.
func newOrderID(now time.Time) string {
	return fmt.Sprintf("ORDER-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// CreateOrder validates and prices every line item first, then runs the
// simulated payment, and only commits stock decrements after approval. A
// failure on any path leaves inventory exactly as it was: there are no
// compensating increments because nothing is decremented until the whole
// order is known good.
func (e *Engine) CreateOrder(input CreateInput) (res Result) {
	start := time.Now()
	orderStatus := "failure"
	paymentStatus := "denied"

	defer func() {
		e.observeLatency(orderTypeCreate, start)
		e.reg.IncCounter(metrics.OrdersCreatedTotal, metrics.Labels{
			"status":         orderStatus,
			"payment_status": paymentStatus,
		})
	}()
	defer func() {
		if r := recover(); r != nil {
			res = e.fail(endpointOrders, "unexpected_error_creation",
				fmt.Sprintf("Unexpected error creating order: %v", r), 500)
		}
	}()

	if len(input.Items) == 0 {
		return e.fail(endpointOrders, "validation_error",
			"Invalid order data: 'items' is required and must be a non-empty list.", 400)
	}

	customerID := input.CustomerID
	if customerID == "" {
		customerID = DefaultCustomerID
	}

	// Phase 1: validate and price every item without touching stock.
	// reserved tracks per-product quantity so repeated items in one order
	// are checked against the same stock level.
	reserved := make(map[string]int, len(input.Items))
	lineItems := make([]domain.LineItem, 0, len(input.Items))
	total := decimal.Zero

	for _, item := range input.Items {
		product, err := e.inv.Get(item.ProductID)
		if err != nil {
			return e.fail(endpointOrders, "product_not_found",
				fmt.Sprintf("Product '%s' not found.", item.ProductID), 404)
		}
		if item.Quantity <= 0 {
			return e.fail(endpointOrders, "invalid_quantity",
				fmt.Sprintf("Invalid quantity (%d) for product '%s'.", item.Quantity, item.ProductID), 400)
		}
		if e.inj.StockCheckFails() {
			return e.fail(endpointOrders, "insufficient_stock_simulated",
				fmt.Sprintf("Insufficient stock for product '%s' (simulated).", item.ProductID), 400)
		}
		if product.Stock < reserved[item.ProductID]+item.Quantity {
			return e.fail(endpointOrders, "real_insufficient_stock",
				fmt.Sprintf("Insufficient real stock for product '%s'.", item.ProductID), 400)
		}

		reserved[item.ProductID] += item.Quantity
		li := domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			PriceUnit: product.Price,
		}
		lineItems = append(lineItems, li)
		total = total.Add(li.Subtotal())
	}

	time.Sleep(e.inj.ProcessingDelay())

	if e.inj.PaymentDenied() {
		return e.fail(endpointOrders, "payment_denied_simulated",
			"Payment denied by gateway (simulated).", 402)
	}
	paymentStatus = "approved"

	// Phase 2: commit. DecrementAll re-checks stock under the store lock so
	// a concurrent order that won the race fails this one wholesale instead
	// of leaving a partial decrement.
	levels, err := e.inv.DecrementAll(reserved)
	if err != nil {
		return e.fail(endpointOrders, "real_insufficient_stock",
			"Insufficient real stock at commit time.", 400)
	}
	for productID, level := range levels {
		e.reg.SetGauge(metrics.InventoryLevelGauge,
			metrics.Labels{"product_id": productID}, float64(level))
	}

	now := time.Now()
	order := domain.Order{
		ID:          newOrderID(now),
		CustomerID:  customerID,
		Items:       lineItems,
		TotalAmount: total,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.orders.Create(order); err != nil {
		// Duplicate ids should be impossible with the uuid fragment.
		return e.fail(endpointOrders, "unexpected_error_creation",
			fmt.Sprintf("Failed to persist order: %v", err), 500)
	}

	orderStatus = "success"
	e.log.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"customer_id": customerID,
		"total":       total.String(),
		"items":       len(lineItems),
	}).Info("order created")

	return Result{
		Success:    true,
		Message:    fmt.Sprintf("Order %s created successfully!", order.ID),
		OrderID:    order.ID,
		StatusCode: 201,
	}
}
