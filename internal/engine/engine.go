// Package engine implements the order lifecycle: creation with simulated
// payment, reads, and the two update operations. Every operation records its
// latency and outcome in the metrics registry before returning, whatever the
// exit path.
package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shopbot/goshop/internal/domain"
	"github.com/shopbot/goshop/internal/inject"
	"github.com/shopbot/goshop/internal/metrics"
	"github.com/shopbot/goshop/internal/store"
)

// Endpoint labels used on the error counter. Route templates, not raw
// paths, so label cardinality stays bounded.
const (
	endpointOrders      = "/orders"
	endpointOrderByID   = "/orders/:orderID"
	endpointOrderStatus = "/orders/:orderID/status"
)

// Order-type labels on the processing-latency histogram.
const (
	orderTypeCreate        = "create"
	orderTypeUpdate        = "update"
	orderTypeGenericUpdate = "generic_update"
)

// DefaultCustomerID is used when a creation request carries no customer.
const DefaultCustomerID = "UNKNOWN_CUSTOMER"

// Result is what every engine operation hands back to the routing layer:
// outcome flag, human-readable message, optional payload and the status code
// the caller should surface.
type Result struct {
	Success    bool
	Message    string
	OrderID    string
	Order      *domain.Order
	Orders     []domain.Order
	StatusCode int
}

// Engine owns mutation rights to both stores and to the business-event
// metrics. Construct one per service instance; tests build isolated ones.
type Engine struct {
	inv    *store.Inventory
	orders *store.Orders
	inj    inject.Injector
	reg    *metrics.Registry
	log    *logrus.Entry
}

// New wires the engine to its stores, injector and metrics registry, and
// seeds the inventory-level gauge from the current catalog.
func New(inv *store.Inventory, orders *store.Orders, inj inject.Injector, reg *metrics.Registry) *Engine {
	e := &Engine{
		inv:    inv,
		orders: orders,
		inj:    inj,
		reg:    reg,
		log:    logrus.WithField("component", "engine"),
	}
	for _, p := range inv.Snapshot() {
		reg.SetGauge(metrics.InventoryLevelGauge, metrics.Labels{"product_id": p.ID}, float64(p.Stock))
	}
	return e
}

// fail records the error counter for the endpoint and builds the failure
// result in one step.
func (e *Engine) fail(endpoint, errorType, message string, statusCode int) Result {
	e.reg.IncCounter(metrics.APIErrorsTotal, metrics.Labels{
		"endpoint":   endpoint,
		"error_type": errorType,
	})
	e.log.WithFields(logrus.Fields{
		"endpoint":   endpoint,
		"error_type": errorType,
	}).Warn(message)
	return Result{Success: false, Message: message, StatusCode: statusCode}
}

func (e *Engine) observeLatency(orderType string, start time.Time) {
	e.reg.ObserveHistogram(metrics.OrderProcessingLatency,
		metrics.Labels{"order_type": orderType}, time.Since(start).Seconds())
}

// GetOrderDetails returns a deep, independent copy of the stored order.
func (e *Engine) GetOrderDetails(orderID string) Result {
	time.Sleep(e.inj.LookupDelay())

	o, err := e.orders.Get(orderID)
	if err != nil {
		return e.fail(endpointOrderByID, "order_not_found", "Order not found.", 404)
	}
	return Result{Success: true, Order: &o, StatusCode: 200}
}

// ListAllOrders returns deep copies of every stored order. Zero orders is a
// success with an empty list, not an error.
func (e *Engine) ListAllOrders() Result {
	time.Sleep(e.inj.LookupDelay())

	orders := e.orders.List()
	res := Result{Success: true, Orders: orders, StatusCode: 200}
	if len(orders) == 0 {
		res.Message = "No orders found."
	}
	return res
}
