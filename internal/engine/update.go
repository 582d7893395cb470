package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopbot/goshop/internal/domain"
)

const orderIDPrefix = "ORDER-"

// Fields accepted by UpdateOrderGeneric. Anything else aborts the whole
// update.
const (
	fieldCustomerID = "customer_id"
	fieldStatus     = "status"
	fieldNotes      = "notes"
)

// UpdateOrderStatus moves an existing order to one of the closed status set
// {shipped, delivered, cancelled, returned, processed}.
func (e *Engine) UpdateOrderStatus(orderID string, newStatus string) (res Result) {
	start := time.Now()
	defer e.observeLatency(orderTypeUpdate, start)
	defer func() {
		if r := recover(); r != nil {
			res = e.fail(endpointOrderStatus, "unexpected_error_update",
				fmt.Sprintf("Unexpected error updating order: %v", r), 500)
		}
	}()

	if !strings.HasPrefix(orderID, orderIDPrefix) {
		return e.fail(endpointOrderStatus, "invalid_order_id", "Invalid order id.", 400)
	}
	if _, err := e.orders.Get(orderID); err != nil {
		return e.fail(endpointOrderStatus, "order_not_found_for_update",
			"Order not found for update.", 404)
	}

	status := domain.OrderStatus(newStatus)
	if !status.IsUpdatable() {
		return e.fail(endpointOrderStatus, "invalid_status_update",
			"Invalid status for update. Choose one of shipped, delivered, cancelled, returned, processed.", 400)
	}

	if e.inj.InternalFault() {
		return e.fail(endpointOrderStatus, "unexpected_error_update",
			"Unexpected error updating order: simulated internal failure.", 500)
	}

	if _, err := e.orders.Update(orderID, func(o *domain.Order) error {
		o.Status = status
		return nil
	}); err != nil {
		return e.fail(endpointOrderStatus, "order_not_found_for_update",
			"Order not found for update.", 404)
	}

	return Result{
		Success:    true,
		Message:    fmt.Sprintf("Order %s status updated to %s.", orderID, newStatus),
		StatusCode: 200,
	}
}

// UpdateOrderGeneric patches the allow-listed fields of an order. The whole
// field map is validated before anything is applied: one bad field means no
// field changes.
func (e *Engine) UpdateOrderGeneric(orderID string, fields map[string]any) (res Result) {
	start := time.Now()
	defer e.observeLatency(orderTypeGenericUpdate, start)
	defer func() {
		if r := recover(); r != nil {
			res = e.fail(endpointOrderByID, "unexpected_error_generic_update",
				fmt.Sprintf("Unexpected error updating order: %v", r), 500)
		}
	}()

	if !strings.HasPrefix(orderID, orderIDPrefix) {
		return e.fail(endpointOrderByID, "invalid_order_id_generic_update", "Invalid order id.", 400)
	}
	if _, err := e.orders.Get(orderID); err != nil {
		return e.fail(endpointOrderByID, "order_not_found_generic_update",
			"Order not found for update.", 404)
	}

	// Validate everything up front; mutation starts only once the full map
	// is known good.
	updates := make(map[string]string, len(fields))
	for key, value := range fields {
		switch key {
		case fieldCustomerID, fieldStatus, fieldNotes:
			s, ok := value.(string)
			if !ok {
				return e.fail(endpointOrderByID, "invalid_field_for_update",
					fmt.Sprintf("Field '%s' must be a string.", key), 400)
			}
			if key == fieldStatus && !domain.OrderStatus(s).IsUpdatable() {
				return e.fail(endpointOrderByID, "invalid_status_generic_update",
					fmt.Sprintf("Invalid status for update: '%s'.", s), 400)
			}
			updates[key] = s
		default:
			return e.fail(endpointOrderByID, "invalid_field_for_update",
				fmt.Sprintf("Field '%s' cannot be updated.", key), 400)
		}
	}

	if e.inj.InternalFault() {
		return e.fail(endpointOrderByID, "unexpected_error_generic_update",
			"Unexpected error updating order: simulated internal failure.", 500)
	}

	if _, err := e.orders.Update(orderID, func(o *domain.Order) error {
		for key, value := range updates {
			switch key {
			case fieldCustomerID:
				o.CustomerID = value
			case fieldStatus:
				o.Status = domain.OrderStatus(value)
			case fieldNotes:
				o.Notes = value
			}
		}
		return nil
	}); err != nil {
		return e.fail(endpointOrderByID, "order_not_found_generic_update",
			"Order not found for update.", 404)
	}

	return Result{
		Success:    true,
		Message:    fmt.Sprintf("Order %s updated successfully.", orderID),
		StatusCode: 200,
	}
}
