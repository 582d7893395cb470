package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStatusIsUpdatable(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
		OrderStatusReturned,
		OrderStatusProcessed,
	}
	for _, s := range valid {
		if !s.IsUpdatable() {
			t.Errorf("%s 应该是合法的更新状态", s)
		}
	}

	invalid := []OrderStatus{OrderStatusPending, "flying", "", "SHIPPED"}
	for _, s := range invalid {
		if s.IsUpdatable() {
			t.Errorf("%q 不应该是合法的更新状态", s)
		}
	}
}

func TestLineItemSubtotal(t *testing.T) {
	li := LineItem{
		ProductID: "Mouse",
		Quantity:  2,
		PriceUnit: decimal.RequireFromString("59.99"),
	}
	want := decimal.RequireFromString("119.98")
	if !li.Subtotal().Equal(want) {
		t.Errorf("小计应该为 %s，实际为 %s", want, li.Subtotal())
	}
}

func TestOrderCloneIsIndependent(t *testing.T) {
	orig := Order{
		ID:         "ORDER-1-abc",
		CustomerID: "cust-1",
		Items: []LineItem{
			{ProductID: "Mouse", Quantity: 1, PriceUnit: decimal.RequireFromString("59.99")},
		},
		Status: OrderStatusPending,
	}

	clone := orig.Clone()
	clone.Items[0].Quantity = 99
	clone.Status = OrderStatusShipped

	if orig.Items[0].Quantity != 1 {
		t.Errorf("修改克隆不应该影响原始订单行，实际数量为 %d", orig.Items[0].Quantity)
	}
	if orig.Status != OrderStatusPending {
		t.Errorf("修改克隆不应该影响原始状态，实际为 %s", orig.Status)
	}
}
