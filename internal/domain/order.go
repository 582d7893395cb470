package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order 订单领域模型：创建后只能通过 OrderStore 的 mutator 修改
type Order struct {
	ID          string          `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	Items       []LineItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"last_updated_at"`
}

// LineItem 订单行：商品 + 数量 + 下单时的单价快照
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	PriceUnit decimal.Decimal `json:"price_unit"`
}

// Subtotal 行小计 = 单价 × 数量
func (li LineItem) Subtotal() decimal.Decimal {
	return li.PriceUnit.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // 创建时的初始状态
	OrderStatusShipped   OrderStatus = "shipped"   // 已发货
	OrderStatusDelivered OrderStatus = "delivered" // 已送达
	OrderStatusCancelled OrderStatus = "cancelled" // 已取消
	OrderStatusReturned  OrderStatus = "returned"  // 已退货
	OrderStatusProcessed OrderStatus = "processed" // 已处理
)

// updatableStatuses 更新操作接受的封闭集合。
// pending 只在创建时赋值，不能通过更新接口写回。
var updatableStatuses = map[OrderStatus]struct{}{
	OrderStatusShipped:   {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
	OrderStatusReturned:  {},
	OrderStatusProcessed: {},
}

// IsUpdatable 检查状态是否属于更新操作的合法集合
func (s OrderStatus) IsUpdatable() bool {
	_, ok := updatableStatuses[s]
	return ok
}

// Clone 深拷贝：调用方修改返回值不会影响 store 里的记录
func (o Order) Clone() Order {
	out := o
	if o.Items != nil {
		out.Items = make([]LineItem, len(o.Items))
		copy(out.Items, o.Items)
	}
	return out
}
