package domain

import "github.com/shopspring/decimal"

// Product 商品领域模型：启动时播种，之后只有订单引擎在下单成功时扣减库存
type Product struct {
	ID    string          `json:"product_id"`
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}
