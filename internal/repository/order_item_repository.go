package repository

import (
	"context"

	"webshop/internal/domain/model"
)

// 商品名をLEFT JOINした明細行。商品が消えていればProductNameはnil。
type OrderItemRow struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	Qty         int64
	PriceCents  int64
	ProductName *string
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderIDWithProduct(ctx context.Context, orderID int64) ([]OrderItemRow, error)
}
