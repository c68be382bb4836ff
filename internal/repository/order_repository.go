package repository

import (
	"context"

	"webshop/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)

	// created_at desc（同時刻はid desc）
	ListNewestFirst(ctx context.Context) ([]model.Order, error)
}
