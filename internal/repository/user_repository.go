package repository

import (
	"context"
	"errors"

	"webshop/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")

	// emailのunique制約違反
	ErrDuplicateEmail = errors.New("email already registered")

	// order_itemsから参照されている商品の削除
	ErrReferenced = errors.New("referenced by order items")
)

// ユーザーの永続化だけを約束。
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
}
