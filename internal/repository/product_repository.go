package repository

import (
	"context"

	"webshop/internal/domain/model"
)

// 商品の永続化（保存・取得・削除）だけを約束。
type ProductRepository interface {
	// id昇順で全件
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)

	// 物理削除。参照が残っていればErrReferenced。
	Delete(ctx context.Context, id int64) error

	// この商品を参照しているorder_itemsの件数
	CountOrderReferences(ctx context.Context, productID int64) (int64, error)
}

// 在庫操作だけを約束。減算は注文経由のみ、加算は管理者の調整のみ。
type InventoryRepository interface {
	// stock = stock + delta を1文で行い、新しい在庫を返す
	AddStock(ctx context.Context, productID int64, delta int64) (int64, error)

	// 在庫が足りるときだけ減らす（足りなければfalse）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
