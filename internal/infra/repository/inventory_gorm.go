package repository

import (
	"context"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫を加算して新しい値を返す（管理者の在庫調整用）。
func (r *InventoryGormRepository) AddStock(ctx context.Context, productID int64, delta int64) (int64, error) {
	var newStock int64

	res := r.db.WithContext(ctx).
		Raw("UPDATE products SET stock = stock + ? WHERE id = ? RETURNING stock", delta, productID).
		Scan(&newStock)

	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, repo.ErrNotFound
	}
	return newStock, nil
}

// 在庫が足りるときだけ減らす。
// 条件付きUPDATEなので同時注文でも売り越さない。
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
