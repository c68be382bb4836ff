package model

import "time"

// PriceCentsは注文時点の単価スナップショット。
// 商品側の価格が後で変わっても明細は動かない。
type OrderItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64     `gorm:"not null;index" json:"order_id"`
	ProductID  int64     `gorm:"not null;index" json:"product_id"`
	Qty        int64     `gorm:"not null" json:"qty"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Order *Order `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	// 明細から参照されている商品は消せない（RESTRICT）
	Product *Product `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
