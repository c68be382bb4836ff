package model

import "time"

// 作成後は不変。合計は作成時点の明細の qty×price_cents の和。
type Order struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	TotalCents int64     `gorm:"not null" json:"total_cents"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	User *User `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
