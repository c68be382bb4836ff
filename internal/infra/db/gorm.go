package db

import (
	"webshop/internal/config"
	"webshop/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
}

// Migrate はスキーマを作成・更新する。
// order_items→productsのFK（RESTRICT）もここで張られる。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	)
}
