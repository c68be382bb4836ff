package db

import (
	"webshop/internal/domain/model"

	"gorm.io/gorm"
)

const seedAdminEmail = "admin@example.com"

// Seed はデモ商品と管理者ユーザーを投入する。
// すでにデータがあるものはスキップ（再実行しても増えない）。
func Seed(gormDB *gorm.DB, adminPasswordHash string) error {
	var productCount int64
	if err := gormDB.Model(&model.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		products := []model.Product{
			{Name: "T-Shirt - Demo", Description: "Soft cotton t-shirt.", PriceCents: 1999, Stock: 10},
			{Name: "Coffee Mug", Description: "Ceramic mug, 300ml.", PriceCents: 899, Stock: 25},
			{Name: "USB Stick 32GB", Description: "Small & fast.", PriceCents: 1299, Stock: 5},
			{Name: "Notebook", Description: "A5 ruled.", PriceCents: 599, Stock: 15},
		}
		if err := gormDB.Create(&products).Error; err != nil {
			return err
		}
	}

	var adminCount int64
	if err := gormDB.Model(&model.User{}).Where("email = ?", seedAdminEmail).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		admin := model.User{
			Email:        seedAdminEmail,
			PasswordHash: adminPasswordHash,
			FullName:     "Admin",
			IsAdmin:      true,
		}
		if err := gormDB.Create(&admin).Error; err != nil {
			return err
		}
	}

	return nil
}
