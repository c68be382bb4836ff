package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
)

type ProductView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int64  `json:"stock"`
}

type ProductUsecase struct {
	products  repo.ProductRepository
	inventory repo.InventoryRepository
}

// DI
func NewProductUsecase(products repo.ProductRepository, inventory repo.InventoryRepository) *ProductUsecase {
	return &ProductUsecase{
		products:  products,
		inventory: inventory,
	}
}

// 公開の商品一覧（id昇順）
func (u *ProductUsecase) ListProducts(ctx context.Context) ([]ProductView, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		return []ProductView{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views, nil
}

type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Stock       int64
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, in CreateProductInput) (int64, error) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "name required")
	}
	if in.PriceCents <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "price_cents must be > 0")
	}
	if in.Stock < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "stock must be >= 0")
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return p.ID, nil
}

// 削除は拒否型：明細から参照されていればカスケードせず断る。
func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "invalid product id")
	}

	count, err := u.products.CountOrderReferences(ctx, productID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	if count > 0 {
		return NewHTTPError(http.StatusBadRequest, CodeConflict,
			fmt.Sprintf("product is referenced by %d order items", count))
	}

	err = u.products.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, CodeNotFound, "not found")
	}
	if errors.Is(err, repo.ErrReferenced) {
		// チェックとDELETEの間に明細が入った場合はFKが守る
		return NewHTTPError(http.StatusBadRequest, CodeConflict, "product is referenced by order items")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return nil
}

// 在庫調整は加算のみ。減算は注文経由でしか起きない。
func (u *ProductUsecase) AdminAdjustStock(ctx context.Context, productID int64, delta int64) (int64, error) {
	if productID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "invalid product id")
	}
	if delta <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "change must be > 0")
	}

	newStock, err := u.inventory.AddStock(ctx, productID, delta)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, NewHTTPError(http.StatusNotFound, CodeNotFound, "not found")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return newStock, nil
}

func toProductView(p model.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
	}
}
