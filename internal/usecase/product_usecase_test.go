package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
	"webshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type ProdProductRepoMock struct{ mock.Mock }

func (m *ProdProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProdProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	panic("not used in ProductUsecase tests")
}

func (m *ProdProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProdProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProdProductRepoMock) CountOrderReferences(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

type ProdInventoryRepoMock struct{ mock.Mock }

func (m *ProdInventoryRepoMock) AddStock(ctx context.Context, productID int64, delta int64) (int64, error) {
	args := m.Called(ctx, productID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProdInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	panic("not used in ProductUsecase tests")
}

// =====================
// List
// =====================

func TestProductUsecase_ListProducts_ReturnsViews(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdInventoryRepoMock))

	pRepo.On("List", mock.Anything).Return([]model.Product{
		{ID: 1, Name: "Coffee Mug", PriceCents: 899, Stock: 25},
		{ID: 2, Name: "Notebook", PriceCents: 599, Stock: 15},
	}, nil)

	views, err := uc.ListProducts(ctx)
	assert.NoError(t, err)
	if assert.Len(t, views, 2) {
		assert.Equal(t, int64(1), views[0].ID)
		assert.Equal(t, int64(899), views[0].PriceCents)
		assert.Equal(t, int64(2), views[1].ID)
	}
}

// =====================
// Create
// =====================

func TestProductUsecase_AdminCreateProduct_InvalidInput(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdInventoryRepoMock))
	ctx := context.Background()

	_, err := uc.AdminCreateProduct(ctx, usecase.CreateProductInput{Name: "   ", PriceCents: 100})
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeInvalidInput)

	_, err = uc.AdminCreateProduct(ctx, usecase.CreateProductInput{Name: "Mug", PriceCents: 0})
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeInvalidInput)

	_, err = uc.AdminCreateProduct(ctx, usecase.CreateProductInput{Name: "Mug", PriceCents: -5})
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeInvalidInput)
}

func TestProductUsecase_AdminCreateProduct_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdInventoryRepoMock))

	pRepo.On("Create", mock.Anything, model.Product{Name: "Mug", Description: "Ceramic", PriceCents: 899, Stock: 5}).
		Return(model.Product{ID: 10, Name: "Mug", Description: "Ceramic", PriceCents: 899, Stock: 5}, nil)

	id, err := uc.AdminCreateProduct(ctx, usecase.CreateProductInput{
		Name:        " Mug ",
		Description: "Ceramic",
		PriceCents:  899,
		Stock:       5,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), id)

	pRepo.AssertExpectations(t)
}

// =====================
// Delete
// =====================

func TestProductUsecase_AdminDeleteProduct_RefusedWhenReferenced(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdInventoryRepoMock))

	pRepo.On("CountOrderReferences", mock.Anything, int64(1)).Return(int64(2), nil)

	err := uc.AdminDeleteProduct(ctx, 1)
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeConflict)

	he, _ := usecase.AsHTTPError(err)
	assert.Contains(t, he.Message, "2 order items")

	// 参照があれば削除には進まない
	pRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductUsecase_AdminDeleteProduct_NotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdInventoryRepoMock))

	pRepo.On("CountOrderReferences", mock.Anything, int64(99)).Return(int64(0), nil)
	pRepo.On("Delete", mock.Anything, int64(99)).Return(repo.ErrNotFound)

	err := uc.AdminDeleteProduct(ctx, 99)
	assertHTTPError(t, err, http.StatusNotFound, usecase.CodeNotFound)
}

func TestProductUsecase_AdminDeleteProduct_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdInventoryRepoMock))

	pRepo.On("CountOrderReferences", mock.Anything, int64(2)).Return(int64(0), nil)
	pRepo.On("Delete", mock.Anything, int64(2)).Return(nil)

	assert.NoError(t, uc.AdminDeleteProduct(ctx, 2))
	pRepo.AssertExpectations(t)
}

// =====================
// AdjustStock
// =====================

func TestProductUsecase_AdminAdjustStock_NonPositiveDelta(t *testing.T) {
	inv := new(ProdInventoryRepoMock)
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), inv)
	ctx := context.Background()

	_, err := uc.AdminAdjustStock(ctx, 1, 0)
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeInvalidInput)

	_, err = uc.AdminAdjustStock(ctx, 1, -3)
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeInvalidInput)

	inv.AssertNotCalled(t, "AddStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductUsecase_AdminAdjustStock_NotFound(t *testing.T) {
	ctx := context.Background()

	inv := new(ProdInventoryRepoMock)
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), inv)

	inv.On("AddStock", mock.Anything, int64(99), int64(5)).Return(int64(0), repo.ErrNotFound)

	_, err := uc.AdminAdjustStock(ctx, 99, 5)
	assertHTTPError(t, err, http.StatusNotFound, usecase.CodeNotFound)
}

func TestProductUsecase_AdminAdjustStock_Success(t *testing.T) {
	ctx := context.Background()

	inv := new(ProdInventoryRepoMock)
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), inv)

	inv.On("AddStock", mock.Anything, int64(1), int64(5)).Return(int64(12), nil)

	newStock, err := uc.AdminAdjustStock(ctx, 1, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), newStock)
}
