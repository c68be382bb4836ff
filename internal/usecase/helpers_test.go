package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	repo "webshop/internal/repository"
	"webshop/internal/usecase"

	"github.com/stretchr/testify/assert"
)

// =====================
// 共通スタブ
// =====================

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type fixedIDGen struct{ id string }

func (g *fixedIDGen) NewID() string { return g.id }

// WithinTxの中で渡すreposを固定してunitテストを回す
type stubTxManager struct {
	Repos repo.TxRepos
}

func (m *stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

type stubTxRepos struct {
	users      repo.UserRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *stubTxRepos) Users() repo.UserRepository           { return r.users }
func (r *stubTxRepos) Products() repo.ProductRepository     { return r.products }
func (r *stubTxRepos) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *stubTxRepos) Orders() repo.OrderRepository         { return r.orders }
func (r *stubTxRepos) OrderItems() repo.OrderItemRepository { return r.orderItems }

// =====================
// アサーション
// =====================

func assertHTTPError(t *testing.T, err error, wantStatus int, wantCode string) {
	t.Helper()

	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	assert.Equal(t, wantStatus, he.Status)
	assert.Equal(t, wantCode, he.Code)
}

// セッショントークンのDB表現（sha256 hex）
func tokenHashOf(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
