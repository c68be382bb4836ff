package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	repo "webshop/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type OrderUserSummary struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

type AdminOrderItemView struct {
	ProductID int64 `json:"product_id"`
	// 商品が削除済みならnull
	ProductName *string `json:"product_name"`
	Qty         int64   `json:"qty"`
	PriceCents  int64   `json:"price_cents"`
}

type AdminOrderView struct {
	ID         int64                `json:"id"`
	TotalCents int64                `json:"total_cents"`
	CreatedAt  time.Time            `json:"created_at"`
	User       OrderUserSummary     `json:"user"`
	Items      []AdminOrderItemView `json:"items"`
}

// 管理画面用：注文＋ユーザー＋明細（商品名付き）を新しい順で返す。
// 1トランザクションで読むので一覧と明細がずれない。
func (u *AdminOrderUsecase) ListOrdersWithItems(ctx context.Context) ([]AdminOrderView, error) {
	var outs []AdminOrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListNewestFirst(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		outs = make([]AdminOrderView, 0, len(orders))
		for _, o := range orders {
			summary := OrderUserSummary{ID: o.UserID}

			user, err := r.Users().FindByID(ctx, o.UserID)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
			}
			if err == nil {
				summary.Email = user.Email
				summary.FullName = user.FullName
			}

			rows, err := r.OrderItems().ListByOrderIDWithProduct(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
			}

			items := make([]AdminOrderItemView, 0, len(rows))
			for _, row := range rows {
				items = append(items, AdminOrderItemView{
					ProductID:   row.ProductID,
					ProductName: row.ProductName,
					Qty:         row.Qty,
					PriceCents:  row.PriceCents,
				})
			}

			outs = append(outs, AdminOrderView{
				ID:         o.ID,
				TotalCents: o.TotalCents,
				CreatedAt:  o.CreatedAt,
				User:       summary,
				Items:      items,
			})
		}
		return nil
	})

	if err != nil {
		return []AdminOrderView{}, err
	}
	return outs, nil
}
