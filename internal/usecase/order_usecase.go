package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderLineInput struct {
	ProductID int64 `json:"product_id"`
	Qty       int64 `json:"qty"`
}

// 注文確定。検証→合計→注文作成→スナップショット明細→在庫減算を
// 1トランザクションで行う。途中で失敗したら全部巻き戻る。
//
// qty<=0の行は黙って捨てる（エラーにしない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, lines []OrderLineInput) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, CodeUnauthenticated, "not logged in")
	}
	if len(lines) == 0 {
		return 0, NewHTTPError(http.StatusBadRequest, CodeEmptyCart, "no items in cart")
	}

	var orderID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 検証パス：存在と在庫を見て合計を出す
		type validLine struct {
			productID  int64
			qty        int64
			priceCents int64
		}

		valid := make([]validLine, 0, len(lines))
		var total int64 = 0

		for _, line := range lines {
			if line.Qty <= 0 {
				continue
			}

			p, err := r.Products().FindByID(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, CodeNotFound,
					fmt.Sprintf("product %d does not exist", line.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
			}

			if line.Qty > p.Stock {
				return NewHTTPError(http.StatusBadRequest, CodeConflict,
					fmt.Sprintf("not enough stock for product %d", line.ProductID))
			}

			valid = append(valid, validLine{
				productID:  line.ProductID,
				qty:        line.Qty,
				priceCents: p.PriceCents, // 注文時点の単価
			})
			total += line.Qty * p.PriceCents
		}

		// 確定パス：注文を作ってから明細と在庫を処理
		id, err := r.Orders().Create(ctx, model.Order{
			UserID:     userID,
			TotalCents: total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		items := make([]model.OrderItem, 0, len(valid))
		for _, v := range valid {
			// 条件付きUPDATE：検証パスの後に他の注文が在庫を取っていたら
			// ここで0件更新になり、注文全体が巻き戻る
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, v.productID, v.qty)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, CodeConflict,
					fmt.Sprintf("not enough stock for product %d", v.productID))
			}

			items = append(items, model.OrderItem{
				ProductID:  v.productID,
				Qty:        v.qty,
				PriceCents: v.priceCents,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, id, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		orderID = id
		return nil
	})

	if err != nil {
		return 0, err
	}
	return orderID, nil
}
