package repository

import (
	"context"
	"time"

	"webshop/internal/domain/model"
)

// セッションはtoken_hashでしか引かない（平文トークンはDBに入れない）。
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	FindByTokenHash(ctx context.Context, tokenHash string) (model.Session, error)

	// revoked_atを入れて無効化する。対象がなければErrNotFound。
	RevokeByTokenHash(ctx context.Context, tokenHash string, now time.Time) error
}
