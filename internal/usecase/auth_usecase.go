package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
)

// UUID等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// passwordハッシュは外に出さないビュー。
type UserView struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"fullname"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalcode"`
	IsAdmin    bool   `json:"is_admin"`
}

type RegisterInput struct {
	Email      string
	Password   string
	FullName   string
	Address    string
	City       string
	PostalCode string
	UserAgent  string

	// 同じCookieに載っていた旧セッションのトークン（あれば破棄する）
	PriorToken string
}

type LoginInput struct {
	Email      string
	Password   string
	UserAgent  string
	PriorToken string
}

// handlerがCookieに詰めるために必要な値
type SessionSideEffect struct {
	PlainToken string
	ExpiresAt  time.Time
}

type AuthUsecase struct {
	users      repo.UserRepository
	sessions   repo.SessionRepository
	hasher     PasswordHasher
	verifier   PasswordVerifier
	idGen      IDGenerator
	clock      Clock
	sessionTTL time.Duration
}

// DI
func NewAuthUsecase(
	users repo.UserRepository,
	sessions repo.SessionRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	idGen IDGenerator,
	clock Clock,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		sessions:   sessions,
		hasher:     hasher,
		verifier:   verifier,
		idGen:      idGen,
		clock:      clock,
		sessionTTL: sessionTTL,
	}
}

// 会員登録。成功したら新規ユーザーでセッションを確立する。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserView, SessionSideEffect, error) {
	var side SessionSideEffect

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return UserView{}, side, NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "email and password required")
	}
	if !isValidEmailFormat(email) {
		return UserView{}, side, NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "invalid email format")
	}
	if len(in.Password) < 8 {
		return UserView{}, side, NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "password too short")
	}

	// email重複チェック（大文字小文字は区別しない：保存前に正規化済み）
	_, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return UserView{}, side, NewHTTPError(http.StatusBadRequest, CodeConflict, "email already registered")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return UserView{}, side, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserView{}, side, NewHTTPError(http.StatusInternalServerError, CodeInternal, "hash error")
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed, // 平文は保存しない
		FullName:     in.FullName,
		Address:      in.Address,
		City:         in.City,
		PostalCode:   in.PostalCode,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// 事前チェックとINSERTの間に同じemailが入った場合
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return UserView{}, side, NewHTTPError(http.StatusBadRequest, CodeConflict, "email already registered")
		}
		return UserView{}, side, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	side, err = u.establishSession(ctx, user.ID, in.UserAgent, in.PriorToken)
	if err != nil {
		return UserView{}, side, err
	}

	return toUserView(*user), side, nil
}

// ログイン。未知のemailとパスワード不一致は呼び出し側から区別できない。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (UserView, SessionSideEffect, error) {
	var side SessionSideEffect

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return UserView{}, side, NewHTTPError(http.StatusBadRequest, CodeInvalidInput, "email and password required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return UserView{}, side, invalidCredentials()
	}
	if err != nil {
		return UserView{}, side, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return UserView{}, side, invalidCredentials()
	}

	side, err = u.establishSession(ctx, user.ID, in.UserAgent, in.PriorToken)
	if err != nil {
		return UserView{}, side, err
	}

	return toUserView(user), side, nil
}

// 現在のセッションを無効化する。トークンが未知でもエラーにしない。
func (u *AuthUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := u.sessions.RevokeByTokenHash(ctx, hashToken(token), u.clock.Now())
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return nil
}

// トークンからユーザーを毎回DBで引き直す（キャッシュしない）。
// セッションやユーザーが消えていればnilを返す。
func (u *AuthUsecase) CurrentUser(ctx context.Context, token string) (*UserView, error) {
	if token == "" {
		return nil, nil
	}

	s, err := u.sessions.FindByTokenHash(ctx, hashToken(token))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	now := u.clock.Now()
	if s.RevokedAt != nil || now.After(s.ExpiresAt) {
		return nil, nil
	}

	user, err := u.users.FindByID(ctx, s.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		// セッションだけ残ってユーザーが消えているケース
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	view := toUserView(user)
	return &view, nil
}

// 旧セッションを破棄してから新しいセッションを作る。
// 返す平文トークンはここ以外に存在しない。
func (u *AuthUsecase) establishSession(ctx context.Context, userID int64, userAgent string, priorToken string) (SessionSideEffect, error) {
	var side SessionSideEffect

	now := u.clock.Now()

	if priorToken != "" {
		err := u.sessions.RevokeByTokenHash(ctx, hashToken(priorToken), now)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return side, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
	}

	plain, err := generateSecureToken(32)
	if err != nil {
		return side, NewHTTPError(http.StatusInternalServerError, CodeInternal, "token error")
	}

	session := &model.Session{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		TokenHash: hashToken(plain),
		UserAgent: userAgent,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return side, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	side.PlainToken = plain
	side.ExpiresAt = session.ExpiresAt
	return side, nil
}

func invalidCredentials() error {
	return NewHTTPError(http.StatusBadRequest, CodeInvalidCredentials, "invalid email or password")
}

func toUserView(u model.User) UserView {
	return UserView{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Address:    u.Address,
		City:       u.City,
		PostalCode: u.PostalCode,
		IsAdmin:    u.IsAdmin,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// メールチェック
func isValidEmailFormat(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func generateSecureToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		return "", fmt.Errorf("bytesLen must be positive")
	}

	// OSが持つ安全な乱数
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
