// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe_backend/internal/feature/user/domain/entity"
	"recipe_backend/internal/feature/user/transport/http/dto"
	"recipe_backend/internal/feature/user/usecase"
	"recipe_backend/internal/platform/authtoken"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	// Signup は指定されたメールアドレスとパスワードで新規ユーザーを登録します。
	Signup(ctx context.Context, email, password, name string) (*entity.User, error)
	// IssueToken はユーザーを認証し、成功時にベアラートークンを返します。
	IssueToken(ctx context.Context, email, password, userAgent, ipAddress string) (string, error)
	// RevokeToken は提示されたトークンを失効させます。
	RevokeToken(ctx context.Context, tokenID string) error
	// Profile は認証済みユーザー自身のプロフィールを返します。
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	// UpdateProfile は表示名とパスワードを更新します。nilのフィールドは変更しません。
	UpdateProfile(ctx context.Context, userID uint, name, password *string) (*entity.User, error)
}

// UserHandler はユーザー操作のHTTPリクエストを処理します。
// UserUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からUserUsecaseを注入します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Create はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーションエラー・メール重複時は400を返却
// - 成功時は201でメールアドレスと表示名を返却（パスワードは返さない）
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	user, err := h.users.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		// 重複メールもポリシー違反も一律400。詳細はログにのみ残す
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "user with this email already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Info("user signup successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.UserResponse{Email: user.Email, Name: user.Name})
}

// IssueToken はトークン発行APIエンドポイントを処理します。
// - リクエストJSONをTokenReqにバインド
// - バリデーションエラー・認証失敗時は400を返却（tokenキーは含めない）
// - 成功時はトークン付きで200を返却
func (h *UserHandler) IssueToken(c *gin.Context) {
	var req dto.TokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("token request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.users.IssueToken(c.Request.Context(), req.Email, req.Password,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("token issue failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid email or password"})
		return
	}
	slog.Info("token issued", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// RevokeToken は提示されたトークンを失効させるAPIエンドポイントを処理します（ログアウト）。
func (h *UserHandler) RevokeToken(c *gin.Context) {
	tokenID, ok := authtoken.TokenID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}
	if err := h.users.RevokeToken(c.Request.Context(), tokenID); err != nil {
		slog.Error("token revoke failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Me は認証済みユーザー自身のプロフィールを返すAPIエンドポイントを処理します。
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := authtoken.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}
	user, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{Email: user.Email, Name: user.Name})
}

// UpdateMe はプロフィール更新APIエンドポイントを処理します。
// 表示名とパスワードのみ更新可能で、パスワードは再ハッシュされます。
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := authtoken.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}
	var req dto.UpdateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), userID, req.Name, req.Password)
	if err != nil {
		slog.Warn("profile update failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{Email: user.Email, Name: user.Name})
}
