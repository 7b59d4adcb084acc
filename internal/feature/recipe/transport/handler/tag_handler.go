package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/transport/http/dto"
)

// TagUsecase はタグ操作のユースケースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TagUsecase interface {
	List(ctx context.Context, ownerID uint, assignedOnly bool) ([]entity.Tag, error)
	Rename(ctx context.Context, ownerID, id uint, name string) (*entity.Tag, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// TagHandler はタグ操作のHTTPリクエストを処理します。
type TagHandler struct {
	tags TagUsecase
}

// NewTagHandler はTagHandlerの新しいインスタンスを生成します。
func NewTagHandler(tags TagUsecase) *TagHandler {
	return &TagHandler{tags: tags}
}

// assignedOnly はassigned_onlyクエリパラメータを解釈します。
func assignedOnly(c *gin.Context) bool {
	v := c.Query("assigned_only")
	return v == "1" || v == "true"
}

// List はタグ一覧APIエンドポイントを処理します。
// assigned_only=1の場合、所有レシピに付いているタグのみを重複なしで返します。
func (h *TagHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tags, err := h.tags.List(c.Request.Context(), userID, assignedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TagItems(tags))
}

// Update はタグ名変更APIエンドポイントを処理します。
func (h *TagHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateNameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	tag, err := h.tags.Rename(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NamedItem{ID: tag.ID, Name: tag.Name})
}

// Delete はタグ削除APIエンドポイントを処理します。
func (h *TagHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.tags.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
