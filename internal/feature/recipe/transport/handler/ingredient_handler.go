package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/transport/http/dto"
)

// IngredientUsecase は食材操作のユースケースを定義します。
type IngredientUsecase interface {
	List(ctx context.Context, ownerID uint, assignedOnly bool) ([]entity.Ingredient, error)
	Rename(ctx context.Context, ownerID, id uint, name string) (*entity.Ingredient, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// IngredientHandler は食材操作のHTTPリクエストを処理します。
// タグと同じパターンを食材エンドポイントに適用します。
type IngredientHandler struct {
	ingredients IngredientUsecase
}

// NewIngredientHandler はIngredientHandlerの新しいインスタンスを生成します。
func NewIngredientHandler(ingredients IngredientUsecase) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients}
}

// List は食材一覧APIエンドポイントを処理します。
// assigned_only=1の場合、所有レシピに使われている食材のみを重複なしで返します。
func (h *IngredientHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ingredients, err := h.ingredients.List(c.Request.Context(), userID, assignedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IngredientItems(ingredients))
}

// Update は食材名変更APIエンドポイントを処理します。
func (h *IngredientHandler) Update(c *gin.Context) {
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
	ingredient, err := h.ingredients.Rename(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NamedItem{ID: ingredient.ID, Name: ingredient.Name})
}

// Delete は食材削除APIエンドポイントを処理します。
func (h *IngredientHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ingredients.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
