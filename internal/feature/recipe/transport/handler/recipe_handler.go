// Package handler はrecipeフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	// レシピ画像の検証に使うデコーダを登録する
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/transport/http/dto"
	"recipe_backend/internal/feature/recipe/usecase"
	"recipe_backend/internal/platform/authtoken"
)

// maxImageBytes はアップロード画像の上限サイズです。
const maxImageBytes = 10 << 20

// RecipeUsecase はレシピ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type RecipeUsecase interface {
	Create(ctx context.Context, ownerID uint, in usecase.RecipeInput) (*entity.Recipe, error)
	Get(ctx context.Context, ownerID, id uint) (*entity.Recipe, error)
	List(ctx context.Context, ownerID uint, filter usecase.ListFilter) ([]entity.Recipe, error)
	Update(ctx context.Context, ownerID, id uint, in usecase.RecipeInput) (*entity.Recipe, error)
	Delete(ctx context.Context, ownerID, id uint) error
	SetImage(ctx context.Context, ownerID, id uint, filename string) (*entity.Recipe, error)
}

// ImageStore は画像ファイルの保存先を抽象化します。
type ImageStore interface {
	// Save は画像を指定された名前で保存します。
	Save(name string, r io.Reader) error
	// URL は保存済みファイル名を公開URLに変換します。
	URL(name string) string
}

// RecipeHandler はレシピ操作のHTTPリクエストを処理します。
type RecipeHandler struct {
	recipes RecipeUsecase
	images  ImageStore
}

// NewRecipeHandler はRecipeHandlerの新しいインスタンスを生成します。
func NewRecipeHandler(recipes RecipeUsecase, images ImageStore) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, images: images}
}

// currentUser は認証済みユーザーIDを取得します。未認証の場合は401を返して中断します。
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := authtoken.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return 0, false
	}
	return userID, true
}

// parseID はパスパラメータのIDを解析します。数値でない場合は404を返して中断します。
// 存在しないIDと区別できない形にすることで、IDの形式からも情報が漏れません。
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
		return 0, false
	}
	return uint(id), true
}

// respondError はユースケースのエラーをHTTPステータスに対応付けます。
// 所有権違反はErrNotFoundとして届くため、403はここから決して返りません。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	case errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("recipe operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

// namesPtr は記述子リストをname文字列リストに変換します。nilはnilのまま伝播します。
func namesPtr(refs *[]dto.NamedRef) *[]string {
	if refs == nil {
		return nil
	}
	names := dto.Names(*refs)
	return &names
}

// parseIDList はカンマ区切りのIDリストクエリパラメータを解析します。
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// List はレシピ一覧APIエンドポイントを処理します。
// tags/ingredientsクエリパラメータ（カンマ区切りID）でフィルタできます。
// 一覧は省略形（description・ingredientsなし）で返します。
func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid tags filter"})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid ingredients filter"})
		return
	}

	recipes, err := h.recipes.List(c.Request.Context(), userID,
		usecase.ListFilter{TagIDs: tagIDs, IngredientIDs: ingredientIDs})
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.RecipeListItem, 0, len(recipes))
	for i := range recipes {
		out = append(out, dto.NewRecipeListItem(&recipes[i], h.images.URL))
	}
	c.JSON(http.StatusOK, out)
}

// Create はレシピ作成APIエンドポイントを処理します。
// 所有者は常に認証済みユーザーに強制されます。
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, usecase.RecipeInput{
		Title:       &req.Title,
		Description: &req.Description,
		TimeMinutes: &req.TimeMinutes,
		Price:       &req.Price,
		Link:        &req.Link,
		Tags:        namesPtr(req.Tags),
		Ingredients: namesPtr(req.Ingredients),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("recipe created", "recipe_id", recipe.ID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.NewRecipeDetail(recipe, h.images.URL))
}

// Get はレシピ詳細APIエンドポイントを処理します。
// 他ユーザー所有のレシピは存在しないものとして404を返します。
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecipeDetail(recipe, h.images.URL))
}

// Update はPATCH（部分更新）APIエンドポイントを処理します。
// リクエストに含まれないフィールドと関連には触れません。
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, usecase.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Tags:        namesPtr(req.Tags),
		Ingredients: namesPtr(req.Ingredients),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecipeDetail(recipe, h.images.URL))
}

// Replace はPUT（全体置換）APIエンドポイントを処理します。
// スカラーは全フィールド必須の形で受け取り、省略された任意項目はゼロ値に戻ります。
// タグ・食材はPATCHと同じ規則です: キーなし=変更しない、空=解除、N件=リコンサイル。
func (h *RecipeHandler) Replace(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, usecase.RecipeInput{
		Title:       &req.Title,
		Description: &req.Description,
		TimeMinutes: &req.TimeMinutes,
		Price:       &req.Price,
		Link:        &req.Link,
		Tags:        namesPtr(req.Tags),
		Ingredients: namesPtr(req.Ingredients),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecipeDetail(recipe, h.images.URL))
}

// Delete はレシピ削除APIエンドポイントを処理します。
// レシピと関連行を削除し、タグ・食材そのものは残します。
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	slog.Info("recipe deleted", "recipe_id", id, "user_id", userID)
	c.Status(http.StatusNoContent)
}

// UploadImage は画像添付APIエンドポイントを処理します。
// - multipartのimageフィールドを読み取り、登録済みデコーダで画像か検証する
// - ファイル名は衝突回避のため毎回ランダムなUUIDを生成し、元の拡張子を保持する
// - 画像でないペイロードは400で拒否し、既存の画像参照は変更しない
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	// レシピの所有確認を先に行い、他ユーザーのレシピには404を返す
	if _, err := h.recipes.Get(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "could not read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "could not read image"})
		return
	}
	if len(data) > maxImageBytes {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "image too large"})
		return
	}

	// デコード可能かどうかだけを確認する（全ピクセルの展開はしない）
	format, err := sniffImage(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "not a valid image"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = "." + format
	}
	name := uuid.New().String() + ext

	if err := h.images.Save(name, bytes.NewReader(data)); err != nil {
		slog.Error("image save failed", "error", err, "recipe_id", id)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}

	recipe, err := h.recipes.SetImage(c.Request.Context(), userID, id, name)
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("recipe image uploaded", "recipe_id", id, "user_id", userID, "file", name)
	c.JSON(http.StatusOK, dto.NewRecipeDetail(recipe, h.images.URL))
}

// sniffImage はペイロードが登録済みフォーマットの画像かを検証し、フォーマット名を返します。
func sniffImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return format, nil
}
