package router

import (
	"github.com/gin-gonic/gin"

	recipehandler "recipe_backend/internal/feature/recipe/transport/handler"
	userhandler "recipe_backend/internal/feature/user/transport/handler"
	"recipe_backend/internal/platform/authtoken"
	"recipe_backend/internal/platform/http/handler"
)

// NewRouter はルートテーブルを構築します。
// アカウント作成・トークン発行・ヘルスチェック以外のすべてのエンドポイントは
// ベアラートークン必須です。
func NewRouter(users *userhandler.UserHandler, recipes *recipehandler.RecipeHandler,
	tags *recipehandler.TagHandler, ingredients *recipehandler.IngredientHandler,
	tokens authtoken.TokenFinder, mediaRoot string) *gin.Engine {
	r := gin.Default()

	// 登録済みパスへの未サポートメソッドは404ではなく405を返す
	r.HandleMethodNotAllowed = true

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	// アップロード済み画像の配信
	r.Static("/media", mediaRoot)
	// 新規ユーザー登録
	r.POST("/users/", users.Create)
	// トークン発行（ログイン）
	r.POST("/users/token/", users.IssueToken)

	// 認証必須のルート
	auth := r.Group("/")
	// authtoken.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーにベアラートークンが必要になる
	auth.Use(authtoken.AuthRequired(tokens))
	{
		auth.GET("/users/me/", users.Me)
		auth.PATCH("/users/me/", users.UpdateMe)
		auth.DELETE("/users/token/", users.RevokeToken)

		auth.GET("/recipes/", recipes.List)
		auth.POST("/recipes/", recipes.Create)
		auth.GET("/recipes/:id/", recipes.Get)
		auth.PATCH("/recipes/:id/", recipes.Update)
		auth.PUT("/recipes/:id/", recipes.Replace)
		auth.DELETE("/recipes/:id/", recipes.Delete)
		auth.POST("/recipes/:id/upload-image/", recipes.UploadImage)

		auth.GET("/tags/", tags.List)
		auth.PATCH("/tags/:id/", tags.Update)
		auth.DELETE("/tags/:id/", tags.Delete)

		auth.GET("/ingredients/", ingredients.List)
		auth.PATCH("/ingredients/:id/", ingredients.Update)
		auth.DELETE("/ingredients/:id/", ingredients.Delete)
	}

	return r
}
