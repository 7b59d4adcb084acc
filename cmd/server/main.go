package main

import (
	"log"
	"os"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"recipe_backend/internal/app/di"
	"recipe_backend/internal/app/router"
	recipeadapters "recipe_backend/internal/feature/recipe/adapters"
	recipehandler "recipe_backend/internal/feature/recipe/transport/handler"
	recipeusecase "recipe_backend/internal/feature/recipe/usecase"
	useradapters "recipe_backend/internal/feature/user/adapters"
	userhandler "recipe_backend/internal/feature/user/transport/handler"
	userusecase "recipe_backend/internal/feature/user/usecase"
	infradb "recipe_backend/internal/platform/db"
	infraredis "recipe_backend/internal/platform/redis"
	"recipe_backend/internal/platform/storage"
)

// defaultTokenTTL はTOKEN_TTL_HOURS未設定時のトークン有効期間です。
const defaultTokenTTL = 30 * 24 * time.Hour

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Tokens will be stored in Postgres.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 画像の保存先
	mediaRoot := os.Getenv("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "./media"
	}
	images, err := storage.NewLocalStorage(mediaRoot, "/media/")
	if err != nil {
		log.Fatal(err)
	}

	// トークン有効期間
	tokenTTL := defaultTokenTTL
	if hours, err := strconv.Atoi(os.Getenv("TOKEN_TTL_HOURS")); err == nil && hours > 0 {
		tokenTTL = time.Duration(hours) * time.Hour
	}

	// Repository
	userRepo := useradapters.NewUserPostgres(db)
	tokenRepo := di.NewTokenRepository(rdb, db)
	recipeRepo := recipeadapters.NewRecipePostgres(db)
	tagRepo := recipeadapters.NewTagPostgres(db)
	ingredientRepo := recipeadapters.NewIngredientPostgres(db)
	txManager := infradb.NewTxManager(db)

	// Usecase
	userUC := userusecase.NewUserUsecase(userRepo, tokenRepo, tokenTTL)
	recipeUC := recipeusecase.NewRecipeUsecase(recipeRepo, tagRepo, ingredientRepo, txManager)
	tagUC := recipeusecase.NewTagUsecase(tagRepo)
	ingredientUC := recipeusecase.NewIngredientUsecase(ingredientRepo)

	// Handler
	userH := userhandler.NewUserHandler(userUC)
	recipeH := recipehandler.NewRecipeHandler(recipeUC, images)
	tagH := recipehandler.NewTagHandler(tagUC)
	ingredientH := recipehandler.NewIngredientHandler(ingredientUC)

	// ルータ生成
	r := router.NewRouter(userH, recipeH, tagH, ingredientH, tokenRepo, mediaRoot)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
