package main

import (
	"context"
	"flag"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"recipe_backend/internal/feature/user/adapters"
	"recipe_backend/internal/feature/user/domain/entity"
	"recipe_backend/internal/feature/user/usecase"
	infradb "recipe_backend/internal/platform/db"
)

// 管理用CLI。スーパーユーザーの作成と期限切れトークンの掃除を行います。
func main() {
	email := flag.String("email", "", "superuser email address")
	password := flag.String("password", "", "superuser password")
	name := flag.String("name", "", "superuser display name")
	purgeTokens := flag.Bool("purge-expired-tokens", false, "delete expired tokens and exit")
	flag.Parse()

	db := infradb.OpenDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *purgeTokens {
		deleted, err := adapters.NewTokenPostgres(db).DeleteExpired(ctx)
		if err != nil {
			log.Fatal("failed to purge tokens:", err)
		}
		log.Printf("purged %d expired tokens", deleted)
		return
	}

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password:", err)
	}

	user := &entity.User{
		Email:       usecase.NormalizeEmail(*email),
		Password:    string(hashed),
		Name:        *name,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := adapters.NewUserPostgres(db).Create(ctx, user); err != nil {
		log.Fatal("failed to create superuser:", err)
	}
	log.Printf("superuser %s created (id=%d)", user.Email, user.ID)
}
