package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
)

// setupRecipeTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupRecipeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	// In-memory SQLite gives every pooled connection its own database,
	// so pin the pool to a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entity.Tag{}, &entity.Ingredient{}, &entity.Recipe{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedRecipe はテスト用のレシピを1件作成します。
func seedRecipe(t *testing.T, repo usecase.RecipeRepository, ownerID uint, title string) *entity.Recipe {
	t.Helper()
	r := &entity.Recipe{
		UserID: ownerID,
		Title:  title,
		Price:  decimal.RequireFromString("5.00"),
	}
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestRecipePostgres_FindByID(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewRecipePostgres(db)
	ctx := context.Background()

	owned := seedRecipe(t, repo, 1, "Owned")
	foreign := seedRecipe(t, repo, 2, "Foreign")

	t.Run("returns an owned recipe with associations", func(t *testing.T) {
		tag := &entity.Tag{UserID: 1, Name: "Dinner"}
		require.NoError(t, db.Create(tag).Error)
		require.NoError(t, repo.ReplaceTags(ctx, owned, []entity.Tag{*tag}))

		got, err := repo.FindByID(ctx, 1, owned.ID)
		require.NoError(t, err)
		if got.Title != "Owned" {
			t.Errorf("expected title 'Owned', got %q", got.Title)
		}
		if len(got.Tags) != 1 || got.Tags[0].Name != "Dinner" {
			t.Errorf("expected preloaded tag 'Dinner', got %+v", got.Tags)
		}
	})

	t.Run("foreign recipe is indistinguishable from a missing one", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 1, foreign.ID)
		if !errors.Is(err, usecase.ErrNotFound) {
			t.Errorf("expected ErrNotFound for a foreign recipe, got %v", err)
		}

		_, err = repo.FindByID(ctx, 1, 9999)
		if !errors.Is(err, usecase.ErrNotFound) {
			t.Errorf("expected ErrNotFound for a missing recipe, got %v", err)
		}
	})
}

func TestRecipePostgres_List(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewRecipePostgres(db)
	ctx := context.Background()

	first := seedRecipe(t, repo, 1, "First")
	second := seedRecipe(t, repo, 1, "Second")
	seedRecipe(t, repo, 2, "Other Owner")

	t.Run("returns only owned recipes newest first", func(t *testing.T) {
		got, err := repo.List(ctx, 1, usecase.ListFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		// ID降順
		if got[0].ID != second.ID || got[1].ID != first.ID {
			t.Errorf("expected order [%d %d], got [%d %d]", second.ID, first.ID, got[0].ID, got[1].ID)
		}
	})

	t.Run("tag filter returns each recipe at most once", func(t *testing.T) {
		tagA := &entity.Tag{UserID: 1, Name: "A"}
		tagB := &entity.Tag{UserID: 1, Name: "B"}
		require.NoError(t, db.Create(tagA).Error)
		require.NoError(t, db.Create(tagB).Error)
		// firstは両方のタグに一致する
		require.NoError(t, repo.ReplaceTags(ctx, first, []entity.Tag{*tagA, *tagB}))

		got, err := repo.List(ctx, 1, usecase.ListFilter{TagIDs: []uint{tagA.ID, tagB.ID}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		if got[0].ID != first.ID {
			t.Errorf("expected recipe %d, got %d", first.ID, got[0].ID)
		}
	})

	t.Run("ingredient filter", func(t *testing.T) {
		ing := &entity.Ingredient{UserID: 1, Name: "Salt"}
		require.NoError(t, db.Create(ing).Error)
		require.NoError(t, repo.ReplaceIngredients(ctx, second, []entity.Ingredient{*ing}))

		got, err := repo.List(ctx, 1, usecase.ListFilter{IngredientIDs: []uint{ing.ID}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		if got[0].ID != second.ID {
			t.Errorf("expected recipe %d, got %d", second.ID, got[0].ID)
		}
	})

	t.Run("no matches yields an empty list", func(t *testing.T) {
		got, err := repo.List(ctx, 1, usecase.ListFilter{TagIDs: []uint{9999}})
		require.NoError(t, err)
		require.Len(t, got, 0)
	})
}

func TestRecipePostgres_Update(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewRecipePostgres(db)
	ctx := context.Background()

	r := seedRecipe(t, repo, 1, "Before")
	tag := &entity.Tag{UserID: 1, Name: "Keep"}
	require.NoError(t, db.Create(tag).Error)
	require.NoError(t, repo.ReplaceTags(ctx, r, []entity.Tag{*tag}))

	r.Title = "After"
	r.Price = decimal.RequireFromString("7.50")
	require.NoError(t, repo.Update(ctx, r))

	got, err := repo.FindByID(ctx, 1, r.ID)
	require.NoError(t, err)
	if got.Title != "After" {
		t.Errorf("expected title 'After', got %q", got.Title)
	}
	if !got.Price.Equal(decimal.RequireFromString("7.50")) {
		t.Errorf("expected price 7.50, got %s", got.Price)
	}
	// スカラー更新は関連に触れない
	if len(got.Tags) != 1 {
		t.Errorf("expected the tag association to survive, got %d tags", len(got.Tags))
	}
}

func TestRecipePostgres_ReplaceTags(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewRecipePostgres(db)
	ctx := context.Background()

	r := seedRecipe(t, repo, 1, "Taggable")
	tagA := &entity.Tag{UserID: 1, Name: "A"}
	tagB := &entity.Tag{UserID: 1, Name: "B"}
	require.NoError(t, db.Create(tagA).Error)
	require.NoError(t, db.Create(tagB).Error)

	t.Run("replaces the association set", func(t *testing.T) {
		require.NoError(t, repo.ReplaceTags(ctx, r, []entity.Tag{*tagA}))
		require.NoError(t, repo.ReplaceTags(ctx, r, []entity.Tag{*tagB}))

		got, err := repo.FindByID(ctx, 1, r.ID)
		require.NoError(t, err)
		require.Len(t, got.Tags, 1)
		if got.Tags[0].ID != tagB.ID {
			t.Errorf("expected tag %d, got %d", tagB.ID, got.Tags[0].ID)
		}
	})

	t.Run("empty set clears associations but keeps tag rows", func(t *testing.T) {
		require.NoError(t, repo.ReplaceTags(ctx, r, nil))

		got, err := repo.FindByID(ctx, 1, r.ID)
		require.NoError(t, err)
		require.Len(t, got.Tags, 0)

		// タグ行自体は残る
		var count int64
		require.NoError(t, db.Model(&entity.Tag{}).Count(&count).Error)
		if count != 2 {
			t.Errorf("expected 2 tag rows to survive, got %d", count)
		}
	})
}

func TestRecipePostgres_Delete(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewRecipePostgres(db)
	ctx := context.Background()

	r := seedRecipe(t, repo, 1, "Doomed")
	tag := &entity.Tag{UserID: 1, Name: "Survivor"}
	ing := &entity.Ingredient{UserID: 1, Name: "Salt"}
	require.NoError(t, db.Create(tag).Error)
	require.NoError(t, db.Create(ing).Error)
	require.NoError(t, repo.ReplaceTags(ctx, r, []entity.Tag{*tag}))
	require.NoError(t, repo.ReplaceIngredients(ctx, r, []entity.Ingredient{*ing}))

	require.NoError(t, repo.Delete(ctx, r))

	if _, err := repo.FindByID(ctx, 1, r.ID); !errors.Is(err, usecase.ErrNotFound) {
		t.Errorf("expected the recipe to be gone, got %v", err)
	}

	// 関連行は消えるが、タグ・食材の行は残る
	var joinCount int64
	require.NoError(t, db.Table("recipe_tags").Count(&joinCount).Error)
	if joinCount != 0 {
		t.Errorf("expected recipe_tags to be cleared, got %d rows", joinCount)
	}
	var tagCount, ingCount int64
	require.NoError(t, db.Model(&entity.Tag{}).Count(&tagCount).Error)
	require.NoError(t, db.Model(&entity.Ingredient{}).Count(&ingCount).Error)
	if tagCount != 1 || ingCount != 1 {
		t.Errorf("expected tag and ingredient rows to survive, got %d/%d", tagCount, ingCount)
	}
}
