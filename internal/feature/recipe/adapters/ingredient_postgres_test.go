package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
	platformdb "recipe_backend/internal/platform/db"
)

func TestIngredientPostgres_Create(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewIngredientPostgres(db)
	ctx := context.Background()

	t.Run("creates an ingredient", func(t *testing.T) {
		ing := &entity.Ingredient{UserID: 1, Name: "Salt"}
		require.NoError(t, repo.Create(ctx, ing))
		if ing.ID == 0 {
			t.Error("expected ID to be assigned after create")
		}
	})

	t.Run("same owner and name returns ErrDuplicateName", func(t *testing.T) {
		err := repo.Create(ctx, &entity.Ingredient{UserID: 1, Name: "Salt"})
		if !errors.Is(err, usecase.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("different owners may use the same name", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &entity.Ingredient{UserID: 2, Name: "Salt"}))
	})
}

// タグ側と同様、重複違反の後も同じトランザクションを使い続けられることを検証します。
func TestIngredientPostgres_Create_DuplicateInsideTransaction(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewIngredientPostgres(db)
	tm := platformdb.NewTxManager(db)
	ctx := context.Background()

	seeded := &entity.Ingredient{UserID: 1, Name: "Salt"}
	require.NoError(t, repo.Create(ctx, seeded))

	err := tm.InTx(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, &entity.Ingredient{UserID: 1, Name: "Salt"}); !errors.Is(err, usecase.ErrDuplicateName) {
			t.Fatalf("expected ErrDuplicateName, got %v", err)
		}
		got, err := repo.FindByName(ctx, 1, "Salt")
		require.NoError(t, err)
		if got.ID != seeded.ID {
			t.Errorf("expected ID %d, got %d", seeded.ID, got.ID)
		}
		return repo.Create(ctx, &entity.Ingredient{UserID: 1, Name: "Pepper"})
	})
	require.NoError(t, err)

	if _, err := repo.FindByName(ctx, 1, "Pepper"); err != nil {
		t.Errorf("expected the follow-up ingredient to be committed, got %v", err)
	}
}

func TestIngredientPostgres_List(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewIngredientPostgres(db)
	recipes := NewRecipePostgres(db)
	ctx := context.Background()

	basil := &entity.Ingredient{UserID: 1, Name: "Basil"}
	tomato := &entity.Ingredient{UserID: 1, Name: "Tomato"}
	require.NoError(t, repo.Create(ctx, basil))
	require.NoError(t, repo.Create(ctx, tomato))
	require.NoError(t, repo.Create(ctx, &entity.Ingredient{UserID: 2, Name: "Other"}))

	t.Run("returns owned ingredients ordered by name descending", func(t *testing.T) {
		got, err := repo.List(ctx, 1, false)
		require.NoError(t, err)
		require.Len(t, got, 2)
		if got[0].Name != "Tomato" || got[1].Name != "Basil" {
			t.Errorf("expected [Tomato Basil], got [%s %s]", got[0].Name, got[1].Name)
		}
	})

	t.Run("assignedOnly returns attached ingredients once", func(t *testing.T) {
		first := seedRecipe(t, recipes, 1, "First")
		second := seedRecipe(t, recipes, 1, "Second")
		require.NoError(t, recipes.ReplaceIngredients(ctx, first, []entity.Ingredient{*basil}))
		require.NoError(t, recipes.ReplaceIngredients(ctx, second, []entity.Ingredient{*basil}))

		got, err := repo.List(ctx, 1, true)
		require.NoError(t, err)
		require.Len(t, got, 1)
		if got[0].ID != basil.ID {
			t.Errorf("expected ingredient %d, got %d", basil.ID, got[0].ID)
		}
	})
}

func TestIngredientPostgres_Update(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewIngredientPostgres(db)
	ctx := context.Background()

	ing := &entity.Ingredient{UserID: 1, Name: "Old"}
	require.NoError(t, repo.Create(ctx, ing))
	require.NoError(t, repo.Create(ctx, &entity.Ingredient{UserID: 1, Name: "Taken"}))

	t.Run("renames an ingredient", func(t *testing.T) {
		ing.Name = "New"
		require.NoError(t, repo.Update(ctx, ing))

		got, err := repo.FindByName(ctx, 1, "New")
		require.NoError(t, err)
		if got.ID != ing.ID {
			t.Errorf("expected ID %d, got %d", ing.ID, got.ID)
		}
	})

	t.Run("renaming onto a taken name returns ErrDuplicateName", func(t *testing.T) {
		ing.Name = "Taken"
		err := repo.Update(ctx, ing)
		if !errors.Is(err, usecase.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})
}

func TestIngredientPostgres_Delete(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewIngredientPostgres(db)
	recipes := NewRecipePostgres(db)
	ctx := context.Background()

	ing := &entity.Ingredient{UserID: 1, Name: "Doomed"}
	require.NoError(t, repo.Create(ctx, ing))
	r := seedRecipe(t, recipes, 1, "Holder")
	require.NoError(t, recipes.ReplaceIngredients(ctx, r, []entity.Ingredient{*ing}))

	t.Run("removes the ingredient and its association rows", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 1, ing.ID))

		if _, err := repo.FindByID(ctx, 1, ing.ID); !errors.Is(err, usecase.ErrNotFound) {
			t.Errorf("expected the ingredient to be gone, got %v", err)
		}

		var joinCount int64
		require.NoError(t, db.Table("recipe_ingredients").Count(&joinCount).Error)
		if joinCount != 0 {
			t.Errorf("expected recipe_ingredients to be cleared, got %d rows", joinCount)
		}

		if _, err := recipes.FindByID(ctx, 1, r.ID); err != nil {
			t.Errorf("expected the recipe to survive, got %v", err)
		}
	})

	t.Run("foreign ingredient returns ErrNotFound", func(t *testing.T) {
		foreign := &entity.Ingredient{UserID: 2, Name: "Foreign"}
		require.NoError(t, repo.Create(ctx, foreign))

		err := repo.Delete(ctx, 1, foreign.ID)
		if !errors.Is(err, usecase.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
