package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

// RecipeInput は作成・更新リクエストのフィールドを表します。
// nilのフィールドは「このフィールドに触れない」を意味します。
// TagsとIngredientsはキーの有無と空リストを区別するためポインタです:
// nil = 関連を変更しない、空 = 関連をすべて解除、N件 = リコンサイル。
type RecipeInput struct {
	Title       *string
	Description *string
	TimeMinutes *uint
	Price       *decimal.Decimal
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// RecipeUsecase はレシピのCRUDとタグ・食材のリコンサイルを実装します。
// すべての操作は所有者スコープで実行され、他ユーザーの行には到達できません。
type RecipeUsecase struct {
	recipes     RecipeRepository
	tags        TagRepository
	ingredients IngredientRepository
	tx          TxManager
}

// NewRecipeUsecase はRecipeUsecaseの新しいインスタンスを生成します。
func NewRecipeUsecase(recipes RecipeRepository, tags TagRepository,
	ingredients IngredientRepository, tx TxManager) *RecipeUsecase {
	return &RecipeUsecase{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		tx:          tx,
	}
}

// validateInput は設定済みフィールドのバリデーションを行います。
func validateInput(in RecipeInput) error {
	if in.Title != nil && *in.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

// Create は新しいレシピを作成します。所有者は常に認証済みユーザーであり、
// 入力に所有者相当の値が含まれていても無視されます（ハンドラ層でDTOに含めない）。
// タグ・食材の解決と関連の置き換えは親レシピの作成と同一トランザクションで行います。
func (u *RecipeUsecase) Create(ctx context.Context, ownerID uint, in RecipeInput) (*entity.Recipe, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	recipe := &entity.Recipe{
		UserID: ownerID,
		Title:  *in.Title,
		Price:  decimal.Zero,
	}
	if in.Description != nil {
		recipe.Description = *in.Description
	}
	if in.TimeMinutes != nil {
		recipe.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		recipe.Price = *in.Price
	}
	if in.Link != nil {
		recipe.Link = *in.Link
	}

	err := u.tx.InTx(ctx, func(ctx context.Context) error {
		if err := u.recipes.Create(ctx, recipe); err != nil {
			return err
		}
		return u.reconcile(ctx, recipe, in)
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Get は所有レシピを関連込みで返します。
func (u *RecipeUsecase) Get(ctx context.Context, ownerID, id uint) (*entity.Recipe, error) {
	return u.recipes.FindByID(ctx, ownerID, id)
}

// List は所有レシピの一覧を返します。フィルタはタグ・食材ID集合との積です。
func (u *RecipeUsecase) List(ctx context.Context, ownerID uint, filter ListFilter) ([]entity.Recipe, error) {
	return u.recipes.List(ctx, ownerID, filter)
}

// Update は所有レシピのスカラー更新とタグ・食材のリコンサイルを
// 単一トランザクションで実行します。所有者フィールドは変更不可です。
// 対象が存在しないか他ユーザー所有の場合はErrNotFoundを返します。
func (u *RecipeUsecase) Update(ctx context.Context, ownerID, id uint, in RecipeInput) (*entity.Recipe, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var recipe *entity.Recipe
	err := u.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		recipe, err = u.recipes.FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}

		if in.Title != nil {
			recipe.Title = *in.Title
		}
		if in.Description != nil {
			recipe.Description = *in.Description
		}
		if in.TimeMinutes != nil {
			recipe.TimeMinutes = *in.TimeMinutes
		}
		if in.Price != nil {
			recipe.Price = *in.Price
		}
		if in.Link != nil {
			recipe.Link = *in.Link
		}

		if err := u.recipes.Update(ctx, recipe); err != nil {
			return err
		}
		return u.reconcile(ctx, recipe, in)
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete は所有レシピと関連行を削除します。タグ・食材の行自体は残ります。
func (u *RecipeUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	return u.tx.InTx(ctx, func(ctx context.Context) error {
		recipe, err := u.recipes.FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		return u.recipes.Delete(ctx, recipe)
	})
}

// SetImage は所有レシピの画像参照を差し替えます。
func (u *RecipeUsecase) SetImage(ctx context.Context, ownerID, id uint, filename string) (*entity.Recipe, error) {
	recipe, err := u.recipes.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	recipe.Image = filename
	if err := u.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// reconcile は入力に含まれるサブコレクションの関連を置き換えます。
// キーが存在しない（nil）サブコレクションには触れません。
func (u *RecipeUsecase) reconcile(ctx context.Context, recipe *entity.Recipe, in RecipeInput) error {
	if in.Tags != nil {
		tags, err := u.resolveTags(ctx, recipe.UserID, *in.Tags)
		if err != nil {
			return err
		}
		if err := u.recipes.ReplaceTags(ctx, recipe, tags); err != nil {
			return err
		}
		recipe.Tags = tags
	}
	if in.Ingredients != nil {
		ingredients, err := u.resolveIngredients(ctx, recipe.UserID, *in.Ingredients)
		if err != nil {
			return err
		}
		if err := u.recipes.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			return err
		}
		recipe.Ingredients = ingredients
	}
	return nil
}

// resolveTags はname記述子を呼び出し元ユーザー所有のタグに解決します。
func (u *RecipeUsecase) resolveTags(ctx context.Context, ownerID uint, names []string) ([]entity.Tag, error) {
	return resolveNamed(ctx, names,
		func(ctx context.Context, name string) (entity.Tag, error) {
			t, err := u.tags.FindByName(ctx, ownerID, name)
			if err != nil {
				return entity.Tag{}, err
			}
			return *t, nil
		},
		func(ctx context.Context, name string) (entity.Tag, error) {
			t := entity.Tag{UserID: ownerID, Name: name}
			if err := u.tags.Create(ctx, &t); err != nil {
				return entity.Tag{}, err
			}
			return t, nil
		},
	)
}

// resolveIngredients はname記述子を呼び出し元ユーザー所有の食材に解決します。
func (u *RecipeUsecase) resolveIngredients(ctx context.Context, ownerID uint, names []string) ([]entity.Ingredient, error) {
	return resolveNamed(ctx, names,
		func(ctx context.Context, name string) (entity.Ingredient, error) {
			i, err := u.ingredients.FindByName(ctx, ownerID, name)
			if err != nil {
				return entity.Ingredient{}, err
			}
			return *i, nil
		},
		func(ctx context.Context, name string) (entity.Ingredient, error) {
			i := entity.Ingredient{UserID: ownerID, Name: name}
			if err := u.ingredients.Create(ctx, &i); err != nil {
				return entity.Ingredient{}, err
			}
			return i, nil
		},
	)
}
