// Package adapters はrecipeフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
	platformdb "recipe_backend/internal/platform/db"
)

// recipePostgres はRecipeRepositoryインターフェースのPostgres実装です。
// GORMを使用してデータベース操作を行います。
type recipePostgres struct {
	db *gorm.DB
}

// recipePostgresがRecipeRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.RecipeRepository = (*recipePostgres)(nil)

// NewRecipePostgres は指定されたgorm.DB接続でrecipePostgresの新しいインスタンスを生成します。
func NewRecipePostgres(db *gorm.DB) *recipePostgres {
	return &recipePostgres{db: db}
}

// Create はレシピのスカラー列のみを挿入します。
// 関連はReplaceTags/ReplaceIngredientsで明示的に置き換えます。
func (r *recipePostgres) Create(ctx context.Context, recipe *entity.Recipe) error {
	dbx := platformdb.FromContext(ctx, r.db)
	return dbx.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error
}

// FindByID は所有レシピを関連込みで取得します。
// 存在しない場合も他ユーザー所有の場合も同じusecase.ErrNotFoundを返します。
func (r *recipePostgres) FindByID(ctx context.Context, ownerID, id uint) (*entity.Recipe, error) {
	dbx := platformdb.FromContext(ctx, r.db)
	var recipe entity.Recipe
	if err := dbx.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// List は所有レシピをID降順で返します。
// タグ・食材フィルタはIN副問い合わせで適用するため、複数IDに一致しても
// 同じレシピが重複して返ることはありません。
func (r *recipePostgres) List(ctx context.Context, ownerID uint, filter usecase.ListFilter) ([]entity.Recipe, error) {
	dbx := platformdb.FromContext(ctx, r.db)

	q := dbx.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", ownerID)

	if len(filter.TagIDs) > 0 {
		sub := dbx.Table("recipe_tags").
			Select("recipe_id").
			Where("tag_id IN ?", filter.TagIDs)
		q = q.Where("id IN (?)", sub)
	}
	if len(filter.IngredientIDs) > 0 {
		sub := dbx.Table("recipe_ingredients").
			Select("recipe_id").
			Where("ingredient_id IN ?", filter.IngredientIDs)
		q = q.Where("id IN (?)", sub)
	}

	var recipes []entity.Recipe
	if err := q.Order("id DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Update はレシピのスカラー列のみを保存します。関連には触れません。
func (r *recipePostgres) Update(ctx context.Context, recipe *entity.Recipe) error {
	dbx := platformdb.FromContext(ctx, r.db)
	return dbx.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

// ReplaceTags はレシピのタグ関連を置き換えます。
func (r *recipePostgres) ReplaceTags(ctx context.Context, recipe *entity.Recipe, tags []entity.Tag) error {
	dbx := platformdb.FromContext(ctx, r.db)
	assoc := dbx.WithContext(ctx).Model(recipe).Omit("Tags.*").Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(&tags)
}

// ReplaceIngredients はレシピの食材関連を置き換えます。
func (r *recipePostgres) ReplaceIngredients(ctx context.Context, recipe *entity.Recipe, ingredients []entity.Ingredient) error {
	dbx := platformdb.FromContext(ctx, r.db)
	assoc := dbx.WithContext(ctx).Model(recipe).Omit("Ingredients.*").Association("Ingredients")
	if len(ingredients) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(&ingredients)
}

// Delete はレシピと関連行を削除します。タグ・食材の行自体は残します。
func (r *recipePostgres) Delete(ctx context.Context, recipe *entity.Recipe) error {
	dbx := platformdb.FromContext(ctx, r.db)
	if err := dbx.WithContext(ctx).Model(recipe).Association("Tags").Clear(); err != nil {
		return err
	}
	if err := dbx.WithContext(ctx).Model(recipe).Association("Ingredients").Clear(); err != nil {
		return err
	}
	return dbx.WithContext(ctx).Delete(&entity.Recipe{}, recipe.ID).Error
}
