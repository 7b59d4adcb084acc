package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
	platformdb "recipe_backend/internal/platform/db"
)

// ingredientPostgres はIngredientRepositoryインターフェースのPostgres実装です。
// タグと同じ契約を食材テーブルに対して実装します。
type ingredientPostgres struct {
	db *gorm.DB
}

var _ usecase.IngredientRepository = (*ingredientPostgres)(nil)

// NewIngredientPostgres は指定されたgorm.DB接続でingredientPostgresの新しいインスタンスを生成します。
func NewIngredientPostgres(db *gorm.DB) *ingredientPostgres {
	return &ingredientPostgres{db: db}
}

// Create は食材を追加します。(owner, name)が重複する場合、usecase.ErrDuplicateNameを返します。
// タグ同様、外側のトランザクションを中断させないためINSERTをSAVEPOINTで包みます。
func (r *ingredientPostgres) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	dbx := platformdb.FromContext(ctx, r.db)
	err := dbx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(ingredient).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrDuplicateName
		}
		return err
	}
	return nil
}

// FindByName は所有者と名前で食材を取得します。
func (r *ingredientPostgres) FindByName(ctx context.Context, ownerID uint, name string) (*entity.Ingredient, error) {
	dbx := platformdb.FromContext(ctx, r.db)
	var ingredient entity.Ingredient
	if err := dbx.WithContext(ctx).
		Where("user_id = ? AND name = ?", ownerID, name).
		First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindByID は所有食材をIDで取得します。他ユーザー所有の場合もusecase.ErrNotFoundを返します。
func (r *ingredientPostgres) FindByID(ctx context.Context, ownerID, id uint) (*entity.Ingredient, error) {
	dbx := platformdb.FromContext(ctx, r.db)
	var ingredient entity.Ingredient
	if err := dbx.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// List は所有食材を名前降順で返します。
// assignedOnlyの場合、所有レシピから参照されている食材のみに絞り込みます。
func (r *ingredientPostgres) List(ctx context.Context, ownerID uint, assignedOnly bool) ([]entity.Ingredient, error) {
	dbx := platformdb.FromContext(ctx, r.db)

	q := dbx.WithContext(ctx).Where("user_id = ?", ownerID)
	if assignedOnly {
		sub := dbx.Table("recipe_ingredients").
			Select("recipe_ingredients.ingredient_id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", ownerID)
		q = q.Where("id IN (?)", sub)
	}

	var ingredients []entity.Ingredient
	if err := q.Order("name DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Update は食材の変更を保存します。(owner, name)が重複する場合はusecase.ErrDuplicateNameを返します。
func (r *ingredientPostgres) Update(ctx context.Context, ingredient *entity.Ingredient) error {
	dbx := platformdb.FromContext(ctx, r.db)
	if err := dbx.WithContext(ctx).Save(ingredient).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrDuplicateName
		}
		return err
	}
	return nil
}

// Delete は所有食材と関連行を削除します。レシピ本体には触れません。
func (r *ingredientPostgres) Delete(ctx context.Context, ownerID, id uint) error {
	dbx := platformdb.FromContext(ctx, r.db)
	return dbx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", ownerID, id).Delete(&entity.Ingredient{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrNotFound
		}
		return tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", id).Error
	})
}
