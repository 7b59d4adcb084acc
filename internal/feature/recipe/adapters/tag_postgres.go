package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
	platformdb "recipe_backend/internal/platform/db"
)

// tagPostgres はTagRepositoryインターフェースのPostgres実装です。
type tagPostgres struct {
	db *gorm.DB
}

var _ usecase.TagRepository = (*tagPostgres)(nil)

// NewTagPostgres は指定されたgorm.DB接続でtagPostgresの新しいインスタンスを生成します。
func NewTagPostgres(db *gorm.DB) *tagPostgres {
	return &tagPostgres{db: db}
}

// isUniqueViolation はユニーク制約違反のドライバエラーを判定します。
// GORMのTranslateErrorによる変換と、Postgresエラーコード23505の両方を確認します。
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create はタグを追加します。(owner, name)が重複する場合、usecase.ErrDuplicateNameを返します。
// 外側のトランザクション内ではINSERTをSAVEPOINTで包みます。Postgresは文のエラーで
// トランザクション全体を中断するため、セーブポイントなしでは制約違反後の再検索ができません。
func (r *tagPostgres) Create(ctx context.Context, tag *entity.Tag) error {
	dbx := platformdb.FromContext(ctx, r.db)
	err := dbx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(tag).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrDuplicateName
		}
		return err
	}
	return nil
}

// FindByName は所有者と名前でタグを取得します。
func (r *tagPostgres) FindByName(ctx context.Context, ownerID uint, name string) (*entity.Tag, error) {
	dbx := platformdb.FromContext(ctx, r.db)
	var tag entity.Tag
	if err := dbx.WithContext(ctx).
		Where("user_id = ? AND name = ?", ownerID, name).
		First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindByID は所有タグをIDで取得します。他ユーザー所有の場合もusecase.ErrNotFoundを返します。
func (r *tagPostgres) FindByID(ctx context.Context, ownerID, id uint) (*entity.Tag, error) {
	dbx := platformdb.FromContext(ctx, r.db)
	var tag entity.Tag
	if err := dbx.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// List は所有タグを名前降順で返します。
// assignedOnlyの場合、所有レシピから参照されているタグのみをIN副問い合わせで絞り込みます。
// 副問い合わせによる絞り込みのため、複数レシピに付いていても重複しません。
func (r *tagPostgres) List(ctx context.Context, ownerID uint, assignedOnly bool) ([]entity.Tag, error) {
	dbx := platformdb.FromContext(ctx, r.db)

	q := dbx.WithContext(ctx).Where("user_id = ?", ownerID)
	if assignedOnly {
		sub := dbx.Table("recipe_tags").
			Select("recipe_tags.tag_id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ?", ownerID)
		q = q.Where("id IN (?)", sub)
	}

	var tags []entity.Tag
	if err := q.Order("name DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Update はタグの変更を保存します。(owner, name)が重複する場合はusecase.ErrDuplicateNameを返します。
func (r *tagPostgres) Update(ctx context.Context, tag *entity.Tag) error {
	dbx := platformdb.FromContext(ctx, r.db)
	if err := dbx.WithContext(ctx).Save(tag).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrDuplicateName
		}
		return err
	}
	return nil
}

// Delete は所有タグと関連行を削除します。レシピ本体には触れません。
func (r *tagPostgres) Delete(ctx context.Context, ownerID, id uint) error {
	dbx := platformdb.FromContext(ctx, r.db)
	return dbx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", ownerID, id).Delete(&entity.Tag{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrNotFound
		}
		return tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error
	})
}
