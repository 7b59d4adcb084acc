package usecase

import (
	"context"
	"errors"
	"fmt"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

// TagUsecase provides business logic for tag operations.
type TagUsecase struct {
	tags TagRepository
}

// NewTagUsecase creates a new TagUsecase with the given repository.
func NewTagUsecase(tags TagRepository) *TagUsecase {
	return &TagUsecase{tags: tags}
}

// List returns the owner's tags ordered by name descending.
// With assignedOnly, only tags attached to at least one of the owner's
// recipes are returned.
func (u *TagUsecase) List(ctx context.Context, ownerID uint, assignedOnly bool) ([]entity.Tag, error) {
	return u.tags.List(ctx, ownerID, assignedOnly)
}

// Rename changes an owned tag's name. Renaming to a name the owner
// already uses is a validation error.
func (u *TagUsecase) Rename(ctx context.Context, ownerID, id uint, name string) (*entity.Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	tag, err := u.tags.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	if err := u.tags.Update(ctx, tag); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, fmt.Errorf("%w: tag %q already exists", ErrInvalidInput, name)
		}
		return nil, err
	}
	return tag, nil
}

// Delete removes an owned tag and its association rows.
func (u *TagUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	return u.tags.Delete(ctx, ownerID, id)
}
