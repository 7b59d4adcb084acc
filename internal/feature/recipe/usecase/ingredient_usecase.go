package usecase

import (
	"context"
	"errors"
	"fmt"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

// IngredientUsecase provides business logic for ingredient operations.
// Same contract as TagUsecase over the ingredient tables.
type IngredientUsecase struct {
	ingredients IngredientRepository
}

// NewIngredientUsecase creates a new IngredientUsecase with the given repository.
func NewIngredientUsecase(ingredients IngredientRepository) *IngredientUsecase {
	return &IngredientUsecase{ingredients: ingredients}
}

// List returns the owner's ingredients ordered by name descending.
// With assignedOnly, only ingredients attached to at least one of the
// owner's recipes are returned.
func (u *IngredientUsecase) List(ctx context.Context, ownerID uint, assignedOnly bool) ([]entity.Ingredient, error) {
	return u.ingredients.List(ctx, ownerID, assignedOnly)
}

// Rename changes an owned ingredient's name.
func (u *IngredientUsecase) Rename(ctx context.Context, ownerID, id uint, name string) (*entity.Ingredient, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	ingredient, err := u.ingredients.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	ingredient.Name = name
	if err := u.ingredients.Update(ctx, ingredient); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, fmt.Errorf("%w: ingredient %q already exists", ErrInvalidInput, name)
		}
		return nil, err
	}
	return ingredient, nil
}

// Delete removes an owned ingredient and its association rows.
func (u *IngredientUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	return u.ingredients.Delete(ctx, ownerID, id)
}
