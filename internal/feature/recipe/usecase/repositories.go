package usecase

import (
	"context"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

// ListFilter restricts a recipe listing to recipes carrying at least one
// of the given tag or ingredient IDs. Empty slices mean no restriction.
type ListFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository abstracts the persistence layer for recipes.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
// Every method that takes an ownerID only sees rows owned by that user.
type RecipeRepository interface {
	// Create persists a new recipe. Associations are not written here;
	// they are replaced explicitly via ReplaceTags/ReplaceIngredients.
	Create(ctx context.Context, recipe *entity.Recipe) error

	// FindByID retrieves an owned recipe with its tag and ingredient
	// associations loaded. Returns ErrNotFound for missing or foreign rows.
	FindByID(ctx context.Context, ownerID, id uint) (*entity.Recipe, error)

	// List returns the owner's recipes, newest first, optionally filtered.
	// The result contains each recipe at most once.
	List(ctx context.Context, ownerID uint, filter ListFilter) ([]entity.Recipe, error)

	// Update saves the recipe's scalar fields. Associations are untouched.
	Update(ctx context.Context, recipe *entity.Recipe) error

	// ReplaceTags replaces the recipe's tag association set.
	ReplaceTags(ctx context.Context, recipe *entity.Recipe, tags []entity.Tag) error

	// ReplaceIngredients replaces the recipe's ingredient association set.
	ReplaceIngredients(ctx context.Context, recipe *entity.Recipe, ingredients []entity.Ingredient) error

	// Delete removes the recipe and its association rows. The referenced
	// Tag/Ingredient rows are kept.
	Delete(ctx context.Context, recipe *entity.Recipe) error
}

// TagRepository abstracts the persistence layer for tags.
type TagRepository interface {
	// Create persists a new tag. Returns ErrDuplicateName if the owner
	// already has a tag with that name.
	Create(ctx context.Context, tag *entity.Tag) error

	// FindByName retrieves the owner's tag with the given name.
	FindByName(ctx context.Context, ownerID uint, name string) (*entity.Tag, error)

	// FindByID retrieves an owned tag. Returns ErrNotFound for missing or
	// foreign rows.
	FindByID(ctx context.Context, ownerID, id uint) (*entity.Tag, error)

	// List returns the owner's tags ordered by name descending. With
	// assignedOnly, only tags attached to at least one of the owner's
	// recipes are returned, each at most once.
	List(ctx context.Context, ownerID uint, assignedOnly bool) ([]entity.Tag, error)

	// Update saves a changed tag.
	Update(ctx context.Context, tag *entity.Tag) error

	// Delete removes an owned tag and its association rows.
	Delete(ctx context.Context, ownerID, id uint) error
}

// IngredientRepository abstracts the persistence layer for ingredients.
// Identical contract to TagRepository over the ingredient tables.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	FindByName(ctx context.Context, ownerID uint, name string) (*entity.Ingredient, error)
	FindByID(ctx context.Context, ownerID, id uint) (*entity.Ingredient, error)
	List(ctx context.Context, ownerID uint, assignedOnly bool) ([]entity.Ingredient, error)
	Update(ctx context.Context, ingredient *entity.Ingredient) error
	Delete(ctx context.Context, ownerID, id uint) error
}

// TxManager runs a function inside a single transaction. Repository calls
// made with the callback's context join that transaction.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
