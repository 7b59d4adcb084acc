package usecase

import (
	"context"
	"errors"
	"testing"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

func TestTagUsecase_List(t *testing.T) {
	tags := &mockTagRepository{
		ListFunc: func(ctx context.Context, ownerID uint, assignedOnly bool) ([]entity.Tag, error) {
			if ownerID != 1 {
				t.Errorf("expected owner 1, got %d", ownerID)
			}
			if !assignedOnly {
				t.Error("expected assignedOnly to be forwarded")
			}
			return []entity.Tag{{ID: 2, Name: "Vegan"}, {ID: 1, Name: "Dinner"}}, nil
		},
	}
	uc := NewTagUsecase(tags)

	got, err := uc.List(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 tags, got %d", len(got))
	}
}

func TestTagUsecase_Rename(t *testing.T) {
	t.Run("renames an owned tag", func(t *testing.T) {
		var saved *entity.Tag
		tags := &mockTagRepository{
			FindByIDFunc: func(ctx context.Context, ownerID, id uint) (*entity.Tag, error) {
				return &entity.Tag{ID: id, UserID: ownerID, Name: "Old"}, nil
			},
			UpdateFunc: func(ctx context.Context, tag *entity.Tag) error {
				saved = tag
				return nil
			},
		}
		uc := NewTagUsecase(tags)

		got, err := uc.Rename(context.Background(), 1, 5, "New")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved == nil {
			t.Fatal("Update was not called")
		}
		if got.Name != "New" {
			t.Errorf("expected name 'New', got %q", got.Name)
		}
	})

	t.Run("empty name is invalid", func(t *testing.T) {
		uc := NewTagUsecase(&mockTagRepository{})

		_, err := uc.Rename(context.Background(), 1, 5, "")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("foreign tag returns ErrNotFound", func(t *testing.T) {
		uc := NewTagUsecase(&mockTagRepository{})

		_, err := uc.Rename(context.Background(), 1, 5, "New")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("renaming onto a taken name is invalid input", func(t *testing.T) {
		tags := &mockTagRepository{
			FindByIDFunc: func(ctx context.Context, ownerID, id uint) (*entity.Tag, error) {
				return &entity.Tag{ID: id, UserID: ownerID, Name: "Old"}, nil
			},
			UpdateFunc: func(ctx context.Context, tag *entity.Tag) error {
				return ErrDuplicateName
			},
		}
		uc := NewTagUsecase(tags)

		_, err := uc.Rename(context.Background(), 1, 5, "Taken")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestTagUsecase_Delete(t *testing.T) {
	var gotOwner, gotID uint
	tags := &mockTagRepository{
		DeleteFunc: func(ctx context.Context, ownerID, id uint) error {
			gotOwner, gotID = ownerID, id
			return nil
		},
	}
	uc := NewTagUsecase(tags)

	if err := uc.Delete(context.Background(), 1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOwner != 1 || gotID != 5 {
		t.Errorf("expected delete of (1, 5), got (%d, %d)", gotOwner, gotID)
	}
}

func TestIngredientUsecase_Rename(t *testing.T) {
	t.Run("renames an owned ingredient", func(t *testing.T) {
		ingredients := &mockIngredientRepository{
			FindByIDFunc: func(ctx context.Context, ownerID, id uint) (*entity.Ingredient, error) {
				return &entity.Ingredient{ID: id, UserID: ownerID, Name: "Salt"}, nil
			},
		}
		uc := NewIngredientUsecase(ingredients)

		got, err := uc.Rename(context.Background(), 1, 7, "Sea Salt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "Sea Salt" {
			t.Errorf("expected name 'Sea Salt', got %q", got.Name)
		}
	})

	t.Run("renaming onto a taken name is invalid input", func(t *testing.T) {
		ingredients := &mockIngredientRepository{
			FindByIDFunc: func(ctx context.Context, ownerID, id uint) (*entity.Ingredient, error) {
				return &entity.Ingredient{ID: id, UserID: ownerID, Name: "Salt"}, nil
			},
			UpdateFunc: func(ctx context.Context, ingredient *entity.Ingredient) error {
				return ErrDuplicateName
			},
		}
		uc := NewIngredientUsecase(ingredients)

		_, err := uc.Rename(context.Background(), 1, 7, "Pepper")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
