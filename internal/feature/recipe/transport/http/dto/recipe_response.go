package dto

import (
	"github.com/shopspring/decimal"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

// NamedItem is a tag or ingredient in a response body.
type NamedItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeListItem is the abbreviated recipe shape used by the list
// endpoint. It omits description and ingredients.
type RecipeListItem struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes uint            `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	Tags        []NamedItem     `json:"tags"`
	Image       *string         `json:"image"`
}

// RecipeDetail is the full recipe shape used by the detail, create and
// update endpoints.
type RecipeDetail struct {
	RecipeListItem
	Description string      `json:"description"`
	Ingredients []NamedItem `json:"ingredients"`
}

// ErrorResponse is the uniform error body for the recipe endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TagItems converts tag entities to response items.
func TagItems(tags []entity.Tag) []NamedItem {
	items := make([]NamedItem, 0, len(tags))
	for _, t := range tags {
		items = append(items, NamedItem{ID: t.ID, Name: t.Name})
	}
	return items
}

// IngredientItems converts ingredient entities to response items.
func IngredientItems(ingredients []entity.Ingredient) []NamedItem {
	items := make([]NamedItem, 0, len(ingredients))
	for _, i := range ingredients {
		items = append(items, NamedItem{ID: i.ID, Name: i.Name})
	}
	return items
}

// NewRecipeListItem builds the abbreviated projection of a recipe.
// imageURL maps a stored filename to its public URL.
func NewRecipeListItem(r *entity.Recipe, imageURL func(string) string) RecipeListItem {
	item := RecipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        TagItems(r.Tags),
	}
	if r.Image != "" {
		url := imageURL(r.Image)
		item.Image = &url
	}
	return item
}

// NewRecipeDetail builds the full projection of a recipe.
func NewRecipeDetail(r *entity.Recipe, imageURL func(string) string) RecipeDetail {
	return RecipeDetail{
		RecipeListItem: NewRecipeListItem(r, imageURL),
		Description:    r.Description,
		Ingredients:    IngredientItems(r.Ingredients),
	}
}
