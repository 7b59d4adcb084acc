// Package dto はrecipeフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "github.com/shopspring/decimal"

// NamedRef はタグ・食材サブコレクションの記述子です。
// クライアントは名前のみを送り、IDの解決はサーバ側のリコンサイルに任せます。
type NamedRef struct {
	Name string `json:"name" binding:"required"`
}

// CreateRecipeReq はPOST /recipes/およびPUT /recipes/:id/のリクエストボディを表します。
// TagsとIngredientsはキー省略（関連を変更しない）と空リスト（関連を解除）を
// 区別するためポインタです。
type CreateRecipeReq struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	TimeMinutes uint            `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	Tags        *[]NamedRef     `json:"tags"`
	Ingredients *[]NamedRef     `json:"ingredients"`
}

// UpdateRecipeReq はPATCH /recipes/:id/のリクエストボディを表します。
// すべてのフィールドが省略可能で、nilは「変更しない」を意味します。
// 所有者に相当するフィールドは存在せず、送られてきても単に無視されます。
type UpdateRecipeReq struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	TimeMinutes *uint            `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link"`
	Tags        *[]NamedRef      `json:"tags"`
	Ingredients *[]NamedRef      `json:"ingredients"`
}

// UpdateNameReq はPATCH /tags/:id/およびPATCH /ingredients/:id/のリクエストボディを表します。
type UpdateNameReq struct {
	Name string `json:"name" binding:"required"`
}

// Names はNamedRefのリストをname文字列のリストに変換します。
func Names(refs []NamedRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}
