// Package dto はuserフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// TokenReq はPOST /users/token/エンドポイントのリクエストボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type TokenReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
