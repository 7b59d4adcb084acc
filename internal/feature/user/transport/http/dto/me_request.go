package dto

// UpdateMeReq はPATCH /users/me/エンドポイントのリクエストボディを表します。
// nilのフィールドは「変更しない」を意味するため、ポインタで受け取ります。
type UpdateMeReq struct {
	Name     *string `json:"name" binding:"omitempty"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}
