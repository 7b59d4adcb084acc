// Package usecase はuserフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

// ユースケース層のセンチネルエラー。
// アダプタはドライバ固有のエラーをこれらに変換し、ハンドラはHTTPステータスに対応付けます。
var (
	// ErrEmailAlreadyExists は同じメールアドレスのユーザーが既に存在することを示します。
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound は条件に一致するユーザーが存在しないことを示します。
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials はメールアドレスまたはパスワードが一致しないことを示します。
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenNotFound は提示されたトークンが存在しないことを示します。
	ErrTokenNotFound = errors.New("token not found")
)
