// Package usecase はrecipeフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

// ユースケース層のセンチネルエラー。
var (
	// ErrNotFound は対象が存在しない、または呼び出し元の所有物でないことを示します。
	// 他ユーザーのリソースへのアクセスも同じエラーになり、存在の有無は漏れません。
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateName は(owner, name)のユニーク制約違反を示します。
	// リコンサイラはこのエラーを「find-or-createの競合に負けた」合図として扱います。
	ErrDuplicateName = errors.New("name already exists for this owner")

	// ErrInvalidInput は入力値がバリデーションを通らなかったことを示します。
	ErrInvalidInput = errors.New("invalid input")
)
