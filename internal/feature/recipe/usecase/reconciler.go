package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// resolveNamed はname記述子のリストを既存または新規作成のエンティティに解決します。
// タグと食材で処理は同一のため、検索と作成の操作だけを差し替えて共用します。
//
// 各nameについて:
//   - 呼び出し元ユーザーが同名のエンティティを所有していればそれを再利用する
//     （IDの再利用であり、既存エンティティの他フィールドは変更しない）
//   - なければ呼び出し元ユーザー所有で新規作成する
//   - 作成が(owner, name)ユニーク制約に弾かれた場合は並行リクエストに
//     先を越されたとみなし、検索を一度だけやり直して勝者の行を再利用する
//
// リクエスト内の重複nameは単一のエンティティに解決され、結果は入力順を保ちます。
func resolveNamed[E any](ctx context.Context, names []string,
	find func(ctx context.Context, name string) (E, error),
	create func(ctx context.Context, name string) (E, error),
) ([]E, error) {
	resolved := make([]E, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		e, err := find(ctx, name)
		if errors.Is(err, ErrNotFound) {
			e, err = create(ctx, name)
			if errors.Is(err, ErrDuplicateName) {
				// 競合に負けた場合、勝者の行が存在するはずなので再検索する
				e, err = find(ctx, name)
			}
		}
		if err != nil {
			// 一度のリトライでも解決できない制約違反は入力起因として扱う
			if errors.Is(err, ErrDuplicateName) || errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: could not resolve name %q", ErrInvalidInput, name)
			}
			return nil, err
		}
		resolved = append(resolved, e)
	}
	return resolved, nil
}
