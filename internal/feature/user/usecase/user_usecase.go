package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"recipe_backend/internal/feature/user/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 5

	// tokenBytes はトークン値の乱数バイト長です（hexエンコード後64文字）。
	tokenBytes = 32
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update はユーザーの変更済みフィールドを保存します。
	Update(ctx context.Context, user *entity.User) error
}

// userUsecase はユーザー登録・認証・プロフィール管理のビジネスロジックを実装します。
type userUsecase struct {
	users    UserRepository
	tokens   TokenRepository
	tokenTTL time.Duration
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, tokens TokenRepository, tokenTTL time.Duration) *userUsecase {
	return &userUsecase{
		users:    users,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// NormalizeEmail はメールアドレスのドメイン部を小文字化します。
// ローカル部は送信されたままの大文字小文字を保持します。
// 例: Test2@Example.com → Test2@example.com
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// validatePassword はパスワードがポリシーを満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
// メールアドレスは正規化してから保存します。パスワードはレスポンスに含めないため、
// 作成したユーザーエンティティをそのまま返します。
func (u *userUsecase) Signup(ctx context.Context, email, password, name string) (*entity.User, error) {
	// HTTP層のバインディングに依存せず、ユースケース層でも必須項目を守る
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("email must not be empty")
	}
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Email:    NormalizeEmail(email),
		Password: string(hashed),
		Name:     name,
		IsActive: true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// IssueToken はユーザーを認証し、成功時に不透明なベアラートークンを発行します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// 無効化されたユーザーはトークンを取得できません。
func (u *userUsecase) IssueToken(ctx context.Context, email, password, userAgent, ipAddress string) (string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出・パスワード不一致・無効化済みの場合、汎用エラーを返す
	if err != nil || compareErr != nil || !user.IsActive {
		return "", ErrInvalidCredentials
	}

	value, err := newTokenValue()
	if err != nil {
		return "", err
	}
	now := time.Now()
	token := &entity.Token{
		ID:        value,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.tokenTTL),
	}
	if err := u.tokens.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return value, nil
}

// RevokeToken は提示されたトークンを失効させます（ログアウト）。
func (u *userUsecase) RevokeToken(ctx context.Context, tokenID string) error {
	return u.tokens.Revoke(ctx, tokenID)
}

// Profile は認証済みユーザー自身のプロフィールを返します。
func (u *userUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile は表示名とパスワードを更新します。nilのフィールドは変更しません。
// パスワードを変更した場合、発行済みのトークンをすべて失効させます。
func (u *userUsecase) UpdateProfile(ctx context.Context, userID uint, name, password *string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	passwordChanged := false
	if password != nil {
		if err := validatePassword(*password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
		passwordChanged = true
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}

	// パスワード変更後は既存トークンを無効化し、再ログインを要求する
	if passwordChanged {
		if err := u.tokens.RevokeAllByUserID(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to revoke tokens: %w", err)
		}
	}
	return user, nil
}

// newTokenValue は暗号論的乱数から64文字のhexトークン値を生成します。
func newTokenValue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
