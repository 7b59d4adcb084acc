package token

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"recipe_backend/internal/feature/user/domain/entity"
	"recipe_backend/internal/feature/user/usecase"
)

// TestTokenRedis_Keys はトークン用・ユーザー集合用のRedisキーが正しく組み立てられることを検証します。
func TestTokenRedis_Keys(t *testing.T) {
	t.Parallel()

	client, _ := redismock.NewClientMock()
	store := NewTokenRedis(client, "token")

	if got := store.tokenKey("abc123"); got != "token:abc123" {
		t.Errorf("expected key 'token:abc123', got %q", got)
	}
	if got := store.userTokensKey(42); got != "token:user:42" {
		t.Errorf("expected key 'token:user:42', got %q", got)
	}
}

// TestTokenRedis_FindByID はRedisからのトークン取得を検証します。
func TestTokenRedis_FindByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := NewTokenRedis(client, "token")

		stored := &entity.Token{
			ID:        "abc123",
			UserID:    7,
			CreatedAt: time.Now().Truncate(time.Second),
			ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second),
		}
		data, err := json.Marshal(stored)
		if err != nil {
			t.Fatalf("failed to marshal fixture: %v", err)
		}
		mock.ExpectGet("token:abc123").SetVal(string(data))

		got, err := store.FindByID(context.Background(), "abc123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "abc123" {
			t.Errorf("expected ID 'abc123', got %q", got.ID)
		}
		if got.UserID != 7 {
			t.Errorf("expected UserID 7, got %d", got.UserID)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet redis expectations: %v", err)
		}
	})

	t.Run("missing key maps to ErrTokenNotFound", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := NewTokenRedis(client, "token")

		mock.ExpectGet("token:missing").RedisNil()

		_, err := store.FindByID(context.Background(), "missing")
		if !errors.Is(err, usecase.ErrTokenNotFound) {
			t.Errorf("expected ErrTokenNotFound, got %v", err)
		}
	})

	t.Run("redis error is passed through", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := NewTokenRedis(client, "token")

		mock.ExpectGet("token:broken").SetErr(errors.New("connection reset"))

		_, err := store.FindByID(context.Background(), "broken")
		if err == nil || errors.Is(err, usecase.ErrTokenNotFound) {
			t.Errorf("expected transport error, got %v", err)
		}
	})
}

// TestTokenRedis_Create_AlreadyExpired は期限切れトークンの保存がRedisを呼ばずに拒否されることを検証します。
func TestTokenRedis_Create_AlreadyExpired(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	store := NewTokenRedis(client, "token")

	expired := &entity.Token{
		ID:        "stale",
		UserID:    1,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	err := store.Create(context.Background(), expired)
	if err == nil {
		t.Fatal("expected error for an already-expired token, got nil")
	}
	// Redisへの書き込みは一切発生しない
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis calls: %v", err)
	}
}

// TestTokenRedis_DeleteExpired はTTL管理に委ねるため常に0件を返すことを検証します。
func TestTokenRedis_DeleteExpired(t *testing.T) {
	t.Parallel()

	client, _ := redismock.NewClientMock()
	store := NewTokenRedis(client, "token")

	n, err := store.DeleteExpired(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deletions, got %d", n)
	}
}

// TestTokenRedis_RevokeAllByUserID_PrunesStaleMembers は、TTLで消えたトークンの
// IDがユーザー集合から取り除かれることを検証します。トークンキーの期限切れは
// 集合に反映されないため、放置すると集合が際限なく育ちます。
func TestTokenRedis_RevokeAllByUserID_PrunesStaleMembers(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	store := NewTokenRedis(client, "token")

	mock.ExpectSMembers("token:user:7").SetVal([]string{"stale"})
	mock.ExpectGet("token:stale").RedisNil()
	mock.ExpectSRem("token:user:7", "stale").SetVal(1)

	if err := store.RevokeAllByUserID(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestTokenRedis_RevokeAllByUserID_Empty はトークンを持たないユーザーの失効が成功扱いになることを検証します。
func TestTokenRedis_RevokeAllByUserID_Empty(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	store := NewTokenRedis(client, "token")

	mock.ExpectSMembers("token:user:9").SetVal([]string{})

	if err := store.RevokeAllByUserID(context.Background(), 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}
