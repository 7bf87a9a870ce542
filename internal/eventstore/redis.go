package eventstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix はRedis上でイベントレコードのキーに付与するプレフィックス。
const keyPrefix = "events:"

// RedisStore はRedisをバックエンドとするイベントストア。
// ローカル開発ではエンドポイントを差し替え、本番ではマネージドRedisを指す想定。
type RedisStore struct {
	// rdb はRedisクライアント。SDK側で接続プールを持ち、並行利用に安全。
	rdb *redis.Client
}

// NewRedisStore は指定されたRedisクライアントを使用するイベントストアを生成する。
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// EnsureTable はRedisへの到達性を確認する。
// Redisにテーブルの概念はないため、PINGによる readiness 確認が
// テーブル存在確認に相当する。冪等。
func (s *RedisStore) EnsureTable(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redisへの接続確認に失敗: %w", err)
	}
	return nil
}

// Get は指定されたIDのイベントを取得する。
func (s *RedisStore) Get(ctx context.Context, id string) (*Event, error) {
	body, err := s.rdb.Get(ctx, keyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗: %w", err)
	}
	return &Event{ID: id, Body: body}, nil
}

// Put は新しいUUIDを採番してイベントを保存し、採番したIDを返す。
// 有効期限は設定しない（イベントは失効しない）。
func (s *RedisStore) Put(ctx context.Context, body string) (string, error) {
	id := uuid.New().String()
	if err := s.rdb.Set(ctx, keyPrefix+id, body, 0).Err(); err != nil {
		return "", fmt.Errorf("イベントの保存に失敗: %w", err)
	}
	return id, nil
}

// Close はRedisクライアントを閉じる。
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
