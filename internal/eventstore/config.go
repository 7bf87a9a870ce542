package eventstore

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// バックエンドの種類。
const (
	// BackendSQLite はSQLiteバックエンド。デフォルト。
	BackendSQLite = "sqlite"
	// BackendRedis はRedisバックエンド。
	BackendRedis = "redis"
	// BackendMemory はインメモリバックエンド。永続化しない。
	BackendMemory = "memory"
)

// Config はサービスの起動設定。環境変数から読み込む。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8080"`
	// Backend は使用するストアバックエンド（sqlite / redis / memory）。
	Backend string `env:"EVENTKV_BACKEND" envDefault:"sqlite"`
	// DBPath はSQLiteデータベースファイルのパス。
	DBPath string `env:"EVENTKV_DB_PATH" envDefault:"/data/eventkv.db"`
	// RedisAddr はRedisのエンドポイント（例: "localhost:6379"）。
	// redisバックエンド使用時は必須。
	RedisAddr string `env:"REDIS_ADDR"`
	// RedisUsername はRedisの認証ユーザー名。
	RedisUsername string `env:"REDIS_USERNAME"`
	// RedisPassword はRedisの認証パスワード。
	RedisPassword string `env:"REDIS_PASSWORD"`
	// JWTSecret はイベント保存APIのJWT認証シークレット。
	// 空の場合、保存APIは認証なしで公開される。
	JWTSecret string `env:"JWT_SECRET"`
	// AllowedOrigins はCORSで許可するオリジンの一覧。空の場合CORSヘッダーを付与しない。
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
}

// LoadConfig は環境変数から設定を読み込み、妥当性を検証する。
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定の妥当性を検証する。
// 不正な設定で起動した場合はサービスを開始してはならない。
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("sqliteバックエンドにはEVENTKV_DB_PATHが必要です")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redisバックエンドにはREDIS_ADDRが必要です")
		}
	case BackendMemory:
		// 追加設定なし
	default:
		return fmt.Errorf("不明なバックエンドです: %s", c.Backend)
	}
	return nil
}

// OpenStore は設定に従ってストアバックエンドを構築する。
// 返されたストアに対して呼び出し側がEnsureTableを実行してから使用すること。
func (c *Config) OpenStore() (Store, error) {
	switch c.Backend {
	case BackendSQLite:
		return NewSQLiteStore(c.DBPath)
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Username: c.RedisUsername,
			Password: c.RedisPassword,
		})
		return NewRedisStore(rdb), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("不明なバックエンドです: %s", c.Backend)
	}
}
