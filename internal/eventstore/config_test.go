package eventstore

import (
	"os"
	"testing"
)

// unsetEnv は指定された環境変数をテスト中だけ未設定状態にする。
// t.Setenvで元の値の復元を登録したうえで削除する。
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestConfigValidate は設定の妥当性検証を確認する。
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "sqliteバックエンドとパスの組み合わせは有効",
			cfg:  Config{Backend: BackendSQLite, DBPath: "/data/eventkv.db"},
		},
		{
			name:    "sqliteバックエンドでパスが空の場合はエラー",
			cfg:     Config{Backend: BackendSQLite},
			wantErr: true,
		},
		{
			name: "redisバックエンドとアドレスの組み合わせは有効",
			cfg:  Config{Backend: BackendRedis, RedisAddr: "localhost:6379"},
		},
		{
			name:    "redisバックエンドでアドレスが空の場合はエラー",
			cfg:     Config{Backend: BackendRedis},
			wantErr: true,
		},
		{
			name: "memoryバックエンドは追加設定なしで有効",
			cfg:  Config{Backend: BackendMemory},
		},
		{
			name:    "不明なバックエンドはエラー",
			cfg:     Config{Backend: "dynamodb"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestLoadConfig は環境変数からの設定読み込みを確認する。
// t.Setenvを使用するためt.Parallelは付けない。
func TestLoadConfig(t *testing.T) {
	t.Run("デフォルト値で読み込めること", func(t *testing.T) {
		unsetEnv(t, "PORT", "EVENTKV_BACKEND", "EVENTKV_DB_PATH",
			"REDIS_ADDR", "REDIS_USERNAME", "REDIS_PASSWORD", "JWT_SECRET", "ALLOWED_ORIGINS")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig()でエラーが発生: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("Port = %q, want %q", cfg.Port, "8080")
		}
		if cfg.Backend != BackendSQLite {
			t.Errorf("Backend = %q, want %q", cfg.Backend, BackendSQLite)
		}
		if cfg.DBPath != "/data/eventkv.db" {
			t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/data/eventkv.db")
		}
	})

	t.Run("redisバックエンドの設定を読み込めること", func(t *testing.T) {
		t.Setenv("EVENTKV_BACKEND", "redis")
		t.Setenv("REDIS_ADDR", "redis.example.com:6379")
		t.Setenv("REDIS_USERNAME", "eventkv")
		t.Setenv("REDIS_PASSWORD", "secret")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig()でエラーが発生: %v", err)
		}
		if cfg.Backend != BackendRedis {
			t.Errorf("Backend = %q, want %q", cfg.Backend, BackendRedis)
		}
		if cfg.RedisAddr != "redis.example.com:6379" {
			t.Errorf("RedisAddr = %q, want %q", cfg.RedisAddr, "redis.example.com:6379")
		}
		if cfg.RedisUsername != "eventkv" {
			t.Errorf("RedisUsername = %q, want %q", cfg.RedisUsername, "eventkv")
		}
		if cfg.RedisPassword != "secret" {
			t.Errorf("RedisPassword = %q, want %q", cfg.RedisPassword, "secret")
		}
	})

	t.Run("認証情報が欠けたredisバックエンドは起動時に失敗すること", func(t *testing.T) {
		t.Setenv("EVENTKV_BACKEND", "redis")
		t.Setenv("REDIS_ADDR", "")

		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig()がエラーを返さなかった")
		}
	})

	t.Run("許可オリジンの一覧を読み込めること", func(t *testing.T) {
		t.Setenv("EVENTKV_BACKEND", "memory")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig()でエラーが発生: %v", err)
		}
		if len(cfg.AllowedOrigins) != 2 {
			t.Fatalf("AllowedOriginsの長さ: got %d, want 2", len(cfg.AllowedOrigins))
		}
		if cfg.AllowedOrigins[0] != "https://a.example.com" {
			t.Errorf("AllowedOrigins[0] = %q, want %q", cfg.AllowedOrigins[0], "https://a.example.com")
		}
	})
}

// TestConfigOpenStore は設定からのストア構築を確認する。
func TestConfigOpenStore(t *testing.T) {
	t.Parallel()

	t.Run("memoryバックエンドのストアを構築できること", func(t *testing.T) {
		t.Parallel()

		cfg := Config{Backend: BackendMemory}
		store, err := cfg.OpenStore()
		if err != nil {
			t.Fatalf("OpenStore()でエラーが発生: %v", err)
		}
		t.Cleanup(func() { store.Close() })

		if _, ok := store.(*MemoryStore); !ok {
			t.Errorf("ストアの型: got %T, want *MemoryStore", store)
		}
	})

	t.Run("sqliteバックエンドのストアを構築できること", func(t *testing.T) {
		t.Parallel()

		cfg := Config{Backend: BackendSQLite, DBPath: ":memory:"}
		store, err := cfg.OpenStore()
		if err != nil {
			t.Fatalf("OpenStore()でエラーが発生: %v", err)
		}
		t.Cleanup(func() { store.Close() })

		if _, ok := store.(*SQLiteStore); !ok {
			t.Errorf("ストアの型: got %T, want *SQLiteStore", store)
		}
	})

	t.Run("不明なバックエンドはエラー", func(t *testing.T) {
		t.Parallel()

		cfg := Config{Backend: "cassandra"}
		if _, err := cfg.OpenStore(); err == nil {
			t.Error("OpenStore()がエラーを返さなかった")
		}
	})
}
