package eventstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// スキーマ定義。idをハッシュキーとする単一テーブル。
const schema = `
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    body TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// SQLiteStore はSQLiteをバックエンドとするイベントストア。
type SQLiteStore struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// NewSQLiteStore は指定されたパスのSQLiteデータベースに接続し、イベントストアを生成する。
// パスに":memory:"を指定するとインメモリデータベースになる。
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// EnsureTable はeventsテーブルを作成する。
// CREATE TABLE IF NOT EXISTSを使用するため、既存テーブルがあっても冪等。
func (s *SQLiteStore) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}
	return nil
}

// Get は指定されたIDのイベントを取得する。body列のみを読み取る。
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Event, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM events WHERE id = ?`, id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗: %w", err)
	}
	return &Event{ID: id, Body: body}, nil
}

// Put は新しいUUIDを採番してイベントを保存し、採番したIDを返す。
// 採番したIDが万一衝突しても上書きする（UUIDの衝突確率は無視できるため事前確認はしない）。
func (s *SQLiteStore) Put(ctx context.Context, body string) (string, error) {
	id := uuid.New().String()
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO events (id, body) VALUES (?, ?)`, id, body); err != nil {
		return "", fmt.Errorf("イベントの保存に失敗: %w", err)
	}
	return id, nil
}

// Close はデータベース接続を閉じる。
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
