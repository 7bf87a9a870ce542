package eventstore

import (
	"context"
	"errors"
)

// Event はサービスが永続化するイベントレコードを表す。
type Event struct {
	// ID はイベントの一意識別子（UUID）。保存時にストアが採番し、以降不変。
	ID string `json:"id"`
	// Body はイベント本文。変換せずそのまま保存・返却する。
	Body string `json:"body"`
}

// ErrEventNotFound は指定されたIDのイベントが存在しないことを表す。
// 存在しないIDの取得は正常系であり、ストア障害とは区別して扱う。
var ErrEventNotFound = errors.New("イベントが見つかりません")

// Store はイベントレコードのキーバリューストアを表すインターフェース。
// すべての実装は複数ゴルーチンからの同時呼び出しに対して安全であること。
type Store interface {
	// EnsureTable はイベントテーブル（相当物）が存在することを保証する。
	// 冪等であり、既に存在する場合は何もしない。サービス起動時に一度だけ呼び出し、
	// 失敗した場合はサービスを起動してはならない。
	EnsureTable(ctx context.Context) error

	// Get は指定されたIDのイベントを取得する。
	// 存在しない場合はErrEventNotFoundを返す。ストア障害はそれ以外のエラーとして返す。
	Get(ctx context.Context, id string) (*Event, error)

	// Put は新しいIDを採番して本文を保存し、採番したIDを返す。
	// 既存レコードとの重複確認は行わず、無条件に上書き書き込みする。
	Put(ctx context.Context, body string) (string, error)

	// Close はストアへの接続を解放する。
	Close() error
}
