// Package eventstore はイベントレコード {id, body} をキーバリューストアに
// 永続化するサービスの中核を提供する。
//
// Storeインターフェースの背後にSQLite・Redis・インメモリの3つのバックエンドを持ち、
// GinベースのHTTPサーバーが取得・保存の2操作を公開する。
package eventstore
