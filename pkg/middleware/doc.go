// Package middleware はイベントストアサービスのHTTP APIで使用するGinミドルウェアを提供する。
//
// パニックリカバリ、書き込みクライアント向けのJWT認証、CORS設定を含む。
package middleware
