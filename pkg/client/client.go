// Package client はイベントストアサービス用のHTTPクライアントを提供する。
//
// サービスの公開する2操作（イベントの保存・取得）を型付きメソッドとして公開する。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound は指定されたIDのイベントがサービス上に存在しないことを表す。
var ErrNotFound = errors.New("イベントが見つかりません")

// Event はサービスから返されるイベントレコード。
type Event struct {
	// ID はイベントの一意識別子。
	ID string `json:"id"`
	// Body はイベント本文。
	Body string `json:"body"`
}

// Client はイベントストアサービスへのHTTPクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先サービスのベースURL。
	baseURL string
	// token はBearer認証トークン。空の場合はAuthorizationヘッダーを付与しない。
	token string
}

// New は新しいイベントストアクライアントを生成する。
// baseURLには接続先サービスのベースURL（例: "http://eventkv:8080"）を指定する。
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// SetToken はBearer認証トークンを設定する。
// イベント保存APIにJWT認証が設定されている環境で使用する。
func (c *Client) SetToken(token string) {
	c.token = token
}

// SaveEvent はイベント本文を保存し、サービスが採番したIDを返す。
func (c *Client) SaveEvent(ctx context.Context, body string) (string, error) {
	var result struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/event",
		map[string]string{"body": body}, &result); err != nil {
		return "", err
	}
	return result.ID, nil
}

// Event は指定されたIDのイベントを取得する。
// 存在しない場合はErrNotFoundを返す。
func (c *Client) Event(ctx context.Context, id string) (*Event, error) {
	var event Event
	if err := c.doJSON(ctx, http.MethodGet, "/event/"+url.PathEscape(id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// doJSON はJSON形式のHTTPリクエストを実行する共通処理。
func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTPエラー: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("レスポンスボディのデシリアライズに失敗: %w", err)
		}
	}
	return nil
}
