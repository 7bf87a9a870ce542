package eventstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore はプロセス内メモリをバックエンドとするイベントストア。
// テストおよび永続化不要なローカル実行で使用する。
type MemoryStore struct {
	// mu はeventsマップを保護する。
	mu sync.RWMutex
	// events はIDから本文へのマップ。
	events map[string]string
}

// NewMemoryStore は空のインメモリイベントストアを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string]string)}
}

// EnsureTable は何もしない。マップは生成時点で利用可能なため常に成功する。
func (s *MemoryStore) EnsureTable(_ context.Context) error {
	return nil
}

// Get は指定されたIDのイベントを取得する。
func (s *MemoryStore) Get(_ context.Context, id string) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &Event{ID: id, Body: body}, nil
}

// Put は新しいUUIDを採番してイベントを保存し、採番したIDを返す。
func (s *MemoryStore) Put(_ context.Context, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.events[id] = body
	return id, nil
}

// Close は何もしない。
func (s *MemoryStore) Close() error {
	return nil
}
