// イベントストアサービスのエントリポイント。
// 設定の読み込み、ストアバックエンドの構築、テーブル存在確認を行ってから
// HTTPサーバーを起動する。ストレージの準備が完了するまでリクエストを受け付けない。
package main

import (
	"context"
	"log"

	"github.com/nao1215/eventkv/internal/eventstore"
)

func main() {
	cfg, err := eventstore.LoadConfig()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	store, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("ストアの初期化に失敗: %v", err)
	}
	defer store.Close()

	if err := store.EnsureTable(context.Background()); err != nil {
		log.Fatalf("テーブルの存在確認に失敗: %v", err)
	}

	server := eventstore.NewServer(cfg, store)
	log.Printf("イベントストアサービスを起動します: :%s (backend=%s)", cfg.Port, cfg.Backend)
	if err := server.Run(); err != nil {
		log.Fatalf("イベントストアサービスの起動に失敗: %v", err)
	}
}
