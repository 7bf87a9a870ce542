package eventstore

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/eventkv/pkg/middleware"
)

// Server はイベントストアサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// store はイベントレコードの永続化先。
	store Store
}

// NewServer は新しいイベントストアサーバーを生成する。
// storeはEnsureTable済みであること。起動シーケンスはcmd/eventkvを参照。
func NewServer(cfg *Config, store Store) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.AllowedOrigins))
	}

	s := &Server{
		router: router,
		port:   cfg.Port,
		store:  store,
	}
	s.setupRoutes(cfg.JWTSecret)

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
// jwtSecretが空でない場合、イベント保存APIにJWT認証を適用する。
func (s *Server) setupRoutes(jwtSecret string) {
	// イベントの取得
	s.router.GET("/event/:id", s.handleGetEvent())

	// イベントの保存。POST /event/ は末尾スラッシュリダイレクトで到達する。
	if jwtSecret != "" {
		s.router.POST("/event", middleware.JWTAuth(jwtSecret), s.handleSaveEvent())
	} else {
		s.router.POST("/event", s.handleSaveEvent())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "eventkv"})
	})
}

// saveEventRequest はイベント保存リクエストのJSON構造。
type saveEventRequest struct {
	// Body はイベント本文。
	Body string `json:"body"`
}

// handleGetEvent はイベント取得を処理するハンドラを返す。
// 存在しないIDは404を返す。ストア障害は404と区別して500を返す。
func (s *Server) handleGetEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		event, err := s.store.Get(c.Request.Context(), id)
		if errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "イベントが見つかりません"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "イベントの取得に失敗しました"})
			log.Printf("イベント取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, event)
	}
}

// handleSaveEvent はイベント保存を処理するハンドラを返す。
// Content-TypeがJSONの場合は {"body": ...} を、それ以外はリクエストボディ全体を
// 本文として受け取る。書き込みの完了を待ってから採番したIDを返す。
func (s *Server) handleSaveEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := s.readEventBody(c)
		if !ok {
			return
		}

		id, err := s.store.Put(c.Request.Context(), body)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "イベントの保存に失敗しました"})
			log.Printf("イベント保存エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

// readEventBody はリクエストからイベント本文を読み取る。
// 読み取りに失敗した場合はエラーレスポンスを書き込み、okにfalseを返す。
func (s *Server) readEventBody(c *gin.Context) (body string, ok bool) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req saveEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return "", false
		}
		return req.Body, true
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストボディの読み込みに失敗しました"})
		return "", false
	}
	return string(raw), true
}
