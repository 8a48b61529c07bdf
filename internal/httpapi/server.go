package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fizzo-agent/internal/config"
	"fizzo-agent/internal/entity"
	"fizzo-agent/internal/usecase"
	"fizzo-agent/pkg/logg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const serverName = "HTTPServer"

// Server exposes the automation over JSON endpoints. Handlers always answer
// with the operation envelope; a non-200 status only ever means the request
// itself was malformed.
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	usecase *usecase.Service
	httpSrv *http.Server
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Usecase *usecase.Service
}

func NewServer(params Params) *Server {
	s := &Server{
		config:  params.Config,
		logger:  params.Logger.With(zap.String(logg.Layer, serverName)),
		usecase: params.Usecase,
	}

	router := mux.NewRouter()
	router.Use(s.withRequestID)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/novels/list", s.handleNovelList).Methods(http.MethodPost)
	router.HandleFunc("/api/chapters/publish", s.handleChapterPublish).Methods(http.MethodPost)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", params.Config.ServerConfig.Host, params.Config.ServerConfig.Port),
		Handler:      router,
		ReadTimeout:  params.Config.ServerConfig.ReadTimeout,
		WriteTimeout: params.Config.ServerConfig.WriteTimeout,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpSrv.Addr))

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(ctx, s.config.ServerConfig.ShutdownTimeout)
	defer cancel()

	return s.httpSrv.Shutdown(ctx)
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		s.logger.Info("Request received",
			zap.String(logg.RequestID, id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type novelListRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleNovelList(w http.ResponseWriter, r *http.Request) {
	var req novelListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, entity.NovelListFailure("invalid request body"))

		return
	}

	result := s.usecase.Novels.FetchNovelList(r.Context(), entity.Credentials{
		Identity: req.Email,
		Secret:   req.Password,
	})

	s.writeJSON(w, http.StatusOK, result)
}

type chapterPublishRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	ChapterTitle   string `json:"chapter_title"`
	ChapterContent string `json:"chapter_content"`
	NovelID        string `json:"novel_id,omitempty"`
}

func (s *Server) handleChapterPublish(w http.ResponseWriter, r *http.Request) {
	var req chapterPublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, entity.ChapterPublishFailure("invalid request body"))

		return
	}

	result := s.usecase.Chapters.PublishChapter(r.Context(),
		entity.Credentials{
			Identity: req.Email,
			Secret:   req.Password,
		},
		entity.ChapterDraft{
			NovelID: req.NovelID,
			Title:   req.ChapterTitle,
			Content: req.ChapterContent,
		})

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("Failed to encode response", zap.Error(err))
	}
}
