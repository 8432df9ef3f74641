package service

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"wisefido-floorplan/internal/config"
)

// Server HTTP 服务；停止时一并关闭编辑器，让 watch 长连接退出
type Server struct {
	httpServer *http.Server
	editors    *EditorService
	logger     *zap.Logger
}

func NewServer(cfg config.HTTPConfig, handler http.Handler, editors *EditorService, logger *zap.Logger) *Server {
	hs := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	s := &Server{httpServer: hs, editors: editors, logger: logger}
	if editors != nil {
		hs.RegisterOnShutdown(func() {
			editors.CloseAll()
		})
	}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("floorplan editor API listening",
		zap.String("addr", s.httpServer.Addr),
		zap.Duration("read_header_timeout", s.httpServer.ReadHeaderTimeout),
	)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop 停止接收新连接并等待普通请求结束；已劫持的 watch 连接由 CloseAll 关闭
func (s *Server) Stop(ctx context.Context) error {
	open := 0
	if s.editors != nil {
		open = s.editors.Len()
	}
	s.logger.Info("floorplan editor API stopping", zap.Int("open_editors", open))
	return s.httpServer.Shutdown(ctx)
}
