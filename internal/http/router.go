package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

const (
	editorsPath   = "/floorplan/api/v1/editors"
	roomTypesPath = "/floorplan/api/v1/room-types"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterEditorRoutes 注册楼层编辑器路由
func (r *Router) RegisterEditorRoutes(h *EditorHandler) {
	r.Handle(editorsPath, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Create(w, req)
	})
	// /editors/{id}/...
	r.Handle(editorsPath+"/", h.Dispatch)

	r.Handle(roomTypesPath, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.RoomTypes(w, req)
	})
}
