package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wisefido-floorplan/internal/domain"
	"wisefido-floorplan/internal/editor"
	"wisefido-floorplan/internal/service"
)

// EditorHandler 编辑器 HTTP 接口
type EditorHandler struct {
	svc      *service.EditorService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewEditorHandler(svc *service.EditorService, logger *zap.Logger) *EditorHandler {
	return &EditorHandler{
		svc:    svc,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// 前端与 API 同源部署，由网关做来源校验
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type createRequest struct {
	TenantID string `json:"tenant_id"`
	UnitID   string `json:"unit_id"`
}

type dragStartRequest struct {
	ItemID string        `json:"item_id"`
	Offset editor.Offset `json:"offset"`
}

type menuRequest struct {
	Open bool `json:"open"`
}

func (h *EditorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if req.TenantID == "" {
		req.TenantID = r.Header.Get("X-Tenant-Id")
	}
	v, err := h.svc.Create(r.Context(), req.TenantID, req.UnitID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(v))
}

func (h *EditorHandler) RoomTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Ok(domain.RoomTypes))
}

// Dispatch 解析 /editors/{id}[/...]
func (h *EditorHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, editorsPath+"/"), "/")
	parts := strings.Split(rest, "/")
	if rest == "" || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodDelete:
			h.close(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case len(parts) == 3 && parts[1] == "drag":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.drag(w, r, id, parts[2])
	case len(parts) == 2 && parts[1] == "render-complete":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		res, err := h.svc.RenderComplete(r.Context(), id)
		h.writeResult(w, res, err)
	case len(parts) == 2 && parts[1] == "menu":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req menuRequest
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		res, err := h.svc.SetMenuOpen(r.Context(), id, req.Open)
		h.writeResult(w, res, err)
	case len(parts) == 3 && parts[1] == "items":
		h.item(w, r, id, parts[2])
	case len(parts) == 2 && parts[1] == "watch":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Watch(w, r, id)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *EditorHandler) get(w http.ResponseWriter, _ *http.Request, id string) {
	v, err := h.svc.View(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(v))
}

func (h *EditorHandler) close(w http.ResponseWriter, _ *http.Request, id string) {
	if err := h.svc.Close(id); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"editor_id": id}))
}

func (h *EditorHandler) drag(w http.ResponseWriter, r *http.Request, id, action string) {
	switch action {
	case "start":
		var req dragStartRequest
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil || req.ItemID == "" {
			writeJSON(w, http.StatusBadRequest, Fail("item_id is required"))
			return
		}
		res, err := h.svc.DragStart(r.Context(), id, req.ItemID, req.Offset)
		h.writeResult(w, res, err)
	case "over":
		var ev editor.OverEvent
		if err := readBodyJSON(r, maxBodyBytes, &ev); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		res, err := h.svc.DragOver(r.Context(), id, ev)
		h.writeResult(w, res, err)
	case "end":
		var ev editor.EndEvent
		if err := readBodyJSON(r, maxBodyBytes, &ev); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		res, err := h.svc.DragEnd(r.Context(), id, ev)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(res))
	case "cancel":
		res, err := h.svc.DragCancel(r.Context(), id)
		h.writeResult(w, res, err)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *EditorHandler) item(w http.ResponseWriter, r *http.Request, id, itemID string) {
	switch r.Method {
	case http.MethodPut:
		var edit editor.Edit
		if err := readBodyJSON(r, maxBodyBytes, &edit); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		res, err := h.svc.EditItem(r.Context(), id, itemID, edit)
		h.writeResult(w, res, err)
	case http.MethodDelete:
		res, err := h.svc.DeleteItem(r.Context(), id, itemID)
		h.writeResult(w, res, err)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *EditorHandler) writeResult(w http.ResponseWriter, res service.ActionResult, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(res))
}

func (h *EditorHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEditorNotFound):
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
	case errors.Is(err, service.ErrInvalidScope):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	default:
		h.logger.Error("editor request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("internal error"))
	}
}
