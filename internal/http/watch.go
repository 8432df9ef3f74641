package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wisefido-floorplan/internal/service"
)

const (
	// 单次写入超时
	writeWait = 10 * time.Second
	// 等待下一个 pong 的时间
	pongWait = 60 * time.Second
	// ping 周期必须小于 pongWait
	pingPeriod = (pongWait * 9) / 10
	// 客户端只发控制帧
	maxMessageSize = 512
)

// Watch 把编辑器视图以 websocket 推送给客户端，直到编辑器关闭或连接断开
func (h *EditorHandler) Watch(w http.ResponseWriter, r *http.Request, id string) {
	views, cancel, err := h.svc.Subscribe(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer cancel()

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("editor_id", id), zap.Error(err))
		return
	}

	done := make(chan struct{})
	go h.readPump(ws, done)
	h.writePump(ws, views, done)
}

// readPump 只处理 pong/close，连接断开时关闭 done
func (h *EditorHandler) readPump(ws *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (h *EditorHandler) writePump(ws *websocket.Conn, views <-chan service.EditorView, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()

	for {
		select {
		case v, ok := <-views:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 编辑器已关闭
				_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "editor closed"))
				return
			}
			if err := ws.WriteJSON(Ok(v)); err != nil {
				h.logger.Debug("websocket write error", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
