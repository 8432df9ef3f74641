package replay

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	httpapi "wisefido-floorplan/internal/http"
	"wisefido-floorplan/internal/service"
)

const editorsPath = "/floorplan/api/v1/editors"

// Client wisefido-floorplan HTTP 客户端
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{httpClient: client, logger: logger}
}

// call 发请求并拆开 Result 包装；code != 2000 视为失败
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var res httpapi.Result[T]
	var zero T

	req := c.httpClient.R().SetContext(ctx).SetResult(&res).SetError(&res)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if res.Code != httpapi.ResultSuccess {
		c.logger.Debug("floorplan API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", res.Message),
		)
		return zero, fmt.Errorf("%s %s: %s (status: %d)", method, path, res.Message, resp.StatusCode())
	}
	return res.Result, nil
}

func editorPath(id string, parts ...string) string {
	p := editorsPath + "/" + url.PathEscape(id)
	for _, s := range parts {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func (c *Client) Create(ctx context.Context, tenantID, unitID string) (service.EditorView, error) {
	return call[service.EditorView](ctx, c, "POST", editorsPath, map[string]string{"tenant_id": tenantID, "unit_id": unitID})
}

func (c *Client) View(ctx context.Context, id string) (service.EditorView, error) {
	return call[service.EditorView](ctx, c, "GET", editorPath(id), nil)
}

func (c *Client) Close(ctx context.Context, id string) error {
	_, err := call[map[string]any](ctx, c, "DELETE", editorPath(id), nil)
	return err
}

// Action POST /editors/{id}/<parts...>
func (c *Client) Action(ctx context.Context, id string, body any, parts ...string) (service.ActionResult, error) {
	return call[service.ActionResult](ctx, c, "POST", editorPath(id, parts...), body)
}

func (c *Client) End(ctx context.Context, id string, body any) (service.EndResult, error) {
	return call[service.EndResult](ctx, c, "POST", editorPath(id, "drag", "end"), body)
}

func (c *Client) EditItem(ctx context.Context, id, itemID string, body any) (service.ActionResult, error) {
	return call[service.ActionResult](ctx, c, "PUT", editorPath(id, "items", itemID), body)
}

func (c *Client) DeleteItem(ctx context.Context, id, itemID string) (service.ActionResult, error) {
	return call[service.ActionResult](ctx, c, "DELETE", editorPath(id, "items", itemID), nil)
}
