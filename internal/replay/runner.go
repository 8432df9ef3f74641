package replay

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wisefido-floorplan/internal/editor"
	"wisefido-floorplan/internal/service"
)

// StepResult 单步结果
type StepResult struct {
	Index    int             `json:"index"`
	Action   string          `json:"action"`
	Accepted bool            `json:"accepted"`
	Outcome  *editor.Outcome `json:"outcome,omitempty"`
}

// Report 回放结果
type Report struct {
	EditorID string             `json:"editor_id"`
	Steps    []StepResult       `json:"steps"`
	Final    service.EditorView `json:"final"`
}

type Runner struct {
	client *Client
	logger *zap.Logger
}

func NewRunner(client *Client, logger *zap.Logger) *Runner {
	return &Runner{client: client, logger: logger}
}

// Run 新建编辑器，依次执行步骤；遇到请求失败或断言不符时停止
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	created, err := r.client.Create(ctx, s.TenantID, s.UnitID)
	if err != nil {
		return nil, err
	}
	report := &Report{EditorID: created.EditorID, Final: created}
	if !s.Keep {
		defer func() {
			if err := r.client.Close(context.Background(), created.EditorID); err != nil {
				r.logger.Warn("failed to close editor", zap.String("editor_id", created.EditorID), zap.Error(err))
			}
		}()
	}

	for i, st := range s.Steps {
		res, view, err := r.step(ctx, created.EditorID, s, st)
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
		res.Index = i
		report.Steps = append(report.Steps, res)
		report.Final = view

		r.logger.Debug("replayed step",
			zap.Int("index", i),
			zap.String("action", st.Action),
			zap.Bool("accepted", res.Accepted),
		)
		if err := check(st.Expect, res); err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
	}
	return report, nil
}

func (r *Runner) step(ctx context.Context, id string, s *Script, st Step) (StepResult, service.EditorView, error) {
	out := StepResult{Action: st.Action}
	var res service.ActionResult
	var err error

	switch st.Action {
	case ActionStart:
		res, err = r.client.Action(ctx, id, map[string]any{"item_id": st.ItemID, "offset": st.offset()}, "drag", "start")
	case ActionOver:
		res, err = r.client.Action(ctx, id, st.overEvent(), "drag", "over")
	case ActionEnd:
		end, endErr := r.client.End(ctx, id, st.endEvent(s.Layout))
		if endErr != nil {
			return out, service.EditorView{}, endErr
		}
		out.Accepted = end.Outcome.Committed
		out.Outcome = &end.Outcome
		return out, end.View, nil
	case ActionCancel:
		res, err = r.client.Action(ctx, id, nil, "drag", "cancel")
	case ActionRender:
		res, err = r.client.Action(ctx, id, nil, "render-complete")
	case ActionMenu:
		res, err = r.client.Action(ctx, id, map[string]bool{"open": st.Open}, "menu")
	case ActionEdit:
		res, err = r.client.EditItem(ctx, id, st.ItemID, st.edit())
	case ActionDelete:
		res, err = r.client.DeleteItem(ctx, id, st.ItemID)
	default:
		return out, service.EditorView{}, fmt.Errorf("unknown action %q", st.Action)
	}
	if err != nil {
		return out, service.EditorView{}, err
	}
	out.Accepted = res.Accepted
	return out, res.View, nil
}

func check(exp *Expect, res StepResult) error {
	if exp == nil {
		return nil
	}
	if exp.Accepted != nil && *exp.Accepted != res.Accepted {
		return fmt.Errorf("expected accepted=%v, got %v", *exp.Accepted, res.Accepted)
	}
	if exp.Committed != nil {
		committed := res.Outcome != nil && res.Outcome.Committed
		if *exp.Committed != committed {
			return fmt.Errorf("expected committed=%v, got %v", *exp.Committed, committed)
		}
	}
	if exp.Reason != "" && (res.Outcome == nil || res.Outcome.Reason != exp.Reason) {
		return fmt.Errorf("expected reason %q", exp.Reason)
	}
	return nil
}
