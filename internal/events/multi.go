package events

import (
	"context"

	"go.uber.org/multierr"
)

// MultiPublisher 依次发布到所有下游，错误合并返回
type MultiPublisher struct {
	publishers []Publisher
}

func NewMultiPublisher(publishers ...Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

func (m *MultiPublisher) Publish(ctx context.Context, ev Event) error {
	var err error
	for _, p := range m.publishers {
		err = multierr.Append(err, p.Publish(ctx, ev))
	}
	return err
}

func (m *MultiPublisher) Close() error {
	var err error
	for _, p := range m.publishers {
		err = multierr.Append(err, p.Close())
	}
	return err
}

// Len 下游数量
func (m *MultiPublisher) Len() int { return len(m.publishers) }
