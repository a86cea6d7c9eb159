// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/event"
	"github.com/ecodeclub/kbites/internal/bite/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// CounterEventConsumer 收到对账消息之后立刻对账
type CounterEventConsumer struct {
	svc      service.CounterMaintainer
	consumer mq.Consumer
	logger   *elog.Component
}

func NewCounterEventConsumer(svc service.CounterMaintainer, q mq.MQ) (*CounterEventConsumer, error) {
	const groupID = "bite_counter"
	consumer, err := q.Consumer(event.CounterEventsTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &CounterEventConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *CounterEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			if ctx.Err() != nil {
				return
			}
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费对账事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *CounterEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt event.CounterEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	field := domain.CounterField(evt.Field)
	if evt.PostId <= 0 || !field.Valid() {
		c.logger.Warn("非法的对账消息", elog.Any("event", evt))
		return nil
	}
	cnt, err := c.svc.Reconcile(ctx, evt.PostId, field)
	if err != nil {
		// 标记还在，交给定时任务
		return fmt.Errorf("对账失败 postId=%d: %w", evt.PostId, err)
	}
	c.logger.Debug("对账完成",
		elog.Int64("postId", evt.PostId),
		elog.String("field", evt.Field),
		elog.Int64("cnt", cnt))
	return nil
}

func (c *CounterEventConsumer) Stop(_ context.Context) error {
	return c.consumer.Close()
}
