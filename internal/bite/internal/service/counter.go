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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/event"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	driftCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bite_counter_drift_total",
		Help: "冗余计数和明细不一致的次数",
	}, []string{"field"})
	reconcileCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bite_counter_reconcile_total",
		Help: "计数对账次数",
	}, []string{"field", "status"})
)

// CounterDriftError 冗余计数和明细行数不一致，只在内部记录，不会返回给调用者
type CounterDriftError struct {
	PostId int64
	Field  domain.CounterField
	Cached int64
	Actual int64
}

func (e *CounterDriftError) Error() string {
	return fmt.Sprintf("计数漂移 postId=%d field=%s cached=%d actual=%d",
		e.PostId, e.Field, e.Cached, e.Actual)
}

// CounterMaintainer 维护点赞数、评论数这些冗余计数
type CounterMaintainer interface {
	// Adjust 原子加减计数，重试之后仍然失败的话标记这个视频等待对账，并且返回错误
	Adjust(ctx context.Context, postId int64, field domain.CounterField, delta int64) error
	// Reconcile 用明细数据重新计算计数并覆盖，返回正确的值
	Reconcile(ctx context.Context, postId int64, field domain.CounterField) (int64, error)
	// MarkForReconcile 标记视频等待对账，同时发送对账消息
	MarkForReconcile(ctx context.Context, postId int64, field domain.CounterField, reason string)

	// Get 被标记的计数直接用明细数据计算
	Get(ctx context.Context, postId int64) (domain.Counter, error)
	// GetByIds 和 Get 一样，被标记的计数用明细数据计算
	GetByIds(ctx context.Context, postIds []int64) (map[int64]domain.Counter, error)

	// ReconcileMarked 对所有被标记的计数对账，返回成功的个数
	ReconcileMarked(ctx context.Context, batch int) (int, error)
	// ReconcileUpdatedSince 对 since 之后变更过的计数对账，返回成功的个数
	ReconcileUpdatedSince(ctx context.Context, since time.Time, batch int) (int, error)
}

type counterMaintainer struct {
	repo       repository.CounterRepository
	membership repository.MembershipRepository
	posts      PostStore
	producer   event.CounterEventProducer

	initialInterval time.Duration
	maxInterval     time.Duration
	maxRetries      int32
	logger          *elog.Component
}

func NewCounterMaintainer(repo repository.CounterRepository,
	membership repository.MembershipRepository,
	posts PostStore,
	producer event.CounterEventProducer) CounterMaintainer {
	return &counterMaintainer{
		repo:            repo,
		membership:      membership,
		posts:           posts,
		producer:        producer,
		initialInterval: 10 * time.Millisecond,
		maxInterval:     100 * time.Millisecond,
		maxRetries:      3,
		logger:          elog.DefaultLogger,
	}
}

func (c *counterMaintainer) Adjust(ctx context.Context, postId int64, field domain.CounterField, delta int64) error {
	if !field.Valid() || (delta != 1 && delta != -1) {
		return fmt.Errorf("非法的计数变更 field=%s delta=%d", field, delta)
	}
	strategy, err := retry.NewExponentialBackoffRetryStrategy(c.initialInterval, c.maxInterval, c.maxRetries)
	if err != nil {
		return err
	}
	for {
		err = c.repo.Incr(ctx, postId, field, delta)
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrCounterUnderflow) {
			// 计数已经比明细少了，重试没有意义
			_, err = c.Reconcile(ctx, postId, field)
			return err
		}
		next, ok := strategy.Next()
		if !ok || ctx.Err() != nil {
			break
		}
		time.Sleep(next)
	}
	c.logger.Error("更新计数失败",
		elog.FieldErr(err),
		elog.Int64("postId", postId),
		elog.String("field", field.String()),
		elog.Int64("delta", delta))
	c.MarkForReconcile(ctx, postId, field, "adjust_failed")
	return err
}

func (c *counterMaintainer) MarkForReconcile(ctx context.Context, postId int64, field domain.CounterField, reason string) {
	// 原本的 ctx 可能已经超时了，标记还是要写进去
	newCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	err := c.repo.Mark(newCtx, domain.CounterMark{PostId: postId, Field: field})
	if err != nil {
		c.logger.Error("标记对账失败",
			elog.FieldErr(err),
			elog.Int64("postId", postId),
			elog.String("field", field.String()))
	}
	err = c.producer.Produce(newCtx, event.CounterEvent{
		PostId: postId,
		Field:  field.String(),
		Reason: reason,
	})
	if err != nil {
		// 标记还在，定时任务会处理
		c.logger.Warn("发送对账消息失败",
			elog.FieldErr(err),
			elog.Int64("postId", postId),
			elog.String("field", field.String()))
	}
}

func (c *counterMaintainer) Reconcile(ctx context.Context, postId int64, field domain.CounterField) (int64, error) {
	var (
		old, actual int64
		err         error
	)
	switch field {
	case domain.CounterFieldLike:
		old, actual, err = c.repo.ReconcileLikes(ctx, postId)
	case domain.CounterFieldComment:
		old, actual, err = c.repo.ReconcileComments(ctx, postId)
	default:
		err = fmt.Errorf("未知的计数字段 %s", field)
	}
	if err != nil {
		reconcileCounter.WithLabelValues(field.String(), "fail").Inc()
		return 0, err
	}
	reconcileCounter.WithLabelValues(field.String(), "ok").Inc()
	if old != actual {
		driftCounter.WithLabelValues(field.String()).Inc()
		c.logger.Warn("修复计数", elog.FieldErr(&CounterDriftError{
			PostId: postId,
			Field:  field,
			Cached: old,
			Actual: actual,
		}))
	}
	if err = c.repo.Unmark(ctx, domain.CounterMark{PostId: postId, Field: field}); err != nil {
		// 标记留着问题不大，下次对账还会再算一遍
		c.logger.Warn("删除对账标记失败", elog.FieldErr(err), elog.Int64("postId", postId))
	}
	return actual, nil
}

func (c *counterMaintainer) Get(ctx context.Context, postId int64) (domain.Counter, error) {
	counter, err := c.repo.Get(ctx, postId)
	if err != nil {
		return domain.Counter{}, err
	}
	marks, err := c.repo.Marked(ctx, postId)
	if err != nil {
		return domain.Counter{}, err
	}
	for _, m := range marks {
		switch m.Field {
		case domain.CounterFieldLike:
			counter.LikeCnt, err = c.membership.CountLikes(ctx, postId)
		case domain.CounterFieldComment:
			counter.CommentCnt, err = c.posts.CountComments(ctx, postId)
		}
		if err != nil {
			return domain.Counter{}, err
		}
	}
	return counter, nil
}

func (c *counterMaintainer) GetByIds(ctx context.Context, postIds []int64) (map[int64]domain.Counter, error) {
	counters, err := c.repo.GetByIds(ctx, postIds)
	if err != nil {
		return nil, err
	}
	marks, err := c.repo.MarkedByIds(ctx, postIds)
	if err != nil || len(marks) == 0 {
		return counters, err
	}
	marked := make(map[domain.CounterField][]int64, 2)
	for _, m := range marks {
		marked[m.Field] = append(marked[m.Field], m.PostId)
	}
	for field, ids := range marked {
		actual, err := c.repo.CountByIds(ctx, field, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			counter := counters[id]
			counter.PostId = id
			counter.Set(field, actual[id])
			counters[id] = counter
		}
	}
	return counters, nil
}

func (c *counterMaintainer) ReconcileMarked(ctx context.Context, batch int) (int, error) {
	batch = max(batch, 1)
	// 对账失败或者删除标记失败的标记会留在前面，用 offset 跳过
	offset, cnt := 0, 0
	seen := make(map[domain.CounterMark]struct{}, batch)
	for {
		marks, err := c.repo.ListMarks(ctx, offset, batch)
		if err != nil {
			return cnt, err
		}
		for _, m := range marks {
			if _, ok := seen[m]; ok {
				offset++
				continue
			}
			seen[m] = struct{}{}
			if _, err1 := c.Reconcile(ctx, m.PostId, m.Field); err1 != nil {
				c.logger.Error("对账失败", elog.FieldErr(err1),
					elog.Int64("postId", m.PostId),
					elog.String("field", m.Field.String()))
				offset++
				continue
			}
			cnt++
		}
		if len(marks) < batch {
			return cnt, nil
		}
	}
}

func (c *counterMaintainer) ReconcileUpdatedSince(ctx context.Context, since time.Time, batch int) (int, error) {
	batch = max(batch, 1)
	offset, cnt := 0, 0
	for {
		counters, err := c.repo.ListUpdatedSince(ctx, since.UnixMilli(), offset, batch)
		if err != nil {
			return cnt, err
		}
		for _, counter := range counters {
			for _, field := range []domain.CounterField{domain.CounterFieldLike, domain.CounterFieldComment} {
				if _, err1 := c.Reconcile(ctx, counter.PostId, field); err1 != nil {
					c.logger.Error("对账失败", elog.FieldErr(err1),
						elog.Int64("postId", counter.PostId),
						elog.String("field", field.String()))
					continue
				}
				cnt++
			}
		}
		if len(counters) < batch {
			return cnt, nil
		}
		offset += len(counters)
	}
}
