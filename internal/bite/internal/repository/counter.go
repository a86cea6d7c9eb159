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

package repository

import (
	"context"
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository/dao"
)

var ErrCounterUnderflow = dao.ErrCounterUnderflow

type CounterRepository interface {
	Incr(ctx context.Context, postId int64, field domain.CounterField, delta int64) error
	// Get 计数行不存在的时候返回全 0 的计数
	Get(ctx context.Context, postId int64) (domain.Counter, error)
	GetByIds(ctx context.Context, postIds []int64) (map[int64]domain.Counter, error)
	Set(ctx context.Context, postId int64, field domain.CounterField, val int64) (int64, error)
	ReconcileLikes(ctx context.Context, postId int64) (int64, int64, error)
	ReconcileComments(ctx context.Context, postId int64) (int64, int64, error)
	// CountByIds 按照明细统计，没有明细的视频不在结果里面
	CountByIds(ctx context.Context, field domain.CounterField, postIds []int64) (map[int64]int64, error)
	ListUpdatedSince(ctx context.Context, utime int64, offset, limit int) ([]domain.Counter, error)

	Mark(ctx context.Context, mark domain.CounterMark) error
	Unmark(ctx context.Context, mark domain.CounterMark) error
	Marked(ctx context.Context, postId int64) ([]domain.CounterMark, error)
	MarkedByIds(ctx context.Context, postIds []int64) ([]domain.CounterMark, error)
	ListMarks(ctx context.Context, offset, limit int) ([]domain.CounterMark, error)
}

type counterRepository struct {
	dao dao.CounterDAO
}

func NewCounterRepository(d dao.CounterDAO) CounterRepository {
	return &counterRepository{dao: d}
}

func (c *counterRepository) Incr(ctx context.Context, postId int64, field domain.CounterField, delta int64) error {
	return c.dao.Incr(ctx, postId, field.String(), delta)
}

func (c *counterRepository) Get(ctx context.Context, postId int64) (domain.Counter, error) {
	res, err := c.dao.Get(ctx, postId)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.Counter{PostId: postId}, nil
	}
	if err != nil {
		return domain.Counter{}, err
	}
	return c.toDomain(res), nil
}

func (c *counterRepository) GetByIds(ctx context.Context, postIds []int64) (map[int64]domain.Counter, error) {
	res, err := c.dao.GetByIds(ctx, postIds)
	if err != nil {
		return nil, err
	}
	counters := make(map[int64]domain.Counter, len(res))
	for _, r := range res {
		counters[r.PostId] = c.toDomain(r)
	}
	return counters, nil
}

func (c *counterRepository) Set(ctx context.Context, postId int64, field domain.CounterField, val int64) (int64, error) {
	return c.dao.Set(ctx, postId, field.String(), val)
}

func (c *counterRepository) ReconcileLikes(ctx context.Context, postId int64) (int64, int64, error) {
	return c.dao.ReconcileLikes(ctx, postId)
}

func (c *counterRepository) ReconcileComments(ctx context.Context, postId int64) (int64, int64, error) {
	return c.dao.ReconcileComments(ctx, postId)
}

func (c *counterRepository) CountByIds(ctx context.Context, field domain.CounterField, postIds []int64) (map[int64]int64, error) {
	return c.dao.CountByIds(ctx, field.String(), postIds)
}

func (c *counterRepository) ListUpdatedSince(ctx context.Context, utime int64, offset, limit int) ([]domain.Counter, error) {
	res, err := c.dao.ListUpdatedSince(ctx, utime, offset, limit)
	return slice.Map(res, func(idx int, src dao.PostCounter) domain.Counter {
		return c.toDomain(src)
	}), err
}

func (c *counterRepository) Mark(ctx context.Context, mark domain.CounterMark) error {
	return c.dao.Mark(ctx, mark.PostId, mark.Field.String())
}

func (c *counterRepository) Unmark(ctx context.Context, mark domain.CounterMark) error {
	return c.dao.Unmark(ctx, mark.PostId, mark.Field.String())
}

func (c *counterRepository) Marked(ctx context.Context, postId int64) ([]domain.CounterMark, error) {
	res, err := c.dao.Marked(ctx, postId)
	return slice.Map(res, func(idx int, src dao.CounterMark) domain.CounterMark {
		return c.markToDomain(src)
	}), err
}

func (c *counterRepository) MarkedByIds(ctx context.Context, postIds []int64) ([]domain.CounterMark, error) {
	res, err := c.dao.MarkedByIds(ctx, postIds)
	return slice.Map(res, func(idx int, src dao.CounterMark) domain.CounterMark {
		return c.markToDomain(src)
	}), err
}

func (c *counterRepository) ListMarks(ctx context.Context, offset, limit int) ([]domain.CounterMark, error) {
	res, err := c.dao.ListMarks(ctx, offset, limit)
	return slice.Map(res, func(idx int, src dao.CounterMark) domain.CounterMark {
		return c.markToDomain(src)
	}), err
}

func (c *counterRepository) toDomain(src dao.PostCounter) domain.Counter {
	return domain.Counter{
		PostId:     src.PostId,
		LikeCnt:    src.LikeCnt,
		CommentCnt: src.CommentCnt,
	}
}

func (c *counterRepository) markToDomain(src dao.CounterMark) domain.CounterMark {
	return domain.CounterMark{
		PostId: src.PostId,
		Field:  domain.CounterField(src.Field),
	}
}
