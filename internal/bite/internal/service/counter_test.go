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
	"testing"

	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/event"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository"
	bitemocks "github.com/ecodeclub/kbites/internal/bite/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// stubCounterRepo 只实现用到的方法
type stubCounterRepo struct {
	repository.CounterRepository
	incrErrs   []error
	incrs      int
	marks      []domain.CounterMark
	unmarks    []domain.CounterMark
	oldVal     int64
	actual     int64
	reconciled []domain.CounterField

	counters map[int64]domain.Counter
	marked   []domain.CounterMark
	counted  map[domain.CounterField][]int64
	details  map[domain.CounterField]map[int64]int64
}

func (s *stubCounterRepo) Incr(ctx context.Context, postId int64, field domain.CounterField, delta int64) error {
	s.incrs++
	if len(s.incrErrs) == 0 {
		return nil
	}
	err := s.incrErrs[0]
	if len(s.incrErrs) > 1 {
		s.incrErrs = s.incrErrs[1:]
	}
	return err
}

func (s *stubCounterRepo) Mark(ctx context.Context, mark domain.CounterMark) error {
	s.marks = append(s.marks, mark)
	return nil
}

func (s *stubCounterRepo) Unmark(ctx context.Context, mark domain.CounterMark) error {
	s.unmarks = append(s.unmarks, mark)
	return nil
}

func (s *stubCounterRepo) ReconcileLikes(ctx context.Context, postId int64) (int64, int64, error) {
	s.reconciled = append(s.reconciled, domain.CounterFieldLike)
	return s.oldVal, s.actual, nil
}

func (s *stubCounterRepo) ReconcileComments(ctx context.Context, postId int64) (int64, int64, error) {
	s.reconciled = append(s.reconciled, domain.CounterFieldComment)
	return s.oldVal, s.actual, nil
}

func (s *stubCounterRepo) GetByIds(ctx context.Context, postIds []int64) (map[int64]domain.Counter, error) {
	res := make(map[int64]domain.Counter, len(s.counters))
	for id, c := range s.counters {
		res[id] = c
	}
	return res, nil
}

func (s *stubCounterRepo) MarkedByIds(ctx context.Context, postIds []int64) ([]domain.CounterMark, error) {
	return s.marked, nil
}

func (s *stubCounterRepo) CountByIds(ctx context.Context, field domain.CounterField, postIds []int64) (map[int64]int64, error) {
	if s.counted == nil {
		s.counted = make(map[domain.CounterField][]int64)
	}
	s.counted[field] = append(s.counted[field], postIds...)
	return s.details[field], nil
}

type stubProducer struct {
	evts []event.CounterEvent
	err  error
}

func (s *stubProducer) Produce(ctx context.Context, evt event.CounterEvent) error {
	s.evts = append(s.evts, evt)
	return s.err
}

func TestCounterMaintainer_Adjust(t *testing.T) {
	dbErr := errors.New("db error")
	testCases := []struct {
		name  string
		field domain.CounterField
		delta int64
		mock  func(ctrl *gomock.Controller) PostStore
		repo  *stubCounterRepo
		prod  *stubProducer

		wantIncrs int
		wantMarks []domain.CounterMark
		wantEvts  []event.CounterEvent
		wantErr   error
	}{
		{
			name:  "一次成功",
			field: domain.CounterFieldComment,
			delta: 1,
			mock: func(ctrl *gomock.Controller) PostStore {
				return bitemocks.NewMockPostStore(ctrl)
			},
			repo:      &stubCounterRepo{},
			prod:      &stubProducer{},
			wantIncrs: 1,
		},
		{
			name:  "重试之后成功",
			field: domain.CounterFieldComment,
			delta: 1,
			mock: func(ctrl *gomock.Controller) PostStore {
				return bitemocks.NewMockPostStore(ctrl)
			},
			repo:      &stubCounterRepo{incrErrs: []error{dbErr, dbErr, nil}},
			prod:      &stubProducer{},
			wantIncrs: 3,
		},
		{
			name:  "一直失败_标记并且发送消息",
			field: domain.CounterFieldComment,
			delta: 1,
			mock: func(ctrl *gomock.Controller) PostStore {
				return bitemocks.NewMockPostStore(ctrl)
			},
			repo:      &stubCounterRepo{incrErrs: []error{dbErr}},
			prod:      &stubProducer{},
			wantIncrs: 4,
			wantMarks: []domain.CounterMark{{PostId: 1, Field: domain.CounterFieldComment}},
			wantEvts:  []event.CounterEvent{{PostId: 1, Field: "comment_cnt", Reason: "adjust_failed"}},
			wantErr:   dbErr,
		},
		{
			name:  "发送消息失败也会标记",
			field: domain.CounterFieldComment,
			delta: 1,
			mock: func(ctrl *gomock.Controller) PostStore {
				return bitemocks.NewMockPostStore(ctrl)
			},
			repo:      &stubCounterRepo{incrErrs: []error{dbErr}},
			prod:      &stubProducer{err: errors.New("mq error")},
			wantIncrs: 4,
			wantMarks: []domain.CounterMark{{PostId: 1, Field: domain.CounterFieldComment}},
			wantEvts:  []event.CounterEvent{{PostId: 1, Field: "comment_cnt", Reason: "adjust_failed"}},
			wantErr:   dbErr,
		},
		{
			name:  "减到负数_直接对账",
			field: domain.CounterFieldComment,
			delta: -1,
			mock: func(ctrl *gomock.Controller) PostStore {
				return bitemocks.NewMockPostStore(ctrl)
			},
			repo:      &stubCounterRepo{incrErrs: []error{repository.ErrCounterUnderflow}},
			prod:      &stubProducer{},
			wantIncrs: 1,
		},
		{
			name:  "非法的变更",
			field: domain.CounterFieldLike,
			delta: 2,
			mock: func(ctrl *gomock.Controller) PostStore {
				return bitemocks.NewMockPostStore(ctrl)
			},
			repo:    &stubCounterRepo{},
			prod:    &stubProducer{},
			wantErr: errors.New("非法的计数变更 field=like_cnt delta=2"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewCounterMaintainer(tc.repo, nil, tc.mock(ctrl), tc.prod)
			err := svc.Adjust(context.Background(), 1, tc.field, tc.delta)
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantIncrs, tc.repo.incrs)
			assert.Equal(t, tc.wantMarks, tc.repo.marks)
			assert.Equal(t, tc.wantEvts, tc.prod.evts)
		})
	}
}

func TestCounterMaintainer_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// 评论数在仓储的事务里面数，不再单独查
	posts := bitemocks.NewMockPostStore(ctrl)
	repo := &stubCounterRepo{oldVal: 3, actual: 5}
	svc := NewCounterMaintainer(repo, nil, posts, &stubProducer{})

	cnt, err := svc.Reconcile(context.Background(), 1, domain.CounterFieldComment)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), cnt)
	assert.Equal(t, []domain.CounterField{domain.CounterFieldComment}, repo.reconciled)
	assert.Equal(t, []domain.CounterMark{{PostId: 1, Field: domain.CounterFieldComment}}, repo.unmarks)

	_, err = svc.Reconcile(context.Background(), 1, domain.CounterField("share_cnt"))
	assert.Error(t, err)
}

func TestCounterMaintainer_GetByIds(t *testing.T) {
	testCases := []struct {
		name string
		repo *stubCounterRepo

		want        map[int64]domain.Counter
		wantCounted map[domain.CounterField][]int64
	}{
		{
			name: "没有标记直接用缓存",
			repo: &stubCounterRepo{
				counters: map[int64]domain.Counter{
					1: {PostId: 1, LikeCnt: 10, CommentCnt: 2},
				},
			},
			want: map[int64]domain.Counter{
				1: {PostId: 1, LikeCnt: 10, CommentCnt: 2},
			},
		},
		{
			name: "被标记的字段用明细计算",
			repo: &stubCounterRepo{
				counters: map[int64]domain.Counter{
					1: {PostId: 1, LikeCnt: 10, CommentCnt: 2},
					2: {PostId: 2, LikeCnt: 4, CommentCnt: 7},
				},
				marked: []domain.CounterMark{
					{PostId: 1, Field: domain.CounterFieldLike},
					{PostId: 2, Field: domain.CounterFieldComment},
					{PostId: 3, Field: domain.CounterFieldComment},
				},
				details: map[domain.CounterField]map[int64]int64{
					domain.CounterFieldLike:    {1: 1},
					domain.CounterFieldComment: {3: 1},
				},
			},
			want: map[int64]domain.Counter{
				1: {PostId: 1, LikeCnt: 1, CommentCnt: 2},
				2: {PostId: 2, LikeCnt: 4, CommentCnt: 0},
				3: {PostId: 3, CommentCnt: 1},
			},
			wantCounted: map[domain.CounterField][]int64{
				domain.CounterFieldLike:    {1},
				domain.CounterFieldComment: {2, 3},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewCounterMaintainer(tc.repo, nil, bitemocks.NewMockPostStore(ctrl), &stubProducer{})
			res, err := svc.GetByIds(context.Background(), []int64{1, 2, 3})
			assert.NoError(t, err)
			assert.Equal(t, tc.want, res)
			assert.Equal(t, tc.wantCounted, tc.repo.counted)
		})
	}
}
