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
	"github.com/ecodeclub/kbites/internal/bite/internal/repository"
	bitemocks "github.com/ecodeclub/kbites/internal/bite/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type stubMembership struct {
	repository.MembershipRepository
	toggleErr error
}

func (s *stubMembership) ToggleLike(ctx context.Context, uid, postId int64) (domain.LikeResult, error) {
	if s.toggleErr != nil {
		return domain.LikeResult{}, s.toggleErr
	}
	return domain.LikeResult{Liked: true, LikeCnt: 1}, nil
}

type stubCounters struct {
	CounterMaintainer
	marks []domain.CounterMark
}

func (s *stubCounters) MarkForReconcile(ctx context.Context, postId int64, field domain.CounterField, reason string) {
	s.marks = append(s.marks, domain.CounterMark{PostId: postId, Field: field})
}

func TestEngagementService_ToggleLike(t *testing.T) {
	testCases := []struct {
		name      string
		uid       int64
		postId    int64
		mock      func(ctrl *gomock.Controller) PostStore
		toggleErr error

		wantRes   domain.LikeResult
		wantMarks []domain.CounterMark
		wantErr   error
	}{
		{
			name:   "点赞成功",
			uid:    1,
			postId: 2,
			mock: func(ctrl *gomock.Controller) PostStore {
				posts := bitemocks.NewMockPostStore(ctrl)
				posts.EXPECT().GetPost(gomock.Any(), int64(2)).Return(domain.Post{Id: 2, AuthorId: 3}, nil)
				return posts
			},
			wantRes: domain.LikeResult{Liked: true, LikeCnt: 1},
		},
		{
			name:   "未登录",
			uid:    0,
			postId: 2,
			mock: func(ctrl *gomock.Controller) PostStore {
				return bitemocks.NewMockPostStore(ctrl)
			},
			wantErr: ErrUnauthenticated,
		},
		{
			name:   "视频不存在",
			uid:    1,
			postId: 2,
			mock: func(ctrl *gomock.Controller) PostStore {
				posts := bitemocks.NewMockPostStore(ctrl)
				posts.EXPECT().GetPost(gomock.Any(), int64(2)).Return(domain.Post{}, repository.ErrRecordNotFound)
				return posts
			},
			wantErr: ErrPostNotFound,
		},
		{
			name:   "非法的视频 id",
			uid:    1,
			postId: -1,
			mock: func(ctrl *gomock.Controller) PostStore {
				return bitemocks.NewMockPostStore(ctrl)
			},
			wantErr: ErrPostNotFound,
		},
		{
			name:   "超时_标记等待对账",
			uid:    1,
			postId: 2,
			mock: func(ctrl *gomock.Controller) PostStore {
				posts := bitemocks.NewMockPostStore(ctrl)
				posts.EXPECT().GetPost(gomock.Any(), int64(2)).Return(domain.Post{Id: 2, AuthorId: 3}, nil)
				return posts
			},
			toggleErr: context.DeadlineExceeded,
			wantMarks: []domain.CounterMark{{PostId: 2, Field: domain.CounterFieldLike}},
			wantErr:   context.DeadlineExceeded,
		},
		{
			name:   "数据库错误_不需要对账",
			uid:    1,
			postId: 2,
			mock: func(ctrl *gomock.Controller) PostStore {
				posts := bitemocks.NewMockPostStore(ctrl)
				posts.EXPECT().GetPost(gomock.Any(), int64(2)).Return(domain.Post{Id: 2, AuthorId: 3}, nil)
				return posts
			},
			toggleErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			counters := &stubCounters{}
			svc := NewEngagementService(&stubMembership{toggleErr: tc.toggleErr}, nil, counters, tc.mock(ctrl))
			res, err := svc.ToggleLike(context.Background(), tc.uid, tc.postId)
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantRes, res)
			assert.Equal(t, tc.wantMarks, counters.marks)
		})
	}
}

func TestEngagementService_ToggleMute(t *testing.T) {
	testCases := []struct {
		name     string
		authorId int64
		mock     func(ctrl *gomock.Controller) PostStore
		wantErr  error
	}{
		{
			name:     "作者不存在",
			authorId: 3,
			mock: func(ctrl *gomock.Controller) PostStore {
				posts := bitemocks.NewMockPostStore(ctrl)
				posts.EXPECT().AuthorExists(gomock.Any(), int64(3)).Return(false, nil)
				return posts
			},
			wantErr: ErrAuthorNotFound,
		},
		{
			name:     "非法的作者 id",
			authorId: 0,
			mock: func(ctrl *gomock.Controller) PostStore {
				return bitemocks.NewMockPostStore(ctrl)
			},
			wantErr: ErrAuthorNotFound,
		},
		{
			name:     "查询失败",
			authorId: 3,
			mock: func(ctrl *gomock.Controller) PostStore {
				posts := bitemocks.NewMockPostStore(ctrl)
				posts.EXPECT().AuthorExists(gomock.Any(), int64(3)).Return(false, errors.New("db error"))
				return posts
			},
			wantErr: errors.New("db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewEngagementService(&stubMembership{}, nil, &stubCounters{}, tc.mock(ctrl))
			_, err := svc.ToggleMute(context.Background(), 1, tc.authorId)
			assert.Equal(t, tc.wantErr, err)
		})
	}
}
