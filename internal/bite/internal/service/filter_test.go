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
	"testing"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestVisiblePosts(t *testing.T) {
	candidates := []domain.Post{
		{Id: 1, AuthorId: 10},
		{Id: 2, AuthorId: 20},
		{Id: 3, AuthorId: 10},
		{Id: 4, AuthorId: 30},
		{Id: 5, AuthorId: 0},
	}
	testCases := []struct {
		name    string
		hidden  domain.IDSet
		muted   domain.IDSet
		wantIds []int64
	}{
		{
			name:    "没有隐藏也没有屏蔽",
			wantIds: []int64{1, 2, 3, 4},
		},
		{
			name:    "排除隐藏的视频",
			hidden:  domain.NewIDSet(2, 4),
			wantIds: []int64{1, 3},
		},
		{
			name:    "排除屏蔽作者的所有视频",
			muted:   domain.NewIDSet(10),
			wantIds: []int64{2, 4},
		},
		{
			name:    "隐藏和屏蔽同时生效",
			hidden:  domain.NewIDSet(2),
			muted:   domain.NewIDSet(10),
			wantIds: []int64{4},
		},
		{
			name:    "全部不可见",
			hidden:  domain.NewIDSet(2, 4),
			muted:   domain.NewIDSet(10),
			wantIds: []int64{},
		},
		{
			name:    "不存在的 id 不影响结果",
			hidden:  domain.NewIDSet(100),
			muted:   domain.NewIDSet(200),
			wantIds: []int64{1, 2, 3, 4},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := VisiblePosts(candidates, 99, tc.hidden, tc.muted)
			assert.Equal(t, tc.wantIds, slice.Map(res, func(idx int, src domain.Post) int64 {
				return src.Id
			}))
			for _, p := range res {
				assert.False(t, tc.hidden.Has(p.Id))
				assert.False(t, tc.muted.Has(p.AuthorId))
			}
		})
	}
}

func TestVisiblePosts_Empty(t *testing.T) {
	res := VisiblePosts(nil, 1, domain.NewIDSet(1), domain.NewIDSet(2))
	assert.Equal(t, []domain.Post{}, res)
}
