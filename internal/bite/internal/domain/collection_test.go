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

package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCollection(t *testing.T) {
	testCases := []struct {
		name     string
		collName string
		wantOk   bool
		wantColl Collection
	}{
		{
			name:     "空名字使用默认收藏夹",
			collName: "  ",
			wantOk:   true,
			wantColl: Collection{Uid: 1, Name: "Posts/Videos", Kind: CollectionKindPosts},
		},
		{
			name:     "默认收藏夹",
			collName: "Courses",
			wantOk:   true,
			wantColl: Collection{Uid: 1, Name: "Courses", Kind: CollectionKindCourses},
		},
		{
			name:     "默认收藏夹名字前后有空格",
			collName: " Jobs ",
			wantOk:   true,
			wantColl: Collection{Uid: 1, Name: "Jobs", Kind: CollectionKindJobs},
		},
		{
			name:     "自建收藏夹",
			collName: "我的收藏",
			wantOk:   true,
			wantColl: Collection{Uid: 1, Name: "我的收藏", Kind: CollectionKindCustom},
		},
		{
			name:     "大小写不同不是默认收藏夹",
			collName: "courses",
			wantOk:   true,
			wantColl: Collection{Uid: 1, Name: "courses", Kind: CollectionKindCustom},
		},
		{
			name:     "名字太长",
			collName: strings.Repeat("长", maxCollectionNameLen+1),
			wantOk:   false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := ResolveCollection(1, tc.collName)
			assert.Equal(t, tc.wantOk, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.wantColl, c)
			assert.Equal(t, tc.wantColl.Kind != CollectionKindCustom, c.IsDefault())
		})
	}
}

func TestCounter_Get(t *testing.T) {
	c := Counter{PostId: 1, LikeCnt: 3, CommentCnt: 5}
	assert.Equal(t, int64(3), c.Get(CounterFieldLike))
	assert.Equal(t, int64(5), c.Get(CounterFieldComment))
	assert.Equal(t, int64(0), c.Get(CounterField("share_cnt")))
	assert.False(t, CounterField("share_cnt").Valid())
}
