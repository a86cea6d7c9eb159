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
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// VisiblePosts 计算 viewer 能够看到的视频，保持输入的顺序。
// 被 viewer 隐藏的视频和被屏蔽作者的视频都不可见，
// 缺少作者之类的脏数据直接排除，不会返回错误。
func VisiblePosts(candidates []domain.Post, viewerId int64,
	hidden domain.IDSet, muted domain.IDSet) []domain.Post {
	res := make([]domain.Post, 0, len(candidates))
	for _, p := range candidates {
		if !p.Valid() {
			elog.DefaultLogger.Warn("排除非法视频数据",
				elog.Int64("viewer", viewerId),
				elog.Int64("postId", p.Id),
				elog.Int64("authorId", p.AuthorId))
			continue
		}
		if hidden.Has(p.Id) || muted.Has(p.AuthorId) {
			continue
		}
		res = append(res, p)
	}
	return res
}
