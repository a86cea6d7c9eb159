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

import "time"

// Post 短视频（知识片段），作者和基础信息来自外部的 PostStore，
// LikeCnt 和 CommentCnt 是冗余计数，由计数维护者负责
type Post struct {
	Id       int64
	AuthorId int64
	Title    string
	Ctime    time.Time

	LikeCnt    int64
	CommentCnt int64
	ShareCnt   int64

	// Liked 和 Saved 是当前 viewer 视角下的状态，只有 feed 会填充
	Liked bool
	Saved bool
}

// Valid 缺少作者的数据视为脏数据
func (p Post) Valid() bool {
	return p.Id > 0 && p.AuthorId > 0
}

// FeedCriteria 拉取候选视频的条件，和审核过滤无关
type FeedCriteria struct {
	// AuthorId 大于 0 时只拉取该作者的视频
	AuthorId int64
	// Before 只拉取这个时间点之前发布的，零值表示不限制
	Before time.Time
	Limit  int
}

type Comment struct {
	Id       int64
	PostId   int64
	AuthorId int64
	Text     string
	Ctime    time.Time
}

// Report 举报记录，目前只做审计用途
type Report struct {
	Id      int64
	Uid     int64
	PostId  int64
	Reasons []string
	Ctime   time.Time
}

// Interactive 某个视频在某个用户视角下的互动信息
type Interactive struct {
	PostId     int64
	LikeCnt    int64
	CommentCnt int64
	ShareCnt   int64
	Liked      bool
	Saved      bool
}

// LikeResult 点赞切换之后的状态
type LikeResult struct {
	Liked   bool
	LikeCnt int64
}
