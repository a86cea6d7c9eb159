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

package dao

import "github.com/ecodeclub/ekit/sqlx"

// Post 视频基础信息。真正的视频文件在对象存储里面，这里只有元数据
type Post struct {
	Id       int64  `gorm:"primaryKey;autoIncrement"`
	AuthorId int64  `gorm:"index:idx_posts_author_ctime,priority:1"`
	Title    string `gorm:"type:varchar(256)"`
	ShareCnt int64
	Utime    int64
	Ctime    int64 `gorm:"index:idx_posts_author_ctime,priority:2;index:idx_posts_ctime"`
}

func (Post) TableName() string {
	return "bite_posts"
}

// Comment 评论只追加，不修改
type Comment struct {
	Id       int64  `gorm:"primaryKey;autoIncrement:false"`
	PostId   int64  `gorm:"index:idx_comments_post_ctime,priority:1"`
	AuthorId int64  `gorm:"index"`
	Text     string `gorm:"type:varchar(2048)"`
	Ctime    int64  `gorm:"index:idx_comments_post_ctime,priority:2"`
}

func (Comment) TableName() string {
	return "bite_comments"
}

// Like 点赞明细表，(uid, post_id) 唯一
type Like struct {
	Id     int64 `gorm:"primaryKey;autoIncrement"`
	Uid    int64 `gorm:"uniqueIndex:idx_likes_uid_post"`
	PostId int64 `gorm:"uniqueIndex:idx_likes_uid_post;index:idx_likes_post"`
	Ctime  int64
}

func (Like) TableName() string {
	return "bite_likes"
}

// PostCounter 冗余计数表，只是 Like 和 Comment 行数的缓存
type PostCounter struct {
	Id         int64 `gorm:"primaryKey;autoIncrement"`
	PostId     int64 `gorm:"uniqueIndex:idx_counters_post"`
	LikeCnt    int64
	CommentCnt int64
	Utime      int64 `gorm:"index:idx_counters_utime"`
	Ctime      int64
}

func (PostCounter) TableName() string {
	return "bite_post_counters"
}

// CounterMark 计数更新失败或者结果不确定的时候记录下来，等待对账
type CounterMark struct {
	Id     int64  `gorm:"primaryKey;autoIncrement"`
	PostId int64  `gorm:"uniqueIndex:idx_marks_post_field"`
	Field  string `gorm:"type:varchar(32);uniqueIndex:idx_marks_post_field"`
	Utime  int64
	Ctime  int64
}

func (CounterMark) TableName() string {
	return "bite_counter_marks"
}

type Collection struct {
	Id int64 `gorm:"primaryKey;autoIncrement"`
	// 在 Uid 和 Name 上创建唯一索引，确保同一个用户不会有同名收藏夹
	Uid  int64  `gorm:"uniqueIndex:idx_collections_uid_name"`
	Name string `gorm:"type:varchar(256);uniqueIndex:idx_collections_uid_name"`
	// Kind 0 是自建收藏夹，其余是默认收藏夹
	Kind  uint8
	Utime int64
	Ctime int64
}

func (Collection) TableName() string {
	return "bite_collections"
}

// CollectionPost 收藏明细，一个视频可以放进同一个用户的多个收藏夹
type CollectionPost struct {
	Id     int64 `gorm:"primaryKey;autoIncrement"`
	Cid    int64 `gorm:"uniqueIndex:idx_collection_posts_cid_post"`
	PostId int64 `gorm:"uniqueIndex:idx_collection_posts_cid_post;index:idx_collection_posts_uid_post,priority:2"`
	Uid    int64 `gorm:"index:idx_collection_posts_uid_post,priority:1"`
	Ctime  int64
}

func (CollectionPost) TableName() string {
	return "bite_collection_posts"
}

// HiddenPost 用户隐藏的视频，没有取消隐藏
type HiddenPost struct {
	Id     int64 `gorm:"primaryKey;autoIncrement"`
	Uid    int64 `gorm:"uniqueIndex:idx_hidden_uid_post"`
	PostId int64 `gorm:"uniqueIndex:idx_hidden_uid_post"`
	Ctime  int64
}

func (HiddenPost) TableName() string {
	return "bite_hidden_posts"
}

// Mute 屏蔽关系，有方向：Uid 屏蔽了 AuthorId
type Mute struct {
	Id       int64 `gorm:"primaryKey;autoIncrement"`
	Uid      int64 `gorm:"uniqueIndex:idx_mutes_uid_author"`
	AuthorId int64 `gorm:"uniqueIndex:idx_mutes_uid_author"`
	Ctime    int64
}

func (Mute) TableName() string {
	return "bite_mutes"
}

type Report struct {
	Id      int64                     `gorm:"primaryKey;autoIncrement"`
	Uid     int64                     `gorm:"index"`
	PostId  int64                     `gorm:"index"`
	Reasons sqlx.JsonColumn[[]string] `gorm:"type:varchar(1024)"`
	Ctime   int64
}

func (Report) TableName() string {
	return "bite_reports"
}
