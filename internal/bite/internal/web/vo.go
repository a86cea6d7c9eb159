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

package web

import (
	"time"

	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
)

type FeedReq struct {
	// AuthorId 只看某个作者的视频
	AuthorId int64 `json:"authorId,omitempty"`
	// Before 毫秒时间戳，用于翻页
	Before int64 `json:"before,omitempty"`
	Limit  int   `json:"limit,omitempty"`
}

func (r FeedReq) toDomain() domain.FeedCriteria {
	c := domain.FeedCriteria{
		AuthorId: r.AuthorId,
		Limit:    r.Limit,
	}
	if r.Before > 0 {
		c.Before = time.UnixMilli(r.Before)
	}
	return c
}

type Post struct {
	Id           int64  `json:"id"`
	AuthorId     int64  `json:"authorId"`
	Title        string `json:"title"`
	Ctime        int64  `json:"ctime"`
	LikeCount    int64  `json:"likeCount"`
	CommentCount int64  `json:"commentCount"`
	ShareCount   int64  `json:"shareCount"`
	Liked        bool   `json:"liked"`
	Saved        bool   `json:"saved"`
}

func newPost(p domain.Post) Post {
	return Post{
		Id:           p.Id,
		AuthorId:     p.AuthorId,
		Title:        p.Title,
		Ctime:        p.Ctime.UnixMilli(),
		LikeCount:    p.LikeCnt,
		CommentCount: p.CommentCnt,
		ShareCount:   p.ShareCnt,
		Liked:        p.Liked,
		Saved:        p.Saved,
	}
}

type FeedResp struct {
	Posts []Post `json:"posts"`
}

type PostReq struct {
	PostId int64 `json:"postId"`
}

type LikeResp struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

type MuteReq struct {
	AuthorId int64 `json:"authorId"`
}

type MuteResp struct {
	Muted bool `json:"muted"`
}

type MuteListResp struct {
	AuthorIds []int64 `json:"authorIds"`
}

type HideResp struct {
	Hidden bool `json:"hidden"`
}

type ReportReq struct {
	PostId  int64    `json:"postId"`
	Reasons []string `json:"reasons"`
}

type ReportResp struct {
	Reported bool `json:"reported"`
	Hidden   bool `json:"hidden"`
}

type SaveReq struct {
	PostId int64 `json:"postId"`
	// CollectionName 不传就放到默认的 Posts/Videos 收藏夹
	CollectionName string `json:"collectionName"`
}

type SaveResp struct {
	Saved        bool  `json:"saved"`
	CollectionId int64 `json:"collectionId,omitempty"`
}

type CommentReq struct {
	PostId int64  `json:"postId"`
	Text   string `json:"text"`
}

type CommentResp struct {
	CommentId    int64 `json:"commentId"`
	CommentCount int64 `json:"commentCount"`
}

type CommentListReq struct {
	PostId int64 `json:"postId"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

type Comment struct {
	Id       int64  `json:"id"`
	AuthorId int64  `json:"authorId"`
	Text     string `json:"text"`
	Ctime    int64  `json:"ctime"`
}

type CommentListResp struct {
	Comments []Comment `json:"comments"`
}

type Interactive struct {
	PostId       int64 `json:"postId"`
	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
	ShareCount   int64 `json:"shareCount"`
	Liked        bool  `json:"liked"`
	Saved        bool  `json:"saved"`
}

type Collection struct {
	Id        int64  `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

type CollectionListResp struct {
	Collections []Collection `json:"collections"`
}

type CollectionPostsReq struct {
	CollectionId int64 `json:"collectionId"`
	Offset       int   `json:"offset"`
	Limit        int   `json:"limit"`
}

type CollectionPostsResp struct {
	PostIds []int64 `json:"postIds"`
}

type SavePostReq struct {
	// AuthorId 不传就是当前用户
	AuthorId int64  `json:"authorId"`
	Title    string `json:"title"`
}

type Report struct {
	Id      int64    `json:"id"`
	Uid     int64    `json:"uid"`
	Reasons []string `json:"reasons"`
	Ctime   int64    `json:"ctime"`
}

type ReportListResp struct {
	Reports []Report `json:"reports"`
}

type ReconcileResp struct {
	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
}
