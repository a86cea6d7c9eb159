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

	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
)

var (
	ErrUnauthenticated       = errors.New("未登录")
	ErrPostNotFound          = errors.New("视频不存在")
	ErrAuthorNotFound        = errors.New("作者不存在")
	ErrCollectionNotFound    = errors.New("收藏夹不存在")
	ErrInvalidCollectionName = errors.New("收藏夹名字不合法")
	ErrInvalidComment        = errors.New("评论内容不合法")
)

//go:generate mockgen -source=./post_store.go -package=bitemocks -destination=../../mocks/post_store.mock.go PostStore
type PostStore interface {
	// FetchCandidatePosts 拉取候选视频，按照发布时间倒序，不做任何审核过滤
	FetchCandidatePosts(ctx context.Context, criteria domain.FeedCriteria) ([]domain.Post, error)
	// GetPost 视频不存在的时候返回 ErrPostNotFound 或者 repository.ErrRecordNotFound
	GetPost(ctx context.Context, id int64) (domain.Post, error)
	AuthorExists(ctx context.Context, authorId int64) (bool, error)

	InsertComment(ctx context.Context, c domain.Comment) (int64, error)
	CountComments(ctx context.Context, postId int64) (int64, error)
	ListComments(ctx context.Context, postId int64, offset, limit int) ([]domain.Comment, error)
}
