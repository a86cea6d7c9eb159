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
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository/dao"
)

// PostRepository 基于数据库的视频存储，计数字段不在这里填充
type PostRepository struct {
	dao dao.PostDAO
}

func NewPostRepository(d dao.PostDAO) *PostRepository {
	return &PostRepository{dao: d}
}

func (p *PostRepository) Create(ctx context.Context, post domain.Post) (int64, error) {
	return p.dao.Create(ctx, dao.Post{
		Id:       post.Id,
		AuthorId: post.AuthorId,
		Title:    post.Title,
		ShareCnt: post.ShareCnt,
		Ctime:    post.Ctime.UnixMilli(),
	})
}

func (p *PostRepository) FetchCandidatePosts(ctx context.Context, criteria domain.FeedCriteria) ([]domain.Post, error) {
	var before int64
	if !criteria.Before.IsZero() {
		before = criteria.Before.UnixMilli()
	}
	res, err := p.dao.FindCandidates(ctx, criteria.AuthorId, before, criteria.Limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.Post) domain.Post {
		return p.toDomain(src)
	}), nil
}

func (p *PostRepository) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	res, err := p.dao.GetById(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	return p.toDomain(res), nil
}

func (p *PostRepository) AuthorExists(ctx context.Context, authorId int64) (bool, error) {
	return p.dao.AuthorExists(ctx, authorId)
}

func (p *PostRepository) InsertComment(ctx context.Context, c domain.Comment) (int64, error) {
	return p.dao.InsertComment(ctx, dao.Comment{
		PostId:   c.PostId,
		AuthorId: c.AuthorId,
		Text:     c.Text,
	})
}

func (p *PostRepository) CountComments(ctx context.Context, postId int64) (int64, error) {
	return p.dao.CountComments(ctx, postId)
}

func (p *PostRepository) ListComments(ctx context.Context, postId int64, offset, limit int) ([]domain.Comment, error) {
	res, err := p.dao.ListComments(ctx, postId, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.Comment) domain.Comment {
		return domain.Comment{
			Id:       src.Id,
			PostId:   src.PostId,
			AuthorId: src.AuthorId,
			Text:     src.Text,
			Ctime:    time.UnixMilli(src.Ctime),
		}
	}), nil
}

func (p *PostRepository) toDomain(src dao.Post) domain.Post {
	return domain.Post{
		Id:       src.Id,
		AuthorId: src.AuthorId,
		Title:    src.Title,
		Ctime:    time.UnixMilli(src.Ctime),
		ShareCnt: src.ShareCnt,
	}
}
