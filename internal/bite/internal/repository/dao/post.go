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

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ego-component/egorm"
)

// PostDAO 视频和评论的存储。线上视频数据由内容平台维护，这里是默认的数据库实现
type PostDAO interface {
	Create(ctx context.Context, p Post) (int64, error)
	GetById(ctx context.Context, id int64) (Post, error)
	FindCandidates(ctx context.Context, authorId int64, before int64, limit int) ([]Post, error)
	AuthorExists(ctx context.Context, authorId int64) (bool, error)

	InsertComment(ctx context.Context, c Comment) (int64, error)
	CountComments(ctx context.Context, postId int64) (int64, error)
	ListComments(ctx context.Context, postId int64, offset, limit int) ([]Comment, error)
}

type GORMPostDAO struct {
	db   *egorm.Component
	node *snowflake.Node
}

func NewPostDAO(db *egorm.Component, node *snowflake.Node) *GORMPostDAO {
	return &GORMPostDAO{db: db, node: node}
}

func (g *GORMPostDAO) Create(ctx context.Context, p Post) (int64, error) {
	now := time.Now().UnixMilli()
	if p.Ctime == 0 {
		p.Ctime = now
	}
	p.Utime = now
	err := g.db.WithContext(ctx).Create(&p).Error
	return p.Id, err
}

func (g *GORMPostDAO) GetById(ctx context.Context, id int64) (Post, error) {
	var res Post
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (g *GORMPostDAO) FindCandidates(ctx context.Context, authorId int64, before int64, limit int) ([]Post, error) {
	var res []Post
	db := g.db.WithContext(ctx).Model(&Post{})
	if authorId > 0 {
		db = db.Where("author_id = ?", authorId)
	}
	if before > 0 {
		db = db.Where("ctime < ?", before)
	}
	err := db.Order("ctime DESC").Order("id DESC").Limit(limit).Find(&res).Error
	return res, err
}

func (g *GORMPostDAO) AuthorExists(ctx context.Context, authorId int64) (bool, error) {
	var cnt int64
	err := g.db.WithContext(ctx).Model(&Post{}).
		Where("author_id = ?", authorId).
		Count(&cnt).Error
	return cnt > 0, err
}

func (g *GORMPostDAO) InsertComment(ctx context.Context, c Comment) (int64, error) {
	c.Id = g.node.Generate().Int64()
	c.Ctime = time.Now().UnixMilli()
	err := g.db.WithContext(ctx).Create(&c).Error
	return c.Id, err
}

func (g *GORMPostDAO) CountComments(ctx context.Context, postId int64) (int64, error) {
	var cnt int64
	err := g.db.WithContext(ctx).Model(&Comment{}).
		Where("post_id = ?", postId).
		Count(&cnt).Error
	return cnt, err
}

func (g *GORMPostDAO) ListComments(ctx context.Context, postId int64, offset, limit int) ([]Comment, error) {
	var res []Comment
	err := g.db.WithContext(ctx).
		Where("post_id = ?", postId).
		Order("ctime DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}
