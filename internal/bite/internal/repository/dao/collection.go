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

	"github.com/ego-component/egorm"
	"gorm.io/gorm/clause"
)

type CollectionDAO interface {
	// Ensure 依赖 (uid, name) 唯一索引，冲突的时候不插入，而后读出已有的收藏夹
	Ensure(ctx context.Context, c Collection) (Collection, error)
	GetById(ctx context.Context, uid, id int64) (Collection, error)
	List(ctx context.Context, uid int64) ([]Collection, error)

	AddPost(ctx context.Context, cp CollectionPost) error
	// RemovePostFromAll 从这个用户的所有收藏夹里面删除这个视频
	RemovePostFromAll(ctx context.Context, uid, postId int64) (int64, error)
	Saved(ctx context.Context, uid, postId int64) (bool, error)
	SavedPostIds(ctx context.Context, uid int64, postIds []int64) ([]int64, error)
	ListPosts(ctx context.Context, uid, cid int64, offset, limit int) ([]CollectionPost, error)
}

type GORMCollectionDAO struct {
	db *egorm.Component
}

func NewCollectionDAO(db *egorm.Component) *GORMCollectionDAO {
	return &GORMCollectionDAO{db: db}
}

func (g *GORMCollectionDAO) Ensure(ctx context.Context, c Collection) (Collection, error) {
	now := time.Now().UnixMilli()
	c.Id = 0
	c.Ctime = now
	c.Utime = now
	db := g.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&c).Error
	if err != nil && !isDuplicate(err) {
		return Collection{}, err
	}
	var res Collection
	err = db.Where("uid = ? AND name = ?", c.Uid, c.Name).First(&res).Error
	return res, err
}

func (g *GORMCollectionDAO) GetById(ctx context.Context, uid, id int64) (Collection, error) {
	var res Collection
	err := g.db.WithContext(ctx).
		Where("uid = ? AND id = ?", uid, id).
		First(&res).Error
	return res, err
}

func (g *GORMCollectionDAO) List(ctx context.Context, uid int64) ([]Collection, error) {
	var res []Collection
	err := g.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

func (g *GORMCollectionDAO) AddPost(ctx context.Context, cp CollectionPost) error {
	cp.Id = 0
	cp.Ctime = time.Now().UnixMilli()
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cid"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&cp).Error
	if isDuplicate(err) {
		return nil
	}
	return err
}

func (g *GORMCollectionDAO) RemovePostFromAll(ctx context.Context, uid, postId int64) (int64, error) {
	res := g.db.WithContext(ctx).
		Where("uid = ? AND post_id = ?", uid, postId).
		Delete(&CollectionPost{})
	return res.RowsAffected, res.Error
}

func (g *GORMCollectionDAO) Saved(ctx context.Context, uid, postId int64) (bool, error) {
	var cnt int64
	err := g.db.WithContext(ctx).Model(&CollectionPost{}).
		Where("uid = ? AND post_id = ?", uid, postId).
		Count(&cnt).Error
	return cnt > 0, err
}

func (g *GORMCollectionDAO) SavedPostIds(ctx context.Context, uid int64, postIds []int64) ([]int64, error) {
	var res []int64
	if len(postIds) == 0 {
		return res, nil
	}
	err := g.db.WithContext(ctx).Model(&CollectionPost{}).
		Distinct("post_id").
		Where("uid = ? AND post_id IN ?", uid, postIds).
		Pluck("post_id", &res).Error
	return res, err
}

func (g *GORMCollectionDAO) ListPosts(ctx context.Context, uid, cid int64, offset, limit int) ([]CollectionPost, error) {
	res := make([]CollectionPost, 0, 32)
	err := g.db.WithContext(ctx).
		Where("uid = ? AND cid = ?", uid, cid).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}
