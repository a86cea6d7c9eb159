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
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

type LikeDAO interface {
	// Toggle 在一个事务里面切换点赞明细并且原子更新计数，
	// 返回切换之后的状态和事务内读到的点赞数
	Toggle(ctx context.Context, uid, postId int64) (bool, int64, error)
	Get(ctx context.Context, uid, postId int64) (Like, error)
	Count(ctx context.Context, postId int64) (int64, error)
	GetUserLikes(ctx context.Context, uid int64, postIds []int64) ([]Like, error)
}

type GORMLikeDAO struct {
	db *egorm.Component
}

func NewLikeDAO(db *egorm.Component) *GORMLikeDAO {
	return &GORMLikeDAO{db: db}
}

func (g *GORMLikeDAO) Toggle(ctx context.Context, uid, postId int64) (bool, int64, error) {
	var (
		liked bool
		cnt   int64
	)
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like Like
		err := tx.Where("uid = ? AND post_id = ?", uid, postId).First(&like).Error
		switch {
		case err == nil:
			liked = false
			err = g.deleteLike(tx, like)
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			err = g.insertLike(tx, uid, postId)
		}
		if err != nil {
			return err
		}
		cnt, err = g.likeCnt(tx, postId)
		return err
	})
	return liked, cnt, err
}

func (g *GORMLikeDAO) insertLike(tx *gorm.DB, uid, postId int64) error {
	err := tx.Create(&Like{
		Uid:    uid,
		PostId: postId,
		Ctime:  time.Now().UnixMilli(),
	}).Error
	if isDuplicate(err) {
		return ErrToggleConflict
	}
	if err != nil {
		return err
	}
	return g.adjust(tx, postId, 1)
}

func (g *GORMLikeDAO) deleteLike(tx *gorm.DB, like Like) error {
	res := tx.Where("id = ?", like.Id).Delete(&Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return ErrToggleConflict
	}
	return g.adjust(tx, like.PostId, -1)
}

// adjust 计数减不下去说明已经漂移了，直接在当前事务里面按照明细重算
func (g *GORMLikeDAO) adjust(tx *gorm.DB, postId int64, delta int64) error {
	err := adjustCounter(tx, postId, fieldLikeCnt, delta)
	if errors.Is(err, ErrCounterUnderflow) {
		_, _, err = reconcileLikes(tx, postId)
	}
	return err
}

func (g *GORMLikeDAO) likeCnt(tx *gorm.DB, postId int64) (int64, error) {
	var counter PostCounter
	err := tx.Where("post_id = ?", postId).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return counter.LikeCnt, err
}

func (g *GORMLikeDAO) Get(ctx context.Context, uid, postId int64) (Like, error) {
	var res Like
	err := g.db.WithContext(ctx).
		Where("uid = ? AND post_id = ?", uid, postId).
		First(&res).Error
	return res, err
}

func (g *GORMLikeDAO) Count(ctx context.Context, postId int64) (int64, error) {
	var res int64
	err := g.db.WithContext(ctx).Model(&Like{}).
		Where("post_id = ?", postId).
		Count(&res).Error
	return res, err
}

func (g *GORMLikeDAO) GetUserLikes(ctx context.Context, uid int64, postIds []int64) ([]Like, error) {
	var res []Like
	if len(postIds) == 0 {
		return res, nil
	}
	err := g.db.WithContext(ctx).
		Where("uid = ? AND post_id IN ?", uid, postIds).
		Find(&res).Error
	return res, err
}
