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
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CounterDAO interface {
	// Incr delta 只能是 1 或者 -1，直接在数据库上原子加减
	Incr(ctx context.Context, postId int64, field string, delta int64) error
	Get(ctx context.Context, postId int64) (PostCounter, error)
	GetByIds(ctx context.Context, postIds []int64) ([]PostCounter, error)
	// Set 用权威数据覆盖计数，返回覆盖之前的值
	Set(ctx context.Context, postId int64, field string, val int64) (int64, error)
	// ReconcileLikes 锁住计数行之后重新统计点赞明细
	ReconcileLikes(ctx context.Context, postId int64) (old int64, actual int64, err error)
	// ReconcileComments 锁住计数行之后重新统计评论，和 ReconcileLikes 一样
	ReconcileComments(ctx context.Context, postId int64) (old int64, actual int64, err error)
	// CountByIds 直接统计明细行数，没有明细的视频不在结果里面
	CountByIds(ctx context.Context, field string, postIds []int64) (map[int64]int64, error)
	// ListUpdatedSince 按照 utime 找最近变更过的计数
	ListUpdatedSince(ctx context.Context, utime int64, offset, limit int) ([]PostCounter, error)

	Mark(ctx context.Context, postId int64, field string) error
	Unmark(ctx context.Context, postId int64, field string) error
	Marked(ctx context.Context, postId int64) ([]CounterMark, error)
	MarkedByIds(ctx context.Context, postIds []int64) ([]CounterMark, error)
	ListMarks(ctx context.Context, offset, limit int) ([]CounterMark, error)
}

type GORMCounterDAO struct {
	db *egorm.Component
}

func NewCounterDAO(db *egorm.Component) *GORMCounterDAO {
	return &GORMCounterDAO{db: db}
}

func (g *GORMCounterDAO) Incr(ctx context.Context, postId int64, field string, delta int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return adjustCounter(tx, postId, field, delta)
	})
}

func (g *GORMCounterDAO) Get(ctx context.Context, postId int64) (PostCounter, error) {
	var res PostCounter
	err := g.db.WithContext(ctx).Where("post_id = ?", postId).First(&res).Error
	return res, err
}

func (g *GORMCounterDAO) GetByIds(ctx context.Context, postIds []int64) ([]PostCounter, error) {
	var res []PostCounter
	if len(postIds) == 0 {
		return res, nil
	}
	err := g.db.WithContext(ctx).Where("post_id IN ?", postIds).Find(&res).Error
	return res, err
}

func (g *GORMCounterDAO) Set(ctx context.Context, postId int64, field string, val int64) (int64, error) {
	var old int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		old, err = lockCounter(tx, postId, field)
		if err != nil {
			return err
		}
		return setCounter(tx, postId, field, val)
	})
	return old, err
}

func (g *GORMCounterDAO) ReconcileLikes(ctx context.Context, postId int64) (int64, int64, error) {
	var old, actual int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		old, actual, err = reconcileLikes(tx, postId)
		return err
	})
	return old, actual, err
}

func (g *GORMCounterDAO) ReconcileComments(ctx context.Context, postId int64) (int64, int64, error) {
	var old, actual int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		old, actual, err = reconcileField(tx, postId, fieldCommentCnt)
		return err
	})
	return old, actual, err
}

func (g *GORMCounterDAO) CountByIds(ctx context.Context, field string, postIds []int64) (map[int64]int64, error) {
	res := make(map[int64]int64, len(postIds))
	if len(postIds) == 0 {
		return res, nil
	}
	model, err := detailModel(field)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		PostId int64
		Cnt    int64
	}
	err = g.db.WithContext(ctx).Model(model).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", postIds).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		res[r.PostId] = r.Cnt
	}
	return res, nil
}

func (g *GORMCounterDAO) ListUpdatedSince(ctx context.Context, utime int64, offset, limit int) ([]PostCounter, error) {
	var res []PostCounter
	err := g.db.WithContext(ctx).
		Where("utime >= ?", utime).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (g *GORMCounterDAO) Mark(ctx context.Context, postId int64, field string) error {
	now := time.Now().UnixMilli()
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}, {Name: "field"}},
		DoUpdates: clause.Assignments(map[string]any{
			"utime": now,
		}),
	}).Create(&CounterMark{
		PostId: postId,
		Field:  field,
		Utime:  now,
		Ctime:  now,
	}).Error
}

func (g *GORMCounterDAO) Unmark(ctx context.Context, postId int64, field string) error {
	return g.db.WithContext(ctx).
		Where("post_id = ? AND field = ?", postId, field).
		Delete(&CounterMark{}).Error
}

func (g *GORMCounterDAO) Marked(ctx context.Context, postId int64) ([]CounterMark, error) {
	var res []CounterMark
	err := g.db.WithContext(ctx).Where("post_id = ?", postId).Find(&res).Error
	return res, err
}

func (g *GORMCounterDAO) MarkedByIds(ctx context.Context, postIds []int64) ([]CounterMark, error) {
	var res []CounterMark
	if len(postIds) == 0 {
		return res, nil
	}
	err := g.db.WithContext(ctx).Where("post_id IN ?", postIds).Find(&res).Error
	return res, err
}

func (g *GORMCounterDAO) ListMarks(ctx context.Context, offset, limit int) ([]CounterMark, error) {
	var res []CounterMark
	err := g.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}

// adjustCounter 原子加减，不在应用里面读出来再写回去。
// 减到负数的时候说明计数已经漂移，返回 ErrCounterUnderflow
func adjustCounter(tx *gorm.DB, postId int64, field string, delta int64) error {
	if err := checkField(field); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	if delta > 0 {
		counter := PostCounter{PostId: postId, Utime: now, Ctime: now}
		setField(&counter, field, delta)
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				field:   gorm.Expr(field+" + ?", delta),
				"utime": now,
			}),
		}).Create(&counter).Error
	}
	res := tx.Model(&PostCounter{}).
		Where("post_id = ? AND "+field+" >= ?", postId, -delta).
		Updates(map[string]any{
			field:   gorm.Expr(field+" - ?", -delta),
			"utime": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return ErrCounterUnderflow
	}
	return nil
}

// lockCounter 锁住计数行（不存在就不锁），返回当前的值
func lockCounter(tx *gorm.DB, postId int64, field string) (int64, error) {
	if err := checkField(field); err != nil {
		return 0, err
	}
	var counter PostCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("post_id = ?", postId).
		First(&counter).Error
	switch {
	case err == nil:
		return getField(counter, field), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, nil
	default:
		return 0, err
	}
}

func setCounter(tx *gorm.DB, postId int64, field string, val int64) error {
	now := time.Now().UnixMilli()
	counter := PostCounter{PostId: postId, Utime: now, Ctime: now}
	setField(&counter, field, val)
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			field:   val,
			"utime": now,
		}),
	}).Create(&counter).Error
}

func reconcileLikes(tx *gorm.DB, postId int64) (int64, int64, error) {
	return reconcileField(tx, postId, fieldLikeCnt)
}

// reconcileField 先锁计数行再数明细，和加减计数的事务互斥
func reconcileField(tx *gorm.DB, postId int64, field string) (int64, int64, error) {
	model, err := detailModel(field)
	if err != nil {
		return 0, 0, err
	}
	old, err := lockCounter(tx, postId, field)
	if err != nil {
		return 0, 0, err
	}
	var actual int64
	err = tx.Model(model).Where("post_id = ?", postId).Count(&actual).Error
	if err != nil {
		return 0, 0, err
	}
	if old == actual {
		return old, actual, nil
	}
	return old, actual, setCounter(tx, postId, field, actual)
}

// detailModel 计数字段对应的明细表
func detailModel(field string) (any, error) {
	switch field {
	case fieldLikeCnt:
		return &Like{}, nil
	case fieldCommentCnt:
		return &Comment{}, nil
	default:
		return nil, fmt.Errorf("未知的计数字段 %s", field)
	}
}

const (
	fieldLikeCnt    = "like_cnt"
	fieldCommentCnt = "comment_cnt"
)

func checkField(field string) error {
	switch field {
	case fieldLikeCnt, fieldCommentCnt:
		return nil
	default:
		return fmt.Errorf("未知的计数字段 %s", field)
	}
}

func setField(counter *PostCounter, field string, val int64) {
	switch field {
	case fieldLikeCnt:
		counter.LikeCnt = val
	case fieldCommentCnt:
		counter.CommentCnt = val
	}
}

func getField(counter PostCounter, field string) int64 {
	switch field {
	case fieldLikeCnt:
		return counter.LikeCnt
	case fieldCommentCnt:
		return counter.CommentCnt
	default:
		return 0
	}
}
