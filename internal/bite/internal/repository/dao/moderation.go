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
	"gorm.io/gorm/clause"
)

type ModerationDAO interface {
	// Hide 重复隐藏不报错
	Hide(ctx context.Context, uid, postId int64) error
	HiddenPostIds(ctx context.Context, uid int64, postIds []int64) ([]int64, error)
	ToggleMute(ctx context.Context, uid, authorId int64) (bool, error)
	MutedAuthorIds(ctx context.Context, uid int64) ([]int64, error)
	SaveReport(ctx context.Context, r Report) (int64, error)
	ListReports(ctx context.Context, postId int64) ([]Report, error)
}

type GORMModerationDAO struct {
	db *egorm.Component
}

func NewModerationDAO(db *egorm.Component) *GORMModerationDAO {
	return &GORMModerationDAO{db: db}
}

func (g *GORMModerationDAO) Hide(ctx context.Context, uid, postId int64) error {
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&HiddenPost{
		Uid:    uid,
		PostId: postId,
		Ctime:  time.Now().UnixMilli(),
	}).Error
	if isDuplicate(err) {
		return nil
	}
	return err
}

func (g *GORMModerationDAO) HiddenPostIds(ctx context.Context, uid int64, postIds []int64) ([]int64, error) {
	var res []int64
	if len(postIds) == 0 {
		return res, nil
	}
	err := g.db.WithContext(ctx).Model(&HiddenPost{}).
		Where("uid = ? AND post_id IN ?", uid, postIds).
		Pluck("post_id", &res).Error
	return res, err
}

func (g *GORMModerationDAO) ToggleMute(ctx context.Context, uid, authorId int64) (bool, error) {
	var muted bool
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m Mute
		err := tx.Where("uid = ? AND author_id = ?", uid, authorId).First(&m).Error
		switch {
		case err == nil:
			muted = false
			res := tx.Where("id = ?", m.Id).Delete(&Mute{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected < 1 {
				return ErrToggleConflict
			}
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			muted = true
			err = tx.Create(&Mute{
				Uid:      uid,
				AuthorId: authorId,
				Ctime:    time.Now().UnixMilli(),
			}).Error
			if isDuplicate(err) {
				return ErrToggleConflict
			}
			return err
		default:
			return err
		}
	})
	return muted, err
}

func (g *GORMModerationDAO) MutedAuthorIds(ctx context.Context, uid int64) ([]int64, error) {
	var res []int64
	err := g.db.WithContext(ctx).Model(&Mute{}).
		Where("uid = ?", uid).
		Order("id ASC").
		Pluck("author_id", &res).Error
	return res, err
}

func (g *GORMModerationDAO) SaveReport(ctx context.Context, r Report) (int64, error) {
	r.Ctime = time.Now().UnixMilli()
	err := g.db.WithContext(ctx).Create(&r).Error
	return r.Id, err
}

func (g *GORMModerationDAO) ListReports(ctx context.Context, postId int64) ([]Report, error) {
	var res []Report
	err := g.db.WithContext(ctx).
		Where("post_id = ?", postId).
		Order("id DESC").
		Find(&res).Error
	return res, err
}
