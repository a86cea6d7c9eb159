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
	"errors"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository/cache"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

var ErrRecordNotFound = dao.ErrRecordNotFound

// 同一个用户并发切换同一个状态的时候，输掉的那个请求重新看一眼再切换
const maxToggleAttempts = 3

// MembershipRepository 点赞、隐藏、屏蔽这些明细关系的权威存储
type MembershipRepository interface {
	ToggleLike(ctx context.Context, uid, postId int64) (domain.LikeResult, error)
	Liked(ctx context.Context, uid, postId int64) (bool, error)
	LikedPostIds(ctx context.Context, uid int64, postIds []int64) (domain.IDSet, error)
	CountLikes(ctx context.Context, postId int64) (int64, error)

	Hide(ctx context.Context, uid, postId int64) error
	HiddenPostIds(ctx context.Context, uid int64, postIds []int64) (domain.IDSet, error)
	ToggleMute(ctx context.Context, uid, authorId int64) (bool, error)
	MutedAuthorIds(ctx context.Context, uid int64) (domain.IDSet, error)
	MutedAuthorList(ctx context.Context, uid int64) ([]int64, error)

	SaveReport(ctx context.Context, r domain.Report) (int64, error)
	ListReports(ctx context.Context, postId int64) ([]domain.Report, error)
}

type membershipRepository struct {
	likeDAO dao.LikeDAO
	modDAO  dao.ModerationDAO
	cache   cache.MuteCache
	logger  *elog.Component
}

func NewMembershipRepository(likeDAO dao.LikeDAO,
	modDAO dao.ModerationDAO,
	c cache.MuteCache) MembershipRepository {
	return &membershipRepository{
		likeDAO: likeDAO,
		modDAO:  modDAO,
		cache:   c,
		logger:  elog.DefaultLogger,
	}
}

func (m *membershipRepository) ToggleLike(ctx context.Context, uid, postId int64) (domain.LikeResult, error) {
	var err error
	for i := 0; i < maxToggleAttempts; i++ {
		var (
			liked bool
			cnt   int64
		)
		liked, cnt, err = m.likeDAO.Toggle(ctx, uid, postId)
		if err == nil {
			return domain.LikeResult{Liked: liked, LikeCnt: cnt}, nil
		}
		if !errors.Is(err, dao.ErrToggleConflict) {
			return domain.LikeResult{}, err
		}
	}
	return domain.LikeResult{}, err
}

func (m *membershipRepository) Liked(ctx context.Context, uid, postId int64) (bool, error) {
	_, err := m.likeDAO.Get(ctx, uid, postId)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, dao.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (m *membershipRepository) LikedPostIds(ctx context.Context, uid int64, postIds []int64) (domain.IDSet, error) {
	likes, err := m.likeDAO.GetUserLikes(ctx, uid, postIds)
	if err != nil {
		return nil, err
	}
	return domain.NewIDSet(slice.Map(likes, func(idx int, src dao.Like) int64 {
		return src.PostId
	})...), nil
}

func (m *membershipRepository) CountLikes(ctx context.Context, postId int64) (int64, error) {
	return m.likeDAO.Count(ctx, postId)
}

func (m *membershipRepository) Hide(ctx context.Context, uid, postId int64) error {
	return m.modDAO.Hide(ctx, uid, postId)
}

func (m *membershipRepository) HiddenPostIds(ctx context.Context, uid int64, postIds []int64) (domain.IDSet, error) {
	ids, err := m.modDAO.HiddenPostIds(ctx, uid, postIds)
	if err != nil {
		return nil, err
	}
	return domain.NewIDSet(ids...), nil
}

func (m *membershipRepository) ToggleMute(ctx context.Context, uid, authorId int64) (bool, error) {
	var (
		muted bool
		err   error
	)
	for i := 0; i < maxToggleAttempts; i++ {
		muted, err = m.modDAO.ToggleMute(ctx, uid, authorId)
		if !errors.Is(err, dao.ErrToggleConflict) {
			break
		}
	}
	if err != nil {
		return false, err
	}
	m.invalidateMutes(uid)
	return muted, nil
}

func (m *membershipRepository) MutedAuthorIds(ctx context.Context, uid int64) (domain.IDSet, error) {
	ids, err := m.MutedAuthorList(ctx, uid)
	if err != nil {
		return nil, err
	}
	return domain.NewIDSet(ids...), nil
}

func (m *membershipRepository) MutedAuthorList(ctx context.Context, uid int64) ([]int64, error) {
	ids, err := m.cache.GetMutedAuthors(ctx, uid)
	if err == nil {
		return ids, nil
	}
	if !errors.Is(err, cache.ErrKeyNotFound) {
		m.logger.Warn("读取屏蔽缓存失败", elog.FieldErr(err), elog.Int64("uid", uid))
	}
	ids, err = m.modDAO.MutedAuthorIds(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err1 := m.cache.SetMutedAuthors(ctx, uid, ids); err1 != nil {
		m.logger.Warn("回写屏蔽缓存失败", elog.FieldErr(err1), elog.Int64("uid", uid))
	}
	return ids, nil
}

// invalidateMutes 缓存删除失败的时候重试几次，
// 删不掉的话旧数据最多保留到缓存过期
func (m *membershipRepository) invalidateMutes(uid int64) {
	const attempts = 3
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		err := m.cache.Invalidate(ctx, uid)
		cancel()
		if err == nil {
			return
		}
		m.logger.Error("删除屏蔽缓存失败", elog.FieldErr(err), elog.Int64("uid", uid))
	}
}

func (m *membershipRepository) SaveReport(ctx context.Context, r domain.Report) (int64, error) {
	return m.modDAO.SaveReport(ctx, dao.Report{
		Uid:    r.Uid,
		PostId: r.PostId,
		Reasons: sqlx.JsonColumn[[]string]{
			Val:   r.Reasons,
			Valid: len(r.Reasons) > 0,
		},
	})
}

func (m *membershipRepository) ListReports(ctx context.Context, postId int64) ([]domain.Report, error) {
	res, err := m.modDAO.ListReports(ctx, postId)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.Report) domain.Report {
		return domain.Report{
			Id:      src.Id,
			Uid:     src.Uid,
			PostId:  src.PostId,
			Reasons: src.Reasons.Val,
			Ctime:   time.UnixMilli(src.Ctime),
		}
	}), nil
}
