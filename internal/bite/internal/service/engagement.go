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
	"strings"
	"unicode/utf8"

	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

const maxCommentLen = 2048

// EngagementService 点赞、屏蔽、隐藏、举报和评论
type EngagementService interface {
	// ToggleLike 没点赞就点赞，点过赞就取消，返回切换之后的状态
	ToggleLike(ctx context.Context, uid, postId int64) (domain.LikeResult, error)
	// ToggleMute 返回切换之后是否处于屏蔽状态
	ToggleMute(ctx context.Context, uid, authorId int64) (bool, error)
	// Hide 隐藏是永久的，重复隐藏也返回成功
	Hide(ctx context.Context, uid, postId int64) error
	// Report 记录举报，并且一定会隐藏该视频
	Report(ctx context.Context, r domain.Report) error
	Comment(ctx context.Context, c domain.Comment) (int64, int64, error)
	ListComments(ctx context.Context, postId int64, offset, limit int) ([]domain.Comment, error)

	Detail(ctx context.Context, uid, postId int64) (domain.Interactive, error)
	MutedAuthors(ctx context.Context, uid int64) ([]int64, error)
	// ListReports 给管理后台查看某个视频的举报记录
	ListReports(ctx context.Context, postId int64) ([]domain.Report, error)
}

type engagementService struct {
	membership  repository.MembershipRepository
	collections repository.CollectionRepository
	counters    CounterMaintainer
	posts       PostStore
	logger      *elog.Component
}

func NewEngagementService(membership repository.MembershipRepository,
	collections repository.CollectionRepository,
	counters CounterMaintainer,
	posts PostStore) EngagementService {
	return &engagementService{
		membership:  membership,
		collections: collections,
		counters:    counters,
		posts:       posts,
		logger:      elog.DefaultLogger,
	}
}

func (s *engagementService) ToggleLike(ctx context.Context, uid, postId int64) (domain.LikeResult, error) {
	if uid <= 0 {
		return domain.LikeResult{}, ErrUnauthenticated
	}
	if _, err := getPost(ctx, s.posts, postId); err != nil {
		return domain.LikeResult{}, err
	}
	res, err := s.membership.ToggleLike(ctx, uid, postId)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			// 不知道事务有没有提交，交给对账
			s.counters.MarkForReconcile(ctx, postId, domain.CounterFieldLike, "toggle_like_timeout")
		}
		return domain.LikeResult{}, err
	}
	return res, nil
}

func (s *engagementService) ToggleMute(ctx context.Context, uid, authorId int64) (bool, error) {
	if uid <= 0 {
		return false, ErrUnauthenticated
	}
	if authorId <= 0 {
		return false, ErrAuthorNotFound
	}
	ok, err := s.posts.AuthorExists(ctx, authorId)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrAuthorNotFound
	}
	return s.membership.ToggleMute(ctx, uid, authorId)
}

func (s *engagementService) Hide(ctx context.Context, uid, postId int64) error {
	if uid <= 0 {
		return ErrUnauthenticated
	}
	if _, err := getPost(ctx, s.posts, postId); err != nil {
		return err
	}
	return s.membership.Hide(ctx, uid, postId)
}

func (s *engagementService) Report(ctx context.Context, r domain.Report) error {
	if r.Uid <= 0 {
		return ErrUnauthenticated
	}
	if _, err := getPost(ctx, s.posts, r.PostId); err != nil {
		return err
	}
	// 先隐藏，举报记录写失败的时候重试也不会有副作用
	if err := s.membership.Hide(ctx, r.Uid, r.PostId); err != nil {
		return err
	}
	_, err := s.membership.SaveReport(ctx, r)
	return err
}

func (s *engagementService) Comment(ctx context.Context, c domain.Comment) (int64, int64, error) {
	if c.AuthorId <= 0 {
		return 0, 0, ErrUnauthenticated
	}
	c.Text = strings.TrimSpace(c.Text)
	if c.Text == "" || utf8.RuneCountInString(c.Text) > maxCommentLen {
		return 0, 0, ErrInvalidComment
	}
	if _, err := getPost(ctx, s.posts, c.PostId); err != nil {
		return 0, 0, err
	}
	id, err := s.posts.InsertComment(ctx, c)
	if err != nil {
		return 0, 0, err
	}
	// 评论已经写进去了，计数失败的时候会被标记，后面读的是明细数据
	if err = s.counters.Adjust(ctx, c.PostId, domain.CounterFieldComment, 1); err != nil {
		s.logger.Warn("评论计数更新失败", elog.FieldErr(err), elog.Int64("postId", c.PostId))
	}
	counter, err := s.counters.Get(ctx, c.PostId)
	if err == nil {
		return id, counter.CommentCnt, nil
	}
	s.logger.Warn("读取评论计数失败", elog.FieldErr(err), elog.Int64("postId", c.PostId))
	cnt, err := s.posts.CountComments(ctx, c.PostId)
	return id, cnt, err
}

func (s *engagementService) ListComments(ctx context.Context, postId int64, offset, limit int) ([]domain.Comment, error) {
	return s.posts.ListComments(ctx, postId, offset, limit)
}

func (s *engagementService) Detail(ctx context.Context, uid, postId int64) (domain.Interactive, error) {
	if uid <= 0 {
		return domain.Interactive{}, ErrUnauthenticated
	}
	post, err := getPost(ctx, s.posts, postId)
	if err != nil {
		return domain.Interactive{}, err
	}
	res := domain.Interactive{
		PostId:   postId,
		ShareCnt: post.ShareCnt,
	}
	var eg errgroup.Group
	eg.Go(func() error {
		counter, er := s.counters.Get(ctx, postId)
		res.LikeCnt = counter.LikeCnt
		res.CommentCnt = counter.CommentCnt
		return er
	})
	eg.Go(func() error {
		var er error
		res.Liked, er = s.membership.Liked(ctx, uid, postId)
		return er
	})
	eg.Go(func() error {
		var er error
		res.Saved, er = s.collections.Saved(ctx, uid, postId)
		return er
	})
	return res, eg.Wait()
}

func (s *engagementService) MutedAuthors(ctx context.Context, uid int64) ([]int64, error) {
	if uid <= 0 {
		return nil, ErrUnauthenticated
	}
	return s.membership.MutedAuthorList(ctx, uid)
}

func (s *engagementService) ListReports(ctx context.Context, postId int64) ([]domain.Report, error) {
	return s.membership.ListReports(ctx, postId)
}

func getPost(ctx context.Context, posts PostStore, postId int64) (domain.Post, error) {
	if postId <= 0 {
		return domain.Post{}, ErrPostNotFound
	}
	post, err := posts.GetPost(ctx, postId)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return domain.Post{}, ErrPostNotFound
	}
	return post, err
}
