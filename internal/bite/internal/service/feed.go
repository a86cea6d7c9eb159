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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository"
	"golang.org/x/sync/errgroup"
)

type FeedService interface {
	// Feed 拉取候选视频，排除 viewer 隐藏的视频和屏蔽的作者
	Feed(ctx context.Context, viewerId int64, criteria domain.FeedCriteria) ([]domain.Post, error)
}

type FeedConfig struct {
	Limit    int `yaml:"limit"`
	MaxLimit int `yaml:"maxLimit"`
}

type feedService struct {
	posts       PostStore
	membership  repository.MembershipRepository
	collections repository.CollectionRepository
	counters    CounterMaintainer
	cfg         FeedConfig
}

func NewFeedService(posts PostStore,
	membership repository.MembershipRepository,
	collections repository.CollectionRepository,
	counters CounterMaintainer,
	cfg FeedConfig) FeedService {
	if cfg.Limit <= 0 {
		cfg.Limit = 20
	}
	if cfg.MaxLimit < cfg.Limit {
		cfg.MaxLimit = cfg.Limit
	}
	return &feedService{
		posts:       posts,
		membership:  membership,
		collections: collections,
		counters:    counters,
		cfg:         cfg,
	}
}

func (s *feedService) Feed(ctx context.Context, viewerId int64, criteria domain.FeedCriteria) ([]domain.Post, error) {
	if viewerId <= 0 {
		return nil, ErrUnauthenticated
	}
	if criteria.Limit <= 0 {
		criteria.Limit = s.cfg.Limit
	}
	criteria.Limit = min(criteria.Limit, s.cfg.MaxLimit)
	candidates, err := s.posts.FetchCandidatePosts(ctx, criteria)
	if err != nil || len(candidates) == 0 {
		return []domain.Post{}, err
	}
	ids := slice.Map(candidates, func(idx int, src domain.Post) int64 {
		return src.Id
	})

	var (
		eg       errgroup.Group
		hidden   domain.IDSet
		muted    domain.IDSet
		liked    domain.IDSet
		saved    domain.IDSet
		counters map[int64]domain.Counter
	)
	eg.Go(func() error {
		var er error
		hidden, er = s.membership.HiddenPostIds(ctx, viewerId, ids)
		return er
	})
	eg.Go(func() error {
		var er error
		muted, er = s.membership.MutedAuthorIds(ctx, viewerId)
		return er
	})
	eg.Go(func() error {
		var er error
		liked, er = s.membership.LikedPostIds(ctx, viewerId, ids)
		return er
	})
	eg.Go(func() error {
		var er error
		saved, er = s.collections.SavedPostIds(ctx, viewerId, ids)
		return er
	})
	eg.Go(func() error {
		var er error
		counters, er = s.counters.GetByIds(ctx, ids)
		return er
	})
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	res := VisiblePosts(candidates, viewerId, hidden, muted)
	for i := range res {
		if c, ok := counters[res[i].Id]; ok {
			res[i].LikeCnt = c.LikeCnt
			res[i].CommentCnt = c.CommentCnt
		}
		res[i].Liked = liked.Has(res[i].Id)
		res[i].Saved = saved.Has(res[i].Id)
	}
	return res, nil
}
