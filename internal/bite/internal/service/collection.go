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
	"slices"

	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository"
)

// CollectionService 收藏夹。收藏就是放进至少一个收藏夹，取消收藏会从所有收藏夹里面移除
type CollectionService interface {
	// EnsureCollection 按照 (uid, name) 查找收藏夹，不存在就创建，并发创建也只会有一个
	EnsureCollection(ctx context.Context, uid int64, name string, isDefault bool) (domain.Collection, error)
	AddToCollection(ctx context.Context, uid, cid, postId int64) error
	// SaveToCollection 收藏到指定名字的收藏夹，返回收藏夹 id
	SaveToCollection(ctx context.Context, uid, postId int64, name string) (int64, error)
	RemoveFromAllCollections(ctx context.Context, uid, postId int64) error
	IsSaved(ctx context.Context, uid, postId int64) (bool, error)

	List(ctx context.Context, uid int64) ([]domain.Collection, error)
	ListPosts(ctx context.Context, uid, cid int64, offset, limit int) ([]int64, error)
}

type collectionService struct {
	repo  repository.CollectionRepository
	posts PostStore
}

func NewCollectionService(repo repository.CollectionRepository, posts PostStore) CollectionService {
	return &collectionService{
		repo:  repo,
		posts: posts,
	}
}

func (s *collectionService) EnsureCollection(ctx context.Context, uid int64, name string, isDefault bool) (domain.Collection, error) {
	if uid <= 0 {
		return domain.Collection{}, ErrUnauthenticated
	}
	c, ok := domain.ResolveCollection(uid, name)
	if !ok || (isDefault && !c.IsDefault()) {
		return domain.Collection{}, ErrInvalidCollectionName
	}
	return s.repo.Ensure(ctx, c)
}

func (s *collectionService) AddToCollection(ctx context.Context, uid, cid, postId int64) error {
	if uid <= 0 {
		return ErrUnauthenticated
	}
	if _, err := s.getCollection(ctx, uid, cid); err != nil {
		return err
	}
	if _, err := getPost(ctx, s.posts, postId); err != nil {
		return err
	}
	return s.repo.AddPost(ctx, uid, cid, postId)
}

func (s *collectionService) SaveToCollection(ctx context.Context, uid, postId int64, name string) (int64, error) {
	if uid <= 0 {
		return 0, ErrUnauthenticated
	}
	if _, err := getPost(ctx, s.posts, postId); err != nil {
		return 0, err
	}
	c, err := s.EnsureCollection(ctx, uid, name, false)
	if err != nil {
		return 0, err
	}
	return c.Id, s.repo.AddPost(ctx, uid, c.Id, postId)
}

func (s *collectionService) RemoveFromAllCollections(ctx context.Context, uid, postId int64) error {
	if uid <= 0 {
		return ErrUnauthenticated
	}
	_, err := s.repo.RemovePostFromAll(ctx, uid, postId)
	return err
}

func (s *collectionService) IsSaved(ctx context.Context, uid, postId int64) (bool, error) {
	if uid <= 0 {
		return false, ErrUnauthenticated
	}
	return s.repo.Saved(ctx, uid, postId)
}

func (s *collectionService) List(ctx context.Context, uid int64) ([]domain.Collection, error) {
	if uid <= 0 {
		return nil, ErrUnauthenticated
	}
	res, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	// 默认收藏夹按照固定顺序排在前面，自建的按照创建顺序
	slices.SortStableFunc(res, func(a, b domain.Collection) int {
		return collectionRank(a) - collectionRank(b)
	})
	return res, nil
}

func (s *collectionService) ListPosts(ctx context.Context, uid, cid int64, offset, limit int) ([]int64, error) {
	if uid <= 0 {
		return nil, ErrUnauthenticated
	}
	if _, err := s.getCollection(ctx, uid, cid); err != nil {
		return nil, err
	}
	return s.repo.ListPostIds(ctx, uid, cid, offset, limit)
}

func (s *collectionService) getCollection(ctx context.Context, uid, cid int64) (domain.Collection, error) {
	c, err := s.repo.GetById(ctx, uid, cid)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return domain.Collection{}, ErrCollectionNotFound
	}
	return c, err
}

func collectionRank(c domain.Collection) int {
	if !c.IsDefault() {
		return len(domain.DefaultCollectionKinds)
	}
	return slices.Index(domain.DefaultCollectionKinds, c.Kind)
}
