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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository/dao"
)

type CollectionRepository interface {
	Ensure(ctx context.Context, c domain.Collection) (domain.Collection, error)
	GetById(ctx context.Context, uid, id int64) (domain.Collection, error)
	List(ctx context.Context, uid int64) ([]domain.Collection, error)

	AddPost(ctx context.Context, uid, cid, postId int64) error
	RemovePostFromAll(ctx context.Context, uid, postId int64) (int64, error)
	Saved(ctx context.Context, uid, postId int64) (bool, error)
	SavedPostIds(ctx context.Context, uid int64, postIds []int64) (domain.IDSet, error)
	ListPostIds(ctx context.Context, uid, cid int64, offset, limit int) ([]int64, error)
}

type collectionRepository struct {
	dao dao.CollectionDAO
}

func NewCollectionRepository(d dao.CollectionDAO) CollectionRepository {
	return &collectionRepository{dao: d}
}

func (r *collectionRepository) Ensure(ctx context.Context, c domain.Collection) (domain.Collection, error) {
	res, err := r.dao.Ensure(ctx, r.toEntity(c))
	if err != nil {
		return domain.Collection{}, err
	}
	return r.toDomain(res), nil
}

func (r *collectionRepository) GetById(ctx context.Context, uid, id int64) (domain.Collection, error) {
	res, err := r.dao.GetById(ctx, uid, id)
	if err != nil {
		return domain.Collection{}, err
	}
	return r.toDomain(res), nil
}

func (r *collectionRepository) List(ctx context.Context, uid int64) ([]domain.Collection, error) {
	res, err := r.dao.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.Collection) domain.Collection {
		return r.toDomain(src)
	}), nil
}

func (r *collectionRepository) AddPost(ctx context.Context, uid, cid, postId int64) error {
	return r.dao.AddPost(ctx, dao.CollectionPost{
		Cid:    cid,
		PostId: postId,
		Uid:    uid,
	})
}

func (r *collectionRepository) RemovePostFromAll(ctx context.Context, uid, postId int64) (int64, error) {
	return r.dao.RemovePostFromAll(ctx, uid, postId)
}

func (r *collectionRepository) Saved(ctx context.Context, uid, postId int64) (bool, error) {
	return r.dao.Saved(ctx, uid, postId)
}

func (r *collectionRepository) SavedPostIds(ctx context.Context, uid int64, postIds []int64) (domain.IDSet, error) {
	ids, err := r.dao.SavedPostIds(ctx, uid, postIds)
	if err != nil {
		return nil, err
	}
	return domain.NewIDSet(ids...), nil
}

func (r *collectionRepository) ListPostIds(ctx context.Context, uid, cid int64, offset, limit int) ([]int64, error) {
	res, err := r.dao.ListPosts(ctx, uid, cid, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.CollectionPost) int64 {
		return src.PostId
	}), nil
}

func (r *collectionRepository) toEntity(c domain.Collection) dao.Collection {
	return dao.Collection{
		Id:   c.Id,
		Uid:  c.Uid,
		Name: c.Name,
		Kind: c.Kind.ToUint8(),
	}
}

func (r *collectionRepository) toDomain(c dao.Collection) domain.Collection {
	return domain.Collection{
		Id:   c.Id,
		Uid:  c.Uid,
		Name: c.Name,
		Kind: domain.CollectionKind(c.Kind),
	}
}
