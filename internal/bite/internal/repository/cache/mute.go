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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"
)

var ErrKeyNotFound = errors.New("key not found")

// MuteCache 缓存用户屏蔽的作者，拉 feed 的时候每次都要用
type MuteCache interface {
	GetMutedAuthors(ctx context.Context, uid int64) ([]int64, error)
	SetMutedAuthors(ctx context.Context, uid int64, authorIds []int64) error
	// Invalidate 屏蔽关系变化之后删掉缓存
	Invalidate(ctx context.Context, uid int64) error
}

type muteCache struct {
	ec         ecache.Cache
	expiration time.Duration
}

func NewMuteCache(ec ecache.Cache) MuteCache {
	return &muteCache{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: "bite:",
		},
		expiration: 30 * time.Minute,
	}
}

func (c *muteCache) GetMutedAuthors(ctx context.Context, uid int64) ([]int64, error) {
	val := c.ec.Get(ctx, c.key(uid))
	if val.KeyNotFound() {
		return nil, ErrKeyNotFound
	}
	if val.Err != nil {
		return nil, val.Err
	}
	str, err := val.String()
	if err != nil {
		return nil, err
	}
	var res []int64
	err = json.Unmarshal([]byte(str), &res)
	return res, errors.Wrap(err, "反序列化屏蔽列表失败")
}

func (c *muteCache) SetMutedAuthors(ctx context.Context, uid int64, authorIds []int64) error {
	if authorIds == nil {
		authorIds = []int64{}
	}
	data, err := json.Marshal(authorIds)
	if err != nil {
		return errors.Wrap(err, "序列化屏蔽列表失败")
	}
	return c.ec.Set(ctx, c.key(uid), string(data), c.expiration)
}

func (c *muteCache) Invalidate(ctx context.Context, uid int64) error {
	_, err := c.ec.Delete(ctx, c.key(uid))
	return err
}

func (c *muteCache) key(uid int64) string {
	return fmt.Sprintf("mute:%d", uid)
}
