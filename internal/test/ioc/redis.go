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

package testioc

import (
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/ecodeclub/ecache"
	eredis "github.com/ecodeclub/ecache/redis"
	"github.com/redis/go-redis/v9"
)

var (
	cache         ecache.Cache
	cacheInitOnce sync.Once
)

func InitCache() ecache.Cache {
	cacheInitOnce.Do(func() {
		cache = &ecache.NamespaceCache{
			C:         eredis.NewCache(InitRedis()),
			Namespace: "kbites:",
		}
	})
	return cache
}

var (
	rdb           redis.Cmdable
	redisInitOnce sync.Once
)

// InitRedis 用 miniredis 代替真正的 Redis，进程退出的时候一起退出
func InitRedis() redis.Cmdable {
	redisInitOnce.Do(func() {
		mr, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		rdb = redis.NewClient(&redis.Options{
			Addr: mr.Addr(),
		})
	})
	return rdb
}
