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
	"testing"

	testioc "github.com/ecodeclub/kbites/internal/test/ioc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMuteCache(t *testing.T) {
	c := NewMuteCache(testioc.InitCache())
	ctx := context.Background()

	_, err := c.GetMutedAuthors(ctx, 1)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, c.SetMutedAuthors(ctx, 1, []int64{3, 5}))
	ids, err := c.GetMutedAuthors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, ids)

	// 没有屏蔽任何人也要缓存下来，避免每次都查数据库
	require.NoError(t, c.SetMutedAuthors(ctx, 2, nil))
	ids, err = c.GetMutedAuthors(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, ids)

	require.NoError(t, c.Invalidate(ctx, 1))
	_, err = c.GetMutedAuthors(ctx, 1)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	// 删除不存在的 key 不报错
	require.NoError(t, c.Invalidate(ctx, 100))
}
