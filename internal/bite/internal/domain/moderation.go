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

package domain

// IDSet 用户 id、视频 id 的集合
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	res := make(IDSet, len(ids))
	for _, id := range ids {
		res[id] = struct{}{}
	}
	return res
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id int64) {
	s[id] = struct{}{}
}

func (s IDSet) Keys() []int64 {
	res := make([]int64, 0, len(s))
	for id := range s {
		res = append(res, id)
	}
	return res
}
