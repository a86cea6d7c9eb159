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

// CounterField 冗余计数字段
type CounterField string

const (
	CounterFieldLike    CounterField = "like_cnt"
	CounterFieldComment CounterField = "comment_cnt"
)

func (f CounterField) Valid() bool {
	return f == CounterFieldLike || f == CounterFieldComment
}

func (f CounterField) String() string {
	return string(f)
}

// Counter 计数表中的一行
type Counter struct {
	PostId     int64
	LikeCnt    int64
	CommentCnt int64
}

func (c Counter) Get(field CounterField) int64 {
	switch field {
	case CounterFieldLike:
		return c.LikeCnt
	case CounterFieldComment:
		return c.CommentCnt
	default:
		return 0
	}
}

func (c *Counter) Set(field CounterField, val int64) {
	switch field {
	case CounterFieldLike:
		c.LikeCnt = val
	case CounterFieldComment:
		c.CommentCnt = val
	}
}

// CounterMark 等待对账的计数
type CounterMark struct {
	PostId int64
	Field  CounterField
}
