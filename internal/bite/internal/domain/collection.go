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

import (
	"strings"
	"unicode/utf8"
)

// CollectionKind 默认收藏夹的种类。Custom 表示用户自建的收藏夹
type CollectionKind uint8

const (
	CollectionKindCustom CollectionKind = iota
	CollectionKindPosts
	CollectionKindCourses
	CollectionKindResources
	CollectionKindJobs
)

const maxCollectionNameLen = 64

var defaultCollectionNames = map[CollectionKind]string{
	CollectionKindPosts:     "Posts/Videos",
	CollectionKindCourses:   "Courses",
	CollectionKindResources: "Resources",
	CollectionKindJobs:      "Jobs",
}

// DefaultCollectionKinds 默认收藏夹的展示顺序
var DefaultCollectionKinds = []CollectionKind{
	CollectionKindPosts,
	CollectionKindCourses,
	CollectionKindResources,
	CollectionKindJobs,
}

func (k CollectionKind) IsDefault() bool {
	_, ok := defaultCollectionNames[k]
	return ok
}

func (k CollectionKind) Name() string {
	return defaultCollectionNames[k]
}

func (k CollectionKind) ToUint8() uint8 {
	return uint8(k)
}

type Collection struct {
	Id   int64
	Uid  int64
	Name string
	Kind CollectionKind
}

func (c Collection) IsDefault() bool {
	return c.Kind.IsDefault()
}

// ResolveCollection 根据用户传入的名字确定收藏夹。
// 空名字落到默认的 Posts/Videos 收藏夹，和默认收藏夹同名的也按默认收藏夹处理
func ResolveCollection(uid int64, name string) (Collection, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Collection{Uid: uid, Name: CollectionKindPosts.Name(), Kind: CollectionKindPosts}, true
	}
	for _, kind := range DefaultCollectionKinds {
		if kind.Name() == name {
			return Collection{Uid: uid, Name: name, Kind: kind}, true
		}
	}
	if utf8.RuneCountInString(name) > maxCollectionNameLen {
		return Collection{}, false
	}
	return Collection{Uid: uid, Name: name, Kind: CollectionKindCustom}, true
}
