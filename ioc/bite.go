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

package ioc

import (
	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/kbites/internal/bite"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

func InitBiteModule(db *egorm.Component, q mq.MQ, ec ecache.Cache, node *snowflake.Node) *bite.Module {
	var cfg bite.Config
	if econf.Get("bite") != nil {
		if err := econf.UnmarshalKey("bite", &cfg); err != nil {
			panic(err)
		}
	}
	m, err := bite.InitModule(db, q, ec, node, cfg)
	if err != nil {
		panic(err)
	}
	return m
}
