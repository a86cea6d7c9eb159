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

//go:build wireinject

package bite

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/kbites/internal/bite/internal/event"
	"github.com/ecodeclub/kbites/internal/bite/internal/event/consumer"
	"github.com/ecodeclub/kbites/internal/bite/internal/job"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository/cache"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository/dao"
	"github.com/ecodeclub/kbites/internal/bite/internal/service"
	"github.com/ecodeclub/kbites/internal/bite/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component,
	q mq.MQ,
	ec ecache.Cache,
	node *snowflake.Node,
	cfg Config) (*Module, error) {
	wire.Build(
		initLikeDAO,
		initModerationDAO,
		initCollectionDAO,
		initCounterDAO,
		initPostDAO,
		cache.NewMuteCache,
		repository.NewMembershipRepository,
		repository.NewCollectionRepository,
		repository.NewCounterRepository,
		repository.NewPostRepository,
		wire.Bind(new(service.PostStore), new(*repository.PostRepository)),
		event.NewCounterEventProducer,
		service.NewCounterMaintainer,
		service.NewEngagementService,
		service.NewCollectionService,
		initFeedService,
		initReconcileJob,
		initCounterConsumer,
		web.NewHandler,
		web.NewAdminHandler,
		wire.Bind(new(web.PostCreator), new(*repository.PostRepository)),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var tableOnce = &sync.Once{}

func initTablesOnce(db *egorm.Component) {
	tableOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
}

func initLikeDAO(db *egorm.Component) dao.LikeDAO {
	initTablesOnce(db)
	return dao.NewLikeDAO(db)
}

func initModerationDAO(db *egorm.Component) dao.ModerationDAO {
	initTablesOnce(db)
	return dao.NewModerationDAO(db)
}

func initCollectionDAO(db *egorm.Component) dao.CollectionDAO {
	initTablesOnce(db)
	return dao.NewCollectionDAO(db)
}

func initCounterDAO(db *egorm.Component) dao.CounterDAO {
	initTablesOnce(db)
	return dao.NewCounterDAO(db)
}

func initPostDAO(db *egorm.Component, node *snowflake.Node) dao.PostDAO {
	initTablesOnce(db)
	return dao.NewPostDAO(db, node)
}

func initFeedService(posts service.PostStore,
	membership repository.MembershipRepository,
	collections repository.CollectionRepository,
	counters service.CounterMaintainer,
	cfg Config) service.FeedService {
	return service.NewFeedService(posts, membership, collections, counters, cfg.Feed)
}

func initReconcileJob(svc service.CounterMaintainer, cfg Config) *job.ReconcileCountersJob {
	window, batch := cfg.Reconcile.Window, cfg.Reconcile.Batch
	if window <= 0 {
		window = 10 * time.Minute
	}
	if batch <= 0 {
		batch = 100
	}
	return job.NewReconcileCountersJob(svc, window, batch)
}

func initCounterConsumer(svc service.CounterMaintainer, q mq.MQ) *consumer.CounterEventConsumer {
	c, err := consumer.NewCounterEventConsumer(svc, q)
	if err != nil {
		panic(err)
	}
	return c
}
