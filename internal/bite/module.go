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

package bite

import (
	"time"

	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/event/consumer"
	"github.com/ecodeclub/kbites/internal/bite/internal/job"
	"github.com/ecodeclub/kbites/internal/bite/internal/repository"
	"github.com/ecodeclub/kbites/internal/bite/internal/service"
	"github.com/ecodeclub/kbites/internal/bite/internal/web"
)

type Module struct {
	Hdl           *Handler
	AdminHdl      *AdminHandler
	FeedSvc       FeedService
	EngagementSvc EngagementService
	CollectionSvc CollectionService
	CounterSvc    CounterMaintainer
	Posts         *PostStore
	ReconcileJob  *ReconcileCountersJob
	Consumer      *CounterEventConsumer
}

type Config struct {
	Feed      FeedConfig      `yaml:"feed"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
}

type ReconcileConfig struct {
	// Batch 每次对账拉取的数量
	Batch int `yaml:"batch"`
	// Window 定时任务核对这个时间窗口内变更过的计数
	Window time.Duration `yaml:"window"`
}

type Handler = web.Handler
type AdminHandler = web.AdminHandler
type FeedService = service.FeedService
type FeedConfig = service.FeedConfig
type EngagementService = service.EngagementService
type CollectionService = service.CollectionService
type CounterMaintainer = service.CounterMaintainer
type PostStore = repository.PostRepository
type ReconcileCountersJob = job.ReconcileCountersJob
type CounterEventConsumer = consumer.CounterEventConsumer

type Post = domain.Post
type Comment = domain.Comment
type Collection = domain.Collection
type FeedCriteria = domain.FeedCriteria
