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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/kbites/internal/bite/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*ReconcileCountersJob)(nil)

// ReconcileCountersJob 先处理被标记的计数，再把最近一段时间变更过的计数核对一遍
type ReconcileCountersJob struct {
	svc    service.CounterMaintainer
	window time.Duration
	batch  int
	logger *elog.Component
}

func NewReconcileCountersJob(svc service.CounterMaintainer, window time.Duration, batch int) *ReconcileCountersJob {
	return &ReconcileCountersJob{
		svc:    svc,
		window: window,
		batch:  batch,
		logger: elog.DefaultLogger,
	}
}

func (r *ReconcileCountersJob) Name() string {
	return "ReconcileCountersJob"
}

func (r *ReconcileCountersJob) Run(ctx context.Context) error {
	since := time.Now().Add(-r.window)
	marked, err := r.svc.ReconcileMarked(ctx, r.batch)
	if err != nil {
		return fmt.Errorf("处理待对账的计数失败: %w", err)
	}
	recent, err := r.svc.ReconcileUpdatedSince(ctx, since, r.batch)
	if err != nil {
		return fmt.Errorf("核对最近变更的计数失败: %w", err)
	}
	r.logger.Info("计数对账完成",
		elog.Int("marked", marked),
		elog.Int("recent", recent))
	return nil
}
