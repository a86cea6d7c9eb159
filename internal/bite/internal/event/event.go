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

package event

import (
	"strconv"

	"github.com/ecodeclub/kbites/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
)

const CounterEventsTopic = "bite_counter_events"

// CounterEvent 计数需要对账
type CounterEvent struct {
	PostId int64  `json:"post_id"`
	Field  string `json:"field"`
	// Reason 触发对账的原因，只用于排查问题
	Reason string `json:"reason,omitempty"`
}

type CounterEventProducer mqx.Producer[CounterEvent]

func NewCounterEventProducer(q mq.MQ) (CounterEventProducer, error) {
	// 同一个视频的对账消息按顺序处理
	p, err := mqx.NewGeneralProducer[CounterEvent](q, CounterEventsTopic,
		mqx.WithKeyFunc(func(evt CounterEvent) []byte {
			return []byte(strconv.FormatInt(evt.PostId, 10))
		}))
	if err != nil {
		return nil, err
	}
	return p, nil
}
