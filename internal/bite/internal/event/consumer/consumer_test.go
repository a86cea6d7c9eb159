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

package consumer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ecodeclub/kbites/internal/bite/internal/domain"
	"github.com/ecodeclub/kbites/internal/bite/internal/event"
	"github.com/ecodeclub/kbites/internal/bite/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounterMaintainer struct {
	service.CounterMaintainer
	mu    sync.Mutex
	err   error
	calls []domain.CounterMark
}

func (s *stubCounterMaintainer) callCnt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubCounterMaintainer) Reconcile(ctx context.Context, postId int64, field domain.CounterField) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, domain.CounterMark{PostId: postId, Field: field})
	return 3, s.err
}

func TestCounterEventConsumer_Consume(t *testing.T) {
	testCases := []struct {
		name      string
		msg       []byte
		svcErr    error
		wantCalls []domain.CounterMark
		wantErr   bool
	}{
		{
			name:      "对账成功",
			msg:       []byte(`{"post_id":12,"field":"like_cnt","reason":"adjust_failed"}`),
			wantCalls: []domain.CounterMark{{PostId: 12, Field: domain.CounterFieldLike}},
		},
		{
			name:      "对账失败",
			msg:       []byte(`{"post_id":12,"field":"comment_cnt"}`),
			svcErr:    errors.New("db error"),
			wantCalls: []domain.CounterMark{{PostId: 12, Field: domain.CounterFieldComment}},
			wantErr:   true,
		},
		{
			name: "非法的字段直接丢弃",
			msg:  []byte(`{"post_id":12,"field":"share_cnt"}`),
		},
		{
			name: "非法的视频 id 直接丢弃",
			msg:  []byte(`{"post_id":0,"field":"like_cnt"}`),
		},
		{
			name:    "消息格式错误",
			msg:     []byte(`not json`),
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := memory.NewMQ()
			require.NoError(t, q.CreateTopic(context.Background(), event.CounterEventsTopic, 1))
			svc := &stubCounterMaintainer{err: tc.svcErr}
			c, err := NewCounterEventConsumer(svc, q)
			require.NoError(t, err)
			defer c.Stop(context.Background())

			producer, err := q.Producer(event.CounterEventsTopic)
			require.NoError(t, err)
			_, err = producer.Produce(context.Background(), &mq.Message{Value: tc.msg})
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err = c.Consume(ctx)
			assert.Equal(t, tc.wantErr, err != nil)
			assert.Equal(t, tc.wantCalls, svc.calls)
		})
	}
}

func TestCounterEventConsumer_Start(t *testing.T) {
	q := memory.NewMQ()
	require.NoError(t, q.CreateTopic(context.Background(), event.CounterEventsTopic, 1))
	svc := &stubCounterMaintainer{}
	c, err := NewCounterEventConsumer(svc, q)
	require.NoError(t, err)
	producer, err := event.NewCounterEventProducer(q)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	err = producer.Produce(context.Background(), event.CounterEvent{PostId: 7, Field: "like_cnt"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return svc.callCnt() == 1
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, c.Stop(context.Background()))
}
