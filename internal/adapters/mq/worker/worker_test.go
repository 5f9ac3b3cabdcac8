package worker_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/artistly/internal/adapters/mq/queue"
	worker "github.com/okian/artistly/internal/adapters/mq/worker"
	model "github.com/okian/artistly/internal/domain/model"
	logging "github.com/okian/artistly/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type recordingSink struct {
	mu   sync.Mutex
	ids  []string
	fail map[string]bool
}

func (s *recordingSink) Submit(_ context.Context, app model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[app.ID] {
		return errors.New("rejected")
	}
	s.ids = append(s.ids, app.ID)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func TestPool(t *testing.T) {
	convey.Convey("Given a queue and a worker pool", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		sink := &recordingSink{fail: map[string]bool{"bad": true}}
		pool := worker.NewPool(3, q, sink, worker.WithLogger(logging.Nop()))

		convey.So(pool.Size(), convey.ShouldEqual, 3)

		convey.Convey("When applications are enqueued and the pool shuts down", func() {
			pool.Start(ctx)
			for i := 0; i < 20; i++ {
				convey.So(q.Enqueue(ctx, model.Application{ID: fmt.Sprint(i)}), convey.ShouldBeNil)
			}
			convey.So(q.Enqueue(ctx, model.Application{ID: "bad"}), convey.ShouldBeNil)

			err := pool.Shutdown(ctx)

			convey.Convey("Then every queued application reaches the sink", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(sink.count(), convey.ShouldEqual, 20)
				convey.So(pool.Processed(), convey.ShouldEqual, 20)
				convey.So(pool.Failed(), convey.ShouldEqual, 1)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a zero worker count is given", func() {
			p := worker.NewPool(0, q, sink)
			convey.So(p.Size(), convey.ShouldBeGreaterThan, 0)
		})
	})
}

func TestWorkerShutdown(t *testing.T) {
	convey.Convey("Given a running worker on an open queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue()
		w := worker.NewInMemoryWorker(q, &recordingSink{}, worker.WithName("w1"))
		go w.Run(ctx)

		convey.Convey("When shut down", func() {
			sctx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			err := w.Shutdown(sctx)

			convey.Convey("Then Run returns", func() {
				convey.So(err, convey.ShouldBeNil)
				select {
				case <-w.Done():
				case <-time.After(time.Second):
					convey.So("worker still running", convey.ShouldBeEmpty)
				}
				convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
			})
		})
	})
}

// stallingQueue hands out a channel that never delivers and keeps the
// context the worker dequeued with.
type stallingQueue struct {
	mu  sync.Mutex
	ctx context.Context
}

func (q *stallingQueue) Dequeue(ctx context.Context) <-chan model.Application {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ctx = ctx
	return make(chan model.Application)
}

func (q *stallingQueue) dequeueCtx() context.Context {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ctx
}

func TestWorkerReleasesDequeue(t *testing.T) {
	convey.Convey("Given a worker whose queue never delivers", t, func() {
		q := &stallingQueue{}
		w := worker.NewInMemoryWorker(q, &recordingSink{})
		go w.Run(context.Background())

		convey.Convey("When the worker is stopped", func() {
			sctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			convey.So(w.Shutdown(sctx), convey.ShouldBeNil)

			convey.Convey("Then the queue relay is told to stop", func() {
				dctx := q.dequeueCtx()
				convey.So(dctx, convey.ShouldNotBeNil)
				select {
				case <-dctx.Done():
				case <-time.After(time.Second):
					convey.So("dequeue context still live", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestLogSink(t *testing.T) {
	convey.Convey("Given a log sink", t, func() {
		var buf bytes.Buffer
		convey.So(logging.InitWith(&buf, logging.FormatJSON), convey.ShouldBeNil)
		sink := worker.NewLogSink(logging.Named("sink"))

		convey.Convey("When an application is submitted", func() {
			err := sink.Submit(context.Background(), model.Application{
				ID: "app-1", Name: "Priya", Categories: []string{"Singer", "Dancer"}, Languages: []string{"Hindi"},
			})

			convey.Convey("Then it is logged and accepted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(buf.String(), convey.ShouldContainSubstring, `"application_id":"app-1"`)
				convey.So(buf.String(), convey.ShouldContainSubstring, `"categories":"Singer,Dancer"`)
			})
		})

		convey.Convey("When built without a logger", func() {
			convey.So(worker.NewLogSink(nil).Submit(context.Background(), model.Application{}), convey.ShouldBeNil)
		})
	})
}
