package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/MohamedMohamady125/projectusa/internal/adapters/mq/queue"
	"github.com/MohamedMohamady125/projectusa/internal/adapters/mq/worker"
	"github.com/MohamedMohamady125/projectusa/internal/adapters/repository"
	"github.com/MohamedMohamady125/projectusa/internal/domain/convert"
	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/pkg/logger"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func mustTime(s string) swimtime.Time {
	t, err := swimtime.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func waitForCount(ctx context.Context, store *repository.BoardStore, want int) bool {
	deadline := time.After(5 * time.Second)
	for {
		if store.Count(ctx) >= want {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestPoolProcessesSubmissions(t *testing.T) {
	Convey("Given a running pool over a queue and store", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		store := repository.NewBoardStore(ctx)
		pool := worker.NewPool(2, q, convert.New(), store)
		pool.Start(ctx)
		defer pool.Stop()

		Convey("When an LCM submission arrives", func() {
			ok := q.Enqueue(ctx, worker.Submission{
				SubmissionID: "sub-1",
				SwimmerID:    "ana",
				Result: model.SwimResult{
					Event:  course.Event{Distance: 100, Stroke: course.Freestyle},
					Course: course.LCM,
					Time:   mustTime("58.00"),
				},
			})
			So(ok, ShouldBeTrue)

			Convey("Then the store receives the SCY-normalized time", func() {
				So(waitForCount(ctx, store, 1), ShouldBeTrue)
				ev := course.Event{Distance: 100, Stroke: course.Freestyle}
				entry, err := store.Rank(ctx, ev, "ana")
				So(err, ShouldBeNil)
				// 58.00 * 0.8644 = 50.14
				So(entry.Time.String(), ShouldEqual, "50.14")
			})
		})

		Convey("When one submission in a batch cannot be normalized", func() {
			good := worker.Submission{
				SubmissionID: "sub-ok",
				SwimmerID:    "marta",
				Result: model.SwimResult{
					Event:  course.Event{Distance: 50, Stroke: course.Freestyle},
					Course: course.SCY,
					Time:   mustTime("22.40"),
				},
			}
			// 100 back has no published SCY->SCM path, but SCY is the
			// rankings course anyway; make it unconvertible with a bogus
			// distance instead.
			bad := worker.Submission{
				SubmissionID: "sub-bad",
				SwimmerID:    "carla",
				Result: model.SwimResult{
					Event:  course.Event{Distance: 75, Stroke: course.Backstroke},
					Course: course.LCM,
					Time:   mustTime("49.00"),
				},
			}
			So(q.Enqueue(ctx, bad), ShouldBeTrue)
			So(q.Enqueue(ctx, good), ShouldBeTrue)

			Convey("Then the good submission still lands", func() {
				So(waitForCount(ctx, store, 1), ShouldBeTrue)
				_, err := store.Rank(ctx, course.Event{Distance: 50, Stroke: course.Freestyle}, "marta")
				So(err, ShouldBeNil)
				_, err = store.Rank(ctx, course.Event{Distance: 75, Stroke: course.Backstroke}, "carla")
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestWorkerShutdown(t *testing.T) {
	Convey("Given a single running worker", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		store := repository.NewBoardStore(ctx)
		w := worker.NewWorker(q, convert.New(), store)
		go w.Run(ctx)

		Convey("Then Shutdown returns promptly", func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			So(w.Shutdown(shutdownCtx), ShouldBeNil)
		})
	})
}
