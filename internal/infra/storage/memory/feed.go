package memory

import (
	"context"
	"sync"

	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// Feed is the in-process change feed: Publish fans an event out to every
// subscription for the event's month, synchronously and in call order,
// mirroring the broker's ordered delivery guarantee.
type Feed struct {
	mu   sync.Mutex
	next int
	subs map[int]*subscription
}

type subscription struct {
	month int
	year  int
	fn    func([]schedule.ChangeEvent)
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[int]*subscription)}
}

func (f *Feed) Subscribe(ctx context.Context, month, year int, fn func([]schedule.ChangeEvent)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.subs[id] = &subscription{month: month, year: year, fn: fn}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}, nil
}

func (f *Feed) Publish(ctx context.Context, ev schedule.ChangeEvent) error {
	if ev.Data == nil {
		return nil
	}
	f.mu.Lock()
	var targets []func([]schedule.ChangeEvent)
	for _, sub := range f.subs {
		if sub.month == ev.Data.Month && sub.year == ev.Data.Year {
			targets = append(targets, sub.fn)
		}
	}
	f.mu.Unlock()
	for _, fn := range targets {
		fn([]schedule.ChangeEvent{ev})
	}
	return nil
}
