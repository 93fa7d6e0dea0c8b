package ticketing

import (
	"concert-purchase/model"
	"context"
	"sync"
)

type recordingEvents struct {
	mu      sync.Mutex
	events  []model.Event
	ctxErrs []error
	bounded []bool
	err     error
}

func (r *recordingEvents) SendEvent(ctx context.Context, event model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, hasDeadline := ctx.Deadline()
	r.events = append(r.events, event)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	r.bounded = append(r.bounded, hasDeadline)
	return r.err
}

func (r *recordingEvents) entityIds() []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int32, 0, len(r.events))
	for _, e := range r.events {
		ids = append(ids, e.EntityId)
	}
	return ids
}
