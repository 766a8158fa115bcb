package service

import (
	"elearn_backend/internal/storage"
)

// base carries the selector shared by all services. run executes op against
// the active backend; when the durable backend drops mid-call, the selector
// is degraded and op replayed once against the in-memory fallback, so an
// outage turns into a mode transition instead of a request error. Business
// errors pass through untouched.
type base struct {
	sel *storage.Selector
}

func (b base) run(op func(storage.Backend) error) error {
	backend := b.sel.Active()
	err := op(backend)
	if err != nil && storage.IsUnavailable(err) {
		b.sel.Degrade(err)
		if next := b.sel.Active(); next != backend {
			return op(next)
		}
	}
	return err
}
