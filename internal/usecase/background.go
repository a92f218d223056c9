package usecase

import (
	"context"
	"sync"
)

// Background runs work that must outlive the request that started it, and
// lets shutdown wait for it.
type Background struct {
	wg sync.WaitGroup
}

func (b *Background) Go(fn func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
}

// Wait blocks until every started job returns or ctx is done.
func (b *Background) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
