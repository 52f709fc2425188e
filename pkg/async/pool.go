package async

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Pool is a fixed-size worker pool with panic recovery, per-task timeouts,
// and error collection. Tasks run under a context derived from the parent,
// so cancelling the parent stops the pool.
type Pool struct {
	name    string
	timeout time.Duration
	logger  *logrus.Logger
	tasks   chan func(context.Context) error
	done    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc

	closeOnce sync.Once

	mu   sync.Mutex
	errs []error
}

// NewPool starts workers goroutines draining a task queue. name labels the
// pool in logs; timeout bounds each individual task.
func NewPool(ctx context.Context, workers int, name string, timeout time.Duration, logger *logrus.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logrus.New()
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		name:    name,
		timeout: timeout,
		logger:  logger,
		tasks:   make(chan func(context.Context) error, workers*2),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}

	go func() {
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.worker()
			}()
		}
		wg.Wait()
		close(p.done)
	}()
	return p
}

// Submit queues a task. It fails once the pool has been waited on or its
// context cancelled.
func (p *Pool) Submit(fn func(context.Context) error) (err error) {
	// Submitting after Wait has closed the queue would panic.
	defer func() {
		if recover() != nil {
			err = fmt.Errorf("pool %s closed", p.name)
		}
	}()
	select {
	case p.tasks <- fn:
		return nil
	case <-p.done:
		return fmt.Errorf("pool %s closed", p.name)
	}
}

// Wait closes the queue, blocks until every submitted task has finished, and
// returns the errors collected along the way.
func (p *Pool) Wait() []error {
	p.closeOnce.Do(func() { close(p.tasks) })
	<-p.done
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errs
}

func (p *Pool) worker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case fn, ok := <-p.tasks:
			if !ok {
				return
			}
			p.run(fn)
		}
	}
}

func (p *Pool) run(fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("pool", p.name).
				Errorf("recovered panic: %v\n%s", r, debug.Stack())
			p.record(fmt.Errorf("%s: panic: %v", p.name, r))
		}
	}()
	if err := fn(ctx); err != nil {
		p.record(err)
	}
}

func (p *Pool) record(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, err)
}

// Batch runs fn over every item using a temporary pool and returns all
// errors encountered. Items are processed concurrently, so fn must not
// depend on ordering.
func Batch[T any](ctx context.Context, items []T, workers int, name string, timeout time.Duration,
	logger *logrus.Logger, fn func(context.Context, T) error) []error {

	pool := NewPool(ctx, workers, name, timeout, logger)
	for _, item := range items {
		item := item
		if err := pool.Submit(func(ctx context.Context) error {
			return fn(ctx, item)
		}); err != nil {
			return append(pool.Wait(), err)
		}
	}
	return pool.Wait()
}
