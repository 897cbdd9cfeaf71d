package telegram

import (
	"context"
	"errors"
	"sync"
)

var errQueueFull = errors.New("dispatch queue is full")

// dispatchPool раскладывает события по воркерам по ключу пользователя:
// события одного пользователя обрабатываются по порядку, разных — параллельно.
type dispatchPool struct {
	queues []chan func()
	wg     sync.WaitGroup
}

func newDispatchPool(workers, queueSize int) *dispatchPool {
	if workers <= 0 {
		workers = 1
	}
	p := &dispatchPool{queues: make([]chan func(), workers)}
	for i := range p.queues {
		q := make(chan func(), queueSize)
		p.queues[i] = q
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range q {
				job()
			}
		}()
	}
	return p
}

func (p *dispatchPool) queue(key int64) chan func() {
	idx := key % int64(len(p.queues))
	if idx < 0 {
		idx = -idx
	}
	return p.queues[idx]
}

// trySubmit ставит событие в очередь, не блокируясь; errQueueFull — очередь воркера занята.
func (p *dispatchPool) trySubmit(key int64, job func()) error {
	select {
	case p.queue(key) <- job:
		return nil
	default:
		return errQueueFull
	}
}

// submit ждёт места в очереди воркера, пока не отменят ctx.
func (p *dispatchPool) submit(ctx context.Context, key int64, job func()) error {
	if err := p.trySubmit(key, job); err == nil {
		return nil
	}
	select {
	case p.queue(key) <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close дожидается обработки уже поставленных событий.
func (p *dispatchPool) close() {
	for _, q := range p.queues {
		close(q)
	}
	p.wg.Wait()
}
