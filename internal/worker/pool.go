package worker

import "sync"

type job func()

// Pool runs submitted jobs on a fixed set of goroutines. Stop closes the
// queue and waits for in-flight jobs to drain.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan job
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan job, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				j()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f func()) { p.jobs <- f }

func (p *Pool) Depth() int { return len(p.jobs) }

func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
