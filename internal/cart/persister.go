package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/gomarketplace-cart/internal/port"
)

// ErrClosed is returned when a write is scheduled after Close.
var ErrClosed = errors.New("cart store is closed")

type snapshot struct {
	seq  uint64
	blob string
}

// persister writes cart snapshots to the KV store on its own goroutine.
// Only the newest unwritten snapshot is kept: every snapshot is the whole
// cart, so an older one never needs to reach storage once a newer exists.
type persister struct {
	kv      port.KVStore
	key     string
	timeout time.Duration
	report  func(error)

	mu        sync.Mutex
	pending   *snapshot
	scheduled uint64
	written   uint64
	progress  chan struct{}
	closed    bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func newPersister(kv port.KVStore, key string, timeout time.Duration, report func(error)) *persister {
	p := &persister{
		kv:       kv,
		key:      key,
		timeout:  timeout,
		report:   report,
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go p.run()

	return p
}

func (p *persister) schedule(blob string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	p.scheduled++
	p.pending = &snapshot{seq: p.scheduled, blob: blob}

	select {
	case p.wake <- struct{}{}:
	default:
	}

	return nil
}

func (p *persister) run() {
	defer close(p.done)

	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.stop:
			p.drain()
			return
		}
	}
}

func (p *persister) drain() {
	for {
		p.mu.Lock()
		snap := p.pending
		p.pending = nil
		p.mu.Unlock()

		if snap == nil {
			return
		}

		p.write(snap)
	}
}

func (p *persister) write(snap *snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.kv.SetItem(ctx, p.key, snap.blob); err != nil {
		p.report(fmt.Errorf("kv.SetItem: %w", err))
	}

	p.mu.Lock()
	p.written = snap.seq
	close(p.progress)
	p.progress = make(chan struct{})
	p.mu.Unlock()
}

// flush blocks until every snapshot scheduled before the call was attempted.
func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.scheduled
	p.mu.Unlock()

	for {
		p.mu.Lock()
		if p.written >= target {
			p.mu.Unlock()
			return nil
		}
		progress := p.progress
		p.mu.Unlock()

		select {
		case <-progress:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *persister) close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.stop)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
