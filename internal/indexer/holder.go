package indexer

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrReloadInProgress is returned by Holder.Reload while another reload runs
var ErrReloadInProgress = errors.New("index reload already in progress")

// reloadLock provides non-blocking lock semantics using atomic operations
type reloadLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

func (l *reloadLock) tryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

func (l *reloadLock) release() {
	l.state.Store(0)
}

// Holder serves the current CorpusIndex to readers while allowing it to be
// replaced. Readers never block and keep using the index they loaded.
type Holder struct {
	current atomic.Pointer[CorpusIndex]
	lock    reloadLock
	source  string
}

// NewHolder returns a holder serving ci, reloadable from source
func NewHolder(ci *CorpusIndex, source string) *Holder {
	h := &Holder{source: source}
	h.current.Store(ci)
	return h
}

// Index returns the current index
func (h *Holder) Index() *CorpusIndex {
	return h.current.Load()
}

// Source returns the file path or URL the index is loaded from
func (h *Holder) Source() string {
	return h.source
}

// Reload loads the index again from its source. Concurrent reloads fail with
// ErrReloadInProgress instead of queueing.
func (h *Holder) Reload(ctx context.Context) (*CorpusIndex, error) {
	if !h.lock.tryAcquire() {
		return nil, ErrReloadInProgress
	}
	defer h.lock.release()

	ci, err := Open(ctx, h.source)
	if err != nil {
		return nil, err
	}
	h.current.Store(ci)
	return ci, nil
}
