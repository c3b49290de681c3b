package kyc

import (
	"io"
	"sync"
)

// ProgressFunc receives upload progress in percent. Values never decrease
// and 100 is reported only once the document is queryable.
type ProgressFunc func(percent int)

// progressTracker drops reports that would not increase the last value.
// Transports may read the body from another goroutine, hence the mutex.
type progressTracker struct {
	mu   sync.Mutex
	fn   ProgressFunc
	last int
}

func newProgressTracker(fn ProgressFunc) *progressTracker {
	return &progressTracker{fn: fn, last: -1}
}

func (p *progressTracker) report(percent int) {
	if p.fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if percent <= p.last {
		return
	}
	p.last = percent
	p.fn(percent)
}

// progressReader reports transfer progress capped at 99.
type progressReader struct {
	r       io.Reader
	total   int64
	read    int64
	tracker *progressTracker
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	if n > 0 && pr.total > 0 {
		pr.read += int64(n)
		pct := int(pr.read * 99 / pr.total)
		if pct > 99 {
			pct = 99
		}
		pr.tracker.report(pct)
	}
	return n, err
}
