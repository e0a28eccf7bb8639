package notif

import (
	"sync"
	"time"

	"dashnotify/internal/common"

	"github.com/google/uuid"
)

const defaultFeedCapacity = 100

// Feed is the process-local notification feed. Newest entries first; the
// oldest entry is dropped once capacity is reached. Nothing is persisted.
type Feed struct {
	mu       sync.RWMutex
	entries  []common.FeedEntry
	capacity int
	now      func() time.Time
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	return &Feed{
		entries:  make([]common.FeedEntry, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

func (f *Feed) Append(entry common.FeedEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ReceivedAt.IsZero() {
		entry.ReceivedAt = f.now()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	//newest goes on top, anything past capacity falls off the end
	f.entries = append([]common.FeedEntry{entry}, f.entries...)
	if len(f.entries) > f.capacity {
		f.entries = f.entries[:f.capacity]
	}
}

func (f *Feed) List() []common.FeedEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	// hand out a copy so callers can't mess with our slice
	out := make([]common.FeedEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = f.entries[:0]
}
