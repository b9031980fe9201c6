// ABOUTME: Detection queue serializes title detection for one feed list
// ABOUTME: Deduplicates requests and guards write-back against stale entries

package detection

import (
	"context"
	"strings"
	"sync"

	"feedlist-api/core/domain"
	"feedlist-api/core/interfaces"
	"feedlist-api/core/title"
)

// EntryStore is the view of the feed list the queue reads and writes
type EntryStore interface {
	// Get returns the current state of an entry
	Get(id string) (domain.FeedEntry, bool)

	// Patch atomically applies fn to the entry with the given id. fn reports whether it
	// changed anything. Patch returns false when the entry does not exist.
	Patch(id string, fn func(entry *domain.FeedEntry) bool) bool
}

// Queue is a FIFO of pending detections drained one item at a time
type Queue struct {
	store    EntryStore
	resolver interfaces.TitleResolver
	logger   interfaces.Logger

	mu         sync.Mutex
	items      []domain.DetectionItem
	processing bool
	wake       chan struct{}

	// worker lifecycle
	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewQueue creates an idle queue writing results into store
func NewQueue(store EntryStore, resolver interfaces.TitleResolver, logger interfaces.Logger) *Queue {
	return &Queue{
		store:    store,
		resolver: resolver,
		logger:   logger,
		wake:     make(chan struct{}, 1),
	}
}

// Enqueue schedules a detection for the entry. Blank URLs and pairs that are already
// pending, including the one in flight, are ignored. It reports whether an item was added.
func (q *Queue) Enqueue(entryID, url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}

	q.mu.Lock()
	for _, item := range q.items {
		if item.EntryID == entryID && item.URL == url {
			q.mu.Unlock()
			return false
		}
	}
	q.items = append(q.items, domain.DetectionItem{EntryID: entryID, URL: url})
	q.mu.Unlock()

	q.signal()
	return true
}

// Remove drops pending items for the entry. An item already in flight is left to finish.
func (q *Queue) Remove(entryID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := make([]domain.DetectionItem, 0, len(q.items))
	for i, item := range q.items {
		if item.EntryID != entryID || (i == 0 && q.processing) {
			kept = append(kept, item)
		}
	}
	q.items = kept
}

// Clear drops every pending item except the one in flight
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.processing && len(q.items) > 0 {
		q.items = q.items[:1]
		return
	}
	q.items = nil
}

// Len returns the number of pending items, counting the one in flight
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Processing reports whether a detection is in flight
func (q *Queue) Processing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.processing
}

// Pending returns a copy of the queued items in order
func (q *Queue) Pending() []domain.DetectionItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.DetectionItem(nil), q.items...)
}

// ProcessNext resolves the head of the queue. It returns false when the queue is empty
// or another drain is already running.
func (q *Queue) ProcessNext(ctx context.Context) bool {
	q.mu.Lock()
	if q.processing || len(q.items) == 0 {
		q.mu.Unlock()
		return false
	}
	item := q.items[0]
	q.processing = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.items = q.items[1:]
		q.processing = false
		q.mu.Unlock()
	}()

	q.process(ctx, item)
	return true
}

func (q *Queue) process(ctx context.Context, item domain.DetectionItem) {
	entry, ok := q.store.Get(item.EntryID)
	if !ok || entry.TrimmedURL() != item.URL {
		q.debug("Skipping stale detection", item, nil)
		return
	}

	placeholder := title.DomainOrInput(item.URL)
	q.store.Patch(item.EntryID, func(e *domain.FeedEntry) bool {
		if e.TrimmedURL() != item.URL {
			return false
		}
		e.Loading = true
		if !e.HasUserTitle() {
			e.Title = placeholder
			e.TitleSource = domain.TitleSourceDomain
		}
		return true
	})

	result := q.resolver.Resolve(ctx, item.URL)

	applied := false
	found := q.store.Patch(item.EntryID, func(e *domain.FeedEntry) bool {
		changed := e.Loading
		e.Loading = false
		if e.TrimmedURL() != item.URL || result.Failed() || e.HasUserTitle() {
			return changed
		}
		e.Title = result.Title
		e.TitleSource = result.EntrySource()
		applied = true
		return true
	})

	switch {
	case !found:
		q.debug("Discarded detection for removed entry", item, nil)
	case applied:
		q.debug("Applied detected title", item, map[string]interface{}{
			"title":  result.Title,
			"source": string(result.Source),
		})
	default:
		q.debug("Discarded detection result", item, map[string]interface{}{
			"error": result.Error,
		})
	}
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) debug(msg string, item domain.DetectionItem, extra map[string]interface{}) {
	if q.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"entry_id": item.EntryID,
		"url":      item.URL,
	}
	for k, v := range extra {
		fields[k] = v
	}
	q.logger.Debug(msg, fields)
}
