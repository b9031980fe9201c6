// ABOUTME: Service exposes the feed list operations of one editing session
// ABOUTME: Couples the record store with its detection queue, import and export

package feedlist

import (
	"context"
	"strings"
	"sync"
	"time"

	"feedlist-api/core/detection"
	"feedlist-api/core/domain"
	coreerrors "feedlist-api/core/errors"
	"feedlist-api/core/exporter"
	"feedlist-api/core/importer"
	"feedlist-api/core/interfaces"
	"golang.org/x/time/rate"
)

// DefaultDetectAllInterval spaces out detect-all enqueues
const DefaultDetectAllInterval = 100 * time.Millisecond

// Config holds per-session settings
type Config struct {
	// DetectAllInterval paces detect-all enqueueing. Zero or less enqueues immediately.
	DetectAllInterval time.Duration
}

// Service owns one feed list and the queue that detects its titles
type Service struct {
	store  *Store
	queue  *detection.Queue
	logger interfaces.Logger
	config Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a service with a single empty entry and a running detection worker
func NewService(resolver interfaces.TitleResolver, logger interfaces.Logger, cfg Config) *Service {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Service{
		store:  store,
		queue:  detection.NewQueue(store, resolver, logger),
		logger: logger,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}
	s.queue.Start()
	return s
}

// Close stops pending detect-all pacing and the detection worker
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
	s.queue.Stop()
}

// Entries returns the current list
func (s *Service) Entries() []domain.FeedEntry {
	return s.store.Snapshot()
}

// Get returns a single entry
func (s *Service) Get(id string) (domain.FeedEntry, error) {
	entry, ok := s.store.Get(id)
	if !ok {
		return domain.FeedEntry{}, &coreerrors.NotFoundError{Resource: "feed", ID: id}
	}
	return entry, nil
}

// Pending returns the number of queued detections, counting the one in flight
func (s *Service) Pending() int {
	return s.queue.Len()
}

// Processing reports whether a detection is in flight
func (s *Service) Processing() bool {
	return s.queue.Processing()
}

// AddFeed appends an empty entry
func (s *Service) AddFeed() domain.FeedEntry {
	entry := domain.NewFeedEntry()
	s.store.Update(func(old []domain.FeedEntry) []domain.FeedEntry {
		return AddEntry(old, entry)
	})
	return entry
}

// UpdateFeed applies a user edit to an entry
func (s *Service) UpdateFeed(id string, edit Edit) (domain.FeedEntry, error) {
	if _, err := s.Get(id); err != nil {
		return domain.FeedEntry{}, err
	}
	s.store.Update(func(old []domain.FeedEntry) []domain.FeedEntry {
		return EditEntry(old, id, edit)
	})
	return s.Get(id)
}

// RemoveFeed removes an entry and its pending detections. Removing the last entry
// clears it and drops the whole queue.
func (s *Service) RemoveFeed(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	wasLast := false
	s.store.Update(func(old []domain.FeedEntry) []domain.FeedEntry {
		wasLast = len(old) == 1
		return RemoveEntry(old, id)
	})

	if wasLast {
		s.queue.Clear()
	} else {
		s.queue.Remove(id)
	}
	return nil
}

// ClearAll resets the list to a single empty entry and drops pending detections
func (s *Service) ClearAll() []domain.FeedEntry {
	entries := s.store.Update(func([]domain.FeedEntry) []domain.FeedEntry {
		return Reset()
	})
	s.queue.Clear()
	s.info("Cleared feed list", nil)
	return entries
}

// RequestDetection queues a detection when the user leaves the URL field. typedURL
// defaults to the stored URL; a different typed URL is first saved as a URL edit.
// It reports whether anything was queued.
func (s *Service) RequestDetection(id, typedURL string) (bool, error) {
	entry, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if typedURL == "" {
		typedURL = entry.URL
	}
	if !ShouldDetectOnBlur(entry, typedURL) {
		return false, nil
	}
	if strings.TrimSpace(typedURL) != entry.TrimmedURL() {
		s.store.Update(func(old []domain.FeedEntry) []domain.FeedEntry {
			return EditEntry(old, id, Edit{URL: &typedURL})
		})
	}
	return s.queue.Enqueue(id, typedURL), nil
}

// DetectAll queues every entry with a URL and no settled title. Enqueueing is paced by
// the configured interval in the background; the count of selected entries is returned.
func (s *Service) DetectAll() int {
	targets := NeedingDetection(s.store.Snapshot())
	if len(targets) == 0 {
		return 0
	}

	if s.config.DetectAllInterval <= 0 {
		for _, e := range targets {
			s.queue.Enqueue(e.ID, e.URL)
		}
		return len(targets)
	}

	limiter := rate.NewLimiter(rate.Every(s.config.DetectAllInterval), 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for _, e := range targets {
			if err := limiter.Wait(s.ctx); err != nil {
				return
			}
			s.queue.Enqueue(e.ID, e.URL)
		}
	}()

	s.info("Queued detect-all", map[string]interface{}{"count": len(targets)})
	return len(targets)
}

// Import parses an uploaded file and merges its feeds into the list. Entries without a
// user title are queued for detection. On error the list is left untouched.
func (s *Service) Import(filename string, data []byte) ([]domain.FeedEntry, error) {
	records, err := importer.Import(filename, data)
	if err != nil {
		return nil, err
	}

	imported := make([]domain.FeedEntry, 0, len(records))
	for _, r := range records {
		imported = append(imported, r.ToEntry())
	}

	s.store.Update(func(old []domain.FeedEntry) []domain.FeedEntry {
		return MergeImported(old, imported)
	})

	for _, e := range imported {
		if e.URL != "" && !e.HasUserTitle() {
			s.queue.Enqueue(e.ID, e.URL)
		}
	}

	s.info("Imported feeds", map[string]interface{}{
		"filename": filename,
		"count":    len(imported),
	})
	return imported, nil
}

// ExportOPML renders the list as an OPML document
func (s *Service) ExportOPML() ([]byte, error) {
	return exporter.OPML(s.store.Snapshot())
}

// ExportCSV renders the list as CSV
func (s *Service) ExportCSV() ([]byte, error) {
	return exporter.CSV(s.store.Snapshot())
}

func (s *Service) info(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, fields)
	}
}
