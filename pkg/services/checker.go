package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ixaliom/ixwha/pkg/library"
	"github.com/ixaliom/ixwha/pkg/sources"
)

// ErrCheckInProgress is returned when a run is requested while another
// run is still walking the library.
var ErrCheckInProgress = errors.New("a chapter check is already running")

// Update records one title whose chapter count grew during a check.
type Update struct {
	ID          string
	Title       string
	OldChapters int
	NewChapters int
}

// Fetcher retrieves a page through the relay chain.
type Fetcher interface {
	Fetch(ctx context.Context, target string, timeout time.Duration) (*goquery.Document, error)
}

// CheckMarker persists the timestamp gating automatic checks.
type CheckMarker interface {
	LastCheck() (time.Time, bool, error)
	SetLastCheck(time.Time) error
	ClearLastCheck() error
}

// Checker walks the library looking for newly published chapters.
type Checker struct {
	store    *library.Store
	marker   CheckMarker
	fetcher  Fetcher
	interval time.Duration
	timeout  time.Duration
	pause    time.Duration
	running  atomic.Bool
}

func NewChecker(store *library.Store, marker CheckMarker, fetcher Fetcher, interval, timeout time.Duration) *Checker {
	return &Checker{
		store:    store,
		marker:   marker,
		fetcher:  fetcher,
		interval: interval,
		timeout:  timeout,
		pause:    500 * time.Millisecond,
	}
}

// Due reports whether the check interval has elapsed since the last run.
func (c *Checker) Due() (bool, error) {
	last, ok, err := c.marker.LastCheck()
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return time.Since(last) >= c.interval, nil
}

// Run checks every eligible title and returns the titles that gained
// chapters. When the interval has not elapsed it returns immediately
// without touching the network.
func (c *Checker) Run(ctx context.Context) ([]Update, error) {
	due, err := c.Due()
	if err != nil {
		return nil, err
	}
	if !due {
		return nil, nil
	}
	return c.run(ctx)
}

// Force runs a check regardless of when the previous one happened.
func (c *Checker) Force(ctx context.Context) ([]Update, error) {
	if err := c.marker.ClearLastCheck(); err != nil {
		return nil, err
	}
	return c.run(ctx)
}

func (c *Checker) run(ctx context.Context) ([]Update, error) {
	if !c.running.CompareAndSwap(false, true) {
		return nil, ErrCheckInProgress
	}
	defer c.running.Store(false)

	var updates []Update
	items := c.store.List()
	for i, m := range items {
		if m.IsDropped || m.SourceURL == "" {
			continue
		}
		site, ok := sources.Lookup(m.SourceURL)
		if !ok {
			continue
		}

		latest, err := c.latestChapter(ctx, site, m.SourceURL)
		if err != nil {
			log.Printf("⚠️ check failed for %q: %v", m.Title, err)
			continue
		}
		if latest > m.TotalChapters {
			updates = append(updates, Update{
				ID:          m.ID,
				Title:       m.Title,
				OldChapters: m.TotalChapters,
				NewChapters: latest,
			})
			m.TotalChapters = latest
		}

		if i < len(items)-1 {
			select {
			case <-ctx.Done():
				return updates, ctx.Err()
			case <-time.After(c.pause):
			}
		}
	}

	if len(updates) > 0 {
		if err := c.store.Save(); err != nil {
			return updates, err
		}
	}
	if err := c.marker.SetLastCheck(time.Now()); err != nil {
		return updates, err
	}
	return updates, nil
}

func (c *Checker) latestChapter(ctx context.Context, site sources.Site, sourceURL string) (int, error) {
	checkURL, err := site.CheckURL(sourceURL)
	if err != nil {
		return 0, err
	}
	doc, err := c.fetcher.Fetch(ctx, checkURL, c.timeout)
	if err != nil {
		return 0, err
	}
	latest := site.LatestChapter(doc)
	if latest == 0 {
		return 0, fmt.Errorf("no chapter found on %s", site.Name())
	}
	return latest, nil
}
