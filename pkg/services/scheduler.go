package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ixaliom/ixwha/pkg/data"
	"github.com/ixaliom/ixwha/pkg/integrations"
)

// Scheduler runs the startup sequence and the periodic check loop.
type Scheduler struct {
	repo     *data.Repository
	checker  *Checker
	notifier *Notifier
	manifest *integrations.ManifestClient
	version  string
	interval time.Duration
}

func NewScheduler(repo *data.Repository, checker *Checker, notifier *Notifier, manifest *integrations.ManifestClient, version string, interval time.Duration) *Scheduler {
	return &Scheduler{
		repo:     repo,
		checker:  checker,
		notifier: notifier,
		manifest: manifest,
		version:  version,
		interval: interval,
	}
}

// Startup records the visit, announces a version change when the update
// manifest knows about one, and runs a check if it is due.
func (s *Scheduler) Startup(ctx context.Context) ([]Update, error) {
	first, err := s.repo.FirstVisit()
	if err != nil {
		return nil, err
	}
	if first {
		if err := s.repo.MarkVisited(); err != nil {
			return nil, err
		}
		log.Println("👋 Welcome! Your library starts empty; add a title to begin.")
	}

	if err := s.recordVisit(); err != nil {
		log.Printf("⚠️ could not record visit: %v", err)
	}

	if s.manifest != nil {
		if err := s.announceVersionChange(ctx); err != nil {
			log.Printf("⚠️ update announcement skipped: %v", err)
		}
	}

	settings := s.repo.LoadSettings()
	if !settings.AutoCheckEnabled {
		return nil, nil
	}
	updates, err := s.checker.Run(ctx)
	if err != nil {
		return updates, err
	}
	s.notifyUpdates(ctx, updates)
	return updates, nil
}

// Watch blocks, re-running the check every interval until ctx ends.
func (s *Scheduler) Watch(ctx context.Context) error {
	if _, err := s.Startup(ctx); err != nil {
		log.Printf("⚠️ startup check failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			updates, err := s.checker.Run(ctx)
			if err != nil {
				log.Printf("⚠️ scheduled check failed: %v", err)
				continue
			}
			s.notifyUpdates(ctx, updates)
		}
	}
}

func (s *Scheduler) recordVisit() error {
	userID, err := s.repo.UserID()
	if err != nil {
		return err
	}
	stats, err := s.repo.LoadStats()
	if err != nil {
		return err
	}
	stats.RecordVisit(userID)
	return s.repo.SaveStats(stats)
}

// announceVersionChange compares the manifest's latest version with the
// last one seen locally and sends a release announcement on transition.
func (s *Scheduler) announceVersionChange(ctx context.Context) error {
	manifest, err := s.manifest.Fetch(ctx)
	if err != nil {
		return err
	}
	latest, info, ok := manifest.Latest()
	if !ok {
		return nil
	}

	seen, err := s.repo.LastViewedVersion()
	if err != nil {
		return err
	}
	if seen == latest {
		return nil
	}

	stats, err := s.repo.LoadStats()
	if err != nil {
		return err
	}
	stats.RecordUpdate(latest, integrations.UpdateType(info.Features), time.Now())
	if err := s.repo.SaveStats(stats); err != nil {
		return err
	}

	if s.notifier != nil {
		msg := integrations.BuildUpdateMessage(latest, info, *stats)
		err := s.notifier.Notify(ctx, "version_"+latest, msg)
		if err != nil && err != ErrCooldownActive && err != ErrDailyCapReached {
			return err
		}
	}

	return s.repo.SetLastViewedVersion(latest)
}

func (s *Scheduler) notifyUpdates(ctx context.Context, updates []Update) {
	if s.notifier == nil || len(updates) == 0 {
		return
	}
	for _, u := range updates {
		msg := BuildChapterMessage(u)
		err := s.notifier.Notify(ctx, "chapter_"+u.ID, msg)
		switch err {
		case nil:
		case ErrDailyCapReached:
			log.Println("🔕 daily notification cap reached, remaining updates not announced")
			return
		case ErrCooldownActive:
		default:
			log.Printf("⚠️ notification failed for %q: %v", u.Title, err)
		}
	}
}

// BuildChapterMessage assembles the new-chapter announcement embed.
func BuildChapterMessage(u Update) integrations.Message {
	return integrations.Message{
		Embeds: []integrations.Embed{{
			Title:       fmt.Sprintf("📖 %s", u.Title),
			Description: fmt.Sprintf("Nouveaux chapitres disponibles : %d → %d", u.OldChapters, u.NewChapters),
			Color:       3447003,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	}
}
