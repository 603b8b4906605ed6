package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/omarshaarawi/courtside/internal/models"
	"golang.org/x/sync/singleflight"
)

type FetchFunc func(ctx context.Context) (*models.LeagueSnapshot, error)

type entry struct {
	snapshot *models.LeagueSnapshot
	storedAt time.Time
}

// Repository holds the latest snapshot per league. Snapshots are replaced
// whole and never mutated, so readers can keep using an old pointer.
type Repository struct {
	snapshots map[string]entry
	mu        sync.RWMutex
	group     singleflight.Group
	now       func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		snapshots: make(map[string]entry),
		now:       time.Now,
	}
}

func (r *Repository) SaveSnapshot(key string, snapshot *models.LeagueSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[key] = entry{snapshot: snapshot, storedAt: r.now()}
}

func (r *Repository) GetSnapshot(key string) (*models.LeagueSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.snapshots[key]
	return e.snapshot, ok
}

// GetOrRefresh returns the cached snapshot when it is younger than maxAge and
// otherwise calls fetch. Concurrent callers for the same key share one fetch.
// If the fetch fails and an older snapshot exists, the older one is returned.
func (r *Repository) GetOrRefresh(ctx context.Context, key string, maxAge time.Duration, fetch FetchFunc) (*models.LeagueSnapshot, error) {
	r.mu.RLock()
	e, ok := r.snapshots[key]
	r.mu.RUnlock()

	if ok && maxAge > 0 && r.now().Sub(e.storedAt) < maxAge {
		return e.snapshot, nil
	}

	// A cancelled caller must not fail the other waiters on this fetch.
	v, err, shared := r.group.Do(key, func() (interface{}, error) {
		snapshot, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		r.SaveSnapshot(key, snapshot)
		return snapshot, nil
	})
	if err != nil {
		if ok {
			slog.Warn("Snapshot refresh failed, serving stale copy",
				"key", key,
				"age", r.now().Sub(e.storedAt).String(),
				"error", err,
			)
			return e.snapshot, nil
		}
		return nil, err
	}

	slog.Debug("Snapshot refreshed", "key", key, "shared", shared)
	return v.(*models.LeagueSnapshot), nil
}
