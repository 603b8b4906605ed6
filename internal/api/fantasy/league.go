package fantasy

import (
	"context"
	"fmt"
	"time"

	"github.com/omarshaarawi/courtside/internal/models"
	"github.com/omarshaarawi/courtside/internal/repository/memory"
)

// SnapshotProvider is anything that can materialize a league snapshot.
type SnapshotProvider interface {
	FetchSnapshot(ctx context.Context) (*models.LeagueSnapshot, error)
}

// API puts the snapshot cache in front of a provider. It is itself a
// SnapshotProvider.
type API struct {
	provider SnapshotProvider
	repo     *memory.Repository
	key      string
	ttl      time.Duration
}

func NewAPI(provider SnapshotProvider, repo *memory.Repository, key string, ttl time.Duration) *API {
	return &API{provider: provider, repo: repo, key: key, ttl: ttl}
}

func (a *API) FetchSnapshot(ctx context.Context) (*models.LeagueSnapshot, error) {
	snap, err := a.repo.GetOrRefresh(ctx, a.key, a.ttl, a.provider.FetchSnapshot)
	if err != nil {
		return nil, fmt.Errorf("loading league %s: %w", a.key, err)
	}
	return snap, nil
}
