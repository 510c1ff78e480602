package timezone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/reminder-notifier/internal/storage/jsonfile"
)

var ErrPersistence = errors.New("timezone storage failure")

// Repository stores the IANA zone chosen by each owner.
type Repository struct {
	path     string
	strategy retry.Strategy

	mu    sync.RWMutex
	zones map[string]string
}

// NewRepository creates a repository backed by the file at path.
func NewRepository(path string, strategy retry.Strategy) *Repository {
	return &Repository{
		path:     path,
		strategy: strategy,
		zones:    make(map[string]string),
	}
}

// GetZone returns the owner's zone and whether one was set.
func (r *Repository) GetZone(ctx context.Context, owner string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	zone, ok := r.zones[owner]
	return zone, ok, nil
}

// SetZone records the owner's zone and persists the map. The in-memory value
// is kept when the write fails.
func (r *Repository) SetZone(ctx context.Context, owner, zone string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.zones[owner] = zone

	if err := jsonfile.Write(r.path, r.zones, r.strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("file", r.path).Msg("failed to persist timezones")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return nil
}

// LoadAll replaces the map with the file contents. A missing file leaves the
// map empty; a malformed one does too, and the error is returned.
func (r *Repository) LoadAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.zones = make(map[string]string)

	data, err := jsonfile.Read(r.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if len(data) == 0 {
		return nil
	}

	var zones map[string]string
	if err := json.Unmarshal(data, &zones); err != nil {
		return fmt.Errorf("%w: malformed %s: %w", ErrPersistence, r.path, err)
	}
	maps.Copy(r.zones, zones)

	return nil
}
